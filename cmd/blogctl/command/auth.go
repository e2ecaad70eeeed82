package command

import (
	"fmt"
	"time"

	"blogdesk/cmd/blogctl/authentication"
	"blogdesk/cmd/blogctl/command/client"
	"blogdesk/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the tokens in the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.SignInRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		response, err := client.NewHTTPClient(apiURL).SignIn(&req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		creds := &authentication.StoredCredentials{
			AccessToken:  response.AccessToken,
			RefreshToken: response.RefreshToken,
			Email:        req.Email,
			Role:         string(response.Profile.Role),
			ExpiresAt:    time.Now().Add(time.Duration(response.ExpiresIn) * time.Second).Unix(),
		}
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("failed to store tokens: %w", err)
		}

		success("Logged in as %s", req.Email)
		color.HiBlack("  role: %s", creds.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and forget the stored tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if c, err := authedClient(); err == nil {
			// local logout still succeeds when the server is unreachable
			if err := c.SignOut(); err != nil {
				color.Yellow("! server sign-out failed: %v", err)
			}
		}
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		success("Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}
