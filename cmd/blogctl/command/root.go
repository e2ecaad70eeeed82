package command

// root.go defines the root command and the flags shared by every subcommand.

import (
	"os"

	"blogdesk/cmd/blogctl/authentication"
	"blogdesk/cmd/blogctl/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var apiURL string // Global flag for API server URL

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "blogctl - blogdesk operator tool",
	Long: `blogctl manages a blogdesk deployment. Operators can use it to:
- Create the database schema
- Bootstrap the first super admin account
- Sign in against the API and work the review queue

Use "blogctl command --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("BLOGCTL_API", "http://localhost:8080/api"), "API server URL")

	rootCmd.AddCommand(migrateCmd, bootstrapAdminCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd)
	rootCmd.AddCommand(pendingCmd, reviewCmd)
}

// authedClient returns an API client carrying the stored access token.
func authedClient() (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}
	c := client.NewHTTPClient(apiURL)
	c.SetToken(creds.AccessToken)
	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func success(format string, args ...any) {
	color.Green("✓ "+format, args...)
}
