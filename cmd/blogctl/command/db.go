package command

// db.go holds the commands that talk to Postgres directly instead of the API.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"blogdesk/database"
	"blogdesk/internal/config"
	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/middleware/auth"
	"blogdesk/internal/moderation"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, logger, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db, logger); err != nil {
			return err
		}
		success("Schema is up to date")
		return nil
	},
}

// The HTTP surface never mints a super admin, so the first one comes from here.
var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create or promote a super admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		first, _ := cmd.Flags().GetString("first")
		last, _ := cmd.Flags().GetString("last")

		if len(password) < 6 || len(password) > 72 {
			return errors.New("password must be between 6 and 72 characters")
		}

		db, _, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		profile, created, err := bootstrapAdmin(cmd.Context(), repository.NewProfileRepository(db), email, password, first, last)
		if err != nil {
			return err
		}
		if created {
			success("Created super admin %s (%s)", profile.Email, profile.ID)
		} else {
			success("Promoted %s (%s) to super admin", profile.Email, profile.ID)
		}
		return nil
	},
}

func init() {
	bootstrapAdminCmd.Flags().StringP("email", "e", "", "Email of the account")
	bootstrapAdminCmd.Flags().StringP("password", "p", "", "Password of the account")
	bootstrapAdminCmd.Flags().String("first", "Super", "First name")
	bootstrapAdminCmd.Flags().String("last", "Admin", "Last name")
	bootstrapAdminCmd.MarkFlagRequired("email")
	bootstrapAdminCmd.MarkFlagRequired("password")
}

// bootstrapAdmin promotes an existing profile or creates a new one. The
// password is reset either way so the operator knows the credentials.
func bootstrapAdmin(ctx context.Context, profiles repository.ProfileRepository, email, password, first, last string) (*models.Profile, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := profiles.FindByEmail(ctx, email)
	switch {
	case err == nil:
		updated, err := profiles.Update(ctx, existing.ID, map[string]any{
			"role":          moderation.RoleSuperAdmin,
			"is_active":     true,
			"password_hash": hash,
		})
		if err != nil {
			return nil, false, fmt.Errorf("failed to promote %s: %w", email, err)
		}
		return updated, false, nil
	case errors.Is(err, repository.ErrNotFound):
		p := &models.Profile{
			FirstName: first,
			LastName:  last,
			Email:     email,
			Password:  hash,
			Role:      moderation.RoleSuperAdmin,
			IsActive:  true,
		}
		if err := profiles.Create(ctx, p); err != nil {
			return nil, false, fmt.Errorf("failed to create %s: %w", email, err)
		}
		return p, true, nil
	default:
		return nil, false, err
	}
}

func openDB() (*gorm.DB, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return db, logger, nil
}
