package seed

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/okanyildiz/schoolroster/internal/app/models"
	appRepos "github.com/okanyildiz/schoolroster/internal/app/repositories"
	pkgAuth "github.com/okanyildiz/schoolroster/internal/pkg/auth"
)

const defaultAdminEmail = "admin@school.org"

// CreateDefaultData seeds the default administrator account so a fresh
// deployment can be logged into. The password comes from SEED_ADMIN_PASSWORD;
// when unset the account is not created.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.ExistsByEmail(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin user")
		return err
	}
	if exists {
		lgr.Debug().Str("email", defaultAdminEmail).Msg("Default admin user already present")
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("SEED_ADMIN_PASSWORD not set, skipping default admin creation")
		return nil
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  hashed,
		FirstName: "Default",
		LastName:  "Admin",
		RoleType:  appModels.RoleAdmin,
		IsActive:  true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin user created")
	return nil
}
