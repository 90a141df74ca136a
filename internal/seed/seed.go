package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/repositories"
	"github.com/ignitte/induction/internal/config"
	"github.com/ignitte/induction/internal/pkg/auth"
)

// CreateDefaultData creates the default super admin account if it
// doesn't exist. The credentials come from config so deployments can
// rotate them without a code change.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	email := cfg.Admin.Email
	password := cfg.Admin.Password
	if email == "" || password == "" {
		lgr.Warn().Msg("Admin credentials not configured, skipping super admin seed")
		return nil
	}

	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		lgr.Info().Msg("Super admin already exists, skipping creation")
		return nil
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName:     "System Administrator",
		Email:        email,
		Password:     hashedPassword,
		Role:         models.RoleAdmin,
		Department:   "Core",
		IsSuperAdmin: true,
	}

	adminID, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default super admin created")
	return nil
}
