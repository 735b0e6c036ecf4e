package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/kerem/schoolhub/internal/app/models"
	appRepos "github.com/kerem/schoolhub/internal/app/repositories"
	"github.com/kerem/schoolhub/internal/pkg/auth"
)

// defaultAdmins are created on first startup so the API is usable
// immediately. Change the passwords in any real deployment.
var defaultAdmins = []struct {
	Username string
	Password string
	Role     appModels.Role
}{
	{Username: "super", Password: "super123", Role: appModels.RoleSuper},
	{Username: "sub", Password: "sub123", Role: appModels.RoleSub},
}

// CreateDefaultAdmins creates the default administrator accounts if they do
// not exist yet. Existing accounts are left untouched.
func CreateDefaultAdmins(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	adminRepo := appRepos.NewAdminRepository(dbPool)

	var finalErr error
	for _, a := range defaultAdmins {
		exists, err := adminRepo.ExistsByUsername(ctx, a.Username)
		if err != nil {
			lgr.Error().Err(err).Str("username", a.Username).Msg("Error checking default admin")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		hash, err := auth.HashPassword(a.Password)
		if err != nil {
			lgr.Error().Err(err).Str("username", a.Username).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		admin := &appModels.Admin{
			Username:     a.Username,
			PasswordHash: hash,
			Role:         a.Role,
		}
		if err := adminRepo.Create(ctx, admin); err != nil {
			lgr.Error().Err(err).Str("username", a.Username).Msg("Error creating default admin")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		lgr.Info().Str("username", a.Username).Str("role", string(a.Role)).Msg("Default admin created")
	}

	return finalErr
}
