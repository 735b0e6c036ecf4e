package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()

	hash, err := auth.HashPassword("super123")
	require.NoError(t, err)

	admins := &memAdminStore{admins: map[string]*models.Admin{
		"super": {ID: 1, Username: "super", PasswordHash: hash, Role: models.RoleSuper},
	}}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "schoolhub.test",
	})
	return NewAuthService(admins, jwtService)
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "super", Password: "super123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "super", resp.Role)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)

	// Unknown username and wrong password are indistinguishable.
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "super123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "super", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
