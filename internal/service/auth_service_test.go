package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disaster-watch/internal/domain"
)

func newTestAuth(t *testing.T) AuthService {
	t.Helper()
	reg, _ := newTestRegistry(t)
	return NewAuthService(reg)
}

func anaRegistration() RegisterParams {
	return RegisterParams{
		Name:     "Ana",
		Username: "ana",
		Phone:    "555",
		Email:    "ana@x.com",
		Password: "secret1",
		Gender:   "female",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, anaRegistration()))

	result, err := auth.Login(ctx, LoginParams{Username: "ana", Password: "secret1", Role: "user"})
	require.NoError(t, err)
	assert.Greater(t, result.ID, int64(0))
	assert.Equal(t, "ana", result.Username)
	assert.Equal(t, domain.RoleUser, result.Role)
}

func TestRegisterDuplicate(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, anaRegistration()))

	dup := anaRegistration()
	dup.Username = "ana2" // email still collides
	err := auth.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestLoginEnumerationResistance(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, anaRegistration()))

	_, unknownErr := auth.Login(ctx, LoginParams{Username: "ghost", Password: "secret1", Role: "user"})
	_, wrongSecretErr := auth.Login(ctx, LoginParams{Username: "ana", Password: "wrong", Role: "user"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongSecretErr, ErrInvalidCredentials)
	// identical error kind and message for both cases
	assert.Equal(t, unknownErr.Error(), wrongSecretErr.Error())
}

func TestLoginRoleGateOrdering(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, anaRegistration()))

	// wrong secret with mismatched role: the secret check comes first
	_, err := auth.Login(ctx, LoginParams{Username: "ana", Password: "wrong", Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// correct secret with mismatched role
	_, err = auth.Login(ctx, LoginParams{Username: "ana", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestRegisterWithExplicitRole(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	params := anaRegistration()
	params.Role = "admin"
	require.NoError(t, auth.Register(ctx, params))

	result, err := auth.Login(ctx, LoginParams{Username: "ana", Password: "secret1", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, result.Role)
}

func TestEndToEndScenario(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, anaRegistration()))

	result, err := auth.Login(ctx, LoginParams{Username: "ana", Password: "secret1", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, "ana", result.Username)
	assert.Equal(t, domain.RoleUser, result.Role)

	_, err = auth.Login(ctx, LoginParams{Username: "ana", Password: "wrong", Role: "user"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, LoginParams{Username: "ana", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, ErrRoleMismatch)

	dup := anaRegistration()
	dup.Username = "ana-two"
	err = auth.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}
