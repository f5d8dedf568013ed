package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/transport"
)

var testSecrets = struct {
	access  []byte
	refresh []byte
}{[]byte("test-access-secret"), []byte("test-refresh-secret")}

func TestRegisterAndLogin(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}
	ctx := context.Background()

	profile, err := svc.Register(ctx, transport.RegisterRequest{
		Email:    "Trader@Example.com",
		Password: "hunter2hunter2",
		Role:     "buyer",
		FullName: "A Trader",
	})
	require.NoError(t, err)
	require.Equal(t, "trader@example.com", profile.Email)
	require.Equal(t, models.RoleBuyer, profile.Role)
	require.True(t, profile.IsActive)

	pair, err := svc.Login(ctx, "trader@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "buyer", pair.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}
	ctx := context.Background()

	req := transport.RegisterRequest{Email: "dup@example.com", Password: "hunter2hunter2", Role: "seller"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegisterRejectsPrivilegedRoles(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}

	for _, role := range []string{"admin", "agent", "superuser"} {
		_, err := svc.Register(context.Background(), transport.RegisterRequest{
			Email:    role + "@example.com",
			Password: "hunter2hunter2",
			Role:     role,
		})
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "t@example.com", Password: "hunter2hunter2", Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "t@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}
	ctx := context.Background()

	profile, err := svc.Register(ctx, transport.RegisterRequest{Email: "t@example.com", Password: "hunter2hunter2", Role: "seller"})
	require.NoError(t, err)

	_, err = r.SetProfileActive(ctx, profile.ID, false)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "t@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ErrPermission)
}

func TestRefreshRotatesToken(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "t@example.com", Password: "hunter2hunter2", Role: "buyer"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "t@example.com", "hunter2hunter2")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.AccessToken)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The old refresh token is revoked by rotation.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrPermission)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "t@example.com", Password: "hunter2hunter2", Role: "buyer"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "t@example.com", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrPermission)
}

func TestCreateUserAllowsAnyRole(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}
	ctx := context.Background()

	agent, err := svc.CreateUser(ctx, transport.CreateUserRequest{
		Email:    "agent@example.com",
		Password: "hunter2hunter2",
		Role:     "agent",
		FullName: "Field Agent",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAgent, agent.Role)
}
