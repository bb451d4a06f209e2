package service

import (
	"context"
	"testing"
	"time"

	"catalog-backend/internal/domains/user/model"
	"catalog-backend/internal/infrastructure/memstore"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (ServiceInterface, *jwt.Manager) {
	t.Helper()
	manager := jwt.NewManager("test-secret", time.Hour)
	svc := NewAuthService(memstore.New().Users(), manager)
	require.NoError(t, svc.EnsureUser(context.Background(), "admin", "s3cret"))
	return svc, manager
}

func TestLogin(t *testing.T) {
	svc, manager := newTestService(t)

	resp, err := svc.Login(context.Background(), model.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	claims, err := manager.ValidateAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginRejected(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name     string
		req      model.LoginRequest
		wantCode string
	}{
		{"wrong password", model.LoginRequest{Username: "admin", Password: "nope"}, apperror.CodeInvalidLogin},
		{"unknown user", model.LoginRequest{Username: "ghost", Password: "s3cret"}, apperror.CodeInvalidLogin},
		{"missing password", model.LoginRequest{Username: "admin"}, apperror.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.EnsureUser(context.Background(), "ADMIN", "other"))

	// original password still works
	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "admin", Password: "s3cret"})
	assert.NoError(t, err)
}

func TestFailedLoginsAlwaysCompareHash(t *testing.T) {
	users := memstore.New().Users()
	svc := NewAuthService(users, jwt.NewManager("test-secret", time.Hour))
	ctx := context.Background()
	require.NoError(t, svc.EnsureUser(ctx, "admin", "s3cret"))

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &model.User{Username: "retired", PasswordHash: string(hash), IsActive: false}))

	calls := 0
	prev := compareHash
	compareHash = func(hashed, password []byte) error {
		calls++
		return prev(hashed, password)
	}
	defer func() { compareHash = prev }()

	for _, req := range []model.LoginRequest{
		{Username: "ghost", Password: "s3cret"},
		{Username: "retired", Password: "s3cret"},
		{Username: "admin", Password: "wrong"},
	} {
		calls = 0
		_, err := svc.Login(ctx, req)
		appErr, ok := apperror.As(err)
		require.True(t, ok, req.Username)
		assert.Equal(t, apperror.CodeInvalidLogin, appErr.Code, req.Username)
		assert.Equal(t, 1, calls, req.Username)
	}
}

func TestDummyHashUsesServiceCost(t *testing.T) {
	cost, err := bcrypt.Cost(dummyHash())
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)
}
