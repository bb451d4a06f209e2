package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"catalog-backend/internal/domains/user/model"
	"catalog-backend/internal/domains/user/repository"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/jwt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var errInvalidCredentials = apperror.Validation(
	apperror.CodeInvalidLogin,
	"Unable to log in with provided credentials.",
	map[string]string{"non_field_errors": "Unable to log in with provided credentials."},
)

// dummyHash is compared against when there is no usable stored hash, so
// every failed login costs one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("catalog-dummy-password"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("generate dummy hash: %v", err))
	}
	return hash
})

var compareHash = bcrypt.CompareHashAndPassword

type ServiceInterface interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	EnsureUser(ctx context.Context, username, password string) error
}

type authService struct {
	repo       repository.RepositoryInterface
	jwtManager *jwt.Manager
}

func NewAuthService(repo repository.RepositoryInterface, jwtManager *jwt.Manager) ServiceInterface {
	return &authService{repo: repo, jwtManager: jwtManager}
}

// Login exchanges username and password for an access token.
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	// 1. Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. Find user; unknown usernames look the same as bad passwords
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			_ = compareHash(dummyHash(), []byte(req.Password))
			return nil, errInvalidCredentials
		}
		return nil, apperror.Internal("find user", err)
	}
	if !u.IsActive {
		_ = compareHash(dummyHash(), []byte(req.Password))
		return nil, errInvalidCredentials
	}

	// 3. Verify password
	if err := compareHash([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Str("username", req.Username).Msg("[AUTH] password mismatch")
		return nil, errInvalidCredentials
	}

	// 4. Issue token
	token, expiresAt, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Username)
	if err != nil {
		return nil, apperror.Internal("issue token", err)
	}

	log.Info().Str("user_id", u.ID.String()).Msg("[AUTH] token issued")
	return &model.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// EnsureUser creates an active user unless the username is already taken.
func (s *authService) EnsureUser(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.repo.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	})
	if errors.Is(err, model.ErrUsernameAlreadyExists) {
		log.Debug().Str("username", username).Msg("[AUTH] seed user already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("create user %q: %w", username, err)
	}

	log.Info().Str("username", username).Msg("[AUTH] seed user created")
	return nil
}
