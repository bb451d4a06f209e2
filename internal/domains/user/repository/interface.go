package repository

import (
	"context"

	"catalog-backend/internal/domains/user/model"
)

// RepositoryInterface is the credential store.
type RepositoryInterface interface {
	// Create returns model.ErrUsernameAlreadyExists on a case-insensitive clash.
	Create(ctx context.Context, user *model.User) error

	// FindByUsername matches case-insensitively; returns model.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
