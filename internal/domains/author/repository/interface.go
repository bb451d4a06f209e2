package repository

import (
	"context"

	"catalog-backend/internal/domains/author/model"

	"github.com/google/uuid"
)

// RepositoryInterface defines data access for authors.
type RepositoryInterface interface {
	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// GetByID returns nil, nil when the author does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// List returns all authors ordered by name.
	List(ctx context.Context) ([]*model.Author, error)

	// Update renames the author. Returns model.ErrAuthorNotFound.
	Update(ctx context.Context, author *model.Author) (*model.Author, error)

	// Delete removes the author and all of its books in one atomic step and
	// reports how many books went with it. Returns model.ErrAuthorNotFound.
	Delete(ctx context.Context, id uuid.UUID) (deletedBooks int, err error)
}
