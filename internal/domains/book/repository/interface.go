package repository

import (
	"context"

	"catalog-backend/internal/domains/book/model"

	"github.com/google/uuid"
)

// RepositoryInterface defines data access for books. Every read fills
// Book.AuthorName from the owning author.
type RepositoryInterface interface {
	// Create inserts book. Returns model.ErrDuplicateTitle when another book
	// already has the same title, compared case-insensitively, and
	// authormodel.ErrAuthorNotFound when the author vanished meanwhile.
	Create(ctx context.Context, book *model.Book) (*model.Book, error)

	// GetByID returns nil, nil when the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List applies filters, search and ordering from q.
	List(ctx context.Context, q model.BookQuery) ([]*model.Book, error)

	// ListByAuthors returns the books of the given authors ordered by title.
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]*model.Book, error)

	// ExistsByTitle checks titles case-insensitively.
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// Update overwrites title, publication_year and author.
	// Returns model.ErrBookNotFound or model.ErrDuplicateTitle.
	Update(ctx context.Context, book *model.Book) (*model.Book, error)

	// Delete returns model.ErrBookNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
