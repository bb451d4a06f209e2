// Package memstore is the in-memory entity store. One lock guards every
// relation so cascade deletes and title uniqueness checks are atomic.
package memstore

import (
	"sync"
	"time"

	authormodel "catalog-backend/internal/domains/author/model"
	authorrepo "catalog-backend/internal/domains/author/repository"
	bookmodel "catalog-backend/internal/domains/book/model"
	bookrepo "catalog-backend/internal/domains/book/repository"
	usermodel "catalog-backend/internal/domains/user/model"
	userrepo "catalog-backend/internal/domains/user/repository"

	"github.com/google/uuid"
)

var (
	_ authorrepo.RepositoryInterface = (*authorRepository)(nil)
	_ bookrepo.RepositoryInterface   = (*bookRepository)(nil)
	_ userrepo.RepositoryInterface   = (*userRepository)(nil)
)

type Store struct {
	mu      sync.RWMutex
	authors map[uuid.UUID]authormodel.Author
	books   map[uuid.UUID]bookmodel.Book
	users   map[string]usermodel.User // keyed by lower-cased username
	now     func() time.Time
}

func New() *Store {
	return &Store{
		authors: make(map[uuid.UUID]authormodel.Author),
		books:   make(map[uuid.UUID]bookmodel.Book),
		users:   make(map[string]usermodel.User),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Authors() authorrepo.RepositoryInterface { return &authorRepository{s: s} }
func (s *Store) Books() bookrepo.RepositoryInterface     { return &bookRepository{s: s} }
func (s *Store) Users() userrepo.RepositoryInterface     { return &userRepository{s: s} }

// withAuthorName returns a copy of b joined with its author. Callers hold s.mu.
func (s *Store) withAuthorName(b bookmodel.Book) *bookmodel.Book {
	b.AuthorName = s.authors[b.AuthorID].Name
	return &b
}
