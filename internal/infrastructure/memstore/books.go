package memstore

import (
	"context"
	"fmt"
	"strings"

	authormodel "catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/book/model"

	"github.com/google/uuid"
)

type bookRepository struct {
	s *Store
}

// titleTaken reports whether another book already uses title. Callers hold s.mu.
func (r *bookRepository) titleTaken(title string, except uuid.UUID) bool {
	for id, b := range r.s.books {
		if id != except && strings.EqualFold(b.Title, title) {
			return true
		}
	}
	return false
}

func (r *bookRepository) Create(_ context.Context, book *model.Book) (*model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[book.AuthorID]; !ok {
		return nil, fmt.Errorf("create book: %w", authormodel.ErrAuthorNotFound)
	}
	if r.titleTaken(book.Title, uuid.Nil) {
		return nil, fmt.Errorf("create book %q: %w", book.Title, model.ErrDuplicateTitle)
	}

	b := *book
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := r.s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	b.AuthorName = ""
	r.s.books[b.ID] = b

	return r.s.withAuthorName(b), nil
}

func (r *bookRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, nil
	}
	return r.s.withAuthorName(b), nil
}

func (r *bookRepository) List(_ context.Context, q model.BookQuery) ([]*model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	books := make([]*model.Book, 0, len(r.s.books))
	for _, b := range r.s.books {
		joined := r.s.withAuthorName(b)
		if q.Matches(joined) {
			books = append(books, joined)
		}
	}
	model.SortBooks(books, q.Ordering)
	return books, nil
}

func (r *bookRepository) ListByAuthors(_ context.Context, authorIDs []uuid.UUID) ([]*model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = struct{}{}
	}

	books := make([]*model.Book, 0)
	for _, b := range r.s.books {
		if _, ok := wanted[b.AuthorID]; ok {
			books = append(books, r.s.withAuthorName(b))
		}
	}
	model.SortBooks(books, model.DefaultOrdering)
	return books, nil
}

func (r *bookRepository) ExistsByTitle(_ context.Context, title string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.titleTaken(title, uuid.Nil), nil
}

func (r *bookRepository) Update(_ context.Context, book *model.Book) (*model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.books[book.ID]
	if !ok {
		return nil, fmt.Errorf("update book %s: %w", book.ID, model.ErrBookNotFound)
	}
	if _, ok := r.s.authors[book.AuthorID]; !ok {
		return nil, fmt.Errorf("update book %s: %w", book.ID, authormodel.ErrAuthorNotFound)
	}
	if r.titleTaken(book.Title, book.ID) {
		return nil, fmt.Errorf("update book %s: %w", book.ID, model.ErrDuplicateTitle)
	}

	stored.Title = book.Title
	stored.PublicationYear = book.PublicationYear
	stored.AuthorID = book.AuthorID
	stored.UpdatedAt = r.s.now()
	r.s.books[stored.ID] = stored

	return r.s.withAuthorName(stored), nil
}

func (r *bookRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[id]; !ok {
		return fmt.Errorf("delete book %s: %w", id, model.ErrBookNotFound)
	}
	delete(r.s.books, id)
	return nil
}
