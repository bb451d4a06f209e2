package memstore

import (
	"context"
	"fmt"
	"sort"

	"catalog-backend/internal/domains/author/model"

	"github.com/google/uuid"
)

type authorRepository struct {
	s *Store
}

func (r *authorRepository) Create(_ context.Context, author *model.Author) (*model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a := *author
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.authors[a.ID] = a

	return &a, nil
}

func (r *authorRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.authors[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *authorRepository) List(_ context.Context) ([]*model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	authors := make([]*model.Author, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		a := a
		authors = append(authors, &a)
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Name != authors[j].Name {
			return authors[i].Name < authors[j].Name
		}
		return authors[i].ID.String() < authors[j].ID.String()
	})
	return authors, nil
}

func (r *authorRepository) Update(_ context.Context, author *model.Author) (*model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.authors[author.ID]
	if !ok {
		return nil, fmt.Errorf("update author %s: %w", author.ID, model.ErrAuthorNotFound)
	}
	stored.Name = author.Name
	stored.UpdatedAt = r.s.now()
	r.s.authors[stored.ID] = stored

	return &stored, nil
}

func (r *authorRepository) Delete(_ context.Context, id uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[id]; !ok {
		return 0, fmt.Errorf("delete author %s: %w", id, model.ErrAuthorNotFound)
	}

	deleted := 0
	for bookID, b := range r.s.books {
		if b.AuthorID == id {
			delete(r.s.books, bookID)
			deleted++
		}
	}
	delete(r.s.authors, id)

	return deleted, nil
}
