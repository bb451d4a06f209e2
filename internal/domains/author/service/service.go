package service

import (
	"context"
	"errors"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/repository"
	bookmodel "catalog-backend/internal/domains/book/model"
	bookrepo "catalog-backend/internal/domains/book/repository"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ServiceInterface interface {
	ListAuthors(ctx context.Context) ([]model.AuthorResponse, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)
	CreateAuthor(ctx context.Context, req model.AuthorRequest) (*model.AuthorResponse, error)
	UpdateAuthor(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest) (*model.AuthorResponse, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
}

type authorService struct {
	repo     repository.RepositoryInterface
	bookRepo bookrepo.RepositoryInterface
	cache    cache.Cache
}

func NewAuthorService(
	repo repository.RepositoryInterface,
	bookRepo bookrepo.RepositoryInterface,
	c cache.Cache,
) ServiceInterface {
	if c == nil {
		c = cache.NewNoop()
	}
	return &authorService{repo: repo, bookRepo: bookRepo, cache: c}
}

func (s *authorService) ListAuthors(ctx context.Context) ([]model.AuthorResponse, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal("list authors", err)
	}
	return s.withBooks(ctx, authors)
}

func (s *authorService) GetAuthor(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("get author", err)
	}
	if author == nil {
		return nil, apperror.NotFound("Author", id.String())
	}
	return s.single(ctx, author)
}

func (s *authorService) CreateAuthor(ctx context.Context, req model.AuthorRequest) (*model.AuthorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Author{Name: req.Name})
	if err != nil {
		return nil, apperror.Internal("create author", err)
	}

	log.Info().Str("author_id", created.ID.String()).Msg("[AUTHOR] created")
	resp := created.ToResponse(nil)
	return &resp, nil
}

func (s *authorService) UpdateAuthor(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest) (*model.AuthorResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("get author", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Author", id.String())
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Name == nil {
		return s.single(ctx, existing)
	}

	existing.Name = *req.Name
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, apperror.NotFound("Author", id.String())
		}
		return nil, apperror.Internal("update author", err)
	}

	// cached book details carry author_name
	s.invalidateBooks(ctx)
	log.Info().Str("author_id", id.String()).Msg("[AUTHOR] updated")
	return s.single(ctx, updated)
}

// DeleteAuthor removes the author together with all of its books.
func (s *authorService) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return apperror.NotFound("Author", id.String())
		}
		return apperror.Internal("delete author", err)
	}

	s.invalidateBooks(ctx)
	log.Info().
		Str("author_id", id.String()).
		Int("books_deleted", deleted).
		Msg("[AUTHOR] deleted")
	return nil
}

func (s *authorService) single(ctx context.Context, author *model.Author) (*model.AuthorResponse, error) {
	out, err := s.withBooks(ctx, []*model.Author{author})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// withBooks loads the nested books of every author with one query.
func (s *authorService) withBooks(ctx context.Context, authors []*model.Author) ([]model.AuthorResponse, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	books, err := s.bookRepo.ListByAuthors(ctx, ids)
	if err != nil {
		return nil, apperror.Internal("list author books", err)
	}

	byAuthor := make(map[uuid.UUID][]bookmodel.BookResponse, len(authors))
	for _, b := range books {
		byAuthor[b.AuthorID] = append(byAuthor[b.AuthorID], b.ToResponse())
	}

	out := make([]model.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ToResponse(byAuthor[a.ID]))
	}
	return out, nil
}

func (s *authorService) invalidateBooks(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, bookmodel.BookDetailCachePattern); err != nil {
		log.Warn().Err(err).Msg("[AUTHOR] book cache invalidation failed")
	}
}
