package service

import (
	"context"
	"errors"
	"time"

	authormodel "catalog-backend/internal/domains/author/model"
	authorrepo "catalog-backend/internal/domains/author/repository"
	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/repository"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const duplicateTitleMessage = "A book with this title already exists."

type Service struct {
	repo       repository.RepositoryInterface
	authorRepo authorrepo.RepositoryInterface
	cache      cache.Cache
	cacheTTL   time.Duration
	now        func() time.Time
}

// NewBookService - Constructor. now is the clock used for the publication
// year check; nil means time.Now.
func NewBookService(
	repo repository.RepositoryInterface,
	authorRepo authorrepo.RepositoryInterface,
	c cache.Cache,
	cacheTTL time.Duration,
	now func() time.Time,
) ServiceInterface {
	if now == nil {
		now = time.Now
	}
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{
		repo:       repo,
		authorRepo: authorRepo,
		cache:      c,
		cacheTTL:   cacheTTL,
		now:        now,
	}
}

func (s *Service) currentYear() int {
	return s.now().Year()
}

func (s *Service) ListBooks(ctx context.Context, q model.BookQuery) ([]model.BookResponse, error) {
	books, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apperror.Internal("list books", err)
	}
	return model.ToResponses(books), nil
}

// GetBook reads through the book detail cache.
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	key := model.BookDetailCacheKey(id)

	var cached model.BookResponse
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[BOOK] cache read failed")
	}
	if found {
		return &cached, nil
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("get book", err)
	}
	if book == nil {
		return nil, apperror.NotFound("Book", id.String())
	}

	resp := book.ToResponse()
	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[BOOK] cache write failed")
	}
	return &resp, nil
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	// 1. Field rules, including the publication year
	req.Normalize()
	if err := req.Validate(s.currentYear()); err != nil {
		return nil, err
	}

	// 2. Resolve the author reference
	authorID, err := s.resolveAuthor(ctx, req.Author)
	if err != nil {
		return nil, err
	}

	// 3. Duplicate title pre-check; the store enforces it again on insert
	exists, err := s.repo.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, apperror.Internal("check title", err)
	}
	if exists {
		return nil, apperror.Field("title", apperror.CodeDuplicateTitle, duplicateTitleMessage)
	}

	// 4. Persist
	created, err := s.repo.Create(ctx, &model.Book{
		Title:           req.Title,
		PublicationYear: *req.PublicationYear,
		AuthorID:        authorID,
	})
	if err != nil {
		return nil, s.mapWriteError(err, req.Author)
	}

	log.Info().Str("book_id", created.ID.String()).Str("title", created.Title).Msg("[BOOK] created")
	resp := created.ToResponse()
	return &resp, nil
}

// UpdateBook handles both PUT and PATCH; req.Partial selects PATCH rules.
func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("get book", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Book", id.String())
	}

	req.Normalize()
	if err := req.Validate(s.currentYear()); err != nil {
		return nil, err
	}

	book := *existing
	req.Apply(&book)
	if req.Author != nil {
		authorID, err := s.resolveAuthor(ctx, *req.Author)
		if err != nil {
			return nil, err
		}
		book.AuthorID = authorID
	}

	updated, err := s.repo.Update(ctx, &book)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, apperror.NotFound("Book", id.String())
		}
		return nil, s.mapWriteError(err, book.AuthorID.String())
	}

	s.invalidate(ctx, id)
	log.Info().Str("book_id", id.String()).Bool("partial", req.Partial).Msg("[BOOK] updated")
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return apperror.NotFound("Book", id.String())
		}
		return apperror.Internal("delete book", err)
	}

	s.invalidate(ctx, id)
	log.Info().Str("book_id", id.String()).Msg("[BOOK] deleted")
	return nil
}

func (s *Service) resolveAuthor(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Reference("author", raw)
	}
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, apperror.Internal("resolve author", err)
	}
	if author == nil {
		return uuid.Nil, apperror.Reference("author", raw)
	}
	return author.ID, nil
}

func (s *Service) mapWriteError(err error, authorRef string) error {
	switch {
	case errors.Is(err, model.ErrDuplicateTitle):
		return apperror.Field("title", apperror.CodeDuplicateTitle, duplicateTitleMessage)
	case errors.Is(err, authormodel.ErrAuthorNotFound):
		return apperror.Reference("author", authorRef)
	default:
		return apperror.Internal("write book", err)
	}
}

func (s *Service) invalidate(ctx context.Context, id uuid.UUID) {
	key := model.BookDetailCacheKey(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[BOOK] cache invalidation failed")
	}
}
