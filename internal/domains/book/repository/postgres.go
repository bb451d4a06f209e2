package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	authormodel "catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/book/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	now := time.Now().UTC()

	query := `
		WITH inserted AS (
			INSERT INTO books (id, title, publication_year, author_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id, title, publication_year, author_id, created_at, updated_at
		)
		SELECT i.id, i.title, i.publication_year, i.author_id, a.name, i.created_at, i.updated_at
		FROM inserted i
		JOIN authors a ON a.id = i.author_id`

	created, err := scanBook(r.pool.QueryRow(ctx, query, book.ID, book.Title, book.PublicationYear, book.AuthorID, now))
	if err != nil {
		switch {
		case isPgError(err, uniqueViolation):
			return nil, fmt.Errorf("create book %q: %w", book.Title, model.ErrDuplicateTitle)
		case isPgError(err, foreignKeyViolation):
			return nil, fmt.Errorf("create book %q: %w", book.Title, authormodel.ErrAuthorNotFound)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := selectBookColumns + `
		WHERE b.id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) List(ctx context.Context, q model.BookQuery) ([]*model.Book, error) {
	query, args := buildListQuery(q)
	log.Debug().Str("query", query).Int("args", len(args)).Msg("[BOOK] list query")

	return r.queryBooks(ctx, query, args...)
}

func (r *postgresRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]*model.Book, error) {
	if len(authorIDs) == 0 {
		return []*model.Book{}, nil
	}
	query := selectBookColumns + `
		WHERE b.author_id = ANY($1::uuid[])
		ORDER BY b.title COLLATE "C" ASC, b.id ASC`

	return r.queryBooks(ctx, query, authorIDs)
}

func (r *postgresRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE LOWER(title) = LOWER($1))`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book title: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	query := `
		WITH updated AS (
			UPDATE books
			SET title = $2, publication_year = $3, author_id = $4, updated_at = $5
			WHERE id = $1
			RETURNING id, title, publication_year, author_id, created_at, updated_at
		)
		SELECT u.id, u.title, u.publication_year, u.author_id, a.name, u.created_at, u.updated_at
		FROM updated u
		JOIN authors a ON a.id = u.author_id`

	updated, err := scanBook(r.pool.QueryRow(ctx, query,
		book.ID, book.Title, book.PublicationYear, book.AuthorID, time.Now().UTC()))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("update book %s: %w", book.ID, model.ErrBookNotFound)
		case isPgError(err, uniqueViolation):
			return nil, fmt.Errorf("update book %s: %w", book.ID, model.ErrDuplicateTitle)
		case isPgError(err, foreignKeyViolation):
			return nil, fmt.Errorf("update book %s: %w", book.ID, authormodel.ErrAuthorNotFound)
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete book %s: %w", id, model.ErrBookNotFound)
	}
	return nil
}

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]*model.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.PublicationYear,
		&b.AuthorID,
		&b.AuthorName,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
