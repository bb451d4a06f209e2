package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, author *model.Author) (*model.Author, error) {
	if author.ID == uuid.Nil {
		author.ID = uuid.New()
	}
	query := `
		INSERT INTO authors (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id, name, created_at, updated_at`

	created, err := scanAuthor(r.pool.QueryRow(ctx, query, author.ID, author.Name, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `SELECT id, name, created_at, updated_at FROM authors WHERE id = $1`

	author, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return author, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Author, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM authors
		ORDER BY name COLLATE "C" ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]*model.Author, 0)
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author rows: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, author *model.Author) (*model.Author, error) {
	query := `
		UPDATE authors SET name = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query, author.ID, author.Name, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update author %s: %w", author.ID, model.ErrAuthorNotFound)
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return updated, nil
}

// Delete removes the books explicitly before the author so the cascade count
// is known; the foreign key's ON DELETE CASCADE covers any other writer.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int, error) {
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM authors WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, fmt.Errorf("delete author %s: %w", id, model.ErrAuthorNotFound)
			}
			return 0, fmt.Errorf("failed to lock author: %w", err)
		}

		books, err := tx.Exec(ctx, `DELETE FROM books WHERE author_id = $1`, id)
		if err != nil {
			return 0, fmt.Errorf("failed to delete author books: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id); err != nil {
			return 0, fmt.Errorf("failed to delete author: %w", err)
		}
		return int(books.RowsAffected()), nil
	})
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	if err := row.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
