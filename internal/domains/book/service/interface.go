package service

import (
	"context"

	"catalog-backend/internal/domains/book/model"

	"github.com/google/uuid"
)

// ServiceInterface is the book use-case surface shared by the /books/,
// /books_all/ and legacy write routes.
type ServiceInterface interface {
	ListBooks(ctx context.Context, q model.BookQuery) ([]model.BookResponse, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}
