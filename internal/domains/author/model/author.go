package model

import (
	"time"

	bookmodel "catalog-backend/internal/domains/book/model"

	"github.com/google/uuid"
)

type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AuthorResponse nests the author's books. Books are read-only on this payload.
type AuthorResponse struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	Books     []bookmodel.BookResponse `json:"books"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func (a *Author) ToResponse(books []bookmodel.BookResponse) AuthorResponse {
	if books == nil {
		books = []bookmodel.BookResponse{}
	}
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Books:     books,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
