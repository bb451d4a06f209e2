package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is the stored record. AuthorName is not stored; reads fill it from
// the owning Author.
type Book struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	PublicationYear int       `json:"publication_year" db:"publication_year"`
	AuthorID        uuid.UUID `json:"author" db:"author_id"`
	AuthorName      string    `json:"author_name" db:"-"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// BookResponse is the flat wire representation of a Book.
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	Author          uuid.UUID `json:"author"`
	AuthorName      string    `json:"author_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		Author:          b.AuthorID,
		AuthorName:      b.AuthorName,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ToResponses keeps the input order.
func ToResponses(books []*Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, b.ToResponse())
	}
	return out
}

const bookDetailCachePrefix = "book:detail:"

// BookDetailCachePattern matches every cached book detail.
const BookDetailCachePattern = bookDetailCachePrefix + "*"

func BookDetailCacheKey(id uuid.UUID) string {
	return bookDetailCachePrefix + id.String()
}
