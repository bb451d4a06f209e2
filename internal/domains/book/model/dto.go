package model

import (
	"fmt"
	"math"
	"strings"

	"catalog-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const maxTitleLength = 200

var titleTooLong = fmt.Sprintf("Ensure this field has no more than %d characters.", maxTitleLength)

// CreateBookRequest - POST /books/
type CreateBookRequest struct {
	Title           string `json:"title"`
	PublicationYear *int   `json:"publication_year"`
	Author          string `json:"author"`
}

// Normalize trims surrounding whitespace from the text fields.
func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}

// Validate checks required fields and the publication year against currentYear.
func (r CreateBookRequest) Validate(currentYear int) error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("This field is required."),
			validation.RuneLength(0, maxTitleLength).Error(titleTooLong),
		),
		validation.Field(&r.PublicationYear,
			validation.NotNil.Error("This field is required."),
			minPublicationYear,
			publicationYearRule(r.PublicationYear, currentYear),
		),
		validation.Field(&r.Author,
			validation.Required.Error("This field is required."),
			is.UUID.Error("Must be a valid author id."),
		),
	))
}

// UpdateBookRequest - PUT/PATCH /books/{id}/
// Partial is set by the handler for PATCH; absent fields keep their value.
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	Author          *string `json:"author"`
	Partial         bool    `json:"-"`
}

// Normalize trims surrounding whitespace from the text fields that were sent.
func (r *UpdateBookRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.Author != nil {
		a := strings.TrimSpace(*r.Author)
		r.Author = &a
	}
}

// Validate applies the update rules. The title must be present and non-empty
// for both full and partial updates.
func (r UpdateBookRequest) Validate(currentYear int) error {
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		return apperror.Field("title", apperror.CodeEmptyTitle, "Title cannot be empty.")
	}

	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.RuneLength(0, maxTitleLength).Error(titleTooLong),
		),
		validation.Field(&r.PublicationYear,
			validation.When(!r.Partial, validation.NotNil.Error("This field is required.")),
			minPublicationYear,
			publicationYearRule(r.PublicationYear, currentYear),
		),
		validation.Field(&r.Author,
			validation.When(!r.Partial, validation.NotNil.Error("This field is required.")),
			validation.When(r.Author != nil,
				validation.Required.Error("This field may not be blank."),
				is.UUID.Error("Must be a valid author id."),
			),
		),
	))
}

// Apply copies the provided scalar fields onto b. The author reference is
// resolved by the service.
func (r UpdateBookRequest) Apply(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.PublicationYear != nil {
		b.PublicationYear = *r.PublicationYear
	}
}

// minPublicationYear keeps years inside the stored integer range.
var minPublicationYear = validation.Min(math.MinInt32).ErrorObject(
	validation.NewError(apperror.CodeInvalidInput, fmt.Sprintf("Ensure this value is greater than or equal to %d.", math.MinInt32)),
)

// publicationYearRule rejects years after currentYear, naming both values.
func publicationYearRule(year *int, currentYear int) validation.Rule {
	msg := "Publication year cannot be in the future."
	if year != nil {
		msg = fmt.Sprintf("Publication year %d cannot be in the future. Current year is %d.", *year, currentYear)
	}
	return validation.Max(currentYear).ErrorObject(validation.NewError(apperror.CodeFutureYear, msg))
}
