package model

import (
	"strings"

	"catalog-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxNameLength = 100

// AuthorRequest is used for create, PUT and PATCH. Nested books are not accepted.
type AuthorRequest struct {
	Name string `json:"name"`
}

// Normalize trims surrounding whitespace from the name.
func (r *AuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r AuthorRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("This field is required."),
			validation.RuneLength(0, maxNameLength).Error("Ensure this field has no more than 100 characters."),
		),
	))
}

// UpdateAuthorRequest - PUT/PATCH /authors/{id}/
// Partial is set by the handler for PATCH; an absent name keeps the current one.
type UpdateAuthorRequest struct {
	Name    *string `json:"name"`
	Partial bool    `json:"-"`
}

func (r *UpdateAuthorRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

func (r UpdateAuthorRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(!r.Partial, validation.NotNil.Error("This field is required.")),
			validation.When(r.Name != nil,
				validation.Required.Error("This field may not be blank."),
				validation.RuneLength(0, maxNameLength).Error("Ensure this field has no more than 100 characters."),
			),
		),
	))
}
