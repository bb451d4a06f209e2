package model

import (
	"time"

	"catalog-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LoginRequest - POST /api-token-auth/
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("This field is required.")),
		validation.Field(&r.Password, validation.Required.Error("This field is required.")),
	))
}

// TokenResponse carries the issued access token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
