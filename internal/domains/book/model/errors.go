package model

import "errors"

// Repository-level errors. Services translate these into apperror values.
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrDuplicateTitle = errors.New("book title already exists")
)
