package company

import "errors"

var (
	ErrNotFound   = errors.New("company not found")
	ErrValidation = errors.New("validation failed")
)
