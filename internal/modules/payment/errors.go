package payment

import "errors"

var (
	ErrNotFound        = errors.New("payment not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrValidation      = errors.New("validation failed")
)
