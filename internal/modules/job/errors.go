package job

import "errors"

var (
	ErrNotFound        = errors.New("job not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrValidation      = errors.New("validation failed")
)
