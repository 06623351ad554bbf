package auth

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrAuthCodeExpired    = errors.New("auth code expired")
	ErrInvalidAuthCode    = errors.New("invalid auth code")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)
