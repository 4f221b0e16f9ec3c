package auth

import "errors"

var (
	ErrDuplicateUser      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("username and password are required")
	ErrPersistence        = errors.New("persistence failure")
)
