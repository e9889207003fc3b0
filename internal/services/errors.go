package services

import "errors"

var (
	ErrInsufficientFunds  = errors.New("insufficient coins")
	ErrAlreadyOwned       = errors.New("item already owned")
	ErrNotOwned           = errors.New("theme not owned")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrSessionRevoked     = errors.New("session revoked or expired")
)
