package models

import "errors"

var (
	ErrConflictData            = errors.New("data conflicts with existing data")
	ErrDataNotFound            = errors.New("data not found")
	ErrMissingToken            = errors.New("missing payment token")
	ErrMissingFields           = errors.New("missing required fields")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrProviderUnavailable     = errors.New("payment provider is unreachable")
	ErrInvalidProviderResponse = errors.New("unexpected payment provider response")
)
