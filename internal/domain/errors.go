package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidFilter      = errors.New("invalid report filter: empresa is required")
	ErrInvalidTenant      = errors.New("invalid tenant: empresa is required")
	ErrInvalidDelivery    = errors.New("invalid delivery")
	ErrStoreUnavailable   = errors.New("record store unavailable")
	ErrInvalidFormat      = errors.New("unsupported export format")
)
