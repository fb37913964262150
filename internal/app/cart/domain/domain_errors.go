package domain

import "errors"

// Domain errors as sentinel values
var (
	// Cart errors
	ErrEmptyProductID = errors.New("product id cannot be empty")
	ErrEmptySessionID = errors.New("session id cannot be empty")
	ErrLineNotFound   = errors.New("cart line not found")

	// Storage errors
	ErrStorageUnavailable = errors.New("cart storage unavailable")
	ErrUnknownSchema      = errors.New("stored cart has unknown schema version")
)
