package catalog

import "errors"

// Catalog errors as sentinel values
var (
	// ErrUpstreamUnavailable covers every network-level failure: refused
	// connections, timeouts, non-2xx statuses, and non-JSON bodies. It is
	// recovered locally by treating the batch as empty.
	ErrUpstreamUnavailable = errors.New("catalog upstream unavailable")

	ErrProductNotFound = errors.New("product not found")

	// Pager state errors
	ErrAlreadyStarted = errors.New("initial catalog load already started")
	ErrLoadInProgress = errors.New("catalog load already in progress")
	ErrExhausted      = errors.New("catalog has no more batches")
)
