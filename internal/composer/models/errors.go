package models

import "errors"

// Composition failure taxonomy. Callers wrap these with context and match them
// with errors.Is.
var (
	// ErrInvalidCategory is returned before any I/O for categories outside the taxonomy.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidView is returned for views outside the closed set.
	ErrInvalidView = errors.New("invalid view")
	// ErrInvalidFormat is returned for unsupported output formats.
	ErrInvalidFormat = errors.New("invalid output format")
	// ErrPlateNotFound is fatal: there is nothing to composite onto.
	ErrPlateNotFound = errors.New("plate not found")
	// ErrLayerMissing marks a layer absent from the store; it is reported, never fatal.
	ErrLayerMissing = errors.New("layer missing")
	// ErrDecode marks corrupted upstream data and aborts the composite.
	ErrDecode = errors.New("decode error")
	// ErrCacheWrite marks a durable tier write failure; the result is still returned.
	ErrCacheWrite = errors.New("cache write failure")
	// ErrOriginUnavailable is fatal only when it blocks plate retrieval.
	ErrOriginUnavailable = errors.New("origin store unavailable")
)
