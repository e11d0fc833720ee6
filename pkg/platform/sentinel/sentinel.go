package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and cache tiers return these
// (optionally wrapped) so the composer can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: object does not exist in the store or tier
// - ErrUnavailable: backing service temporarily unreachable
// - ErrInvalidState: store asked to do something its configuration forbids
//
// For validation errors (bad input, unknown categories), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
