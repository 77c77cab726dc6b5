package api

import "errors"

// Sentinel kinds for request validation errors.
var (
	ErrBadBody        = errors.New("malformed request body")
	ErrMissingWinner  = errors.New("missing winner_id")
	ErrMissingLoser   = errors.New("missing loser_id")
	ErrSelfComparison = errors.New("winner_id and loser_id must differ")
	ErrMissingTitle   = errors.New("missing title")
	ErrBadLimit       = errors.New("limit must be a positive integer")
	ErrLimitExceeded  = errors.New("limit exceeds the configured maximum")
	ErrBadMinMatches  = errors.New("min_matches must be a non-negative integer")
)
