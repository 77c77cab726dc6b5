package app

import "errors"

// Sentinel kinds for service errors. ErrInsufficientItems is an expected
// state ("add more items"), not a fault; callers should render it as a
// friendly prompt.
var (
	ErrInsufficientItems = errors.New("not enough eligible items to compare")
	ErrInvalidArgument   = errors.New("invalid argument")
)
