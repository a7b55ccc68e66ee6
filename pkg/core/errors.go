package core

import "errors"

// Common errors.
var (
	ErrMissingFields    = errors.New("both field names must be provided")
	ErrMissingTag       = errors.New("tag must be provided")
	ErrNotFound         = errors.New("note not found")
	ErrSyncUnsupported  = errors.New("collection does not support sync")
	ErrWatchUnsupported = errors.New("collection does not support watching")
)
