package models

import "errors"

// ErrNotFound indicates an operation referenced an identity that is not stored.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument indicates the caller supplied a value the operation cannot accept.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInsufficientCapacity indicates a transfer asked for more head than the origin holds.
var ErrInsufficientCapacity = errors.New("insufficient capacity")

// ErrStoreCorrupt indicates persisted data could not be decoded. It is never recovered locally.
var ErrStoreCorrupt = errors.New("store corrupt")
