package interviews

import "errors"

var (
	ErrNotFound     = errors.New("interview not found")
	ErrNotCompleted = errors.New("interview not completed yet")
	ErrCompleted    = errors.New("interview already completed")
	ErrOutOfOrder   = errors.New("answer out of order")
	ErrInvalidIndex = errors.New("invalid question index")
)
