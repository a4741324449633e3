package core

import "errors"

var (
	// ErrInvalidArgument reports a structurally invalid input such as a zero-value grid.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange reports a coordinate outside the grid bounds.
	ErrOutOfRange = errors.New("coordinate out of range")
)
