package random

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidRange is returned when a range is empty or has a non-finite
	// bound.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidWeight is returned when a weight is negative or not finite.
	ErrInvalidWeight = errors.New("invalid weight")
	// ErrInvalidCharset is returned when a string is requested from an empty
	// charset.
	ErrInvalidCharset = errors.New("invalid charset")
	// ErrInvalidLength is returned for negative lengths.
	ErrInvalidLength = errors.New("invalid length")
	// ErrLengthMismatch is returned when items and weights differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
)
