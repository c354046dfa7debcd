package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownColorIndex is matched by every UnknownColorIndexError.
var ErrUnknownColorIndex = errors.New("unknown color index")

// ErrNoInk is returned when the color of pen 0 is requested.
var ErrNoInk = errors.New("pen has no ink")

// UnknownColorIndexError is raised when a pen outside the color table is selected.
// It aborts the whole conversion.
type UnknownColorIndexError struct {
	Pen uint8
}

func (e *UnknownColorIndexError) Error() string {
	return fmt.Sprintf("unknown color index %d (valid pens are 0..%d)", e.Pen, MaxPen)
}

// Is makes errors.Is(err, ErrUnknownColorIndex) work.
func (e *UnknownColorIndexError) Is(target error) bool {
	return target == ErrUnknownColorIndex
}
