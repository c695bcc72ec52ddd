package domain

import (
	"errors"
	"fmt"
)

// ErrInvalid is the base error for every validation failure. Callers use
// errors.Is to tell bad input apart from storage faults.
var ErrInvalid = errors.New("invalid data")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
