package bill

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned for input that is not a finite decimal number.
var ErrInvalidAmount = errors.New("invalid amount")

// AmountError reports the input that failed to parse as an amount.
type AmountError struct {
	Input string
	Err   error
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *AmountError) Unwrap() error {
	return e.Err
}
