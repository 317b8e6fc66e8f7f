package cli

import "errors"

// ErrUnexpectedArgs is returned when positional arguments are given.
var ErrUnexpectedArgs = errors.New("unexpected arguments")
