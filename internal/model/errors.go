package model

import (
	"errors"
	"fmt"
)

// ErrNoBody is returned when a stream was opened but carried no body.
var ErrNoBody = errors.New("no response body")

// TransportError reports a byte stream that could not be opened or broke
// before completion.
type TransportError struct {
	Op  string // "open", "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
