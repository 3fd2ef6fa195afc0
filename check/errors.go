package check

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ValidationError reports a message that could not be parsed while
// comparing translations.
type ValidationError struct {
	// File is the catalog file the message was read from.
	File string
	Key  string
	// Message is the raw message that failed to parse.
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: key %q: %v", e.File, e.Key, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
