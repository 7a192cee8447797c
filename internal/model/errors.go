package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration means the input location is absent or unusable.
	ErrConfiguration = errors.New("configuration error")
	// ErrSchema means a single input file lacks required columns.
	ErrSchema = errors.New("schema error")
	// ErrDataAvailability means no usable row survived cleaning.
	ErrDataAvailability = errors.New("no usable stock data")
	// ErrPrecondition means an upstream invariant was violated.
	ErrPrecondition = errors.New("computation precondition violated")
	// ErrPersistence means a sink write failed. Never fatal to the analysis.
	ErrPersistence = errors.New("persistence error")
)

// SchemaError reports the columns a file is missing.
type SchemaError struct {
	File    string
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("file %s is missing required columns [%s] (found: [%s])",
		e.File, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
