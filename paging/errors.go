package paging

import (
	"errors"
	"fmt"
	"strings"
)

// Errors reported before a simulation starts. Detailed errors wrap one of
// them, so callers can classify with errors.Is.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrEmptySequence        = errors.New("empty reference sequence")
	ErrPageOutOfRange       = errors.New("page out of range")
)

// ConfigurationError reports a request parameter that cannot be used.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s %s, got %v",
		ErrInvalidConfiguration, e.Field, e.Reason, e.Value)
}

// Unwrap returns ErrInvalidConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// PageOutOfRangeError lists every reference outside [0, MaxPages), in the
// order they appear in the sequence.
type PageOutOfRangeError struct {
	Pages    []PageID
	MaxPages int
}

func (e *PageOutOfRangeError) Error() string {
	ids := make([]string, len(e.Pages))
	for i, p := range e.Pages {
		ids[i] = fmt.Sprint(int(p))
	}

	return fmt.Sprintf("%s: [%s] not in [0, %d)",
		ErrPageOutOfRange, strings.Join(ids, " "), e.MaxPages)
}

// Unwrap returns ErrPageOutOfRange.
func (e *PageOutOfRangeError) Unwrap() error {
	return ErrPageOutOfRange
}
