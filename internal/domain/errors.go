package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDefinitionTooLong is returned when a candidate definition spans more
	// lines than the configured maximum.
	ErrDefinitionTooLong = errors.New("too many lines in function definition")

	// ErrUnknownMode is returned for an unrecognised mode name.
	ErrUnknownMode = errors.New("unknown conversion mode")
)

// DefinitionTooLongError carries the partial definition collected before the
// line limit was hit.
type DefinitionTooLongError struct {
	Max   int
	Lines []string
}

func (e *DefinitionTooLongError) Error() string {
	return fmt.Sprintf("%s (limit %d):\n%s", ErrDefinitionTooLong, e.Max, strings.Join(e.Lines, "\n"))
}

func (e *DefinitionTooLongError) Unwrap() error {
	return ErrDefinitionTooLong
}
