package chemont

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCompounds is returned when the compound file contains no
	// usable entries.
	ErrNoCompounds = errors.New("chemont: no compounds to process")
)

// ErrMissingParameter indicates a required run parameter was not set.
// Configuration errors are reported before any processing begins.
type ErrMissingParameter struct {
	Name string
}

func (e *ErrMissingParameter) Error() string {
	return fmt.Sprintf("chemont: parameter %q not set", e.Name)
}
