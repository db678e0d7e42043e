package ontology

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoRoot is returned by Build when no concept has an empty parent set.
	ErrNoRoot = errors.New("ontology: no root concept found")
)

// ErrMultipleRoots indicates that more than one concept has an empty
// parent set. An ontology must have exactly one root.
type ErrMultipleRoots struct {
	IDs []string
}

func (e *ErrMultipleRoots) Error() string {
	return fmt.Sprintf("ontology: multiple root concepts found: %s", strings.Join(e.IDs, ", "))
}

// ErrDuplicateConcept indicates that two concepts declare the same ID.
type ErrDuplicateConcept struct {
	ID string
}

func (e *ErrDuplicateConcept) Error() string {
	return fmt.Sprintf("ontology: duplicate concept id %q", e.ID)
}

// ErrStanzaFormat indicates a malformed stanza in the ontology file.
type ErrStanzaFormat struct {
	Line int
	Msg  string
}

func (e *ErrStanzaFormat) Error() string {
	return fmt.Sprintf("ontology: line %d: %s", e.Line, e.Msg)
}
