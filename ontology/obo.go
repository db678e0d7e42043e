package ontology

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// OBO tags recognized by the loader.
const (
	tagID       = "id"
	tagName     = "name"
	tagIsA      = "is_a"
	tagHasA     = "has_a"
	tagObsolete = "is_obsolete"

	termMarker = "[Term]"
)

// maxOBOLineSize bounds a single ontology line. SMARTS values are long
// but nowhere near this.
const maxOBOLineSize = 1 << 20

// LoadOBO reads a stanza-based ontology file and returns its concept
// records. smartsTag selects which library-specific pattern tag is
// loaded (e.g. "cdk_smarts"); values of all other *_smarts tags are
// ignored.
//
// Per stanza: tag values are truncated at an inline " !" comment,
// pattern values have the escape sequences `\!` and `\\` un-escaped,
// and an `is_obsolete: true` line drops the whole stanza. Stanzas that
// declare parents but carry neither patterns nor children are dropped
// as well since they can never classify anything. A new section header
// without a preceding blank line is a format error.
func LoadOBO(r io.Reader, smartsTag string) ([]Concept, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxOBOLineSize)

	var concepts []Concept
	line := 0

	for sc.Scan() {
		line++
		if !strings.HasPrefix(sc.Text(), termMarker) {
			continue
		}

		concept, obsolete, err := readStanza(sc, &line, smartsTag)
		if err != nil {
			return nil, err
		}
		if obsolete || concept.ID == "" {
			continue
		}
		// Leaves without patterns are useless: they declare parents but
		// can neither match nor group anything.
		if len(concept.Parents) > 0 && len(concept.Expressions) == 0 && len(concept.Children) == 0 {
			continue
		}
		concepts = append(concepts, concept)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ontology: read: %w", err)
	}

	return concepts, nil
}

// readStanza consumes tag lines until the terminating blank line (or EOF).
func readStanza(sc *bufio.Scanner, line *int, smartsTag string) (Concept, bool, error) {
	var c Concept
	obsolete := false

	for sc.Scan() {
		*line = *line + 1
		text := sc.Text()

		if strings.HasPrefix(text, "[") {
			return c, false, &ErrStanzaFormat{Line: *line, Msg: "start of new stanza without preceding blank line"}
		}
		if strings.TrimSpace(text) == "" {
			break
		}

		sep := strings.Index(text, ":")
		if sep < 2 {
			continue
		}
		tag := text[:sep]
		value := strings.TrimSpace(text[sep+1:])

		// Strip inline comment.
		if off := strings.Index(value, " !"); off >= 0 {
			value = strings.TrimSpace(value[:off])
		}

		switch {
		case tag == tagID:
			c.ID = value
		case tag == tagName:
			c.Name = value
		case tag == tagIsA:
			c.Parents = append(c.Parents, value)
		case tag == tagHasA:
			c.Children = append(c.Children, value)
		case tag == tagObsolete:
			if value == "true" {
				obsolete = true
			}
		case tag == smartsTag:
			c.Expressions = append(c.Expressions, unescapeSmarts(value))
		}
	}

	return c, obsolete, nil
}

// unescapeSmarts reverses the escaping applied to pattern values in the
// ontology file: `\!` protects a negation marker, `\\` a backslash.
func unescapeSmarts(s string) string {
	s = strings.ReplaceAll(s, `\!`, "!")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
