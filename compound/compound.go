// Package compound loads the compounds to classify from the delimited
// flat-file format the assignment pipeline consumes.
package compound

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Compound is one item to classify: an opaque identifier plus its
// structural representation. Both are read-only to the engine.
type Compound struct {
	ID     string
	SMILES string
}

// Load reads a TAB-separated compound file: SMILES in the first column,
// ID in the second. Lines starting with '#' are comments; lines with
// fewer than two fields are skipped. Input order is preserved so output
// is deterministic; a repeated ID keeps its first position but takes
// the last SMILES seen.
func Load(r io.Reader) ([]Compound, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	var compounds []Compound
	seen := make(map[string]int)

	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		smiles, id := fields[0], fields[1]

		if at, ok := seen[id]; ok {
			compounds[at].SMILES = smiles
			continue
		}
		seen[id] = len(compounds)
		compounds = append(compounds, Compound{ID: id, SMILES: smiles})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("compound: read: %w", err)
	}

	return compounds, nil
}
