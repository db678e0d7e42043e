// Package report formats and writes the assignment results: one TSV
// block per compound plus an optional per-concept statistics file.
package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/hupe1980/chemont/blobstore"
)

// ConceptRow is one reported classification for a compound.
type ConceptRow struct {
	ID   string
	Name string
}

// Entry is the reportable result for one compound.
type Entry struct {
	ID     string
	SMILES string
	Rows   []ConceptRow
}

// StatRow is one line of the statistics file: how many compounds were
// assigned to the concept across the run.
type StatRow struct {
	ID    string
	Name  string
	Count int
}

// Create opens name in the store for writing, transparently
// gzip-compressing when the name ends in ".gz".
func Create(ctx context.Context, store blobstore.Store, name string) (io.WriteCloser, error) {
	w, err := store.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, ".gz") {
		return w, nil
	}
	return &gzipWriter{gz: gzip.NewWriter(w), inner: w}, nil
}

type gzipWriter struct {
	gz    *gzip.Writer
	inner io.WriteCloser
}

func (w *gzipWriter) Write(p []byte) (int, error) {
	return w.gz.Write(p)
}

func (w *gzipWriter) Close() error {
	if err := w.gz.Close(); err != nil {
		_ = w.inner.Close()
		return err
	}
	return w.inner.Close()
}

// WriteAssignments writes one block per entry: the compound line
// "id<TAB>smiles", one "is_a<TAB>conceptID<TAB>name" line per assigned
// concept, then a blank separator line. Entries are written in the
// given order; rows within an entry are sorted by concept ID.
func WriteAssignments(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)

	for _, entry := range entries {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", entry.ID, entry.SMILES); err != nil {
			return err
		}

		rows := append([]ConceptRow(nil), entry.Rows...)
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

		for _, row := range rows {
			if _, err := fmt.Fprintf(bw, "is_a\t%s\t%s\n", row.ID, row.Name); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteStats writes the per-concept assignment counts, sorted by
// descending count, ties by concept ID.
func WriteStats(w io.Writer, rows []StatRow) error {
	bw := bufio.NewWriter(w)

	sorted := append([]StatRow(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].ID < sorted[j].ID
	})

	for _, row := range sorted {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\n", row.ID, row.Name, row.Count); err != nil {
			return err
		}
	}

	return bw.Flush()
}
