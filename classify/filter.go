package classify

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/chemont/ontology"
)

// Mode selects which view of a compound's assigned set is reported.
type Mode int

const (
	// ModeAll reports the full ancestor-consistent set.
	ModeAll Mode = iota
	// ModeLeaves reports only the most specific concepts.
	ModeLeaves
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeLeaves:
		return "leaves"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a report mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "all":
		return ModeAll, nil
	case "leaves", "parents":
		return ModeLeaves, nil
	default:
		return 0, fmt.Errorf("classify: unknown report mode %q (want all or leaves)", s)
	}
}

// Filter post-processes a compound's raw assigned set into the
// ancestor-consistent and most-specific-only views used for reporting.
type Filter struct {
	graph *ontology.Graph
}

// NewFilter creates a Filter over the given graph.
func NewFilter(graph *ontology.Graph) *Filter {
	return &Filter{graph: graph}
}

// Apply returns the view of assigned selected by mode.
func (f *Filter) Apply(assigned *roaring.Bitmap, mode Mode) *roaring.Bitmap {
	consistent := f.AncestorConsistent(assigned)
	if mode == ModeLeaves {
		return f.leavesOf(consistent)
	}
	return consistent
}

// AncestorConsistent drops every assigned concept that is parentless
// (structural roots are scaffolding, not classifications), that has an
// ancestor missing from the assigned set, or that carries no pattern
// expressions.
func (f *Filter) AncestorConsistent(assigned *roaring.Bitmap) *roaring.Bitmap {
	out := roaring.New()

	it := assigned.Iterator()
	for it.HasNext() {
		idx := ontology.Index(it.Next())

		if len(f.graph.Parents(idx)) == 0 {
			continue
		}
		if !f.graph.Concept(idx).HasExpressions() {
			continue
		}
		if !isSubset(f.graph.Ancestors(idx), assigned) {
			continue
		}
		out.Add(uint32(idx))
	}

	return out
}

// Leaves returns the most-specific-only view: the ancestor-consistent
// set minus every concept that still has a pattern-bearing descendant
// in that set.
func (f *Filter) Leaves(assigned *roaring.Bitmap) *roaring.Bitmap {
	return f.leavesOf(f.AncestorConsistent(assigned))
}

func (f *Filter) leavesOf(consistent *roaring.Bitmap) *roaring.Bitmap {
	out := roaring.New()

	it := consistent.Iterator()
	for it.HasNext() {
		idx := ontology.Index(it.Next())

		if f.hasReportedDescendant(idx, consistent) {
			continue
		}
		out.Add(uint32(idx))
	}

	return out
}

// hasReportedDescendant reports whether any descendant of idx is both
// present in the set and pattern-bearing. One is enough.
func (f *Filter) hasReportedDescendant(idx ontology.Index, set *roaring.Bitmap) bool {
	it := f.graph.Descendants(idx).Iterator()
	for it.HasNext() {
		desc := ontology.Index(it.Next())
		if set.Contains(uint32(desc)) && f.graph.Concept(desc).HasExpressions() {
			return true
		}
	}
	return false
}

// isSubset reports whether every element of sub is contained in super.
func isSubset(sub, super *roaring.Bitmap) bool {
	it := sub.Iterator()
	for it.HasNext() {
		if !super.Contains(it.Next()) {
			return false
		}
	}
	return true
}
