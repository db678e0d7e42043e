// Package ontology provides the immutable concept graph the classifier
// walks: a DAG of chemical classes reachable from a single root, with
// memoized ancestor and descendant closures.
package ontology

import (
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Index is a dense, internal identifier for a concept within a Graph.
// It is strictly 32-bit and is used for all hot-path structures
// (adjacency slices, bitmaps, frontiers).
type Index uint32

// Graph is the immutable-after-build concept graph. It owns the full
// set of concepts, exposes exactly one root, and memoizes ancestor and
// descendant closures on first use. All accessors are safe for
// concurrent use once Build has returned.
type Graph struct {
	concepts []Concept
	byID     map[string]Index

	parents  [][]Index
	children [][]Index
	root     Index

	// hasChildAdjacency is true if any concept ended up with children
	// (declared or derived). Pattern-less concepts are auto-assigned
	// during traversal only when this holds.
	hasChildAdjacency bool

	ancOnce  sync.Once
	anc      []*roaring.Bitmap
	descOnce sync.Once
	desc     []*roaring.Bitmap
}

// Build validates the concept set and constructs the graph arena.
//
// Exactly one concept must have an empty parent set; zero roots yields
// ErrNoRoot and more than one yields ErrMultipleRoots. If no concept
// declares children, child adjacency is derived by inverting the parent
// adjacency. References to unknown concept IDs are ignored.
func Build(concepts []Concept) (*Graph, error) {
	g := &Graph{
		concepts: make([]Concept, len(concepts)),
		byID:     make(map[string]Index, len(concepts)),
		parents:  make([][]Index, len(concepts)),
		children: make([][]Index, len(concepts)),
	}
	copy(g.concepts, concepts)

	for i := range g.concepts {
		id := g.concepts[i].ID
		if _, ok := g.byID[id]; ok {
			return nil, &ErrDuplicateConcept{ID: id}
		}
		g.byID[id] = Index(i)
	}

	declaredChildren := false
	for i := range g.concepts {
		for _, pid := range g.concepts[i].Parents {
			if p, ok := g.byID[pid]; ok {
				g.parents[i] = append(g.parents[i], p)
			}
		}
		for _, cid := range g.concepts[i].Children {
			if c, ok := g.byID[cid]; ok {
				g.children[i] = append(g.children[i], c)
				declaredChildren = true
			}
		}
	}

	if !declaredChildren {
		for i := range g.concepts {
			for _, p := range g.parents[i] {
				g.children[p] = append(g.children[p], Index(i))
			}
		}
	}

	for i := range g.concepts {
		if len(g.children[i]) > 0 {
			g.hasChildAdjacency = true
			break
		}
	}

	var roots []Index
	for i := range g.concepts {
		if len(g.parents[i]) == 0 {
			roots = append(roots, Index(i))
		}
	}
	switch len(roots) {
	case 1:
		g.root = roots[0]
	case 0:
		return nil, ErrNoRoot
	default:
		ids := make([]string, len(roots))
		for i, r := range roots {
			ids[i] = g.concepts[r].ID
		}
		sort.Strings(ids)
		return nil, &ErrMultipleRoots{IDs: ids}
	}

	return g, nil
}

// Len returns the number of concepts in the graph.
func (g *Graph) Len() int {
	return len(g.concepts)
}

// Root returns the index of the single root concept.
func (g *Graph) Root() Index {
	return g.root
}

// Concept returns the concept stored at idx. The returned pointer must
// be treated as read-only.
func (g *Graph) Concept(idx Index) *Concept {
	return &g.concepts[idx]
}

// IndexOf returns the arena index for a concept ID.
func (g *Graph) IndexOf(id string) (Index, bool) {
	idx, ok := g.byID[id]
	return idx, ok
}

// Parents returns the direct parent indices of idx. The returned slice
// must not be modified.
func (g *Graph) Parents(idx Index) []Index {
	return g.parents[idx]
}

// Children returns the direct child indices of idx. The returned slice
// must not be modified.
func (g *Graph) Children(idx Index) []Index {
	return g.children[idx]
}

// HasChildAdjacency reports whether any concept has child adjacency.
func (g *Graph) HasChildAdjacency() bool {
	return g.hasChildAdjacency
}

// Ancestors returns the upward closure of idx over parent adjacency,
// excluding idx itself. The root yields an empty bitmap. The closure
// table is computed once on first use and cached for the lifetime of
// the graph; the returned bitmap must not be modified.
func (g *Graph) Ancestors(idx Index) *roaring.Bitmap {
	g.ancOnce.Do(func() {
		g.anc = g.closures(g.parents)
	})
	return g.anc[idx]
}

// Descendants returns the downward closure of idx over child adjacency,
// excluding idx itself. Leaves yield an empty bitmap. Memoized like
// Ancestors; the returned bitmap must not be modified.
func (g *Graph) Descendants(idx Index) *roaring.Bitmap {
	g.descOnce.Do(func() {
		g.desc = g.closures(g.children)
	})
	return g.desc[idx]
}

// closures computes the per-node reachability closure over adj by
// breadth-first expansion, one hierarchy level per round.
func (g *Graph) closures(adj [][]Index) []*roaring.Bitmap {
	out := make([]*roaring.Bitmap, len(g.concepts))
	for i := range g.concepts {
		closure := roaring.New()
		frontier := []Index{Index(i)}
		for len(frontier) > 0 {
			var next []Index
			for _, n := range frontier {
				for _, m := range adj[n] {
					if closure.CheckedAdd(uint32(m)) {
						next = append(next, m)
					}
				}
			}
			frontier = next
		}
		out[i] = closure
	}
	return out
}
