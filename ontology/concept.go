package ontology

// Concept is one node of the classification ontology: a chemical or
// structural class together with its hierarchy references and the raw
// pattern-expression strings that decide membership.
//
// Concepts are created once during ontology load and are immutable
// afterwards.
type Concept struct {
	// ID is the unique, opaque concept identifier (e.g. an OCID).
	ID string

	// Name is the optional display label.
	Name string

	// Parents holds IDs of direct parent concepts (is_a references).
	// Empty only for the root concept.
	Parents []string

	// Children holds IDs of direct child concepts (has_a references).
	// May be empty; if no concept in the ontology declares children,
	// child adjacency is derived by inverting Parents during Build.
	Children []string

	// Expressions is the ordered list of raw pattern-expression strings
	// attached to the concept. Order is irrelevant for the OR semantics.
	Expressions []string
}

// HasExpressions reports whether the concept carries any pattern
// expressions. Concepts without expressions are structural grouping
// nodes and are not reportable classifications.
func (c *Concept) HasExpressions() bool {
	return len(c.Expressions) > 0
}
