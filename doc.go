// Package chemont assigns chemical compounds to concepts of a
// hierarchical classification ontology.
//
// Membership in a concept is decided by evaluating a boolean
// pattern-combinator expression over structural patterns (SMARTS)
// against the compound, delegating every structural query to a
// pluggable substructure-matching backend (see package chem). The
// assignment follows the ontology top-down: a concept is only
// considered once all of its parents matched, and the reported result
// is reduced to the most specific concepts per compound.
//
// # Quick Start
//
//	ctx := context.Background()
//	summary, err := chemont.Run(ctx, chemont.RunConfig{
//	    Module:       "literal",
//	    OntologyFile: "classes.obo",
//	    CompoundFile: "compounds.tsv",
//	    OutputFile:   "assignments.tsv",
//	    Threads:      8,
//	})
//
// The granular building blocks (ontology.Graph, smarts.Evaluator,
// classify.Scheduler, classify.Filter) are exported for callers that
// need more control than the Run pipeline offers.
package chemont
