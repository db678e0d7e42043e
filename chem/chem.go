// Package chem defines the substructure-matching oracle consumed by the
// classification engine and a registry of pluggable chemistry backends.
//
// The engine never inspects molecules itself: every structural decision
// is delegated to a Searcher, which performs the actual atom-by-atom
// search (graph isomorphism, aromaticity normalization, stereo
// matching). Real cheminformatics backends register themselves as
// modules; the built-in "literal" module provides a dependency-free
// reference implementation for tests and smoke runs.
package chem

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Searcher performs substructure search for one chemistry backend.
//
// All methods return the non-negative number of matches of the query
// pattern in the molecule, or an error on internal backend failure.
// Implementations must be safe for concurrent use; searches are issued
// from multiple workers at once.
type Searcher interface {
	// Match returns the number of distinct matches of pattern in the
	// molecule given as SMILES. Callers that only need a boolean treat
	// count > 0 as a hit.
	Match(ctx context.Context, smiles, pattern string) (int, error)

	// MatchCount returns the total occurrence count of pattern in the
	// molecule, counting all instances. Used for multiplicity
	// directives (exact/minimum occurrence thresholds).
	MatchCount(ctx context.Context, smiles, pattern string) (int, error)

	// MatchStereo matches with stereochemistry taken into account.
	// Backends without stereo support may fall back to Match.
	MatchStereo(ctx context.Context, smiles, pattern string) (int, error)
}

// Options configures backend construction.
type Options struct {
	// Aromatic enables aromaticity perception on the molecule before
	// matching, for backends that support it.
	Aromatic bool

	// Logger receives backend diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Factory constructs a Searcher for a module.
type Factory func(opts Options) (Searcher, error)

// Module describes one registered chemistry backend.
type Module struct {
	// Name is the lower-case backend name used for lookup (e.g. "cdk").
	Name string

	// SmartsTag is the ontology tag whose pattern values this backend
	// consumes (e.g. "cdk_smarts").
	SmartsTag string

	// New constructs the backend's Searcher.
	New Factory
}

// ErrUnknownModule indicates a lookup for a backend that was never
// registered.
type ErrUnknownModule struct {
	Name string
}

func (e *ErrUnknownModule) Error() string {
	return fmt.Sprintf("chem: unknown module %q (known: %s)", e.Name, strings.Join(Known(), ", "))
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Module)
)

// Register adds a backend module to the registry. Registering the same
// name twice replaces the earlier module; names are case-insensitive.
func Register(m Module) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(m.Name)] = m
}

// Resolve returns the module registered under name (case-insensitive).
func Resolve(name string) (Module, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[strings.ToLower(name)]
	if !ok {
		return Module{}, &ErrUnknownModule{Name: name}
	}
	return m, nil
}

// Known returns the sorted names of all registered modules.
func Known() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
