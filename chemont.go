package chemont

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/chemont/blobstore"
	"github.com/hupe1980/chemont/chem"
	"github.com/hupe1980/chemont/classify"
	"github.com/hupe1980/chemont/compound"
	"github.com/hupe1980/chemont/ontology"
	"github.com/hupe1980/chemont/report"
	"github.com/hupe1980/chemont/smarts"
)

// RunConfig holds the parameters of one assignment run.
type RunConfig struct {
	// Module is the chemistry backend name (see package chem).
	Module string

	// OntologyFile is the stanza-based ontology file with pattern
	// expressions.
	OntologyFile string

	// CompoundFile is the TAB-separated SMILES/ID file.
	CompoundFile string

	// OutputFile receives the assignment report. A ".gz" suffix
	// enables gzip compression.
	OutputFile string

	// StatsFile, if set, receives per-concept assignment counts.
	StatsFile string

	// Threads is the worker-pool size; non-positive defaults to 1.
	Threads int

	// Mode selects the reported view: "all" or "leaves" (default).
	Mode string

	// MaxCompounds caps how many compounds are processed; 0 means all.
	MaxCompounds int

	// Aromatic enables aromaticity perception in the backend.
	Aromatic bool

	// Echo additionally prints each compound's report block to stdout.
	Echo bool

	// AppendModuleSuffix appends "_<module>.tsv" to OutputFile.
	AppendModuleSuffix bool
}

// Validate checks that all required parameters are set.
func (c *RunConfig) Validate() error {
	for _, p := range []struct {
		name  string
		value string
	}{
		{"module", c.Module},
		{"ontology-file", c.OntologyFile},
		{"compound-file", c.CompoundFile},
		{"output-file", c.OutputFile},
	} {
		if strings.TrimSpace(p.value) == "" {
			return &ErrMissingParameter{Name: p.name}
		}
	}
	if c.Mode != "" {
		if _, err := classify.ParseMode(c.Mode); err != nil {
			return err
		}
	}
	return nil
}

// Summary reports what one assignment run did.
type Summary struct {
	// Compounds is the number of compounds classified.
	Compounds int

	// Concepts is the number of concepts in the loaded ontology.
	Concepts int

	// ConceptCounts maps concept IDs to the number of compounds
	// reported under them.
	ConceptCounts map[string]int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Run executes one complete assignment: load ontology and compounds,
// build the concept graph, classify the batch in parallel, reduce each
// result to the configured view and write the report files.
//
// Configuration errors surface before any processing begins. Oracle
// failures during evaluation never abort the run; they evaluate as
// non-matches.
func Run(ctx context.Context, cfg RunConfig, opts ...Option) (*Summary, error) {
	o := options{
		logger: NoopLogger(),
		store:  blobstore.NewLocal(""),
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.WithModule(cfg.Module)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode := classify.ModeLeaves
	if cfg.Mode != "" {
		mode, _ = classify.ParseMode(cfg.Mode)
	}

	start := time.Now()

	module, err := chem.Resolve(cfg.Module)
	if err != nil {
		return nil, err
	}
	searcher := o.searcher
	if searcher == nil {
		searcher, err = module.New(chem.Options{Aromatic: cfg.Aromatic, Logger: log.Logger})
		if err != nil {
			return nil, fmt.Errorf("chemont: init module %s: %w", module.Name, err)
		}
	}
	searcher = chem.Throttled(searcher, o.limiter)

	// Ontology and compound files are independent; load them
	// concurrently.
	var (
		concepts  []ontology.Concept
		compounds []compound.Compound
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := o.store.Open(gctx, cfg.OntologyFile)
		if err != nil {
			return err
		}
		defer r.Close()
		concepts, err = ontology.LoadOBO(r, module.SmartsTag)
		return err
	})
	g.Go(func() error {
		r, err := o.store.Open(gctx, cfg.CompoundFile)
		if err != nil {
			return err
		}
		defer r.Close()
		compounds, err = compound.Load(r)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if cfg.MaxCompounds > 0 && len(compounds) > cfg.MaxCompounds {
		compounds = compounds[:cfg.MaxCompounds]
	}
	if len(compounds) == 0 {
		return nil, ErrNoCompounds
	}

	graph, err := ontology.Build(concepts)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "ontology loaded",
		"concepts", graph.Len(),
		"compounds", len(compounds),
	)

	classifier := classify.NewClassifier(graph, smarts.NewEvaluator(searcher, log.Logger), log.Logger)
	scheduler := classify.NewScheduler(classifier, cfg.Threads, log.Logger)

	result, err := scheduler.AssignAll(ctx, compounds)
	if err != nil {
		return nil, err
	}

	filter := classify.NewFilter(graph)
	entries := make([]report.Entry, 0, len(compounds))
	counts := make(map[string]int)

	for _, cmp := range compounds {
		assigned, ok := result.Get(cmp.ID)
		if !ok {
			// Skipped by panic isolation; report the compound with no
			// classifications rather than dropping it silently.
			entries = append(entries, report.Entry{ID: cmp.ID, SMILES: cmp.SMILES})
			continue
		}

		entry := report.Entry{ID: cmp.ID, SMILES: cmp.SMILES}
		it := filter.Apply(assigned, mode).Iterator()
		for it.HasNext() {
			concept := graph.Concept(ontology.Index(it.Next()))
			entry.Rows = append(entry.Rows, report.ConceptRow{ID: concept.ID, Name: concept.Name})
			counts[concept.ID]++
		}
		entries = append(entries, entry)
	}

	outName := cfg.OutputFile
	if cfg.AppendModuleSuffix {
		outName = fmt.Sprintf("%s_%s.tsv", outName, module.Name)
	}
	if err := writeReport(ctx, o.store, outName, entries); err != nil {
		return nil, err
	}
	if cfg.Echo {
		if err := report.WriteAssignments(os.Stdout, entries); err != nil {
			return nil, err
		}
	}

	if cfg.StatsFile != "" {
		stats := make([]report.StatRow, 0, len(counts))
		for id, count := range counts {
			var name string
			if idx, ok := graph.IndexOf(id); ok {
				name = graph.Concept(idx).Name
			}
			stats = append(stats, report.StatRow{ID: id, Name: name, Count: count})
		}
		if err := writeStats(ctx, o.store, cfg.StatsFile, stats); err != nil {
			return nil, err
		}
	}

	summary := &Summary{
		Compounds:     len(compounds),
		Concepts:      graph.Len(),
		ConceptCounts: counts,
		Elapsed:       time.Since(start),
	}
	log.LogRun(ctx, summary.Compounds, summary.Elapsed, nil)

	return summary, nil
}

func writeReport(ctx context.Context, store blobstore.Store, name string, entries []report.Entry) error {
	w, err := report.Create(ctx, store, name)
	if err != nil {
		return err
	}
	if err := report.WriteAssignments(w, entries); err != nil {
		_ = w.Close()
		return fmt.Errorf("chemont: write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("chemont: close %s: %w", name, err)
	}
	return nil
}

func writeStats(ctx context.Context, store blobstore.Store, name string, stats []report.StatRow) error {
	w, err := report.Create(ctx, store, name)
	if err != nil {
		return err
	}
	if err := report.WriteStats(w, stats); err != nil {
		_ = w.Close()
		return fmt.Errorf("chemont: write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("chemont: close %s: %w", name, err)
	}
	return nil
}
