package classify

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/hupe1980/chemont/compound"
)

// Scheduler fans the classifier out across a bounded worker pool, one
// compound per task. Tasks are independent: the graph and oracle are
// read-only, and each compound owns exactly one result entry.
type Scheduler struct {
	classifier *Classifier
	workers    int
	log        *slog.Logger
}

// NewScheduler creates a Scheduler running classification on workers
// goroutines (non-positive defaults to GOMAXPROCS). A nil logger
// discards diagnostics.
func NewScheduler(classifier *Classifier, workers int, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{classifier: classifier, workers: workers, log: log}
}

// AssignAll classifies a batch of compounds and blocks until every
// submitted task has completed (batch barrier); no partial results are
// exposed before it returns.
//
// The worker pool is created for this batch and torn down afterwards.
// A panic inside one compound's task is recovered and logged and that
// compound is skipped; the rest of the batch completes. Context
// cancellation stops further submissions and returns ctx.Err alongside
// the compounds finished so far.
func (s *Scheduler) AssignAll(ctx context.Context, compounds []compound.Compound) (*Result, error) {
	result := NewResult(len(compounds))

	pool := NewWorkerPool(s.workers)
	defer pool.Close()

	var wg sync.WaitGroup
	var submitErr error

	for _, cmp := range compounds {
		cmp := cmp
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					s.log.Error("classification panic, compound skipped",
						"compound", cmp.ID, "panic", rec)
				}
			}()

			assigned := s.classifier.Assign(ctx, cmp.SMILES)
			result.set(cmp.ID, assigned)
		}

		if err := pool.Submit(ctx, task); err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}

	wg.Wait()
	return result, submitErr
}
