package chemont

import (
	"golang.org/x/time/rate"

	"github.com/hupe1980/chemont/blobstore"
	"github.com/hupe1980/chemont/chem"
)

type options struct {
	logger   *Logger
	store    blobstore.Store
	searcher chem.Searcher
	limiter  *rate.Limiter
}

// Option configures Run behavior.
type Option func(*options)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithStore sets the blob store used for all file IO.
// The default is the local file system.
func WithStore(s blobstore.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithSearcher overrides the substructure-search oracle. The run
// configuration's module still selects the ontology pattern tag, but
// all oracle calls go to s. Useful for testing with a fake oracle.
func WithSearcher(s chem.Searcher) Option {
	return func(o *options) {
		o.searcher = s
	}
}

// WithRateLimiter throttles oracle calls through the given limiter.
// Useful for remote or license-metered chemistry backends.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}
