package classify

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Result maps compound IDs to their assigned concept sets for one batch
// run. It is written concurrently by the scheduler's workers - each
// compound owns exactly one entry, the mutex only guards the map
// itself - and read-only once the batch barrier has passed.
type Result struct {
	mu       sync.Mutex
	assigned map[string]*roaring.Bitmap
}

// NewResult creates an empty result sized for n compounds.
func NewResult(n int) *Result {
	return &Result{
		assigned: make(map[string]*roaring.Bitmap, n),
	}
}

func (r *Result) set(id string, set *roaring.Bitmap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assigned[id] = set
}

// Get returns the assigned concept set for a compound ID.
func (r *Result) Get(id string) (*roaring.Bitmap, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.assigned[id]
	return set, ok
}

// Len returns the number of compounds that completed classification.
func (r *Result) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.assigned)
}
