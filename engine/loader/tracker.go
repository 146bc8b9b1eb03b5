package loader

import (
	"sync"
)

// Tracker counts the items of one load batch and reports completion exactly once.
type Tracker struct {
	mu         *sync.Mutex
	total      int
	done       int
	loaded     bool
	loadedCh   chan struct{}
	onProgress []func(done, total int)
	onLoad     []func()
}

// TrackerOption is a functional option for configuring a Tracker.
type TrackerOption func(t *Tracker)

// WithProgress registers a callback invoked after every finished item.
//
// Parameters:
//   - fn: called with the finished and total item counts
//
// Returns:
//   - TrackerOption: option function to apply
func WithProgress(fn func(done, total int)) TrackerOption {
	return func(t *Tracker) {
		if fn != nil {
			t.onProgress = append(t.onProgress, fn)
		}
	}
}

// WithOnLoad registers a callback invoked once every item has finished.
//
// Parameters:
//   - fn: the completion callback
//
// Returns:
//   - TrackerOption: option function to apply
func WithOnLoad(fn func()) TrackerOption {
	return func(t *Tracker) {
		if fn != nil {
			t.onLoad = append(t.onLoad, fn)
		}
	}
}

// NewTracker creates a Tracker with no items.
func NewTracker(options ...TrackerOption) *Tracker {
	t := &Tracker{
		mu:       &sync.Mutex{},
		loadedCh: make(chan struct{}),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Add registers n more items. Register the whole batch before starting any item so the
// batch cannot complete early. Add(0) on an empty tracker completes it. Items added after
// completion are ignored.
//
// Parameters:
//   - n: the number of items
func (t *Tracker) Add(n int) {
	t.mu.Lock()
	if t.loaded || n < 0 {
		t.mu.Unlock()
		return
	}
	t.total += n
	fire := t.done >= t.total
	if fire {
		t.loaded = true
	}
	t.mu.Unlock()

	if fire {
		t.fireLoad()
	}
}

// Done marks one item finished, successfully or not.
func (t *Tracker) Done() {
	t.mu.Lock()
	if t.loaded || t.done >= t.total {
		t.mu.Unlock()
		return
	}
	t.done++
	done, total := t.done, t.total
	fire := done == total
	if fire {
		t.loaded = true
	}
	t.mu.Unlock()

	for _, fn := range t.onProgress {
		fn(done, total)
	}
	if fire {
		t.fireLoad()
	}
}

// Progress returns the finished and total item counts.
func (t *Tracker) Progress() (done, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done, t.total
}

// Loaded returns a channel closed once every item has finished.
func (t *Tracker) Loaded() <-chan struct{} {
	return t.loadedCh
}

func (t *Tracker) fireLoad() {
	close(t.loadedCh)
	for _, fn := range t.onLoad {
		fn()
	}
}
