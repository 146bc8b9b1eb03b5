package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"golang.org/x/sync/singleflight"

	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/future"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu *sync.RWMutex

	decoder    Decoder
	workers    int
	pool       worker.DynamicWorkerPool
	dispatcher *dispatch.Queue
	group      singleflight.Group
	nextTaskID atomic.Int64

	cache map[string]node.Node
}

// Loader defines the public-facing interface for loading model assets asynchronously.
//
// Decodes run on a worker pool. Concurrent requests for the same path share one decode and
// every caller receives its own deep clone, so loaded hierarchies can be placed independently.
// Decoded hierarchies are cached by path.
type Loader interface {
	// Load decodes a single asset in the background. A descriptor with an unsupported or
	// missing type is ignored: no decode, no callback, no error. On success the override
	// material, if any, replaces the material of every mesh node and callback receives the
	// hierarchy. Decode failures are logged and the callback is not invoked.
	//
	// Parameters:
	//   - ctx: context passed to the decoder
	//   - desc: the asset descriptor
	//   - override: optional material for every mesh node, or nil to keep decoded materials
	//   - callback: receives the loaded hierarchy; delivered through the dispatcher when one is set
	Load(ctx context.Context, desc Descriptor, override material.Material, callback func(n node.Node))

	// LoadAll decodes every descriptor concurrently under one shared Tracker. The returned
	// future resolves once, after every descriptor has finished. Each node is named after its
	// descriptor, has the descriptor placement applied and, when the descriptor has a color,
	// carries the matching override material. Nodes keep descriptor order; failed and
	// unsupported descriptors are skipped and failures are joined into the future's error.
	//
	// Parameters:
	//   - ctx: context passed to the decoder
	//   - descs: the asset descriptors
	//   - options: tracker options (progress and completion callbacks)
	//
	// Returns:
	//   - *future.Future[[]node.Node]: the loaded nodes
	LoadAll(ctx context.Context, descs []Descriptor, options ...TrackerOption) *future.Future[[]node.Node]

	// Get returns a clone of the cached hierarchy for path, or nil if it has not been loaded.
	//
	// Parameters:
	//   - path: the asset path
	//
	// Returns:
	//   - node.Node: a clone of the cached hierarchy, or nil
	Get(path string) node.Node

	// Close stops the worker pool. Loads submitted afterwards never complete.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader configured with the provided options.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:      &sync.RWMutex{},
		workers: runtime.NumCPU(),
		cache:   make(map[string]node.Node),
	}
	for _, option := range options {
		option(l)
	}
	if l.decoder == nil {
		l.decoder = NewDecoder()
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(ctx context.Context, desc Descriptor, override material.Material, callback func(n node.Node)) {
	if !desc.Type.Supported() {
		return
	}

	l.submit(ctx, desc, func(n node.Node, err error) {
		if err != nil {
			log.Printf("loader: %s: %v", desc.Path, err)
			return
		}
		if override != nil {
			ApplyMaterial(n, override)
		}
		if callback != nil {
			l.deliver(func() { callback(n) })
		}
	})
}

func (l *loader) LoadAll(ctx context.Context, descs []Descriptor, options ...TrackerOption) *future.Future[[]node.Node] {
	f := future.New[[]node.Node]()

	var mu sync.Mutex
	slots := make([]node.Node, len(descs))
	var errs []error

	resolve := func() {
		mu.Lock()
		defer mu.Unlock()
		nodes := make([]node.Node, 0, len(slots))
		for _, n := range slots {
			if n != nil {
				nodes = append(nodes, n)
			}
		}
		f.Resolve(nodes, errors.Join(errs...))
	}

	tracker := NewTracker(append(options, WithOnLoad(resolve))...)
	tracker.Add(len(descs))

	for i, desc := range descs {
		if !desc.Type.Supported() {
			tracker.Done()
			continue
		}
		l.submit(ctx, desc, func(n node.Node, err error) {
			defer tracker.Done()
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", desc.Name, err))
				mu.Unlock()
				return
			}
			if m := desc.Material(); m != nil {
				ApplyMaterial(n, m)
			}
			n.SetName(desc.Name)
			n.Apply(desc.Placement)

			mu.Lock()
			slots[i] = n
			mu.Unlock()
		})
	}
	return f
}

func (l *loader) Get(path string) node.Node {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n, ok := l.cache[path]; ok {
		return n.Clone()
	}
	return nil
}

func (l *loader) Close() {
	l.pool.Stop()
}

// submit queues a decode of desc on the worker pool and calls done with a private clone.
func (l *loader) submit(ctx context.Context, desc Descriptor, done func(n node.Node, err error)) {
	l.pool.SubmitTask(worker.Task{
		ID: int(l.nextTaskID.Add(1)),
		Do: func() (any, error) {
			n, err := l.fetch(ctx, desc)
			done(n, err)
			return n, err
		},
	})
}

// fetch returns a clone of the cached hierarchy for desc, decoding it first if needed.
func (l *loader) fetch(ctx context.Context, desc Descriptor) (n node.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = nil, fmt.Errorf("decode panic: %v", r)
		}
	}()

	l.mu.RLock()
	cached, ok := l.cache[desc.Path]
	l.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	v, err, _ := l.group.Do(string(desc.Type)+":"+desc.Path, func() (any, error) {
		l.mu.RLock()
		cached, ok := l.cache[desc.Path]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		decoded, err := l.decoder.Decode(ctx, desc.Path, desc.Type)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[desc.Path] = decoded
		l.mu.Unlock()
		return decoded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(node.Node).Clone(), nil
}

// deliver runs fn on the frame thread when a dispatcher is configured, inline otherwise.
func (l *loader) deliver(fn func()) {
	if l.dispatcher != nil {
		l.dispatcher.Post(fn)
		return
	}
	fn()
}
