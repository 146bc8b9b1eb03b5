package loader

import (
	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithDecoder is an option builder that sets the Decoder used by the Loader.
//
// Parameters:
//   - d: the decoder
//
// Returns:
//   - LoaderBuilderOption: a function that applies the decoder option to a loader
func WithDecoder(d Decoder) LoaderBuilderOption {
	return func(l *loader) {
		l.decoder = d
	}
}

// WithWorkers sets the number of decode workers. Defaults to the number of CPUs.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithDispatcher routes Load callbacks through q so they run on the frame thread.
//
// Parameters:
//   - q: the frame-thread dispatch queue
//
// Returns:
//   - LoaderBuilderOption: a function that applies the dispatcher option to a loader
func WithDispatcher(q *dispatch.Queue) LoaderBuilderOption {
	return func(l *loader) {
		l.dispatcher = q
	}
}

// WithNode is an option builder that pre-populates the cache with a hierarchy.
//
// Parameters:
//   - path: the cache key
//   - n: the hierarchy to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cache option to a loader
func WithNode(path string, n node.Node) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[path] = n
	}
}
