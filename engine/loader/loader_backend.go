package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// loaderBackend defines the format-specific half of a Decoder.
// Concrete implementations (gltfLoaderBackend, objLoaderBackend) turn a file or stream into a node hierarchy.
type loaderBackend interface {
	// Load decodes the file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - node.Node: the decoded hierarchy
	//   - error: error if loading fails
	Load(path string) (node.Node, error)

	// LoadReader decodes a stream.
	//
	// Parameters:
	//   - r: the reader providing the asset data
	//   - isBinary: true for binary containers (GLB); ignored by text-only formats
	//
	// Returns:
	//   - node.Node: the decoded hierarchy
	//   - error: error if loading fails
	LoadReader(r io.Reader, isBinary bool) (node.Node, error)
}
