package loader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// Decoder turns an asset file into a node hierarchy.
type Decoder interface {
	// Decode reads the asset at path with the backend for typ.
	//
	// Parameters:
	//   - ctx: context checked before decoding starts
	//   - path: the asset path
	//   - typ: the asset type
	//
	// Returns:
	//   - node.Node: the decoded hierarchy
	//   - error: ErrUnsupportedAssetType for unknown types, or the backend error
	Decode(ctx context.Context, path string, typ AssetType) (node.Node, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, path string, typ AssetType) (node.Node, error)

// Decode calls f.
func (f DecoderFunc) Decode(ctx context.Context, path string, typ AssetType) (node.Node, error) {
	return f(ctx, path, typ)
}

// fileDecoder is the filesystem Decoder, dispatching on asset type to a loaderBackend.
type fileDecoder struct {
	root     string
	backends map[AssetType]loaderBackend
}

var _ Decoder = &fileDecoder{}

// DecoderBuilderOption is a functional option for configuring the decoder returned by NewDecoder.
type DecoderBuilderOption func(d *fileDecoder)

// WithRoot resolves relative asset paths against dir.
//
// Parameters:
//   - dir: the asset root directory
//
// Returns:
//   - DecoderBuilderOption: option function to apply
func WithRoot(dir string) DecoderBuilderOption {
	return func(d *fileDecoder) {
		d.root = dir
	}
}

// NewDecoder creates a filesystem Decoder with the glTF and OBJ backends.
//
// Parameters:
//   - options: functional options for the decoder
//
// Returns:
//   - Decoder: the decoder
func NewDecoder(options ...DecoderBuilderOption) Decoder {
	d := &fileDecoder{
		backends: map[AssetType]loaderBackend{
			AssetTypeGLTF: newGLTFLoaderBackend(),
			AssetTypeOBJ:  newOBJLoaderBackend(),
		},
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *fileDecoder) Decode(ctx context.Context, path string, typ AssetType) (node.Node, error) {
	backend, ok := d.backends[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAssetType, typ)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if d.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(d.root, path)
	}
	n, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return n, nil
}
