package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// ErrUnsupportedAssetType is returned by ParseAssetType and Decoder.Decode for asset types
// without a backend. Loader.Load never surfaces it: an unsupported descriptor is a no-op.
var ErrUnsupportedAssetType = errors.New("unsupported asset type")

// AssetType identifies the decoder backend for an asset.
type AssetType string

const (
	// AssetTypeGLTF is a hierarchical glTF/GLB scene.
	AssetTypeGLTF AssetType = "gltf"

	// AssetTypeOBJ is a single-mesh Wavefront OBJ file.
	AssetTypeOBJ AssetType = "obj"
)

// ParseAssetType converts an authored type string into an AssetType.
//
// Parameters:
//   - s: the type string, case-insensitive
//
// Returns:
//   - AssetType: the asset type
//   - error: ErrUnsupportedAssetType if s names no known backend
func ParseAssetType(s string) (AssetType, error) {
	t := AssetType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Supported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAssetType, s)
	}
	return t, nil
}

// Supported reports whether t names a known backend.
func (t AssetType) Supported() bool {
	switch t {
	case AssetTypeGLTF, AssetTypeOBJ:
		return true
	}
	return false
}

// Reflectivity carries the optional surface factors authored next to a descriptor color.
type Reflectivity struct {
	Roughness    *float32 `yaml:"roughness,omitempty"`
	Metalness    *float32 `yaml:"metalness,omitempty"`
	Reflectivity *float32 `yaml:"reflectivity,omitempty"`
}

// Descriptor is an authored model asset: what to load and where to place it.
// Descriptors are values; the loader never modifies them.
type Descriptor struct {
	// Name is assigned to the loaded root node.
	Name string `yaml:"name"`

	// Type selects the decoder backend.
	Type AssetType `yaml:"type"`

	// Path is the asset path, relative to the decoder root.
	Path string `yaml:"path"`

	// Placement is applied to the loaded root node.
	common.Placement `yaml:",inline"`

	// Color is an optional 0xRRGGBB override color for every mesh in the asset.
	Color *uint32 `yaml:"color,omitempty"`

	// Reflectivity refines the override material built from Color.
	Reflectivity *Reflectivity `yaml:"materialReflectivity,omitempty"`
}

// Material builds the override material described by Color and Reflectivity, or nil when
// the descriptor has no color.
//
// Returns:
//   - material.Material: the override material, or nil
func (d Descriptor) Material() material.Material {
	if d.Color == nil {
		return nil
	}
	opts := []material.MaterialBuilderOption{
		material.WithName(d.Name),
		material.WithHexColor(*d.Color),
	}
	if r := d.Reflectivity; r != nil {
		if r.Roughness != nil {
			opts = append(opts, material.WithRoughness(*r.Roughness))
		}
		if r.Metalness != nil {
			opts = append(opts, material.WithMetallic(*r.Metalness))
		}
		if r.Reflectivity != nil {
			opts = append(opts, material.WithReflectivity(*r.Reflectivity))
		}
	}
	return material.NewMaterial(opts...)
}

// ApplyMaterial replaces the material of every mesh node under root. Group nodes are left untouched.
//
// Parameters:
//   - root: the hierarchy to update
//   - m: the material to assign
func ApplyMaterial(root node.Node, m material.Material) {
	if root == nil || m == nil {
		return
	}
	root.Traverse(func(n node.Node) {
		if n.IsMesh() {
			n.SetMaterial(m)
		}
	})
}
