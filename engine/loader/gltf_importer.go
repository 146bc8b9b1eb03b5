package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter defines the interface for turning a glTF/GLB document into a node hierarchy.
type gltfImporter interface {
	// Import loads a glTF/GLB file and builds its default scene.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - node.Node: the scene group
	//   - error: error if import fails
	Import(path string) (node.Node, error)

	// ImportReader loads a glTF document from a reader and builds its default scene.
	//
	// Parameters:
	//   - r: the reader providing glTF/GLB data
	//   - isGLB: true if the reader provides GLB binary data, false for glTF JSON
	//
	// Returns:
	//   - node.Node: the scene group
	//   - error: error if import fails
	ImportReader(r io.Reader, isGLB bool) (node.Node, error)
}

var _ gltfImporter = &gltfImporterImpl{}

func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (node.Node, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return imp.importFromParser(parser, path)
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader, isGLB bool) (node.Node, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}
	return imp.importFromParser(parser, "")
}

// importFromParser builds the node hierarchy of the document's default scene.
//
// Parameters:
//   - parser: the glTF parser that has already loaded a document
//   - fallbackPath: optional file path used as a fallback for the scene name
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, fallbackPath string) (node.Node, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	materials, err := newGLTFMaterialExtractor(parser).ExtractAllMaterials()
	if err != nil {
		return nil, fmt.Errorf("material extraction failed: %w", err)
	}

	b := &gltfSceneBuilder{doc: doc, materials: materials, visiting: make(map[int]bool)}
	scene := node.NewGroup(node.WithName(gltfSceneName(doc, fallbackPath)))
	for _, idx := range gltfRootNodes(doc) {
		n, err := b.build(idx)
		if err != nil {
			return nil, err
		}
		scene.AddChild(n)
	}
	return scene, nil
}

// gltfSceneBuilder converts glTF nodes into scene graph nodes, detecting cycles.
type gltfSceneBuilder struct {
	doc       *gltfDocument
	materials []material.Material
	visiting  map[int]bool
}

func (b *gltfSceneBuilder) build(idx int) (node.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if b.visiting[idx] {
		return nil, fmt.Errorf("node %d: cycle in node hierarchy", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	gn := &b.doc.Nodes[idx]
	n, err := b.nodeFor(gn)
	if err != nil {
		return nil, fmt.Errorf("node %d: %w", idx, err)
	}
	gltfApplyTransform(n, gn)

	for _, c := range gn.Children {
		child, err := b.build(c)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// nodeFor creates the node for a glTF node: a group without a mesh, a mesh node for a
// single-primitive mesh and a group of mesh nodes otherwise.
func (b *gltfSceneBuilder) nodeFor(gn *gltfNode) (node.Node, error) {
	if gn.Mesh == nil {
		return node.NewGroup(node.WithName(gn.Name)), nil
	}
	if *gn.Mesh < 0 || *gn.Mesh >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", *gn.Mesh)
	}

	mesh := &b.doc.Meshes[*gn.Mesh]
	name := common.Coalesce(gn.Name, mesh.Name)
	if len(mesh.Primitives) == 1 {
		return node.NewMesh(node.WithName(name), node.WithMaterial(b.material(mesh.Primitives[0]))), nil
	}

	g := node.NewGroup(node.WithName(name))
	for i, prim := range mesh.Primitives {
		g.AddChild(node.NewMesh(
			node.WithName(fmt.Sprintf("%s_%d", name, i)),
			node.WithMaterial(b.material(prim)),
		))
	}
	return g, nil
}

func (b *gltfSceneBuilder) material(prim gltfPrimitive) material.Material {
	if prim.Material == nil || *prim.Material < 0 || *prim.Material >= len(b.materials) {
		return material.NewMaterial(material.WithName("default"))
	}
	return b.materials[*prim.Material]
}

// gltfApplyTransform copies the glTF node transform onto n.
func gltfApplyTransform(n node.Node, gn *gltfNode) {
	if gn.Matrix != nil {
		pos, rot, scale := common.DecomposeMatrix(gn.Matrix[:])
		n.SetPosition(pos[0], pos[1], pos[2])
		n.SetRotation(rot[0], rot[1], rot[2])
		n.SetScale(scale[0], scale[1], scale[2])
		return
	}
	if t := gn.Translation; t != nil {
		n.SetPosition(t[0], t[1], t[2])
	}
	if q := gn.Rotation; q != nil {
		r := common.EulerFromQuat(*q)
		n.SetRotation(r[0], r[1], r[2])
	}
	if s := gn.Scale; s != nil {
		n.SetScale(s[0], s[1], s[2])
	}
}

// gltfRootNodes returns the root node indices of the default scene. Documents without scenes
// fall back to every node that is nobody's child.
func gltfRootNodes(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// gltfSceneName picks the scene name, falling back to the file name without extension.
func gltfSceneName(doc *gltfDocument, fallbackPath string) string {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		if doc.Scenes[idx].Name != "" {
			return doc.Scenes[idx].Name
		}
	}
	if fallbackPath == "" {
		return "scene"
	}
	base := filepath.Base(fallbackPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
