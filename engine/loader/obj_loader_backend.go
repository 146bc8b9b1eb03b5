package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

var errOBJNoGeometry = errors.New("obj: no faces")

// objLoaderBackendImpl is the implementation of objLoaderBackend.
type objLoaderBackendImpl struct{}

// objLoaderBackend is a loaderBackend implementation for Wavefront OBJ files.
// It reads the object name and material library references into a single mesh node;
// vertex data stays with the file for the renderer.
type objLoaderBackend interface {
	loaderBackend
}

var _ objLoaderBackend = &objLoaderBackendImpl{}

func newOBJLoaderBackend() objLoaderBackend {
	return &objLoaderBackendImpl{}
}

func (b *objLoaderBackendImpl) Load(path string) (node.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	n, err := b.LoadReader(f, false)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if n.Name() == "" {
		base := filepath.Base(path)
		n.SetName(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	return n, nil
}

func (b *objLoaderBackendImpl) LoadReader(r io.Reader, _ bool) (node.Node, error) {
	var name, mtl string
	faces := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		keyword, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch keyword {
		case "o", "g":
			if name == "" {
				name = rest
			}
		case "usemtl":
			if mtl == "" {
				mtl = rest
			}
		case "f":
			faces++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read obj: %w", err)
	}
	if faces == 0 {
		return nil, errOBJNoGeometry
	}

	return node.NewMesh(
		node.WithName(name),
		node.WithMaterial(material.NewMaterial(material.WithName(mtl))),
	), nil
}
