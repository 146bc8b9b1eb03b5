package loader

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGLTFImportBuildsHierarchy(t *testing.T) {
	scene, err := newGLTFImporter().Import(filepath.Join("testdata", "suitcase.gltf"))
	require.NoError(t, err)
	assert.Equal(t, "suitcase", scene.Name())

	require.Len(t, scene.Children(), 1)
	body := scene.Children()[0]
	assert.Equal(t, "body", body.Name())
	assert.False(t, body.IsMesh())
	assert.Equal(t, [3]float32{0, 10, 0}, body.Position())

	require.Len(t, body.Children(), 2)
	handle := body.Children()[0]
	assert.True(t, handle.IsMesh())
	assert.InDelta(t, math32.Pi/2, handle.Rotation()[1], 1e-4)
	require.NotNil(t, handle.Material())
	assert.Equal(t, "leather", handle.Material().Name())
	assert.Equal(t, float32(0.8), handle.Material().Roughness())

	shell := body.Children()[1]
	assert.False(t, shell.IsMesh())
	assert.Equal(t, [3]float32{2, 2, 2}, shell.Scale())
	require.Len(t, shell.Children(), 2)
	canvas := shell.Children()[0].Material()
	assert.Equal(t, "canvas", canvas.Name())
	assert.Equal(t, filepath.Join("testdata", "canvas.png"), canvas.Texture())
	assert.Equal(t, float32(1), canvas.Metallic())
}

func TestGLTFImportRejectsCycles(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"nodes":[{"children":[1]},{"children":[0]}],"scenes":[{"nodes":[0]}]}`
	_, err := newGLTFImporter().ImportReader(strings.NewReader(doc), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestGLTFImportRejectsVersion(t *testing.T) {
	_, err := newGLTFImporter().ImportReader(strings.NewReader(`{"asset":{"version":"1.0"}}`), false)
	assert.ErrorIs(t, err, errInvalidGLTFVersion)
}

func TestGLTFRootsWithoutScenes(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"nodes":[{"name":"a","children":[1]},{"name":"b"},{"name":"c"}]}`
	scene, err := newGLTFImporter().ImportReader(strings.NewReader(doc), false)
	require.NoError(t, err)

	var names []string
	for _, c := range scene.Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestGLBContainer(t *testing.T) {
	doc := []byte(`{"asset":{"version":"2.0"},"nodes":[{"name":"lamp","mesh":0}],"meshes":[{"primitives":[{}]}]}`)
	for len(doc)%4 != 0 {
		doc = append(doc, ' ')
	}
	bin := []byte{1, 2, 3, 4}

	var buf bytes.Buffer
	write := func(v any) { require.NoError(t, binary.Write(&buf, binary.LittleEndian, v)) }
	write(gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(12 + 8 + len(bin) + 8 + len(doc))})
	write(gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: 0x004E4942})
	buf.Write(bin)
	write(gltfGLBChunkHeader{ChunkLength: uint32(len(doc)), ChunkType: gltfGLBChunkJSON})
	buf.Write(doc)

	scene, err := newGLTFImporter().ImportReader(&buf, true)
	require.NoError(t, err)
	require.Len(t, scene.Children(), 1)
	lamp := scene.Children()[0]
	assert.Equal(t, "lamp", lamp.Name())
	assert.True(t, lamp.IsMesh())
	assert.Equal(t, "default", lamp.Material().Name())
}

func TestGLBRejectsBadMagic(t *testing.T) {
	_, err := newGLTFImporter().ImportReader(bytes.NewReader(make([]byte, 16)), true)
	assert.ErrorIs(t, err, errInvalidGLBMagic)
}

func TestOBJBackend(t *testing.T) {
	n, err := newOBJLoaderBackend().Load(filepath.Join("testdata", "compass.obj"))
	require.NoError(t, err)
	assert.Equal(t, "compass", n.Name())
	assert.True(t, n.IsMesh())
	assert.Equal(t, "brass", n.Material().Name())

	_, err = newOBJLoaderBackend().Load(filepath.Join("testdata", "empty.obj"))
	assert.ErrorIs(t, err, errOBJNoGeometry)
}

