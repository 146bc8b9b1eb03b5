package loader

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// fakeScene builds a group with one mesh child and one nested group holding another mesh.
func fakeScene(path string) node.Node {
	orig := material.NewMaterial(material.WithName("original"))
	return node.NewGroup(node.WithName(path), node.WithChildren(
		node.NewMesh(node.WithName("mesh-a"), node.WithMaterial(orig)),
		node.NewGroup(node.WithName("inner"), node.WithChildren(
			node.NewMesh(node.WithName("mesh-b"), node.WithMaterial(orig)),
		)),
	))
}

func countingDecoder(calls *atomic.Int32) Decoder {
	return DecoderFunc(func(ctx context.Context, path string, typ AssetType) (node.Node, error) {
		calls.Add(1)
		if path == "broken.gltf" {
			return nil, errors.New("bad file")
		}
		return fakeScene(path), nil
	})
}

func waitFor(t *testing.T, ch <-chan node.Node) node.Node {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for load callback")
		return nil
	}
}

func TestLoadAppliesOverrideToMeshesOnly(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(WithDecoder(countingDecoder(&calls)), WithWorkers(2))
	defer l.Close()

	override := material.NewMaterial(material.WithName("override"))
	got := make(chan node.Node, 1)
	l.Load(context.Background(), Descriptor{Type: AssetTypeGLTF, Path: "a.gltf"}, override, func(n node.Node) { got <- n })

	n := waitFor(t, got)
	meshes := 0
	n.Traverse(func(c node.Node) {
		if c.IsMesh() {
			meshes++
			assert.Equal(t, "override", c.Material().Name())
		} else {
			assert.Nil(t, c.Material())
		}
	})
	assert.Equal(t, 2, meshes)
}

func TestLoadWithoutOverrideKeepsMaterials(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(WithDecoder(countingDecoder(&calls)), WithWorkers(1))
	defer l.Close()

	got := make(chan node.Node, 1)
	l.Load(context.Background(), Descriptor{Type: AssetTypeOBJ, Path: "b.obj"}, nil, func(n node.Node) { got <- n })

	n := waitFor(t, got)
	n.Traverse(func(c node.Node) {
		if c.IsMesh() {
			assert.Equal(t, "original", c.Material().Name())
		}
	})
}

func TestLoadUnsupportedTypeIsNoop(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(WithDecoder(countingDecoder(&calls)), WithWorkers(1))
	defer l.Close()

	called := make(chan node.Node, 1)
	l.Load(context.Background(), Descriptor{Type: "fbx", Path: "x.fbx"}, nil, func(n node.Node) { called <- n })
	l.Load(context.Background(), Descriptor{Path: "y"}, nil, func(n node.Node) { called <- n })

	select {
	case <-called:
		t.Fatal("callback invoked for unsupported type")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestLoadFailureSkipsCallback(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(WithDecoder(countingDecoder(&calls)), WithWorkers(1))
	defer l.Close()

	called := make(chan node.Node, 1)
	l.Load(context.Background(), Descriptor{Type: AssetTypeGLTF, Path: "broken.gltf"}, nil, func(n node.Node) { called <- n })

	select {
	case <-called:
		t.Fatal("callback invoked for failed decode")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoadDeliversThroughDispatcher(t *testing.T) {
	var calls atomic.Int32
	q := dispatch.NewQueue()
	l := NewLoader(WithDecoder(countingDecoder(&calls)), WithWorkers(1), WithDispatcher(q))
	defer l.Close()

	var got node.Node
	l.Load(context.Background(), Descriptor{Type: AssetTypeGLTF, Path: "a.gltf"}, nil, func(n node.Node) { got = n })

	require.Eventually(t, func() bool { return q.Len() == 1 }, 2*time.Second, time.Millisecond)
	assert.Nil(t, got)
	q.Drain()
	assert.NotNil(t, got)
}

func TestLoadCollapsesDuplicatesIntoClones(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(WithDecoder(countingDecoder(&calls)), WithWorkers(4))
	defer l.Close()

	const n = 8
	got := make(chan node.Node, n)
	for i := 0; i < n; i++ {
		l.Load(context.Background(), Descriptor{Type: AssetTypeGLTF, Path: "suitcase.gltf"}, nil, func(n node.Node) { got <- n })
	}

	seen := make(map[node.Node]bool)
	for i := 0; i < n; i++ {
		seen[waitFor(t, got)] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, int32(1), calls.Load())

	cached := l.Get("suitcase.gltf")
	require.NotNil(t, cached)
	assert.False(t, seen[cached])
	assert.Nil(t, l.Get("missing.gltf"))
}

func TestLoadAllFiresOnceWithEveryNode(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(WithDecoder(countingDecoder(&calls)), WithWorkers(3))
	defer l.Close()

	color := uint32(0xff0000)
	descs := []Descriptor{
		{Name: "static", Type: AssetTypeGLTF, Path: "scene1.gltf", Placement: common.At(0, 1, 5).Rotated(0, -45, 0).Shadows(true, true)},
		{Name: "suitcase", Type: AssetTypeGLTF, Path: "suitcase.gltf", Color: &color},
		{Name: "dog", Type: AssetTypeOBJ, Path: "dog.obj"},
	}
	before := descs[0]

	var loads atomic.Int32
	var progress []int
	var mu sync.Mutex
	f := l.LoadAll(context.Background(), descs,
		WithOnLoad(func() { loads.Add(1) }),
		WithProgress(func(done, total int) {
			mu.Lock()
			progress = append(progress, done)
			mu.Unlock()
			assert.Equal(t, 3, total)
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	nodes, err := f.Await(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, int32(1), loads.Load())
	assert.Len(t, progress, 3)

	assert.Equal(t, "static", nodes[0].Name())
	assert.Equal(t, [3]float32{0, 1, 5}, nodes[0].Position())
	cast, receive := nodes[0].Shadows()
	assert.True(t, cast)
	assert.True(t, receive)

	assert.Equal(t, "suitcase", nodes[1].Name())
	nodes[1].Traverse(func(c node.Node) {
		if c.IsMesh() {
			assert.Equal(t, [4]float32{1, 0, 0, 1}, c.Material().BaseColor())
		}
	})
	assert.Equal(t, "dog", nodes[2].Name())
	assert.Equal(t, before, descs[0])
}

func TestLoadAllCollectsFailures(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(WithDecoder(countingDecoder(&calls)), WithWorkers(2))
	defer l.Close()

	f := l.LoadAll(context.Background(), []Descriptor{
		{Name: "ok", Type: AssetTypeGLTF, Path: "ok.gltf"},
		{Name: "bad", Type: AssetTypeGLTF, Path: "broken.gltf"},
		{Name: "skip", Type: "fbx", Path: "skip.fbx"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	nodes, err := f.Await(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	require.Len(t, nodes, 1)
	assert.Equal(t, "ok", nodes[0].Name())
}

func TestLoadAllEmpty(t *testing.T) {
	l := NewLoader(WithWorkers(1))
	defer l.Close()

	nodes, err := l.LoadAll(context.Background(), nil).Await(context.Background())
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestLoaderWithFileDecoder(t *testing.T) {
	l := NewLoader(WithDecoder(NewDecoder(WithRoot("testdata"))), WithWorkers(2))
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	nodes, err := l.LoadAll(ctx, []Descriptor{
		{Name: "suitcase", Type: AssetTypeGLTF, Path: "suitcase.gltf"},
		{Name: "compass", Type: AssetTypeOBJ, Path: filepath.Join("compass.obj")},
	}).Await(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "suitcase", nodes[0].Name())
	assert.Equal(t, "compass", nodes[1].Name())
}

func TestParseAssetType(t *testing.T) {
	typ, err := ParseAssetType(" GLTF ")
	require.NoError(t, err)
	assert.Equal(t, AssetTypeGLTF, typ)

	_, err = ParseAssetType("fbx")
	assert.ErrorIs(t, err, ErrUnsupportedAssetType)

	_, err = NewDecoder().Decode(context.Background(), "x.fbx", "fbx")
	assert.ErrorIs(t, err, ErrUnsupportedAssetType)
}

func TestTrackerFiresOnce(t *testing.T) {
	fired := 0
	tr := NewTracker(WithOnLoad(func() { fired++ }))
	tr.Add(2)
	tr.Done()
	assert.Equal(t, 0, fired)
	tr.Done()
	tr.Done()
	tr.Add(1)
	tr.Done()
	assert.Equal(t, 1, fired)

	done, total := tr.Progress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 2, total)

	select {
	case <-tr.Loaded():
	default:
		t.Fatal("loaded channel not closed")
	}
}
