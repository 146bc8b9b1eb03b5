package chapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
	"github.com/Carmen-Shannon/oxy-story/engine/timeline"
	"github.com/Carmen-Shannon/oxy-story/engine/vectorart"
)

func testArt() *vectorart.Provider {
	return vectorart.NewProvider(func() (vectorart.Library, error) {
		return vectorart.NewLibrary(map[string]node.Node{
			"flower":  node.NewGroup(node.WithName("flower")),
			"leaf-1":  node.NewGroup(node.WithName("leaf-1")),
			"leaf-2":  node.NewGroup(node.WithName("leaf-2")),
			"keyhole": node.NewGroup(node.WithName("keyhole")),
		}), nil
	})
}

func testLoader(t *testing.T) loader.Loader {
	l := loader.NewLoader(loader.WithWorkers(2), loader.WithDecoder(loader.DecoderFunc(
		func(ctx context.Context, path string, typ loader.AssetType) (node.Node, error) {
			if path == "broken.gltf" {
				return nil, errors.New("bad file")
			}
			return node.NewGroup(node.WithChildren(node.NewMesh(node.WithName("mesh")))), nil
		},
	)))
	t.Cleanup(l.Close)
	return l
}

func chapterConfig(t *testing.T, name string) config.Chapter {
	s, err := config.Default()
	require.NoError(t, err)
	for _, c := range s.Chapters {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no chapter %q", name)
	return config.Chapter{}
}

func childNames(n node.Node) []string {
	var names []string
	for _, c := range n.Children() {
		names = append(names, c.Name())
	}
	return names
}

func find(n node.Node, name string) node.Node {
	for _, c := range n.Children() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// wait blocks until every background decoration finished.
func (b *base) wait() {
	b.pending.Wait()
}

func waitChapter(c Chapter) {
	if w, ok := c.(interface{ wait() }); ok {
		w.wait()
	}
}

func TestFirstChapter(t *testing.T) {
	c := NewFirst(chapterConfig(t, "first"), WithLoader(testLoader(t)), WithVectorArt(testArt()))

	assert.Subset(t, childNames(c.Root()), []string{"backdrop", "carpet", "saturn"})

	carpet := find(c.Root(), "carpet")
	require.NotNil(t, carpet)
	assert.Equal(t, [3]float32{0, 8, 0}, carpet.Position())
	assert.InDelta(t, common.DegToRad(180), carpet.Rotation()[2], 1e-5)

	waitChapter(c)
	assert.ElementsMatch(t, []string{"backdrop", "carpet", "saturn", "flower", "models"}, childNames(c.Root()))

	flower := find(c.Root(), "flower")
	assert.Equal(t, [3]float32{0.9, -0.9, 0.9}, flower.Scale())
	cast, receive := flower.Shadows()
	assert.True(t, cast)
	assert.True(t, receive)

	models := find(c.Root(), "models")
	require.Len(t, models.Children(), 1)
	assert.Equal(t, "static", models.Children()[0].Name())
}

func TestSecondChapterWithDispatcher(t *testing.T) {
	q := dispatch.NewQueue()
	c := NewSecond(chapterConfig(t, "second"), WithLoader(testLoader(t)), WithVectorArt(testArt()), WithDispatcher(q))
	waitChapter(c)

	assert.ElementsMatch(t, []string{"backdrop", "pyramid", "lantern"}, childNames(c.Root()))
	assert.Equal(t, 3, q.Drain())
	assert.ElementsMatch(t, []string{"backdrop", "pyramid", "lantern", "bigLeaf", "smallLeaf", "models"}, childNames(c.Root()))
	assert.Len(t, find(c.Root(), "models").Children(), 2)
}

func TestFailedDecorationsAreContained(t *testing.T) {
	broken := vectorart.NewProvider(func() (vectorart.Library, error) {
		return nil, errors.New("no sprites")
	})
	cfg := chapterConfig(t, "third")
	cfg.Models = []loader.Descriptor{{Name: "static", Type: loader.AssetTypeGLTF, Path: "broken.gltf"}}

	c := NewThird(cfg, WithLoader(testLoader(t)), WithVectorArt(broken))
	waitChapter(c)
	assert.ElementsMatch(t, []string{"backdrop", "snowman", "fencing", "road"}, childNames(c.Root()))

	f := NewFirst(chapterConfig(t, "first"), WithVectorArt(broken))
	waitChapter(f)
	assert.NotContains(t, childNames(f.Root()), "flower")
}

func TestHueAt(t *testing.T) {
	h := config.HueAnimation{Initial: -0.1, Final: -0.25, Duration: 2, Variation: 0.4}
	assert.InDelta(t, -0.1, HueAt(h, 0), 1e-6)
	assert.InDelta(t, -0.175, HueAt(h, 1), 1e-6)
	assert.InDelta(t, -0.25, HueAt(h, 2), 1e-6)
	assert.InDelta(t, -0.31, HueAt(h, 2.5), 1e-5)

	assert.Equal(t, float32(-0.25), HueAt(config.HueAnimation{Final: -0.25}, 1))
}

func TestSecondChapterAnimatesHue(t *testing.T) {
	c := NewSecond(chapterConfig(t, "second"))
	tex := c.(*second).Texture()
	assert.Equal(t, float32(-0.25), tex.HueShift())

	assert.Equal(t, material.HexToRGBA(0x5468FF), tex.BaseColor())
	assert.Same(t, tex, find(c.Root(), "backdrop").Material())

	c.Update(timeline.Frame{Elapsed: 5})
	assert.InDelta(t, -0.1, tex.HueShift(), 1e-6)
	c.Update(timeline.Frame{Elapsed: 6})
	assert.InDelta(t, -0.175, tex.HueShift(), 1e-6)
}

func TestIntroBobs(t *testing.T) {
	s, err := config.Default()
	require.NoError(t, err)
	cfg := s.Intro
	cfg.Shapes = map[string]common.Placement{"keyhole": common.At(0, 10, 0)}

	c := NewIntro(cfg, WithVectorArt(testArt()))
	waitChapter(c)
	assert.Equal(t, [3]float32{0, -450, 4050}, c.Root().Position())

	shapes := find(c.Root(), "shapes")
	require.NotNil(t, shapes)
	require.Equal(t, []string{"keyhole"}, childNames(shapes))
	assert.Equal(t, [3]float32{0, 10, 0}, find(shapes, "keyhole").Position())

	c.Update(timeline.Frame{Elapsed: cfg.Bob.Period / 4})
	assert.InDelta(t, cfg.Bob.Amplitude, shapes.Position()[1], 1e-3)
}

func TestNewFallsBackToPlainChapter(t *testing.T) {
	c := New(config.Chapter{Name: "epilogue"})
	assert.Equal(t, "epilogue", c.Root().Name())
	assert.Equal(t, []string{"backdrop"}, childNames(c.Root()))
	c.Update(timeline.Frame{Elapsed: 1})

	assert.IsType(t, &first{}, New(chapterConfig(t, "first")))
}
