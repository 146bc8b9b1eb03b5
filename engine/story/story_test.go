package story

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/camera"
	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
	"github.com/Carmen-Shannon/oxy-story/engine/rig"
	"github.com/Carmen-Shannon/oxy-story/engine/timeline"
	"github.com/Carmen-Shannon/oxy-story/engine/vectorart"
)

type fakeHost struct {
	mu        sync.Mutex
	width     int
	height    int
	nextID    int
	frames    map[int]func(time.Time)
	listeners map[int]func(int, int)
	cancelled []int
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{width: w, height: h, frames: map[int]func(time.Time){}, listeners: map[int]func(int, int){}}
}

func (h *fakeHost) RequestFrame(fn func(time.Time)) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.frames[h.nextID] = fn
	return h.nextID
}

func (h *fakeHost) CancelFrame(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.frames, id)
	h.cancelled = append(h.cancelled, id)
}

func (h *fakeHost) AddResizeListener(fn func(int, int)) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.listeners[h.nextID] = fn
	return h.nextID
}

func (h *fakeHost) RemoveResizeListener(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners, id)
}

func (h *fakeHost) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// step runs every pending frame callback with now.
func (h *fakeHost) step(now time.Time) int {
	h.mu.Lock()
	pending := h.frames
	h.frames = map[int]func(time.Time){}
	h.mu.Unlock()
	for _, fn := range pending {
		fn(now)
	}
	return len(pending)
}

func (h *fakeHost) resize(w, hh int) {
	h.mu.Lock()
	var fns []func(int, int)
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(w, hh)
	}
}

type fakeSurface struct {
	mu      sync.Mutex
	renders int
	states  []rig.State
	size    [2]int
}

func (s *fakeSurface) Render(root node.Node, cam camera.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders++
	if r, ok := cam.Controller().(rig.Rig); ok {
		s.states = append(s.states, r.Pose())
	}
	return nil
}

func (s *fakeSurface) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = [2]int{w, h}
}

func (s *fakeSurface) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

type countingChapter struct {
	root    node.Node
	mu      sync.Mutex
	updates []timeline.Frame
}

func (c *countingChapter) Root() node.Node { return c.root }

func (c *countingChapter) Update(f timeline.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, f)
}

func (c *countingChapter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.updates)
}

func testConfig(t *testing.T) *config.Story {
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func testLoader(t *testing.T, q *dispatch.Queue) loader.Loader {
	l := loader.NewLoader(loader.WithWorkers(2), loader.WithDispatcher(q), loader.WithDecoder(loader.DecoderFunc(
		func(ctx context.Context, path string, typ loader.AssetType) (node.Node, error) {
			return node.NewGroup(node.WithChildren(node.NewMesh(node.WithName("mesh")))), nil
		},
	)))
	t.Cleanup(l.Close)
	return l
}

func testArt() *vectorart.Provider {
	return vectorart.NewProvider(func() (vectorart.Library, error) {
		return vectorart.NewLibrary(map[string]node.Node{"flower": node.NewGroup()}), nil
	})
}

type harness struct {
	story   Story
	host    *fakeHost
	surface *fakeSurface
	queue   *dispatch.Queue
	intro   *countingChapter
	second  *countingChapter
}

func newHarness(t *testing.T, options ...StoryBuilderOption) *harness {
	h := &harness{
		host:    newFakeHost(1280, 720),
		surface: &fakeSurface{},
		queue:   dispatch.NewQueue(),
		intro:   &countingChapter{root: node.NewGroup()},
		second:  &countingChapter{root: node.NewGroup()},
	}
	opts := append([]StoryBuilderOption{
		WithHost(h.host),
		WithSurface(h.surface),
		WithDispatcher(h.queue),
		WithLoader(testLoader(t, h.queue)),
		WithVectorArt(testArt()),
		WithChapter(0, h.intro),
		WithChapter(2, h.second),
	}, options...)
	s, err := NewStory(testConfig(t), opts...)
	require.NoError(t, err)
	h.story = s
	return h
}

func (h *harness) start(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := h.story.Start(ctx).Await(ctx)
	require.NoError(t, err)
}

func TestNewStoryRequiresHostAndSurface(t *testing.T) {
	_, err := NewStory(testConfig(t), WithSurface(&fakeSurface{}))
	assert.ErrorIs(t, err, ErrNoHost)
	_, err = NewStory(testConfig(t), WithHost(newFakeHost(1, 1)))
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestStageState(t *testing.T) {
	cfg := config.Rig{DeltaDepth: 40, DeltaHorizonAngle: 90, Radius: 12, DollyLength: 7}
	for i := 1; i <= 4; i++ {
		s := StageState(i, cfg)
		assert.InDelta(t, float32(i-1)*math32.Pi/2, s.HorizonAngle, 1e-5)
		assert.Equal(t, float32(40), s.Depth)
		assert.Equal(t, float32(12), s.PolePosition)
		assert.Equal(t, float32(7), s.DollyLength)
	}
	intro := StageState(0, cfg)
	assert.Equal(t, IntroDepth, intro.Depth)
	assert.Zero(t, intro.HorizonAngle)
}

func TestStartIsGuardedAndRevealsScene(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	root := h.story.Root()
	require.NotNil(t, root)
	assert.True(t, root.Visible())
	assert.Same(t, h.story.Start(context.Background()), h.story.Start(context.Background()))
	assert.Equal(t, root, h.story.Root())
	assert.Len(t, h.host.listeners, 1)
	assert.Len(t, h.host.frames, 1)
	assert.Equal(t, [2]int{1280, 720}, h.surface.size)
	assert.Len(t, h.story.Bubbles(), 3)
	assert.Len(t, h.story.Lights().Lights(), 5)
	assert.Same(t, h.story.Rig().CameraNull(), h.story.Lights().Anchor())
}

func TestFirstFrameOnlySetsBaseline(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	t0 := time.Now()
	require.Equal(t, 1, h.host.step(t0))
	assert.Zero(t, h.intro.count())
	assert.Zero(t, h.surface.count())
	assert.Len(t, h.host.frames, 1)

	h.host.step(t0.Add(16 * time.Millisecond))
	require.Equal(t, 1, h.intro.count())
	assert.InDelta(t, 0.016, h.intro.updates[0].Delta, 1e-4)
	assert.Equal(t, 1, h.surface.count())
}

func TestUpdatesOnlyActiveChapter(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	t0 := time.Now()
	h.host.step(t0)
	h.story.ChangeScene(2)
	h.host.step(t0.Add(16 * time.Millisecond))
	h.host.step(t0.Add(32 * time.Millisecond))

	assert.Zero(t, h.intro.count())
	assert.Equal(t, 2, h.second.count())

	h.story.ChangeScene(7)
	h.host.step(t0.Add(48 * time.Millisecond))
	assert.Equal(t, 2, h.second.count())
}

func TestChangeSceneRendersNewTarget(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	cfg := testConfig(t)

	h.story.ChangeScene(2)
	assert.Equal(t, 2, h.story.SceneIndex())
	require.Equal(t, 1, h.surface.count())
	assert.Equal(t, StageState(2, cfg.Rig), h.surface.states[0])
	assert.Equal(t, StageState(2, cfg.Rig), h.story.Rig().TargetState())
	assert.Equal(t, float32(720*2*2), h.story.ScenePosition())

	// Once the loop runs the target is assigned immediately and eased toward.
	t0 := time.Now()
	h.host.step(t0)
	h.host.step(t0.Add(16 * time.Millisecond))
	h.story.ChangeScene(4)
	assert.Equal(t, StageState(4, cfg.Rig), h.story.Rig().TargetState())
	assert.Equal(t, rig.PhaseTransitioning, h.story.Rig().Phase())
}

func TestEndStopsLoop(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.story.End()
	assert.Empty(t, h.host.listeners)
	assert.Empty(t, h.host.frames)
	assert.Len(t, h.host.cancelled, 1)

	h.story.End()
	assert.Len(t, h.host.cancelled, 1)
}

func TestEndBeforeArtReadyKeepsLoopStopped(t *testing.T) {
	release := make(chan struct{})
	art := vectorart.NewProvider(func() (vectorart.Library, error) {
		<-release
		return vectorart.NewLibrary(map[string]node.Node{"flower": node.NewGroup()}), nil
	})
	h := newHarness(t, WithVectorArt(art))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	started := h.story.Start(ctx)
	h.story.End()
	close(release)

	_, err := started.Await(ctx)
	assert.ErrorIs(t, err, ErrEnded)
	assert.Empty(t, h.host.frames)
	assert.False(t, h.story.Root().Visible())

	t0 := time.Now()
	h.host.step(t0)
	h.host.step(t0.Add(16 * time.Millisecond))
	assert.Zero(t, h.surface.count())
	assert.Zero(t, h.intro.count())
}

func TestResizeUpdatesCameraAndSurface(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.host.resize(600, 800)
	cam := h.story.Camera()
	assert.InDelta(t, 600.0/800.0, cam.Aspect(), 1e-6)
	assert.InDelta(t, Fov(600, 800)*math32.Pi/180, cam.Fov(), 1e-5)
	assert.Equal(t, [2]int{600, 800}, h.surface.size)
}

func TestPropIsPublishedAndAnimated(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	assert.Nil(t, h.story.Prop())

	// The prop is published by the frame that drains its load callback; that frame also starts its clock.
	t0 := time.Now()
	deadline := t0.Add(2 * time.Second)
	for h.story.Prop() == nil && time.Now().Before(deadline) {
		h.host.step(t0)
		time.Sleep(time.Millisecond)
	}
	p := h.story.Prop()
	require.NotNil(t, p)
	assert.Equal(t, "suitcase", p.Root.Name())
	assert.Equal(t, [3]float32{-280, 550, 800}, p.Root.Position())
	assert.Contains(t, h.story.Root().Children(), p.Root)

	h.host.step(t0.Add(700 * time.Millisecond))
	assert.InDelta(t, 530, p.Root.Position()[1], 1e-2)
}
