// Package story runs the animated story: it owns the camera rig, the lights, the chapters and the
// freestanding prop, and drives them from one render loop scheduled by the host.
package story

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/bubble"
	"github.com/Carmen-Shannon/oxy-story/engine/camera"
	"github.com/Carmen-Shannon/oxy-story/engine/chapter"
	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/future"
	"github.com/Carmen-Shannon/oxy-story/engine/light"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
	"github.com/Carmen-Shannon/oxy-story/engine/rig"
	"github.com/Carmen-Shannon/oxy-story/engine/timeline"
	"github.com/Carmen-Shannon/oxy-story/engine/vectorart"
)

var (
	// ErrNoHost is returned by NewStory without a host.
	ErrNoHost = errors.New("story: no host")

	// ErrNoSurface is returned by NewStory without a render surface.
	ErrNoSurface = errors.New("story: no render surface")

	// ErrEnded resolves the Start future when End ran before the vector art was ready.
	ErrEnded = errors.New("story: ended before start")
)

// Surface renders frames.
type Surface interface {
	// Render draws one frame of root as seen from cam.
	Render(root node.Node, cam camera.Camera) error

	// Resize changes the viewport size.
	Resize(width, height int)
}

// Host schedules frames and reports window size changes.
type Host interface {
	// RequestFrame schedules fn for the next display frame and returns a request id.
	RequestFrame(fn func(now time.Time)) int

	// CancelFrame drops a pending frame request.
	CancelFrame(id int)

	// AddResizeListener registers fn for size changes and returns a listener id.
	AddResizeListener(fn func(width, height int)) int

	// RemoveResizeListener deregisters a listener.
	RemoveResizeListener(id int)

	// Size returns the current viewport size.
	Size() (width, height int)
}

// storyImpl is the implementation of the Story interface.
type storyImpl struct {
	mu *sync.Mutex

	cfg        *config.Story
	host       Host
	surface    Surface
	loader     loader.Loader
	art        *vectorart.Provider
	dispatcher *dispatch.Queue
	propName   string
	extra      map[int]chapter.Chapter
	clockOpts  []timeline.ClockOption

	clock  *timeline.Clock
	rig    rig.Rig
	camera camera.Camera
	lights light.Group

	scene      node.Node
	pivot      node.Node
	storyGroup node.Node
	chapters   map[int]chapter.Chapter
	prop       atomic.Pointer[Prop]
	bubbles    []bubble.Bubble

	width, height int
	sceneIndex    int

	initialized bool
	running     bool
	ended       bool
	started     *future.Future[struct{}]
	frameID     int
	framePend   bool
	resizeID    int
	resizeReg   bool
}

// Story is the story orchestrator.
//
// All frame work happens on the host's frame thread. Background loads post their scene changes to the
// dispatch queue, which the loop drains at the start of every frame.
type Story interface {
	// Start builds the scene once, hides it until the vector art is ready, then shows it and starts the
	// render loop. Later calls return the same future.
	//
	// Parameters:
	//   - ctx: bounds the wait for the vector art and the background loads
	//
	// Returns:
	//   - *future.Future[struct{}]: resolves when the loop has been scheduled, with the wait error, or
	//     with ErrEnded when End ran first
	Start(ctx context.Context) *future.Future[struct{}]

	// ChangeScene makes index the active scene, retargets the rig and renders one frame immediately.
	//
	// Parameters:
	//   - index: the scene index, 0 for the intro
	ChangeScene(index int)

	// End removes the resize listener and cancels the pending frame. The loop does not reschedule afterwards.
	End()

	// SceneIndex returns the active scene index.
	SceneIndex() int

	// ScenePosition returns the backdrop texture offset of the active scene.
	ScenePosition() float32

	// Rig returns the camera rig, or nil before Start.
	Rig() rig.Rig

	// Camera returns the camera, or nil before Start.
	Camera() camera.Camera

	// Lights returns the light group, or nil before Start.
	Lights() light.Group

	// Root returns the scene root, or nil before Start.
	Root() node.Node

	// Chapter returns the chapter registered for index.
	Chapter(index int) (chapter.Chapter, bool)

	// Prop returns the freestanding prop, or nil until its asset has loaded.
	Prop() *Prop

	// Bubbles returns the bubble layout for the viewport the story started with.
	Bubbles() []bubble.Bubble
}

var _ Story = &storyImpl{}

// NewStory creates a Story for cfg. A host and a surface are required; a loader, a vector-art
// provider and a dispatch queue are created when not supplied.
//
// Parameters:
//   - cfg: the story config
//   - options: variadic list of StoryBuilderOption functions
//
// Returns:
//   - Story: the story
//   - error: ErrNoHost or ErrNoSurface
func NewStory(cfg *config.Story, options ...StoryBuilderOption) (Story, error) {
	s := &storyImpl{
		mu:       &sync.Mutex{},
		cfg:      cfg,
		propName: "suitcase",
		extra:    make(map[int]chapter.Chapter),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.host == nil {
		return nil, ErrNoHost
	}
	if s.surface == nil {
		return nil, ErrNoSurface
	}
	if s.dispatcher == nil {
		s.dispatcher = dispatch.NewQueue()
	}
	if s.loader == nil {
		s.loader = loader.NewLoader(loader.WithDispatcher(s.dispatcher))
	}
	if s.art == nil {
		s.art = vectorart.NewDefaultProvider()
	}
	s.clock = timeline.NewClock(s.clockOpts...)
	return s, nil
}

func (s *storyImpl) Start(ctx context.Context) *future.Future[struct{}] {
	s.mu.Lock()
	if s.initialized {
		f := s.started
		s.mu.Unlock()
		return f
	}
	s.initialized = true
	s.started = future.New[struct{}]()
	s.init(ctx)
	s.scene.SetVisible(false)
	s.resizeID = s.host.AddResizeListener(s.resize)
	s.resizeReg = true
	started := s.started
	s.mu.Unlock()

	s.art.Init()
	go func() {
		if _, err := s.art.Get(ctx); err != nil {
			if ctx.Err() != nil {
				started.Resolve(struct{}{}, err)
				return
			}
			log.Printf("story: vector art: %v", err)
		}
		if !s.begin() {
			started.Resolve(struct{}{}, ErrEnded)
			return
		}
		started.Resolve(struct{}{}, nil)
	}()
	return started
}

// begin reveals the scene and schedules the first frame. It reports false once End has run.
func (s *storyImpl) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return false
	}
	s.scene.SetVisible(true)
	s.running = true
	s.schedule()
	return true
}

// init builds the scene graph. Caller must hold the mutex.
func (s *storyImpl) init(ctx context.Context) {
	s.width, s.height = s.host.Size()
	sc := s.cfg.Scene

	s.scene = node.NewGroup(node.WithName("scene"))

	s.rig = rig.NewRig(
		rig.WithRate(s.cfg.Rig.Rate),
		rig.WithCameraOffset(sc.Camera.X, sc.Camera.Y, sc.Camera.Z),
	)
	s.rig.ChangeStateTo(StageState(s.sceneIndex, s.cfg.Rig))
	s.scene.AddChild(s.rig.Root())

	s.camera = camera.NewCamera(
		camera.WithFov(common.DegToRad(Fov(s.width, s.height))),
		camera.WithAspect(Aspect(s.width, s.height)),
		camera.WithNear(sc.Near),
		camera.WithFar(sc.Far),
		camera.WithController(s.rig),
	)

	opts := []chapter.ChapterBuilderOption{
		chapter.WithContext(ctx),
		chapter.WithLoader(s.loader),
		chapter.WithVectorArt(s.art),
		chapter.WithDispatcher(s.dispatcher),
	}
	s.chapters = make(map[int]chapter.Chapter, len(s.cfg.Chapters)+1)
	s.storyGroup = node.NewGroup(node.WithName("stories"))
	for i, c := range s.cfg.Chapters {
		ch := chapter.New(c, opts...)
		ch.Root().SetRotation(0, common.DegToRad(float32(i)*sc.ChapterStep), 0)
		s.storyGroup.AddChild(ch.Root())
		s.chapters[i+1] = ch
	}
	intro := chapter.NewIntro(s.cfg.Intro, opts...)
	s.chapters[0] = intro
	for i, ch := range s.extra {
		s.chapters[i] = ch
	}

	s.pivot = node.NewGroup(
		node.WithName("pivot"),
		node.WithPosition(sc.Pivot.X, sc.Pivot.Y, sc.Pivot.Z),
		node.WithChildren(s.storyGroup, intro.Root()),
	)
	s.scene.AddChild(s.pivot)

	s.addProp(ctx)

	s.lights = light.NewGroup(s.cfg.LightConfigs(),
		light.WithShadowMapSize(s.width, s.height),
		light.WithShadowClip(sc.Near, sc.Far),
		light.WithAmbient(s.cfg.Ambient),
	)
	s.lights.Attach(s.rig.CameraNull())

	center := [2]float32{float32(s.width) / 2, float32(s.height) / 2}
	s.bubbles = bubble.Configs(s.cfg.Bubbles, center, float32(s.width), float32(s.height))

	s.surface.Resize(s.width, s.height)
}

// addProp loads the freestanding prop. It is published once its root is in the scene.
func (s *storyImpl) addProp(ctx context.Context) {
	params, ok := s.cfg.Prop(s.propName)
	if !ok {
		return
	}
	s.loader.Load(ctx, params.Descriptor, params.Descriptor.Material(), func(mesh node.Node) {
		p := NewProp(mesh, params)
		s.scene.AddChild(p.Root)
		s.prop.Store(p)
	})
}

// animate is the frame callback.
func (s *storyImpl) animate(now time.Time) {
	s.mu.Lock()
	s.framePend = false
	running := s.running
	if running {
		s.schedule()
	}
	s.mu.Unlock()
	if !running {
		return
	}

	// Drained without the mutex: posted work may call back into the story.
	s.dispatcher.Drain()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	frame, ok := s.clock.Tick(now)
	if !ok {
		return
	}

	s.rig.Update(frame.Delta, frame.Elapsed)
	if ch, ok := s.chapters[s.sceneIndex]; ok {
		ch.Update(frame)
	}
	if p := s.prop.Load(); p != nil {
		p.Advance(now)
	}
	s.render()
}

// schedule requests the next frame. Caller must hold the mutex.
func (s *storyImpl) schedule() {
	s.frameID = s.host.RequestFrame(s.animate)
	s.framePend = true
}

// render draws the scene. Caller must hold the mutex.
func (s *storyImpl) render() {
	s.camera.Update()
	if err := s.surface.Render(s.scene, s.camera); err != nil {
		log.Printf("story: render: %v", err)
	}
}

func (s *storyImpl) ChangeScene(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sceneIndex = index
	if s.rig == nil {
		return
	}
	s.rig.ChangeStateTo(StageState(index, s.cfg.Rig))
	s.render()
}

// resize is the host resize listener.
func (s *storyImpl) resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.camera.SetFov(common.DegToRad(Fov(width, height)))
	s.camera.SetAspect(Aspect(width, height))
	s.surface.Resize(width, height)
}

func (s *storyImpl) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resizeReg {
		s.host.RemoveResizeListener(s.resizeID)
		s.resizeReg = false
	}
	if s.framePend {
		s.host.CancelFrame(s.frameID)
		s.framePend = false
	}
	s.running = false
	s.ended = true
}

func (s *storyImpl) SceneIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sceneIndex
}

func (s *storyImpl) ScenePosition() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ScenePosition(s.height, s.cfg.Scene.TextureRatio, s.sceneIndex)
}

func (s *storyImpl) Rig() rig.Rig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rig
}

func (s *storyImpl) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

func (s *storyImpl) Lights() light.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lights
}

func (s *storyImpl) Root() node.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

func (s *storyImpl) Chapter(index int) (chapter.Chapter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chapters[index]
	return ch, ok
}

func (s *storyImpl) Prop() *Prop {
	return s.prop.Load()
}

func (s *storyImpl) Bubbles() []bubble.Bubble {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bubble.Bubble, len(s.bubbles))
	copy(out, s.bubbles)
	return out
}
