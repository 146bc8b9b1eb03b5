package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-story/engine/profiler"
	"github.com/Carmen-Shannon/oxy-story/engine/window"
)

// engine implements the Engine interface.
// Coordinates the frame goroutine and the window message loop.
type engine struct {
	mu *sync.Mutex

	frameRateChannel chan time.Duration // Channel for dynamic frame rate updates

	running bool
	visible bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameInterval time.Duration

	nextID    int
	frames    map[int]func(now time.Time)
	listeners map[int]func(width, height int)

	width  int
	height int
}

// Engine is the frame host of a story.
// It hands out display frames to requested callbacks, reports window size changes and owns the window message loop.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// RequestFrame schedules fn to run once on the next frame.
	// Requests made while a frame is running are served by the following frame.
	//
	// Parameters:
	//   - fn: callback receiving the frame timestamp
	//
	// Returns:
	//   - int: request id for CancelFrame
	RequestFrame(fn func(now time.Time)) int

	// CancelFrame drops a pending request. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the request id
	CancelFrame(id int)

	// AddResizeListener registers fn for size changes.
	//
	// Parameters:
	//   - fn: callback receiving the new width and height
	//
	// Returns:
	//   - int: listener id for RemoveResizeListener
	AddResizeListener(fn func(width, height int)) int

	// RemoveResizeListener deregisters a listener. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the listener id
	RemoveResizeListener(id int)

	// Size returns the current viewport size.
	//
	// Returns:
	//   - width, height: the size in pixels
	Size() (width, height int)

	// Resize records a new viewport size and notifies every listener.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// SetVisible pauses (false) or resumes (true) frame delivery. Pending requests are kept.
	//
	// Parameters:
	//   - visible: whether frames should be delivered
	SetVisible(visible bool)

	// Step runs every pending frame request with now.
	//
	// Parameters:
	//   - now: the frame timestamp
	//
	// Returns:
	//   - int: number of callbacks run
	Step(now time.Time) int

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameRate sets the frame rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetFrameRate(fps float64)

	// Run starts the frame loop and blocks until the window closes or Quit is called.
	// With a window it must be called on the thread that created the window.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame rate, size)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		frameRateChannel: make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		visible:          true,
		profiler:         profiler.NewProfiler(),
		frameInterval:    time.Second / 60,
		frames:           make(map[int]func(now time.Time)),
		listeners:        make(map[int]func(width, height int)),
		width:            1280,
		height:           720,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.width, e.height = e.window.Size()
		e.window.SetResizeCallback(e.Resize)
		e.window.SetVisibilityCallback(e.SetVisible)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) RequestFrame(fn func(now time.Time)) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.frames[e.nextID] = fn
	return e.nextID
}

func (e *engine) CancelFrame(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.frames, id)
}

func (e *engine) AddResizeListener(fn func(width, height int)) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.listeners[e.nextID] = fn
	return e.nextID
}

func (e *engine) RemoveResizeListener(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, id)
}

func (e *engine) Size() (width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

func (e *engine) Resize(width, height int) {
	e.mu.Lock()
	e.width, e.height = width, height
	listeners := sortedCallbacks(e.listeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(width, height)
	}
}

func (e *engine) SetVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = visible
}

func (e *engine) Step(now time.Time) int {
	e.mu.Lock()
	if !e.visible || len(e.frames) == 0 {
		e.mu.Unlock()
		return 0
	}
	pending := sortedCallbacks(e.frames)
	e.frames = make(map[int]func(now time.Time))
	e.mu.Unlock()

	for _, fn := range pending {
		fn(now)
	}
	return len(pending)
}

// sortedCallbacks returns the values of m in ascending id order.
func sortedCallbacks[F any](m map[int]F) []F {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]F, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and asks the window, if any, to close.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// handle launches the frame and quit goroutines.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleFrames()
	go e.handleQuit()
}

// handleFrames delivers pending frame requests at the configured rate until quit.
// Recovers from panics in frame callbacks, logs them and signals quit.
func (e *engine) handleFrames() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: frame goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			e.Step(now)
			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick(now)
			}
		case interval := <-e.frameRateChannel:
			ticker.Reset(interval)
			e.frameInterval = interval
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetFrameRate sets the frame rate. If the engine is running, the change takes effect on the next tick.
func (e *engine) SetFrameRate(fps float64) {
	interval := frameInterval(fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()
	if !running {
		e.frameInterval = interval
		return
	}

	// Replace any pending update that the frame goroutine has not consumed yet.
	select {
	case e.frameRateChannel <- interval:
	default:
		select {
		case <-e.frameRateChannel:
		default:
		}
		e.frameRateChannel <- interval
	}
}

func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
