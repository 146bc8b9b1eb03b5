package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-story/engine/camera"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
	"github.com/Carmen-Shannon/oxy-story/engine/window"
)

// ErrNoWindow is returned by NewRenderer when a GPU backend is requested without a window.
var ErrNoWindow = errors.New("renderer: no window for GPU backend")

// FrameStats describes the most recent rendered frame.
type FrameStats struct {
	Frame  uint64
	Draws  int
	Width  int
	Height int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	window      window.Window

	width  int
	height int
	clear  uint32
	last   FrameStats

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
}

// Renderer draws the scene graph from a camera onto a window surface.
//
// Each frame the visible meshes are flattened into a draw list and handed to the backend.
type Renderer interface {
	// Render draws one frame of the tree under root as seen by cam.
	// The camera matrices must be current.
	//
	// Parameters:
	//   - root: the scene root
	//   - cam: the viewing camera
	//
	// Returns:
	//   - error: an error if the backend failed to draw the frame
	Render(root node.Node, cam camera.Camera) error

	// Resize configures the backend for a new surface size.
	// Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetClearColor sets the background color.
	//
	// Parameters:
	//   - hex: color as 0xRRGGBB
	SetClearColor(hex uint32)

	// SetPresentMode sets how frames are delivered to the display.
	SetPresentMode(mode PresentMode)

	// LastFrame returns statistics about the most recent frame.
	LastFrame() FrameStats

	// Close releases backend resources.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer. The WGPU backend needs a window to create its surface.
//
// Parameters:
//   - options: functional options for backend selection and surface configuration
//
// Returns:
//   - Renderer: the new renderer
//   - error: ErrNoWindow, or an error creating the GPU device
func NewRenderer(options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		width:       1280,
		height:      720,
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	switch r.backendType {
	case BackendTypeNull:
		r.backend = newNullRendererBackend()
	default:
		if r.window == nil {
			return nil, ErrNoWindow
		}
		b, err := newWGPURendererBackend(r.window.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount)
		if err != nil {
			return nil, fmt.Errorf("renderer: %w", err)
		}
		r.backend = b
	}

	if r.window != nil {
		r.width, r.height = r.window.Size()
	}
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(clearColor(r.clear))
	r.backend.ConfigureSurface(r.width, r.height)
	return r, nil
}

func (r *renderer) Render(root node.Node, cam camera.Camera) error {
	items := collect(root, cam.ViewProjectionMatrix())
	if err := r.backend.DrawFrame(items); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = FrameStats{
		Frame:  r.last.Frame + 1,
		Draws:  len(items),
		Width:  r.width,
		Height: r.height,
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	if width == r.width && height == r.height {
		r.mu.Unlock()
		return
	}
	r.width, r.height = width, height
	r.mu.Unlock()

	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetClearColor(hex uint32) {
	r.mu.Lock()
	r.clear = hex
	r.mu.Unlock()
	r.backend.SetClearColor(clearColor(hex))
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) LastFrame() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *renderer) Close() {
	r.backend.Release()
}
