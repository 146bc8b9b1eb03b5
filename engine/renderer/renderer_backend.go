package renderer

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeNull selects a backend that records frames without a GPU.
	BackendTypeNull
)

// ParseBackendType maps a configuration name ("wgpu", "null") to a backend type.
//
// Parameters:
//   - name: the backend name
//
// Returns:
//   - RendererBackendType: the backend type
//   - bool: false for an unknown name
func ParseBackendType(name string) (RendererBackendType, bool) {
	switch name {
	case "wgpu", "":
		return BackendTypeWGPU, true
	case "null", "none":
		return BackendTypeNull, true
	}
	return BackendTypeWGPU, false
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend draws prepared frames for the Renderer.
type RendererBackend interface {
	// ConfigureSurface sizes the render target. Called on creation and on every resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets how frames are delivered to the display.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color as linear RGBA.
	SetClearColor(c [4]float64)

	// DrawFrame clears the target, draws every item and presents the result.
	//
	// Parameters:
	//   - items: the frame's draw list
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or submitted
	DrawFrame(items []DrawItem) error

	// Release frees backend resources.
	Release()
}
