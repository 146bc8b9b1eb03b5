package renderer

import "sync"

// nullRendererBackend keeps the last frame in memory instead of drawing it.
type nullRendererBackend struct {
	mu *sync.Mutex

	width, height int
	clear         [4]float64
	presentMode   PresentMode
	frames        int
	items         []DrawItem
	released      bool
}

var _ RendererBackend = &nullRendererBackend{}

func newNullRendererBackend() *nullRendererBackend {
	return &nullRendererBackend{mu: &sync.Mutex{}}
}

func (b *nullRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *nullRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *nullRendererBackend) SetClearColor(c [4]float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear = c
}

func (b *nullRendererBackend) DrawFrame(items []DrawItem) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames++
	b.items = items
	return nil
}

func (b *nullRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
}
