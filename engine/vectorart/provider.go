package vectorart

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/Carmen-Shannon/oxy-story/engine/future"
)

//go:embed sprites.svg
var defaultSprites []byte

// Provider owns the process-wide vector-art Library. The first Init starts loading it; every
// caller shares the same future.
type Provider struct {
	once  sync.Once
	load  func() (Library, error)
	ready *future.Future[Library]
}

// NewProvider creates a Provider that builds its Library with load.
//
// Parameters:
//   - load: the loader, called at most once
//
// Returns:
//   - *Provider: the provider
func NewProvider(load func() (Library, error)) *Provider {
	return &Provider{load: load}
}

// NewFileProvider creates a Provider that parses the SVG sprite sheet at path.
func NewFileProvider(path string) *Provider {
	return NewProvider(func() (Library, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("vectorart: %w", err)
		}
		defer f.Close()
		return ParseSVG(f)
	})
}

// NewDefaultProvider creates a Provider for the built-in story sprite sheet.
func NewDefaultProvider() *Provider {
	return NewProvider(func() (Library, error) {
		return ParseSVG(bytes.NewReader(defaultSprites))
	})
}

// Init starts loading the Library if it has not started yet.
//
// Returns:
//   - *future.Future[Library]: the shared ready future
func (p *Provider) Init() *future.Future[Library] {
	p.once.Do(func() {
		p.ready = future.Go(p.load)
	})
	return p.ready
}

// Get waits for the Library, starting the load if needed.
//
// Parameters:
//   - ctx: context bounding the wait
//
// Returns:
//   - Library: the loaded library
//   - error: the load error, or ctx.Err()
func (p *Provider) Get(ctx context.Context) (Library, error) {
	return p.Init().Await(ctx)
}
