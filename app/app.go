// Package app assembles a runnable story from process settings: window, frame host, renderer, loader and story.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine"
	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
	"github.com/Carmen-Shannon/oxy-story/engine/renderer"
	"github.com/Carmen-Shannon/oxy-story/engine/story"
	"github.com/Carmen-Shannon/oxy-story/engine/vectorart"
	"github.com/Carmen-Shannon/oxy-story/engine/window"
)

// App owns every long-lived part of a running story.
type App struct {
	settings config.Settings
	cfg      *config.Story

	window     window.Window
	engine     engine.Engine
	renderer   renderer.Renderer
	dispatcher *dispatch.Queue
	loader     loader.Loader
	story      story.Story
}

// New builds an App from settings. The "null" backend runs headless without a window.
//
// Parameters:
//   - settings: the process settings
//
// Returns:
//   - *App: the assembled app
//   - error: an error if the story file, the window or the renderer cannot be created
func New(settings config.Settings) (*App, error) {
	cfg, err := settings.LoadStory()
	if err != nil {
		return nil, fmt.Errorf("load story: %w", err)
	}

	backend, ok := renderer.ParseBackendType(settings.Backend)
	if !ok {
		return nil, fmt.Errorf("unknown render backend %q", settings.Backend)
	}

	a := &App{
		settings:   settings,
		cfg:        cfg,
		dispatcher: dispatch.NewQueue(),
	}

	engineOpts := []engine.EngineBuilderOption{
		engine.WithSize(settings.Width, settings.Height),
		engine.WithProfiling(settings.Profile),
	}
	rendererOpts := []renderer.RendererBuilderOption{
		renderer.WithBackend(backend),
		renderer.WithSize(settings.Width, settings.Height),
		renderer.WithClearColor(cfg.Scene.Background),
		renderer.WithPresentMode(presentMode(settings.VSync)),
	}

	if backend == renderer.BackendTypeWGPU {
		w, err := window.NewWindow(
			window.WithTitle("oxy story"),
			window.WithSize(settings.Width, settings.Height),
		)
		if err != nil {
			return nil, err
		}
		a.window = w
		engineOpts = append(engineOpts, engine.WithWindow(w))
		rendererOpts = append(rendererOpts, renderer.WithWindow(w))
	}

	a.engine = engine.NewEngine(engineOpts...)
	a.renderer, err = renderer.NewRenderer(rendererOpts...)
	if err != nil {
		a.closeWindow()
		return nil, err
	}

	a.loader = loader.NewLoader(
		loader.WithWorkers(settings.Workers),
		loader.WithDispatcher(a.dispatcher),
		loader.WithDecoder(loader.NewDecoder(loader.WithRoot(settings.AssetRoot))),
	)

	storyOpts := []story.StoryBuilderOption{
		story.WithHost(a.engine),
		story.WithSurface(a.renderer),
		story.WithLoader(a.loader),
		story.WithDispatcher(a.dispatcher),
		story.WithMaxFrameDelta(settings.MaxFrameDelta),
	}
	if settings.SpritePath != "" {
		storyOpts = append(storyOpts, story.WithVectorArt(vectorart.NewFileProvider(settings.SpritePath)))
	}
	a.story, err = story.NewStory(cfg, storyOpts...)
	if err != nil {
		a.renderer.Close()
		a.closeWindow()
		return nil, err
	}

	if a.window != nil {
		a.window.SetKeyDownCallback(a.keyDown)
	}
	return a, nil
}

// Story returns the story.
func (a *App) Story() story.Story { return a.story }

// Engine returns the frame host.
func (a *App) Engine() engine.Engine { return a.engine }

// Renderer returns the render surface.
func (a *App) Renderer() renderer.Renderer { return a.renderer }

// SelectScene switches the story to index on the next frame.
func (a *App) SelectScene(index int) {
	a.dispatcher.Post(func() { a.story.ChangeScene(index) })
}

func (a *App) keyDown(keyCode uint32) {
	if i, ok := common.SceneKey(keyCode); ok {
		a.SelectScene(i)
	}
}

// Run starts the story and blocks until the window closes, Quit is called on the engine or ctx is done.
// Resources are released before it returns.
//
// Parameters:
//   - ctx: cancels the run
//
// Returns:
//   - error: the story start error, if any
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	started := a.story.Start(ctx)
	started.Then(func(_ struct{}, err error) {
		if err != nil {
			log.Printf("app: story start: %v", err)
			a.engine.Quit()
		}
	})
	go func() {
		<-ctx.Done()
		a.engine.Quit()
	}()

	a.engine.Run()
	cancel()

	a.story.End()
	a.loader.Close()
	a.renderer.Close()
	a.closeWindow()

	// Stopping before the story started is a normal shutdown.
	_, err := started.Await(context.Background())
	if errors.Is(err, story.ErrEnded) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (a *App) closeWindow() {
	if a.window == nil {
		return
	}
	if err := a.window.Close(); err != nil {
		log.Printf("app: close window: %v", err)
	}
}

func presentMode(vsync bool) renderer.PresentMode {
	if vsync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}
