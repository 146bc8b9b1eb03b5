package story

import (
	"time"

	"github.com/Carmen-Shannon/oxy-story/engine/chapter"
	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
	"github.com/Carmen-Shannon/oxy-story/engine/timeline"
	"github.com/Carmen-Shannon/oxy-story/engine/vectorart"
)

// StoryBuilderOption is a function that configures a story during construction.
type StoryBuilderOption func(*storyImpl)

// WithHost sets the frame scheduler and window.
//
// Parameters:
//   - h: the host
//
// Returns:
//   - StoryBuilderOption: option function to apply
func WithHost(h Host) StoryBuilderOption {
	return func(s *storyImpl) {
		s.host = h
	}
}

// WithSurface sets the render surface.
//
// Parameters:
//   - surface: the surface
//
// Returns:
//   - StoryBuilderOption: option function to apply
func WithSurface(surface Surface) StoryBuilderOption {
	return func(s *storyImpl) {
		s.surface = surface
	}
}

// WithLoader sets the model loader. It should deliver through the same dispatch queue as the story.
func WithLoader(l loader.Loader) StoryBuilderOption {
	return func(s *storyImpl) {
		s.loader = l
	}
}

// WithVectorArt sets the vector-art provider.
func WithVectorArt(p *vectorart.Provider) StoryBuilderOption {
	return func(s *storyImpl) {
		s.art = p
	}
}

// WithDispatcher sets the queue background work posts scene changes to.
func WithDispatcher(q *dispatch.Queue) StoryBuilderOption {
	return func(s *storyImpl) {
		s.dispatcher = q
	}
}

// WithMaxFrameDelta bounds the frame delta of the story clock. Zero disables the bound.
//
// Parameters:
//   - d: the bound
//
// Returns:
//   - StoryBuilderOption: option function to apply
func WithMaxFrameDelta(d time.Duration) StoryBuilderOption {
	return func(s *storyImpl) {
		s.clockOpts = append(s.clockOpts, timeline.WithMaxDelta(d))
	}
}

// WithProp selects the prop config animated as the freestanding prop. An empty name disables it.
func WithProp(name string) StoryBuilderOption {
	return func(s *storyImpl) {
		s.propName = name
	}
}

// WithChapter registers c for index, replacing the chapter built from config.
// The chapter receives updates but is not added to the scene.
//
// Parameters:
//   - index: the scene index
//   - c: the chapter
//
// Returns:
//   - StoryBuilderOption: option function to apply
func WithChapter(index int, c chapter.Chapter) StoryBuilderOption {
	return func(s *storyImpl) {
		s.extra[index] = c
	}
}
