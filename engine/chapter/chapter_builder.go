package chapter

import (
	"context"

	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
	"github.com/Carmen-Shannon/oxy-story/engine/vectorart"
)

// ChapterBuilderOption is a function that configures a chapter during construction.
type ChapterBuilderOption func(*base)

// WithContext sets the context async decorations wait under.
//
// Parameters:
//   - ctx: the context
//
// Returns:
//   - ChapterBuilderOption: option function to apply
func WithContext(ctx context.Context) ChapterBuilderOption {
	return func(b *base) {
		if ctx != nil {
			b.ctx = ctx
		}
	}
}

// WithLoader sets the model loader. Without one, authored models are skipped.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - ChapterBuilderOption: option function to apply
func WithLoader(l loader.Loader) ChapterBuilderOption {
	return func(b *base) {
		b.loader = l
	}
}

// WithVectorArt sets the vector-art provider. Without one, shapes are skipped.
func WithVectorArt(p *vectorart.Provider) ChapterBuilderOption {
	return func(b *base) {
		b.art = p
	}
}

// WithDispatcher routes async attachments through the frame-thread queue.
//
// Parameters:
//   - q: the queue
//
// Returns:
//   - ChapterBuilderOption: option function to apply
func WithDispatcher(q *dispatch.Queue) ChapterBuilderOption {
	return func(b *base) {
		b.dispatcher = q
	}
}
