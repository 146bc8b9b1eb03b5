package chapter

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
	"github.com/Carmen-Shannon/oxy-story/engine/timeline"
)

type intro struct {
	*base

	bob    config.Bob
	shapes node.Node
}

// NewIntro builds the intro shown at scene index 0: a set of vector-art shapes bobbing in place.
//
// Parameters:
//   - cfg: the intro config
//   - options: variadic list of ChapterBuilderOption functions
//
// Returns:
//   - Chapter: the intro
func NewIntro(cfg config.Intro, options ...ChapterBuilderOption) Chapter {
	c := &intro{base: configure("intro", options...), bob: cfg.Bob}
	c.shapes = node.NewGroup(node.WithName("shapes"))
	c.into = c.shapes
	c.root = node.NewGroup(
		node.WithName("intro"),
		node.WithPosition(cfg.Position.X, cfg.Position.Y, cfg.Position.Z),
		node.WithChildren(c.shapes),
	)

	names := make([]string, 0, len(cfg.Shapes))
	for name := range cfg.Shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.addShapeAt(name, name, cfg.Shapes[name])
	}
	return c
}

// Update bobs the shapes on Y around their authored positions.
func (c *intro) Update(frame timeline.Frame) {
	if c.bob.Period <= 0 || c.bob.Amplitude == 0 {
		return
	}
	y := c.bob.Amplitude * math32.Sin(2*math32.Pi*frame.Elapsed/c.bob.Period)
	c.shapes.SetPosition(0, y, 0)
}
