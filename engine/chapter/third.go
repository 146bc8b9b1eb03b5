package chapter

import (
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/primitive"
)

type third struct {
	*base
}

// NewThird builds chapter three: the snowman, the fence and the road.
func NewThird(cfg config.Chapter, options ...ChapterBuilderOption) Chapter {
	c := &third{base: newBase(cfg, options...)}
	c.add("snowman", primitive.Snowman())
	c.add("fencing", primitive.Fence())
	c.add("road", primitive.Road())
	c.loadModels()
	return c
}
