package chapter

import (
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/primitive"
)

type first struct {
	*base
}

// NewFirst builds chapter one: the flower, the carpet, saturn and the static room.
func NewFirst(cfg config.Chapter, options ...ChapterBuilderOption) Chapter {
	c := &first{base: newBase(cfg, options...)}
	c.add("carpet", primitive.Carpet(false))
	c.add("saturn", primitive.Saturn(false))
	c.addShape("flower", "flower")
	c.loadModels()
	return c
}
