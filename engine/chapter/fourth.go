package chapter

import (
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/primitive"
)

type fourth struct {
	*base
}

// NewFourth builds chapter four, the night version of chapter one with the suitcase in the room.
func NewFourth(cfg config.Chapter, options ...ChapterBuilderOption) Chapter {
	c := &fourth{base: newBase(cfg, options...)}
	c.add("carpet", primitive.Carpet(true))
	c.add("saturn", primitive.Saturn(true))
	c.addShape("flower", "flower")
	c.loadModels()
	return c
}
