package chapter

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/easing"
	"github.com/Carmen-Shannon/oxy-story/engine/primitive"
	"github.com/Carmen-Shannon/oxy-story/engine/timeline"
)

type second struct {
	*base

	hue   *config.HueAnimation
	start float32
	began bool
}

// NewSecond builds chapter two: the leaves, the pyramid, the lantern and the suitcase room.
// Its backdrop hue is animated when the config carries a hue animation.
func NewSecond(cfg config.Chapter, options ...ChapterBuilderOption) Chapter {
	c := &second{base: newBase(cfg, options...), hue: cfg.Texture.Hue}
	c.add("pyramid", primitive.Pyramid())
	c.add("lantern", primitive.Lantern())
	c.addShape("bigLeaf", "leaf-1")
	c.addShape("smallLeaf", "leaf-2")
	c.loadModels()
	return c
}

// Update eases the hue from its initial to its final value, then sways it around the final value.
// Time is measured from the first update the chapter receives.
func (c *second) Update(frame timeline.Frame) {
	if c.hue == nil {
		return
	}
	if !c.began {
		c.start, c.began = frame.Elapsed, true
	}
	c.texture.SetHueShift(HueAt(*c.hue, frame.Elapsed-c.start))
}

// HueAt returns the hue shift t seconds into a hue animation.
//
// Parameters:
//   - h: the animation
//   - t: seconds since the animation started
//
// Returns:
//   - float32: the hue shift
func HueAt(h config.HueAnimation, t float32) float32 {
	if h.Duration <= 0 || t >= h.Duration {
		if h.Duration <= 0 {
			return h.Final
		}
		swing := h.Variation * (h.Final - h.Initial)
		return h.Final + swing*math32.Sin(2*math32.Pi*(t-h.Duration)/h.Duration)
	}
	return easing.Tween(h.Initial, h.Final, t, 0, h.Duration, easing.InOutQuad)
}
