// Package bubble holds the declarative configuration of the rising bubbles and the motion helper that
// places a bubble at a point in time.
package bubble

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-story/engine/easing"
)

// Params are the timing and glare settings shared by every bubble.
type Params struct {
	// Duration is the length of one rise in seconds.
	Duration float32 `yaml:"duration"`

	GlareOffset      float32 `yaml:"glareOffset"`
	StartRadianAngle float32 `yaml:"startRadianAngle"`
	EndRadianAngle   float32 `yaml:"endRadianAngle"`
}

// DefaultParams returns the stock bubble timing.
func DefaultParams() Params {
	return Params{
		Duration:         2.1,
		GlareOffset:      0.8,
		StartRadianAngle: 1.96,
		EndRadianAngle:   2.75,
	}
}

// Bubble is the motion configuration of a single bubble in screen space.
type Bubble struct {
	Radius            float32
	InitialPosition   [2]float32
	Position          [2]float32
	FinalOffset       [2]float32
	PositionAmplitude float32
	GlareOffset       float32
	GlareAngleStart   float32
	GlareAngleEnd     float32

	// Timeout is the fraction of the rise duration the bubble waits before moving.
	Timeout float32
}

// Configs returns the three bubbles laid out around center for a viewport of width by height.
//
// Parameters:
//   - p: the shared params
//   - center: the viewport center
//   - width, height: the viewport size
//
// Returns:
//   - []Bubble: the bubbles, largest first
func Configs(p Params, center [2]float32, width, height float32) []Bubble {
	mk := func(radius, x, amplitude, timeout float32) Bubble {
		start := [2]float32{x, -100}
		return Bubble{
			Radius:            radius,
			InitialPosition:   start,
			Position:          start,
			FinalOffset:       [2]float32{0, height + 200},
			PositionAmplitude: amplitude,
			GlareOffset:       p.GlareOffset,
			GlareAngleStart:   p.StartRadianAngle,
			GlareAngleEnd:     p.EndRadianAngle,
			Timeout:           timeout,
		}
	}
	return []Bubble{
		mk(80, center[0]-center[0]/10, 60, 0.05),
		mk(60, center[0]-width/6, 40, 0.70),
		mk(40, center[0]+150, 30, 0.90),
	}
}

// At returns the bubble position t seconds into a rise of the given duration. The bubble holds its
// initial position until Timeout·duration, then rises to InitialPosition+FinalOffset over the rest
// of the window, swaying on X by PositionAmplitude.
//
// Parameters:
//   - t: seconds since the rise started
//   - duration: the rise duration in seconds
//
// Returns:
//   - [2]float32: the position
func (b Bubble) At(t, duration float32) [2]float32 {
	start := b.Timeout * duration
	if t <= start {
		return b.InitialPosition
	}
	p := easing.Progress(t, start, duration-start)
	x := b.InitialPosition[0] + b.FinalOffset[0]*p + b.PositionAmplitude*math32.Sin(p*2*math32.Pi)
	y := easing.Lerp(b.InitialPosition[1], b.InitialPosition[1]+b.FinalOffset[1], p)
	return [2]float32{x, y}
}
