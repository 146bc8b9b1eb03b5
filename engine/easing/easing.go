// Package easing holds the pure interpolation helpers used by the story timeline.
// Every function maps a normalized progress value to an eased value and has no side effects.
package easing

import (
	"github.com/chewxy/math32"
)

// Func is an easing curve mapping linear progress in [0, 1] to eased progress.
type Func func(p float32) float32

// Linear returns p unchanged.
func Linear(p float32) float32 {
	return p
}

// InOutQuad accelerates over the first half and decelerates over the second half.
//
// Parameters:
//   - p: linear progress in [0, 1]
//
// Returns:
//   - float32: eased progress in [0, 1]
func InOutQuad(p float32) float32 {
	if p < 0.5 {
		return 2 * p * p
	}
	return -1 + (4-2*p)*p
}

// InOutCubic is the cubic variant of InOutQuad.
func InOutCubic(p float32) float32 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math32.Pow(-2*p+2, 3)/2
}

// OutExpo decelerates exponentially toward 1.
func OutExpo(p float32) float32 {
	if p >= 1 {
		return 1
	}
	return 1 - math32.Pow(2, -10*p)
}

// Lerp interpolates linearly between from and to.
//
// Parameters:
//   - from: the value at progress 0
//   - to: the value at progress 1
//   - p: the progress (not clamped)
//
// Returns:
//   - float32: the interpolated value
func Lerp(from, to, p float32) float32 {
	return from + (to-from)*p
}

// Progress returns how far elapsed is through the window [start, start+duration), clamped to [0, 1].
// A non-positive duration yields 1 once elapsed reaches start.
//
// Parameters:
//   - elapsed: the current time in seconds
//   - start: the window start in seconds
//   - duration: the window length in seconds
//
// Returns:
//   - float32: progress in [0, 1]
func Progress(elapsed, start, duration float32) float32 {
	if elapsed < start {
		return 0
	}
	if duration <= 0 {
		return 1
	}
	p := (elapsed - start) / duration
	if p > 1 {
		return 1
	}
	return p
}

// Tween eases between from and to over the window [start, start+duration).
//
// Parameters:
//   - from, to: the endpoint values
//   - elapsed: the current time in seconds
//   - start: the window start in seconds
//   - duration: the window length in seconds
//   - ease: the easing curve; nil means Linear
//
// Returns:
//   - float32: the eased value
func Tween(from, to, elapsed, start, duration float32, ease Func) float32 {
	if ease == nil {
		ease = Linear
	}
	return Lerp(from, to, ease(Progress(elapsed, start, duration)))
}

// Approach moves current toward target by an exponential step of rate per second.
// The step factor is clamped so a large dt never overshoots.
//
// Parameters:
//   - current: the current value
//   - target: the value being approached
//   - rate: convergence rate per second
//   - dt: the frame delta in seconds
//
// Returns:
//   - float32: the new value
func Approach(current, target, rate, dt float32) float32 {
	k := 1 - math32.Exp(-rate*dt)
	if k > 1 {
		k = 1
	}
	if k < 0 {
		k = 0
	}
	return current + (target-current)*k
}
