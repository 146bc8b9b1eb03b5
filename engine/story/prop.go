package story

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/easing"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
	"github.com/Carmen-Shannon/oxy-story/engine/timeline"
)

const (
	// PropFallTime is the end of the fall window in seconds.
	PropFallTime float32 = 1.4

	// PropSquashTime is the end of the squash window in seconds.
	PropSquashTime float32 = 2.0

	// PropSquashEpsilon is added to the derived X/Z scale.
	PropSquashEpsilon float32 = 0.002
)

// Prop is a freestanding animated object. Root carries position and scale, Fluctuation carries the
// authored rotation and Mesh is the loaded asset.
type Prop struct {
	Root        node.Node
	Fluctuation node.Node
	Mesh        node.Node
	Params      config.PropParams

	clock *timeline.Clock
}

// NewProp wraps a loaded mesh in the root and fluctuation groups and puts it at its starting pose.
//
// Parameters:
//   - mesh: the loaded asset
//   - params: the prop params
//
// Returns:
//   - *Prop: the prop
func NewProp(mesh node.Node, params config.PropParams) *Prop {
	p := &Prop{
		Mesh:   mesh,
		Params: params,
		clock:  timeline.NewClock(timeline.WithMaxDelta(0)),
	}
	mesh.SetName(params.Name)

	p.Fluctuation = node.NewGroup(node.WithName("fluctuation"), node.WithChildren(mesh))
	if params.Rotation != nil {
		r := params.Rotation.Radians()
		p.Fluctuation.SetRotation(r.X, r.Y, r.Z)
	}

	p.Root = node.NewGroup(node.WithName(params.Name), node.WithChildren(p.Fluctuation))
	p.Root.SetShadows(params.ShadowFlags())
	if params.Scale != nil {
		p.Root.SetScale(params.Scale.X, params.Scale.Y, params.Scale.Z)
	}
	if params.Position != nil {
		p.Root.SetPosition(params.Position.X, params.Position.Y, params.Position.Z)
	}
	return p
}

// Advance animates the prop for the frame at now. The first call only starts the prop clock.
func (p *Prop) Advance(now time.Time) {
	frame, ok := p.clock.Tick(now)
	if !ok {
		return
	}
	p.AnimateAt(frame.Elapsed)
}

// AnimateAt poses the prop t seconds into its animation.
//
// Before PropFallTime the root falls linearly on Y while X and Z sit at their final values. From
// PropFallTime until PropSquashTime the Y scale eases to its final value and X/Z follow as
// 1/sqrt(y) plus PropSquashEpsilon. Later times leave the prop untouched.
//
// Parameters:
//   - t: seconds since the prop clock started
func (p *Prop) AnimateAt(t float32) {
	switch {
	case t < 0:
		return
	case t < PropFallTime:
		from, to := p.endpoints(p.Params.Position, p.Params.FinalPosition)
		y := easing.Lerp(from.Y, to.Y, t/PropFallTime)
		p.Root.SetPosition(to.X, y, to.Z)
	case t < PropSquashTime:
		from, to := p.endpoints(p.Params.Scale, p.Params.FinalScale)
		progress := (t - PropFallTime) / (PropSquashTime - PropFallTime)
		y := easing.Lerp(from.Y, to.Y, easing.InOutQuad(progress))
		xz := 1/math32.Sqrt(y) + PropSquashEpsilon
		p.Root.SetScale(xz, y, xz)
	}
}

// endpoints resolves optional start and final vectors; a missing final equals the start.
func (p *Prop) endpoints(start, final *common.Vec3) (common.Vec3, common.Vec3) {
	var from common.Vec3
	if start != nil {
		from = *start
	}
	to := from
	if final != nil {
		to = *final
	}
	return from, to
}
