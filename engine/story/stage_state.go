package story

import (
	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/rig"
)

// IntroDepth is the rig depth of the intro.
const IntroDepth float32 = 100

// StageState returns the rig pose for a scene index. The intro and the first chapter share a horizon
// angle; every later chapter turns by one more step.
//
// Parameters:
//   - index: the scene index, 0 for the intro
//   - cfg: the rig config (angles in degrees)
//
// Returns:
//   - rig.State: the pose
func StageState(index int, cfg config.Rig) rig.State {
	depth := cfg.DeltaDepth
	if index == 0 {
		depth = IntroDepth
	}
	return rig.State{
		Depth:        depth,
		DollyLength:  cfg.DollyLength,
		PolePosition: cfg.Radius,
		HorizonAngle: float32(max(index-1, 0)) * common.DegToRad(cfg.DeltaHorizonAngle),
	}
}
