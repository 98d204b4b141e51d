package behaviour

import (
	"github.com/zztstep/engine/internal/centipede"
	"github.com/zztstep/engine/internal/sim"
)

// Head and Segment delegate their walking/linking logic to package
// centipede (spec.md §4.5); only the head runs the walking logic, segments
// merely watch for the leader=-1 promotion latch.
type Head struct{ Default }

func (Head) Destructible() bool  { return true }
func (Head) CanBeSquashed() bool { return true }
func (Head) Damage(at sim.Point, cause sim.DamageCause, s *sim.Sim) ([]sim.Action, bool) {
	return []sim.Action{sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}}}, true
}
func (Head) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	return centipede.HeadStep(s, index)
}

type Segment struct{ Default }

func (Segment) Destructible() bool  { return true }
func (Segment) CanBeSquashed() bool { return true }
func (Segment) Damage(at sim.Point, cause sim.DamageCause, s *sim.Sim) ([]sim.Action, bool) {
	return []sim.Action{sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}}}, true
}
func (Segment) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	return centipede.SegmentStep(s, index)
}
