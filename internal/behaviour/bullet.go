package behaviour

import "github.com/zztstep/engine/internal/sim"

// Bullet moves one cell per step, ricocheting off Ricochet tiles and
// damaging whatever it cannot pass through (spec.md §4.2 Bullet).
type Bullet struct{ Default }

func (Bullet) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	dir := sim.DirectionFromOffset(status.Step)

	forward := status.Location.Add(status.Step)
	if s.Board.Grid.At(forward).Element == sim.ElementRicochet {
		status.Step = status.Step.Neg()
		return []sim.Action{sim.SetStep{Index: index, Step: status.Step}}
	}

	if s.Behaviours.Get(s.Board.Grid.At(forward).Element).BlockedForBullets() {
		cw := dir.Clockwise().Offset()
		ccw := dir.CounterClockwise().Offset()
		switch {
		case s.Board.Grid.At(status.Location.Add(cw)).Element == sim.ElementRicochet:
			status.Step = cw
			return []sim.Action{sim.SetStep{Index: index, Step: cw}}
		case s.Board.Grid.At(status.Location.Add(ccw)).Element == sim.ElementRicochet:
			status.Step = ccw
			return []sim.Action{sim.SetStep{Index: index, Step: ccw}}
		}
	}

	forward = status.Location.Add(status.Step)
	forwardElement := s.Board.Grid.At(forward).Element
	destBeh := s.Behaviours.Get(forwardElement)
	if destBeh.BlockedForBullets() {
		cause := sim.DamageCause{Kind: sim.DamageShot, ByPlayer: status.Param1 == 0}
		dmgActions, _ := destBeh.Damage(forward, cause, s)
		actions := append([]sim.Action{}, dmgActions...)
		actions = append(actions,
			sim.SetTile{At: status.Location, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}},
			sim.ReprocessSameStatusIndexOnRemoval{},
		)
		return actions
	}

	colour := uint8(0x00 | 0x0F)
	if forwardElement == sim.ElementWater {
		colour = 0x70 | 0x0F
	}
	return []sim.Action{
		sim.SetColour{At: status.Location, Colour: colour},
		sim.MoveTile{From: status.Location, To: forward, CheckPush: false},
	}
}
