package behaviour

import "github.com/zztstep/engine/internal/sim"

// Water blocks movement but not bullets (spec.md §4.2 Static terrain).
type Water struct{ Default }

func (Water) BlockedForBullets() bool { return false }
func (Water) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	return sim.PushResult{
		Blocked: true,
		Actions: []sim.Action{sim.SendBoardMessage{Message: sim.BoardMessage{
			Kind: sim.MsgShowOneTimeNotification, Notify: sim.NotifyBlockedByWater,
		}}},
	}
}

// Forest clears on player push, leaving an empty cell behind it.
type Forest struct{ Default }

func (Forest) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	if !byPlayer {
		return sim.PushResult{Blocked: true}
	}
	return sim.PushResult{
		Blocked: false,
		Actions: []sim.Action{
			sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}},
			sim.SendBoardMessage{Message: sim.BoardMessage{
				Kind: sim.MsgShowOneTimeNotification, Notify: sim.NotifyForestCleared,
			}},
		},
	}
}

// Breakable is destructible (shot/bombed clears it) but otherwise a wall.
type Breakable struct{ Default }

func (Breakable) Destructible() bool { return true }
func (Breakable) Damage(at sim.Point, cause sim.DamageCause, s *sim.Sim) ([]sim.Action, bool) {
	return []sim.Action{sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}}}, true
}

// Boulder is a pushable rock; Axis constrains sliders to a single axis
// (DirIdle means pushable along any cardinal, matching a plain boulder).
// Pushing recurses into the next cell so a chain of boulders shifts as one
// (spec.md §8 "Pusher chain" scenario).
type Boulder struct {
	Default
	Axis sim.Direction
}

func (b Boulder) Conveyable() bool     { return true }
func (b Boulder) CanBeSquashed() bool  { return true }
func (b Boulder) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	if b.Axis != sim.DirIdle {
		axisOffset := b.Axis.Offset()
		if axisOffset.X == 0 {
			if delta.Y == 0 {
				return sim.PushResult{Blocked: true}
			}
		} else if delta.X == 0 {
			return sim.PushResult{Blocked: true}
		}
	}
	further := at.Add(delta)
	pr := s.Apply(sim.PushTile{At: further, Delta: delta, ByPlayer: byPlayer})
	if pr.Blocked {
		return sim.PushResult{Blocked: true}
	}
	return sim.PushResult{Blocked: false, Actions: []sim.Action{
		sim.MoveTile{From: at, To: further, CheckPush: false},
	}}
}

// Invisible looks empty until touched, at which point it reveals itself as
// an ordinary wall and blocks.
type Invisible struct{ Default }

func (Invisible) Blocked(bool) bool { return false }
func (Invisible) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	return sim.PushResult{
		Blocked: true,
		Actions: []sim.Action{sim.SetElementAndColour{At: at, Element: sim.ElementNormal, Colour: 0x0F}},
	}
}

// Ricochet is inert terrain; bullets special-case it directly (spec.md §4.2
// Bullet) rather than via the blocking predicates.
type Ricochet struct{ Default }

func (Ricochet) BlockedForBullets() bool { return false }

// BlinkWall has only the default behaviour: it blocks, has no step of its
// own and fires no ray. The wall segment itself never moves.
type BlinkWall struct{ Default }

// BlinkRay is the solid segment of a blink-wall ray. It has only the
// default blocking behaviour; nothing in the engine creates or clears it.
type BlinkRay struct{ Default }
