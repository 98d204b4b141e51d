package behaviour

import "github.com/zztstep/engine/internal/sim"

type CreatureKind int

const (
	CreatureBear CreatureKind = iota
	CreatureLion
	CreatureTiger
	CreatureShark
	CreatureRuffian
)

// Creature is the small randomised policy shared by bear/lion/tiger/shark/
// ruffian (spec.md §4.2 Creatures): seek the player with probability
// param1/9 on each aligned axis, else walk a random cardinal; touching the
// player deals damage instead of moving onto it.
type Creature struct {
	Default
	Kind CreatureKind
}

func (Creature) Destructible() bool    { return true }
func (Creature) CanBeSquashed() bool   { return true }
func (Creature) Damage(at sim.Point, cause sim.DamageCause, s *sim.Sim) ([]sim.Action, bool) {
	return []sim.Action{sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}}}, true
}

func (c Creature) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	player := s.Board.Statuses.Get(0)
	dir := c.chooseDirection(status, player, s)
	if dir == sim.DirIdle {
		return nil
	}
	dest := status.Location.Add(dir.Offset())

	if player != nil && dest == player.Location {
		dmgActions, _ := Player{}.Damage(dest, sim.DamageCause{Kind: sim.DamageTouch}, s)
		actions := []sim.Action{sim.SetTile{At: status.Location, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}}}
		return append(actions, dmgActions...)
	}

	if s.Behaviours.Get(s.Board.Grid.At(dest).Element).Blocked(false) {
		if c.Kind == CreatureTiger && status.Param2&0x80 != 0 {
			return fireStraight(status, index, s, dir)
		}
		return nil
	}
	return []sim.Action{sim.MoveTile{From: status.Location, To: dest, CheckPush: false}}
}

func (c Creature) chooseDirection(status *sim.StatusElement, player *sim.StatusElement, s *sim.Sim) sim.Direction {
	cardinals := []sim.Direction{sim.DirNorth, sim.DirSouth, sim.DirEast, sim.DirWest}
	nonBlocked := make([]sim.Direction, 0, 4)
	for _, d := range cardinals {
		if !s.Behaviours.Get(s.Board.Grid.At(status.Location.Add(d.Offset())).Element).Blocked(false) {
			nonBlocked = append(nonBlocked, d)
		}
	}
	if len(nonBlocked) == 0 {
		return sim.DirIdle
	}
	if player != nil && s.RNG.Intn(9) < int(status.Param1) {
		if player.Location.X != status.Location.X && s.RNG.Intn(2) == 0 {
			if player.Location.X > status.Location.X {
				return sim.DirEast
			}
			return sim.DirWest
		}
		if player.Location.Y != status.Location.Y {
			if player.Location.Y > status.Location.Y {
				return sim.DirSouth
			}
			return sim.DirNorth
		}
	}
	return nonBlocked[s.RNG.Intn(len(nonBlocked))]
}

func fireStraight(status *sim.StatusElement, index int, s *sim.Sim, dir sim.Direction) []sim.Action {
	pos := status.Location.Add(dir.Offset())
	if s.Behaviours.Get(s.Board.Grid.At(pos).Element).BlockedForBullets() {
		return nil
	}
	bullet := sim.NewStatus(pos)
	bullet.Step = dir.Offset()
	bullet.Cycle = 1
	bullet.Param1 = 1 // monster-fired
	return []sim.Action{sim.SetTile{At: pos, Tile: sim.Tile{Element: sim.ElementBullet, Colour: 0x0F}, Attach: bullet}}
}

// Slime replicates into non-blocked neighbours on a counter and leaves a
// breakable behind when it does (spec.md §4.2 Creatures).
type Slime struct{ Default }

func (Slime) Destructible() bool  { return true }
func (Slime) CanBeSquashed() bool { return true }
func (Slime) Damage(at sim.Point, cause sim.DamageCause, s *sim.Sim) ([]sim.Action, bool) {
	return []sim.Action{sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementBreakable, Colour: 0x0F}}}, true
}

func (Slime) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	if status.Param2 < 4 {
		return []sim.Action{sim.SetParam2{Index: index, Value: status.Param2 + 1}}
	}
	cardinals := []sim.Direction{sim.DirNorth, sim.DirSouth, sim.DirEast, sim.DirWest}
	var actions []sim.Action
	spawned := 0
	for _, d := range cardinals {
		if spawned >= 4 {
			break
		}
		dest := status.Location.Add(d.Offset())
		if s.Behaviours.Get(s.Board.Grid.At(dest).Element).Blocked(false) {
			continue
		}
		child := sim.NewStatus(dest)
		child.Param1 = status.Param1
		child.Cycle = status.Cycle
		actions = append(actions, sim.SetTile{At: dest, Tile: sim.Tile{Element: sim.ElementSlime, Colour: 0x0F}, Attach: child})
		spawned++
	}
	actions = append(actions, sim.SetParam2{Index: index, Value: 0})
	actions = append(actions, sim.SetTile{At: status.Location, Tile: sim.Tile{Element: sim.ElementBreakable, Colour: 0x0F}})
	return actions
}
