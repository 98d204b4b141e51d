package behaviour

import "github.com/zztstep/engine/internal/sim"

// SpinningGun rotates its facing every step and occasionally fires along
// it: a star when param2's high bit is set, otherwise a bullet. The low
// seven bits of param2 set the firing rate (spec.md §4.2).
type SpinningGun struct {
	Default
	Turn func(sim.Direction) sim.Direction
}

func (g SpinningGun) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	dir := sim.DirectionFromOffset(status.Step)
	if dir == sim.DirIdle {
		dir = sim.DirNorth
	}
	newDir := g.Turn(dir)
	actions := []sim.Action{sim.SetStep{Index: index, Step: newDir.Offset()}}

	rate := int(status.Param2 &^ 0x80)
	if rate > 0 && s.RNG.Intn(rate+1) == 0 {
		pos := status.Location.Add(newDir.Offset())
		if !s.Behaviours.Get(s.Board.Grid.At(pos).Element).BlockedForBullets() {
			projectile := sim.ElementBullet
			if status.Param2&0x80 != 0 {
				projectile = sim.ElementStar
			}
			shot := sim.NewStatus(pos)
			shot.Step = newDir.Offset()
			shot.Cycle = 1
			shot.Param1 = 1
			actions = append(actions, sim.SetTile{At: pos, Tile: sim.Tile{Element: projectile, Colour: 0x0F}, Attach: shot})
		}
	}
	return actions
}

// Star is a short-lived projectile thrown by #throwstar; it travels and
// damages like a bullet.
type Star struct{ Bullet }

// Pusher shoves whatever sits in front of it, every cycle, in its fixed
// direction.
type Pusher struct{ Default }

func (Pusher) CanSquash() bool { return true }

func (Pusher) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	if status.Step.IsZero() {
		return nil
	}
	dest := status.Location.Add(status.Step)
	return []sim.Action{sim.MoveTile{From: status.Location, To: dest, CheckPush: true}}
}

// Passage teleports the player to the matching-colour passage that sorts
// last in bottom-right-first, row-major-upward scan order (spec.md §4.6).
type Passage struct{ Default }

func (Passage) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	if !byPlayer {
		return sim.PushResult{Blocked: true}
	}
	colour := s.Board.Grid.At(at).Colour & 0x0F
	dest, ok := findMatchingPassage(s, at, colour)
	if !ok {
		return sim.PushResult{Blocked: true}
	}
	player := s.Board.Statuses.Get(0)
	if player == nil {
		return sim.PushResult{Blocked: true}
	}
	return sim.PushResult{Blocked: false, Actions: []sim.Action{
		sim.MoveTile{From: player.Location, To: dest, CheckPush: false},
	}}
}

func findMatchingPassage(s *sim.Sim, except sim.Point, colour uint8) (sim.Point, bool) {
	for y := sim.BoardHeight; y >= 1; y-- {
		for x := sim.BoardWidth; x >= 1; x-- {
			p := sim.Point{X: x, Y: y}
			if p == except {
				continue
			}
			t := s.Board.Grid.At(p)
			if t.Element == sim.ElementPassage && t.Colour&0x0F == colour {
				return p, true
			}
		}
	}
	return sim.Point{}, false
}

// Transporter walks the player across an aligned opposing transporter by
// probing along the step axis it was placed to face.
type Transporter struct{ Default }

func (Transporter) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	if !byPlayer {
		return sim.PushResult{Blocked: true}
	}
	dir := sim.DirectionFromOffset(delta)
	if dir == sim.DirIdle {
		return sim.PushResult{Blocked: true}
	}
	cursor := at
	for i := 0; i < sim.GridWidth+sim.GridHeight; i++ {
		cursor = cursor.Add(dir.Offset())
		if !sim.InBounds(cursor.X, cursor.Y) {
			return sim.PushResult{Blocked: true}
		}
		t := s.Board.Grid.At(cursor)
		if t.Element == sim.ElementTransporter {
			landing := cursor.Add(dir.Offset())
			if s.Behaviours.Get(s.Board.Grid.At(landing).Element).Blocked(true) {
				return sim.PushResult{Blocked: true}
			}
			player := s.Board.Statuses.Get(0)
			if player == nil {
				return sim.PushResult{Blocked: true}
			}
			return sim.PushResult{Blocked: false, Actions: []sim.Action{
				sim.MoveTile{From: player.Location, To: landing, CheckPush: false},
			}}
		}
		if s.Behaviours.Get(t.Element).Blocked(true) {
			return sim.PushResult{Blocked: true}
		}
	}
	return sim.PushResult{Blocked: true}
}

// Duplicator copies the cell (and any status) behind it onto the cell in
// front of it every fifth cycle, driven by Param1's five-phase progress.
type Duplicator struct{ Default }

func (d Duplicator) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	if status.Param1 < 4 {
		return []sim.Action{sim.SetParam1{Index: index, Value: status.Param1 + 1}}
	}
	source := status.Location.Add(status.Step.Neg())
	target := status.Location.Add(status.Step)
	pr := s.Apply(sim.PushTile{At: target, Delta: status.Step, ByPlayer: false})
	if pr.Blocked {
		return []sim.Action{sim.SetParam1{Index: index, Value: 0}}
	}
	srcTile := s.Board.Grid.At(source)
	var copied *sim.StatusElement
	if srcIdx := s.StatusIndexAt(source); srcIdx >= 0 {
		cp := *s.Board.Statuses.Get(srcIdx)
		cp.Follower, cp.Leader = -1, -1
		copied = &cp
	}
	return []sim.Action{
		sim.SetParam1{Index: index, Value: 0},
		sim.SetTile{At: target, Tile: srcTile, Attach: copied},
	}
}

// Bomb is lit by a push (param1 set to 1) and then raises param1 by one
// each step; once param1 reaches 9 it clears its own tile. No blast is
// applied to the cells around it.
type Bomb struct{ Default }

func (Bomb) Destructible() bool  { return true }
func (Bomb) CanBeSquashed() bool { return true }

func (Bomb) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	idx := s.StatusIndexAt(at)
	if idx < 0 {
		return sim.PushResult{Blocked: true}
	}
	return sim.PushResult{Blocked: false, Actions: []sim.Action{sim.SetParam1{Index: idx, Value: 1}}}
}

func (Bomb) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	if status.Param1 == 0 {
		return nil
	}
	if status.Param1 >= 9 {
		return []sim.Action{sim.SetTile{At: status.Location, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}}}
	}
	return []sim.Action{sim.SetParam1{Index: index, Value: status.Param1 + 1}}
}
