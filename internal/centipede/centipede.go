// Package centipede implements the head/segment chain mechanics of
// spec.md §4.5: walking, intelligence/deviance, ricochet-style turning and
// full-chain reversal. Grounded on original_source/ruzzt_engine's
// zzt_behaviours/centipede.rs.
package centipede

import "github.com/zztstep/engine/internal/sim"

var cardinals = []sim.Direction{sim.DirNorth, sim.DirSouth, sim.DirEast, sim.DirWest}

func isBlocked(s *sim.Sim, loc sim.Point, dir sim.Direction) bool {
	dest := loc.Add(dir.Offset())
	return s.Behaviours.Get(s.Board.Grid.At(dest).Element).Blocked(false)
}

func randomNonBlocked(s *sim.Sim, loc sim.Point) sim.Direction {
	choices := make([]sim.Direction, 0, 4)
	for _, d := range cardinals {
		if !isBlocked(s, loc, d) {
			choices = append(choices, d)
		}
	}
	if len(choices) == 0 {
		return sim.DirIdle
	}
	return choices[s.RNG.Intn(len(choices))]
}

// collectChain walks Follower links from the head, returning status indices
// head-first.
func collectChain(s *sim.Sim, headIndex int) []int {
	chain := []int{headIndex}
	cur := s.Board.Statuses.Get(headIndex)
	for cur != nil && cur.Follower >= 0 {
		chain = append(chain, cur.Follower)
		cur = s.Board.Statuses.Get(cur.Follower)
	}
	return chain
}

// HeadStep runs the walking logic for a centipede head (spec.md §4.5 Head
// step).
func HeadStep(s *sim.Sim, index int) []sim.Action {
	status := s.Board.Statuses.Get(index)
	if status == nil {
		return nil
	}

	dir := sim.DirectionFromOffset(status.Step)
	if dir == sim.DirIdle {
		dir = randomNonBlocked(s, status.Location)
		if dir == sim.DirIdle {
			return nil
		}
	}

	dir = applyIntelligenceAndDeviance(s, status, dir)

	if isBlocked(s, status.Location, dir) {
		cw, ccw := dir.Clockwise(), dir.CounterClockwise()
		cwOpen, ccwOpen := !isBlocked(s, status.Location, cw), !isBlocked(s, status.Location, ccw)
		switch {
		case cwOpen && ccwOpen:
			if s.RNG.Intn(2) == 0 {
				dir = cw
			} else {
				dir = ccw
			}
		case cwOpen:
			dir = cw
		case ccwOpen:
			dir = ccw
		default:
			return reverseChain(s, index)
		}
	}

	absorbAdjacentSegments(s, index)
	return moveChain(s, index, dir)
}

func applyIntelligenceAndDeviance(s *sim.Sim, status *sim.StatusElement, dir sim.Direction) sim.Direction {
	player := s.Board.Statuses.Get(0)
	if player != nil {
		if player.Location.X == status.Location.X && s.RNG.Intn(9) < int(status.Param1) {
			if player.Location.Y < status.Location.Y {
				dir = sim.DirNorth
			} else if player.Location.Y > status.Location.Y {
				dir = sim.DirSouth
			}
		} else if player.Location.Y == status.Location.Y && s.RNG.Intn(9) < int(status.Param1) {
			if player.Location.X < status.Location.X {
				dir = sim.DirWest
			} else if player.Location.X > status.Location.X {
				dir = sim.DirEast
			}
		}
	}
	if s.RNG.Intn(40) < int(status.Param2) {
		if d := randomNonBlocked(s, status.Location); d != sim.DirIdle {
			dir = d
		}
	}
	return dir
}

// absorbAdjacentSegments picks up unlinked segment tiles adjacent to the
// chain's tail, probing along the tail's current axis first and then the
// perpendicular axis (spec.md §4.5: "how a worm picks up nearby segments as
// it turns").
func absorbAdjacentSegments(s *sim.Sim, headIndex int) {
	chain := collectChain(s, headIndex)
	tailIdx := chain[len(chain)-1]
	tail := s.Board.Statuses.Get(tailIdx)
	if tail == nil {
		return
	}
	axis := cardinals
	if !tail.Step.IsZero() {
		primary := sim.DirectionFromOffset(tail.Step).Opposite()
		axis = append([]sim.Direction{primary}, cardinals...)
	}
	for _, d := range axis {
		cand := tail.Location.Add(d.Offset())
		idx := s.StatusIndexAt(cand)
		if idx < 0 || idx == tailIdx {
			continue
		}
		st := s.Board.Statuses.Get(idx)
		el := s.Board.Grid.At(cand).Element
		if (el == sim.ElementSegment || el == sim.ElementHead) && st.Leader == -2 {
			s.Apply(sim.SetLeader{Index: idx, Leader: tailIdx})
			s.Apply(sim.SetFollower{Index: tailIdx, Follower: idx})
			if el == sim.ElementHead {
				s.Apply(sim.SetElementAndColour{At: cand, Element: sim.ElementSegment, Colour: s.Board.Grid.At(cand).Colour})
			}
			return
		}
	}
}

// moveChain installs the movement continuation: move the head, then for
// each tail segment a set-step followed by a move into the prior segment's
// position (spec.md §4.5).
func moveChain(s *sim.Sim, headIndex int, dir sim.Direction) []sim.Action {
	chain := collectChain(s, headIndex)
	statuses := make([]*sim.StatusElement, len(chain))
	for i, idx := range chain {
		statuses[i] = s.Board.Statuses.Get(idx)
	}

	actions := []sim.Action{
		sim.SetStep{Index: headIndex, Step: dir.Offset()},
	}
	prevPos := statuses[0].Location
	newHeadPos := prevPos.Add(dir.Offset())
	actions = append(actions, sim.MoveTile{From: prevPos, To: newHeadPos, CheckPush: false})

	for i := 1; i < len(chain); i++ {
		segPos := statuses[i].Location
		stepDir := sim.DirectionFromOffset(prevPos.Add(segPos.Neg()))
		actions = append(actions,
			sim.SetStep{Index: chain[i], Step: stepDir.Offset()},
			sim.MoveTile{From: segPos, To: prevPos, CheckPush: false},
		)
		prevPos = segPos
	}
	return actions
}

// reverseChain swaps leader/follower on every status in the chain, negates
// each intermediate step, promotes the tail to head, and picks the new
// head's step (spec.md §4.5 Reversal).
func reverseChain(s *sim.Sim, headIndex int) []sim.Action {
	chain := collectChain(s, headIndex)
	var actions []sim.Action

	for i, idx := range chain {
		st := s.Board.Statuses.Get(idx)
		oldLeader, oldFollower := st.Leader, st.Follower
		actions = append(actions,
			sim.SetLeader{Index: idx, Leader: oldFollower},
			sim.SetFollower{Index: idx, Follower: oldLeader},
		)
		if i != 0 && i != len(chain)-1 {
			actions = append(actions, sim.SetStep{Index: idx, Step: st.Step.Neg()})
		}
	}

	oldHeadIdx := chain[0]
	newHeadIdx := chain[len(chain)-1]
	oldHeadLoc := s.Board.Statuses.Get(oldHeadIdx).Location
	newHeadLoc := s.Board.Statuses.Get(newHeadIdx).Location
	actions = append(actions,
		sim.SetElementAndColour{At: newHeadLoc, Element: sim.ElementHead, Colour: s.Board.Grid.At(newHeadLoc).Colour},
		sim.SetElementAndColour{At: oldHeadLoc, Element: sim.ElementSegment, Colour: s.Board.Grid.At(oldHeadLoc).Colour},
	)

	newHeadStatus := s.Board.Statuses.Get(newHeadIdx)
	dir := sim.DirectionFromOffset(newHeadStatus.Step.Neg())
	if dir == sim.DirIdle || isBlocked(s, newHeadLoc, dir) {
		if dir == sim.DirEast || dir == sim.DirWest {
			dir = sim.DirSouth
		} else {
			dir = sim.DirWest
		}
		if isBlocked(s, newHeadLoc, dir) {
			dir = dir.Opposite()
		}
	}
	actions = append(actions, sim.SetStep{Index: newHeadIdx, Step: dir.Offset()})
	return actions
}

// SegmentStep implements the leader=-1 -> -2 "pending promotion" latch and
// the -2 -> head upgrade a segment performs once it finds itself unlinked
// for a full tick (spec.md §4.5).
func SegmentStep(s *sim.Sim, index int) []sim.Action {
	status := s.Board.Statuses.Get(index)
	if status == nil {
		return nil
	}
	switch status.Leader {
	case -1:
		return []sim.Action{sim.SetLeader{Index: index, Leader: -2}}
	case -2:
		return []sim.Action{sim.SetElementAndColour{At: status.Location, Element: sim.ElementHead, Colour: s.Board.Grid.At(status.Location).Colour}}
	default:
		return nil
	}
}
