package centipede

import (
	"math/rand"
	"testing"

	"github.com/zztstep/engine/internal/sim"
)

type stubBehaviours struct{}

func (stubBehaviours) Get(sim.Element) sim.Behaviour { return stubBehaviour{} }

type stubBehaviour struct{}

func (stubBehaviour) Step(sim.Event, *sim.StatusElement, int, *sim.Sim) []sim.Action { return nil }
func (stubBehaviour) Push(sim.Point, sim.Point, bool, *sim.Sim) sim.PushResult       { return sim.PushResult{} }
func (stubBehaviour) Damage(sim.Point, sim.DamageCause, *sim.Sim) ([]sim.Action, bool) {
	return nil, false
}
func (stubBehaviour) Blocked(bool) bool              { return false }
func (stubBehaviour) BlockedForBullets() bool        { return false }
func (stubBehaviour) Destructible() bool             { return false }
func (stubBehaviour) Conveyable() bool               { return false }
func (stubBehaviour) CanSquash() bool                { return false }
func (stubBehaviour) CanBeSquashed() bool            { return false }
func (stubBehaviour) Locked(*sim.StatusElement) bool { return false }

func newChainSim(t *testing.T, length int) (*sim.Sim, []int) {
	t.Helper()
	b := sim.NewBoard("test")
	w := &sim.World{Boards: []*sim.Board{b}}
	s := sim.NewSim(w, stubBehaviours{}, rand.New(rand.NewSource(7)))

	indices := make([]int, length)
	for i := 0; i < length; i++ {
		loc := sim.Point{X: 10 + i, Y: 10}
		st := sim.NewStatus(loc)
		st.Step = sim.Point{X: -1, Y: 0}
		elem := sim.ElementSegment
		if i == 0 {
			elem = sim.ElementHead
		}
		b.Grid.SetAt(loc, sim.Tile{Element: elem, Colour: 0x1F})
		idx := b.Statuses.Append(st)
		indices[i] = idx
	}
	for i := 0; i < length; i++ {
		st := b.Statuses.Get(indices[i])
		if i > 0 {
			st.Leader = indices[i-1]
		} else {
			st.Leader = -1
		}
		if i < length-1 {
			st.Follower = indices[i+1]
		} else {
			st.Follower = -1
		}
	}
	return s, indices
}

func TestHeadStepMovesEveryLinkOneCellPerStep(t *testing.T) {
	s, indices := newChainSim(t, 3)
	before := make([]sim.Point, len(indices))
	for i, idx := range indices {
		before[i] = s.Board.Statuses.Get(idx).Location
	}

	actions := HeadStep(s, indices[0])
	s.ApplyActions(actions)

	for i, idx := range indices {
		after := s.Board.Statuses.Get(idx).Location
		if after == before[i] {
			t.Fatalf("segment %d did not move", i)
		}
	}
	// The chain is still contiguous: each follower now occupies its
	// leader's previous cell.
	if s.Board.Statuses.Get(indices[1]).Location != before[0] {
		t.Errorf("segment 1 expected to occupy the old head position")
	}
	if s.Board.Statuses.Get(indices[2]).Location != before[1] {
		t.Errorf("segment 2 expected to occupy segment 1's old position")
	}
}

func TestReverseChainSwapsLeaderFollowerAndHeadElement(t *testing.T) {
	s, indices := newChainSim(t, 3)
	headLoc := s.Board.Statuses.Get(indices[0]).Location
	tailLoc := s.Board.Statuses.Get(indices[2]).Location

	actions := reverseChain(s, indices[0])
	s.ApplyActions(actions)

	if s.Board.Grid.At(tailLoc).Element != sim.ElementHead {
		t.Errorf("expected old tail to become the head element")
	}
	if s.Board.Grid.At(headLoc).Element != sim.ElementSegment {
		t.Errorf("expected old head to become a segment element")
	}
	newHead := s.Board.Statuses.Get(indices[2])
	if newHead.Follower != indices[1] || newHead.Leader != -1 {
		t.Errorf("expected new head leader/follower swapped, got leader=%d follower=%d", newHead.Leader, newHead.Follower)
	}
}

// blockedElementBehaviours blocks only sim.ElementSolid, leaving every other
// element (including the default empty tile) open.
type blockedElementBehaviours struct{}

func (blockedElementBehaviours) Get(e sim.Element) sim.Behaviour {
	if e == sim.ElementSolid {
		return blockedBehaviour{}
	}
	return stubBehaviour{}
}

type blockedBehaviour struct{ stubBehaviour }

func (blockedBehaviour) Blocked(bool) bool { return true }

func TestHeadStepRandomizesTieBreakWhenBothTurnsAreOpen(t *testing.T) {
	loc := sim.Point{X: 10, Y: 10}
	east := loc.Add(sim.DirEast.Offset())

	var sawNorth, sawSouth bool
	for seed := int64(0); seed < 20; seed++ {
		b := sim.NewBoard("test")
		w := &sim.World{Boards: []*sim.Board{b}}
		s := sim.NewSim(w, blockedElementBehaviours{}, rand.New(rand.NewSource(seed)))

		st := sim.NewStatus(loc)
		st.Step = sim.DirEast.Offset()
		st.Leader, st.Follower = -1, -1
		b.Grid.SetAt(loc, sim.Tile{Element: sim.ElementHead, Colour: 0x1F})
		b.Grid.SetAt(east, sim.Tile{Element: sim.ElementSolid, Colour: 0x07})
		idx := b.Statuses.Append(st)

		actions := HeadStep(s, idx)
		s.ApplyActions(actions)

		switch sim.DirectionFromOffset(s.Board.Statuses.Get(idx).Step) {
		case sim.DirNorth:
			sawNorth = true
		case sim.DirSouth:
			sawSouth = true
		}
	}

	if !sawNorth || !sawSouth {
		t.Fatalf("expected both clockwise and counter-clockwise turns to occur across seeds, got north=%v south=%v", sawNorth, sawSouth)
	}
}

func TestSegmentStepPromotesOrphanAfterLatch(t *testing.T) {
	s, indices := newChainSim(t, 1)
	st := s.Board.Statuses.Get(indices[0])
	st.Leader = -1

	actions := SegmentStep(s, indices[0])
	s.ApplyActions(actions)
	if st.Leader != -2 {
		t.Fatalf("expected leader latch to advance to -2, got %d", st.Leader)
	}

	actions = SegmentStep(s, indices[0])
	s.ApplyActions(actions)
	if s.Board.Grid.At(st.Location).Element != sim.ElementHead {
		t.Fatalf("expected orphaned segment to become a head")
	}
}
