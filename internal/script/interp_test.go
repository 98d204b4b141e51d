package script

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
func (stubBehaviour) Blocked(bool) bool                   { return false }
func (stubBehaviour) BlockedForBullets() bool             { return false }
func (stubBehaviour) Destructible() bool                  { return false }
func (stubBehaviour) Conveyable() bool                    { return false }
func (stubBehaviour) CanSquash() bool                     { return false }
func (stubBehaviour) CanBeSquashed() bool                 { return false }
func (stubBehaviour) Locked(*sim.StatusElement) bool      { return false }

// wallBehaviours makes sim.ElementNormal a blocking wall and leaves every
// other element open, for tests that need a move to be refused.
type wallBehaviours struct{}

func (wallBehaviours) Get(e sim.Element) sim.Behaviour {
	if e == sim.ElementNormal {
		return wallBehaviour{}
	}
	return stubBehaviour{}
}

type wallBehaviour struct{ stubBehaviour }

func (wallBehaviour) Push(sim.Point, sim.Point, bool, *sim.Sim) sim.PushResult {
	return sim.PushResult{Blocked: true}
}
func (wallBehaviour) Blocked(bool) bool { return true }

func newTestSim(b *sim.Board) *sim.Sim {
	w := &sim.World{Boards: []*sim.Board{b}}
	return sim.NewSim(w, stubBehaviours{}, rand.New(rand.NewSource(1)))
}

func TestRunStepSetsFlagAndHalts(t *testing.T) {
	Wire()
	defer func() { sim.LabelOperationApplier = nil }()

	b := sim.NewBoard("test")
	obj := sim.NewStatus(sim.Point{X: 3, Y: 3})
	obj.Code = sim.OwnedCode([]byte("@Thing\r#set TRIGGERED\r#end\r"))
	obj.Cursor = 0
	idx := b.Statuses.Append(obj)
	s := newTestSim(b)

	r := New()
	actions := r.RunStep(s, idx, sim.Event{}, "", false)
	s.ApplyActions(actions)

	if s.World.Header.LastMatchingFlag("TRIGGERED") < 0 {
		t.Fatal("expected #set to raise the TRIGGERED flag")
	}
	if obj.Cursor != -1 {
		t.Fatalf("expected #end to halt the cursor, got %d", obj.Cursor)
	}
}

func TestRunStepMoveBlockedRetriesNextCall(t *testing.T) {
	Wire()
	defer func() { sim.LabelOperationApplier = nil }()

	b := sim.NewBoard("test")
	obj := sim.NewStatus(sim.Point{X: 3, Y: 3})
	obj.Code = sim.OwnedCode([]byte("/n\r#end\r"))
	obj.Cursor = 0
	idx := b.Statuses.Append(obj)
	b.Grid.SetAt(sim.Point{X: 3, Y: 2}, sim.Tile{Element: sim.ElementNormal})
	s := newTestSim(b)
	s.Behaviours = wallBehaviours{}

	r := New()
	r.RunStep(s, idx, sim.Event{}, "", false)

	if obj.Cursor != 0 {
		t.Fatalf("expected cursor to roll back to retry the blocked move, got %d", obj.Cursor)
	}
}

func TestRunStepSendJumpsToLabel(t *testing.T) {
	Wire()
	defer func() { sim.LabelOperationApplier = nil }()

	b := sim.NewBoard("test")
	obj := sim.NewStatus(sim.Point{X: 3, Y: 3})
	obj.Code = sim.OwnedCode([]byte("@Thing\r#send myself:hit\r#end\r:hit\r#set HIT\r#end\r"))
	obj.Cursor = 0
	idx := b.Statuses.Append(obj)
	s := newTestSim(b)

	r := New()
	actions := r.RunStep(s, idx, sim.Event{}, "", false)
	s.ApplyActions(actions)

	if s.World.Header.LastMatchingFlag("HIT") < 0 {
		t.Fatal("expected #send myself:hit to jump into the hit label and run #set HIT")
	}
}

func TestRunStepBareRestoreDefaultsToMyself(t *testing.T) {
	Wire()
	defer func() { sim.LabelOperationApplier = nil }()

	b := sim.NewBoard("test")
	obj := sim.NewStatus(sim.Point{X: 3, Y: 3})
	obj.Code = sim.OwnedCode([]byte("@Thing\r'lbl\r#restore lbl\r#end\r"))
	obj.Cursor = 0
	idx := b.Statuses.Append(obj)
	s := newTestSim(b)

	r := New()
	r.RunStep(s, idx, sim.Event{}, "", false)

	got := string(obj.Code.Code)
	want := "@Thing\r:lbl\r#restore lbl\r#end\r"
	if got != want {
		t.Fatalf("expected bare #restore to restore its own label, got %q want %q", got, want)
	}
}
