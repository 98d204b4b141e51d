package sim

import (
	"math/rand"
	"testing"
)

func newTestSim() *Sim {
	b := NewBoard("test")
	w := &World{Boards: []*Board{b}}
	return NewSim(w, stubBehaviours{}, rand.New(rand.NewSource(1)))
}

// stubBehaviours resolves every element to the zero-value default, which is
// enough for reducer-level tests that never invoke Push/Damage/Step.
type stubBehaviours struct{}

func (stubBehaviours) Get(Element) Behaviour { return stubBehaviour{} }

type stubBehaviour struct{}

func (stubBehaviour) Step(Event, *StatusElement, int, *Sim) []Action { return nil }
func (stubBehaviour) Push(Point, Point, bool, *Sim) PushResult       { return PushResult{} }
func (stubBehaviour) Damage(Point, DamageCause, *Sim) ([]Action, bool) {
	return nil, false
}
func (stubBehaviour) Blocked(bool) bool        { return false }
func (stubBehaviour) BlockedForBullets() bool  { return false }
func (stubBehaviour) Destructible() bool       { return false }
func (stubBehaviour) Conveyable() bool         { return false }
func (stubBehaviour) CanSquash() bool          { return false }
func (stubBehaviour) CanBeSquashed() bool      { return false }
func (stubBehaviour) Locked(*StatusElement) bool { return false }

func TestMoveTileRelocatesStatusAndSwapsUnder(t *testing.T) {
	s := newTestSim()
	from := Point{X: 1, Y: 1}
	to := Point{X: 2, Y: 1}
	s.Board.Grid.SetAt(to, Tile{Element: ElementGem, Colour: 0x0E})

	s.Apply(MoveTile{From: from, To: to})

	if s.Board.Grid.At(to).Element != ElementPlayer {
		t.Fatalf("expected player at destination, got %v", s.Board.Grid.At(to).Element)
	}
	if s.Board.Grid.At(from).Element != ElementEmpty {
		t.Fatalf("expected the player's previous under-tile (empty) at origin, got %v", s.Board.Grid.At(from).Element)
	}
	st := s.Board.Statuses.Get(0)
	if st.UnderElement != ElementGem {
		t.Fatalf("expected the gem to be stored under the moved status, got %v", st.UnderElement)
	}
	if st.Location != to {
		t.Fatalf("status location not updated: got %v", st.Location)
	}
}

func TestModifyPlayerItemUnderflowClampsAtZero(t *testing.T) {
	s := newTestSim()
	s.World.Header.Ammo = 2
	report := s.Apply(ModifyPlayerItem{Item: ItemAmmo, Delta: -5})
	if !report.ItemUnderflow {
		t.Fatal("expected underflow to be reported")
	}
	if s.World.Header.Ammo != 0 {
		t.Fatalf("expected ammo clamped to 0, got %d", s.World.Header.Ammo)
	}
}

func TestSetFlagIdempotentAndClearRestoresSlot(t *testing.T) {
	s := newTestSim()
	s.Apply(SetFlag{Name: "DOOR"})
	s.Apply(SetFlag{Name: "DOOR"})
	used := 0
	for _, f := range s.World.Header.Flags {
		if f == "DOOR" {
			used++
		}
	}
	if used != 1 {
		t.Fatalf("expected #set to be idempotent, found %d slots", used)
	}

	s.Apply(ClearFlag{Name: "DOOR"})
	s.Apply(SetFlag{Name: "DOOR"})
	used = 0
	for _, f := range s.World.Header.Flags {
		if f == "DOOR" {
			used++
		}
	}
	if used != 1 {
		t.Fatalf("expected exactly one DOOR slot after clear+set, found %d", used)
	}
}

func TestSetTileRemovesExistingStatusAndReportsIndex(t *testing.T) {
	s := newTestSim()
	extra := NewStatus(Point{X: 5, Y: 5})
	idx := s.Board.Statuses.Append(extra)
	s.Board.Grid.SetAt(extra.Location, Tile{Element: ElementBullet})

	report := s.Apply(SetTile{At: extra.Location, Tile: Tile{Element: ElementEmpty}})
	if report.MinRemovedIndex != idx {
		t.Fatalf("expected removed index %d, got %d", idx, report.MinRemovedIndex)
	}
}

func TestApplyLabelBroadcastGatesByReceiver(t *testing.T) {
	s := newTestSim()
	var got []int
	LabelOperationApplier = func(sim *Sim, target int, op LabelOperation) ActionReport {
		got = append(got, target)
		return ActionReport{MinRemovedIndex: -1}
	}
	defer func() { LabelOperationApplier = nil }()

	obj := NewStatus(Point{X: 3, Y: 3})
	obj.Code = OwnedCode([]byte("@Guard\r#end\r"))
	objIdx := s.Board.Statuses.Append(obj)

	other := NewStatus(Point{X: 4, Y: 4})
	other.Code = OwnedCode([]byte("@Other\r#end\r"))
	s.Board.Statuses.Append(other)

	s.Apply(OthersApplyLabelOperation{SourceIndex: 0, Receiver: "Guard", Op: LabelOperation{Kind: LabelJump, Label: "hit"}})

	if len(got) != 1 || got[0] != objIdx {
		t.Fatalf("expected broadcast to reach only the named object, got %v", got)
	}
}
