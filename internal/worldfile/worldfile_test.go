package worldfile

import (
	"bytes"
	"testing"

	"github.com/zztstep/engine/internal/sim"
)

func sampleWorld() *sim.World {
	b := sim.NewBoard("Town Square")
	b.Meta.Message = "Welcome, traveller."
	b.Meta.IsDark = true
	b.Meta.ExitNorth = 2
	b.Meta.TimeLimitSecs = 120
	b.Grid.SetAt(sim.Point{X: 10, Y: 10}, sim.Tile{Element: sim.ElementSolid, Colour: 0x1E})
	b.Grid.SetAt(sim.Point{X: 11, Y: 10}, sim.Tile{Element: sim.ElementSolid, Colour: 0x1E})

	bullet := sim.NewStatus(sim.Point{X: 5, Y: 5})
	bullet.Cycle = 1
	bullet.Code = sim.OwnedCode([]byte("@Bullet\r#go n\r"))
	b.Statuses.Append(bullet)

	shared := sim.NewStatus(sim.Point{X: 6, Y: 6})
	shared.Code = sim.RefCode(1) // references the bullet's owned code
	b.Statuses.Append(shared)

	w := &sim.World{
		Header: sim.WorldHeader{
			Title:        "Test World",
			Health:       100,
			Ammo:         5,
			CurrentBoard: 0,
		},
		Boards: []*sim.Board{b},
	}
	w.Header.Flags[0] = "DOOR1"
	w.Header.Keys[2] = true
	return w
}

func TestWorldRoundTrip(t *testing.T) {
	w := sampleWorld()
	var buf bytes.Buffer
	if err := WriteWorld(&buf, w); err != nil {
		t.Fatalf("WriteWorld: %v", err)
	}

	got, err := ReadWorld(&buf)
	if err != nil {
		t.Fatalf("ReadWorld: %v", err)
	}

	if got.Header.Title != w.Header.Title {
		t.Errorf("title: got %q want %q", got.Header.Title, w.Header.Title)
	}
	if got.Header.Health != w.Header.Health || got.Header.Ammo != w.Header.Ammo {
		t.Errorf("counters mismatch: got %+v", got.Header)
	}
	if got.Header.Flags[0] != "DOOR1" {
		t.Errorf("flags[0]: got %q", got.Header.Flags[0])
	}
	if !got.Header.Keys[2] {
		t.Errorf("expected key 2 to round-trip as held")
	}
	if len(got.Boards) != 1 {
		t.Fatalf("expected 1 board, got %d", len(got.Boards))
	}

	gb := got.Boards[0]
	if gb.Meta.Name != "Town Square" || gb.Meta.Message != "Welcome, traveller." {
		t.Errorf("board meta mismatch: got %+v", gb.Meta)
	}
	if !gb.Meta.IsDark || gb.Meta.ExitNorth != 2 || gb.Meta.TimeLimitSecs != 120 {
		t.Errorf("board flags mismatch: got %+v", gb.Meta)
	}
	if gb.Grid.At(sim.Point{X: 10, Y: 10}).Element != sim.ElementSolid {
		t.Errorf("expected tile to round-trip")
	}
	if gb.Statuses.Len() != 3 {
		t.Fatalf("expected 3 statuses (player, bullet, shared), got %d", gb.Statuses.Len())
	}
	if gb.Statuses.Get(1).Code.IsRef() {
		t.Errorf("expected the bullet status to own its code")
	}
	if !gb.Statuses.Get(2).Code.IsRef() || gb.Statuses.Get(2).Code.Ref != 1 {
		t.Errorf("expected the shared status to reference the bullet's index, got %+v", gb.Statuses.Get(2).Code)
	}
}
