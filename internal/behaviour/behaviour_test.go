package behaviour

import (
	"math/rand"
	"testing"

	"github.com/zztstep/engine/internal/sim"
)

func newTestSim() *sim.Sim {
	b := sim.NewBoard("test")
	w := &sim.World{Boards: []*sim.Board{b}}
	return sim.NewSim(w, NewTable(noopRunner{}), rand.New(rand.NewSource(3)))
}

type noopRunner struct{}

func (noopRunner) RunStep(*sim.Sim, int, sim.Event, string, bool) []sim.Action { return nil }

func TestItemPushByPlayerGrantsAmmoAndClearsTile(t *testing.T) {
	s := newTestSim()
	at := sim.Point{X: 5, Y: 5}
	s.Board.Grid.SetAt(at, sim.Tile{Element: sim.ElementAmmo, Colour: 0x0E})
	s.World.Header.Ammo = 0

	s.Apply(sim.PushTile{At: at, ByPlayer: true})

	if s.World.Header.Ammo != 5 {
		t.Fatalf("expected ammo to increase by 5, got %d", s.World.Header.Ammo)
	}
	if s.Board.Grid.At(at).Element != sim.ElementEmpty {
		t.Fatalf("expected ammo tile to clear after pickup, got %v", s.Board.Grid.At(at).Element)
	}
}

func TestItemPushByNonPlayerIsBlocked(t *testing.T) {
	s := newTestSim()
	at := sim.Point{X: 5, Y: 5}
	s.Board.Grid.SetAt(at, sim.Tile{Element: sim.ElementGem, Colour: 0x0E})

	report := s.Apply(sim.PushTile{At: at, ByPlayer: false})
	if !report.Blocked {
		t.Fatal("expected a monster pushing into a gem to be blocked")
	}
	if s.Board.Grid.At(at).Element != sim.ElementGem {
		t.Fatal("expected gem tile to survive a non-player push")
	}
}

func TestDoorRequiresMatchingKeyColour(t *testing.T) {
	s := newTestSim()
	at := sim.Point{X: 5, Y: 5}
	s.Board.Grid.SetAt(at, sim.Tile{Element: sim.ElementDoor, Colour: 0x02})

	report := s.Apply(sim.PushTile{At: at, ByPlayer: true})
	if !report.Blocked {
		t.Fatal("expected the door to stay locked without the matching key")
	}

	s.World.Header.Keys[2] = true
	report = s.Apply(sim.PushTile{At: at, ByPlayer: true})
	if report.Blocked {
		t.Fatal("expected the door to open once the matching key is held")
	}
	if s.Board.Grid.At(at).Element != sim.ElementEmpty {
		t.Fatal("expected the door tile to clear once opened")
	}
}

func TestBoulderMovesWhenPushedAndStopsAtWall(t *testing.T) {
	s := newTestSim()
	boulder := sim.Point{X: 5, Y: 5}
	beyond := sim.Point{X: 6, Y: 5}
	s.Board.Grid.SetAt(boulder, sim.Tile{Element: sim.ElementBoulder, Colour: 0x07})

	report := s.Apply(sim.PushTile{At: boulder, Delta: sim.Point{X: 1, Y: 0}, ByPlayer: true})
	if report.Blocked {
		t.Fatal("expected the boulder to roll into an empty cell")
	}
	if s.Board.Grid.At(beyond).Element != sim.ElementBoulder {
		t.Fatalf("expected the boulder to have moved, got %v at destination", s.Board.Grid.At(beyond).Element)
	}

	s.Board.Grid.SetAt(boulder, sim.Tile{Element: sim.ElementBoulder, Colour: 0x07})
	s.Board.Grid.SetAt(beyond, sim.Tile{Element: sim.ElementSolid, Colour: 0x07})
	report = s.Apply(sim.PushTile{At: boulder, Delta: sim.Point{X: 1, Y: 0}, ByPlayer: true})
	if !report.Blocked {
		t.Fatal("expected the boulder to stop pushing against a solid wall")
	}
}

func TestPlayerShootRefusesOverMaxPlayerShots(t *testing.T) {
	s := newTestSim()
	s.World.Header.Ammo = 10
	s.World.Header.Health = 100
	s.Board.Meta.MaxPlayerShots = 1

	player := s.Board.Statuses.Get(0)
	player.Step = sim.DirEast.Offset()

	existing := sim.NewStatus(sim.Point{X: 8, Y: 8})
	existing.Param1 = 0
	s.Board.Grid.SetAt(existing.Location, sim.Tile{Element: sim.ElementBullet, Colour: 0x0F})
	s.Board.Statuses.Append(existing)

	beh := s.Behaviours.Get(sim.ElementPlayer)
	before := s.World.Header.Ammo
	actions := beh.Step(sim.Event{Kind: sim.EvShootDir, Dir: sim.DirEast}, player, 0, s)
	s.ApplyActions(actions)

	if s.World.Header.Ammo != before {
		t.Fatalf("expected no ammo to be spent once the board's bullet cap is reached, got %d", s.World.Header.Ammo)
	}
	bulletAhead := s.Board.Grid.At(player.Location.Add(sim.DirEast.Offset())).Element
	if bulletAhead == sim.ElementBullet {
		t.Fatal("expected no second bullet to spawn once the board's max-player-shots cap is reached")
	}
}

func TestPlayerShootRefusesWhenMaxPlayerShotsIsZero(t *testing.T) {
	s := newTestSim()
	s.World.Header.Ammo = 10
	s.World.Header.Health = 100
	s.Board.Meta.MaxPlayerShots = 0

	player := s.Board.Statuses.Get(0)
	player.Step = sim.DirEast.Offset()

	beh := s.Behaviours.Get(sim.ElementPlayer)
	actions := beh.Step(sim.Event{Kind: sim.EvShootDir, Dir: sim.DirEast}, player, 0, s)
	report := s.ApplyActions(actions)

	if len(report.Messages) == 0 {
		t.Fatal("expected a one-time notification when shooting is disabled on this board")
	}
	if s.World.Header.Ammo != 10 {
		t.Fatal("expected no ammo to be spent when shooting is disabled on this board")
	}
}

func TestBulletStepRecoloursToWaterBackgroundWhenFlyingOverWater(t *testing.T) {
	s := newTestSim()
	st := sim.NewStatus(sim.Point{X: 5, Y: 5})
	st.Step = sim.DirEast.Offset()
	s.Board.Grid.SetAt(st.Location, sim.Tile{Element: sim.ElementBullet, Colour: 0x0F})
	s.Board.Grid.SetAt(sim.Point{X: 6, Y: 5}, sim.Tile{Element: sim.ElementWater, Colour: 0x0F})
	idx := s.Board.Statuses.Append(st)

	beh := s.Behaviours.Get(sim.ElementBullet)
	actions := beh.Step(sim.Event{}, st, idx, s)
	s.ApplyActions(actions)

	if got := s.Board.Grid.At(sim.Point{X: 6, Y: 5}).Colour; got != 0x7F {
		t.Fatalf("expected the bullet, now over the water, to carry the water background (0x7F), got 0x%02X", got)
	}
}

func TestBulletStepRecoloursToBlackBackgroundOverOrdinaryFloor(t *testing.T) {
	s := newTestSim()
	st := sim.NewStatus(sim.Point{X: 5, Y: 5})
	st.Step = sim.DirEast.Offset()
	s.Board.Grid.SetAt(st.Location, sim.Tile{Element: sim.ElementBullet, Colour: 0x7F})
	idx := s.Board.Statuses.Append(st)

	beh := s.Behaviours.Get(sim.ElementBullet)
	actions := beh.Step(sim.Event{}, st, idx, s)
	s.ApplyActions(actions)

	if got := s.Board.Grid.At(sim.Point{X: 6, Y: 5}).Colour; got != 0x0F {
		t.Fatalf("expected the bullet, now over the floor, to carry a black background (0x0F), got 0x%02X", got)
	}
}

func TestPusherStepMovesOneCellAlongItsFixedDirection(t *testing.T) {
	s := newTestSim()
	st := sim.NewStatus(sim.Point{X: 5, Y: 5})
	st.Step = sim.DirEast.Offset()
	s.Board.Grid.SetAt(st.Location, sim.Tile{Element: sim.ElementPusher, Colour: 0x07})
	idx := s.Board.Statuses.Append(st)

	beh := s.Behaviours.Get(sim.ElementPusher)
	actions := beh.Step(sim.Event{}, st, idx, s)
	s.ApplyActions(actions)

	if s.Board.Grid.At(sim.Point{X: 6, Y: 5}).Element != sim.ElementPusher {
		t.Fatalf("expected pusher to advance east, got %v", s.Board.Grid.At(sim.Point{X: 6, Y: 5}).Element)
	}
}
