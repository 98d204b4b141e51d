package behaviour

import "github.com/zztstep/engine/internal/sim"

// Item is a pickup: ammo, torches, gems. Picking one up increments a world
// counter and clears the tile.
type Item struct {
	Default
	Item        sim.PlayerItemType
	Amount      int
	Notify      sim.OneTimeNotification
	PickupSound bool
	AlsoHealth  int
}

func (it Item) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	if !byPlayer {
		return sim.PushResult{Blocked: true}
	}
	actions := []sim.Action{
		sim.ModifyPlayerItem{Item: it.Item, Delta: it.Amount},
		sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}},
	}
	if it.AlsoHealth != 0 {
		actions = append([]sim.Action{sim.ModifyPlayerItem{Item: sim.ItemHealth, Delta: it.AlsoHealth}}, actions...)
	}
	return sim.PushResult{Blocked: false, Actions: actions}
}

// Key grants the player a coloured key, keyed by the low three bits of the
// tile's foreground colour.
type Key struct{ Default }

func (Key) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	if !byPlayer {
		return sim.PushResult{Blocked: true}
	}
	colour := int(s.Board.Grid.At(at).Colour & 0x07)
	return sim.PushResult{Blocked: false, Actions: []sim.Action{
		sim.ModifyPlayerKey{Colour: colour, Have: true},
		sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}},
	}}
}

// Door requires the matching key colour to open; it does not consume the
// key.
type Door struct{ Default }

func (Door) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	if !byPlayer {
		return sim.PushResult{Blocked: true}
	}
	colour := int(s.Board.Grid.At(at).Colour & 0x07)
	if colour < 0 || colour >= sim.NumKeys || !s.World.Header.Keys[colour] {
		return sim.PushResult{Blocked: true}
	}
	return sim.PushResult{Blocked: false, Actions: []sim.Action{
		sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}},
	}}
}

// Energizer grants temporary invincibility.
type Energizer struct{ Default }

const energizerCycles = 75

func (Energizer) Push(at, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	if !byPlayer {
		return sim.PushResult{Blocked: true}
	}
	return sim.PushResult{Blocked: false, Actions: []sim.Action{
		sim.SetEnergyCycles{Value: energizerCycles},
		sim.SetTile{At: at, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}},
		sim.SendBoardMessage{Message: sim.BoardMessage{
			Kind: sim.MsgShowOneTimeNotification, Notify: sim.NotifyEnergizerInvincible,
		}},
	}}
}
