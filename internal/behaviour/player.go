package behaviour

import "github.com/zztstep/engine/internal/sim"

func notify(n sim.OneTimeNotification) sim.Action {
	return sim.SendBoardMessage{Message: sim.BoardMessage{Kind: sim.MsgShowOneTimeNotification, Notify: n}}
}

// playerBulletCount counts the player-fired bullets currently on the board
// (param1 == 0), the figure the board's max-player-shots cap is checked
// against (spec.md §4.2 Player).
func playerBulletCount(s *sim.Sim) int {
	n := 0
	for i := range s.Board.Statuses.All() {
		st := s.Board.Statuses.Get(i)
		if st == nil || st.Param1 != 0 {
			continue
		}
		if s.Board.Grid.At(st.Location).Element == sim.ElementBullet {
			n++
		}
	}
	return n
}

// Player consumes the input event for the step (spec.md §4.2 Player).
type Player struct{ Default }

func (Player) BlockedForBullets() bool { return true }

func (Player) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	h := &s.World.Header
	var actions []sim.Action

	if h.Health > 0 {
		switch ev.Kind {
		case sim.EvMoveDir:
			status.Step = ev.Dir.Offset()
			dest := status.Location.Add(status.Step)
			actions = append(actions, sim.MoveTile{From: status.Location, To: dest, CheckPush: true, ByPlayer: true})

		case sim.EvShootDir, sim.EvShootFlow:
			dir := ev.Dir
			if dir == sim.DirIdle {
				dir = sim.DirectionFromOffset(status.Step)
			}
			switch {
			case h.Ammo <= 0:
				actions = append(actions, notify(sim.NotifyNoAmmo))
			case s.Board.Meta.MaxPlayerShots == 0:
				actions = append(actions, notify(sim.NotifyCannotShootHere))
			case playerBulletCount(s) >= int(s.Board.Meta.MaxPlayerShots):
				// Over the board's simultaneous-shot limit: silently refused,
				// matching the original engine (only the zero-limit case
				// above gets a notification).
			default:
				bulletPos := status.Location.Add(dir.Offset())
				destTile := s.Board.Grid.At(bulletPos)
				if s.Behaviours.Get(destTile.Element).BlockedForBullets() {
					actions = append(actions, notify(sim.NotifyCannotShootHere))
				} else {
					bullet := sim.NewStatus(bulletPos)
					bullet.Step = dir.Offset()
					bullet.Cycle = 1
					bullet.Param1 = 0 // player-fired
					actions = append(actions,
						sim.ModifyPlayerItem{Item: sim.ItemAmmo, Delta: -1},
						sim.SetTile{At: bulletPos, Tile: sim.Tile{Element: sim.ElementBullet, Colour: 0x0F}, Attach: bullet},
					)
				}
			}

		case sim.EvLightTorch:
			switch {
			case !s.Board.Meta.IsDark:
				actions = append(actions, notify(sim.NotifyRoomNotDark))
			case h.Torches <= 0:
				actions = append(actions, notify(sim.NotifyNoTorches))
			case h.TorchCycles == 0:
				actions = append(actions,
					sim.SetTorchCycles{Value: 200},
					sim.ModifyPlayerItem{Item: sim.ItemTorches, Delta: -1},
				)
			}
		}
	}

	if h.TorchCycles > 0 {
		actions = append(actions, sim.SetTorchCycles{Value: h.TorchCycles - 1})
	}
	if h.EnergyCycles > 0 {
		newVal := h.EnergyCycles - 1
		actions = append(actions, sim.SetEnergyCycles{Value: newVal})
		if newVal == 10 {
			actions = append(actions, sim.SendBoardMessage{Message: sim.BoardMessage{Kind: sim.MsgPlaySoundArray}})
		}
	}

	actions = append(actions, sim.SetAsPlayerTile{Index: index})
	return actions
}

// Damage is invoked by creatures/bullets/blink-walls touching the player.
// Energised players take no damage (spec.md §4.2 Creatures).
func (Player) Damage(at sim.Point, cause sim.DamageCause, s *sim.Sim) ([]sim.Action, bool) {
	h := &s.World.Header
	if h.EnergyCycles > 0 {
		return nil, false
	}
	const dmg = 10
	died := h.Health-dmg <= 0
	return []sim.Action{
		sim.ModifyPlayerItem{Item: sim.ItemHealth, Delta: -dmg},
		sim.CheckRestartOnZap{},
	}, died
}
