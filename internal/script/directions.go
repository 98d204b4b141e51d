package script

import "github.com/zztstep/engine/internal/sim"

func parseDirectionWord(word string) (sim.Direction, bool) {
	switch word {
	case "n", "north":
		return sim.DirNorth, true
	case "s", "south":
		return sim.DirSouth, true
	case "e", "east":
		return sim.DirEast, true
	case "w", "west":
		return sim.DirWest, true
	case "i", "idle":
		return sim.DirIdle, true
	}
	return sim.DirIdle, false
}

func seekPlayer(s *sim.Sim, status *sim.StatusElement) sim.Direction {
	player := s.Board.Statuses.Get(0)
	if player == nil {
		return sim.DirIdle
	}
	dx := player.Location.X - status.Location.X
	dy := player.Location.Y - status.Location.Y
	if dx == 0 && dy == 0 {
		return sim.DirIdle
	}
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return sim.DirEast
		}
		return sim.DirWest
	}
	if dy > 0 {
		return sim.DirSouth
	}
	return sim.DirNorth
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// resolveDirection consumes one or more words from words[*i:] to produce a
// direction, handling the composite operators of spec.md §4.3 (cw, ccw,
// opp, seek, flow, rndne, rndns, rndp DIR).
func resolveDirection(words []string, i *int, s *sim.Sim, status *sim.StatusElement) sim.Direction {
	if *i >= len(words) {
		return sim.DirIdle
	}
	w := words[*i]
	*i++
	switch w {
	case "cw":
		return resolveDirection(words, i, s, status).Clockwise()
	case "ccw":
		return resolveDirection(words, i, s, status).CounterClockwise()
	case "opp":
		return resolveDirection(words, i, s, status).Opposite()
	case "seek":
		return seekPlayer(s, status)
	case "flow":
		return sim.DirectionFromOffset(status.Step)
	case "rndne":
		if s.RNG.Intn(2) == 0 {
			return sim.DirNorth
		}
		return sim.DirEast
	case "rndns":
		if s.RNG.Intn(2) == 0 {
			return sim.DirNorth
		}
		return sim.DirSouth
	case "rndp":
		base := resolveDirection(words, i, s, status)
		if s.RNG.Intn(2) == 0 {
			return base.Clockwise()
		}
		return base.CounterClockwise()
	default:
		if d, ok := parseDirectionWord(w); ok {
			return d
		}
		return sim.DirIdle
	}
}
