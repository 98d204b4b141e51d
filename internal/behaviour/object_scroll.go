package behaviour

import "github.com/zztstep/engine/internal/sim"

// Scroll flashes by rotating through the "light" colour band and, when
// pushed, runs its script as a delete-after continuation that becomes a
// scroll widget (spec.md §4.2 Scroll).
type Scroll struct {
	Default
	Runner ScriptRunner
}

func (s Scroll) Step(ev sim.Event, status *sim.StatusElement, index int, sm *sim.Sim) []sim.Action {
	t := sm.Board.Grid.At(status.Location)
	fg := t.Colour & 0x0F
	fg = ((fg - 8 + 1) % 8) + 8 // cycle within the bright half of the band
	return []sim.Action{sim.SetColour{At: status.Location, Colour: (t.Colour & 0xF0) | fg}}
}

func (s Scroll) Push(at, delta sim.Point, byPlayer bool, sm *sim.Sim) sim.PushResult {
	if !byPlayer {
		return sim.PushResult{Blocked: true}
	}
	idx := sm.StatusIndexAt(at)
	if idx < 0 || s.Runner == nil {
		return sim.PushResult{Blocked: true}
	}
	actions := s.Runner.RunStep(sm, idx, sim.Event{Kind: sim.EvEnter}, "", true)
	return sim.PushResult{Blocked: true, Actions: actions}
}

// Object delegates every step to the script interpreter (spec.md §4.2
// Object). A nonzero step set by #walk is not acted on here: the object is
// not moved and no "thud" label is sent.
type Object struct {
	Default
	Runner ScriptRunner
}

func (o Object) Step(ev sim.Event, status *sim.StatusElement, index int, sm *sim.Sim) []sim.Action {
	if o.Runner == nil {
		return nil
	}
	return o.Runner.RunStep(sm, index, ev, "", false)
}

func (o Object) Push(at, delta sim.Point, byPlayer bool, sm *sim.Sim) sim.PushResult {
	idx := sm.StatusIndexAt(at)
	if idx < 0 {
		return sim.PushResult{Blocked: true}
	}
	status := sm.Board.Statuses.Get(idx)
	if status.Locked || o.Runner == nil {
		return sim.PushResult{Blocked: true}
	}
	actions := o.Runner.RunStep(sm, idx, sim.Event{Kind: sim.EvEnter}, "touch", false)
	return sim.PushResult{Blocked: true, Actions: actions}
}

func (o Object) Damage(at sim.Point, cause sim.DamageCause, sm *sim.Sim) ([]sim.Action, bool) {
	idx := sm.StatusIndexAt(at)
	if idx < 0 || o.Runner == nil {
		return nil, false
	}
	status := sm.Board.Statuses.Get(idx)
	if status.Locked {
		return nil, false
	}
	label := "shot"
	if cause.Kind == sim.DamageBombed {
		label = "bombed"
	}
	return o.Runner.RunStep(sm, idx, sim.Event{Kind: sim.EvEnter}, label, false), false
}
