// Package scheduler implements the partial-step scheduler of spec.md §4.4:
// a cooperative, single-threaded walk over one board's status list that
// can suspend between statuses whenever a behaviour's step produces a
// board-message, and that resumes exactly where it left off on the next
// call. Grounded on the teacher's internal/core/system phase runner for
// the outer tick shape; the inner per-status walk has no teacher
// counterpart and is written from spec.md directly.
package scheduler

import (
	"time"

	"github.com/zztstep/engine/internal/sim"
)

const secondsCentiticks = 100
const centiticksPerMinute = 6000

// StepState is the scheduler's preserved state across suspensions
// (spec.md §4.4 "preserves step_state verbatim"). The Scheduler keeps it
// between Run calls and returns a copy in each Result; Run takes no
// StepState from the host.
type StepState struct {
	Event EventState

	GlobalCycle int // increments only on a completed simulation step
	PausedCycle int // advances on a Run call that neither completes a step nor returns messages; there is no paused state here

	CurrentIndex      int
	ProcessSameStatus bool // suppress index increment on the next resume

	ClickedLinkLabel string // consumed once by runInput; the cursor is left where it is

	StepComplete bool
}

// EventState is the frozen input event for the step currently in
// progress; spec.md calls this "the input event for the step (constant)".
type EventState struct {
	Event   sim.Event
	Primed  bool
}

// Result is what one call to Scheduler.Run hands back to the host.
type Result struct {
	Messages     []sim.BoardMessage
	StepComplete bool
	State        StepState
}

// Scheduler drives a Sim through partial steps.
type Scheduler struct {
	sm     *sim.Sim
	runner *Runner

	state    StepState
	pending  []sim.BoardMessage
	centitickSource func() int
}

// New constructs a scheduler over sm. centitickSource supplies the current
// wall-clock centitick counter (mod 6000); tests can inject a fake clock.
func New(sm *sim.Sim, centitickSource func() int) *Scheduler {
	s := &Scheduler{sm: sm, centitickSource: centitickSource}
	s.runner = NewRunner()
	s.runner.Register(phaseFunc{phase: PhaseInput, fn: s.runInput})
	s.runner.Register(phaseFunc{phase: PhaseSimulate, fn: s.runSimulate})
	s.runner.Register(phaseFunc{phase: PhaseTime, fn: s.runTime})
	s.runner.Register(phaseFunc{phase: PhaseOutput, fn: s.runOutput})
	s.state.CurrentIndex = 0
	return s
}

type phaseFunc struct {
	phase Phase
	fn    func(dt time.Duration)
}

func (p phaseFunc) Phase() Phase          { return p.phase }
func (p phaseFunc) Update(dt time.Duration) { p.fn(dt) }

// Run advances the simulation with ev as this step's input, resuming any
// previously-suspended step_state. It returns once a non-empty
// board-message list accumulates or a full step completes.
func (s *Scheduler) Run(ev sim.Event, dt time.Duration) Result {
	if !s.state.Event.Primed {
		s.state.Event = EventState{Event: ev, Primed: true}
	}
	s.pending = nil
	s.state.StepComplete = false

	s.runner.Tick(dt)

	if s.state.StepComplete || len(s.pending) > 0 {
		s.state.Event.Primed = false
	} else {
		s.state.PausedCycle++
	}

	return Result{Messages: s.pending, StepComplete: s.state.StepComplete, State: s.state}
}

func (s *Scheduler) runInput(time.Duration) {
	if s.state.ClickedLinkLabel != "" {
		status := s.sm.Board.Statuses.Get(s.state.CurrentIndex)
		if status != nil {
			s.sm.Apply(sim.SetCursor{Index: s.state.CurrentIndex, Cursor: seekClickedLabel(status)})
		}
		s.state.ClickedLinkLabel = ""
		s.state.ProcessSameStatus = true
	}
}

// seekClickedLabel returns the status's current cursor unchanged: the
// label text in ClickedLinkLabel is not looked up. Nothing in the engine
// sets ClickedLinkLabel.
func seekClickedLabel(status *sim.StatusElement) int {
	return status.Cursor
}

func (s *Scheduler) runSimulate(time.Duration) {
	board := s.sm.Board
	for {
		if len(s.pending) > 0 {
			return
		}
		if s.state.CurrentIndex >= board.Statuses.Len() {
			s.state.GlobalCycle++
			s.state.CurrentIndex = 0
			s.state.StepComplete = true
			return
		}

		idx := s.state.CurrentIndex
		status := board.Statuses.Get(idx)
		if status == nil {
			s.state.CurrentIndex++
			continue
		}

		if !s.state.ProcessSameStatus && !shouldRun(s.state.GlobalCycle, idx, status.Cycle) {
			s.state.CurrentIndex++
			continue
		}
		s.state.ProcessSameStatus = false

		elem := board.Grid.At(status.Location).Element
		beh := s.sm.Behaviours.Get(elem)
		actions := beh.Step(s.state.Event.Event, status, idx, s.sm)
		report := s.sm.ApplyActions(actions)

		if len(report.Messages) > 0 {
			s.pending = append(s.pending, report.Messages...)
		}
		if report.RestartOnZapRequested {
			s.handleRestartOnZap()
		}
		if report.TimeCheckRequested {
			s.checkTimeElapsed()
		}

		// spec.md §4.4: "decremented by the count of removed indices
		// strictly less than it — or by one extra if the reprocess-latch
		// is set and the current index itself was removed". adjusted is
		// the current slot's position after the shift; the next partial
		// step visits adjusted+1.
		adjusted := idx
		if report.MinRemovedIndex >= 0 && report.MinRemovedIndex < idx {
			adjusted--
		}
		if report.Reprocess && report.MinRemovedIndex == idx {
			adjusted--
		}
		s.state.CurrentIndex = adjusted + 1
		if s.state.CurrentIndex < 0 {
			s.state.CurrentIndex = 0
		}

		if len(s.pending) > 0 {
			return
		}
	}
}

func (s *Scheduler) runTime(time.Duration) {}

func (s *Scheduler) runOutput(time.Duration) {}

// shouldRun implements spec.md §4.4's literal schedule test:
// (global_cycle - index % cycle_of_status) mod cycle_of_status == 0.
// A status whose cycle is 0 never runs (spec.md §3: "0 means never step").
func shouldRun(globalCycle, index, cycle int) bool {
	if cycle <= 0 {
		return false
	}
	return floorMod(globalCycle-floorMod(index, cycle), cycle) == 0
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// handleRestartOnZap queues a switch-board message to the current board
// index when the board's restart-on-zap flag is set and health has reached
// zero (spec.md §4.2 Damage for the player and §4.4 Time accounting).
func (s *Scheduler) handleRestartOnZap() {
	if !s.sm.Board.Meta.RestartOnZap {
		return
	}
	if s.sm.World.Header.Health <= 0 {
		s.pending = append(s.pending, sim.BoardMessage{Kind: sim.MsgSwitchBoard, BoardIndex: s.sm.World.Header.CurrentBoard})
	}
}

// checkTimeElapsed implements spec.md §4.4 Time accounting.
func (s *Scheduler) checkTimeElapsed() {
	now := s.centitickSource() % centiticksPerMinute
	prev := s.sm.World.Header.Centiticks
	diff := now - prev
	if diff < 0 {
		diff += centiticksPerMinute
	}
	if diff < secondsCentiticks {
		return
	}
	s.sm.World.Header.Centiticks = now
	s.sm.World.Header.TimeElapsedSeconds++

	limit := s.sm.Board.Meta.TimeLimitSecs
	if limit <= 0 {
		return
	}
	remaining := limit - s.sm.World.Header.TimeElapsedSeconds
	if remaining == 10 {
		s.pending = append(s.pending, sim.BoardMessage{
			Kind: sim.MsgOpenScroll, Title: "Time running out!", Lines: []string{"Running out of time!"},
		})
	}
	if remaining <= 0 {
		s.sm.Apply(sim.ModifyPlayerItem{Item: sim.ItemHealth, Delta: -10})
		if s.sm.World.Header.Health <= 0 {
			s.handleRestartOnZap()
		}
	}
}
