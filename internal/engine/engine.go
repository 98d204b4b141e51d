// Package engine is the external facade of spec.md §6: it owns a sim.Sim,
// a scheduler.Scheduler, and the board-switch/teleport orchestration the
// scheduler itself does not know about (a partial step only ever touches
// one board's status list). Grounded on the teacher's top-level server
// struct, which plays the same "own every subsystem, expose a small typed
// API" role over its ECS world, packet codec and persistence layer.
package engine

import (
	"bytes"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/zztstep/engine/internal/behaviour"
	"github.com/zztstep/engine/internal/scheduler"
	"github.com/zztstep/engine/internal/script"
	"github.com/zztstep/engine/internal/sim"
	"github.com/zztstep/engine/internal/worldfile"
)

// Engine drives one loaded world: input in, board messages out.
type Engine struct {
	log *zap.Logger

	sim       *sim.Sim
	sched     *scheduler.Scheduler
	runner    *script.Runner
	centitick int

	bus *Bus

	inTitleScreen bool
	paused        bool
}

// New constructs an Engine over an already-loaded world. The scheduler's
// centitick clock is an internal counter that advances by one on each read
// and wraps at 6000. An rngSeed of 0 selects the fixed seed 1.
func New(world *sim.World, log *zap.Logger, rngSeed int64) *Engine {
	script.Wire()
	runner := script.New()
	table := behaviour.NewTable(runner)

	rng := rand.New(rand.NewSource(rngSeed))
	if rngSeed == 0 {
		rng = rand.New(rand.NewSource(1))
	}
	sm := sim.NewSim(world, table, rng)

	e := &Engine{
		log:           log,
		sim:           sm,
		runner:        runner,
		bus:           NewBus(),
		inTitleScreen: true,
	}
	e.sched = scheduler.New(sm, e.nextCentitick)
	return e
}

// Load decodes a world-file from data and returns a new Engine over it.
func Load(data []byte, log *zap.Logger, rngSeed int64) (*Engine, error) {
	w, err := worldfile.ReadWorld(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	return New(w, log, rngSeed), nil
}

// Save serialises the engine's current world back to the binary format.
func (e *Engine) Save() ([]byte, error) {
	var buf bytes.Buffer
	if err := worldfile.WriteWorld(&buf, e.sim.World); err != nil {
		return nil, fmt.Errorf("save world: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadHighscores parses a highscore table previously produced by
// SaveHighscores (SPEC_FULL.md §5 Highscore table, worldfile/highscore.go).
func (e *Engine) LoadHighscores(data []byte) ([]worldfile.Highscore, error) {
	scores, err := worldfile.ReadHighscores(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load highscores: %w", err)
	}
	return scores, nil
}

// SaveHighscores serialises scores back into the original 30-slot binary
// layout.
func (e *Engine) SaveHighscores(scores []worldfile.Highscore) ([]byte, error) {
	var buf bytes.Buffer
	if err := worldfile.WriteHighscores(&buf, scores); err != nil {
		return nil, fmt.Errorf("save highscores: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) nextCentitick() int {
	e.centitick = (e.centitick + 1) % 6000
	return e.centitick
}

// OpenBoard switches the active board by index (spec.md §4 Board
// switching). The player is not moved and the board's entry point is not
// applied. clearTitle matches the CLI's -b flag: it also drops the
// title-screen flag.
func (e *Engine) OpenBoard(index int, clearTitle bool) error {
	if index < 0 || index >= len(e.sim.World.Boards) {
		return fmt.Errorf("board index %d out of range", index)
	}
	e.sim.World.Header.CurrentBoard = index
	e.sim.Board = e.sim.World.Boards[index]
	if clearTitle {
		e.inTitleScreen = false
	}
	return nil
}

// StepResult is what Step hands back to the host: board messages to act on
// and whether the scheduler completed a full step.
type StepResult struct {
	Messages     []sim.BoardMessage
	StepComplete bool
}

// Step advances the simulation by one call to the scheduler, resolving any
// pending cross-board message (switch-board, teleport) before returning.
func (e *Engine) Step(ev sim.Event) (StepResult, error) {
	res := e.sched.Run(ev, 0)
	out := StepResult{Messages: nil, StepComplete: res.StepComplete}

	for _, m := range res.Messages {
		switch m.Kind {
		case sim.MsgSwitchBoard, sim.MsgTeleportToBoard:
			if err := e.OpenBoard(m.BoardIndex, false); err != nil {
				return out, err
			}
		case sim.MsgSaveGameToFile:
			data, err := e.Save()
			if err != nil {
				return out, err
			}
			Emit(e.bus, SaveRequested{WorldName: e.sim.World.Header.Title, SlotName: m.FilePath, Data: data})
		case sim.MsgPauseGame:
			e.paused = true
		case sim.MsgPlayGame:
			e.paused = false
		}
		out.Messages = append(out.Messages, m)
	}
	e.bus.SwapBuffers()
	e.bus.DispatchAll()
	return out, nil
}

// Bus exposes the engine's event bus so a host can subscribe to
// HighscoreSubmitted/SaveRequested without reaching into engine internals.
func (e *Engine) Bus() *Bus { return e.bus }

// InTitleScreen reports whether the engine is showing the world-selection
// title screen rather than a live board (spec.md §6 CLI surface).
func (e *Engine) InTitleScreen() bool { return e.inTitleScreen }

// Paused reports whether the last step left the simulation paused.
func (e *Engine) Paused() bool { return e.paused }
