// Package script implements the embedded object-oriented scripting
// language (spec.md §4.3): parse-on-demand execution, label zap/restore,
// asynchronous movement and message passing. The interpreter is a plain
// function call rather than a coroutine (spec.md §9 "Continuations without
// callbacks"): every command that would otherwise need a suspended
// continuation (a move, a try, a take, a put) is instead applied
// synchronously against the reducer and its ActionReport consulted
// immediately, since sim.Sim.Apply is always available as a direct call.
package script

import (
	"strconv"
	"strings"

	"github.com/zztstep/engine/internal/sim"
)

const opBudget = 64

// Runner implements behaviour.ScriptRunner.
type Runner struct{}

func New() *Runner { return &Runner{} }

type runState struct {
	sim    *sim.Sim
	index  int
	status *sim.StatusElement

	codeOwnerIndex int
	code           []byte
	codeDirty      bool

	ev          sim.Event
	actions     []sim.Action
	ops         int
	scrollLines []string
	deleteAfter bool
}

// RunStep executes a status's code for one partial step until it halts, a
// command ends the turn (#idle, #bind, #become, a blocked move, a script
// error) or the per-step operation budget is exhausted (spec.md §4.3
// Execution model). Board-messages produced along the way do not stop it.
func (r *Runner) RunStep(s *sim.Sim, index int, ev sim.Event, entryLabel string, deleteAfter bool) []sim.Action {
	status := s.Board.Statuses.Get(index)
	if status == nil {
		return nil
	}

	codeOwner := index
	cur := status
	for depth := 0; cur.Code.IsRef() && depth < maxCodeRefDepth; depth++ {
		codeOwner = cur.Code.Ref
		next := s.Board.Statuses.Get(codeOwner)
		if next == nil {
			return nil
		}
		cur = next
	}
	code := append([]byte{}, cur.Code.Code...)

	rs := &runState{sim: s, index: index, status: status, codeOwnerIndex: codeOwner, code: code, ev: ev, deleteAfter: deleteAfter}

	if entryLabel != "" {
		if c, ok := jumpToLabel(code, entryLabel); ok {
			status.Cursor = c
		} else {
			status.Cursor = -1
		}
	}

	rs.run()
	return rs.finalize()
}

func (rs *runState) run() {
	for rs.ops < opBudget {
		if rs.status.Cursor < 0 || rs.status.Cursor >= len(rs.code) {
			if rs.status.Cursor >= len(rs.code) {
				rs.status.Cursor = -1
			}
			return
		}
		rs.ops++
		if !rs.step() {
			return
		}
	}
}

// step executes the single line at the current cursor and reports whether
// execution should keep looping within this call.
func (rs *runState) step() bool {
	p := rs.status.Cursor
	for p < len(rs.code) && (rs.code[p] == ' ' || rs.code[p] == '\t') {
		p++
	}
	if p >= len(rs.code) {
		rs.status.Cursor = -1
		return false
	}
	lineEnd := indexCR(rs.code, p)
	kind := rs.code[p]
	switch kind {
	case '@', ':', '\'':
		rs.status.Cursor = lineEnd + 1
		return true
	case '/':
		return rs.execMoveAndWait(string(rs.code[p+1:lineEnd]), lineEnd, rs.status.Cursor)
	case '?':
		return rs.execTryAndContinue(string(rs.code[p+1:lineEnd]), lineEnd, rs.status.Cursor)
	case '#':
		return rs.execCommandText(strings.TrimSpace(string(rs.code[p+1:lineEnd])), lineEnd, rs.status.Cursor)
	default:
		rs.scrollLines = append(rs.scrollLines, string(rs.code[p:lineEnd]))
		rs.status.Cursor = lineEnd + 1
		return true
	}
}

func (rs *runState) finalize() []sim.Action {
	if rs.codeDirty {
		rs.sim.Apply(sim.SetCode{Index: rs.codeOwnerIndex, Code: rs.code})
	}
	var out []sim.Action
	if len(rs.scrollLines) > 0 {
		out = append(out, sim.SendBoardMessage{Message: sim.BoardMessage{
			Kind: sim.MsgOpenScroll, Title: scrollTitle(rs.code), Lines: rs.scrollLines,
		}})
	}
	if rs.deleteAfter {
		out = append(out, sim.SetTile{At: rs.status.Location, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}})
	}
	out = append(out, rs.actions...)
	return out
}

func (rs *runState) scriptError(msg string) bool {
	rs.actions = append(rs.actions, sim.SendBoardMessage{Message: sim.BoardMessage{
		Kind: sim.MsgOpenScroll, Title: "Error", Lines: []string{msg},
	}})
	rs.status.Cursor = -1
	return false
}

// execMoveAndWait implements a bare "/DIR" line (spec.md §4.3 Move): apply
// the move now; if blocked, roll the cursor back to retry next cycle
// ("do not progress"); otherwise advance past it.
func (rs *runState) execMoveAndWait(text string, lineEnd, lineStart int) bool {
	words := strings.Fields(text)
	wi := 0
	dir := resolveDirection(words, &wi, rs.sim, rs.status)
	dest := rs.status.Location.Add(dir.Offset())
	report := rs.sim.Apply(sim.MoveTile{From: rs.status.Location, To: dest, CheckPush: true})
	if report.Blocked {
		rs.status.Cursor = lineStart
		return false
	}
	rs.sim.Apply(sim.SetStep{Index: rs.index, Step: dir.Offset()})
	rs.status.Cursor = lineEnd + 1
	return true
}

// execTryAndContinue implements a bare "?DIR [fallback]" line (spec.md
// §4.3 Try): if blocked, the remainder of the line is parsed as another
// command; if not blocked, the remainder is skipped and execution
// continues at the next line.
func (rs *runState) execTryAndContinue(text string, lineEnd, lineStart int) bool {
	words := strings.Fields(text)
	wi := 0
	dir := resolveDirection(words, &wi, rs.sim, rs.status)
	dest := rs.status.Location.Add(dir.Offset())
	report := rs.sim.Apply(sim.MoveTile{From: rs.status.Location, To: dest, CheckPush: true})
	if report.Blocked {
		if wi < len(words) {
			return rs.execCommandText(strings.Join(words[wi:], " "), lineEnd, lineStart)
		}
		rs.status.Cursor = lineEnd + 1
		return true
	}
	rs.sim.Apply(sim.SetStep{Index: rs.index, Step: dir.Offset()})
	rs.status.Cursor = lineEnd + 1
	return true
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
