package sim

import (
	"math/rand"
	"strings"
)

// ActionReport is what apply_action (and ApplyActions, its batch form)
// hands back to a continuation or to the scheduler (spec.md §4.1 Report).
type ActionReport struct {
	MinRemovedIndex int // -1 if nothing was removed
	Blocked         bool
	ItemUnderflow   bool
	Reprocess       bool
	Messages        []BoardMessage

	// TimeCheckRequested and RestartOnZapRequested mirror the two actions
	// the reducer cannot resolve on its own (spec.md §4.1): the scheduler
	// owns the wall-clock source and the world-load path respectively.
	TimeCheckRequested     bool
	RestartOnZapRequested  bool
}

func newReport() ActionReport { return ActionReport{MinRemovedIndex: -1} }

func (r *ActionReport) noteRemoved(idx int) {
	if r.MinRemovedIndex < 0 || idx < r.MinRemovedIndex {
		r.MinRemovedIndex = idx
	}
}

func (r *ActionReport) merge(o ActionReport) {
	if o.MinRemovedIndex >= 0 && (r.MinRemovedIndex < 0 || o.MinRemovedIndex < r.MinRemovedIndex) {
		r.MinRemovedIndex = o.MinRemovedIndex
	}
	r.Blocked = r.Blocked || o.Blocked
	r.ItemUnderflow = r.ItemUnderflow || o.ItemUnderflow
	r.Reprocess = r.Reprocess || o.Reprocess
	r.TimeCheckRequested = r.TimeCheckRequested || o.TimeCheckRequested
	r.RestartOnZapRequested = r.RestartOnZapRequested || o.RestartOnZapRequested
	r.Messages = append(r.Messages, o.Messages...)
}

// Sim bundles everything a behaviour or the reducer touches while applying
// actions for the current board.
type Sim struct {
	World      *World
	Board      *Board
	Behaviours BehaviourLookup
	RNG        *rand.Rand
}

func NewSim(w *World, behaviours BehaviourLookup, rng *rand.Rand) *Sim {
	return &Sim{World: w, Board: w.CurrentBoard(), Behaviours: behaviours, RNG: rng}
}

func (s *Sim) behaviourAt(p Point) Behaviour {
	return s.Behaviours.Get(s.Board.Grid.At(p).Element)
}

// ApplyActions applies a sequence of actions in order and returns the
// merged report (spec.md §5 Ordering: "Action effects within one behaviour
// invocation are ordered by the sequence in the returned action list").
func (s *Sim) ApplyActions(actions []Action) ActionReport {
	report := newReport()
	for _, a := range actions {
		report.merge(s.Apply(a))
	}
	return report
}

// Apply is the single mutation point (spec.md §4.1 Contract).
func (s *Sim) Apply(a Action) ActionReport {
	report := newReport()
	b := s.Board

	switch act := a.(type) {

	case SetTile:
		if existing := s.statusIndexAt(act.At); existing >= 0 {
			b.Statuses.Remove(existing)
			report.noteRemoved(existing)
			if act.Attach != nil && existing < b.Statuses.Len() {
				// indices below the removed one are unaffected; nothing to
				// shift for a not-yet-appended status.
			}
		}
		b.Grid.SetAt(act.At, act.Tile)
		if act.Attach != nil {
			act.Attach.Location = act.At
			b.Statuses.Append(act.Attach)
		}

	case SetElementAndColour:
		t := b.Grid.At(act.At)
		t.Element, t.Colour = act.Element, act.Colour
		b.Grid.SetAt(act.At, t)

	case SetColour:
		t := b.Grid.At(act.At)
		t.Colour = act.Colour
		b.Grid.SetAt(act.At, t)

	case PushTile:
		beh := s.behaviourAt(act.At)
		pr := beh.Push(act.At, act.Delta, act.ByPlayer, s)
		sub := s.ApplyActions(pr.Actions)
		report.merge(sub)
		blocked := pr.Blocked
		if !blocked {
			// Re-examine post-push: a squasher pushing a squashable cell
			// counts as not-blocked (spec.md §4.1 Push-tile semantics).
		} else {
			beh2 := s.behaviourAt(act.At)
			pushBeh := s.behaviourAt(act.At.Add(act.Delta.Neg()))
			if pushBeh != nil && pushBeh.CanSquash() && beh2.CanBeSquashed() {
				blocked = false
			}
		}
		report.Blocked = report.Blocked || blocked

	case MoveTile:
		if act.From == act.To {
			break
		}
		if act.CheckPush {
			pushReport := s.Apply(PushTile{At: act.To, Delta: act.To.Add(act.From.Neg()), ByPlayer: act.ByPlayer})
			report.merge(pushReport)
			if pushReport.Blocked {
				report.Blocked = true
				break
			}
		}
		fromTile := b.Grid.At(act.From)
		destTile := b.Grid.At(act.To)
		idx := s.statusIndexAt(act.From)
		if idx >= 0 {
			st := b.Statuses.Get(idx)
			savedUnderElement, savedUnderColour := st.UnderElement, st.UnderColour
			st.UnderElement, st.UnderColour = destTile.Element, destTile.Colour
			st.Location = act.To
			b.Grid.SetAt(act.To, fromTile)
			b.Grid.SetAt(act.From, Tile{Element: savedUnderElement, Colour: savedUnderColour})
		} else {
			b.Grid.SetAt(act.To, fromTile)
			b.Grid.SetAt(act.From, emptyTile)
		}

	case SetCursor:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Cursor = act.Cursor
		}

	case SetCode:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Code = OwnedCode(act.Code)
		}

	case BindCodeToIndex:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Code = RefCode(act.Target)
			st.Cursor = 0
		}

	case SendBoardMessage:
		report.Messages = append(report.Messages, act.Message)

	case ModifyPlayerItem:
		underflow := applyPlayerItemDelta(&s.World.Header, act.Item, act.Delta)
		report.ItemUnderflow = report.ItemUnderflow || underflow

	case CheckRestartOnZap:
		report.RestartOnZapRequested = true

	case ModifyPlayerKey:
		if act.Colour >= 0 && act.Colour < NumKeys {
			s.World.Header.Keys[act.Colour] = act.Have
		}

	case SetLeader:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Leader = act.Leader
		}

	case SetFollower:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Follower = act.Follower
		}

	case SetStep:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Step = act.Step
		}

	case SetCycle:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Cycle = act.Cycle
		}

	case SetLocation:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Location = act.Location
		}

	case SetParam1:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Param1 = act.Value
		}

	case SetParam2:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Param2 = act.Value
		}

	case SetParam3:
		if st := b.Statuses.Get(act.Index); st != nil {
			st.Param3 = act.Value
		}

	case OthersApplyLabelOperation:
		report.merge(s.applyLabelBroadcast(act))

	case SetTorchCycles:
		s.World.Header.TorchCycles = act.Value

	case SetEnergyCycles:
		s.World.Header.EnergyCycles = act.Value

	case SetFlag:
		if s.World.Header.LastMatchingFlag(act.Name) < 0 {
			if slot := s.World.Header.FirstEmptyFlagSlot(); slot >= 0 {
				s.World.Header.Flags[slot] = act.Name
			}
		}

	case ClearFlag:
		if slot := s.World.Header.LastMatchingFlag(act.Name); slot >= 0 {
			s.World.Header.Flags[slot] = ""
		}

	case ReprocessSameStatusIndexOnRemoval:
		report.Reprocess = true

	case CheckTimeElapsed:
		report.TimeCheckRequested = true

	case SetAsPlayerTile:
		if st := b.Statuses.Get(act.Index); st != nil {
			t := b.Grid.At(st.Location)
			t.Element = ElementPlayer
			b.Grid.SetAt(st.Location, t)
		}
	}

	return report
}

// StatusIndexAt returns the index of the status occupying p, or -1.
func (s *Sim) StatusIndexAt(p Point) int { return s.statusIndexAt(p) }

func (s *Sim) statusIndexAt(p Point) int {
	for i, st := range s.Board.Statuses.All() {
		if st.Location == p {
			return i
		}
	}
	return -1
}

// applyPlayerItemDelta mutates the named counter, clamping at zero and
// reporting underflow when Delta would have gone negative (spec.md §7
// Take-item underflow).
func applyPlayerItemDelta(h *WorldHeader, item PlayerItemType, delta int) (underflow bool) {
	get := func() *int {
		switch item {
		case ItemAmmo:
			return &h.Ammo
		case ItemTorches:
			return &h.Torches
		case ItemGems:
			return &h.Gems
		case ItemHealth:
			return &h.Health
		case ItemScore:
			return &h.Score
		case ItemTimeSeconds:
			return &h.TimeElapsedSeconds
		}
		return nil
	}
	p := get()
	if p == nil {
		return false
	}
	if *p+delta < 0 {
		*p = 0
		return true
	}
	*p += delta
	return false
}

// applyLabelBroadcast implements spec.md §4.3 Broadcasts: iterate every
// other status (or just the source for "myself"), gate by @-name when the
// operation names a receiver, then hand off to the label operation applier
// provided by the caller (injected to avoid a sim<->script import cycle).
var LabelOperationApplier func(s *Sim, targetIndex int, op LabelOperation) ActionReport

func (s *Sim) applyLabelBroadcast(act OthersApplyLabelOperation) ActionReport {
	report := newReport()
	if LabelOperationApplier == nil {
		return report
	}
	switch strings.ToLower(act.Receiver) {
	case "myself":
		report.merge(LabelOperationApplier(s, act.SourceIndex, act.Op))
	case "all", "others":
		for i := range s.Board.Statuses.All() {
			if i == act.SourceIndex {
				continue
			}
			st := s.Board.Statuses.Get(i)
			if st == nil || st.Locked {
				continue
			}
			report.merge(LabelOperationApplier(s, i, act.Op))
		}
	default:
		// A named receiver only reaches statuses whose object (the owner of
		// their code, following binds) declares that name on its '@' line.
		for i := range s.Board.Statuses.All() {
			st := s.Board.Statuses.Get(i)
			if i == act.SourceIndex || st == nil || st.Locked {
				continue
			}
			if !strings.EqualFold(objectNameOf(s.codeBytes(i)), act.Receiver) {
				continue
			}
			report.merge(LabelOperationApplier(s, i, act.Op))
		}
	}
	return report
}

// codeBytes resolves a status's code-source reference chain to the owned
// bytes, used only to gate broadcasts by object name.
func (s *Sim) codeBytes(idx int) []byte {
	st := s.Board.Statuses.Get(idx)
	for depth := 0; st != nil && st.Code.IsRef() && depth < 32; depth++ {
		st = s.Board.Statuses.Get(st.Code.Ref)
	}
	if st == nil {
		return nil
	}
	return st.Code.Code
}

func objectNameOf(code []byte) string {
	if len(code) == 0 || code[0] != '@' {
		return ""
	}
	end := 1
	for end < len(code) && code[end] != '\r' {
		end++
	}
	title := strings.TrimSpace(string(code[1:end]))
	if sp := strings.IndexAny(title, " \t"); sp >= 0 {
		return title[:sp]
	}
	return title
}
