package script

import "github.com/zztstep/engine/internal/sim"

// Wire installs this package's label-operation applier into sim.Apply's
// injection point, avoiding a sim -> script import (sim must stay free of
// the interpreter so behaviour can import it one-way). Call once during
// engine construction.
func Wire() {
	sim.LabelOperationApplier = applyLabelOperation
}

// applyLabelOperation runs a single jump/zap/restore against one target
// status, used both for "myself" sends and for broadcast fan-out
// (spec.md §4.3 Broadcasts).
func applyLabelOperation(s *sim.Sim, targetIndex int, op sim.LabelOperation) sim.ActionReport {
	status := s.Board.Statuses.Get(targetIndex)
	if status == nil {
		return sim.ActionReport{MinRemovedIndex: -1}
	}

	codeOwner := targetIndex
	cur := status
	for depth := 0; cur.Code.IsRef() && depth < maxCodeRefDepth; depth++ {
		codeOwner = cur.Code.Ref
		next := s.Board.Statuses.Get(codeOwner)
		if next == nil {
			return sim.ActionReport{MinRemovedIndex: -1}
		}
		cur = next
	}
	code := cur.Code.Code

	switch op.Kind {
	case sim.LabelJump:
		if c, ok := jumpToLabel(code, op.Label); ok {
			return s.Apply(sim.SetCursor{Index: targetIndex, Cursor: c})
		}
	case sim.LabelZap:
		return s.Apply(sim.SetCode{Index: codeOwner, Code: zapLabel(code, op.Label)})
	case sim.LabelRestore:
		receiver := op.Receiver
		if receiver == "" {
			receiver = op.Label
		}
		return s.Apply(sim.SetCode{Index: codeOwner, Code: restoreLabel(code, op.Label, receiver)})
	}
	return sim.ActionReport{MinRemovedIndex: -1}
}
