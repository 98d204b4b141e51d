// Package behaviour implements the per-element-kind behaviour table
// (spec.md §4.2): one record per element exposing step/push/damage plus the
// blocking/destructible/conveyable predicates. Dispatch goes through a map
// from sim.Element to a sim.Behaviour interface value, built once by
// NewTable; each call is a method call on that interface value.
package behaviour

import "github.com/zztstep/engine/internal/sim"

// Default is both the fallback for unknown kinds (spec.md §4.2 Defaults:
// "fully blocking, non-destructible, non-conveyable, and inert on step")
// and the embeddable base every concrete behaviour starts from, overriding
// only what differs.
type Default struct{}

func (Default) Step(ev sim.Event, status *sim.StatusElement, index int, s *sim.Sim) []sim.Action {
	return nil
}

func (Default) Push(at sim.Point, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	return sim.PushResult{Blocked: true}
}

func (Default) Damage(at sim.Point, cause sim.DamageCause, s *sim.Sim) ([]sim.Action, bool) {
	return nil, false
}

func (Default) Blocked(isPlayer bool) bool        { return true }
func (Default) BlockedForBullets() bool           { return true }
func (Default) Destructible() bool                { return false }
func (Default) Conveyable() bool                  { return false }
func (Default) CanSquash() bool                   { return false }
func (Default) CanBeSquashed() bool               { return false }
func (Default) Locked(status *sim.StatusElement) bool {
	if status == nil {
		return false
	}
	return status.Locked
}

// passable is the base for elements that never block movement or bullets
// (empty space, fake walls once revealed, text, etc).
type passable struct{ Default }

func (passable) Blocked(bool) bool          { return false }
func (passable) BlockedForBullets() bool    { return false }
func (passable) Push(at sim.Point, delta sim.Point, byPlayer bool, s *sim.Sim) sim.PushResult {
	return sim.PushResult{Blocked: false}
}
