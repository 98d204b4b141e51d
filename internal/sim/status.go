package sim

// CodeSource is a tagged variant: either this status owns its code bytes,
// or it shares code owned by another status (Ref >= 0 names that status's
// index). Represented as a struct rather than an interface. The zero value
// has Ref 0 and so reads as a reference to status 0; OwnedCode and RefCode
// build the two variants, and NewStatus starts with owned, empty code.
type CodeSource struct {
	Ref  int // -1 when Owned is authoritative
	Code []byte
}

func OwnedCode(code []byte) CodeSource { return CodeSource{Ref: -1, Code: code} }
func RefCode(index int) CodeSource     { return CodeSource{Ref: index} }

func (c CodeSource) IsRef() bool { return c.Ref >= 0 }

// StatusElement is an active simulation record anchored to a tile.
type StatusElement struct {
	Location Point
	Step     Point
	Cycle    int // >=0; 0 means never step
	Param1   uint8
	Param2   uint8
	Param3   uint8
	Follower int // -1 absent, -2 orphaned segment, else valid index
	Leader   int

	UnderElement Element
	UnderColour  uint8

	Code   CodeSource
	Cursor int // byte offset into resolved code, or -1 meaning halted

	// Locked mirrors the original's per-status lock bit: a locked status's
	// script cannot be pushed/damaged into jumping (used by #lock/#unlock).
	Locked bool
}

func NewStatus(loc Point) *StatusElement {
	return &StatusElement{
		Location: loc,
		Follower: -1,
		Leader:   -1,
		Code:     OwnedCode(nil),
		Cursor:   -1,
	}
}

// StatusList owns the status slice for one board and implements the
// removal remap rules of spec.md §3's Lifecycles paragraph.
type StatusList struct {
	items []*StatusElement
}

func NewStatusList() *StatusList { return &StatusList{} }

func (l *StatusList) Len() int                 { return len(l.items) }
func (l *StatusList) Get(i int) *StatusElement {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}
func (l *StatusList) Append(s *StatusElement) int {
	l.items = append(l.items, s)
	return len(l.items) - 1
}

func (l *StatusList) All() []*StatusElement { return l.items }

// remapIndex applies the decrement-above/-1-on-equal rule for a single
// removed index.
func remapIndex(idx, removed int) int {
	switch {
	case idx < 0:
		return idx // -1, -2 pass through unchanged
	case idx == removed:
		return -1
	case idx > removed:
		return idx - 1
	default:
		return idx
	}
}

// Remove deletes the status at idx and remaps every follower/leader/code-ref
// index across the remaining list. If the removed status owned code that
// other statuses reference, ownership migrates to the first remaining
// binder (spec.md §4.2 Binding; §9 Cyclic code sharing).
func (l *StatusList) Remove(idx int) {
	if idx < 0 || idx >= len(l.items) {
		return
	}
	removed := l.items[idx]
	if !removed.Code.IsRef() {
		// Find the first remaining status whose Code.Ref == idx.
		firstBinder := -1
		for i, s := range l.items {
			if i == idx {
				continue
			}
			if s.Code.IsRef() && s.Code.Ref == idx {
				firstBinder = i
				break
			}
		}
		if firstBinder >= 0 {
			owner := l.items[firstBinder]
			owner.Code = OwnedCode(removed.Code.Code)
			for i, s := range l.items {
				if i == idx || i == firstBinder {
					continue
				}
				if s.Code.IsRef() && s.Code.Ref == idx {
					s.Code = RefCode(firstBinder)
				}
			}
		}
	}

	l.items = append(l.items[:idx], l.items[idx+1:]...)

	for _, s := range l.items {
		s.Follower = remapIndex(s.Follower, idx)
		s.Leader = remapIndex(s.Leader, idx)
		if s.Code.IsRef() {
			s.Code.Ref = remapIndex(s.Code.Ref, idx)
		}
	}
}
