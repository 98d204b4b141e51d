package worldfile

import (
	"io"

	"github.com/zztstep/engine/internal/sim"
)

// writeStatus writes one fixed statusRecordLen record followed by a
// variable-length code blob. The trailing signed 16-bit length tag
// distinguishes owned code (positive, that many bytes follow) from a
// shared-code reference (negative, target index is -(length)-1 so that
// a reference to status 0 is still distinguishable from owned-empty).
func writeStatus(w io.Writer, s *sim.StatusElement) error {
	fields := []int{
		s.Location.X, s.Location.Y,
		s.Step.X, s.Step.Y,
		s.Cycle,
	}
	for _, f := range fields {
		if err := writeInt16(w, f); err != nil {
			return err
		}
	}
	for _, p := range []int{int(s.Param1), int(s.Param2), int(s.Param3)} {
		if err := writeByte(w, p); err != nil {
			return err
		}
	}
	if err := writeInt16(w, s.Follower); err != nil {
		return err
	}
	if err := writeInt16(w, s.Leader); err != nil {
		return err
	}
	if err := writeByte(w, int(s.UnderElement)); err != nil {
		return err
	}
	if err := writeByte(w, int(s.UnderColour)); err != nil {
		return err
	}
	if err := writeInt16(w, s.Cursor); err != nil {
		return err
	}
	if err := writeBool(w, s.Locked); err != nil {
		return err
	}

	written := 5*2 + 3 + 2*2 + 1 + 1 + 2 + 1
	if written < statusRecordLen {
		pad := make([]byte, statusRecordLen-written)
		if _, err := w.Write(pad); err != nil {
			return err
		}
	}

	if s.Code.IsRef() {
		return writeInt16(w, -(s.Code.Ref + 1))
	}
	if err := writeInt16(w, len(s.Code.Code)); err != nil {
		return err
	}
	_, err := w.Write(s.Code.Code)
	return err
}

func readStatus(r io.Reader) (*sim.StatusElement, error) {
	s := sim.NewStatus(sim.Point{})

	ints := make([]*int, 0, 5)
	ints = append(ints, &s.Location.X, &s.Location.Y, &s.Step.X, &s.Step.Y, &s.Cycle)
	for _, p := range ints {
		v, err := readInt16(r)
		if err != nil {
			return nil, err
		}
		*p = v
	}
	for _, p := range []*uint8{&s.Param1, &s.Param2, &s.Param3} {
		v, err := readByte(r)
		if err != nil {
			return nil, err
		}
		*p = uint8(v)
	}
	var err error
	if s.Follower, err = readInt16(r); err != nil {
		return nil, err
	}
	if s.Leader, err = readInt16(r); err != nil {
		return nil, err
	}
	elem, err := readByte(r)
	if err != nil {
		return nil, err
	}
	s.UnderElement = sim.Element(elem)
	colour, err := readByte(r)
	if err != nil {
		return nil, err
	}
	s.UnderColour = uint8(colour)
	if s.Cursor, err = readInt16(r); err != nil {
		return nil, err
	}
	if s.Locked, err = readBool(r); err != nil {
		return nil, err
	}

	read := 5*2 + 3 + 2*2 + 1 + 1 + 2 + 1
	if read < statusRecordLen {
		pad := make([]byte, statusRecordLen-read)
		if _, err := io.ReadFull(r, pad); err != nil {
			return nil, err
		}
	}

	tag, err := readInt16(r)
	if err != nil {
		return nil, err
	}
	if tag < 0 {
		s.Code = sim.RefCode(-tag - 1)
		return s, nil
	}
	code := make([]byte, tag)
	if tag > 0 {
		if _, err := io.ReadFull(r, code); err != nil {
			return nil, err
		}
	}
	s.Code = sim.OwnedCode(code)
	return s, nil
}
