package worldfile

import (
	"fmt"
	"io"

	"github.com/zztstep/engine/internal/sim"
)

func writeBoard(w io.Writer, b *sim.Board) error {
	if err := writePascalString(w, b.Meta.Name, boardNameFieldLen); err != nil {
		return err
	}
	if err := writeTiles(w, b.Grid); err != nil {
		return err
	}
	if err := writeByte(w, int(b.Meta.MaxPlayerShots)); err != nil {
		return err
	}
	if err := writeBool(w, b.Meta.IsDark); err != nil {
		return err
	}
	for _, exit := range []int{b.Meta.ExitNorth, b.Meta.ExitSouth, b.Meta.ExitEast, b.Meta.ExitWest} {
		if err := writeByte(w, exitByte(exit)); err != nil {
			return err
		}
	}
	if err := writeBool(w, b.Meta.RestartOnZap); err != nil {
		return err
	}
	if err := writeFixedString(w, b.Meta.Message, boardMessageLen); err != nil {
		return err
	}
	if err := writeByte(w, b.Meta.PlayerEnterX); err != nil {
		return err
	}
	if err := writeByte(w, b.Meta.PlayerEnterY); err != nil {
		return err
	}
	if err := writeInt16(w, b.Meta.TimeLimitSecs); err != nil {
		return err
	}
	if err := writeInt16(w, b.Meta.CameraX); err != nil {
		return err
	}
	if err := writeInt16(w, b.Meta.CameraY); err != nil {
		return err
	}
	if err := writeInt16(w, b.Statuses.Len()-1); err != nil {
		return err
	}
	for i := 0; i < b.Statuses.Len(); i++ {
		if err := writeStatus(w, b.Statuses.Get(i)); err != nil {
			return fmt.Errorf("status %d: %w", i, err)
		}
	}
	return nil
}

func readBoard(r io.Reader) (*sim.Board, error) {
	name, err := readPascalString(r, boardNameFieldLen)
	if err != nil {
		return nil, err
	}
	b := &sim.Board{Meta: sim.BoardMeta{Name: name}, Statuses: sim.NewStatusList()}
	grid, err := readTiles(r)
	if err != nil {
		return nil, err
	}
	b.Grid = grid

	maxShots, err := readByte(r)
	if err != nil {
		return nil, err
	}
	b.Meta.MaxPlayerShots = uint8(maxShots)
	if b.Meta.IsDark, err = readBool(r); err != nil {
		return nil, err
	}
	exits := make([]*int, 4)
	exits[0], exits[1], exits[2], exits[3] = &b.Meta.ExitNorth, &b.Meta.ExitSouth, &b.Meta.ExitEast, &b.Meta.ExitWest
	for _, e := range exits {
		v, err := readByte(r)
		if err != nil {
			return nil, err
		}
		*e = exitIndex(v)
	}
	if b.Meta.RestartOnZap, err = readBool(r); err != nil {
		return nil, err
	}
	if b.Meta.Message, err = readFixedString(r, boardMessageLen); err != nil {
		return nil, err
	}
	if b.Meta.PlayerEnterX, err = readByte(r); err != nil {
		return nil, err
	}
	if b.Meta.PlayerEnterY, err = readByte(r); err != nil {
		return nil, err
	}
	if b.Meta.TimeLimitSecs, err = readInt16(r); err != nil {
		return nil, err
	}
	if b.Meta.CameraX, err = readInt16(r); err != nil {
		return nil, err
	}
	if b.Meta.CameraY, err = readInt16(r); err != nil {
		return nil, err
	}
	countMinus1, err := readInt16(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i <= countMinus1; i++ {
		st, err := readStatus(r)
		if err != nil {
			return nil, fmt.Errorf("status %d: %w", i, err)
		}
		b.Statuses.Append(st)
	}
	return b, nil
}

// exitByte/exitIndex encode "no exit" (-1 or out of range) as 0 and a
// board index as index+1, matching the single unsigned byte spec.md §6
// assigns to each of the four exits.
func exitByte(idx int) int {
	if idx < 0 || idx > 254 {
		return 0
	}
	return idx + 1
}

func exitIndex(b int) int {
	if b == 0 {
		return -1
	}
	return b - 1
}

// writeTiles run-length-encodes the 60x25 playable cells three bytes per
// run: length-or-256-if-zero, element, colour (spec.md §6).
func writeTiles(w io.Writer, g *sim.Grid) error {
	type cell struct{ elem sim.Element; colour uint8 }
	var runStart *cell
	runLen := 0

	flush := func() error {
		if runStart == nil {
			return nil
		}
		for runLen > 0 {
			n := runLen
			if n > 255 {
				n = 255
			}
			lenByte := n
			if n == 256 {
				lenByte = 0
			}
			if _, err := w.Write([]byte{byte(lenByte), byte(runStart.elem), runStart.colour}); err != nil {
				return err
			}
			runLen -= n
		}
		return nil
	}

	for y := 1; y <= sim.BoardHeight; y++ {
		for x := 1; x <= sim.BoardWidth; x++ {
			t := g.At(sim.Point{X: x, Y: y})
			if runStart != nil && runStart.elem == t.Element && runStart.colour == t.Colour && runLen < 255 {
				runLen++
				continue
			}
			if err := flush(); err != nil {
				return err
			}
			c := cell{elem: t.Element, colour: t.Colour}
			runStart = &c
			runLen = 1
		}
	}
	return flush()
}

func readTiles(r io.Reader) (*sim.Grid, error) {
	g := sim.NewGrid()
	x, y := 1, 1
	advance := func() {
		x++
		if x > sim.BoardWidth {
			x = 1
			y++
		}
	}
	for y <= sim.BoardHeight {
		var rec [3]byte
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, err
		}
		n := int(rec[0])
		if n == 0 {
			n = 256
		}
		t := sim.Tile{Element: sim.Element(rec[1]), Colour: rec[2]}
		for i := 0; i < n; i++ {
			if y > sim.BoardHeight {
				break
			}
			g.SetAt(sim.Point{X: x, Y: y}, t)
			advance()
		}
	}
	return g, nil
}
