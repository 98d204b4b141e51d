// Package worldfile implements the bit-shaped binary codec of spec.md §6
// Persisted state layout: a fixed-size world header, length-prefixed
// board records with run-length-encoded tiles, and fixed-size status
// records with a signed code-length tag for owned-vs-shared script code.
// Grounded on the teacher's internal/persist wire-codec discipline
// (explicit, hand-rolled binary.Read/Write with no reflection) and on
// original_source/ruzzt's world-file reader for field order and sizes.
package worldfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zztstep/engine/internal/sim"
)

const (
	worldNameFieldLen = 21 // 1 length byte + 20 data bytes
	flagNameFieldLen  = 21
	boardNameFieldLen = 51
	boardMessageLen   = 58
	statusRecordLen   = 33
	numFlags          = sim.FlagSlots
)

var order = binary.LittleEndian

func writePascalString(w io.Writer, s string, fieldLen int) error {
	b := encodeCP437(s)
	if len(b) > fieldLen-1 {
		b = b[:fieldLen-1]
	}
	buf := make([]byte, fieldLen)
	buf[0] = byte(len(b))
	copy(buf[1:], b)
	_, err := w.Write(buf)
	return err
}

func readPascalString(r io.Reader, fieldLen int) (string, error) {
	buf := make([]byte, fieldLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	n := int(buf[0])
	if n > fieldLen-1 {
		n = fieldLen - 1
	}
	return decodeCP437(buf[1 : 1+n]), nil
}

func writeFixedString(w io.Writer, s string, fieldLen int) error {
	b := encodeCP437(s)
	buf := make([]byte, fieldLen)
	copy(buf, b)
	_, err := w.Write(buf)
	return err
}

func readFixedString(r io.Reader, fieldLen int) (string, error) {
	buf := make([]byte, fieldLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	end := len(buf)
	for end > 0 && buf[end-1] == 0 {
		end--
	}
	return decodeCP437(buf[:end]), nil
}

func writeInt16(w io.Writer, v int) error { return binary.Write(w, order, int16(v)) }

func readInt16(r io.Reader) (int, error) {
	var v int16
	if err := binary.Read(r, order, &v); err != nil {
		return 0, err
	}
	return int(v), nil
}

func writeByte(w io.Writer, v int) error {
	_, err := w.Write([]byte{byte(v)})
	return err
}

func readByte(r io.Reader) (int, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int(b[0]), nil
}

func writeBool(w io.Writer, v bool) error {
	if v {
		return writeByte(w, 1)
	}
	return writeByte(w, 0)
}

func readBool(r io.Reader) (bool, error) {
	v, err := readByte(r)
	return v != 0, err
}

// WriteWorld serialises w in the original binary layout.
func WriteWorld(out io.Writer, w *sim.World) error {
	if err := writeHeader(out, w); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, b := range w.Boards {
		var buf bytes.Buffer
		if err := writeBoard(&buf, b); err != nil {
			return fmt.Errorf("write board %d: %w", i, err)
		}
		if err := writeInt16(out, buf.Len()); err != nil {
			return err
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// ReadWorld parses a world-file previously produced by WriteWorld.
func ReadWorld(in io.Reader) (*sim.World, error) {
	w, boardCount, err := readHeader(in)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := 0; i < boardCount; i++ {
		size, err := readInt16(in)
		if err != nil {
			return nil, fmt.Errorf("read board %d size: %w", i, err)
		}
		buf := make([]byte, size)
		if _, err := io.ReadFull(in, buf); err != nil {
			return nil, fmt.Errorf("read board %d: %w", i, err)
		}
		b, err := readBoard(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("parse board %d: %w", i, err)
		}
		w.Boards = append(w.Boards, b)
	}
	return w, nil
}
