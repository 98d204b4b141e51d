package worldfile

import (
	"io"

	"github.com/zztstep/engine/internal/sim"
)

const worldTypeClassic = -1

func writeHeader(w io.Writer, world *sim.World) error {
	h := world.Header
	if err := writeInt16(w, worldTypeClassic); err != nil {
		return err
	}
	if err := writeInt16(w, len(world.Boards)); err != nil {
		return err
	}
	if err := writePascalString(w, h.Title, worldNameFieldLen); err != nil {
		return err
	}
	fields := []int{h.Ammo, h.Gems, h.Health, h.CurrentBoard, h.Torches, h.TorchCycles, h.EnergyCycles, h.Score}
	for _, f := range fields {
		if err := writeInt16(w, f); err != nil {
			return err
		}
	}
	for _, k := range h.Keys {
		if err := writeBool(w, k); err != nil {
			return err
		}
	}
	for i := 0; i < numFlags; i++ {
		if err := writePascalString(w, h.Flags[i], flagNameFieldLen); err != nil {
			return err
		}
	}
	if err := writeInt16(w, h.TimeElapsedSeconds); err != nil {
		return err
	}
	if err := writeInt16(w, h.Centiticks); err != nil {
		return err
	}
	if err := writeInt16(w, 0); err != nil { // reserved third time field
		return err
	}
	return writeBool(w, false) // locked flag, unused by this engine
}

func readHeader(r io.Reader) (*sim.World, int, error) {
	if _, err := readInt16(r); err != nil { // world type, not interpreted
		return nil, 0, err
	}
	boardCount, err := readInt16(r)
	if err != nil {
		return nil, 0, err
	}
	title, err := readPascalString(r, worldNameFieldLen)
	if err != nil {
		return nil, 0, err
	}
	h := sim.WorldHeader{Title: title}
	ints := make([]*int, 0, 8)
	ints = append(ints, &h.Ammo, &h.Gems, &h.Health, &h.CurrentBoard, &h.Torches, &h.TorchCycles, &h.EnergyCycles, &h.Score)
	for _, p := range ints {
		v, err := readInt16(r)
		if err != nil {
			return nil, 0, err
		}
		*p = v
	}
	for i := range h.Keys {
		v, err := readBool(r)
		if err != nil {
			return nil, 0, err
		}
		h.Keys[i] = v
	}
	for i := 0; i < numFlags; i++ {
		v, err := readPascalString(r, flagNameFieldLen)
		if err != nil {
			return nil, 0, err
		}
		h.Flags[i] = v
	}
	if h.TimeElapsedSeconds, err = readInt16(r); err != nil {
		return nil, 0, err
	}
	if h.Centiticks, err = readInt16(r); err != nil {
		return nil, 0, err
	}
	if _, err := readInt16(r); err != nil { // reserved
		return nil, 0, err
	}
	if _, err := readBool(r); err != nil { // locked flag
		return nil, 0, err
	}
	return &sim.World{Header: h}, boardCount, nil
}
