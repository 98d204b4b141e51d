// Package sound compiles the note-string mini-language (spec.md §6
// Sound-note format) into sim.SoundNote entries for a play-sound-array
// board-message. Grounded on original_source/ruzzt's sound compiler,
// which this package reproduces letter-for-letter.
package sound

import "github.com/zztstep/engine/internal/sim"

// durationClass maps a class letter to a length-multiplier, expressed in
// 32nds-of-a-whole-note units (t=1/32 ... w=32/32).
var durationClass = map[byte]int{
	't': 1,
	's': 2,
	'i': 4,
	'q': 8,
	'h': 16,
	'w': 32,
}

// scaleIndex maps a..g to the note's position within the sound-code table.
var scaleIndex = map[byte]int{
	'c': 9, 'd': 11, 'e': 0, 'f': 2, 'g': 4, 'a': 5, 'b': 7,
}

// Compile turns a note string into the engine's closed sound-note
// representation. Unknown characters are skipped, not errors (spec.md §7).
func Compile(notes string) []sim.SoundNote {
	var out []sim.SoundNote
	octave := 4
	length := durationClass['q']

	i := 0
	for i < len(notes) {
		c := notes[i]
		switch {
		case c == '+':
			if octave < 6 {
				octave++
			}
		case c == '-':
			if octave > 1 {
				octave--
			}
		case durationClass[c] != 0:
			length = durationClass[c]
			i++
			for i < len(notes) && (notes[i] == '3' || notes[i] == '.') {
				if notes[i] == '3' {
					length /= 3
				} else {
					length += length / 2
				}
				i++
			}
			continue
		case c == 'x':
			out = append(out, sim.SoundNote{Rest: true, Length: length})
		case c >= '0' && c <= '9':
			out = append(out, sim.SoundNote{Code: 240 + (c - '0'), Length: length})
		case isPitch(c):
			idx := scaleIndex[c]
			if i+1 < len(notes) && (notes[i+1] == '#' || notes[i+1] == '!') {
				i++
			}
			out = append(out, sim.SoundNote{Code: uint8(octave*16 + idx), Length: length})
		}
		i++
	}
	return out
}

func isPitch(c byte) bool {
	_, ok := scaleIndex[c]
	return ok
}
