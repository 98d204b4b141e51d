package worldfile

import (
	"golang.org/x/text/encoding/charmap"
)

// Strings in a world-file are DOS code page 437, not UTF-8 (spec.md §6
// Persisted state layout). golang.org/x/text carries the transcoding so
// titles, flag names and messages round-trip through the original
// engine's character set instead of mangling box-drawing glyphs.
var cp437Encoder = charmap.CodePage437.NewEncoder()
var cp437Decoder = charmap.CodePage437.NewDecoder()

func encodeCP437(s string) []byte {
	b, err := cp437Encoder.Bytes([]byte(s))
	if err != nil {
		// A string with any character outside CP437 is written as all '?',
		// one per byte of its UTF-8 form, rather than failing the whole
		// write (spec.md §7 treats world-byte shape errors only as
		// load-time failures, not save-time ones).
		out := make([]byte, len(s))
		for i := range out {
			out[i] = '?'
		}
		return out
	}
	return b
}

func decodeCP437(b []byte) string {
	s, err := cp437Decoder.Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
