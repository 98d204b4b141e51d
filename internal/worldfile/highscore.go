package worldfile

import "io"

// Highscore is one (name, score) pair in the fixed 30-entry highscore
// table (SPEC_FULL.md §5 Supplemented features).
type Highscore struct {
	Name  string
	Score int16
}

const (
	highscoreSlotCount    = 30
	highscoreNameFieldLen = 51 // 1 length byte + 50 data bytes
)

// WriteHighscores serialises up to 30 entries in the original binary shape:
// per slot, a 1-byte name length, 50 bytes of (possibly truncated,
// zero-padded) name data, then a little-endian int16 score. Unused slots
// write length 0 and score -1, matching zzt_file_format::Highscores::write.
func WriteHighscores(w io.Writer, scores []Highscore) error {
	for i := 0; i < highscoreSlotCount; i++ {
		if i < len(scores) {
			if err := writePascalString(w, scores[i].Name, highscoreNameFieldLen); err != nil {
				return err
			}
			if err := writeInt16(w, int(scores[i].Score)); err != nil {
				return err
			}
			continue
		}
		if err := writePascalString(w, "", highscoreNameFieldLen); err != nil {
			return err
		}
		if err := writeInt16(w, -1); err != nil {
			return err
		}
	}
	return nil
}

// ReadHighscores parses a highscore table previously written by
// WriteHighscores. Slots with a zero-length name are empty and omitted
// from the result, matching zzt_file_format::Highscores::parse.
func ReadHighscores(r io.Reader) ([]Highscore, error) {
	var out []Highscore
	for i := 0; i < highscoreSlotCount; i++ {
		name, err := readPascalString(r, highscoreNameFieldLen)
		if err != nil {
			return nil, err
		}
		score, err := readInt16(r)
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}
		out = append(out, Highscore{Name: name, Score: int16(score)})
	}
	return out, nil
}
