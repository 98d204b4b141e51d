package worldfile

import (
	"bytes"
	"testing"
)

func TestHighscoreRoundTrip(t *testing.T) {
	scores := []Highscore{
		{Name: "ZEUS", Score: 9000},
		{Name: "BILL", Score: 120},
	}

	var buf bytes.Buffer
	if err := WriteHighscores(&buf, scores); err != nil {
		t.Fatalf("WriteHighscores: %v", err)
	}

	got, err := ReadHighscores(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadHighscores: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(got), got)
	}
	if got[0] != scores[0] || got[1] != scores[1] {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, scores)
	}
}

func TestHighscoreTableIsExactly30SlotsOf53Bytes(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHighscores(&buf, nil); err != nil {
		t.Fatalf("WriteHighscores: %v", err)
	}
	const slotLen = highscoreNameFieldLen + 2 // name field + int16 score
	if buf.Len() != highscoreSlotCount*slotLen {
		t.Fatalf("expected %d bytes for an empty table, got %d", highscoreSlotCount*slotLen, buf.Len())
	}

	got, err := ReadHighscores(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadHighscores: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries in an empty table, got %+v", got)
	}
}

func TestHighscoreNameLongerThan50BytesIsTruncated(t *testing.T) {
	long := bytes.Repeat([]byte("X"), 80)
	var buf bytes.Buffer
	if err := WriteHighscores(&buf, []Highscore{{Name: string(long), Score: 5}}); err != nil {
		t.Fatalf("WriteHighscores: %v", err)
	}

	got, err := ReadHighscores(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadHighscores: %v", err)
	}
	if len(got) != 1 || len(got[0].Name) != 50 {
		t.Fatalf("expected the name to truncate to 50 bytes, got %+v", got)
	}
}
