package sound

import "testing"

func TestCompileDefaultsToQuarterNoteAtOctaveFour(t *testing.T) {
	notes := Compile("c")
	if len(notes) != 1 {
		t.Fatalf("expected one note, got %d", len(notes))
	}
	want := uint8(4*16 + scaleIndex['c'])
	if notes[0].Code != want || notes[0].Length != durationClass['q'] {
		t.Fatalf("got %+v, want code=%d length=%d", notes[0], want, durationClass['q'])
	}
}

func TestCompileOctaveShiftClamps(t *testing.T) {
	notes := Compile("------c++++++++c")
	if len(notes) != 2 {
		t.Fatalf("expected two notes, got %d", len(notes))
	}
	if notes[0].Code != uint8(1*16+scaleIndex['c']) {
		t.Fatalf("expected octave clamped to 1, got code %d", notes[0].Code)
	}
	if notes[1].Code != uint8(6*16+scaleIndex['c']) {
		t.Fatalf("expected octave clamped to 6, got code %d", notes[1].Code)
	}
}

func TestCompileDurationModifiers(t *testing.T) {
	notes := Compile("w3.x")
	if len(notes) != 1 || !notes[0].Rest {
		t.Fatalf("expected a single rest note, got %+v", notes)
	}
	base := durationClass['w'] / 3
	want := base + base/2
	if notes[0].Length != want {
		t.Fatalf("got length %d, want %d", notes[0].Length, want)
	}
}

func TestCompileDigitIsEffectCode(t *testing.T) {
	notes := Compile("5")
	if len(notes) != 1 || notes[0].Code != 245 {
		t.Fatalf("expected effect code 245, got %+v", notes)
	}
}

func TestCompileSkipsUnknownCharacters(t *testing.T) {
	notes := Compile("c!?z c")
	if len(notes) != 2 {
		t.Fatalf("expected unknown characters to be skipped, got %d notes", len(notes))
	}
}
