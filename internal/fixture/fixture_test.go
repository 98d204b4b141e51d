package fixture

import (
	"testing"

	"github.com/zztstep/engine/internal/sim"
)

const sampleYAML = `
name: test room
rows:
  - "#####"
  - "#P.K#"
  - "#.#.#"
  - "#D..#"
  - "#####"
legend:
  K: key
  D: door
objects:
  - at: [3, 2]
    element: object
    code: "@Guard\r#end\r"
    cycle: 2
meta:
  dark: true
  time_limit_secs: 60
`

func TestParseDecodesRowsAndObjects(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Name != "test room" {
		t.Fatalf("name: got %q", doc.Name)
	}
	if len(doc.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(doc.Rows))
	}
	if len(doc.Objects) != 1 || doc.Objects[0].Element != "object" {
		t.Fatalf("expected one object doc, got %+v", doc.Objects)
	}
	if !doc.Meta.Dark || doc.Meta.TimeLimitSecs != 60 {
		t.Fatalf("meta not decoded: %+v", doc.Meta)
	}
}

func TestBuildPlacesGlyphsAndKeepsTheDeclaredPlayer(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if b.Grid.At(sim.Point{X: 2, Y: 2}).Element != sim.ElementPlayer {
		t.Errorf("expected player glyph to place ElementPlayer at (2,2)")
	}
	if b.Grid.At(sim.Point{X: 4, Y: 2}).Element != sim.ElementKey {
		t.Errorf("expected K legend entry to place a key")
	}
	if b.Grid.At(sim.Point{X: 2, Y: 4}).Element != sim.ElementDoor {
		t.Errorf("expected D legend entry to place a door")
	}
	if b.Grid.At(sim.Point{X: 1, Y: 1}).Element != sim.ElementSolid {
		t.Errorf("expected # glyph to place a solid wall")
	}

	playerCount := 0
	for i := 0; i < b.Statuses.Len(); i++ {
		if b.Grid.At(b.Statuses.Get(i).Location).Element == sim.ElementPlayer {
			playerCount++
		}
	}
	if playerCount != 1 {
		t.Fatalf("expected exactly one player status, got %d", playerCount)
	}
}

func TestBuildPlacesScriptedObjectRunnableFromCursorZero(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	found := false
	for i := 0; i < b.Statuses.Len(); i++ {
		st := b.Statuses.Get(i)
		if st.Location == (sim.Point{X: 3, Y: 2}) {
			found = true
			if st.Cursor != 0 {
				t.Errorf("expected scripted object to start runnable, got cursor %d", st.Cursor)
			}
			if st.Cycle != 2 {
				t.Errorf("expected declared cycle to carry over, got %d", st.Cycle)
			}
		}
	}
	if !found {
		t.Fatal("expected the declared object status at its configured position")
	}
}

func TestBuildWithoutPlayerGlyphSynthesizesOne(t *testing.T) {
	doc, err := Parse([]byte("name: empty\nrows:\n  - \"...\"\n  - \"...\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.Grid.At(sim.Point{X: 1, Y: 1}).Element != sim.ElementPlayer {
		t.Fatal("expected a synthesized player at (1,1) when the fixture omits one")
	}
}
