// Package fixture loads small hand-written YAML test boards so behaviour
// and scheduler tests can describe a scene as ASCII art plus a legend
// instead of poking at sim.Grid cell by cell. Grounded on the teacher's
// own test-fixture style (YAML-described seed data for integration tests)
// generalized from account/item rows to board rows.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zztstep/engine/internal/sim"
)

// Doc is the top-level YAML shape a fixture file parses into.
type Doc struct {
	Name    string            `yaml:"name"`
	Rows    []string          `yaml:"rows"`
	Legend  map[string]string `yaml:"legend"`
	Objects []ObjectDoc       `yaml:"objects"`
	Meta    MetaDoc           `yaml:"meta"`
}

// ObjectDoc places a scripted object/scroll with its code at a cell,
// overriding whatever the legend put there.
type ObjectDoc struct {
	At      [2]int `yaml:"at"`
	Element string `yaml:"element"`
	Code    string `yaml:"code"`
	Cycle   int    `yaml:"cycle"`
}

// MetaDoc carries the handful of board metadata fields a test scene
// typically needs to set explicitly.
type MetaDoc struct {
	Dark          bool   `yaml:"dark"`
	RestartOnZap  bool   `yaml:"restart_on_zap"`
	TimeLimitSecs int    `yaml:"time_limit_secs"`
	Message       string `yaml:"message"`
}

// Parse decodes a fixture document from YAML bytes.
func Parse(data []byte) (*Doc, error) {
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &doc, nil
}

// Build turns a parsed Doc into a live sim.Board. Row 0, column 0 maps to
// board cell (1,1); rows shorter than the widest row are treated as
// trailing empty cells.
func Build(doc *Doc) (*sim.Board, error) {
	b := &sim.Board{
		Meta: sim.BoardMeta{
			Name:          doc.Name,
			MaxPlayerShots: 255,
			IsDark:        doc.Meta.Dark,
			RestartOnZap:  doc.Meta.RestartOnZap,
			TimeLimitSecs: doc.Meta.TimeLimitSecs,
			Message:       doc.Meta.Message,
			ExitNorth:     -1,
			ExitSouth:     -1,
			ExitEast:      -1,
			ExitWest:      -1,
		},
		Grid:     sim.NewGrid(),
		Statuses: sim.NewStatusList(),
	}

	for y, row := range doc.Rows {
		if y >= sim.BoardHeight {
			return nil, fmt.Errorf("fixture %q has more than %d rows", doc.Name, sim.BoardHeight)
		}
		for x, ch := range row {
			if x >= sim.BoardWidth {
				return nil, fmt.Errorf("fixture %q row %d has more than %d columns", doc.Name, y, sim.BoardWidth)
			}
			elem, ok := elementByGlyph(doc.Legend, string(ch))
			if !ok {
				continue
			}
			p := sim.Point{X: x + 1, Y: y + 1}
			b.Grid.SetAt(p, sim.Tile{Element: elem, Colour: 0x1F})
			if elem == sim.ElementPlayer {
				b.Statuses.Append(sim.NewStatus(p))
			} else if needsStatus(elem) {
				st := sim.NewStatus(p)
				b.Statuses.Append(st)
			}
		}
	}

	for _, od := range doc.Objects {
		elem, ok := elementByName(od.Element)
		if !ok {
			return nil, fmt.Errorf("fixture %q: unknown object element %q", doc.Name, od.Element)
		}
		p := sim.Point{X: od.At[0], Y: od.At[1]}
		b.Grid.SetAt(p, sim.Tile{Element: elem, Colour: 0x1F})
		st := sim.NewStatus(p)
		st.Code = sim.OwnedCode([]byte(od.Code))
		st.Cursor = 0 // runnable from its first byte, unlike the halted default
		st.Cycle = od.Cycle
		if st.Cycle == 0 {
			st.Cycle = 1
		}
		b.Statuses.Append(st)
	}

	hasPlayer := false
	for i := 0; i < b.Statuses.Len(); i++ {
		if b.Grid.At(b.Statuses.Get(i).Location).Element == sim.ElementPlayer {
			hasPlayer = true
			break
		}
	}
	if !hasPlayer {
		// A fixture that omits a player glyph still needs one, and the
		// simulation looks the player up as status 0, so the synthesized
		// player goes to the front of the status list.
		player := sim.NewStatus(sim.Point{X: 1, Y: 1})
		b.Grid.SetAt(player.Location, sim.Tile{Element: sim.ElementPlayer, Colour: 0x1F})
		rest := b.Statuses.All()
		b.Statuses = sim.NewStatusList()
		b.Statuses.Append(player)
		for _, st := range rest {
			b.Statuses.Append(st)
		}
	}

	return b, nil
}

// BuildWorld wraps Build into a single-board World with default header
// values, convenient for behaviour/scheduler tests that need a *sim.Sim.
func BuildWorld(doc *Doc) (*sim.World, error) {
	b, err := Build(doc)
	if err != nil {
		return nil, err
	}
	w := &sim.World{
		Header: sim.WorldHeader{
			Title:  doc.Name,
			Health: 100,
			Ammo:   0,
		},
		Boards: []*sim.Board{b},
	}
	return w, nil
}

func needsStatus(e sim.Element) bool {
	switch e {
	case sim.ElementBullet, sim.ElementBear, sim.ElementRuffian, sim.ElementLion, sim.ElementTiger,
		sim.ElementShark, sim.ElementSlime, sim.ElementSpinningGun, sim.ElementPusher, sim.ElementHead,
		sim.ElementSegment, sim.ElementBoulder, sim.ElementBomb, sim.ElementStar, sim.ElementTransporter,
		sim.ElementBlinkWall, sim.ElementClockwise, sim.ElementCounter, sim.ElementDuplicator:
		return true
	default:
		return false
	}
}

func elementByGlyph(legend map[string]string, glyph string) (sim.Element, bool) {
	if glyph == "." || glyph == " " {
		return sim.ElementEmpty, true
	}
	if glyph == "#" {
		return sim.ElementSolid, true
	}
	if glyph == "P" {
		return sim.ElementPlayer, true
	}
	if name, ok := legend[glyph]; ok {
		return elementByName(name)
	}
	return sim.ElementEmpty, false
}

var nameToElement = map[string]sim.Element{
	"empty": sim.ElementEmpty, "player": sim.ElementPlayer, "ammo": sim.ElementAmmo,
	"torch": sim.ElementTorch, "gem": sim.ElementGem, "key": sim.ElementKey, "door": sim.ElementDoor,
	"scroll": sim.ElementScroll, "passage": sim.ElementPassage, "duplicator": sim.ElementDuplicator,
	"bomb": sim.ElementBomb, "energizer": sim.ElementEnergizer, "star": sim.ElementStar,
	"clockwise": sim.ElementClockwise, "counter": sim.ElementCounter, "bullet": sim.ElementBullet,
	"water": sim.ElementWater, "forest": sim.ElementForest, "solid": sim.ElementSolid,
	"normal": sim.ElementNormal, "breakable": sim.ElementBreakable, "boulder": sim.ElementBoulder,
	"slider_ns": sim.ElementSliderNS, "slider_ew": sim.ElementSliderEW, "fake": sim.ElementFake,
	"invisible": sim.ElementInvisible, "blink_wall": sim.ElementBlinkWall, "transporter": sim.ElementTransporter,
	"line": sim.ElementLine, "ricochet": sim.ElementRicochet, "blink_ray_h": sim.ElementBlinkRayH,
	"blink_ray_v": sim.ElementBlinkRayV, "bear": sim.ElementBear, "ruffian": sim.ElementRuffian,
	"object": sim.ElementObject, "slime": sim.ElementSlime, "shark": sim.ElementShark,
	"spinning_gun": sim.ElementSpinningGun, "pusher": sim.ElementPusher, "lion": sim.ElementLion,
	"tiger": sim.ElementTiger, "head": sim.ElementHead, "segment": sim.ElementSegment,
	"text": sim.ElementText, "board_edge": sim.ElementBoardEdge,
}

func elementByName(name string) (sim.Element, bool) {
	e, ok := nameToElement[name]
	return e, ok
}
