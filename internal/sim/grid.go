package sim

// Board tiles occupy (1..BoardWidth)x(1..BoardHeight) of the grid; the rest
// of GridWidth/GridHeight is the immutable board-edge sentinel border.
const (
	BoardWidth  = 60
	BoardHeight = 25
	GridWidth   = BoardWidth + 2
	GridHeight  = BoardHeight + 2
)

// Element kinds. Only the set the behaviour table and script interpreter
// need to name individually are enumerated; everything else is data-driven
// through Tile.Element as a plain byte matching the persisted format.
type Element uint8

const (
	ElementEmpty Element = iota
	ElementBoardEdge
	ElementPlayer
	ElementAmmo
	ElementTorch
	ElementGem
	ElementKey
	ElementDoor
	ElementScroll
	ElementPassage
	ElementDuplicator
	ElementBomb
	ElementEnergizer
	ElementStar
	ElementClockwise
	ElementCounter // counter-clockwise
	ElementBullet
	ElementWater
	ElementForest
	ElementSolid
	ElementNormal
	ElementBreakable
	ElementBoulder
	ElementSliderNS
	ElementSliderEW
	ElementFake
	ElementInvisible
	ElementBlinkWall
	ElementTransporter
	ElementLine
	ElementRicochet
	ElementBlinkRayH
	ElementBlinkRayV
	ElementBear
	ElementRuffian
	ElementObject
	ElementSlime
	ElementShark
	ElementSpinningGun
	ElementPusher
	ElementLion
	ElementTiger
	ElementHead // centipede head
	ElementSegment
	ElementText
)

// Tile is a grid cell's visible content.
type Tile struct {
	Element Element
	Colour  uint8 // high nibble background (>=8 blinking), low nibble foreground
}

var edgeTile = Tile{Element: ElementBoardEdge, Colour: 0}
var emptyTile = Tile{Element: ElementEmpty, Colour: 0x0F}

// Grid is the fixed 62x27 simulation surface.
type Grid struct {
	cells [GridHeight][GridWidth]Tile
}

func NewGrid() *Grid {
	g := &Grid{}
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			if x == 0 || y == 0 || x == GridWidth-1 || y == GridHeight-1 {
				g.cells[y][x] = edgeTile
			} else {
				g.cells[y][x] = emptyTile
			}
		}
	}
	return g
}

// InBounds reports whether (x,y) addresses a real grid cell, including the
// sentinel border.
func InBounds(x, y int) bool {
	return x >= 0 && x < GridWidth && y >= 0 && y < GridHeight
}

// Get returns the board-edge tile for any out-of-bounds coordinate, so
// callers never need a separate bounds check before reading.
func (g *Grid) Get(x, y int) Tile {
	if !InBounds(x, y) {
		return edgeTile
	}
	return g.cells[y][x]
}

// Set silently no-ops outside the grid (spec §4.1 error conditions) and
// always refuses to overwrite the sentinel border.
func (g *Grid) Set(x, y int, t Tile) {
	if !InBounds(x, y) || x == 0 || y == 0 || x == GridWidth-1 || y == GridHeight-1 {
		return
	}
	g.cells[y][x] = t
}

func (g *Grid) At(p Point) Tile    { return g.Get(p.X, p.Y) }
func (g *Grid) SetAt(p Point, t Tile) { g.Set(p.X, p.Y, t) }
