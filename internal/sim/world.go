package sim

const (
	FlagSlots = 10
	NumKeys   = 7
)

// PlayerItemType names the world-header counters that modify-player-item
// mutates.
type PlayerItemType int

const (
	ItemAmmo PlayerItemType = iota
	ItemTorches
	ItemGems
	ItemHealth
	ItemScore
	ItemTimeSeconds
)

// WorldHeader carries the counters and inventories that persist across
// boards.
type WorldHeader struct {
	Title string

	Health  int
	Ammo    int
	Gems    int
	Score   int
	Torches int

	EnergyCycles int
	TorchCycles  int

	Keys [NumKeys]bool

	TimeElapsedSeconds int
	Centiticks         int // sub-second, modulo 6000

	Flags [FlagSlots]string // uppercase short tokens; "" = unused

	CurrentBoard int
}

// FirstEmptyFlagSlot returns the index of the first unused flag slot, or -1.
func (w *WorldHeader) FirstEmptyFlagSlot() int {
	for i, f := range w.Flags {
		if f == "" {
			return i
		}
	}
	return -1
}

// LastMatchingFlag returns the index of the last slot holding name
// (case-sensitive, name assumed already uppercased by the caller), or -1.
func (w *WorldHeader) LastMatchingFlag(name string) int {
	for i := len(w.Flags) - 1; i >= 0; i-- {
		if w.Flags[i] == name {
			return i
		}
	}
	return -1
}

// BoardMeta is a board's persisted metadata (everything but tiles/statuses).
type BoardMeta struct {
	Name            string
	MaxPlayerShots  uint8
	IsDark          bool
	ExitNorth       int
	ExitSouth       int
	ExitEast        int
	ExitWest        int
	RestartOnZap    bool
	Message         string
	PlayerEnterX    int
	PlayerEnterY    int
	CameraX         int // Super ZZT only; round-tripped, not interpreted
	CameraY         int
	TimeLimitSecs   int // 0 = no limit
}

// Board is one playable screen: its metadata, the live tile grid and the
// status list driving it.
type Board struct {
	Meta     BoardMeta
	Grid     *Grid
	Statuses *StatusList
}

func NewBoard(name string) *Board {
	b := &Board{
		Meta:     BoardMeta{Name: name, MaxPlayerShots: 255},
		Grid:     NewGrid(),
		Statuses: NewStatusList(),
	}
	player := NewStatus(Point{X: 1, Y: 1})
	b.Grid.SetAt(player.Location, Tile{Element: ElementPlayer, Colour: 0x1F})
	b.Statuses.Append(player)
	return b
}

// World is the full persisted simulation state: header plus every board.
type World struct {
	Header WorldHeader
	Boards []*Board
}

func (w *World) CurrentBoard() *Board {
	if w.Header.CurrentBoard < 0 || w.Header.CurrentBoard >= len(w.Boards) {
		return nil
	}
	return w.Boards[w.Header.CurrentBoard]
}
