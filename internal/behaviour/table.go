package behaviour

import "github.com/zztstep/engine/internal/sim"

// Table is the BehaviourLookup implementation wired into sim.Sim.
type Table struct {
	byElement map[sim.Element]sim.Behaviour
}

// NewTable builds the full behaviour registry. Script-driven behaviours
// (Object, Scroll) take a ScriptRunner so they can delegate continuation
// execution to package script without behaviour importing script's
// internals beyond this interface.
func NewTable(runner ScriptRunner) *Table {
	t := &Table{byElement: make(map[sim.Element]sim.Behaviour)}

	empty := passable{}
	t.byElement[sim.ElementEmpty] = empty
	t.byElement[sim.ElementBoardEdge] = Default{}
	t.byElement[sim.ElementText] = passable{}

	t.byElement[sim.ElementPlayer] = Player{}
	t.byElement[sim.ElementBullet] = Bullet{}

	t.byElement[sim.ElementAmmo] = Item{Item: sim.ItemAmmo, Amount: 5, Notify: sim.NotifyNoAmmo, PickupSound: true}
	t.byElement[sim.ElementTorch] = Item{Item: sim.ItemTorches, Amount: 1, Notify: sim.NotifyNoTorches}
	t.byElement[sim.ElementGem] = Item{Item: sim.ItemGems, Amount: 1, AlsoHealth: 1}
	t.byElement[sim.ElementKey] = Key{}
	t.byElement[sim.ElementDoor] = Door{}
	t.byElement[sim.ElementEnergizer] = Energizer{}

	t.byElement[sim.ElementWater] = Water{}
	t.byElement[sim.ElementForest] = Forest{}
	t.byElement[sim.ElementSolid] = solidWall{}
	t.byElement[sim.ElementNormal] = solidWall{}
	t.byElement[sim.ElementBreakable] = Breakable{}
	t.byElement[sim.ElementBoulder] = Boulder{Axis: sim.DirIdle}
	t.byElement[sim.ElementSliderNS] = Boulder{Axis: sim.DirNorth}
	t.byElement[sim.ElementSliderEW] = Boulder{Axis: sim.DirEast}
	t.byElement[sim.ElementFake] = passable{}
	t.byElement[sim.ElementInvisible] = Invisible{}
	t.byElement[sim.ElementRicochet] = Ricochet{}
	t.byElement[sim.ElementLine] = solidWall{}
	t.byElement[sim.ElementBlinkWall] = BlinkWall{}
	t.byElement[sim.ElementBlinkRayH] = BlinkRay{}
	t.byElement[sim.ElementBlinkRayV] = BlinkRay{}
	t.byElement[sim.ElementTransporter] = Transporter{}
	t.byElement[sim.ElementDuplicator] = Duplicator{}
	t.byElement[sim.ElementBomb] = Bomb{}
	t.byElement[sim.ElementStar] = Star{}
	t.byElement[sim.ElementClockwise] = SpinningGun{Turn: func(d sim.Direction) sim.Direction { return d.Clockwise() }}
	t.byElement[sim.ElementCounter] = SpinningGun{Turn: func(d sim.Direction) sim.Direction { return d.CounterClockwise() }}
	t.byElement[sim.ElementPusher] = Pusher{}

	t.byElement[sim.ElementBear] = Creature{Kind: CreatureBear}
	t.byElement[sim.ElementLion] = Creature{Kind: CreatureLion}
	t.byElement[sim.ElementTiger] = Creature{Kind: CreatureTiger}
	t.byElement[sim.ElementShark] = Creature{Kind: CreatureShark}
	t.byElement[sim.ElementRuffian] = Creature{Kind: CreatureRuffian}
	t.byElement[sim.ElementSlime] = Slime{}
	t.byElement[sim.ElementSpinningGun] = SpinningGun{Turn: func(d sim.Direction) sim.Direction { return d.Clockwise() }}

	t.byElement[sim.ElementHead] = Head{}
	t.byElement[sim.ElementSegment] = Segment{}

	t.byElement[sim.ElementScroll] = Scroll{Runner: runner}
	t.byElement[sim.ElementObject] = Object{Runner: runner}
	t.byElement[sim.ElementPassage] = Passage{}

	return t
}

func (t *Table) Get(e sim.Element) sim.Behaviour {
	if b, ok := t.byElement[e]; ok {
		return b
	}
	return Default{}
}

type solidWall struct{ Default }

// ScriptRunner is the slice of package script that behaviour needs: run a
// status's code for one partial step and return the actions it produced.
// Moves, tries, takes and puts are applied during the call, so nothing is
// left pending when it returns.
type ScriptRunner interface {
	RunStep(s *sim.Sim, index int, ev sim.Event, entryLabel string, deleteAfter bool) []sim.Action
}
