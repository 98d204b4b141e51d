package script

import (
	"strings"

	"github.com/zztstep/engine/internal/sim"
	"github.com/zztstep/engine/internal/sound"
)

// execCommandText dispatches a single "#word ..." command line (spec.md
// §4.3 Commands). It is also reused by #try's fallback and #if's action
// clause, which hand it synthesized text rather than a real line.
func (rs *runState) execCommandText(text string, lineEnd, lineStart int) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		rs.status.Cursor = lineEnd + 1
		return true
	}
	cmd := strings.ToLower(words[0])
	rest := words[1:]

	switch cmd {
	case "go":
		return rs.execMoveAndWait(strings.Join(rest, " "), lineEnd, lineStart)
	case "walk":
		wi := 0
		dir := resolveDirection(rest, &wi, rs.sim, rs.status)
		rs.sim.Apply(sim.SetStep{Index: rs.index, Step: dir.Offset()})
		rs.status.Cursor = lineEnd + 1
		return true
	case "try":
		return rs.execTryAndContinue(strings.Join(rest, " "), lineEnd, lineStart)
	case "if":
		return rs.cmdIf(rest, lineEnd, lineStart)
	case "then":
		rs.status.Cursor = lineEnd + 1
		return true
	case "end":
		rs.status.Cursor = -1
		return false
	case "die":
		rs.sim.Apply(sim.SetTile{At: rs.status.Location, Tile: sim.Tile{Element: sim.ElementEmpty, Colour: 0x0F}})
		rs.sim.Apply(sim.ReprocessSameStatusIndexOnRemoval{})
		rs.status.Cursor = -1
		return false
	case "idle":
		rs.status.Cursor = lineEnd + 1
		return false
	case "endgame":
		rs.actions = append(rs.actions, sim.SendBoardMessage{Message: sim.BoardMessage{Kind: sim.MsgOpenEndGameConfirmation}})
		rs.status.Cursor = -1
		return false
	case "zap":
		rs.cmdZap(rest)
		rs.status.Cursor = lineEnd + 1
		return true
	case "restore":
		rs.cmdRestore(rest)
		rs.status.Cursor = lineEnd + 1
		return true
	case "set":
		if len(rest) > 0 {
			rs.sim.Apply(sim.SetFlag{Name: strings.ToUpper(rest[0])})
		}
		rs.status.Cursor = lineEnd + 1
		return true
	case "clear":
		if len(rest) > 0 {
			rs.sim.Apply(sim.ClearFlag{Name: strings.ToUpper(rest[0])})
		}
		rs.status.Cursor = lineEnd + 1
		return true
	case "send":
		rs.status.Cursor = lineEnd + 1
		if len(rest) > 0 {
			rs.cmdSend(rest[0])
		}
		return true
	case "lock":
		rs.status.Locked = true
		rs.status.Cursor = lineEnd + 1
		return true
	case "unlock":
		rs.status.Locked = false
		rs.status.Cursor = lineEnd + 1
		return true
	case "bind":
		rs.status.Cursor = -1
		if len(rest) > 0 {
			rs.cmdBind(rest[0])
		}
		return false
	case "cycle":
		if len(rest) > 0 {
			if n, ok := parseInt(rest[0]); ok {
				rs.sim.Apply(sim.SetCycle{Index: rs.index, Cycle: n})
			}
		}
		rs.status.Cursor = lineEnd + 1
		return true
	case "char":
		if len(rest) > 0 {
			if n, ok := parseInt(rest[0]); ok {
				rs.sim.Apply(sim.SetParam1{Index: rs.index, Value: uint8(n)})
			}
		}
		rs.status.Cursor = lineEnd + 1
		return true
	case "become":
		if len(rest) > 0 {
			rs.cmdBecome(rest[0])
		}
		rs.status.Cursor = -1
		return false
	case "change":
		rs.cmdChange(rest)
		rs.status.Cursor = lineEnd + 1
		return true
	case "give":
		rs.cmdGiveTake(rest, 1)
		rs.status.Cursor = lineEnd + 1
		return true
	case "take":
		return rs.cmdTake(rest, lineEnd, lineStart)
	case "put":
		rs.cmdPut(rest)
		rs.status.Cursor = lineEnd + 1
		return true
	case "shoot":
		rs.cmdShoot(rest, sim.ElementBullet)
		rs.status.Cursor = lineEnd + 1
		return true
	case "throwstar":
		rs.cmdShoot(rest, sim.ElementStar)
		rs.status.Cursor = lineEnd + 1
		return true
	case "play":
		rs.cmdPlay(strings.Join(rest, " "))
		rs.status.Cursor = lineEnd + 1
		return true
	default:
		if c, ok := jumpToLabel(rs.code, cmd); ok {
			rs.status.Cursor = c
			return true
		}
		return rs.scriptError("unknown command: #" + cmd)
	}
}

func (rs *runState) cmdIf(words []string, lineEnd, lineStart int) bool {
	thenIdx := -1
	for i, w := range words {
		if strings.ToLower(w) == "then" {
			thenIdx = i
			break
		}
	}
	var pred, action []string
	if thenIdx < 0 {
		pred = words
	} else {
		pred = words[:thenIdx]
		action = words[thenIdx+1:]
	}
	if !rs.evalPredicate(pred) {
		rs.status.Cursor = lineEnd + 1
		return true
	}
	if len(action) == 0 {
		rs.status.Cursor = lineEnd + 1
		return true
	}
	return rs.execCommandText(strings.Join(action, " "), lineEnd, lineStart)
}

// evalPredicate implements spec.md §4.3 Predicates: "not PRED", "any KIND",
// "blocked DIR", "contact", "energized", "alligned", or a bare flag name.
func (rs *runState) evalPredicate(words []string) bool {
	if len(words) == 0 {
		return false
	}
	neg := false
	if strings.ToLower(words[0]) == "not" {
		neg = true
		words = words[1:]
	}
	var result bool
	switch {
	case len(words) == 0:
		result = false
	case strings.ToLower(words[0]) == "any" && len(words) > 1:
		elem, ok := elementFromWord(words[1])
		result = ok && boardHasElement(rs.sim, elem)
	case strings.ToLower(words[0]) == "blocked" && len(words) > 1:
		wi := 1
		dir := resolveDirection(words, &wi, rs.sim, rs.status)
		dest := rs.status.Location.Add(dir.Offset())
		result = rs.sim.Behaviours.Get(rs.sim.Board.Grid.At(dest).Element).Blocked(false)
	case strings.ToLower(words[0]) == "contact":
		result = isAdjacentToPlayer(rs.sim, rs.status)
	case strings.ToLower(words[0]) == "energized":
		result = rs.sim.World.Header.EnergyCycles > 0
	case strings.ToLower(words[0]) == "alligned":
		p := rs.sim.Board.Statuses.Get(0)
		result = p != nil && (p.Location.X == rs.status.Location.X || p.Location.Y == rs.status.Location.Y)
	default:
		result = rs.sim.World.Header.LastMatchingFlag(strings.ToUpper(words[0])) >= 0
	}
	if neg {
		return !result
	}
	return result
}

func (rs *runState) cmdSend(target string) {
	receiver, label := "myself", target
	if idx := strings.Index(target, ":"); idx >= 0 {
		receiver, label = target[:idx], target[idx+1:]
	}
	if strings.EqualFold(receiver, "myself") {
		if c, ok := jumpToLabel(rs.code, label); ok {
			rs.status.Cursor = c
		}
		return
	}
	rs.sim.Apply(sim.OthersApplyLabelOperation{
		SourceIndex: rs.index, Receiver: receiver,
		Op: sim.LabelOperation{Kind: sim.LabelJump, Label: label},
	})
}

func (rs *runState) cmdZap(rest []string) {
	if len(rest) == 0 {
		return
	}
	target := rest[0]
	receiver, label := "myself", target
	if idx := strings.Index(target, ":"); idx >= 0 {
		receiver, label = target[:idx], target[idx+1:]
	}
	if strings.EqualFold(receiver, "myself") {
		rs.code = zapLabel(rs.code, label)
		rs.codeDirty = true
		return
	}
	rs.sim.Apply(sim.OthersApplyLabelOperation{
		SourceIndex: rs.index, Receiver: receiver,
		Op: sim.LabelOperation{Kind: sim.LabelZap, Label: label},
	})
}

func (rs *runState) cmdRestore(rest []string) {
	if len(rest) == 0 {
		return
	}
	target := rest[0]
	receiver, label := "myself", target
	if idx := strings.Index(target, ":"); idx >= 0 {
		receiver, label = target[:idx], target[idx+1:]
	}
	if strings.EqualFold(receiver, "myself") {
		rs.code = restoreLabel(rs.code, label, label)
		rs.codeDirty = true
		return
	}
	rs.sim.Apply(sim.OthersApplyLabelOperation{
		SourceIndex: rs.index, Receiver: receiver,
		Op: sim.LabelOperation{Kind: sim.LabelRestore, Label: label, Receiver: receiver},
	})
}

func (rs *runState) cmdBind(name string) {
	for i := range rs.sim.Board.Statuses.All() {
		if i == rs.index {
			continue
		}
		st := rs.sim.Board.Statuses.Get(i)
		if st == nil || st.Code.IsRef() {
			continue
		}
		if objectName(st.Code.Code) == name {
			rs.sim.Apply(sim.BindCodeToIndex{Index: rs.index, Target: i})
			return
		}
	}
}

func (rs *runState) cmdBecome(word string) {
	elem, ok := elementFromWord(word)
	if !ok {
		return
	}
	at := rs.status.Location
	rs.sim.Apply(sim.SetElementAndColour{At: at, Element: elem, Colour: rs.sim.Board.Grid.At(at).Colour})
}

func (rs *runState) cmdChange(rest []string) {
	if len(rest) < 2 {
		return
	}
	from, ok1 := elementFromWord(rest[0])
	to, ok2 := elementFromWord(rest[1])
	if !ok1 || !ok2 {
		return
	}
	for y := 1; y <= sim.BoardHeight; y++ {
		for x := 1; x <= sim.BoardWidth; x++ {
			p := sim.Point{X: x, Y: y}
			if t := rs.sim.Board.Grid.At(p); t.Element == from {
				rs.sim.Apply(sim.SetElementAndColour{At: p, Element: to, Colour: t.Colour})
			}
		}
	}
}

func (rs *runState) cmdGiveTake(rest []string, sign int) {
	if len(rest) < 2 {
		return
	}
	item, ok := itemFromWord(rest[0])
	if !ok {
		return
	}
	amt, ok := parseInt(rest[1])
	if !ok {
		return
	}
	rs.sim.Apply(sim.ModifyPlayerItem{Item: item, Delta: sign * amt})
}

// cmdTake implements spec.md §7 Take-item underflow: on underflow the
// counter is clamped to zero by the reducer and an optional trailing
// command on the same line is executed.
func (rs *runState) cmdTake(rest []string, lineEnd, lineStart int) bool {
	if len(rest) < 2 {
		rs.status.Cursor = lineEnd + 1
		return true
	}
	item, ok := itemFromWord(rest[0])
	if !ok {
		rs.status.Cursor = lineEnd + 1
		return true
	}
	amt, ok := parseInt(rest[1])
	if !ok {
		rs.status.Cursor = lineEnd + 1
		return true
	}
	report := rs.sim.Apply(sim.ModifyPlayerItem{Item: item, Delta: -amt})
	if report.ItemUnderflow && len(rest) > 2 {
		return rs.execCommandText(strings.Join(rest[2:], " "), lineEnd, lineStart)
	}
	rs.status.Cursor = lineEnd + 1
	return true
}

// cmdPut implements "put DIR KIND". A target that already holds KIND is
// left unchanged. Otherwise the target is pushed and, unless the push is
// blocked, overwritten with KIND in colour 0x0F. No colour word is parsed
// and no status is attached to the new tile.
func (rs *runState) cmdPut(rest []string) {
	if len(rest) < 2 {
		return
	}
	wi := 0
	dir := resolveDirection(rest, &wi, rs.sim, rs.status)
	if wi >= len(rest) {
		return
	}
	elem, ok := elementFromWord(rest[wi])
	if !ok {
		return
	}
	target := rs.status.Location.Add(dir.Offset())
	existing := rs.sim.Board.Grid.At(target)
	if existing.Element == elem {
		return
	}
	pr := rs.sim.Apply(sim.PushTile{At: target, Delta: dir.Offset()})
	if !pr.Blocked {
		rs.sim.Apply(sim.SetTile{At: target, Tile: sim.Tile{Element: elem, Colour: 0x0F}})
	}
}

func (rs *runState) cmdShoot(rest []string, projectile sim.Element) {
	wi := 0
	dir := resolveDirection(rest, &wi, rs.sim, rs.status)
	if dir == sim.DirIdle {
		return
	}
	pos := rs.status.Location.Add(dir.Offset())
	if rs.sim.Behaviours.Get(rs.sim.Board.Grid.At(pos).Element).BlockedForBullets() {
		return
	}
	status := sim.NewStatus(pos)
	status.Step = dir.Offset()
	status.Param1 = 1 // non-player-fired
	rs.sim.Apply(sim.SetTile{At: pos, Tile: sim.Tile{Element: projectile, Colour: 0x0F}, Attach: status})
}

func (rs *runState) cmdPlay(notes string) {
	compiled := sound.Compile(notes)
	rs.actions = append(rs.actions, sim.SendBoardMessage{Message: sim.BoardMessage{
		Kind: sim.MsgPlaySoundArray, Notes: compiled,
	}})
}

func isAdjacentToPlayer(s *sim.Sim, status *sim.StatusElement) bool {
	player := s.Board.Statuses.Get(0)
	if player == nil {
		return false
	}
	if player.Location == status.Location {
		return true
	}
	for _, d := range []sim.Direction{sim.DirNorth, sim.DirSouth, sim.DirEast, sim.DirWest} {
		if status.Location.Add(d.Offset()) == player.Location {
			return true
		}
	}
	return false
}

func boardHasElement(s *sim.Sim, elem sim.Element) bool {
	for y := 1; y <= sim.BoardHeight; y++ {
		for x := 1; x <= sim.BoardWidth; x++ {
			if s.Board.Grid.At(sim.Point{X: x, Y: y}).Element == elem {
				return true
			}
		}
	}
	return false
}

func itemFromWord(w string) (sim.PlayerItemType, bool) {
	switch strings.ToLower(w) {
	case "ammo":
		return sim.ItemAmmo, true
	case "torch", "torches":
		return sim.ItemTorches, true
	case "gem", "gems":
		return sim.ItemGems, true
	case "health":
		return sim.ItemHealth, true
	case "score":
		return sim.ItemScore, true
	case "time":
		return sim.ItemTimeSeconds, true
	}
	return 0, false
}

func elementFromWord(w string) (sim.Element, bool) {
	switch strings.ToLower(w) {
	case "empty":
		return sim.ElementEmpty, true
	case "ammo":
		return sim.ElementAmmo, true
	case "torch":
		return sim.ElementTorch, true
	case "gem":
		return sim.ElementGem, true
	case "key":
		return sim.ElementKey, true
	case "door":
		return sim.ElementDoor, true
	case "scroll":
		return sim.ElementScroll, true
	case "passage":
		return sim.ElementPassage, true
	case "duplicator":
		return sim.ElementDuplicator, true
	case "bomb":
		return sim.ElementBomb, true
	case "energizer":
		return sim.ElementEnergizer, true
	case "star":
		return sim.ElementStar, true
	case "clockwise":
		return sim.ElementClockwise, true
	case "counter":
		return sim.ElementCounter, true
	case "bullet":
		return sim.ElementBullet, true
	case "water":
		return sim.ElementWater, true
	case "forest":
		return sim.ElementForest, true
	case "solid":
		return sim.ElementSolid, true
	case "normal", "wall":
		return sim.ElementNormal, true
	case "breakable":
		return sim.ElementBreakable, true
	case "boulder":
		return sim.ElementBoulder, true
	case "slider", "sliderns":
		return sim.ElementSliderNS, true
	case "sliderew":
		return sim.ElementSliderEW, true
	case "fake":
		return sim.ElementFake, true
	case "invisible":
		return sim.ElementInvisible, true
	case "blinkwall":
		return sim.ElementBlinkWall, true
	case "transporter":
		return sim.ElementTransporter, true
	case "line":
		return sim.ElementLine, true
	case "ricochet":
		return sim.ElementRicochet, true
	case "bear":
		return sim.ElementBear, true
	case "ruffian":
		return sim.ElementRuffian, true
	case "object":
		return sim.ElementObject, true
	case "slime":
		return sim.ElementSlime, true
	case "shark":
		return sim.ElementShark, true
	case "spinninggun":
		return sim.ElementSpinningGun, true
	case "pusher":
		return sim.ElementPusher, true
	case "lion":
		return sim.ElementLion, true
	case "tiger":
		return sim.ElementTiger, true
	case "head":
		return sim.ElementHead, true
	case "segment":
		return sim.ElementSegment, true
	case "player":
		return sim.ElementPlayer, true
	}
	return 0, false
}
