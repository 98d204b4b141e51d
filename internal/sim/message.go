package sim

// BoardMessageKind enumerates the closed set of requests the engine can
// raise to its host (spec.md §6 Output).
type BoardMessageKind int

const (
	MsgSwitchBoard BoardMessageKind = iota
	MsgTeleportToBoard
	MsgShowOneTimeNotification
	MsgOpenScroll
	MsgCloseScroll
	MsgEnterPressedInScroll
	MsgPlaySoundArray
	MsgClearSound
	MsgOpenSaveGameInput
	MsgSaveGameToFile
	MsgOpenDebugInput
	MsgDebugCommand
	MsgLinkClicked
	MsgPauseGame
	MsgPlayGame
	MsgOpenWorldSelection
	MsgOpenSaveSelection
	MsgOpenWorld
	MsgOpenEndGameConfirmation
	MsgOpenQuitConfirmation
	MsgReturnToTitleScreen
	MsgQuit
	// Supplemented from original_source/ruzzt (SPEC_FULL §5): highscores.
	MsgOpenHighScores
)

// OneTimeNotification is the closed set of informational one-shot messages
// (spec.md §6: "8 fixed kinds"), wording recovered from original_source.
type OneTimeNotification int

const (
	NotifyBlockedByWater OneTimeNotification = iota
	NotifyNoAmmo
	NotifyNoTorches
	NotifyRoomIsDark
	NotifyRoomNotDark
	NotifyCannotShootHere
	NotifyForestCleared
	NotifyEnergizerInvincible
)

func (n OneTimeNotification) Message() string {
	switch n {
	case NotifyBlockedByWater:
		return "Your way is blocked by water."
	case NotifyNoAmmo:
		return "You don't have any ammo!"
	case NotifyNoTorches:
		return "You don't have any torches!"
	case NotifyRoomIsDark:
		return "Room is dark - you need to light a torch!"
	case NotifyRoomNotDark:
		return "Don't need torch - room is not dark!"
	case NotifyCannotShootHere:
		return "Can't shoot in this place!"
	case NotifyForestCleared:
		return "A path is cleared through the forest."
	case NotifyEnergizerInvincible:
		return "Energizer - You are invincible"
	default:
		return ""
	}
}

// SoundPriority supplements spec.md §6's "note list + priority" wording
// with the shape recovered from original_source: either no explicit
// priority, or an explicit level where higher wins contention.
type SoundPriority struct {
	HasLevel bool
	Level    uint8
}

// BoardMessage is a single request from the engine to its host.
type BoardMessage struct {
	Kind BoardMessageKind

	BoardIndex int    // SwitchBoard, TeleportToBoard
	Notify     OneTimeNotification
	Title      string   // OpenScroll
	Lines      []string // OpenScroll
	Notes      []SoundNote
	Priority   SoundPriority
	Command    string // DebugCommand
	Label      string // LinkClicked
	FilePath   string // SaveGameToFile / OpenWorld
}

// SoundNote is one compiled entry from the sound-note mini-language
// (spec.md §6 Sound-note format).
type SoundNote struct {
	Code   uint8 // octave*16 + scale-index, or 240+digit for effects, or rest
	Length int   // length-multiplier, in 32nds-of-a-whole-note units
	Rest   bool
}
