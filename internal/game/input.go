package game

import "github.com/gdamore/tcell/v2"

// Command is a player request read from the keyboard.
type Command uint8

const (
	CmdNone Command = iota
	CmdFocus // toggles the focus loop
	CmdStudy // toggles the study loop
	CmdMeditate
	CmdClimb
	CmdPathLeft
	CmdPathRight
	CmdIntent     // one intent click
	CmdIntentHold // starts or finishes a held intent press
	CmdPonder
	CmdSave
	CmdLoad
	CmdExport
	CmdImport
	CmdReadme
	CmdDebug
	CmdScrollUp
	CmdScrollDown
	CmdQuit
)

// keyToCommand maps a tcell key event to a command.
func keyToCommand(ev *tcell.EventKey) Command {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyPgUp:
		return CmdScrollUp
	case tcell.KeyDown, tcell.KeyPgDn:
		return CmdScrollDown
	case tcell.KeyLeft:
		return CmdPathLeft
	case tcell.KeyRight:
		return CmdPathRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit
	}

	// Rune keys. Upper case is reserved where it means something else.
	switch ev.Rune() {
	case 'f', 'F':
		return CmdFocus
	case 's', 'S':
		return CmdStudy
	case 'm', 'M':
		return CmdMeditate
	case 'c', 'C':
		return CmdClimb
	case 'l', 'L':
		return CmdPathLeft
	case 'r', 'R':
		return CmdPathRight
	case 'i':
		return CmdIntent
	case 'I':
		return CmdIntentHold
	case 'p', 'P':
		return CmdPonder
	case 'w', 'W':
		return CmdSave
	case 'o', 'O':
		return CmdLoad
	case 'x':
		return CmdExport
	case 'X':
		return CmdImport
	case '?':
		return CmdReadme
	case 'd', 'D':
		return CmdDebug
	case 'k':
		return CmdScrollUp
	case 'j':
		return CmdScrollDown
	case 'q', 'Q':
		return CmdQuit
	}
	return CmdNone
}
