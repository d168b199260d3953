package game

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"roguecore/internal/grid"
)

// Action is one player command decoded from the keyboard.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionMoveNE
	ActionMoveNW
	ActionMoveSE
	ActionMoveSW
	ActionWait
	ActionPickup
	ActionCancel
	ActionQuit
)

var specialKeys = map[tcell.Key]Action{
	tcell.KeyUp:     ActionMoveN,
	tcell.KeyDown:   ActionMoveS,
	tcell.KeyRight:  ActionMoveE,
	tcell.KeyLeft:   ActionMoveW,
	tcell.KeyEscape: ActionCancel,
	tcell.KeyCtrlC:  ActionQuit,
}

// Vi keys, case-insensitive.
var runeKeys = map[rune]Action{
	'k': ActionMoveN,
	'j': ActionMoveS,
	'l': ActionMoveE,
	'h': ActionMoveW,
	'y': ActionMoveNW,
	'u': ActionMoveNE,
	'b': ActionMoveSW,
	'n': ActionMoveSE,
	'.': ActionWait,
	's': ActionWait,
	',': ActionPickup,
	'g': ActionPickup,
	'q': ActionQuit,
}

var steps = map[Action]grid.Direction{
	ActionMoveN:  grid.North,
	ActionMoveS:  grid.South,
	ActionMoveE:  grid.East,
	ActionMoveW:  grid.West,
	ActionMoveNE: grid.NorthEast,
	ActionMoveNW: grid.NorthWest,
	ActionMoveSE: grid.SouthEast,
	ActionMoveSW: grid.SouthWest,
}

func keyToAction(ev *tcell.EventKey) Action {
	if a, ok := specialKeys[ev.Key()]; ok {
		return a
	}
	if ev.Key() != tcell.KeyRune {
		return ActionNone
	}
	return runeKeys[unicode.ToLower(ev.Rune())]
}

// actionToDirection reports the step a movement action takes. ok is false
// for everything else.
func actionToDirection(a Action) (d grid.Direction, ok bool) {
	d, ok = steps[a]
	if !ok {
		return grid.Wait, false
	}
	return d, true
}
