// Package terminal provides the terminal backends the game runs on and the
// key bindings shared by all of them.
package terminal

import "github.com/vovakirdan/tui-invaders/internal/core"

// KeyMapper translates key names to game actions.
// Names follow the "left", "space", "ctrl+c" convention of the key decoders,
// so every backend shares one set of bindings.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the action bound to a key, or core.ActionNone.
func (km *KeyMapper) MapKey(key string) core.Action {
	switch key {
	case "ctrl+c", "q", "esc":
		return core.ActionQuit
	case "left", "a", "h":
		return core.ActionLeft
	case "right", "d", "l":
		return core.ActionRight
	case "space", " ", "enter":
		return core.ActionFire
	}
	return core.ActionNone
}
