package movement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyNone is returned for actions that have no binding.
const KeyNone = ebiten.Key(-1)

var ErrUnknownKey = errors.New("movement: unknown key")

// Action names one of the four movement directions.
type Action string

const (
	ActionUp    Action = "up"
	ActionDown  Action = "down"
	ActionLeft  Action = "left"
	ActionRight Action = "right"
)

// Actions lists the bindable actions in menu order.
var Actions = []Action{ActionUp, ActionDown, ActionLeft, ActionRight}

// ParseAction matches an action name case-insensitively.
func ParseAction(name string) (Action, bool) {
	switch a := Action(strings.ToLower(name)); a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return a, true
	default:
		return "", false
	}
}

// KeyState reports whether a key is currently held.
type KeyState interface {
	IsKeyPressed(key ebiten.Key) bool
}

// EbitenKeys polls the live keyboard.
type EbitenKeys struct{}

func (EbitenKeys) IsKeyPressed(key ebiten.Key) bool {
	if key == KeyNone {
		return false
	}
	return ebiten.IsKeyPressed(key)
}

// KeyName is the inverse of ParseKey.
func KeyName(key ebiten.Key) string {
	if key < 0 || key > ebiten.KeyMax {
		return "None"
	}
	return key.String()
}

// ParseKey resolves a key name such as "W", "ArrowUp" or "none".
func ParseKey(name string) (ebiten.Key, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return KeyNone, nil
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), trimmed) {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
