// Package settings is the in-game menu for tuning the player's movement
// controller while the simulation is paused.
package settings

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/movement"
)

const (
	SpeedStep      = 0.5
	SmoothTimeStep = 0.05
)

// Model holds the menu state that does not depend on widgets. Every change
// goes through the controller's own setters so their clamping applies.
type Model struct {
	ctrl *movement.Controller

	capturing movement.Action
}

func NewModel(ctrl *movement.Controller) *Model {
	return &Model{ctrl: ctrl}
}

func (m *Model) Controller() *movement.Controller {
	if m == nil {
		return nil
	}
	return m.ctrl
}

func (m *Model) AdjustSpeed(delta float64) {
	if m.ctrl == nil {
		return
	}
	m.ctrl.SetMoveSpeed(m.ctrl.MoveSpeed() + delta)
}

func (m *Model) ToggleSmoothing() {
	if m.ctrl == nil {
		return
	}
	m.ctrl.SetSmoothMovement(!m.ctrl.SmoothMovement())
}

func (m *Model) AdjustSmoothTime(delta float64) {
	if m.ctrl == nil {
		return
	}
	m.ctrl.SetSmoothTime(m.ctrl.SmoothTime() + delta)
}

func (m *Model) ToggleConstrain() {
	if m.ctrl == nil {
		return
	}
	m.ctrl.SetConstrainMovement(!m.ctrl.ConstrainMovement())
}

func (m *Model) ResetKeys() {
	if m.ctrl == nil {
		return
	}
	m.capturing = ""
	m.ctrl.ResetToDefaultKeys()
}

// BeginRebind arms key capture for action. The next key passed to
// CaptureKey becomes its binding.
func (m *Model) BeginRebind(action movement.Action) {
	if m.ctrl == nil {
		return
	}
	m.capturing = action
}

func (m *Model) Capturing() (movement.Action, bool) {
	return m.capturing, m.capturing != ""
}

// CaptureKey finishes a pending rebind. Escape cancels it and leaves the old
// binding in place. It reports whether the key was consumed.
func (m *Model) CaptureKey(key ebiten.Key) bool {
	if m.capturing == "" || m.ctrl == nil {
		return false
	}
	action := m.capturing
	m.capturing = ""
	if key == ebiten.KeyEscape {
		return true
	}
	m.ctrl.SetKeyBinding(string(action), key)
	return true
}

func (m *Model) SpeedLabel() string {
	if m.ctrl == nil {
		return "Speed: -"
	}
	return fmt.Sprintf("Speed: %.1f", m.ctrl.MoveSpeed())
}

func (m *Model) SmoothingLabel() string {
	if m.ctrl != nil && m.ctrl.SmoothMovement() {
		return "Smoothing: On"
	}
	return "Smoothing: Off"
}

func (m *Model) SmoothTimeLabel() string {
	if m.ctrl == nil {
		return "Smooth time: -"
	}
	return fmt.Sprintf("Smooth time: %.2fs", m.ctrl.SmoothTime())
}

func (m *Model) ConstrainLabel() string {
	if m.ctrl != nil && m.ctrl.ConstrainMovement() {
		return "Constrain: On"
	}
	return "Constrain: Off"
}

// BindingLabel renders "Up: W", or a prompt while that action is capturing.
func (m *Model) BindingLabel(action movement.Action) string {
	name := "Up"
	switch action {
	case movement.ActionDown:
		name = "Down"
	case movement.ActionLeft:
		name = "Left"
	case movement.ActionRight:
		name = "Right"
	}
	if m.capturing == action {
		return name + ": press a key..."
	}
	key := movement.KeyNone
	if m.ctrl != nil {
		key = m.ctrl.KeyBinding(string(action))
	}
	return name + ": " + movement.KeyName(key)
}
