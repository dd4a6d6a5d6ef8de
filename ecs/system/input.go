package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/movement"
)

// StickReader reports the left analog stick of the active gamepad in
// screen orientation (Y down).
type StickReader interface {
	LeftStick() (x, y float64, ok bool)
}

// EbitenGamepad reads the first connected standard gamepad.
type EbitenGamepad struct{}

func (EbitenGamepad) LeftStick() (float64, float64, bool) {
	gamepads := ebiten.AppendGamepadIDs(nil)
	if len(gamepads) == 0 {
		return 0, 0, false
	}
	id := gamepads[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return 0, 0, false
	}
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	return x, y, true
}

// InputSystem samples movement input once per frame and turns it into each
// controller's target velocity.
type InputSystem struct {
	keys  movement.KeyState
	stick StickReader
}

func NewInputSystem(keys movement.KeyState, stick StickReader) *InputSystem {
	if keys == nil {
		keys = movement.EbitenKeys{}
	}
	return &InputSystem{keys: keys, stick: stick}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	stickX, stickY, haveStick := 0.0, 0.0, false
	if i.stick != nil {
		stickX, stickY, haveStick = i.stick.LeftStick()
		// keyboard wins while the stick rests in its dead zone
		if haveStick && stickX*stickX+stickY*stickY < movement.StickDeadzone*movement.StickDeadzone {
			haveStick = false
		}
	}

	ecs.ForEach(w, component.MovementComponent.Kind(), func(e ecs.Entity, m *component.Movement) {
		if m.Controller == nil {
			return
		}

		in := m.Controller.HandleInput(i.keys)
		usedStick := false
		if haveStick && in.X == 0 && in.Y == 0 {
			in = m.Controller.AxisInput(stickX, -stickY)
			usedStick = true
		}

		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			input.MoveX = in.X
			input.MoveY = in.Y
			input.Gamepad = usedStick
		}
	})
}
