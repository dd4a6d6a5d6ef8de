// Package movement implements keyboard-driven top-down movement: four
// bindable keys produce a target velocity each frame, and each physics step
// blends the body velocity toward it, optionally clamping the position into
// a rectangle.
package movement

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

const (
	DefaultMoveSpeed  = 5.0
	DefaultSmoothTime = 0.1
	MinSmoothTime     = 0.01

	// StickDeadzone ignores analog stick noise around center.
	StickDeadzone = 0.2
)

// Controller holds movement settings and per-step velocity state. The zero
// value is not usable; call NewController.
type Controller struct {
	moveSpeed      float64
	smoothMovement bool
	smoothTime     float64

	moveUpKey    ebiten.Key
	moveDownKey  ebiten.Key
	moveLeftKey  ebiten.Key
	moveRightKey ebiten.Key

	constrainMovement bool
	bounds            Bounds

	// currentVelocity is the smoothing state: the rate at which the body
	// velocity is currently changing.
	currentVelocity cp.Vector
	targetVelocity  cp.Vector

	spring     harmonica.Spring
	springDt   float64
	springTime float64
}

func NewController() *Controller {
	c := &Controller{
		moveSpeed:      DefaultMoveSpeed,
		smoothMovement: true,
		smoothTime:     DefaultSmoothTime,
		bounds:         DefaultBounds(),
	}
	c.ResetToDefaultKeys()
	return c
}

func (c *Controller) MoveSpeed() float64 { return c.moveSpeed }

// SetMoveSpeed clamps negative speeds to zero.
func (c *Controller) SetMoveSpeed(v float64) {
	if math.IsNaN(v) {
		return
	}
	c.moveSpeed = math.Max(0, v)
}

func (c *Controller) SmoothMovement() bool     { return c.smoothMovement }
func (c *Controller) SetSmoothMovement(b bool) { c.smoothMovement = b }

func (c *Controller) SmoothTime() float64 { return c.smoothTime }

// SetSmoothTime clamps to MinSmoothTime.
func (c *Controller) SetSmoothTime(v float64) {
	if math.IsNaN(v) {
		return
	}
	c.smoothTime = math.Max(MinSmoothTime, v)
}

func (c *Controller) MoveUpKey() ebiten.Key    { return c.moveUpKey }
func (c *Controller) MoveDownKey() ebiten.Key  { return c.moveDownKey }
func (c *Controller) MoveLeftKey() ebiten.Key  { return c.moveLeftKey }
func (c *Controller) MoveRightKey() ebiten.Key { return c.moveRightKey }

func (c *Controller) SetMoveUpKey(k ebiten.Key)    { c.moveUpKey = k }
func (c *Controller) SetMoveDownKey(k ebiten.Key)  { c.moveDownKey = k }
func (c *Controller) SetMoveLeftKey(k ebiten.Key)  { c.moveLeftKey = k }
func (c *Controller) SetMoveRightKey(k ebiten.Key) { c.moveRightKey = k }

// SetKeyBinding rebinds the named action. Unknown actions are ignored.
func (c *Controller) SetKeyBinding(action string, key ebiten.Key) {
	a, ok := ParseAction(action)
	if !ok {
		return
	}
	switch a {
	case ActionUp:
		c.moveUpKey = key
	case ActionDown:
		c.moveDownKey = key
	case ActionLeft:
		c.moveLeftKey = key
	case ActionRight:
		c.moveRightKey = key
	}
}

// KeyBinding returns the key bound to the named action, or KeyNone.
func (c *Controller) KeyBinding(action string) ebiten.Key {
	a, ok := ParseAction(action)
	if !ok {
		return KeyNone
	}
	switch a {
	case ActionUp:
		return c.moveUpKey
	case ActionDown:
		return c.moveDownKey
	case ActionLeft:
		return c.moveLeftKey
	case ActionRight:
		return c.moveRightKey
	}
	return KeyNone
}

// ResetToDefaultKeys restores WASD.
func (c *Controller) ResetToDefaultKeys() {
	c.moveUpKey = ebiten.KeyW
	c.moveDownKey = ebiten.KeyS
	c.moveLeftKey = ebiten.KeyA
	c.moveRightKey = ebiten.KeyD
}

func (c *Controller) ConstrainMovement() bool     { return c.constrainMovement }
func (c *Controller) SetConstrainMovement(b bool) { c.constrainMovement = b }

func (c *Controller) Bounds() Bounds { return c.bounds }

func (c *Controller) SetBounds(min, max cp.Vector) {
	c.bounds = NewBounds(min, max)
}

func (c *Controller) TargetVelocity() cp.Vector  { return c.targetVelocity }
func (c *Controller) CurrentVelocity() cp.Vector { return c.currentVelocity }

// HandleInput samples the four bound keys and recomputes the target
// velocity. It returns the (possibly normalized) input vector.
func (c *Controller) HandleInput(keys KeyState) cp.Vector {
	var in cp.Vector
	if keys != nil {
		if keys.IsKeyPressed(c.moveUpKey) {
			in.Y += 1
		}
		if keys.IsKeyPressed(c.moveDownKey) {
			in.Y -= 1
		}
		if keys.IsKeyPressed(c.moveLeftKey) {
			in.X -= 1
		}
		if keys.IsKeyPressed(c.moveRightKey) {
			in.X += 1
		}
	}
	return c.setInput(in)
}

// AxisInput drives the target velocity from an analog axis pair in
// [-1, 1], with vertical positive up.
func (c *Controller) AxisInput(horizontal, vertical float64) cp.Vector {
	in := cp.Vector{X: horizontal, Y: vertical}
	if in.Length() < StickDeadzone {
		in = cp.Vector{}
	}
	return c.setInput(in)
}

func (c *Controller) setInput(in cp.Vector) cp.Vector {
	// diagonals would otherwise move sqrt(2) faster
	if in.Length() > 1 {
		in = in.Normalize()
	}
	c.targetVelocity = in.Mult(c.moveSpeed)
	return in
}

// Step returns the velocity the body should have after a physics step of dt
// seconds, given its current velocity.
func (c *Controller) Step(velocity cp.Vector, dt float64) cp.Vector {
	if !c.smoothMovement {
		c.currentVelocity = cp.Vector{}
		return c.targetVelocity
	}
	if dt <= 0 {
		return velocity
	}

	spring := c.springFor(dt)
	x, vx := spring.Update(velocity.X, c.currentVelocity.X, c.targetVelocity.X)
	y, vy := spring.Update(velocity.Y, c.currentVelocity.Y, c.targetVelocity.Y)
	c.currentVelocity = cp.Vector{X: vx, Y: vy}
	return cp.Vector{X: x, Y: y}
}

// springFor returns a critically damped spring whose time constant matches
// smoothTime, rebuilding it only when dt or smoothTime change.
func (c *Controller) springFor(dt float64) harmonica.Spring {
	if c.springDt != dt || c.springTime != c.smoothTime {
		c.spring = harmonica.NewSpring(dt, 2/c.smoothTime, 1.0)
		c.springDt = dt
		c.springTime = c.smoothTime
	}
	return c.spring
}

// ClampPosition keeps p inside the bounds when movement is constrained.
func (c *Controller) ClampPosition(p cp.Vector) cp.Vector {
	if !c.constrainMovement {
		return p
	}
	return c.bounds.Clamp(p)
}

// Reset clears velocity state, e.g. after a teleport.
func (c *Controller) Reset() {
	c.currentVelocity = cp.Vector{}
	c.targetVelocity = cp.Vector{}
}
