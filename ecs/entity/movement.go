package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
)

// ApplyMovementSpec pushes a prefab movement spec through the controller's
// clamping setters. Key names are resolved first so a bad name leaves the
// controller untouched.
func ApplyMovementSpec(ctrl *movement.Controller, spec prefabs.MovementComponentSpec) error {
	if ctrl == nil {
		return fmt.Errorf("movement: controller is nil")
	}

	names := []struct {
		action movement.Action
		name   string
	}{
		{movement.ActionUp, spec.Keys.Up},
		{movement.ActionDown, spec.Keys.Down},
		{movement.ActionLeft, spec.Keys.Left},
		{movement.ActionRight, spec.Keys.Right},
	}
	keys := make(map[movement.Action]ebiten.Key, len(names))
	for _, n := range names {
		if n.name == "" {
			continue
		}
		k, err := movement.ParseKey(n.name)
		if err != nil {
			return fmt.Errorf("movement: key %s: %w", n.action, err)
		}
		keys[n.action] = k
	}

	if spec.MoveSpeed != nil {
		ctrl.SetMoveSpeed(*spec.MoveSpeed)
	}
	if spec.SmoothMovement != nil {
		ctrl.SetSmoothMovement(*spec.SmoothMovement)
	}
	if spec.SmoothTime != nil {
		ctrl.SetSmoothTime(*spec.SmoothTime)
	}
	for action, k := range keys {
		ctrl.SetKeyBinding(string(action), k)
	}
	if spec.ConstrainMovement != nil {
		ctrl.SetConstrainMovement(*spec.ConstrainMovement)
	}

	b := ctrl.Bounds()
	if spec.MinBounds != nil {
		b.Min = cp.Vector{X: spec.MinBounds.X, Y: spec.MinBounds.Y}
	}
	if spec.MaxBounds != nil {
		b.Max = cp.Vector{X: spec.MaxBounds.X, Y: spec.MaxBounds.Y}
	}
	ctrl.SetBounds(b.Min, b.Max)
	return nil
}
