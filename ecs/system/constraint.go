package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// ConstraintSystem runs after the physics step and pulls constrained bodies
// back inside their controller's bounds.
type ConstraintSystem struct{}

func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{}
}

func (c *ConstraintSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.MovementComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, mv *component.Movement, body *component.PhysicsBody) {
			if mv.Controller == nil || body.Body == nil || !mv.Controller.ConstrainMovement() {
				return
			}
			pos := body.Body.Position()
			clamped := mv.Controller.ClampPosition(pos)
			if clamped == pos {
				return
			}
			body.Body.SetPosition(clamped)
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				t.X = clamped.X
				t.Y = clamped.Y
			}
		})
}
