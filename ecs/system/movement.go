package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// MovementSystem runs once per physics step and hands each body the
// velocity its controller asks for.
type MovementSystem struct {
	dt float64
}

func NewMovementSystem(dt float64) *MovementSystem {
	return &MovementSystem{dt: dt}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if m == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.MovementComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(_ ecs.Entity, mv *component.Movement, body *component.PhysicsBody) {
			if mv.Controller == nil || body.Body == nil || body.Static {
				return
			}
			vel := mv.Controller.Step(body.Body.Velocity(), m.dt)
			body.Body.SetVelocityVector(clipAgainstContacts(body.Body, vel))
		})
}

// clipAgainstContacts removes the part of v that points into static shapes
// the body touched last step, so a velocity re-applied every step cannot
// drive the body through a wall.
func clipAgainstContacts(body *cp.Body, v cp.Vector) cp.Vector {
	body.EachArbiter(func(arb *cp.Arbiter) {
		if arb.Count() == 0 {
			return
		}
		_, other := arb.Bodies()
		if other == nil || other.GetType() != cp.BODY_STATIC {
			return
		}
		// normal points from this body into the other one
		n := arb.Normal()
		if d := v.Dot(n); d > 0 {
			v = v.Sub(n.Mult(d))
		}
	})
	return v
}
