package system

import (
	"math"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// BodySetupSystem gives every moving entity a physics body configured for
// top-down motion: no gravity and no rotation. Prefab-supplied bodies keep
// their size and material but are forced into that configuration too.
type BodySetupSystem struct {
	configured map[ecs.Entity]struct{}
}

func NewBodySetupSystem() *BodySetupSystem {
	return &BodySetupSystem{configured: make(map[ecs.Entity]struct{})}
}

func (b *BodySetupSystem) Update(w *ecs.World) {
	if b == nil || w == nil {
		return
	}

	for e := range b.configured {
		if !w.IsAlive(e) {
			delete(b.configured, e)
		}
	}

	for _, e := range w.Query(component.MovementComponent.Kind()) {
		if _, done := b.configured[e]; done {
			continue
		}

		if !ecs.Has(w, e, component.TransformComponent.Kind()) {
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
				panic("body setup system: add transform: " + err.Error())
			}
		}

		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			body = &component.PhysicsBody{Width: 1, Height: 1, Mass: 1}
			if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
				panic("body setup system: add physics body: " + err.Error())
			}
		}
		body.FreezeRotation = true
		// a body built earlier kept its finite moment
		if body.Body != nil && !body.Static {
			body.Body.SetMoment(math.Inf(1))
			body.Body.SetAngularVelocity(0)
		}

		gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
		if !ok {
			gs = &component.GravityScale{}
			if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), gs); err != nil {
				panic("body setup system: add gravity scale: " + err.Error())
			}
		}
		gs.Scale = 0

		b.configured[e] = struct{}{}
	}
}
