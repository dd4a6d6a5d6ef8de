package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	physicsIterations = 10
	// arenaWallThickness keeps a body that moves a full unit per step from
	// crossing the wall's midline before the solver sees the contact.
	arenaWallThickness = 2.0
)

type PhysicsSystem struct {
	space   *cp.Space
	dt      float64
	gravity cp.Vector

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body    *cp.Body
	shapes  []*cp.Shape
	static  bool
	gravity *component.GravityScale
}

func NewPhysicsSystem(dt float64, gravity cp.Vector) *PhysicsSystem {
	ps := &PhysicsSystem{
		dt:       dt,
		gravity:  gravity,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = physicsIterations
	space.SetGravity(ps.gravity)
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.Sync(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

// Sync creates bodies for new PhysicsBody components and drops bodies of
// removed ones without stepping the space.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = ps.newSpace()
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.syncArenaBounds(w)
}

// SyncSystem returns a system that only runs Sync. Scheduling it ahead of
// the movement system lets a freshly spawned body receive velocity on its
// very first step.
func (ps *PhysicsSystem) SyncSystem() ecs.System {
	return physicsSync{ps: ps}
}

type physicsSync struct {
	ps *PhysicsSystem
}

func (s physicsSync) Update(w *ecs.World) {
	s.ps.Sync(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(transform, bodyComp)
			if info == nil {
				continue
			}
			transform.PrevX = transform.X
			transform.PrevY = transform.Y
			ps.entities[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shapes[0]
		}

		if !info.static {
			gs, _ := ecs.Get(w, e, component.GravityScaleComponent.Kind())
			if gs != info.gravity {
				ps.applyGravityScale(info, gs)
			}
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 1
		height = 1
	}

	center := cp.Vector{X: transform.X, Y: transform.Y}
	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - height/2, R: center.X + width/2, T: center.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	switch {
	case bodyComp.FreezeRotation:
		moment = math.Inf(1)
	case radius > 0:
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	default:
		moment = cp.MomentForBox(mass, width, height)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(center)
	body.SetAngle(transform.Rotation)
	body.SetAngularVelocity(0)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeBody)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

// applyGravityScale installs a per-body velocity integrator that scales the
// space gravity. A nil scale restores the default integrator.
func (ps *PhysicsSystem) applyGravityScale(info *bodyInfo, gs *component.GravityScale) {
	info.gravity = gs
	if gs == nil {
		info.body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}
	info.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(gs.Scale), damping, dt)
	})
}

func (ps *PhysicsSystem) syncArenaBounds(w *ecs.World) {
	arenaEntity, ok := w.First(component.ArenaBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[arenaEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, arenaEntity, component.ArenaBoundsComponent.Kind())
	if !ok || !bounds.Valid() {
		return
	}

	// walls sit outside the play area and overlap at the corners
	t := arenaWallThickness
	walls := []cp.BB{
		{L: bounds.MinX - t, B: bounds.MinY - t, R: bounds.MaxX + t, T: bounds.MinY}, // bottom
		{L: bounds.MinX - t, B: bounds.MaxY, R: bounds.MaxX + t, T: bounds.MaxY + t}, // top
		{L: bounds.MinX - t, B: bounds.MinY, R: bounds.MinX, T: bounds.MaxY},         // left
		{L: bounds.MaxX, B: bounds.MinY, R: bounds.MaxX + t, T: bounds.MaxY},         // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, bb := range walls {
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[arenaEntity] = info
	log.Printf("physics: arena walls %.1f,%.1f -> %.1f,%.1f", bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
			if bodyComp.Body == nil || bodyComp.Static {
				return
			}
			pos := bodyComp.Body.Position()
			transform.PrevX = transform.X
			transform.PrevY = transform.Y
			transform.X = pos.X
			transform.Y = pos.Y
			transform.Rotation = bodyComp.Body.Angle()
		})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.ArenaBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			if shape != nil {
				ps.space.RemoveShape(shape)
			}
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
