package entity

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
)

var ErrUnknownComponent = errors.New("entity: unknown component")

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"camera_tag":    addCameraTag,
	"transform":     addTransform,
	"physics_body":  addPhysicsBody,
	"gravity_scale": addGravityScale,
	"movement":      addMovement,
	"input":         addInput,
	"camera":        addCamera,
	"shape_render":  addShapeRender,
	"arena_bounds":  addArenaBounds,
}

// transform must land before physics_body so the body spawns in place.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"transform",
	"physics_body",
	"gravity_scale",
	"movement",
	"input",
	"camera",
	"shape_render",
	"arena_bounds",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildFromSpec(w, prefabPath, spec)
}

// BuildFromSpec creates an entity from an already decoded prefab. The entity
// is destroyed again if any component fails to build.
func BuildFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: %w %q", prefabPath, ErrUnknownComponent, name)
		}
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return buildRank(names[i]) < buildRank(names[j])
	})

	e := ecs.CreateEntity(w)
	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

func buildRank(name string) int {
	for i, n := range componentBuildOrder {
		if n == name {
			return i
		}
	}
	return len(componentBuildOrder)
}

// SetEntityTransform teleports e, moving its physics body along with it.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	t.PrevX = x
	t.PrevY = y
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && !body.Static {
		body.Body.SetPosition(cp.Vector{X: x, Y: y})
		body.Body.SetVelocityVector(cp.Vector{})
	}
	// a teleport must not carry smoothing state into the new spot
	if mv, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok && mv.Controller != nil {
		mv.Controller.Reset()
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:          spec.Width,
		Height:         spec.Height,
		Radius:         spec.Radius,
		Mass:           spec.Mass,
		Friction:       spec.Friction,
		Elasticity:     spec.Elasticity,
		Static:         spec.Static,
		FreezeRotation: spec.FreezeRotation,
	})
}

func addGravityScale(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.GravityScaleComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

func addMovement(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
	if err != nil {
		return err
	}
	ctrl := movement.NewController()
	if err := ApplyMovementSpec(ctrl, spec); err != nil {
		return err
	}
	return ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{Controller: ctrl})
}

func addInput(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return err
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.Target,
		Zoom:       zoom,
		Smoothness: spec.Smoothness,
	})
}

func addShapeRender(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShapeRenderComponentSpec](raw)
	if err != nil {
		return err
	}
	var c color.Color = color.White
	if spec.Color != nil && spec.Color.Color != nil {
		c = spec.Color.Color
	}
	return ecs.Add(w, e, component.ShapeRenderComponent.Kind(), &component.ShapeRender{
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
		Color:  c,
		Layer:  spec.Layer,
	})
}

func addArenaBounds(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ArenaBoundsComponentSpec](raw)
	if err != nil {
		return err
	}
	b := component.ArenaBounds{MinX: spec.Min.X, MinY: spec.Min.Y, MaxX: spec.Max.X, MaxY: spec.Max.Y}
	if !b.Valid() {
		return fmt.Errorf("arena bounds min %+v must be below max %+v", spec.Min, spec.Max)
	}
	return ecs.Add(w, e, component.ArenaBoundsComponent.Kind(), &b)
}
