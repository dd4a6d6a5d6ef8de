package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera transform toward its target's transform.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	s := camComp.Smoothness
	if s <= 0 || s >= 1 {
		camTransform.X = target.X
		camTransform.Y = target.Y
		return
	}
	camTransform.X = common.Lerp(camTransform.X, target.X, s)
	camTransform.Y = common.Lerp(camTransform.Y, target.Y, s)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
