package entity

import "github.com/milk9111/topdown/ecs"

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "camera.yaml")
}
