package entity

import "github.com/milk9111/topdown/ecs"

func NewArena(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "arena.yaml")
}
