package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

const playerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, playerPrefab)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, playerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// ReloadPlayerMovement re-reads the player prefab and applies its movement
// settings to every live player. Velocity state is kept so a reload mid-move
// does not jolt the body.
func ReloadPlayerMovement(w *ecs.World) error {
	spec, err := prefabs.LoadEntityBuildSpec(playerPrefab)
	if err != nil {
		return err
	}
	mv, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](spec.Components["movement"])
	if err != nil {
		return fmt.Errorf("player: decode movement: %w", err)
	}
	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.MovementComponent.Kind()) {
		m, ok := ecs.Get(w, e, component.MovementComponent.Kind())
		if !ok || m.Controller == nil {
			continue
		}
		if err := ApplyMovementSpec(m.Controller, mv); err != nil {
			return fmt.Errorf("player: reload %s: %w", e, err)
		}
	}
	return nil
}
