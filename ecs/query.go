package ecs

import (
	"sort"

	"github.com/milk9111/topdown/ecs/component"
)

// Query returns live entities that carry every given component kind, in
// slot order. A kind with no storage yet yields an empty result.
func (w *World) Query(kinds ...component.Key) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}

	sets := make([]storage, 0, len(kinds))
	for _, k := range kinds {
		s := w.storeByID(k.ID())
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}

	// iterate the smallest set
	sort.Slice(sets, func(i, j int) bool { return sets[i].Len() < sets[j].Len() })

	ids := sets[0].IDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		match := true
		for _, s := range sets[1:] {
			if !s.Has(id) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the lowest-slot live entity that carries kind.
func (w *World) First(kind component.Key) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
