package system

import (
	"log"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/telemetry"
)

// TraceSystem records the player's body state once per physics step. It
// stops recording after the first write error.
type TraceSystem struct {
	rec    *telemetry.Recorder
	step   int
	failed bool
}

func NewTraceSystem(rec *telemetry.Recorder) *TraceSystem {
	return &TraceSystem{rec: rec}
}

func (ts *TraceSystem) Update(w *ecs.World) {
	if ts == nil || ts.rec == nil || ts.failed || w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return
	}

	ts.step++
	pos := body.Body.Position()
	vel := body.Body.Velocity()
	sample := telemetry.Sample{Step: ts.step, X: pos.X, Y: pos.Y, VX: vel.X, VY: vel.Y}
	if mv, ok := ecs.Get(w, player, component.MovementComponent.Kind()); ok && mv.Controller != nil {
		target := mv.Controller.TargetVelocity()
		sample.TargetVX = target.X
		sample.TargetVY = target.Y
		sample.Smooth = mv.Controller.SmoothMovement()
	}

	if err := ts.rec.Write(sample); err != nil {
		log.Printf("trace: %v", err)
		ts.failed = true
	}
}
