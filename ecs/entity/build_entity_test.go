package entity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
)

func float64Ptr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func TestNewPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, 2, -3)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}

	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		t.Fatalf("expected player tag")
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tr.X != 2 || tr.Y != -3 {
		t.Fatalf("expected transform override, got %+v ok=%v", tr, ok)
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || !body.FreezeRotation || body.Width != 1 {
		t.Fatalf("unexpected physics body %+v ok=%v", body, ok)
	}
	gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	if !ok || gs.Scale != 0 {
		t.Fatalf("expected zero gravity scale, got %+v ok=%v", gs, ok)
	}
	m, ok := ecs.Get(w, e, component.MovementComponent.Kind())
	if !ok || m.Controller == nil {
		t.Fatalf("expected movement controller")
	}
	if m.Controller.MoveSpeed() != 5 || m.Controller.MoveUpKey() != ebiten.KeyW {
		t.Fatalf("unexpected controller settings speed=%v up=%v", m.Controller.MoveSpeed(), m.Controller.MoveUpKey())
	}
	if !ecs.Has(w, e, component.InputComponent.Kind()) || !ecs.Has(w, e, component.ShapeRenderComponent.Kind()) {
		t.Fatalf("expected input and shape render components")
	}
}

func TestSetEntityTransformResetsMotion(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayer(w)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	m, _ := ecs.Get(w, e, component.MovementComponent.Kind())
	m.Controller.AxisInput(1, 0)
	m.Controller.Step(cp.Vector{}, 0.02)
	if m.Controller.TargetVelocity() == (cp.Vector{}) || m.Controller.CurrentVelocity() == (cp.Vector{}) {
		t.Fatalf("expected motion state before the teleport")
	}

	if err := SetEntityTransform(w, e, 4, 4, 0); err != nil {
		t.Fatalf("set transform: %v", err)
	}
	if m.Controller.TargetVelocity() != (cp.Vector{}) || m.Controller.CurrentVelocity() != (cp.Vector{}) {
		t.Fatalf("teleport should clear velocity state, target=%v current=%v",
			m.Controller.TargetVelocity(), m.Controller.CurrentVelocity())
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 4 || tr.PrevX != 4 || tr.Y != 4 || tr.PrevY != 4 {
		t.Fatalf("teleport should not interpolate from the old spot, got %+v", tr)
	}
}

func TestNewCameraAndArena(t *testing.T) {
	w := ecs.NewWorld()
	cam, err := NewCamera(w)
	if err != nil {
		t.Fatalf("new camera: %v", err)
	}
	c, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	if !ok || c.TargetName != "player" || c.Zoom <= 0 {
		t.Fatalf("unexpected camera %+v ok=%v", c, ok)
	}

	arena, err := NewArena(w)
	if err != nil {
		t.Fatalf("new arena: %v", err)
	}
	b, ok := ecs.Get(w, arena, component.ArenaBoundsComponent.Kind())
	if !ok || !b.Valid() {
		t.Fatalf("unexpected arena bounds %+v ok=%v", b, ok)
	}
}

func TestBuildFromSpecErrors(t *testing.T) {
	cases := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		wantErr error
	}{
		{
			name:    "unknown_component",
			spec:    prefabs.EntityBuildSpec{Name: "x", Components: map[string]any{"jetpack": map[string]any{}}},
			wantErr: ErrUnknownComponent,
		},
		{
			name: "bad_key_name",
			spec: prefabs.EntityBuildSpec{Name: "x", Components: map[string]any{
				"transform": map[string]any{"x": 1},
				"movement":  map[string]any{"keys": map[string]any{"up": "Hyperspace"}},
			}},
			wantErr: movement.ErrUnknownKey,
		},
		{
			name:    "empty",
			spec:    prefabs.EntityBuildSpec{Name: "x"},
			wantErr: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildFromSpec(w, tc.name, tc.spec)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build should leave no entities, got %d", n)
			}
		})
	}
}

func TestApplyMovementSpec(t *testing.T) {
	ctrl := movement.NewController()
	err := ApplyMovementSpec(ctrl, prefabs.MovementComponentSpec{
		MoveSpeed:         float64Ptr(-2),
		SmoothMovement:    boolPtr(false),
		SmoothTime:        float64Ptr(0.001),
		Keys:              prefabs.KeyBindingsSpec{Up: "ArrowUp", Left: "none"},
		ConstrainMovement: boolPtr(true),
		MinBounds:         &prefabs.Vec2Spec{X: 5, Y: 5},
		MaxBounds:         &prefabs.Vec2Spec{X: -5, Y: -1},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if ctrl.MoveSpeed() != 0 {
		t.Fatalf("expected clamped speed 0, got %v", ctrl.MoveSpeed())
	}
	if ctrl.SmoothMovement() {
		t.Fatalf("expected smoothing off")
	}
	if ctrl.SmoothTime() != movement.MinSmoothTime {
		t.Fatalf("expected clamped smooth time, got %v", ctrl.SmoothTime())
	}
	if ctrl.MoveUpKey() != ebiten.KeyArrowUp || ctrl.MoveLeftKey() != movement.KeyNone || ctrl.MoveDownKey() != ebiten.KeyS {
		t.Fatalf("unexpected bindings up=%v left=%v down=%v", ctrl.MoveUpKey(), ctrl.MoveLeftKey(), ctrl.MoveDownKey())
	}
	want := movement.Bounds{Min: cp.Vector{X: -5, Y: -1}, Max: cp.Vector{X: 5, Y: 5}}
	if !ctrl.ConstrainMovement() || ctrl.Bounds() != want {
		t.Fatalf("expected constrained %+v, got %+v", want, ctrl.Bounds())
	}
}

func TestApplyMovementSpecBadKeyLeavesController(t *testing.T) {
	ctrl := movement.NewController()
	err := ApplyMovementSpec(ctrl, prefabs.MovementComponentSpec{
		MoveSpeed: float64Ptr(9),
		Keys:      prefabs.KeyBindingsSpec{Up: "ArrowUp", Down: "NotAKey"},
	})
	if !errors.Is(err, movement.ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if ctrl.MoveSpeed() != movement.DefaultMoveSpeed || ctrl.MoveUpKey() != ebiten.KeyW {
		t.Fatalf("controller changed on failed apply")
	}
}

func TestReloadPlayerMovement(t *testing.T) {
	dir := t.TempDir()
	prefabs.SetDir(dir)
	defer prefabs.SetDir("prefabs")

	w := ecs.NewWorld()
	e, err := NewPlayer(w)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}

	m, _ := ecs.Get(w, e, component.MovementComponent.Kind())
	m.Controller.SetConstrainMovement(true)

	body := "name: player\ncomponents:\n  player_tag: {}\n  movement:\n    move_speed: 8\n    smooth_movement: false\n    keys:\n      up: I\n"
	if err := os.WriteFile(filepath.Join(dir, "player.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ReloadPlayerMovement(w); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if !m.Controller.ConstrainMovement() {
		t.Fatalf("reload without constrain_movement should keep the constraint set at runtime")
	}
	if m.Controller.MoveSpeed() != 8 || m.Controller.SmoothMovement() || m.Controller.MoveUpKey() != ebiten.KeyI {
		t.Fatalf("reload not applied: speed=%v smooth=%v up=%v",
			m.Controller.MoveSpeed(), m.Controller.SmoothMovement(), m.Controller.MoveUpKey())
	}
}
