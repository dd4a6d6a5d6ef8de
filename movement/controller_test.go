package movement

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

type fakeKeys map[ebiten.Key]bool

func (f fakeKeys) IsKeyPressed(k ebiten.Key) bool { return f[k] }

const eps = 1e-9

func TestNewControllerDefaults(t *testing.T) {
	c := NewController()
	if c.MoveSpeed() != DefaultMoveSpeed {
		t.Fatalf("expected speed %v, got %v", DefaultMoveSpeed, c.MoveSpeed())
	}
	if !c.SmoothMovement() {
		t.Fatalf("expected smoothing on by default")
	}
	if c.SmoothTime() != DefaultSmoothTime {
		t.Fatalf("expected smooth time %v, got %v", DefaultSmoothTime, c.SmoothTime())
	}
	if c.ConstrainMovement() {
		t.Fatalf("expected constraint off by default")
	}
	if c.Bounds() != DefaultBounds() {
		t.Fatalf("expected default bounds, got %+v", c.Bounds())
	}
	want := []ebiten.Key{ebiten.KeyW, ebiten.KeyS, ebiten.KeyA, ebiten.KeyD}
	got := []ebiten.Key{c.MoveUpKey(), c.MoveDownKey(), c.MoveLeftKey(), c.MoveRightKey()}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("binding %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSettersClamp(t *testing.T) {
	cases := []struct {
		name       string
		speed      float64
		smooth     float64
		wantSpeed  float64
		wantSmooth float64
	}{
		{"valid", 7.5, 0.3, 7.5, 0.3},
		{"negative_speed", -3, 0.3, 0, 0.3},
		{"zero_smooth_time", 2, 0, 2, MinSmoothTime},
		{"negative_smooth_time", 2, -1, 2, MinSmoothTime},
		{"min_smooth_time", 2, MinSmoothTime, 2, MinSmoothTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController()
			c.SetMoveSpeed(tc.speed)
			c.SetSmoothTime(tc.smooth)
			if c.MoveSpeed() != tc.wantSpeed {
				t.Fatalf("speed: expected %v, got %v", tc.wantSpeed, c.MoveSpeed())
			}
			if c.SmoothTime() != tc.wantSmooth {
				t.Fatalf("smooth time: expected %v, got %v", tc.wantSmooth, c.SmoothTime())
			}
		})
	}
}

func TestSettersIgnoreNaN(t *testing.T) {
	c := NewController()
	c.SetMoveSpeed(math.NaN())
	c.SetSmoothTime(math.NaN())
	if c.MoveSpeed() != DefaultMoveSpeed || c.SmoothTime() != DefaultSmoothTime {
		t.Fatalf("NaN should leave settings unchanged, got speed=%v smooth=%v", c.MoveSpeed(), c.SmoothTime())
	}
}

func TestHandleInput(t *testing.T) {
	cases := []struct {
		name      string
		held      fakeKeys
		wantInput cp.Vector
	}{
		{"none", fakeKeys{}, cp.Vector{}},
		{"up", fakeKeys{ebiten.KeyW: true}, cp.Vector{X: 0, Y: 1}},
		{"down", fakeKeys{ebiten.KeyS: true}, cp.Vector{X: 0, Y: -1}},
		{"left", fakeKeys{ebiten.KeyA: true}, cp.Vector{X: -1, Y: 0}},
		{"right", fakeKeys{ebiten.KeyD: true}, cp.Vector{X: 1, Y: 0}},
		{"up_down_cancel", fakeKeys{ebiten.KeyW: true, ebiten.KeyS: true}, cp.Vector{}},
		{"diagonal_up_right", fakeKeys{ebiten.KeyW: true, ebiten.KeyD: true}, cp.Vector{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}},
		{"diagonal_down_left", fakeKeys{ebiten.KeyS: true, ebiten.KeyA: true}, cp.Vector{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}},
		{"three_keys", fakeKeys{ebiten.KeyW: true, ebiten.KeyA: true, ebiten.KeyD: true}, cp.Vector{X: 0, Y: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController()
			c.SetMoveSpeed(4)
			in := c.HandleInput(tc.held)
			if math.Abs(in.X-tc.wantInput.X) > eps || math.Abs(in.Y-tc.wantInput.Y) > eps {
				t.Fatalf("input: expected %v, got %v", tc.wantInput, in)
			}
			if in.Length() > 1+eps {
				t.Fatalf("input longer than unit: %v", in.Length())
			}
			want := tc.wantInput.Mult(4)
			got := c.TargetVelocity()
			if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps {
				t.Fatalf("target: expected %v, got %v", want, got)
			}
		})
	}
}

func TestHandleInputUsesBindings(t *testing.T) {
	c := NewController()
	c.SetKeyBinding("up", ebiten.KeyArrowUp)
	c.HandleInput(fakeKeys{ebiten.KeyW: true})
	if c.TargetVelocity() != (cp.Vector{}) {
		t.Fatalf("old binding should no longer move, got %v", c.TargetVelocity())
	}
	c.HandleInput(fakeKeys{ebiten.KeyArrowUp: true})
	if c.TargetVelocity().Y != DefaultMoveSpeed {
		t.Fatalf("expected upward target, got %v", c.TargetVelocity())
	}
}

func TestHandleInputNilKeys(t *testing.T) {
	c := NewController()
	if in := c.HandleInput(nil); in != (cp.Vector{}) {
		t.Fatalf("expected zero input, got %v", in)
	}
}

func TestAxisInput(t *testing.T) {
	cases := []struct {
		name    string
		h, v    float64
		wantLen float64
	}{
		{"deadzone", 0.1, 0.05, 0},
		{"partial", 0.5, 0, 0.5},
		{"full_diagonal", 1, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController()
			in := c.AxisInput(tc.h, tc.v)
			if math.Abs(in.Length()-tc.wantLen) > 1e-6 {
				t.Fatalf("expected input length %v, got %v", tc.wantLen, in.Length())
			}
			if math.Abs(c.TargetVelocity().Length()-tc.wantLen*DefaultMoveSpeed) > 1e-6 {
				t.Fatalf("unexpected target %v", c.TargetVelocity())
			}
		})
	}
}

func TestKeyBindingAccessors(t *testing.T) {
	cases := []struct {
		name   string
		action string
		want   ebiten.Key
	}{
		{"up", "up", ebiten.KeyW},
		{"down_upper", "DOWN", ebiten.KeyS},
		{"left_mixed", "Left", ebiten.KeyA},
		{"right", "right", ebiten.KeyD},
		{"unknown", "jump", KeyNone},
		{"empty", "", KeyNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController()
			if got := c.KeyBinding(tc.action); got != tc.want {
				t.Fatalf("KeyBinding(%q) = %v, want %v", tc.action, got, tc.want)
			}
		})
	}
}

func TestSetKeyBinding(t *testing.T) {
	c := NewController()
	c.SetKeyBinding("RIGHT", ebiten.KeyL)
	if c.MoveRightKey() != ebiten.KeyL {
		t.Fatalf("expected right bound to L, got %v", c.MoveRightKey())
	}

	before := []ebiten.Key{c.MoveUpKey(), c.MoveDownKey(), c.MoveLeftKey(), c.MoveRightKey()}
	c.SetKeyBinding("sideways", ebiten.KeyQ)
	after := []ebiten.Key{c.MoveUpKey(), c.MoveDownKey(), c.MoveLeftKey(), c.MoveRightKey()}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("unknown action changed binding %d: %v -> %v", i, before[i], after[i])
		}
	}

	c.ResetToDefaultKeys()
	if c.MoveRightKey() != ebiten.KeyD {
		t.Fatalf("expected reset to D, got %v", c.MoveRightKey())
	}
}

func TestStepDirect(t *testing.T) {
	c := NewController()
	c.SetSmoothMovement(false)
	c.HandleInput(fakeKeys{ebiten.KeyD: true})
	got := c.Step(cp.Vector{X: -3, Y: 2}, 0.02)
	if got != (cp.Vector{X: DefaultMoveSpeed}) {
		t.Fatalf("direct step should return target, got %v", got)
	}
	if c.CurrentVelocity() != (cp.Vector{}) {
		t.Fatalf("direct step should clear smoothing state, got %v", c.CurrentVelocity())
	}
}

func TestStepSmoothConvergesWithoutOvershoot(t *testing.T) {
	c := NewController()
	c.HandleInput(fakeKeys{ebiten.KeyW: true})
	target := c.TargetVelocity().Y

	v := cp.Vector{}
	prev := 0.0
	for i := 0; i < 100; i++ {
		v = c.Step(v, 0.02)
		if v.Y < prev-eps {
			t.Fatalf("step %d: velocity decreased %v -> %v", i, prev, v.Y)
		}
		if v.Y > target+eps {
			t.Fatalf("step %d: overshoot %v > %v", i, v.Y, target)
		}
		if math.Abs(v.X) > eps {
			t.Fatalf("step %d: unexpected x velocity %v", i, v.X)
		}
		prev = v.Y
	}
	if math.Abs(v.Y-target) > 1e-3 {
		t.Fatalf("expected convergence to %v, got %v", target, v.Y)
	}
}

func TestStepSmoothTimeControlsRate(t *testing.T) {
	fast := NewController()
	slow := NewController()
	slow.SetSmoothTime(0.5)
	keys := fakeKeys{ebiten.KeyD: true}
	fast.HandleInput(keys)
	slow.HandleInput(keys)

	vf := fast.Step(cp.Vector{}, 0.02)
	vs := slow.Step(cp.Vector{}, 0.02)
	if vf.X <= vs.X {
		t.Fatalf("shorter smooth time should respond faster: fast=%v slow=%v", vf.X, vs.X)
	}
}

func TestStepZeroDtKeepsVelocity(t *testing.T) {
	c := NewController()
	c.HandleInput(fakeKeys{ebiten.KeyD: true})
	v := cp.Vector{X: 1.5}
	if got := c.Step(v, 0); got != v {
		t.Fatalf("expected unchanged velocity, got %v", got)
	}
}

func TestClampPositionStaysInBounds(t *testing.T) {
	c := NewController()
	c.SetConstrainMovement(true)
	c.SetBounds(cp.Vector{X: 4, Y: 3}, cp.Vector{X: -2, Y: -6})

	b := c.Bounds()
	if b.Min != (cp.Vector{X: -2, Y: -6}) || b.Max != (cp.Vector{X: 4, Y: 3}) {
		t.Fatalf("expected corners to be reordered, got %+v", b)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		p := cp.Vector{X: rng.Float64()*40 - 20, Y: rng.Float64()*40 - 20}
		got := c.ClampPosition(p)
		if !b.Contains(got) {
			t.Fatalf("clamped %v to %v outside %+v", p, got, b)
		}
		if b.Contains(p) && got != p {
			t.Fatalf("point inside bounds moved: %v -> %v", p, got)
		}
	}
}

func TestClampPositionDisabled(t *testing.T) {
	c := NewController()
	p := cp.Vector{X: 100, Y: -100}
	if got := c.ClampPosition(p); got != p {
		t.Fatalf("expected unconstrained position, got %v", got)
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    ebiten.Key
		wantErr bool
	}{
		{"letter", "w", ebiten.KeyW, false},
		{"arrow", "ArrowUp", ebiten.KeyArrowUp, false},
		{"none", "None", KeyNone, false},
		{"empty", "", KeyNone, false},
		{"bogus", "Hyperspace", KeyNone, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseKey(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownKey) {
					t.Fatalf("expected ErrUnknownKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseKey(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
	if KeyName(KeyNone) != "None" {
		t.Fatalf("expected None name for KeyNone, got %q", KeyName(KeyNone))
	}
	if k, err := ParseKey(KeyName(ebiten.KeyArrowLeft)); err != nil || k != ebiten.KeyArrowLeft {
		t.Fatalf("round trip failed: %v %v", k, err)
	}
}
