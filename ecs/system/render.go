package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

var (
	arenaColor  = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}
	boundsColor = color.RGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0x90}
)

// view maps Y-up world units onto Y-down screen pixels around a camera.
type view struct {
	camX, camY float64
	scale      float64
	halfW      float64
	halfH      float64
}

func (v view) project(x, y float64) (float64, float64) {
	return v.halfW + (x-v.camX)*v.scale, v.halfH - (y-v.camY)*v.scale
}

// rect returns the screen-space top-left corner and size of a world rect.
func (v view) rect(minX, minY, maxX, maxY float64) (float32, float32, float32, float32) {
	x, y := v.project(minX, maxY)
	return float32(x), float32(y), float32((maxX - minX) * v.scale), float32((maxY - minY) * v.scale)
}

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) viewFor(w *ecs.World, screenW, screenH int) view {
	if !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	v := view{scale: common.PixelsPerUnit, halfW: float64(screenW) / 2, halfH: float64(screenH) / 2}
	if t, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		v.camX = t.X
		v.camY = t.Y
	}
	if c, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		v.scale *= c.Zoom
	}
	return v
}

// drawPosition blends a moving body between its last two physics steps.
// alpha is how far the accumulator is into the next step.
func drawPosition(t *component.Transform, alpha float64, interpolate bool) (float64, float64) {
	if !interpolate {
		return t.X, t.Y
	}
	alpha = common.Clamp(alpha, 0, 1)
	return common.Lerp(t.PrevX, t.X, alpha), common.Lerp(t.PrevY, t.Y, alpha)
}

// Draw renders the world. alpha comes from the fixed scheduler and is used to
// interpolate dynamic bodies between physics steps.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, alpha float64) {
	if r == nil || w == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	v := r.viewFor(w, b.Dx(), b.Dy())

	ecs.ForEach(w, component.ArenaBoundsComponent.Kind(), func(_ ecs.Entity, a *component.ArenaBounds) {
		x, y, wd, ht := v.rect(a.MinX, a.MinY, a.MaxX, a.MaxY)
		vector.StrokeRect(screen, x, y, wd, ht, 2, arenaColor, false)
	})

	ecs.ForEach(w, component.MovementComponent.Kind(), func(_ ecs.Entity, m *component.Movement) {
		if m.Controller == nil || !m.Controller.ConstrainMovement() {
			return
		}
		bounds := m.Controller.Bounds()
		x, y, wd, ht := v.rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		vector.StrokeRect(screen, x, y, wd, ht, 1, boundsColor, false)
	})

	entities := w.Query(component.TransformComponent.Kind(), component.ShapeRenderComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.ShapeRenderComponent.Kind())
		sj, _ := ecs.Get(w, entities[j], component.ShapeRenderComponent.Kind())
		return si.Layer < sj.Layer
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.ShapeRenderComponent.Kind())
		clr := s.Color
		if clr == nil {
			clr = color.White
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		px, py := drawPosition(t, alpha, ok && body.Body != nil && !body.Static)
		if s.Radius > 0 {
			cx, cy := v.project(px, py)
			vector.FillCircle(screen, float32(cx), float32(cy), float32(s.Radius*v.scale), clr, true)
			continue
		}
		x, y, wd, ht := v.rect(px-s.Width/2, py-s.Height/2, px+s.Width/2, py+s.Height/2)
		vector.FillRect(screen, x, y, wd, ht, clr, false)
	}
}
