package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
	"github.com/milk9111/topdown/settings"
	"github.com/milk9111/topdown/telemetry"
)

type Game struct {
	frames int
	debug  bool
	tps    int

	world  *ecs.World
	frame  *ecs.Scheduler
	fixed  *ecs.FixedScheduler
	camera *system.CameraSystem
	render *system.RenderSystem

	menu    *settings.Menu
	watcher *prefabs.Watcher
	trace   *telemetry.Recorder
}

func NewGame(opts options) (*Game, error) {
	tps := opts.tps
	if tps <= 0 {
		tps = common.DefaultTPS
	}
	hz := opts.physicsHz
	if hz <= 0 {
		hz = common.DefaultPhysicsHz
	}
	step := 1.0 / float64(hz)

	if opts.prefabDir != "" {
		prefabs.SetDir(opts.prefabDir)
	}

	w := ecs.NewWorld()
	if _, err := entity.NewArena(w); err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	player, err := entity.NewPlayer(w)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	if _, err := entity.NewCamera(w); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	var ctrl *movement.Controller
	if mv, ok := ecs.Get(w, player, component.MovementComponent.Kind()); ok {
		ctrl = mv.Controller
	}

	rec, err := telemetry.Create(opts.trace)
	if err != nil {
		return nil, err
	}

	phys := system.NewPhysicsSystem(step, cp.Vector{X: 0, Y: common.Gravity})
	g := &Game{
		debug: opts.debug,
		tps:   tps,
		world: w,
		frame: ecs.NewScheduler(
			system.NewBodySetupSystem(),
			system.NewInputSystem(nil, system.EbitenGamepad{}),
		),
		fixed: ecs.NewFixedScheduler(step,
			phys.SyncSystem(),
			system.NewMovementSystem(step),
			phys,
			system.NewConstraintSystem(),
		),
		camera: system.NewCameraSystem(),
		render: system.NewRenderSystem(),
		menu:   settings.NewMenu(settings.NewModel(ctrl)),
		trace:  rec,
	}
	if rec != nil {
		g.fixed.Add(system.NewTraceSystem(rec))
		log.Printf("trace: recording to %s", opts.trace)
	}

	if opts.watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir())
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = watcher
			log.Printf("prefabs: watching %s", prefabs.Dir())
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.menu.Capturing() {
		g.menu.Toggle()
	}
	if g.menu.IsOpen() {
		g.menu.Update()
		return nil
	}

	g.frame.Update(g.world)
	g.fixed.Advance(g.world, 1/float64(g.tps))
	g.camera.Update(g.world)
	return nil
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, err := range g.watcher.DrainErrors() {
		log.Printf("prefabs: watch: %v", err)
	}
	for _, name := range g.watcher.Drain() {
		if name != "player.yaml" {
			continue
		}
		if err := entity.ReloadPlayerMovement(g.world); err != nil {
			log.Printf("prefabs: reload %s: %v", name, err)
			continue
		}
		log.Printf("prefabs: reloaded %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen, g.fixed.Alpha())
	g.menu.Draw(screen)

	if !g.debug {
		return
	}
	msg := fmt.Sprintf("TPS: %.1f  FPS: %.1f  Frames: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), g.frames)
	if ctrl := g.menu.Controller(); ctrl != nil {
		v := ctrl.CurrentVelocity()
		target := ctrl.TargetVelocity()
		msg += fmt.Sprintf("\nTarget: (%.2f, %.2f)  Accel: (%.2f, %.2f)\nSmooth: %v  Constrain: %v",
			target.X, target.Y, v.X, v.Y, ctrl.SmoothMovement(), ctrl.ConstrainMovement())
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
	if err := g.trace.Close(); err != nil {
		log.Printf("trace: close: %v", err)
	}
}
