// Package game runs the interactive seabed session: window, input, the
// simulation context and drawing.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/internal/config"
	"github.com/Faultbox/seabed/internal/engine/camera"
	"github.com/Faultbox/seabed/internal/engine/debug"
	"github.com/Faultbox/seabed/internal/engine/input"
	"github.com/Faultbox/seabed/internal/engine/renderer"
	"github.com/Faultbox/seabed/internal/engine/window"
	"github.com/Faultbox/seabed/internal/logger"
	"github.com/Faultbox/seabed/internal/scene"
	"github.com/Faultbox/seabed/internal/sim"
	"github.com/Faultbox/seabed/internal/whale"
)

const title = "Seabed"

// Game is the interactive session.
type Game struct {
	config  *config.Config
	running  bool
	debug    bool
	lighting lightingMode

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FirstPerson

	models *assets.Manager
	scene  *scene.Scene
	ctx    *sim.Context
	loader *loader

	static  debug.Lines
	dynamic debug.Lines

	log *zap.Logger
}

// New opens the window and prepares a session. Models and props load in
// the background once Run starts.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	g := &Game{
		config: cfg,
		debug:  cfg.Logging.Level == "debug",
		log:    log,
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context must exist before the renderer.
	w, h := g.window.Size()
	water, density := g.lighting.fog()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		WaterColor: water,
		FogDensity: density,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.input = input.New()
	g.models = assets.NewManager(cfg.Whale.LoadDelay)
	g.scene = scene.New()
	g.ctx = sim.New(cfg, rand.New(rand.NewSource(seed)))
	g.camera = camera.NewFirstPerson(g.ctx.Player, cfg.Graphics.FOV, cfg.Player.LookSensitivity)
	g.loader = startLoading(cfg, g.models, seed+1)

	buildStatic(&g.static, nil, cfg.World.Radius, cfg.World.SeafloorY, false)
	g.renderer.SetStatic(&g.static)

	log.Info("initialized", zap.Int64("seed", seed))
	return g, nil
}

// Run drives frames until the window is closed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleWindowEvents()

		if !g.loader.done() {
			g.loader.poll(g.onWhale, g.onProps)
		}

		g.update(float32(dt))
		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Stringer("player", g.ctx.Player),
				zap.Stringer("whale", g.ctx.Whale.Position),
				zap.Stringer("state", g.ctx.Whale.State),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the loader, GL resources and the window.
func (g *Game) Close() {
	g.log.Info("closing", zap.Int("frames", g.ctx.Frames), zap.Float32("elapsed", g.ctx.Elapsed))

	if g.loader != nil {
		g.loader.stop()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleWindowEvents() {
	if _, _, ok := g.input.Resized(); ok {
		// Drawable size differs from window size on high-DPI displays.
		g.renderer.Resize(g.window.Size())
	}
	if g.input.LightingToggled() {
		g.lighting = g.lighting.toggle()
		g.renderer.SetFog(g.lighting.fog())
		g.log.Info("lighting changed", zap.Stringer("mode", g.lighting))
	}
	if g.input.CaptureChanged() {
		if err := g.window.SetPointerCaptured(g.input.Captured()); err != nil {
			g.log.Warn("pointer capture failed", zap.Error(err))
		}
	}
}

func (g *Game) onWhale(m *assets.Model) {
	if g.ctx.Deliver(whale.NewBundle(m, g.config.Whale.Scale)) {
		g.log.Info("whale ready", zap.Int("vertices", m.VertexCount()))
	}
}

func (g *Game) onProps(ps []scene.Placement) {
	g.scene.Populate(ps, g.ctx.Registry)
	buildStatic(&g.static, g.scene, g.config.World.Radius, g.config.World.SeafloorY, g.debug)
	g.renderer.SetStatic(&g.static)
}

func (g *Game) update(rawDT float32) {
	if g.input.Captured() {
		g.camera.Look(g.input.Look())
	}

	g.ctx.Frame(rawDT, g.input.Snapshot(g.camera.Forward()))
	g.camera.Position = g.ctx.Player
}

func (g *Game) render() {
	buildWhale(&g.dynamic, g.ctx.Whale, g.config.Whale.Scale, g.debug)

	viewProj := g.camera.ProjectionMatrix(g.renderer.Aspect()).Mul(g.camera.ViewMatrix())
	g.renderer.Draw(viewProj, &g.dynamic)
}
