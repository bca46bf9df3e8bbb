// Package game wires the fog grid to its renderer, camera, controls and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fog/camera"
	"github.com/pthm-cable/fog/config"
	"github.com/pthm-cable/fog/renderer"
	"github.com/pthm-cable/fog/systems"
	"github.com/pthm-cable/fog/telemetry"
	"github.com/pthm-cable/fog/ui"
)

// Options configures a game instance.
type Options struct {
	Seed      int64  // Noise seed override (0 = use config)
	LogStats  bool   // Log window stats via slog
	OutputDir string // Directory for CSV logs and config snapshot (empty = disabled)
	Headless  bool   // Run without raylib
}

// scene is the rendering collaborator plus its per-frame load pump.
type scene interface {
	systems.Scene
	Service() int
}

// Game holds the complete application state.
type Game struct {
	grid   *systems.VolumetricGrid
	scene  scene
	cells  *renderer.CellRenderer // nil when headless
	camera *camera.Camera

	// UI
	panel *ui.GridPanel
	hud   *ui.HUD

	// Telemetry
	runID         string
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	lastStats     telemetry.WindowStats

	// State
	frame    int32
	paused   bool
	headless bool

	// Window dimensions
	screenWidth, screenHeight int32
	orbitSpeed, zoomSpeed     float64
}

// NewGame creates a game from the global configuration. In graphical mode
// the raylib window must already be open.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()
	if opts.Seed != 0 {
		cfg.Noise.Seed = opts.Seed
	}

	gridOpts, params, err := systems.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("configuring grid: %w", err)
	}

	cam := camera.New(vec(cfg.Camera.Home), vec(cfg.Camera.Target), float32(cfg.Camera.Fovy))
	cam.MinDist = cfg.Camera.MinDist
	cam.MaxDist = cfg.Camera.MaxDist

	g := &Game{
		camera:        cam,
		runID:         telemetry.NewRunID(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		screenWidth:   int32(cfg.Screen.Width),
		screenHeight:  int32(cfg.Screen.Height),
		orbitSpeed:    cfg.Camera.OrbitSpeed,
		zoomSpeed:     cfg.Camera.ZoomSpeed,
	}
	g.collector = telemetry.NewCollector(g.runID, cfg.Telemetry.StatsWindow)

	if opts.Headless {
		g.scene = renderer.NewHeadless(cfg.Renderer.LoadsPerFrame)
	} else {
		g.cells = renderer.NewCellRenderer(float32(cfg.Grid.BaseCellSize), cfg.Renderer.LoadsPerFrame)
		g.scene = g.cells
		g.panel = ui.NewGridPanel(10, 10, 240)
		g.hud = ui.NewHUD()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir, g.runID)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	gridOpts.Logger = slog.Default().With("run_id", g.runID)
	g.grid = systems.NewVolumetricGrid(g.scene, cam, gridOpts, params)

	return g, nil
}

// Update runs one frame of simulation in graphical mode. Draw completes the
// frame's timing.
func (g *Game) Update() {
	g.handleInput()
	g.step()
}

// UpdateHeadless runs one frame without input or drawing.
func (g *Game) UpdateHeadless() {
	g.step()
	g.perfCollector.EndFrame()
}

// step services pending loads, advances the animation and samples telemetry.
func (g *Game) step() {
	pc := g.perfCollector
	pc.StartFrame()

	pc.StartPhase(telemetry.PhaseService)
	g.scene.Service()

	pc.StartPhase(telemetry.PhaseDrain)
	g.grid.Drain()

	if !g.paused {
		pc.StartPhase(telemetry.PhaseAnimate)
		g.grid.Update()
	}
	g.frame++

	pc.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
}

// Reconfigure applies new grid parameters.
func (g *Game) Reconfigure(params systems.Params) {
	if g.grid.Reconfigure(params) {
		slog.Debug("grid reconfigured with rebuild", "frame", g.frame, "generation", g.grid.Generation())
	}
}

// TogglePause pauses or resumes the animation. Loads keep completing while paused.
func (g *Game) TogglePause() bool {
	g.paused = !g.paused
	return g.paused
}

// HideNearest hides the visible cell closest to the camera.
func (g *Game) HideNearest() bool {
	eye := g.camera.CameraPosition()

	var (
		found   bool
		best    systems.CellView
		bestDst = math.Inf(1)
	)
	g.grid.Visit(func(c systems.CellView) {
		if !c.Visible {
			return
		}
		if d := r3.Norm(r3.Sub(c.Position, eye)); d < bestDst {
			best, bestDst, found = c, d, true
		}
	})
	if !found {
		return false
	}
	return g.grid.Hide(best.Cell)
}

// Unload releases the grid, renderer resources and output files.
func (g *Game) Unload() {
	g.grid.Close()
	if g.cells != nil {
		g.cells.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Frame returns the number of frames run.
func (g *Game) Frame() int32 {
	return g.frame
}

// Grid returns the fog grid.
func (g *Game) Grid() *systems.VolumetricGrid {
	return g.grid
}

// Camera returns the orbit camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// RunID returns the identifier stamped on this run's telemetry.
func (g *Game) RunID() string {
	return g.runID
}

func vec(v [3]float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}
