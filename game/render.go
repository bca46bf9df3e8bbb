package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fog/telemetry"
	"github.com/pthm-cable/fog/ui"
)

const controlsLegend = "Right drag: orbit | Wheel: zoom | Arrows: pan | R: reset camera | Space: pause | Tab: panel | H: hide nearest | B: rebuild"

// Draw renders the cells, the control panel and the HUD, and ends the
// frame's timing.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 24, A: 255})

	g.cells.Draw(g.camera)
	g.drawUI()

	rl.EndDrawing()

	g.perfCollector.EndFrame()
}

// drawUI draws the panel, applying any committed edit, and the HUD.
func (g *Game) drawUI() {
	if next, changed := g.panel.Draw(g.grid.Params()); changed {
		g.Reconfigure(next)
	}

	g.hud.Draw(ui.HUDData{
		Title:        "Volumetric Fog",
		Generation:   g.grid.Generation(),
		Live:         g.grid.Len(),
		Pending:      g.grid.Pending(),
		Hidden:       g.grid.Hidden(),
		Rebuilds:     g.grid.Rebuilds(),
		Spacing:      g.grid.Spacing(),
		Time:         g.grid.Time(),
		AlphaMean:    float32(g.lastStats.AlphaMean),
		Frame:        g.frame,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  g.screenWidth,
		ScreenHeight: g.screenHeight,
	})
	g.hud.DrawControls(g.screenHeight, controlsLegend)
}
