package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// panStep is the arrow key pan distance per frame as a fraction of orbit distance.
const panStep = 0.01

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyTab) && g.panel != nil {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		if !g.HideNearest() {
			slog.Debug("no visible cell to hide")
		}
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.grid.Rebuild()
	}

	g.handleCameraInput()
}

// handleResize tracks the window size for HUD layout.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = int32(rl.GetScreenWidth())
	g.screenHeight = int32(rl.GetScreenHeight())
}

// handleCameraInput processes orbit, pan and zoom controls.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	overPanel := g.panel != nil && g.panel.Contains(mouse)

	// Right drag orbits
	if rl.IsMouseButtonDown(rl.MouseButtonRight) && !overPanel {
		delta := rl.GetMouseDelta()
		g.camera.Orbit(-float64(delta.X)*g.orbitSpeed, float64(delta.Y)*g.orbitSpeed)
	}

	// Arrow key panning scales with distance
	step := g.camera.Distance * panStep
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(step, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, -step)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		if wheel > 0 {
			g.camera.ZoomBy(g.zoomSpeed)
		} else {
			g.camera.ZoomBy(1 / g.zoomSpeed)
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.camera.Reset()
	}
}
