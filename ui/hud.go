package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Generation   uint32
	Live         int
	Pending      int
	Hidden       int
	Rebuilds     int
	Spacing      float64
	Time         float64
	AlphaMean    float32
	Frame        int32
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top right corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	const width = 260
	x := data.ScreenWidth - width - r.Theme.Padding
	y := r.Theme.Padding

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 26

	y = r.DrawLabelValue(x, y, "Generation", fmt.Sprintf("%d (%d rebuilds)", data.Generation, data.Rebuilds))
	y = r.DrawLabelValue(x, y, "Cells", fmt.Sprintf("%d live | %d pending | %d hidden", data.Live, data.Pending, data.Hidden))
	y = r.DrawLabelValue(x, y, "Spacing", fmt.Sprintf("%.2f", data.Spacing))
	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.2f", data.Time))
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d | FPS: %d", data.Frame, data.FPS))
	y = r.DrawBar(x, y, "Alpha", data.AlphaMean, width)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, x, y+4, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
