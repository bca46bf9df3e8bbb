// Noise preview tool - plots the 1-D noise sources with interactive sliders.
//
// Usage: go run ./cmd/noisepreview
package main

import (
	"fmt"
	"log/slog"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fog/config"
	"github.com/pthm-cable/fog/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	plotWidth    = 700
	plotHeight   = 220
	panelWidth   = windowWidth - plotWidth - 40
	samples      = 400
)

// previewParams holds the tunable noise settings.
type previewParams struct {
	Frequency    float32
	Span         float32 // World units covered by the plot
	Seed         float32
	PerlinAlpha  float32
	PerlinBeta   float32
	PerlinOctave float32
}

// source is one plotted noise curve.
type source struct {
	kind  string
	color rl.Color
	noise systems.Noise1D
}

func defaults(cfg *config.Config) previewParams {
	return previewParams{
		Frequency:    float32(cfg.Animation.Frequency),
		Span:         80,
		Seed:         float32(cfg.Noise.Seed),
		PerlinAlpha:  float32(cfg.Noise.PerlinAlpha),
		PerlinBeta:   float32(cfg.Noise.PerlinBeta),
		PerlinOctave: float32(cfg.Noise.PerlinOctave),
	}
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return
	}

	rl.InitWindow(windowWidth, windowHeight, "Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaults(cfg)
	sources := buildSources(cfg.Noise, params)

	var t float64
	animating := false
	needsRebuild := false

	for !rl.WindowShouldClose() {
		if animating {
			t += cfg.Animation.TimeStep
		}
		if needsRebuild {
			sources = buildSources(cfg.Noise, params)
			needsRebuild = false
		}
		eased := math.Sin(t)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// One plot per source
		plotY := int32(10)
		for _, s := range sources {
			drawPlot(10, plotY, s, params, eased)
			plotY += plotHeight + 15
		}

		// Control panel
		panelX := float32(plotWidth + 30)
		panelY := float32(10)

		rl.DrawText("Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		var changed bool
		params.Frequency, panelY, _ = slider(panelX, panelY, "Frequency", "%.3f", params.Frequency, 0.01, 1)
		params.Span, panelY, _ = slider(panelX, panelY, "Span (world units)", "%.0f", params.Span, 10, 400)
		params.Seed, panelY, changed = slider(panelX, panelY, "Seed", "%.0f", params.Seed, 0, 9999)
		needsRebuild = needsRebuild || changed

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+panelWidth-20, int32(panelY), rl.LightGray)
		panelY += 15
		rl.DrawText("Perlin", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		params.PerlinAlpha, panelY, changed = slider(panelX, panelY, "Alpha (amplitude falloff)", "%.2f", params.PerlinAlpha, 1, 4)
		needsRebuild = needsRebuild || changed
		params.PerlinBeta, panelY, changed = slider(panelX, panelY, "Beta (frequency gain)", "%.2f", params.PerlinBeta, 1, 4)
		needsRebuild = needsRebuild || changed
		params.PerlinOctave, panelY, changed = slider(panelX, panelY, "Octaves", "%.0f", params.PerlinOctave, 1, 8)
		needsRebuild = needsRebuild || changed
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = float32(rl.GetRandomValue(0, 9999))
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults(cfg)
			t = 0
			needsRebuild = true
		}
		panelY += 55

		rl.DrawText(fmt.Sprintf("Time: %.2f  Eased: %+.3f", t, eased), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		// Output YAML
		yaml := configYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// buildSources creates one noise source of each kind with the preview settings.
func buildSources(base config.NoiseConfig, params previewParams) []source {
	base.Seed = int64(params.Seed)
	base.PerlinAlpha = float64(params.PerlinAlpha)
	base.PerlinBeta = float64(params.PerlinBeta)
	base.PerlinOctave = int32(params.PerlinOctave)

	kinds := []struct {
		kind  string
		color rl.Color
	}{
		{systems.NoiseValue, rl.DarkBlue},
		{systems.NoiseSimplex, rl.DarkGreen},
		{systems.NoisePerlin, rl.Maroon},
	}

	var sources []source
	for _, k := range kinds {
		cfg := base
		cfg.Kind = k.kind
		n, err := systems.NewNoise(cfg)
		if err != nil {
			slog.Error("noise source unavailable", "kind", k.kind, "error", err)
			continue
		}
		sources = append(sources, source{kind: k.kind, color: k.color, noise: n})
	}
	return sources
}

// drawPlot draws a source's curve over the span as the grid samples it.
func drawPlot(x, y int32, s source, params previewParams, eased float64) {
	rl.DrawRectangle(x, y, plotWidth, plotHeight, rl.Color{R: 245, G: 245, B: 245, A: 255})
	rl.DrawRectangleLines(x, y, plotWidth, plotHeight, rl.DarkGray)

	mid := float32(y) + plotHeight/2
	rl.DrawLine(x, int32(mid), x+plotWidth, int32(mid), rl.LightGray)

	var prev rl.Vector2
	var minV, maxV float64 = 1, -1
	for i := 0; i <= samples; i++ {
		world := float64(params.Span) * float64(i) / samples
		v := s.noise.Sample(float64(params.Frequency) * (eased + world))
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)

		pt := rl.Vector2{
			X: float32(x) + float32(i)*plotWidth/samples,
			Y: mid - float32(v)*(plotHeight/2-4),
		}
		if i > 0 {
			rl.DrawLineV(prev, pt, s.color)
		}
		prev = pt
	}

	rl.DrawText(s.kind, x+8, y+6, 16, s.color)
	rl.DrawText(fmt.Sprintf("min %+.3f  max %+.3f", minV, maxV), x+plotWidth-190, y+6, 14, rl.DarkGray)
}

// slider draws a labelled slider and returns the value, next Y and whether it moved.
func slider(x, y float32, label, format string, value, min, max float32) (float32, float32, bool) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return next, y + 35, next != value
}

func configYAML(p previewParams) string {
	return fmt.Sprintf(`animation:
  frequency: %.3f
noise:
  seed: %d
  perlin_alpha: %.2f
  perlin_beta: %.2f
  perlin_octaves: %d`,
		p.Frequency, int64(p.Seed), p.PerlinAlpha, p.PerlinBeta, int32(p.PerlinOctave))
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
