package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fog/systems"
)

// Slider ranges for the grid panel.
const (
	maxCellsPerAxis = 20
	maxCellScale    = 10
	maxGap          = 10
	minFrequency    = 0.01
)

// GridPanel edits the grid parameters. It keeps a draft while the user drags
// a slider and reports one parameter set per interaction, when the mouse is
// released or a button is clicked.
type GridPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	draft   systems.Params
	editing bool
}

// NewGridPanel creates a grid panel at the given position.
func NewGridPanel(x, y, width int32) *GridPanel {
	return &GridPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (p *GridPanel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility. Hiding the panel discards any draft.
func (p *GridPanel) Toggle() bool {
	p.visible = !p.visible
	p.editing = false
	return p.visible
}

// Contains reports whether a screen point falls on the visible panel.
func (p *GridPanel) Contains(point rl.Vector2) bool {
	if !p.visible {
		return false
	}
	bounds := rl.Rectangle{X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: float32(p.height())}
	return rl.CheckCollisionPointRec(point, bounds)
}

// Editing reports whether a draft differs from the applied parameters.
func (p *GridPanel) Editing() bool {
	return p.editing
}

// Draw renders the panel for the current parameters and returns the
// parameters to apply and whether they changed.
func (p *GridPanel) Draw(current systems.Params) (systems.Params, bool) {
	if !p.visible {
		return current, false
	}
	if !p.editing {
		p.draft = current
	}

	r := p.renderer
	padding := r.Theme.Padding
	inner := p.width - padding*2
	x := p.x + padding

	r.DrawPanel(p.x, p.y, p.width, p.height())
	y := p.y + padding

	rl.DrawText("Fog Grid", x, y, 16, rl.White)
	y += r.Theme.LineHeight + 6

	d := &p.draft
	clicked := false

	y = r.DrawSectionHeader(x, y, "Topology")
	for _, axis := range []struct {
		label string
		value *int
	}{
		{"Length", &d.Length},
		{"Width", &d.Width},
		{"Depth", &d.Depth},
	} {
		var step bool
		y, step = p.axisRow(x, y, inner, axis.label, axis.value)
		clicked = clicked || step
	}

	y = p.slider(x, y, inner, "Scale", "%.2f", &d.CellScale, current.CellScale, 0.1, maxCellScale)
	y = p.slider(x, y, inner, "Gap", "%.2f", &d.Gap, current.Gap, 0, maxGap)

	y = r.DrawSectionHeader(x, y+4, "Animation")
	y = p.slider(x, y, inner, "Frequency", "%.3f", &d.Frequency, current.Frequency, minFrequency, 1)
	y = p.slider(x, y, inner, "Displacement", "%.3f", &d.DisplacementFraction, current.DisplacementFraction, 0, 1)
	y = p.slider(x, y, inner, "Alpha min", "%.3f", &d.AlphaMin, current.AlphaMin, 0, 1)
	p.slider(x, y, inner, "Alpha max", "%.3f", &d.AlphaMax, current.AlphaMax, 0, 1)
	p.draft = sanitize(current, p.draft)

	released := clicked || rl.IsMouseButtonReleased(rl.MouseButtonLeft)
	next, changed := commit(current, p.draft, released)
	p.editing = !released && p.draft != current
	return next, changed
}

// axisRow draws a cell count with step buttons and a slider. Returns the new
// Y position and whether a button was clicked.
func (p *GridPanel) axisRow(x, y, width int32, label string, value *int) (int32, bool) {
	r := p.renderer
	const button = 20

	clicked := false
	if gui.Button(rl.Rectangle{X: float32(x + width - 2*button - 4), Y: float32(y - 2), Width: button, Height: button}, "-") {
		*value = clampCount(*value - 1)
		clicked = true
	}
	if gui.Button(rl.Rectangle{X: float32(x + width - button), Y: float32(y - 2), Width: button, Height: button}, "+") {
		*value = clampCount(*value + 1)
		clicked = true
	}

	rl.DrawText(fmt.Sprintf("%s: %d", label, *value), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight + 4

	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: r.Theme.SliderHeight}
	slid := gui.SliderBar(bounds, "", "", float32(*value), 1, maxCellsPerAxis)
	if n := clampCount(int(slid + 0.5)); n != *value && !clicked {
		*value = n
	}
	return y + int32(r.Theme.SliderHeight) + 6, clicked
}

// slider edits one float parameter. The draft is written only when the
// slider moves, so float32 rounding never creates a spurious edit.
func (p *GridPanel) slider(x, y, width int32, label, format string, value *float64, applied float64, min, max float32) int32 {
	before := float32(*value)
	after, y := p.renderer.Slider(x, y, label, format, before, min, max, width, *value != applied)
	if after != before {
		*value = float64(after)
	}
	return y
}

// height returns the panel height for its fixed layout.
func (p *GridPanel) height() int32 {
	t := p.renderer.Theme
	slider := t.LineHeight + int32(t.SliderHeight) + 6
	axis := t.LineHeight + 4 + int32(t.SliderHeight) + 6
	return t.Padding*2 + t.LineHeight + 6 + // title
		2*(t.LineHeight+2) + 4 + // section headers
		3*axis + 6*slider
}

// commit returns the parameters to apply for this frame. A draft is applied
// only when the interaction ends; otherwise current is returned unchanged.
func commit(current, draft systems.Params, released bool) (systems.Params, bool) {
	draft = sanitize(current, draft)
	if !released || draft == current {
		return current, false
	}
	return draft, true
}

// sanitize keeps a draft within the ranges the grid accepts. Frequency stays
// positive, and the alpha bound that moved past the other one drags it along.
func sanitize(current, draft systems.Params) systems.Params {
	if draft.Frequency < minFrequency {
		draft.Frequency = minFrequency
	}
	if draft.AlphaMin > draft.AlphaMax {
		if draft.AlphaMin != current.AlphaMin {
			draft.AlphaMax = draft.AlphaMin
		} else {
			draft.AlphaMin = draft.AlphaMax
		}
	}
	return draft
}

func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxCellsPerAxis {
		return maxCellsPerAxis
	}
	return n
}
