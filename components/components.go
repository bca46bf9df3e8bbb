// Package components defines ECS components for fog volume cells.
package components

// ElementID is the rendering collaborator's handle for a live scene element.
type ElementID uint32

// Element links a tracked cell to its scene element.
type Element struct {
	ID ElementID
}

// Visibility gates animation. Once a cell is hidden it is never shown again.
type Visibility struct {
	Visible bool
}

// Generation tags a cell with the population build that created it.
type Generation struct {
	Value uint32
}

// Tint is a normalized RGBA colour. Alpha carries the animated translucency.
type Tint struct {
	R, G, B, A float32
}

// Finish is the fixed visual finalization applied once when a cell's asset loads.
type Finish struct {
	TexRepeats float32
	Specular   Tint
	Shininess  float32
}

// CellState is a cell's position in its lifecycle.
// Transitions only move forward: Pending -> Active -> Hidden -> Removed.
type CellState uint8

const (
	StatePending CellState = iota // Creation requested, not yet tracked
	StateActive                   // Tracked and animated while visible
	StateHidden                   // Tracked, no longer animated
	StateRemoved                  // Untracked, scene element released
)

// String returns the display name for a CellState.
func (s CellState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateActive:
		return "Active"
	case StateHidden:
		return "Hidden"
	case StateRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}
