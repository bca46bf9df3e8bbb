package components

import "gonum.org/v1/gonum/spatial/r3"

// Origin is a cell's rest position on the grid lattice.
// Displacement is always computed relative to it, never accumulated.
type Origin struct {
	r3.Vec
}

// Position is a cell's displaced position as of the last update.
type Position struct {
	r3.Vec
}
