package systems

// Params holds the reconfigurable grid parameters.
type Params struct {
	Length, Width, Depth int     // Cell counts per axis
	CellScale            float64 // Uniform scale applied to the base cell size
	Gap                  float64 // Extra spacing between adjacent cells

	Frequency            float64 // Noise frequency multiplier
	DisplacementFraction float64 // Max jitter as a fraction of spacing, [0, 1]
	AlphaMin, AlphaMax   float64 // Translucency interpolation bounds, [0, 1]
}

// Spacing returns the center-to-center distance for cells of the given base size.
func (p Params) Spacing(baseCellSize float64) float64 {
	return p.Gap + baseCellSize*p.CellScale
}

// Count returns the number of lattice points.
func (p Params) Count() int {
	if p.Length <= 0 || p.Width <= 0 || p.Depth <= 0 {
		return 0
	}
	return p.Length * p.Width * p.Depth
}

// TopologyChanged reports whether moving from p to next invalidates every origin.
// Frequency, displacement and alpha changes never do.
func (p Params) TopologyChanged(next Params) bool {
	return next.Length != p.Length ||
		next.Width != p.Width ||
		next.Depth != p.Depth ||
		next.CellScale != p.CellScale ||
		next.Gap != p.Gap
}
