package systems

// Reconfigure applies a full parameter set. All values are stored and the
// spacing recomputed; the population is rebuilt only when the topology changed.
// Returns whether a rebuild was triggered. Creation is asynchronous and this
// call never waits for it.
func (g *VolumetricGrid) Reconfigure(next Params) bool {
	rebuild := g.params.TopologyChanged(next)

	g.params = next
	g.spacing = next.Spacing(g.opts.BaseCellSize)

	if !rebuild {
		g.logger.Debug("volumetric grid parameters updated in place",
			"frequency", next.Frequency,
			"displacement", next.DisplacementFraction,
			"alpha_min", next.AlphaMin,
			"alpha_max", next.AlphaMax,
		)
		return false
	}

	g.Rebuild()
	return true
}

// UpdateGrid is Reconfigure with the parameters spelled out, in the order the
// control surface reports them.
func (g *VolumetricGrid) UpdateGrid(length, width, depth int, scale, gap, frequency, displacement, alphaMin, alphaMax float64) bool {
	return g.Reconfigure(Params{
		Length:               length,
		Width:                width,
		Depth:                depth,
		CellScale:            scale,
		Gap:                  gap,
		Frequency:            frequency,
		DisplacementFraction: displacement,
		AlphaMin:             alphaMin,
		AlphaMax:             alphaMax,
	})
}
