package telemetry

import "github.com/pthm-cable/fog/systems"

// Collector groups frames into fixed windows and samples the grid at the end
// of each one.
type Collector struct {
	runID        string
	windowFrames int32

	windowStart  int32
	lastRebuilds int

	// Scratch buffers reused across flushes
	alphas []float64
	ratios []float64
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(runID string, windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		runID:        runID,
		windowFrames: int32(windowFrames),
	}
}

// ShouldFlush returns true if the current window is complete.
func (c *Collector) ShouldFlush(frame int32) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush samples grid and starts the next window.
func (c *Collector) Flush(frame int32, grid GridSource) WindowStats {
	p := grid.Params()
	maxDisplacement := grid.Spacing() * p.DisplacementFraction

	c.alphas = c.alphas[:0]
	c.ratios = c.ratios[:0]
	grid.Visit(func(cell systems.CellView) {
		if !cell.Visible {
			return
		}
		c.alphas = append(c.alphas, float64(cell.Alpha))
		c.ratios = append(c.ratios, displacementRatio(cell, maxDisplacement))
	})

	alphaMean, alphaStd := meanStd(c.alphas)
	dispMean, _ := meanStd(c.ratios)

	rebuilds := grid.Rebuilds()
	stats := WindowStats{
		RunID:       c.runID,
		WindowStart: c.windowStart,
		WindowEnd:   frame,
		AnimTime:    grid.Time(),

		Generation: grid.Generation(),
		Live:       grid.Len(),
		Pending:    grid.Pending(),
		Hidden:     grid.Hidden(),
		Spacing:    grid.Spacing(),
		Rebuilds:   rebuilds - c.lastRebuilds,

		AlphaMean:        alphaMean,
		AlphaStd:         alphaStd,
		DisplacementMean: dispMean,
		DisplacementMax:  maxOf(c.ratios),
	}

	c.windowStart = frame
	c.lastRebuilds = rebuilds
	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int32 {
	return c.windowFrames
}
