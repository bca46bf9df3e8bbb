package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fog/systems"
)

// fakeGrid is a fixed GridSource.
type fakeGrid struct {
	cells    []systems.CellView
	params   systems.Params
	spacing  float64
	gen      uint32
	rebuilds int
	pending  int
	time     float64
}

func (g *fakeGrid) Visit(fn func(c systems.CellView)) {
	for _, c := range g.cells {
		fn(c)
	}
}

func (g *fakeGrid) Params() systems.Params { return g.params }
func (g *fakeGrid) Spacing() float64       { return g.spacing }
func (g *fakeGrid) Generation() uint32     { return g.gen }
func (g *fakeGrid) Rebuilds() int          { return g.rebuilds }
func (g *fakeGrid) Len() int               { return len(g.cells) }
func (g *fakeGrid) Pending() int           { return g.pending }
func (g *fakeGrid) Time() float64          { return g.time }

func (g *fakeGrid) Hidden() int {
	n := 0
	for _, c := range g.cells {
		if !c.Visible {
			n++
		}
	}
	return n
}

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		std    float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0.97}, 0.97, 0},
		{"pair", []float64{1, 3}, 2, math.Sqrt2},
		{"constant", []float64{0.5, 0.5, 0.5}, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := meanStd(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 || math.Abs(std-tt.std) > 1e-9 {
				t.Errorf("meanStd(%v) = (%v, %v), want (%v, %v)", tt.values, mean, std, tt.mean, tt.std)
			}
		})
	}
}

func TestDisplacementRatio(t *testing.T) {
	c := systems.CellView{
		Origin:   r3.Vec{X: 16, Y: 0, Z: 0},
		Position: r3.Vec{X: 16.2, Y: -0.5, Z: 0.1},
	}

	if got := displacementRatio(c, 0.64); math.Abs(got-0.5/0.64) > 1e-9 {
		t.Errorf("expected ratio from largest axis offset, got %v", got)
	}
	if got := displacementRatio(c, 0); got != 0 {
		t.Errorf("expected 0 with no displacement bound, got %v", got)
	}
}

func TestCollectorFlush(t *testing.T) {
	grid := &fakeGrid{
		params:  systems.Params{DisplacementFraction: 0.04},
		spacing: 16,
		gen:     3,
		pending: 2,
		time:    1.4,
		cells: []systems.CellView{
			{Visible: true, Alpha: 0.96, Origin: r3.Vec{}, Position: r3.Vec{X: 0.32}},
			{Visible: true, Alpha: 0.98, Origin: r3.Vec{X: 16}, Position: r3.Vec{X: 16}},
			// Hidden cells are counted but not sampled.
			{Visible: false, Alpha: 0.1, Origin: r3.Vec{Y: 16}, Position: r3.Vec{Y: 100}},
		},
	}

	c := NewCollector("run", 20)
	if c.ShouldFlush(19) {
		t.Error("window should not be complete at frame 19")
	}
	if !c.ShouldFlush(20) {
		t.Error("window should be complete at frame 20")
	}

	stats := c.Flush(20, grid)

	if stats.RunID != "run" || stats.WindowStart != 0 || stats.WindowEnd != 20 {
		t.Errorf("unexpected window identity %+v", stats)
	}
	if stats.Live != 3 || stats.Hidden != 1 || stats.Pending != 2 || stats.Generation != 3 {
		t.Errorf("unexpected population %+v", stats)
	}
	if math.Abs(stats.AlphaMean-0.97) > 1e-6 {
		t.Errorf("expected alpha mean 0.97, got %v", stats.AlphaMean)
	}
	if math.Abs(stats.DisplacementMax-0.5) > 1e-9 {
		t.Errorf("expected max displacement ratio 0.5, got %v", stats.DisplacementMax)
	}
	if math.Abs(stats.DisplacementMean-0.25) > 1e-9 {
		t.Errorf("expected mean displacement ratio 0.25, got %v", stats.DisplacementMean)
	}

	if c.ShouldFlush(39) || !c.ShouldFlush(40) {
		t.Error("next window should start at frame 20")
	}
}

func TestCollectorCountsRebuildsPerWindow(t *testing.T) {
	grid := &fakeGrid{spacing: 16}
	c := NewCollector("run", 10)

	grid.rebuilds = 2
	if got := c.Flush(10, grid).Rebuilds; got != 2 {
		t.Errorf("expected 2 rebuilds in first window, got %d", got)
	}

	grid.rebuilds = 3
	if got := c.Flush(20, grid).Rebuilds; got != 1 {
		t.Errorf("expected 1 rebuild in second window, got %d", got)
	}

	if got := c.Flush(30, grid).Rebuilds; got != 0 {
		t.Errorf("expected no rebuilds in third window, got %d", got)
	}
}

func TestCollectorEmptyGrid(t *testing.T) {
	stats := NewCollector("run", 1).Flush(1, &fakeGrid{})
	if stats.AlphaMean != 0 || stats.DisplacementMax != 0 {
		t.Errorf("expected zero stats for empty grid, got %+v", stats)
	}
}
