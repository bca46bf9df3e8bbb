package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/fog/systems"
)

// WindowStats holds grid statistics for a window of frames.
type WindowStats struct {
	RunID       string  `csv:"run_id"`
	WindowStart int32   `csv:"-"`
	WindowEnd   int32   `csv:"window_end"`
	AnimTime    float64 `csv:"anim_time"`

	// Population at window end
	Generation uint32  `csv:"generation"`
	Live       int     `csv:"live"`
	Pending    int     `csv:"pending"`
	Hidden     int     `csv:"hidden"`
	Spacing    float64 `csv:"spacing"`

	// Rebuilds during the window
	Rebuilds int `csv:"rebuilds"`

	// Translucency of visible cells
	AlphaMean float64 `csv:"alpha_mean"`
	AlphaStd  float64 `csv:"alpha_std"`

	// Largest per-axis offset over the displacement bound
	DisplacementMean float64 `csv:"displacement_mean"`
	DisplacementMax  float64 `csv:"displacement_max"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStart)),
		slog.Int("window_end", int(s.WindowEnd)),
		slog.Float64("anim_time", s.AnimTime),
		slog.Int("generation", int(s.Generation)),
		slog.Int("live", s.Live),
		slog.Int("pending", s.Pending),
		slog.Int("hidden", s.Hidden),
		slog.Int("rebuilds", s.Rebuilds),
		slog.Float64("alpha_mean", s.AlphaMean),
		slog.Float64("alpha_std", s.AlphaStd),
		slog.Float64("displacement_mean", s.DisplacementMean),
		slog.Float64("displacement_max", s.DisplacementMax),
	)
}

// GridSource is the read side of the grid that statistics are sampled from.
type GridSource interface {
	Visit(fn func(c systems.CellView))
	Params() systems.Params
	Spacing() float64
	Generation() uint32
	Rebuilds() int
	Len() int
	Pending() int
	Hidden() int
	Time() float64
}

// displacementRatio returns the largest per-axis offset of c as a fraction
// of maxDisplacement.
func displacementRatio(c systems.CellView, maxDisplacement float64) float64 {
	if maxDisplacement <= 0 {
		return 0
	}
	d := math.Max(math.Abs(c.Position.X-c.Origin.X),
		math.Max(math.Abs(c.Position.Y-c.Origin.Y), math.Abs(c.Position.Z-c.Origin.Z)))
	return d / maxDisplacement
}

// meanStd returns the mean and sample standard deviation. Fewer than two
// values have zero deviation.
func meanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// maxOf returns the largest value, or 0 when empty.
func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}
