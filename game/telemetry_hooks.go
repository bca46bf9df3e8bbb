package game

import "log/slog"

// flushTelemetry writes grid and perf stats at the end of each window.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	stats := g.collector.Flush(g.frame, g.grid)
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.logStats {
		slog.Info("window", "stats", stats, "perf", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
