package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/eigenmap/internal/views"
)

// TimeSeriesPlot charts x and y against the step number. The caption
// carries the time axis extent TMax.
func TimeSeriesPlot(ts views.TimeSeries, width, height int) string {
	if ts.Len() == 0 {
		return ""
	}
	xs, ys := ts.X, ts.Y
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Orange),
		asciigraph.SeriesLegends("x", "y"),
		asciigraph.Caption(fmt.Sprintf("step 0..%d of %d", ts.Len()-1, ts.Extent())),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(columns(ts, width)))
	}
	return asciigraph.PlotMany([][]float64{xs, ys}, opts...)
}

// ComponentPlot charts a single component, used when the terminal is too
// narrow for the combined plot.
func ComponentPlot(name string, vals []float64, width, height int) string {
	if len(vals) == 0 {
		return ""
	}
	if len(vals) == 1 {
		vals = []float64{vals[0], vals[0]}
	}
	return asciigraph.Plot(vals,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(name),
	)
}

// columns scales the plot so the series covers its share of [0, TMax].
func columns(ts views.TimeSeries, width int) int {
	c := width * ts.Len() / ts.Extent()
	if c < 2 {
		c = 2
	}
	return c
}
