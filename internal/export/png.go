package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/views"
)

// Matplotlib's default cycle, so figures look like the familiar ones.
var (
	colorC0 = drawing.ColorFromHex("1f77b4")
	colorC1 = drawing.ColorFromHex("ff7f0e")
	colorC2 = drawing.ColorFromHex("2ca02c")
)

func lineStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: width,
	}
}

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col.WithAlpha(160),
	}
}

func xy(points ...linmap.Vec2) ([]float64, []float64) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func phaseChart(g views.PhaseGeometry, opts Options) chart.Chart {
	window := &chart.ContinuousRange{Min: -views.Window, Max: views.Window}
	rayColors := [2]drawing.Color{colorC0, colorC1}

	// The invisible corner series keeps the chart renderable when every
	// ray, arrow and point falls outside the window.
	series := []chart.Series{chart.ContinuousSeries{
		Name:    "window",
		Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: chart.Disabled},
		XValues: []float64{-views.Window, views.Window},
		YValues: []float64{-views.Window, views.Window},
	}}
	for i, r := range g.Rays {
		from, to, ok := r.Clip(views.Window)
		if !ok {
			continue
		}
		xs, ys := xy(from, to)
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("axis %d", i+1),
			Style:   lineStyle(rayColors[i], 1.5),
			XValues: xs,
			YValues: ys,
		})
	}
	for i, a := range g.Arrows {
		if a.Tip.Norm() == 0 {
			continue
		}
		left, right := arrowHead(a.Tip, 0.4)
		xs, ys := xy(linmap.Vec2{}, a.Tip, left, a.Tip, right)
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("arrow %d", i+1),
			Style:   lineStyle(drawing.ColorBlack, 2),
			XValues: xs,
			YValues: ys,
		})
	}
	if pts := visible(g.Points); len(pts) > 0 {
		xs, ys := xy(pts...)
		series = append(series, chart.ContinuousSeries{
			Name:    "trajectory",
			Style:   pointStyle(colorC2),
			XValues: xs,
			YValues: ys,
		})
	}

	return chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: "x", Range: window},
		YAxis:      chart.YAxis{Name: "y", Range: window},
		Series:     series,
	}
}

// PhasePNG draws the phase-space view on a fixed [-10, 10] square.
func PhasePNG(w io.Writer, g views.PhaseGeometry, opts Options) error {
	opts = opts.withDefaults()
	ch := phaseChart(g, opts)
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render phase: %w", err)
	}
	return nil
}

func componentChart(name string, steps, vals []float64, tmax int, col drawing.Color, w, h int) chart.Chart {
	lo, hi := seriesRange(vals)
	return chart.Chart{
		Title:      name,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 20, Bottom: 10}},
		XAxis:      chart.XAxis{Name: "step", Range: &chart.ContinuousRange{Min: 0, Max: float64(tmax)}},
		YAxis:      chart.YAxis{Name: name, Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: name, Style: lineStyle(col, 1.5), XValues: steps, YValues: vals},
			chart.ContinuousSeries{Name: name + " points", Style: pointStyle(col), XValues: steps, YValues: vals},
		},
	}
}

func renderImage(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// TimeSeriesPNG stacks the x and y components over a shared step axis
// running to TMax of the series length.
func TimeSeriesPNG(w io.Writer, ts views.TimeSeries, opts Options) error {
	opts = opts.withDefaults()
	if ts.Len() == 0 {
		return fmt.Errorf("render time series: empty series")
	}
	half := opts.Height / 2
	tmax := ts.Extent()

	top, err := renderImage(componentChart("x", ts.Steps, ts.X, tmax, colorC0, opts.Width, half))
	if err != nil {
		return fmt.Errorf("render x component: %w", err)
	}
	bottom, err := renderImage(componentChart("y", ts.Steps, ts.Y, tmax, colorC1, opts.Width, opts.Height-half))
	if err != nil {
		return fmt.Errorf("render y component: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, top.Bounds(), top, image.Point{}, draw.Over)
	draw.Draw(canvas, bottom.Bounds().Add(image.Pt(0, half)), bottom, image.Point{}, draw.Over)
	caption(canvas, fmt.Sprintf("T = %d", ts.Len()-1))

	return png.Encode(w, canvas)
}

// caption writes a short label in the top-right corner.
func caption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.Gray{Y: 90}), Face: face}
	width := d.MeasureString(text).Ceil()
	b := img.Bounds()
	d.Dot = fixed.Point26_6{
		X: fixed.I(b.Max.X - width - 8),
		Y: fixed.I(b.Min.Y + face.Metrics().Ascent.Ceil() + 6),
	}
	d.DrawString(text)
}
