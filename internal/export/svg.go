package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/views"
)

// frame maps data coordinates onto a pixel box with y pointing up.
type frame struct {
	left, top, width, height float64
	minX, maxX, minY, maxY   float64
}

func (f frame) px(p linmap.Vec2) (float64, float64) {
	x := f.left + unit(p.X, f.minX, f.maxX)*f.width
	y := f.top + f.height - unit(p.Y, f.minY, f.maxY)*f.height
	return x, y
}

// unit maps v from [lo, hi] to [0, 1], halving first so that ranges near
// the float64 limits do not overflow.
func unit(v, lo, hi float64) float64 {
	return (v/2 - lo/2) / (hi/2 - lo/2)
}

func svgHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))
}

func svgLine(sb *strings.Builder, f frame, a, b linmap.Vec2, stroke string, width float64) {
	x1, y1 := f.px(a)
	x2, y2 := f.px(b)
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>
`, x1, y1, x2, y2, stroke, width))
}

func svgPath(sb *strings.Builder, f frame, xs, ys []float64, stroke string) {
	if len(xs) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i := range xs {
		x, y := f.px(linmap.Vec2{X: xs[i], Y: ys[i]})
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

func svgBox(sb *strings.Builder, f frame) {
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#333333"/>
`, f.left, f.top, f.width, f.height))
}

func svgText(sb *strings.Builder, x, y float64, anchor, text string) {
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="12" text-anchor="%s">%s</text>
`, x, y, anchor, text))
}

// PhaseSVG writes the phase-space view as SVG.
func PhaseSVG(w io.Writer, g views.PhaseGeometry, opts Options) error {
	opts = opts.withDefaults()
	const margin = 40.0
	f := frame{
		left:   margin,
		top:    margin / 2,
		width:  float64(opts.Width) - 1.5*margin,
		height: float64(opts.Height) - 1.5*margin,
		minX:   -views.Window,
		maxX:   views.Window,
		minY:   -views.Window,
		maxY:   views.Window,
	}

	var sb strings.Builder
	svgHeader(&sb, opts.Width, opts.Height)
	svgBox(&sb, f)

	rayColors := [2]string{"#1f77b4", "#ff7f0e"}
	for i, r := range g.Rays {
		if from, to, ok := r.Clip(views.Window); ok {
			svgLine(&sb, f, from, to, rayColors[i], 1.5)
		}
	}
	for _, a := range g.Arrows {
		if a.Tip.Norm() == 0 {
			continue
		}
		left, right := arrowHead(a.Tip, 0.4)
		svgLine(&sb, f, linmap.Vec2{}, a.Tip, "#000000", 2)
		svgLine(&sb, f, a.Tip, left, "#000000", 2)
		svgLine(&sb, f, a.Tip, right, "#000000", 2)
	}

	sb.WriteString(`<g fill="#2ca02c" fill-opacity="0.6">` + "\n")
	for _, p := range visible(g.Points) {
		x, y := f.px(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3"/>
`, x, y))
	}
	sb.WriteString("</g>\n")

	svgText(&sb, f.left+f.width/2, f.top+f.height+28, "middle", "x")
	svgText(&sb, f.left-24, f.top+f.height/2, "middle", "y")
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// TimeSeriesSVG writes the x and y components as two stacked panels.
func TimeSeriesSVG(w io.Writer, ts views.TimeSeries, opts Options) error {
	opts = opts.withDefaults()
	if ts.Len() == 0 {
		return fmt.Errorf("render time series: empty series")
	}
	const margin = 40.0
	panel := (float64(opts.Height) - 3*margin) / 2
	tmax := float64(ts.Extent())

	var sb strings.Builder
	svgHeader(&sb, opts.Width, opts.Height)

	comps := []struct {
		name  string
		vals  []float64
		color string
	}{
		{"x", ts.X, "#1f77b4"},
		{"y", ts.Y, "#ff7f0e"},
	}
	for i, c := range comps {
		lo, hi := seriesRange(c.vals)
		f := frame{
			left:   margin,
			top:    margin + float64(i)*(panel+margin),
			width:  float64(opts.Width) - 1.5*margin,
			height: panel,
			maxX:   tmax,
			minY:   lo,
			maxY:   hi,
		}
		svgBox(&sb, f)
		svgPath(&sb, f, ts.Steps, c.vals, c.color)
		svgText(&sb, f.left+f.width/2, f.top-8, "middle", c.name)
		svgText(&sb, f.left, f.top+f.height+14, "start", "0")
		svgText(&sb, f.left+f.width, f.top+f.height+14, "end", fmt.Sprintf("%d", int(tmax)))
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
