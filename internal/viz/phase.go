package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/views"
)

// viewport maps the square [-Window, Window]² onto canvas sub-pixels.
type viewport struct {
	w, h int
}

func (v viewport) px(p linmap.Vec2) (int, int, bool) {
	if !p.IsValid() || math.Abs(p.X) > views.Window || math.Abs(p.Y) > views.Window {
		return 0, 0, false
	}
	x := int(math.Round((p.X + views.Window) / (2 * views.Window) * float64(v.w-1)))
	y := int(math.Round((views.Window - p.Y) / (2 * views.Window) * float64(v.h-1)))
	return x, y, true
}

func (v viewport) line(c *Canvas, a, b linmap.Vec2) {
	x0, y0, ok0 := v.px(a)
	x1, y1, ok1 := v.px(b)
	if ok0 && ok1 {
		c.DrawLine(x0, y0, x1, y1)
	}
}

// headSize is the arrowhead length in phase-space units.
const headSize = 1.5

// PhaseLayers draws each part of the phase view on its own canvas of
// w x h cells: the frame, the two axes, the arrows and the orbit.
func PhaseLayers(g views.PhaseGeometry, w, h int, theme Theme) []Layer {
	vp := viewport{w: w * 2, h: h * 4}

	frame := NewCanvas(w, h)
	vp.line(frame, linmap.Vec2{X: -views.Window}, linmap.Vec2{X: views.Window})
	vp.line(frame, linmap.Vec2{Y: -views.Window}, linmap.Vec2{Y: views.Window})

	var axes [2]*Canvas
	for i, r := range g.Rays {
		axes[i] = NewCanvas(w, h)
		if from, to, ok := r.Clip(views.Window); ok {
			vp.line(axes[i], from, to)
		}
	}

	// the shaft lies on its axis; the head and the accent style set it apart
	arrows := NewCanvas(w, h)
	for _, a := range g.Arrows {
		if a.Tip.Norm() == 0 {
			continue
		}
		tip := clipToWindow(a.Tip)
		vp.line(arrows, linmap.Vec2{}, tip)
		left, right := barbs(tip, headSize)
		vp.line(arrows, tip, left)
		vp.line(arrows, tip, right)
	}

	orbit := NewCanvas(w, h)
	for _, p := range g.Points {
		if x, y, ok := vp.px(p); ok {
			orbit.Dot(x, y)
		}
	}

	return []Layer{
		{Canvas: frame, Style: lipgloss.NewStyle().Foreground(theme.Muted)},
		{Canvas: axes[0], Style: lipgloss.NewStyle().Foreground(theme.Axis1)},
		{Canvas: axes[1], Style: lipgloss.NewStyle().Foreground(theme.Axis2)},
		{Canvas: arrows, Style: lipgloss.NewStyle().Foreground(theme.Accent)},
		{Canvas: orbit, Style: lipgloss.NewStyle().Foreground(theme.Orbit).Bold(true)},
	}
}

// PhasePortrait renders the phase view as w x h styled braille cells.
func PhasePortrait(g views.PhaseGeometry, w, h int, theme Theme) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	return Compose(PhaseLayers(g, w, h, theme)...)
}

func clipToWindow(p linmap.Vec2) linmap.Vec2 {
	m := math.Max(math.Abs(p.X), math.Abs(p.Y))
	if m <= views.Window {
		return p
	}
	return p.Scale(views.Window / m)
}

// barbs returns the two back corners of an arrowhead at tip, clipped to
// the window so they are always drawn.
func barbs(tip linmap.Vec2, size float64) (linmap.Vec2, linmap.Vec2) {
	n := tip.Norm()
	ux, uy := tip.X/n, tip.Y/n
	bx, by := tip.X-size*ux, tip.Y-size*uy
	px, py := -uy*size/2, ux*size/2
	return clipToWindow(linmap.Vec2{X: bx + px, Y: by + py}),
		clipToWindow(linmap.Vec2{X: bx - px, Y: by - py})
}
