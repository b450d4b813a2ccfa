// Package tui is the interactive terminal front end: pick a preset, edit
// the eigenstructure, then step the orbit and watch the views update.
package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eigenmap/internal/config"
	"github.com/san-kum/eigenmap/internal/export"
	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/logging"
	"github.com/san-kum/eigenmap/internal/session"
	"github.com/san-kum/eigenmap/internal/views"
	"github.com/san-kum/eigenmap/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	banner = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("220")).
		Foreground(lipgloss.Color("220")).
		Padding(0, 2)
)

const (
	adjustStep = 0.05
	playEvery  = 150 * time.Millisecond
)

type state int

const (
	stateMenu state = iota
	stateParams
	stateSim
)

type menuItem struct {
	variant, preset string
	desc            string
}

type field struct {
	name string
	ptr  *float64
}

// Options configures Run.
type Options struct {
	// ExportDir receives saved figures. Empty means the working directory.
	ExportDir string
	Logger    *slog.Logger
}

type model struct {
	state  state
	cursor int
	items  []menuItem

	cfg         *config.Config
	paramCursor int
	editing     bool
	editBuf     string

	sess    *session.Session
	playing bool
	format  export.Format
	theme   viz.Theme
	status  string

	help      help.Model
	exportDir string
	log       *slog.Logger

	width  int
	height int
}

func newModel(cfg *config.Config, opts Options) model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		format = export.PNG
	}

	var items []menuItem
	for _, variant := range config.Variants() {
		for _, name := range config.ListPresets(variant) {
			desc := ""
			if b, err := config.GetPreset(variant, name).Basis(); err == nil {
				desc = linmap.Classify(b).String()
				if _, err := b.Matrix(); err != nil {
					desc = "invalid axes"
				}
			}
			items = append(items, menuItem{variant: variant, preset: name, desc: desc})
		}
	}

	return model{
		state:     stateMenu,
		items:     items,
		cfg:       cfg,
		format:    format,
		theme:     viz.ThemeClassic,
		help:      help.New(),
		exportDir: opts.ExportDir,
		log:       log,
		width:     80,
		height:    24,
	}
}

// Run starts the terminal UI and blocks until the user quits.
func Run(cfg *config.Config, opts Options) error {
	p := tea.NewProgram(newModel(cfg, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(playEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type exportedMsg struct {
	path string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.state != stateSim || !m.playing {
			return m, nil
		}
		if err := m.sess.Step(); err != nil {
			m.playing = false
			return m, nil
		}
		return m, tick()
	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
			m.log.Error("export failed", "err", msg.err)
		} else {
			m.status = "saved " + msg.path
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateParams:
		return m.paramsKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Select), key.Matches(msg, keys.Step):
		item := m.items[m.cursor]
		preset := config.GetPreset(item.variant, item.preset)
		preset.Steps = m.cfg.Steps
		preset.Export = m.cfg.Export
		preset.LogLevel = m.cfg.LogLevel
		*m.cfg = *preset
		m.state = stateParams
		m.paramCursor = 0
		m.log.Debug("preset selected", "variant", item.variant, "preset", item.preset)
	}
	return m, nil
}

// fields lists the editable numbers of the current variant.
func (m model) fields() []field {
	c := m.cfg
	var fs []field
	if c.Variant == "complex" {
		fs = []field{
			{"σ", &c.Complex.Sigma}, {"τ", &c.Complex.Tau},
			{"α₁", &c.Complex.Alpha1}, {"β₁", &c.Complex.Beta1},
			{"α₂", &c.Complex.Alpha2}, {"β₂", &c.Complex.Beta2},
		}
	} else {
		fs = []field{
			{"λ₁", &c.Real.Lambda1}, {"λ₂", &c.Real.Lambda2},
			{"v₁₁", &c.Real.V11}, {"v₁₂", &c.Real.V12},
			{"v₂₁", &c.Real.V21}, {"v₂₂", &c.Real.V22},
		}
	}
	return append(fs, field{"x₀", &c.Initial.X}, field{"y₀", &c.Initial.Y})
}

func (m model) paramsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	fs := m.fields()
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				*fs[m.paramCursor].ptr = v
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
		m.state = stateMenu
	case key.Matches(msg, keys.Up):
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.paramCursor < len(fs)-1 {
			m.paramCursor++
		}
	case key.Matches(msg, keys.Select):
		m.editing = true
		m.editBuf = strconv.FormatFloat(*fs[m.paramCursor].ptr, 'f', -1, 64)
	case key.Matches(msg, keys.Left):
		*fs[m.paramCursor].ptr -= adjustStep
	case key.Matches(msg, keys.Right):
		*fs[m.paramCursor].ptr += adjustStep
	case key.Matches(msg, keys.Start):
		if !m.start() {
			return m, nil
		}
		m.state = stateSim
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m *model) start() bool {
	params, err := m.cfg.Params()
	if err != nil {
		m.status = err.Error()
		return false
	}
	if m.sess == nil {
		m.sess = session.New(params, m.log)
	} else {
		m.sess.SetParams(params)
	}
	m.sess.SetExportOptions(m.cfg.ExportOptions())
	m.sess.DismissNotice()
	m.playing = false
	m.status = ""
	return true
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	// a pending notice swallows the next key
	if m.sess.Notice() != "" {
		m.sess.DismissNotice()
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
		m.playing = false
		m.state = stateMenu
		return m, tea.ClearScreen
	case key.Matches(msg, keys.Step):
		m.playing = false
		_ = m.sess.Step()
	case key.Matches(msg, keys.Play):
		m.playing = !m.playing
		if m.playing {
			return m, tick()
		}
	case key.Matches(msg, keys.Reset):
		m.playing = false
		m.sess.Reset()
	case key.Matches(msg, keys.View):
		if m.sess.View() == export.PhaseView {
			m.sess.SelectView(export.TimeSeriesView)
		} else {
			m.sess.SelectView(export.PhaseView)
		}
	case key.Matches(msg, keys.Export):
		m.status = "rendering…"
		return m, exportFigure(m.sess, m.exportDir, m.format)
	case key.Matches(msg, keys.Format):
		if m.format == export.PNG {
			m.format = export.SVG
		} else {
			m.format = export.PNG
		}
	case key.Matches(msg, keys.Theme):
		m.theme = viz.NextTheme(m.theme)
	case key.Matches(msg, keys.Params):
		m.playing = false
		m.state = stateParams
		return m, tea.ClearScreen
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func exportFigure(s *session.Session, dir string, format export.Format) tea.Cmd {
	return func() tea.Msg {
		data, name, err := s.Figure(format)
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateParams:
		return m.viewParams()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("e i g e n m a p") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, it := range m.items {
		name := fmt.Sprintf("%-8s %-12s", it.variant, it.preset)
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(name) + dim.Render(it.desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(name) + dimmer.Render(it.desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter edit   q quit") + "\n")
	return b.String()
}

func (m model) viewParams() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.cfg.Variant) + "  " + dim.Render("eigenstructure") + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, f := range m.fields() {
		val := fmt.Sprintf("%8.3f", *f.ptr)
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-6s", f.name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-6s", f.name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	if basis, err := m.cfg.Basis(); err == nil {
		b.WriteString(indent(m.matrixBlock(basis), "      ") + "\n")
	}
	if m.status != "" {
		b.WriteString("      " + yellow.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

func (m model) matrixBlock(basis linmap.Basis) string {
	var a *linmap.Mat2
	if mat, err := basis.Matrix(); err == nil {
		a = &mat
	}
	return renderMatrix(views.NewMatrixDisplay(a))
}

func renderMatrix(d views.MatrixDisplay) string {
	rows := d.Rows()
	var b strings.Builder
	b.WriteString(dim.Render("A = "))
	for i, r := range rows {
		if i > 0 {
			b.WriteString("    ")
		}
		b.WriteString(white.Render(fmt.Sprintf("[%8s %8s]", r[0], r[1])) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Below this many columns the time series is drawn one component per plot.
const narrowWidth = 50

func (m model) viewSim() string {
	snap, err := m.sess.Snapshot()
	if err != nil {
		return "\n   " + yellow.Render(err.Error()) + "\n"
	}

	cw := m.width - 6
	ch := m.height - 14
	if cw < 30 {
		cw = 30
	}
	if ch < 10 {
		ch = 10
	}

	var b strings.Builder

	statusIcon := dim.Render("○")
	statusText := dim.Render("stepping")
	if m.playing {
		statusIcon = green.Render("●")
		statusText = green.Render("playing")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s  %s\n",
		statusIcon, cyan.Render(snap.Variant.String()), statusText,
		dim.Render(fmt.Sprintf("T=%d", snap.Steps)),
		dim.Render(snap.View.String())))

	info := ""
	if snap.Matrix.Defined {
		info = magenta.Render(snap.Kind.String())
	}
	if snap.Variant == linmap.VariantComplex {
		info += dim.Render(fmt.Sprintf("  |λ|=%.3f  arg λ=%.1f°", snap.Modulus, snap.ArgumentDegrees))
		if n := linmap.StepsPerTurn(snap.Params.Complex); n > 0 {
			info += dimmer.Render(fmt.Sprintf("  %.1f steps/turn", n))
		}
	}
	b.WriteString("   " + info + "\n\n")
	b.WriteString(indent(renderMatrix(snap.Matrix), "   ") + "\n\n")

	if snap.Notice != "" {
		b.WriteString(indent(banner.Render(snap.Notice), "   ") + "\n\n")
	}

	switch snap.View {
	case export.TimeSeriesView:
		if cw < narrowWidth {
			h := max((ch-4)/2, 3)
			b.WriteString(indent(viz.ComponentPlot("x", snap.Series.X, cw-10, h), "   ") + "\n")
			b.WriteString(indent(viz.ComponentPlot("y", snap.Series.Y, cw-10, h), "   ") + "\n")
		} else {
			b.WriteString(indent(viz.TimeSeriesPlot(snap.Series, cw-10, ch-3), "   ") + "\n")
		}
	default:
		b.WriteString(indent(viz.PhasePortrait(snap.Phase, cw, ch, m.theme), "   "))
	}

	last := snap.Phase.Points[len(snap.Phase.Points)-1]
	b.WriteString("   " + dim.Render("x=") + white.Render(fmt.Sprintf("%.3f", last.X)) +
		"  " + dim.Render("y=") + white.Render(fmt.Sprintf("%.3f", last.Y)) +
		"  " + dimmer.Render("export "+string(m.format)) + "\n")

	if m.status != "" {
		b.WriteString("   " + yellow.Render(m.status) + "\n")
	}
	b.WriteString("\n   " + m.help.View(keys) + "\n")
	return b.String()
}

func indent(s, pad string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
