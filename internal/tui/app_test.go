package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/eigenmap/internal/export"
	"github.com/san-kum/eigenmap/internal/session"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func press(t *testing.T, m model, msgs ...tea.Msg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func selectPreset(t *testing.T, m model, variant, preset string) model {
	t.Helper()
	for i, it := range m.items {
		if it.variant == variant && it.preset == preset {
			m.cursor = i
			m, _ = press(t, m, enter)
			if m.state != stateParams {
				t.Fatalf("expected params state, got %d", m.state)
			}
			return m
		}
	}
	t.Fatalf("preset %s/%s not in menu", variant, preset)
	return m
}

func TestMenuToSim(t *testing.T) {
	m := newModel(nil, Options{ExportDir: t.TempDir()})
	if len(m.items) == 0 {
		t.Fatal("menu is empty")
	}
	m = selectPreset(t, m, "real", "default")
	m, _ = press(t, m, runes("s"))
	if m.state != stateSim || m.sess == nil {
		t.Fatalf("expected running session, state %d", m.state)
	}
	if got := len(m.sess.Points()); got != 1 {
		t.Fatalf("expected seeded trajectory, got %d points", got)
	}

	m, _ = press(t, m, runes("n"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := len(m.sess.Points()); got != 3 {
		t.Errorf("expected 3 points after two steps, got %d", got)
	}

	m, _ = press(t, m, runes("r"))
	if got := len(m.sess.Points()); got != 1 {
		t.Errorf("expected reset to 1 point, got %d", got)
	}

	m, _ = press(t, m, tab)
	if m.sess.View() != export.TimeSeriesView {
		t.Error("tab should switch to the time series")
	}
	if !strings.Contains(m.View(), "T=0") {
		t.Error("status line missing step count")
	}

	m, _ = press(t, m, esc)
	if m.state != stateMenu {
		t.Errorf("esc should return to menu, state %d", m.state)
	}
}

func TestSingularPresetRaisesNotice(t *testing.T) {
	m := newModel(nil, Options{})
	m = selectPreset(t, m, "real", "parallel")
	m, _ = press(t, m, runes("s"), runes("n"))

	if got := m.sess.Notice(); got != session.NoticeParallel {
		t.Fatalf("expected parallel notice, got %q", got)
	}
	if got := len(m.sess.Points()); got != 1 {
		t.Errorf("trajectory changed on refused step: %d points", got)
	}
	if !strings.Contains(m.View(), session.NoticeParallel) {
		t.Error("notice banner not rendered")
	}

	// the next key only dismisses the notice
	m, _ = press(t, m, runes("n"))
	if m.sess.Notice() != "" {
		t.Error("notice not dismissed")
	}
	m, _ = press(t, m, runes("n"))
	if m.sess.Notice() == "" {
		t.Error("stepping again should raise the notice again")
	}
}

func TestEditParameter(t *testing.T) {
	m := newModel(nil, Options{})
	m = selectPreset(t, m, "complex", "default")

	m, _ = press(t, m, enter)
	if !m.editing {
		t.Fatal("enter should start editing")
	}
	for i := 0; i < 20; i++ {
		m, _ = press(t, m, backspace)
	}
	m, _ = press(t, m, runes("0"), runes("."), runes("2"), runes("x"), enter)
	if m.cfg.Complex.Sigma != 0.2 {
		t.Errorf("expected sigma 0.2, got %v", m.cfg.Complex.Sigma)
	}

	m, _ = press(t, m, runes("j"), runes("l"))
	if got := m.cfg.Complex.Tau; math.Abs(got-(0.5+adjustStep)) > 1e-12 {
		t.Errorf("expected tau %v, got %v", 0.5+adjustStep, got)
	}
	if got := len(m.fields()); got != 8 {
		t.Errorf("expected 8 fields, got %d", got)
	}
}

func TestExportWritesFigure(t *testing.T) {
	dir := t.TempDir()
	m := newModel(nil, Options{ExportDir: dir})
	m = selectPreset(t, m, "complex", "spiral-in")
	m, _ = press(t, m, runes("s"), runes("n"), runes("f"))

	m, cmd := press(t, m, runes("e"))
	if cmd == nil {
		t.Fatal("export should return a command")
	}
	m, _ = press(t, m, cmd())

	path := filepath.Join(dir, "plot.svg")
	if m.status != "saved "+path {
		t.Errorf("unexpected status %q", m.status)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("export is not an svg document")
	}
}

func TestPlayStopsOnNotice(t *testing.T) {
	m := newModel(nil, Options{})
	m = selectPreset(t, m, "complex", "parallel")
	m, cmd := press(t, m, runes("s"), runes("p"))
	if !m.playing || cmd == nil {
		t.Fatal("p should start playing")
	}
	m, _ = press(t, m, tickMsg{})
	if m.playing {
		t.Error("refused step should stop playback")
	}
}

func TestNarrowTimeSeriesSplitsComponents(t *testing.T) {
	m := newModel(nil, Options{ExportDir: t.TempDir()})
	m = selectPreset(t, m, "complex", "spiral-in")
	m, _ = press(t, m, runes("s"), runes("n"), runes("n"), tab)
	if m.sess.View() != export.TimeSeriesView {
		t.Fatalf("expected time series view, got %s", m.sess.View())
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	wide := m.View()
	if !strings.Contains(wide, "step 0..2 of 20") {
		t.Errorf("wide view should use the combined plot:\n%s", wide)
	}
	if !strings.Contains(wide, "steps/turn") {
		t.Errorf("complex info line should show steps per turn:\n%s", wide)
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 40, Height: 40})
	narrow := m.View()
	if strings.Contains(narrow, "step 0..2 of 20") {
		t.Errorf("narrow view should split the components:\n%s", narrow)
	}
}
