package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/eigenmap/internal/config"
	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/storage"
)

func TestEveryParamFlagHasAField(t *testing.T) {
	fields := configFields(config.DefaultConfig())
	if len(fields) != len(paramUsage) {
		t.Errorf("got %d fields for %d flags", len(fields), len(paramUsage))
	}
	for _, p := range paramUsage {
		if fields[p.name] == nil {
			t.Errorf("flag %s has no config field", p.name)
		}
	}
}

func TestLoadConfigLayers(t *testing.T) {
	cmd := &cobra.Command{Use: "run"}
	addBasisFlags(cmd)
	if err := cmd.Flags().Parse([]string{"--preset", "complex/spiral-in", "--tau", "0.1", "--steps", "7"}); err != nil {
		t.Fatal(err)
	}
	defer func() { preset, steps = "", 0 }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != "complex" {
		t.Errorf("expected complex variant, got %s", cfg.Variant)
	}
	if cfg.Complex.Sigma != 0.85 {
		t.Errorf("preset sigma not applied: %v", cfg.Complex.Sigma)
	}
	if cfg.Complex.Tau != 0.1 {
		t.Errorf("flag should override preset tau: %v", cfg.Complex.Tau)
	}
	if cfg.Steps != 7 {
		t.Errorf("expected 7 steps, got %d", cfg.Steps)
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	cmd := &cobra.Command{Use: "run"}
	addBasisFlags(cmd)
	if err := cmd.Flags().Parse([]string{"--preset", "real/nope"}); err != nil {
		t.Fatal(err)
	}
	defer func() { preset = "" }()

	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestBasisOf(t *testing.T) {
	c := linmap.ComplexBasis{Sigma: 1}
	b, err := basisOf(&storage.RunMetadata{Complex: &c})
	if err != nil || b.Variant() != linmap.VariantComplex {
		t.Errorf("got %v, %v", b, err)
	}
	if _, err := basisOf(&storage.RunMetadata{ID: "x"}); err == nil {
		t.Error("expected error for run without basis")
	}
}

func TestSweepPresets(t *testing.T) {
	sweepSteps = 8
	defer func() { sweepSteps = 0 }()

	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "sweep"}
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())

	if err := sweepPresets(cmd, []string{"complex"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, name := range config.ListPresets("complex") {
		if !strings.Contains(out, "complex/"+name) {
			t.Errorf("missing row for %s in:\n%s", name, out)
		}
	}
	if strings.Contains(out, "real/") {
		t.Error("real presets should be filtered out")
	}

	if err := sweepPresets(cmd, []string{"quaternion"}); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestInitFromRunAndDelete(t *testing.T) {
	oldDir := dataDir
	dataDir = t.TempDir()
	defer func() { dataDir, fromRun = oldDir, "" }()

	st := storage.New(dataDir)
	c := linmap.ComplexBasis{Sigma: 0.85, Tau: 0.35, Alpha1: 1, Beta2: 1}
	points := []linmap.Vec2{{X: 2, Y: 3}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}}
	runID, err := st.Save(storage.RunMetadata{
		Variant: "complex",
		Complex: &c,
		Initial: storage.Point{X: 2, Y: 3},
	}, points)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "init"}
	cmd.SetOut(&buf)

	path := filepath.Join(t.TempDir(), "run.yaml")
	fromRun = runID
	if err := writeConfig(cmd, []string{path}); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != "complex" || cfg.ComplexBasis() != c {
		t.Errorf("config basis = %s %+v, want complex %+v", cfg.Variant, cfg.ComplexBasis(), c)
	}
	if cfg.Initial.X != 2 || cfg.Initial.Y != 3 || cfg.Steps != 2 {
		t.Errorf("initial = %+v, steps = %d", cfg.Initial, cfg.Steps)
	}

	if err := deleteRun(cmd, []string{runID}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load(runID); !errors.Is(err, storage.ErrRunNotFound) {
		t.Errorf("load after delete: %v", err)
	}
	if err := deleteRun(cmd, []string{runID}); !errors.Is(err, storage.ErrRunNotFound) {
		t.Errorf("second delete: %v", err)
	}
}
