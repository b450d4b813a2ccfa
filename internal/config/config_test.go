package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/eigenmap/internal/linmap"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Variant != "real" {
		t.Errorf("expected variant real, got %s", cfg.Variant)
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	b := cfg.RealBasis()
	if b.V != [2][2]float64{{1, 0.45}, {0.2, 1}} {
		t.Errorf("unexpected V: %v", b.V)
	}
	if p := cfg.InitialPoint(); p.X != 9 || p.Y != 7 {
		t.Errorf("expected p0 (9, 7), got %v", p)
	}
	if _, err := cfg.RealBasis().Matrix(); err != nil {
		t.Errorf("default real basis should be valid: %v", err)
	}
	if _, err := cfg.ComplexBasis().Matrix(); err != nil {
		t.Errorf("default complex basis should be valid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eigenmap.yaml")
	cfg := DefaultConfig()
	cfg.Variant = "complex"
	cfg.Complex.Tau = -0.25
	cfg.Steps = 55

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("variant: complex\ncomplex:\n  tau: 0.1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != "complex" || cfg.Complex.Tau != 0.1 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Complex.Sigma != 0.5 || cfg.Steps != DefaultSteps || cfg.LogLevel != "info" {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("steps: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBasis(t *testing.T) {
	cfg := DefaultConfig()
	b, err := cfg.Basis()
	if err != nil {
		t.Fatal(err)
	}
	if b.Variant() != linmap.VariantReal {
		t.Errorf("expected real basis, got %s", b.Variant())
	}

	cfg.Variant = "complex"
	b, err = cfg.Basis()
	if err != nil {
		t.Fatal(err)
	}
	if b.Variant() != linmap.VariantComplex {
		t.Errorf("expected complex basis, got %s", b.Variant())
	}

	cfg.Variant = "quaternion"
	if _, err := cfg.Basis(); err == nil {
		t.Error("expected error for unknown variant")
	}
	if _, err := cfg.Params(); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestSetRealRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	want := linmap.RealBasis{Lambda1: 2, Lambda2: 3, V: [2][2]float64{{1, 2}, {3, 4}}}
	cfg.SetReal(want)
	if got := cfg.RealBasis(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	wantC := linmap.ComplexBasis{Sigma: 1, Tau: 2, Alpha1: 3, Beta1: 4, Alpha2: 5, Beta2: 6}
	cfg.SetComplex(wantC)
	if got := cfg.ComplexBasis(); got != wantC {
		t.Errorf("got %+v, want %+v", got, wantC)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("complex", "spiral-in")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Complex.Sigma != 0.85 {
		t.Errorf("expected sigma 0.85, got %f", cfg.Complex.Sigma)
	}
	if cfg.Steps != DefaultSteps {
		t.Errorf("expected default steps, got %d", cfg.Steps)
	}

	cfg.Complex.Sigma = 99
	if GetPreset("complex", "spiral-in").Complex.Sigma != 0.85 {
		t.Error("GetPreset handed out a shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("real", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "default") != nil {
		t.Error("expected nil for nonexistent variant")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("real")
	if len(presets) == 0 {
		t.Fatal("expected presets for real")
	}
	if !sort.StringsAreSorted(presets) {
		t.Errorf("presets not sorted: %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent variant")
	}
	if got := Variants(); len(got) != 2 || got[0] != "complex" || got[1] != "real" {
		t.Errorf("unexpected variants %v", got)
	}
}

func TestPresetsMatchExpectedBehaviour(t *testing.T) {
	tests := []struct {
		variant, name string
		kind          linmap.FixedPoint
		singular      bool
	}{
		{"real", "default", linmap.Sink, false},
		{"real", "sink", linmap.Sink, false},
		{"real", "source", linmap.Source, false},
		{"real", "saddle", linmap.Saddle, false},
		{"real", "parallel", linmap.Sink, true},
		{"complex", "spiral-in", linmap.StableSpiral, false},
		{"complex", "spiral-out", linmap.UnstableSpiral, false},
		{"complex", "ellipse", linmap.Center, false},
		{"complex", "parallel", linmap.StableSpiral, true},
	}
	for _, tt := range tests {
		cfg := GetPreset(tt.variant, tt.name)
		b, err := cfg.Basis()
		if err != nil {
			t.Fatalf("%s/%s: %v", tt.variant, tt.name, err)
		}
		if got := linmap.Classify(b); got != tt.kind {
			t.Errorf("%s/%s: classified %s, want %s", tt.variant, tt.name, got, tt.kind)
		}
		_, err = b.Matrix()
		if got := errors.Is(err, linmap.ErrSingularBasis); got != tt.singular {
			t.Errorf("%s/%s: singular = %v, want %v (err %v)", tt.variant, tt.name, got, tt.singular, err)
		}
	}
}
