package config

import "sort"

// Presets holds named parameter sets per variant. Only the fields of the
// preset's own variant are meaningful; the rest come from DefaultConfig.
var Presets = map[string]map[string]*Config{
	"real": {
		"default": {
			Variant: "real",
			Real:    RealConfig{Lambda1: 0.9, Lambda2: -0.95, V11: 1.0, V12: 0.45, V21: 0.2, V22: 1.0},
			Initial: PointConfig{X: 9, Y: 7},
		},
		"sink": {
			Variant: "real",
			Real:    RealConfig{Lambda1: 0.8, Lambda2: 0.5, V11: 1, V12: -1, V21: 1, V22: 1},
			Initial: PointConfig{X: 8, Y: -6},
		},
		"source": {
			Variant: "real",
			Real:    RealConfig{Lambda1: 1.1, Lambda2: 1.2, V11: 1, V12: 0, V21: 0.3, V22: 1},
			Initial: PointConfig{X: 0.5, Y: 0.5},
		},
		"saddle": {
			Variant: "real",
			Real:    RealConfig{Lambda1: 1.3, Lambda2: 0.6, V11: 1, V12: 0.2, V21: 0.4, V22: 1},
			Initial: PointConfig{X: 1, Y: 9},
		},
		"flip": {
			Variant: "real",
			Real:    RealConfig{Lambda1: -0.9, Lambda2: 0.7, V11: 1, V12: 0, V21: 0, V22: 1},
			Initial: PointConfig{X: 8, Y: 8},
		},
		"parallel": {
			Variant: "real",
			Real:    RealConfig{Lambda1: 0.9, Lambda2: 0.5, V11: 1, V12: 2, V21: 1, V22: 2},
			Initial: PointConfig{X: 9, Y: 7},
		},
	},
	"complex": {
		"default": {
			Variant: "complex",
			Complex: ComplexConfig{Sigma: 0.5, Tau: 0.5, Alpha1: 1.0, Beta1: 0.2, Alpha2: 0.1, Beta2: 0.8},
			Initial: PointConfig{X: 9, Y: 7},
		},
		"spiral-in": {
			Variant: "complex",
			Complex: ComplexConfig{Sigma: 0.85, Tau: 0.35, Alpha1: 1, Beta1: 0, Alpha2: 0, Beta2: 1},
			Initial: PointConfig{X: 9, Y: 0},
		},
		"spiral-out": {
			Variant: "complex",
			Complex: ComplexConfig{Sigma: 0.95, Tau: 0.4, Alpha1: 1, Beta1: 0.3, Alpha2: 0.2, Beta2: 1},
			Initial: PointConfig{X: 1, Y: 1},
		},
		"ellipse": {
			// |λ| = 1: the orbit stays on an ellipse
			Variant: "complex",
			Complex: ComplexConfig{Sigma: 0.8, Tau: 0.6, Alpha1: 1, Beta1: 0, Alpha2: 0.5, Beta2: 0.5},
			Initial: PointConfig{X: 6, Y: 2},
		},
		"parallel": {
			Variant: "complex",
			Complex: ComplexConfig{Sigma: 0.5, Tau: 0.5, Alpha1: 1, Beta1: 2, Alpha2: 0.5, Beta2: 1},
			Initial: PointConfig{X: 9, Y: 7},
		},
	},
}

// GetPreset returns a full config for the named preset, or nil. Unset
// sections are filled from DefaultConfig and the stored preset is never
// handed out directly.
func GetPreset(variant, preset string) *Config {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	p, ok := variantPresets[preset]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Variant = p.Variant
	cfg.Initial = p.Initial
	switch p.Variant {
	case "complex":
		cfg.Complex = p.Complex
	default:
		cfg.Real = p.Real
	}
	return cfg
}

// ListPresets returns the preset names of a variant in sorted order.
func ListPresets(variant string) []string {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variantPresets))
	for name := range variantPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants lists the preset groups in sorted order.
func Variants() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
