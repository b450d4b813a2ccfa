// Package config loads and saves explorer settings as YAML and provides
// named parameter presets for both variants.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/eigenmap/internal/export"
	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/session"
)

const (
	DefaultSteps  = 20
	DefaultWidth  = 640
	DefaultHeight = 640
)

type Config struct {
	Variant  string        `yaml:"variant"`
	Real     RealConfig    `yaml:"real"`
	Complex  ComplexConfig `yaml:"complex"`
	Initial  PointConfig   `yaml:"initial"`
	Steps    int           `yaml:"steps"`
	Export   ExportConfig  `yaml:"export"`
	LogLevel string        `yaml:"log_level"`
}

// RealConfig is λ1, λ2 and the eigenvector matrix V written out cell by
// cell; columns of V are the eigenvectors.
type RealConfig struct {
	Lambda1 float64 `yaml:"lambda1"`
	Lambda2 float64 `yaml:"lambda2"`
	V11     float64 `yaml:"v11"`
	V12     float64 `yaml:"v12"`
	V21     float64 `yaml:"v21"`
	V22     float64 `yaml:"v22"`
}

type ComplexConfig struct {
	Sigma  float64 `yaml:"sigma"`
	Tau    float64 `yaml:"tau"`
	Alpha1 float64 `yaml:"alpha1"`
	Beta1  float64 `yaml:"beta1"`
	Alpha2 float64 `yaml:"alpha2"`
	Beta2  float64 `yaml:"beta2"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ExportConfig struct {
	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant: "real",
		Real: RealConfig{
			Lambda1: 0.9, Lambda2: -0.95,
			V11: 1.0, V12: 0.45,
			V21: 0.2, V22: 1.0,
		},
		Complex: ComplexConfig{
			Sigma: 0.5, Tau: 0.5,
			Alpha1: 1.0, Beta1: 0.2,
			Alpha2: 0.1, Beta2: 0.8,
		},
		Initial:  PointConfig{X: 9, Y: 7},
		Steps:    DefaultSteps,
		Export:   ExportConfig{Format: "png", Width: DefaultWidth, Height: DefaultHeight},
		LogLevel: "info",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) ParsedVariant() (linmap.Variant, error) {
	return linmap.ParseVariant(c.Variant)
}

func (c *Config) RealBasis() linmap.RealBasis {
	r := c.Real
	return linmap.RealBasis{
		Lambda1: r.Lambda1,
		Lambda2: r.Lambda2,
		V:       [2][2]float64{{r.V11, r.V12}, {r.V21, r.V22}},
	}
}

func (c *Config) ComplexBasis() linmap.ComplexBasis {
	x := c.Complex
	return linmap.ComplexBasis{
		Sigma:  x.Sigma,
		Tau:    x.Tau,
		Alpha1: x.Alpha1,
		Beta1:  x.Beta1,
		Alpha2: x.Alpha2,
		Beta2:  x.Beta2,
	}
}

// Basis returns the basis of the configured variant.
func (c *Config) Basis() (linmap.Basis, error) {
	v, err := c.ParsedVariant()
	if err != nil {
		return nil, err
	}
	if v == linmap.VariantComplex {
		return c.ComplexBasis(), nil
	}
	return c.RealBasis(), nil
}

func (c *Config) InitialPoint() linmap.Vec2 {
	return linmap.Vec2{X: c.Initial.X, Y: c.Initial.Y}
}

// Params is the session configuration described by c.
func (c *Config) Params() (session.Params, error) {
	v, err := c.ParsedVariant()
	if err != nil {
		return session.Params{}, err
	}
	return session.Params{
		Variant: v,
		Real:    c.RealBasis(),
		Complex: c.ComplexBasis(),
		Initial: c.InitialPoint(),
	}, nil
}

func (c *Config) ExportOptions() export.Options {
	return export.Options{Width: c.Export.Width, Height: c.Export.Height}
}

// SetReal writes b back into the flat YAML layout.
func (c *Config) SetReal(b linmap.RealBasis) {
	c.Real = RealConfig{
		Lambda1: b.Lambda1, Lambda2: b.Lambda2,
		V11: b.V[0][0], V12: b.V[0][1],
		V21: b.V[1][0], V22: b.V[1][1],
	}
}

func (c *Config) SetComplex(b linmap.ComplexBasis) {
	c.Complex = ComplexConfig(b)
}
