package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/eigenmap/internal/config"
	"github.com/san-kum/eigenmap/internal/export"
	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/logging"
	"github.com/san-kum/eigenmap/internal/session"
	"github.com/san-kum/eigenmap/internal/tui"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	variant    string
	steps      int
	save       bool
	plotHeight int
	sweepSteps int
	fromRun    string
	// figure
	viewName   string
	formatName string
	outPath    string
	width      int
	height     int

	// basis and initial point overrides, keyed by flag name
	paramFlags = map[string]*float64{}
)

var paramUsage = []struct{ name, usage string }{
	{"lambda1", "first real eigenvalue"},
	{"lambda2", "second real eigenvalue"},
	{"v11", "V row 1 col 1"},
	{"v12", "V row 1 col 2"},
	{"v21", "V row 2 col 1"},
	{"v22", "V row 2 col 2"},
	{"sigma", "real part of the complex eigenvalue"},
	{"tau", "imaginary part of the complex eigenvalue"},
	{"alpha1", "eigenvector real part, x"},
	{"beta1", "eigenvector imaginary part, x"},
	{"alpha2", "eigenvector real part, y"},
	{"beta2", "eigenvector imaginary part, y"},
	{"x0", "initial point x"},
	{"y0", "initial point y"},
}

// main registers commands and flags; with no subcommand it opens the
// interactive terminal UI.
func main() {
	rootCmd := &cobra.Command{
		Use:          "eigenmap",
		Short:        "explore 2x2 linear maps through their eigenstructure",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".eigenmap", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step a map headlessly and print the result",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addBasisFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	runCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")

	figureCmd := &cobra.Command{
		Use:   "figure",
		Short: "render a view to png or svg",
		Args:  cobra.NoArgs,
		RunE:  writeFigure,
	}
	addBasisFlags(figureCmd)
	figureCmd.Flags().StringVar(&viewName, "view", "phase", "view: phase or timeseries")
	figureCmd.Flags().StringVar(&formatName, "format", "", "image format: png or svg (default from --out or config)")
	figureCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default plot.<format>)")
	figureCmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	figureCmd.Flags().IntVar(&height, "height", 0, "image height in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets [variant]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config file, or the config of a saved run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&fromRun, "from-run", "", "take basis, initial point and steps from a saved run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "compare a saved orbit with its eigenvalues",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")

	sweepCmd := &cobra.Command{
		Use:   "sweep [variant]",
		Short: "iterate every preset concurrently and tabulate the orbits",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepPresets,
	}
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 64, "steps per preset")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(runCmd, figureCmd, presetsCmd, initCmd, listCmd, showCmd, deleteCmd, analyzeCmd, sweepCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addBasisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "preset name, optionally as variant/name")
	cmd.Flags().StringVar(&variant, "variant", "", "real or complex")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of steps (default from config)")
	for _, p := range paramUsage {
		v, ok := paramFlags[p.name]
		if !ok {
			v = new(float64)
			paramFlags[p.name] = v
		}
		cmd.Flags().Float64Var(v, p.name, 0, p.usage)
	}
}

func configFields(c *config.Config) map[string]*float64 {
	return map[string]*float64{
		"lambda1": &c.Real.Lambda1,
		"lambda2": &c.Real.Lambda2,
		"v11":     &c.Real.V11,
		"v12":     &c.Real.V12,
		"v21":     &c.Real.V21,
		"v22":     &c.Real.V22,
		"sigma":   &c.Complex.Sigma,
		"tau":     &c.Complex.Tau,
		"alpha1":  &c.Complex.Alpha1,
		"beta1":   &c.Complex.Beta1,
		"alpha2":  &c.Complex.Alpha2,
		"beta2":   &c.Complex.Beta2,
		"x0":      &c.Initial.X,
		"y0":      &c.Initial.Y,
	}
}

// loadConfig layers defaults, the config file, a preset and finally any
// flags given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Lookup("preset") == nil {
		return cfg, nil
	}

	if variant != "" {
		cfg.Variant = variant
	}
	if preset != "" {
		group, name := cfg.Variant, preset
		if i := strings.IndexByte(preset, '/'); i >= 0 {
			group, name = preset[:i], preset[i+1:]
		}
		p := config.GetPreset(group, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(group))
		}
		p.Steps, p.Export, p.LogLevel = cfg.Steps, cfg.Export, cfg.LogLevel
		cfg = p
	}

	fields := configFields(cfg)
	for name, v := range paramFlags {
		if cmd.Flags().Changed(name) {
			*fields[name] = *v
		}
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cfg.Steps < 0 {
		return nil, fmt.Errorf("steps must be non-negative, got %d", cfg.Steps)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.LogLevel, os.Stderr)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := logging.OpenFile(filepath.Join(dataDir, "eigenmap.log"), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	defer closeLog()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	return tui.Run(cfg, tui.Options{ExportDir: wd, Logger: log})
}

// newSession builds the session described by cfg and takes cfg.Steps steps.
// A refused step is reported, not returned: the orbit so far is still valid.
func newSession(cfg *config.Config, log *slog.Logger) (*session.Session, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	s := session.New(params, log)
	s.SetExportOptions(cfg.ExportOptions())
	if n, err := s.Advance(cfg.Steps); err != nil {
		log.Warn("stopped early", "steps", n, "notice", s.Notice(), "err", err)
		fmt.Fprintf(os.Stderr, "warning: %s (after %d of %d steps)\n", s.Notice(), n, cfg.Steps)
	}
	return s, nil
}

func writeFigure(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if width > 0 {
		cfg.Export.Width = width
	}
	if height > 0 {
		cfg.Export.Height = height
	}

	name := formatName
	if name == "" && outPath != "" {
		name = strings.TrimPrefix(filepath.Ext(outPath), ".")
	}
	if name == "" {
		name = cfg.Export.Format
	}
	format, err := export.ParseFormat(strings.ToLower(name))
	if err != nil {
		return err
	}
	view, err := export.ParseView(viewName)
	if err != nil {
		return err
	}

	s, err := newSession(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	s.SelectView(view)

	data, filename, err := s.Figure(format)
	if err != nil {
		return err
	}
	if outPath != "" {
		filename = outPath
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", filename, view, len(data))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	groups := config.Variants()
	if len(args) > 0 {
		if _, err := linmap.ParseVariant(args[0]); err != nil {
			return err
		}
		groups = []string{args[0]}
	}

	out := cmd.OutOrStdout()
	for _, g := range groups {
		fmt.Fprintf(out, "presets for %s:\n", g)
		names := config.ListPresets(g)
		sort.Strings(names)
		for _, n := range names {
			desc := ""
			if b, err := config.GetPreset(g, n).Basis(); err == nil {
				desc = linmap.Classify(b).String()
				if _, err := b.Matrix(); err != nil {
					desc = "invalid: axes parallel"
				}
			}
			fmt.Fprintf(out, "  %-12s %s\n", n, desc)
		}
	}
	return nil
}
