package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/eigenmap/internal/analysis"
	"github.com/san-kum/eigenmap/internal/config"
	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/storage"
	"github.com/san-kum/eigenmap/internal/views"
	"github.com/san-kum/eigenmap/internal/viz"
)

const portraitWidth, portraitHeight = 40, 20

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	basis := snap.Params.Basis()
	fmt.Fprintf(out, "variant: %s\n", snap.Variant)
	ev := basis.Eigenvalues()
	fmt.Fprintf(out, "eigenvalues: %v, %v\n", ev[0], ev[1])
	if snap.Variant == linmap.VariantComplex {
		fmt.Fprintf(out, "|λ| = %.4f  arg λ = %.2f°", snap.Modulus, snap.ArgumentDegrees)
		if n := linmap.StepsPerTurn(snap.Params.Complex); n > 0 {
			fmt.Fprintf(out, "  (%.1f steps per turn)", n)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "A =\n%s\n", snap.Matrix)
	if snap.Matrix.Defined {
		fmt.Fprintf(out, "origin: %s\n", snap.Kind)
	}
	fmt.Fprintf(out, "steps: %d\n\n", snap.Steps)

	printViews(out, snap.Phase, snap.Series)

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Variant: snap.Variant.String(),
		Initial: storage.Point{X: snap.Params.Initial.X, Y: snap.Params.Initial.Y},
	}
	if snap.Variant == linmap.VariantComplex {
		meta.Complex = &snap.Params.Complex
	} else {
		meta.Real = &snap.Params.Real
	}
	if a, err := s.Matrix(); err == nil {
		meta.Matrix = &a
		meta.Kind = snap.Kind.String()
	}
	runID, err := st.Save(meta, s.Points())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nsaved: %s\n", runID)
	return nil
}

func printViews(w io.Writer, g views.PhaseGeometry, ts views.TimeSeries) {
	fmt.Fprintln(w, viz.TimeSeriesPlot(ts, 60, plotHeight))
	fmt.Fprintln(w)
	fmt.Fprint(w, viz.PhasePortrait(g, portraitWidth, portraitHeight, viz.ThemeClassic))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tSTEPS\tORIGIN")
	for _, run := range runs {
		kind := run.Kind
		if run.Matrix == nil {
			kind = "undefined"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			kind,
		)
	}
	return w.Flush()
}

// basisOf rebuilds the basis stored with a run.
func basisOf(meta *storage.RunMetadata) (linmap.Basis, error) {
	switch {
	case meta.Complex != nil:
		return *meta.Complex, nil
	case meta.Real != nil:
		return *meta.Real, nil
	}
	return nil, fmt.Errorf("run %s has no basis", meta.ID)
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	points, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	basis, err := basisOf(meta)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "variant: %s\n", meta.Variant)
	fmt.Fprintf(out, "time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "initial: (%g, %g)\n", meta.Initial.X, meta.Initial.Y)
	fmt.Fprintf(out, "A =\n%s\n", views.NewMatrixDisplay(meta.Matrix))
	fmt.Fprintf(out, "steps: %d\n\n", meta.Steps)

	g, err := views.NewPhaseGeometry(basis, points)
	if err != nil {
		return err
	}
	ts, err := views.NewTimeSeries(points)
	if err != nil {
		return err
	}
	printViews(out, g, ts)
	return nil
}

// output opens outPath, or returns stdout when it is empty.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outPath == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportCSV(w, args[0]); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", outPath)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath != "" {
		if err := st.ExportJSONFile(outPath, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", outPath)
		return nil
	}
	return st.ExportJSON(cmd.OutOrStdout(), args[0])
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	points, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	basis, err := basisOf(meta)
	if err != nil {
		return err
	}
	if len(points) < 4 {
		return fmt.Errorf("run %s has too few points to analyze (%d)", runID, len(points))
	}

	r := analysis.Analyze(basis, points, views.Window)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "orbit analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "variant: %s\n\n", meta.Variant)

	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
	}
	if ps := analysis.PowerSpectrum(xs); len(ps) > 1 {
		fmt.Fprintln(out, asciigraph.Plot(ps,
			asciigraph.Height(plotHeight),
			asciigraph.Width(60),
			asciigraph.Caption("power spectrum (x)"),
		))
		fmt.Fprintln(out)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tMEASURED\tEXPECTED")
	fmt.Fprintf(w, "rotation/step\t%.2f°\t%.2f°\n", r.Rotation, r.ExpectedRotation)
	fmt.Fprintf(w, "ln growth/step\t%.4f\t%.4f\n", r.Growth, r.ExpectedGrowth)
	fmt.Fprintf(w, "inside window\t%.0f%%\t\n", 100*r.Inside)
	return w.Flush()
}

func sweepPresets(cmd *cobra.Command, args []string) error {
	variants := config.Variants()
	if len(args) > 0 {
		variants = args[:1]
	}

	var cases []analysis.Case
	for _, v := range variants {
		names := config.ListPresets(v)
		if len(names) == 0 {
			return fmt.Errorf("unknown variant: %s", v)
		}
		for _, name := range names {
			cfg := config.GetPreset(v, name)
			b, err := cfg.Basis()
			if err != nil {
				return err
			}
			cases = append(cases, analysis.Case{
				Name:    v + "/" + name,
				Basis:   b,
				Initial: cfg.InitialPoint(),
			})
		}
	}

	out, err := analysis.Sweep(cmd.Context(), cases, sweepSteps, views.Window)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tKIND\tROTATION\tGROWTH\tINSIDE")
	for _, o := range out {
		if o.Err != nil {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t%v\n", o.Name, o.Kind, o.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f°\t%.3f\t%.0f%%\n",
			o.Name, o.Kind, o.Report.Rotation, o.Report.Growth, 100*o.Report.Inside)
	}
	return w.Flush()
}

func deleteRun(cmd *cobra.Command, args []string) error {
	if err := storage.New(dataDir).Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}

// configFromRun rebuilds the config that reproduces a saved run.
func configFromRun(meta *storage.RunMetadata) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Variant = meta.Variant
	if meta.Real != nil {
		cfg.SetReal(*meta.Real)
	}
	if meta.Complex != nil {
		cfg.SetComplex(*meta.Complex)
	}
	cfg.Initial = config.PointConfig{X: meta.Initial.X, Y: meta.Initial.Y}
	cfg.Steps = meta.Steps
	return cfg
}

func writeConfig(cmd *cobra.Command, args []string) error {
	path := "eigenmap.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	cfg := config.DefaultConfig()
	if fromRun != "" {
		meta, err := storage.New(dataDir).Load(fromRun)
		if err != nil {
			return err
		}
		cfg = configFromRun(meta)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
