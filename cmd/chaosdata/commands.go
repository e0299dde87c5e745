package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaosdata/internal/analysis"
	"github.com/san-kum/chaosdata/internal/automation"
	"github.com/san-kum/chaosdata/internal/config"
	"github.com/san-kum/chaosdata/internal/experiment"
	"github.com/san-kum/chaosdata/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildConfig layers the config file, the preset and then explicitly set
// flags, in that order.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.System = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.System, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (available: %s)",
				preset, cfg.System, strings.Join(config.ListPresets(cfg.System), ", "))
		}
		if cfg.Seed != nil && p.Seed == nil {
			p.Seed = cfg.Seed
		}
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("discard") {
		d := discard
		cfg.Discard = &d
	}
	if flags.Changed("seed") {
		s := seed
		cfg.Seed = &s
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	for _, p := range params {
		name, value, err := parseParam(p)
		if err != nil {
			return nil, err
		}
		cfg.SetParam(name, value)
	}

	return cfg, cfg.Validate()
}

func parseParam(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("param %q: expected name=value", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("param %q: %w", s, err)
	}
	return name, v, nil
}

func generate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if toStdout && realizations > 1 {
		return fmt.Errorf("--stdout writes a single realization")
	}

	logger := newLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := experiment.New(cfg, experiment.NewRegistry())
	logger.Info("generating", "system", cfg.System, "realizations", realizations)

	start := time.Now()
	runs, err := exp.Batch(ctx, realizations, logger)
	if err != nil {
		return err
	}
	logger.Debug("generation finished", "elapsed", time.Since(start))

	if toStdout {
		return storage.WriteCSV(os.Stdout, runs[0].Series)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s: %d realization(s) in %v", cfg.System, len(runs), time.Since(start).Round(time.Millisecond))))
	return saveRuns(cfg, "", runs, logger)
}

// saveRuns stores each realization with its summary statistics.
func saveRuns(cfg *config.Config, label string, runs []experiment.Realization, logger *slog.Logger) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	for _, run := range runs {
		meta := storage.RunMetadata{
			Preset:      preset,
			Label:       label,
			Seed:        run.Seed,
			Realization: run.Index,
			Params:      cfg.Params,
			Summary:     analysis.Summarize(run.Series.States),
		}
		if run.Series.Times != nil {
			meta.Integrator = cfg.Integrator
		}
		runID, err := st.Save(meta, run.Series)
		if err != nil {
			return err
		}
		logger.Debug("run saved", "id", runID, "samples", run.Series.Len())
		fmt.Printf("  %s %s\n", runID, dimStyle.Render(fmt.Sprintf("seed=%d samples=%d", run.Seed, run.Series.Len())))
	}

	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	logger := newLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), logger)
	for _, r := range results {
		fmt.Println(headerStyle.Render(r.Label))
		if serr := saveRuns(r.Config, r.Label, r.Realizations, logger); serr != nil {
			return serr
		}
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{Base: cfg, Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	results, err := automation.RunSweep(ctx, sweep, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s: sweep of %s over %d values", cfg.System, sweepParam, len(results))))
	for _, r := range results {
		if err := saveRuns(r.Config, r.Label, r.Realizations, logger); err != nil {
			return err
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tSAMPLES\tSEED\tINTEG")

	for _, run := range runs {
		integ := run.Integrator
		if integ == "" {
			integ = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Length,
			run.Seed,
			integ,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	var series *experiment.Series
	if withSamples {
		if series, err = st.LoadSeries(args[0]); err != nil {
			return err
		}
	}
	return storage.ExportJSON(os.Stdout, meta, series)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.CopySeries(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[1])
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("run %s has no samples", meta.ID)
	}

	fmt.Println(headerStyle.Render("analysis: " + meta.ID))
	fmt.Println(dimStyle.Render(fmt.Sprintf("system %s, %d samples", meta.System, series.Len())))
	fmt.Println()

	// Frequencies are per sample unless the run carries sample times.
	sampleTime := 0.0
	if len(series.Times) > 1 {
		sampleTime = series.Times[1] - series.Times[0]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tMEAN\tVARIANCE\tMIN\tMAX\tDOM_FREQ\tPERIOD")
	for d, s := range analysis.Summarize(series.States) {
		freq := s.DominantFreq
		if sampleTime > 0 {
			freq /= sampleTime
		}
		period := "-"
		if freq > 0 {
			period = fmt.Sprintf("%.4g", 1/freq)
		}
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.6g\t%.4g\t%s\n",
			series.Columns[d], s.Mean, s.Variance, s.Min, s.Max, freq, period)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	systems := make([]string, 0, len(config.Presets))
	if len(args) > 0 {
		systems = append(systems, args[0])
	} else {
		for name := range config.Presets {
			systems = append(systems, name)
		}
		sort.Strings(systems)
	}

	for _, system := range systems {
		names := config.ListPresets(system)
		if len(names) == 0 {
			fmt.Printf("no presets for system: %s\n", system)
			continue
		}
		fmt.Println(headerStyle.Render("presets for " + system + ":"))
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

func listSystems(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYSTEM\tCOLUMNS\tDEFAULTS\tDESCRIPTION")
	for _, name := range reg.ListSystems() {
		info, _ := reg.Info(name)
		keys := make([]string, 0, len(info.Params))
		for k := range info.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		defaults := make([]string, len(keys))
		for i, k := range keys {
			defaults[i] = fmt.Sprintf("%s=%g", k, info.Params[k])
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, strings.Join(info.Columns, ","), strings.Join(defaults, " "), info.Description)
	}
	return w.Flush()
}
