package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir      string
	length       int
	discard      int
	seed         uint64
	configFile   string
	preset       string
	params       []string
	realizations int
	integrator   string
	tolerance    float64
	toStdout     bool
	verbose      bool
	withSamples  bool
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chaosdata",
		Short:         "reproducible synthetic time series from noise and chaotic systems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chaosdata", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	generateCmd := &cobra.Command{
		Use:   "generate [system]",
		Short: "generate and store one or more realizations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  generate,
	}
	generateCmd.Flags().IntVarP(&length, "length", "n", 0, "number of samples (0 = system default)")
	generateCmd.Flags().IntVar(&discard, "discard", 0, "transient samples to drop")
	generateCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	generateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	generateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	generateCmd.Flags().StringArrayVarP(&params, "param", "p", nil, "model constant as name=value (repeatable)")
	generateCmd.Flags().IntVarP(&realizations, "realizations", "r", 1, "independent realizations with seeds seed, seed+1, ...")
	generateCmd.Flags().StringVar(&integrator, "integrator", "rk4", "flow integrator: rk4, euler or rk45")
	generateCmd.Flags().Float64Var(&tolerance, "tol", 0, "rk45 error tolerance")
	generateCmd.Flags().BoolVar(&toStdout, "stdout", false, "write CSV to stdout instead of the store")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every job of a yaml scenario and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [system]",
		Short: "generate one series per value of a model constant",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "sweep", "", "model constant to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "to", 0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVarP(&length, "length", "n", 0, "number of samples (0 = system default)")
	sweepCmd.Flags().IntVar(&discard, "discard", 0, "transient samples to drop")
	sweepCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed shared by every point (default: random)")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().StringArrayVarP(&params, "param", "p", nil, "fixed model constant as name=value (repeatable)")
	sweepCmd.Flags().StringVar(&integrator, "integrator", "rk4", "flow integrator: rk4, euler or rk45")
	sweepCmd.Flags().Float64Var(&tolerance, "tol", 0, "rk45 error tolerance")
	sweepCmd.MarkFlagRequired("sweep")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&withSamples, "samples", false, "include the samples")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [file]",
		Short: "copy the series of a run to a csv file",
		Args:  cobra.ExactArgs(2),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary statistics and dominant frequency per component",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	systemsCmd := &cobra.Command{
		Use:   "systems",
		Short: "list systems and their default constants",
		Args:  cobra.NoArgs,
		RunE:  listSystems,
	}

	rootCmd.AddCommand(generateCmd, scenarioCmd, sweepCmd, listCmd, exportCmd, exportCSVCmd, analyzeCmd, presetsCmd, systemsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}
