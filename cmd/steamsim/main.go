package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/powerlab/steamsim/internal/config"
	"github.com/powerlab/steamsim/internal/metrics"
	"github.com/powerlab/steamsim/internal/session"
	"github.com/powerlab/steamsim/internal/storage"
	"github.com/powerlab/steamsim/internal/tui"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	preset     string
	configFile string
	leverFlags []string
	column     string
	noSave     bool
	asJSON     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "steamsim",
		Short: "interactive coal-fired steam plant simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".steamsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless scenario",
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep seconds")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration seconds")
	runCmd.Flags().StringVar(&preset, "preset", "", "preset name")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringArrayVar(&leverFlags, "lever", nil, "lever target, name=percent (repeatable)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON instead of a report")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "open the control-room dashboard",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "preset name")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "plot a single column only")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig merges, in increasing precedence: defaults, preset,
// config file, CLI flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Dt = p.Dt
		cfg.Duration = p.Duration
		for name, v := range p.Levers {
			cfg.Levers[name] = v
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Physics = fileCfg.Physics
		if fileCfg.Dt > 0 {
			cfg.Dt = fileCfg.Dt
		}
		if fileCfg.Duration > 0 {
			cfg.Duration = fileCfg.Duration
		}
		for name, v := range fileCfg.Levers {
			cfg.Levers[name] = v
		}
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}

	for _, flag := range leverFlags {
		name, val, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --lever %q, want name=percent", flag)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --lever value %q: %w", val, err)
		}
		cfg.Levers[name] = v
	}

	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sess := session.New(cfg.Physics)
	for _, m := range metrics.Defaults() {
		sess.AddMetric(m)
	}

	name := preset
	if name == "" {
		name = "custom"
	}

	if !asJSON {
		fmt.Printf("running %s scenario (%.0fs at dt=%.2fs)...\n", name, cfg.Duration, cfg.Dt)
	}
	start := time.Now()

	result, err := sess.RunHeadless(context.Background(), session.RunConfig{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Levers:   cfg.LeverTargets(),
	})
	if err != nil {
		return err
	}

	if asJSON {
		if err := storage.ExportResultJSON(os.Stdout, name, cfg.Dt, result); err != nil {
			return err
		}
	} else {
		elapsed := time.Since(start)
		final := result.States[len(result.States)-1]

		fmt.Printf("completed in %v\n", elapsed)
		fmt.Printf("steps: %d\n", len(result.States))
		fmt.Printf("final load: %.1f MW\n", final.Load)
		fmt.Printf("earnings: %.2f\n", final.TotalEarnings)
		if final.Tripped {
			fmt.Printf("TRIPPED: %s\n", final.TripCause)
		}

		fmt.Println("\nmetrics:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for mname, val := range result.Metrics {
			fmt.Fprintf(w, "  %s\t%.4f\n", mname, val)
		}
		w.Flush()

		loads := make([]float64, len(result.States))
		for i := range result.States {
			loads[i] = result.States[i].Load
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(loads,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("load (MW) vs time"),
		))
	}

	if noSave {
		return nil
	}

	runID, err := persistRun(name, cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}
	if asJSON {
		// keep stdout clean for JSON consumers
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	} else {
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func persistRun(name string, dt, duration float64, result *session.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(name, dt, duration, result)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sess := session.New(cfg.Physics)
	for id, v := range cfg.LeverTargets() {
		if err := sess.SetLeverTarget(id, v); err != nil {
			return err
		}
	}
	return tui.Run(sess)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tTRIP")
	for _, run := range runs {
		trip := "-"
		if run.Tripped {
			trip = run.TripCause
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fs\t%.2fs\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			trip,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	cols := storage.Columns[1:]
	if column != "" {
		cols = []string{column}
	}

	for _, name := range cols {
		data, ok := series[name]
		if !ok || len(data) == 0 {
			if column != "" {
				return fmt.Errorf("no column %q in run %s", column, runID)
			}
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		))
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(storage.Columns); err != nil {
		return err
	}
	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, name := range storage.Columns[1:] {
			v := 0.0
			if vals, ok := series[name]; ok && i < len(vals) {
				v = vals[i]
			}
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, series, times)
}
