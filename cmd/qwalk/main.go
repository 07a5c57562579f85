package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/qwalk/internal/chart"
	"github.com/san-kum/qwalk/internal/config"
	"github.com/san-kum/qwalk/internal/dashboard"
	"github.com/san-kum/qwalk/internal/logger"
	"github.com/san-kum/qwalk/internal/server"
	"github.com/san-kum/qwalk/internal/storage"
	"github.com/san-kum/qwalk/internal/walk"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	qubits      int
	steps       int
	repetitions int
	coin        string
	bias        float64
	start       int
	startBits   string
	seed        uint64

	noSave    bool
	exact     bool
	width     int
	height    int
	svgWidth  int
	svgHeight int
	addr      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qwalk",
		Short:         "quantum and random walk distribution visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDashboard,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	addWalkFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [quantum|random]",
		Short: "run a walk, plot it and save the distribution",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWalk,
	}
	addWalkFlags(runCmd)
	addPlotFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	circuitCmd := &cobra.Command{
		Use:   "circuit",
		Short: "print the quantum walk circuit",
		Args:  cobra.NoArgs,
		RunE:  printCircuit,
	}
	addWalkFlags(circuitCmd)
	circuitCmd.Flags().BoolVar(&exact, "exact", false, "also print the exact position probabilities")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addPlotFlags(plotCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and distribution to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run distribution to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run chart to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 450, "image height")

	compareCmd := &cobra.Command{
		Use:   "compare [run_id] ...",
		Short: "overlay saved runs, or a fresh quantum and random walk",
		RunE:  compareWalks,
	}
	addWalkFlags(compareCmd)
	addPlotFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [quantum|random]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve walk figures over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	addWalkFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	rootCmd.AddCommand(runCmd, circuitCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, compareCmd, presetsCmd, serveCmd)
	return rootCmd
}

func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&qubits, "qubits", walk.DefaultQubits, "number of qubits, coin included (quantum)")
	cmd.Flags().IntVar(&steps, "steps", walk.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&repetitions, "repetitions", walk.DefaultRepetitions, "number of samples")
	cmd.Flags().StringVar(&coin, "coin", string(walk.CoinOne), "initial coin state: 0, 1 or symmetric (quantum)")
	cmd.Flags().Float64Var(&bias, "bias", walk.DefaultBias, "probability of a step to the right (random)")
	cmd.Flags().IntVar(&start, "start", 0, "initial position")
	cmd.Flags().StringVar(&startBits, "start-bits", "", "initial position as a bit string, e.g. 0100")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 80, "chart width")
	cmd.Flags().IntVar(&height, "height", 15, "chart height")
}

// resolveConfig layers defaults, preset, config file, environment and the
// flags the user actually set, in that order. A walk named on the command
// line overrides all of them.
func resolveConfig(cmd *cobra.Command, walkName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if walkName != "" {
		cfg.Walk = walkName
	}

	if preset != "" {
		p := config.GetPreset(cfg.Walk, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Walk))
		}
		cfg.Apply(p)
	}
	if configFile != "" {
		if err := cfg.Merge(configFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("qubits") {
		cfg.Qubits = qubits
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("repetitions") {
		cfg.Repetitions = repetitions
	}
	if flags.Changed("coin") {
		cfg.Coin = coin
	}
	if flags.Changed("bias") {
		cfg.Bias = bias
	}
	if flags.Changed("start") {
		s := start
		cfg.Start = &s
	}
	if flags.Changed("start-bits") {
		v, err := walk.ParseBits(startBits)
		if err != nil {
			return nil, fmt.Errorf("start-bits %q: %w", startBits, err)
		}
		cfg.Start = &v
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("addr") {
		cfg.Addr = addr
	}

	if walkName != "" {
		cfg.Walk = walkName
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	l := logger.New(logger.Config{Level: level, Pretty: true})
	logger.SetGlobalLogger(l)
	return l
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	// Anything below warn would scribble over the alternate screen.
	level := cfg.LogLevel
	if lvl, err := zerolog.ParseLevel(level); err != nil || lvl < zerolog.WarnLevel {
		level = zerolog.WarnLevel.String()
	}

	return dashboard.Run(dashboard.Options{
		Registry: walk.NewRegistry(),
		Store:    storage.New(cfg.DataDir),
		Params:   p,
		Log:      newLogger(level),
	})
}

func runWalk(cmd *cobra.Command, args []string) error {
	walkName := ""
	if len(args) > 0 {
		walkName = args[0]
	}
	cfg, err := resolveConfig(cmd, walkName)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	p, err := cfg.Params()
	if err != nil {
		return err
	}

	log.Info().
		Str("walk", string(p.Kind)).
		Int("qubits", p.Qubits).
		Int("steps", p.Steps).
		Int("repetitions", p.Repetitions).
		Uint64("seed", p.Seed).
		Msg("running walk")

	began := time.Now()
	d, err := walk.NewRegistry().Run(cmd.Context(), p)
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	fmt.Println(chart.ASCII(d, width, height))
	fmt.Println()
	printSummary(d)
	fmt.Printf("elapsed: %s\n", elapsed.Round(time.Millisecond))

	if noSave {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(p, d)
	if err != nil {
		return err
	}
	log.Info().Str("run", runID).Str("dir", cfg.DataDir).Msg("run saved")
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func printSummary(d *walk.Distribution) {
	s := d.Stats()
	fmt.Printf("samples: %d\n", d.Total())
	fmt.Printf("positions: %d..%d\n", s.Min, s.Max)
	fmt.Printf("mean: %.4f  std: %.4f  mode: %d\n", s.Mean, s.StdDev, s.Mode)
}

func printCircuit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, string(walk.KindQuantum))
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	c, err := walk.BuildQuantumCircuit(p)
	if err != nil {
		return err
	}

	fmt.Print(c)
	fmt.Println()
	fmt.Println(c.Stats())

	pos := walk.DefaultStart(p.Qubits)
	if p.Start != nil {
		pos = *p.Start
	}
	fmt.Printf("start: %d (|%s⟩)\n", pos, walk.FormatBits(pos, p.Qubits-1))

	if !exact {
		return nil
	}
	probs, err := walk.QuantumExact(cmd.Context(), p)
	if err != nil {
		return err
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POSITION\tBITS\tPROBABILITY")
	for x, pr := range probs {
		if pr < 1e-12 {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%.6f\n", x, walk.FormatBits(x, p.Qubits-1), pr)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWALK\tTIME\tQUBITS\tSTEPS\tREPS\tCOIN\tMEAN\tSTD")

	for _, run := range runs {
		q, c := "-", "-"
		if run.Walk == walk.KindQuantum {
			q, c = fmt.Sprint(run.Qubits), string(run.Coin)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%.2f\t%.2f\n",
			run.ID,
			run.Walk,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			q,
			run.Steps,
			run.Repetitions,
			c,
			run.Summary.Mean,
			run.Summary.StdDev,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	d, err := st.LoadDistribution(runID)
	if err != nil {
		return err
	}

	if d.Empty() {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("walk: %s\n", meta.Walk)
	fmt.Printf("seed: %d\n\n", meta.Seed)
	fmt.Println(chart.ASCII(d, width, height))
	fmt.Println()
	printSummary(d)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	return storage.New(cfg.DataDir).ExportJSON(cmd.OutOrStdout(), args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	d, err := storage.New(cfg.DataDir).LoadDistribution(args[0])
	if err != nil {
		return err
	}
	if d.Empty() {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(cmd.OutOrStdout(), d)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	d, err := storage.New(cfg.DataDir).LoadDistribution(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), chart.SVG(d, svgWidth, svgHeight))
	return err
}

func compareWalks(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}

	var ds []*walk.Distribution
	if len(args) > 0 {
		st := storage.New(cfg.DataDir)
		for _, runID := range args {
			d, err := st.LoadDistribution(runID)
			if err != nil {
				return err
			}
			ds = append(ds, d)
		}
	} else {
		log := newLogger(cfg.LogLevel)
		var ps []walk.Params
		for _, kind := range []walk.Kind{walk.KindQuantum, walk.KindRandom} {
			cfg.Walk = string(kind)
			p, err := cfg.Params()
			if err != nil {
				return err
			}
			ps = append(ps, p)
		}
		began := time.Now()
		ds, err = walk.NewRegistry().RunAll(cmd.Context(), ps...)
		if err != nil {
			return err
		}
		log.Debug().Int("walks", len(ds)).Dur("elapsed", time.Since(began)).Msg("walks computed")
	}

	fmt.Println(chart.Compare(width, height, ds...))
	fmt.Println()
	fmt.Printf("%-10s  %10s  %10s  %6s\n", "walk", "mean", "std", "mode")
	for _, d := range ds {
		s := d.Stats()
		fmt.Printf("%-10s  %10.4f  %10.4f  %6d\n", d.Kind, s.Mean, s.StdDev, s.Mode)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := []string{string(walk.KindQuantum), string(walk.KindRandom)}
	if len(args) > 0 {
		kinds = args[:1]
	}
	for _, kind := range kinds {
		presets := config.ListPresets(kind)
		if len(presets) == 0 {
			fmt.Printf("no presets for walk: %s\n", kind)
			continue
		}
		fmt.Printf("presets for %s:\n", kind)
		for _, name := range presets {
			p := config.GetPreset(kind, name)
			fmt.Printf("  %-10s steps=%d repetitions=%d", name, p.Steps, p.Repetitions)
			if kind == string(walk.KindQuantum) {
				fmt.Printf(" qubits=%d coin=%s", p.Qubits, p.Coin)
			} else {
				fmt.Printf(" bias=%.2f", p.Bias)
			}
			fmt.Println()
		}
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	defaults, err := cfg.Params()
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:     cfg.Addr,
		Log:      log,
		Registry: walk.NewRegistry(),
		Defaults: defaults,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
