package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/molvib/internal/analysis"
	"github.com/san-kum/molvib/internal/config"
	"github.com/san-kum/molvib/internal/experiment"
	"github.com/san-kum/molvib/internal/export"
	"github.com/san-kum/molvib/internal/gui"
	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/metrics"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
	"github.com/san-kum/molvib/internal/storage"
	"github.com/san-kum/molvib/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	logLevel   string
	theme      string
	species    string

	frames int
	fps    int
	save   bool

	svgOut    string
	pngOut    string
	photonArg string
	pngWidth  int
	pngHeight int

	brailleOut string
	pathOut    string

	outFile string
	sound   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "molvib",
		Short: "molecular vibration lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cfg, err := newLab()
			if err != nil {
				return err
			}
			return viz.RunInteractive(l, themeName(cfg))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config, .molvib)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", 0, "frames per second (default from config)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal lab",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	tuiCmd.Flags().StringVarP(&species, "species", "s", "", "molecule to add on start")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "raylib window",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cfg, err := newLab()
			if err != nil {
				return err
			}
			if species != "" {
				sp, err := molecule.Parse(species)
				if err != nil {
					return err
				}
				if err := l.Add(sp); err != nil {
					return err
				}
			}
			gui.Run(l, themeName(cfg), sound)
			return nil
		},
	}
	guiCmd.Flags().StringVarP(&species, "species", "s", "", "molecule to add on start")
	guiCmd.Flags().StringVar(&theme, "theme", "", "HUD color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	guiCmd.Flags().BoolVar(&sound, "sound", false, "chime on every absorption")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless (all presets when none given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&frames, "frames", 0, "frames to run (default from scenario)")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run under the data directory")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPECIES\tFRAMES\tDESCRIPTION")
			for _, name := range config.ListScenarios() {
				sc := config.GetScenario(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", sc.Name, sc.Species, sc.Frames, sc.Description)
			}
			w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot bond lengths of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&pathOut, "svg", "", "write the atom path as SVG to this file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [species]",
		Short: "render the scene after N frames to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVar(&svgOut, "svg", "", "SVG output file")
	snapshotCmd.Flags().StringVar(&pngOut, "png", "", "PNG output file (- for stdout)")
	snapshotCmd.Flags().StringVar(&brailleOut, "braille-svg", "", "SVG of the scene as the terminal lab draws it")
	snapshotCmd.Flags().IntVar(&frames, "frames", 0, "frames to advance before rendering")
	snapshotCmd.Flags().StringVar(&photonArg, "photon", "", "photon kind to emit on the first frame (ir, microwave, broadband)")
	snapshotCmd.Flags().IntVar(&pngWidth, "width", 0, "PNG width (default canvas width)")
	snapshotCmd.Flags().IntVar(&pngHeight, "height", 0, "PNG height (default canvas height)")

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, scenariosCmd, listCmd, plotCmd, analyzeCmd, exportCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, cfg.Validate()
}

func newLogger() lab.Logger {
	level := lab.ParseLevel(logLevel)
	if verbose {
		level = lab.LevelDebug
	}
	return lab.NewStdLogger(log.New(os.Stderr, "molvib ", log.LstdFlags), level)
}

func newLab() (*lab.Lab, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	l, err := lab.New(cfg, lab.WithLogger(newLogger()))
	if err != nil {
		return nil, nil, err
	}
	return l, cfg, nil
}

func themeName(cfg *config.Config) string {
	if theme != "" {
		return theme
	}
	return cfg.Theme
}

func runTUI(cmd *cobra.Command, args []string) error {
	l, cfg, err := newLab()
	if err != nil {
		return err
	}
	if species == "" {
		return viz.RunInteractive(l, themeName(cfg))
	}
	sp, err := molecule.Parse(species)
	if err != nil {
		return err
	}
	if err := l.Add(sp); err != nil {
		return err
	}
	return viz.Run(l, themeName(cfg))
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		results []*experiment.Result
		runErr  error
	)
	start := time.Now()

	if len(args) == 0 {
		var scenarios []*config.Scenario
		for _, name := range experiment.Names() {
			scenarios = append(scenarios, config.GetScenario(name))
		}
		fmt.Printf("running %d scenarios...\n", len(scenarios))
		results, runErr = experiment.RunAll(ctx, cfg, scenarios,
			experiment.WithLogger(newLogger()), experiment.WithFrames(frames))
	} else {
		sc, err := experiment.Resolve(args[0])
		if err != nil {
			return err
		}
		exp, err := experiment.New(cfg, sc, experiment.WithLogger(newLogger()), experiment.WithFrames(frames))
		if err != nil {
			return err
		}
		for _, m := range metrics.Defaults() {
			exp.AddMetric(m)
		}

		fmt.Printf("running %s (%s, %d frames)...\n", sc.Name, sc.Species, exp.Frames())
		var res *experiment.Result
		res, runErr = exp.Run(ctx)
		results = append(results, res)
	}

	interrupted := errors.Is(runErr, context.Canceled)
	if runErr != nil && !interrupted {
		return runErr
	}
	if interrupted {
		fmt.Printf("interrupted after %v, partial results:\n\n", time.Since(start))
	} else {
		fmt.Printf("completed in %v\n\n", time.Since(start))
	}

	var st *storage.Store
	if save {
		st = storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSPECIES\tFRAMES\tABSORBED\tAMPLITUDE\tACTIVE\tRUN")
	for _, res := range results {
		if res == nil {
			continue
		}
		runID := "-"
		if st != nil && res.Frames > 0 {
			id, err := st.Save(res)
			if err != nil {
				return err
			}
			runID = id
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%.2f\t%.2f\t%s\n",
			res.Scenario,
			res.Species,
			res.Frames,
			res.Metrics["absorptions"],
			res.Metrics["amplitude"],
			res.Metrics["active_fraction"],
			runID,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(results) == 1 && results[0] != nil && len(results[0].Events) > 0 {
		fmt.Println("\nevents:")
		for _, ev := range results[0].Events {
			state := "already active"
			if ev.Activated {
				state = "activated"
			}
			fmt.Printf("  frame %4d  %-9s absorbed at x=%.0f  %s %s\n", ev.Frame, ev.Kind, ev.X, ev.Motion, state)
		}
	}
	return nil
}

func openStore() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tSPECIES\tTIME\tFRAMES\tFPS\tEVENTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Species,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FPS,
			len(run.Events),
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Frames, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	fr, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(fr.Times) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, fr, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, fr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("species: %s\n", meta.Species)
	fmt.Printf("samples: %d\n\n", len(fr.Times))

	numBonds := len(fr.Bonds[0])
	if numBonds > 4 {
		numBonds = 4
	}
	if numBonds == 0 {
		return fmt.Errorf("run %s has no bonds", meta.ID)
	}

	for i := 0; i < numBonds; i++ {
		graph := asciigraph.Plot(analysis.BondTrace(fr.Bonds, i),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("bond %d length", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, fr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(fr.Bonds[0]) == 0 {
		return fmt.Errorf("run %s has no bonds", meta.ID)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("species: %s\n\n", meta.Species)

	trace := analysis.BondTrace(fr.Bonds, 0)
	ps := analysis.PowerSpectrum(analysis.Detrend(trace))
	if len(ps) > 1 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (bond 0)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(trace, float64(meta.FPS))
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	fmt.Printf("amplitude: %.2f\n", analysis.Amplitude(trace))

	atom := 1
	if meta.Atoms < 2 {
		atom = 0
	}
	fmt.Printf("\natom %d path:\n", atom)
	path := analysis.AtomPath(fr.Atoms, atom)
	fmt.Println(analysis.PathToASCII(path, 60, 15))

	if pathOut != "" {
		svg := export.PathToSVG(path, config.DefaultWidth, config.DefaultHeight, "#d62728")
		if svg == "" {
			return fmt.Errorf("run %s: atom %d path too short for SVG", meta.ID, atom)
		}
		if err := os.WriteFile(pathOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pathOut)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := st.ExportJSONFile(outFile, args[0]); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", args[0], outFile)
		return nil
	}
	return st.ExportJSON(os.Stdout, args[0])
}

func snapshot(cmd *cobra.Command, args []string) error {
	sp, err := molecule.Parse(args[0])
	if err != nil {
		return err
	}
	l, cfg, err := newLab()
	if err != nil {
		return err
	}
	if err := l.Add(sp); err != nil {
		return err
	}
	if photonArg != "" {
		k, err := photon.ParseKind(photonArg)
		if err != nil {
			return err
		}
		l.Emit(k)
	}
	for i := 0; i < frames; i++ {
		l.Step()
	}

	if svgOut == "" && pngOut == "" && brailleOut == "" {
		fmt.Println(export.SceneToSVG(l.Scene()))
		return nil
	}
	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.SceneToSVG(l.Scene())), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", svgOut)
	}
	if brailleOut != "" {
		svg := export.SceneToBrailleSVG(l.Scene(), 60, 20, 4, "#33ff66")
		if err := os.WriteFile(brailleOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", brailleOut)
	}
	if pngOut != "" {
		w, h := pngWidth, pngHeight
		if w <= 0 {
			w = int(cfg.Canvas.Width)
		}
		if h <= 0 {
			h = int(cfg.Canvas.Height)
		}
		if pngOut == "-" {
			return export.ScenePNG(os.Stdout, l.Scene(), w, h)
		}
		if err := export.SavePNG(pngOut, l.Scene(), w, h); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", pngOut)
	}
	return nil
}
