package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/drewsortega/bonnaroo-led/internal/catalog"
	"github.com/drewsortega/bonnaroo-led/internal/config"
	"github.com/drewsortega/bonnaroo-led/internal/display"
	"github.com/drewsortega/bonnaroo-led/internal/gifdec"
	"github.com/drewsortega/bonnaroo-led/internal/logging"
	"github.com/drewsortega/bonnaroo-led/internal/overlay"
	"github.com/drewsortega/bonnaroo-led/internal/player"
	"github.com/drewsortega/bonnaroo-led/internal/remote"
	"github.com/drewsortega/bonnaroo-led/internal/sim"
)

const version = "1.0.0"

func printVersion() {
	fmt.Printf("bonnaroo-sim v%s\n", version)
	fmt.Println("Desktop simulator for the LED matrix GIF player")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  bonnaroo-sim [OPTIONS]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Runs the panel's control loop against a terminal renderer instead of")
	fmt.Println("  the HUB75 matrix. Keyboard presses stand in for the IR remote; a")
	fmt.Println("  websocket endpoint accepts scripted presses and broadcasts playback")
	fmt.Println("  state.")
	fmt.Println()
	fmt.Println("KEYS:")
	fmt.Println("  -/+          brightness down/up")
	fmt.Println("  left/right   previous/next item")
	fmt.Println("  space        play, s stop, enter/backspace/digits as on the remote")
	fmt.Println("  q            quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Printf("        Config file path (default %q)\n", config.DefaultPath())
	fmt.Println()
	fmt.Println("  -base-path string")
	fmt.Println("        Directory relative gifs paths resolve against (default \".\")")
	fmt.Println()
	fmt.Println("  -gifs-dir string")
	fmt.Println("        Item directory override (default from config, \"gifs\")")
	fmt.Println()
	fmt.Println("  -builtin")
	fmt.Println("        Use the built-in test catalog instead of a directory")
	fmt.Println()
	fmt.Println("  -scale int")
	fmt.Println("        Terminal columns per pixel (default from config, 1)")
	fmt.Println()
	fmt.Println("  -no-gap")
	fmt.Println("        Disable the blank column between pixels")
	fmt.Println()
	fmt.Println("  -ws-port int")
	fmt.Println("        Websocket control port, 0 disables (default from config, 3001)")
	fmt.Println()
	fmt.Println("  -log-level string")
	fmt.Println("        Log level: error, warn, info, debug (default \"info\")")
	fmt.Println()
	fmt.Println("  -log-file string")
	fmt.Println("        Log destination; logging is off while the UI owns the terminal")
	fmt.Println("        unless this is set")
	fmt.Println()
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println()
	fmt.Println("  -help")
	fmt.Println("        Print this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Play the built-in test catalog")
	fmt.Println("  bonnaroo-sim -builtin")
	fmt.Println()
	fmt.Println("  # Play a directory of gifs with scripted control")
	fmt.Println("  bonnaroo-sim -gifs-dir ~/gifs -ws-port 3001")
	fmt.Println()
}

func main() {
	var (
		configPath = flag.String("config", "", "Config file path")
		basePath   = flag.String("base-path", ".", "Directory relative gifs paths resolve against")
		gifsDir    = flag.String("gifs-dir", "", "Item directory override")
		useBuiltin = flag.Bool("builtin", false, "Use the built-in test catalog")
		scale      = flag.Int("scale", 0, "Terminal columns per pixel")
		noGap      = flag.Bool("no-gap", false, "Disable the blank column between pixels")
		wsPort     = flag.Int("ws-port", -1, "Websocket control port, 0 disables")
		logLevel   = flag.String("log-level", "", "Log level: error, warn, info, debug")
		logFile    = flag.String("log-file", "", "Log destination file")
		showVer    = flag.Bool("version", false, "Print version and exit")
		showHelp   = flag.Bool("help", false, "Print help message")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}
	if *showVer {
		printVersion()
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	applyOverrides(&cfg, *gifsDir, *scale, *noGap, *wsPort, *logLevel)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	logger, closeLog, err := buildLogger(cfg.Logging.Level, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logger, *basePath, *useBuiltin); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path, true)
	}
	return config.Load(config.DefaultPath(), false)
}

// applyOverrides layers set flags over the loaded config.
func applyOverrides(cfg *config.Config, gifsDir string, scale int, noGap bool, wsPort int, logLevel string) {
	if gifsDir != "" {
		cfg.Playback.GifsDir = gifsDir
	}
	if scale > 0 {
		cfg.Sim.Scale = scale
	}
	if noGap {
		cfg.Sim.Gap = false
	}
	if wsPort >= 0 {
		cfg.Sim.WSPort = wsPort
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
}

// buildLogger returns a logger that writes to the given file, or discards
// everything when no file is set: the UI owns stdout and stderr.
func buildLogger(level, path string) (logger *slog.Logger, closeLog func(), err error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return logging.New(io.Discard, lvl), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, lvl), func() { f.Close() }, nil
}

func run(cfg config.Config, logger *slog.Logger, basePath string, useBuiltin bool) error {
	clk := clock.New()
	now := clk.Now()

	fb := display.NewFramebuffer(cfg.Matrix.Width, cfg.Matrix.Height, cfg.Brightness.Max)
	fb.SetBrightness(cfg.Brightness.Initial)
	queue := remote.NewQueue()
	ov := overlay.NewController(fb, time.Duration(cfg.Overlay.TimeoutMS)*time.Millisecond)
	ov.Write("POWER: ON", now, true)

	cat, haltReason := buildCatalog(cfg, basePath, useBuiltin)

	mode := player.NavigationImmediate
	if cfg.Playback.Navigation == config.NavigationStaged {
		mode = player.NavigationStaged
	}

	state := player.NewState(cat.Len(), cfg.Brightness.Initial, cfg.Brightness.Max)
	disp := player.NewDispatcher(queue, state, fb, ov, logger,
		time.Duration(cfg.Input.CooldownMS)*time.Millisecond, cfg.Brightness.Step, mode)
	dec := gifdec.New(gifdec.NewSurfaceTarget(fb), cfg.Matrix.Width, cfg.Matrix.Height)
	drv := player.NewDriver(state, cat, dec, fb, ov, logger,
		cfg.Matrix.Width, cfg.Matrix.Height,
		time.Duration(cfg.Playback.DefaultFrameDelayMS)*time.Millisecond,
		time.Duration(cfg.Playback.MinFrameDelayMS)*time.Millisecond)
	loop := player.NewLoop(clk, ov, disp, drv, logger, 0)

	// Published once per tick on the loop goroutine; read by the render
	// and websocket goroutines.
	var status atomic.Value
	publish := func() {
		st := sim.Status{
			Index:      state.Index(),
			Total:      cat.Len(),
			Brightness: state.Brightness(),
			Halted:     loop.Halted(),
		}
		if item, err := cat.Item(state.Index()); err == nil {
			st.ItemName = item.Name
		}
		status.Store(st)
	}
	loop.OnTick = publish

	if haltReason != "" {
		loop.Halt(haltReason)
	} else {
		ov.Write(fmt.Sprintf("Found %d", cat.Len()), now, true)
		logger.Info("catalog ready", "items", cat.Len())
	}
	publish()

	statusFn := func() sim.Status {
		st, _ := status.Load().(sim.Status)
		return st
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	g.Go(func() error {
		err := loop.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.Sim.WSPort > 0 {
		ctl := sim.NewControlServer(logger, queue, statusFn)
		mux := http.NewServeMux()
		ctl.Register(mux, "/control")
		srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Sim.WSPort), Handler: mux}

		g.Go(func() error {
			err := ctl.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("ws server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutCancel()
			return srv.Shutdown(shutCtx)
		})
		logger.Info("ws control listening", "port", cfg.Sim.WSPort)
	}

	model := sim.New(fb, queue, statusFn, cfg.Sim.Scale, cfg.Sim.Gap)
	prog := tea.NewProgram(model, tea.WithAltScreen())

	g.Go(func() error {
		<-ctx.Done()
		prog.Quit()
		return nil
	})

	_, uiErr := prog.Run()
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	return uiErr
}

// buildCatalog enumerates the item directory, or the builtin set when
// requested. A missing or empty directory returns an empty catalog plus
// the banner the loop halts with.
func buildCatalog(cfg config.Config, basePath string, useBuiltin bool) (*catalog.Catalog, string) {
	if useBuiltin {
		return catalog.Builtin(cfg.Matrix.Width, cfg.Matrix.Height), ""
	}

	dir := cfg.Playback.GifsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(basePath, dir)
	}
	cat, err := catalog.Enumerate(dir)
	switch {
	case errors.Is(err, catalog.ErrNoDirectory):
		return catalog.FromItems(), "No gifs directory"
	case errors.Is(err, catalog.ErrEmpty):
		return catalog.FromItems(), "Empty gifs directory"
	case err != nil:
		return catalog.FromItems(), "No SD card"
	}
	return cat, ""
}
