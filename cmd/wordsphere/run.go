package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wordsphere/internal/config"
	"wordsphere/internal/metrics"
	"wordsphere/internal/raster"
	"wordsphere/internal/scene"
	"wordsphere/internal/tui"
	"wordsphere/internal/window"
	"wordsphere/internal/words"
)

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, g *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("words") {
		cfg.Words.File = g.wordsPath
	}
	if flags.Changed("count") {
		cfg.Words.Count = g.count
	}
	if flags.Changed("seed") {
		cfg.Words.Seed = g.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// newLogger logs to path, or to fallback when path is empty. A nil fallback
// discards.
func newLogger(path, level string, fallback io.Writer) (*slog.Logger, func(), error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	noop := func() {}
	if path == "" {
		if fallback == nil {
			return slog.New(slog.DiscardHandler), noop, nil
		}
		return slog.New(slog.NewTextHandler(fallback, &slog.HandlerOptions{Level: lvl})), noop, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, func() { _ = f.Close() }, nil
}

// itemSource yields a fresh set of items per call: the word-list file when
// configured, else a new draw from the pool.
func itemSource(cfg *config.Config) func() ([]words.Item, error) {
	if cfg.Words.File != "" {
		path := cfg.Words.File
		return func() ([]words.Item, error) { return words.LoadFile(path) }
	}
	pool := cfg.Words.Pool
	if len(pool) == 0 {
		pool = words.DefaultPool
	}
	var sel *words.Selector
	if cfg.Words.Seed != 0 {
		sel = words.NewSeeded(pool, cfg.Words.Seed)
	} else {
		sel = words.NewSelector(pool, nil)
	}
	count := cfg.Words.Count
	return func() ([]words.Item, error) { return sel.Select(count) }
}

func runTerminal(cfg *config.Config, g *globalFlags) error {
	// the alt screen owns stdout and stderr
	logger, closeLog, err := newLogger(g.logFile, g.logLevel, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	m := tui.New(tui.Options{Config: cfg, Logger: logger})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	m.Attach(p)
	logger.Info("terminal host starting", "version", Version, "words", cfg.Words.Count)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal host: %w", err)
	}
	return nil
}

func runWindow(cfg *config.Config, g *globalFlags) error {
	logger, closeLog, err := newLogger(g.logFile, g.logLevel, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("window host starting", "version", Version, "fps", cfg.Animation.FPS)
	if err := window.Run(window.Options{
		Config: cfg,
		Logger: logger,
		Next:   itemSource(cfg),
	}); err != nil {
		return fmt.Errorf("window host: %w", err)
	}
	return nil
}

type snapshotOptions struct {
	frames      int
	out         string
	width       int
	height      int
	metricsFile string
}

// runSnapshot mounts one scene and writes frames rotation steps apart as
// frame-NNNN.png. It returns the number of files written.
func runSnapshot(cfg *config.Config, logger *slog.Logger, o snapshotOptions) (int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if o.frames <= 0 {
		return 0, fmt.Errorf("frames must be positive: %w", scene.ErrInvalidArgument)
	}
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	rec := metrics.New()
	sched := scene.NewManualScheduler()
	factory := raster.Factory(cfg.BackgroundColor())
	var surface *raster.Surface
	r := scene.NewRenderer(cfg.SceneOptions(), func(vp scene.Viewport) (scene.Surface, error) {
		s, err := factory(vp)
		if err != nil {
			return nil, err
		}
		surface = s.(*raster.Surface)
		return s, nil
	}, sched, scene.WithLogger(logger), scene.WithObserver(rec))
	defer r.Dispose()

	items, err := itemSource(cfg)()
	if err != nil {
		return 0, err
	}
	if err := r.Mount(items, scene.Viewport{Width: o.width, Height: o.height}); err != nil {
		return 0, err
	}

	written := 0
	for i := 0; i < o.frames; i++ {
		// the mount already drew frame 0
		if i > 0 {
			sched.Step()
		}
		if r.State() != scene.Mounted {
			return written, fmt.Errorf("render stopped: %w", r.Err())
		}
		path := filepath.Join(o.out, fmt.Sprintf("frame-%04d.png", i))
		if err := raster.WritePNG(path, surface.Image()); err != nil {
			return written, err
		}
		written++
		logger.Debug("frame written", "path", path, "rotation", r.Rotation())
	}

	r.Dispose()
	if o.metricsFile != "" {
		if err := rec.WriteFile(o.metricsFile); err != nil {
			return written, fmt.Errorf("write metrics: %w", err)
		}
	}
	return written, nil
}
