// Package tui hosts the word sphere in a full-screen terminal program.
package tui

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"wordsphere/internal/config"
	"wordsphere/internal/scene"
	"wordsphere/internal/words"
)

type Model struct {
	width  int
	height int

	helpVisible bool
	status      string

	cfg      *config.Config
	logger   *slog.Logger
	selector *words.Selector
	items    []words.Item

	renderer *scene.Renderer
	canvas   *canvasRef
	sched    *programScheduler

	// word list file, hot reloaded
	wordsPath string
	watcher   *fileWatcher

	// word-list picker over the working directory
	cwd       string
	files     list.Model
	showFiles bool

	// legend table
	showLegend bool
	tbl        table.Model

	keys keyMap
	help help.Model
}

// Options configures New. Zero values fall back to defaults.
type Options struct {
	Config   *config.Config
	Logger   *slog.Logger
	Observer scene.Observer
	// Scheduler drives the render loop; by default frames are delivered
	// through the program set with Attach.
	Scheduler scene.Scheduler
	// Dir is where the picker looks for word lists; defaults to the
	// working directory.
	Dir string
}

func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := Model{
		helpVisible: true,
		status:      "wordsphere ready",
		cfg:         cfg,
		logger:      logger,
		canvas:      &canvasRef{},
		sched:       &programScheduler{interval: cfg.FrameInterval()},
		keys:        newKeyMap(),
		help:        help.New(),
	}
	pool := cfg.Words.Pool
	if len(pool) == 0 {
		pool = words.DefaultPool
	}
	if cfg.Words.Seed != 0 {
		m.selector = words.NewSeeded(pool, cfg.Words.Seed)
	} else {
		m.selector = words.NewSelector(pool, nil)
	}

	var sched scene.Scheduler = m.sched
	if opts.Scheduler != nil {
		sched = opts.Scheduler
	}
	ropts := []scene.Option{scene.WithLogger(logger)}
	if opts.Observer != nil {
		ropts = append(ropts, scene.WithObserver(opts.Observer))
	}
	m.renderer = scene.NewRenderer(cfg.SceneOptions(), m.canvas.factory, sched, ropts...)

	m.cwd = opts.Dir
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	m.files = newFileList()

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	if cfg.Words.File != "" {
		m.wordsPath = cfg.Words.File
		m.loadWords()
		w, err := newFileWatcher(cfg.Words.File)
		if err != nil {
			m.status = "watch error: " + err.Error()
			logger.Warn("word list not watched", "path", cfg.Words.File, "error", err)
		} else {
			m.watcher = w
		}
	} else {
		m.shuffle()
	}
	return m
}

// Attach routes render loop ticks through p. Call it before p.Run.
func (m Model) Attach(p *tea.Program) {
	m.sched.attach(p.Send)
}

// Renderer exposes the scene renderer, mainly for shutdown.
func (m Model) Renderer() *scene.Renderer { return m.renderer }

// Close disposes the renderer and stops watching the word list.
func (m Model) Close() {
	m.renderer.Dispose()
	if m.watcher != nil {
		m.watcher.Close()
	}
}

func (m Model) Init() tea.Cmd {
	return m.watchNext()
}

func (m Model) watchNext() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.next()
}
