// Package window hosts the word sphere in a desktop window.
package window

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wordsphere/internal/config"
	"wordsphere/internal/raster"
	"wordsphere/internal/scene"
	"wordsphere/internal/words"
)

// Options configures Run.
type Options struct {
	Config   *config.Config
	Logger   *slog.Logger
	Observer scene.Observer
	// Next yields the items for each (re)build.
	Next func() ([]words.Item, error)
}

// Run opens the window and blocks until it closes.
func Run(opts Options) error {
	g := newGame(opts)
	defer g.renderer.Dispose()

	ebiten.SetWindowTitle("wordsphere")
	ebiten.SetWindowSize(960, 640)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.Config.Animation.FPS)
	return ebiten.RunGame(g)
}

type game struct {
	opts     Options
	logger   *slog.Logger
	bg       color.RGBA
	sched    *scene.ManualScheduler
	renderer *scene.Renderer
	surface  *raster.Surface

	// size reported by Layout, applied in Update
	w, h       int
	mountedW   int
	mountedH   int
	triedMount bool
	screenImg  *ebiten.Image
}

func newGame(opts Options) *game {
	g := &game{
		opts:   opts,
		logger: opts.Logger,
		bg:     opts.Config.BackgroundColor(),
		sched:  scene.NewManualScheduler(),
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	ropts := []scene.Option{scene.WithLogger(g.logger)}
	if opts.Observer != nil {
		ropts = append(ropts, scene.WithObserver(opts.Observer))
	}
	factory := raster.Factory(g.bg)
	g.renderer = scene.NewRenderer(opts.Config.SceneOptions(), func(vp scene.Viewport) (scene.Surface, error) {
		s, err := factory(vp)
		if err != nil {
			return nil, err
		}
		g.surface = s.(*raster.Surface)
		return s, nil
	}, g.sched, ropts...)
	return g
}

func (g *game) mount() {
	g.triedMount = true
	items, err := g.opts.Next()
	if err == nil {
		err = g.renderer.Mount(items, scene.Viewport{Width: g.w, Height: g.h})
	}
	if err != nil {
		g.logger.Error("window mount failed", "error", err)
		return
	}
	g.mountedW, g.mountedH = g.w, g.h
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.renderer.Dispose()
		return ebiten.Termination
	}
	if g.w > 0 && g.h > 0 {
		switch {
		case !g.triedMount || inpututil.IsKeyJustPressed(ebiten.KeyR):
			g.mount()
		case g.w != g.mountedW || g.h != g.mountedH:
			g.renderer.Resize(scene.Viewport{Width: g.w, Height: g.h})
			g.mountedW, g.mountedH = g.w, g.h
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.renderer.SetPaused(!g.renderer.Paused())
	}
	// one display refresh: run the frame the loop asked for
	g.sched.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	if g.renderer.State() != scene.Mounted || g.surface == nil {
		return
	}
	img := g.surface.Image()
	if img == nil {
		return
	}
	b := img.Bounds()
	if g.screenImg == nil || g.screenImg.Bounds().Dx() != b.Dx() || g.screenImg.Bounds().Dy() != b.Dy() {
		if g.screenImg != nil {
			g.screenImg.Deallocate()
		}
		g.screenImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.screenImg.WritePixels(img.Pix)
	screen.DrawImage(g.screenImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
