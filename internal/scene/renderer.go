package scene

import (
	"fmt"
	"log/slog"
	"sync"

	"wordsphere/internal/words"
)

// State is the renderer lifecycle state.
type State int

const (
	Uninitialized State = iota
	Mounted
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Mounted:
		return "mounted"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Viewport is the host's drawable size in surface pixels.
type Viewport struct {
	Width, Height int
}

// Surface receives projected frames and owns the host's graphics resources.
type Surface interface {
	Resize(w, h int)
	Render(f *Frame) error
	Dispose()
}

// SurfaceFactory creates a surface for a viewport. Failures should wrap
// ErrResourceUnavailable.
type SurfaceFactory func(vp Viewport) (Surface, error)

// Observer is notified of lifecycle events.
type Observer interface {
	Mounted(sceneID string, labels int)
	MountFailed(err error)
	Rendered()
	RenderFailed(err error)
	Disposed(sceneID string)
}

type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

func WithObserver(o Observer) Option {
	return func(r *Renderer) { r.observer = o }
}

// Renderer owns at most one live scene, its surface and its render loop.
// Mount replaces the scene, Dispose ends the renderer.
type Renderer struct {
	opts       Options
	newSurface SurfaceFactory
	sched      Scheduler
	logger     *slog.Logger
	observer   Observer

	mu      sync.Mutex
	state   State
	vp      Viewport
	scene   *Scene
	surface Surface
	loop    *Loop
	paused  bool
	lastErr error
}

func NewRenderer(opts Options, newSurface SurfaceFactory, sched Scheduler, options ...Option) *Renderer {
	r := &Renderer{
		opts:       opts,
		newSurface: newSurface,
		sched:      sched,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// Mount tears down any live scene, then builds a new one for items and
// starts the render loop. The first frame is drawn before Mount returns.
// On failure nothing stays attached and the state is Uninitialized.
func (r *Renderer) Mount(items []words.Item, vp Viewport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Disposed {
		return ErrDisposed
	}
	r.teardownLocked()
	r.state = Uninitialized

	if err := r.mountLocked(items, vp); err != nil {
		r.lastErr = err
		r.logger.Error("mount failed", "error", err, "labels", len(items))
		if r.observer != nil {
			r.observer.MountFailed(err)
		}
		return err
	}
	r.lastErr = nil
	r.state = Mounted
	r.logger.Info("scene mounted",
		"scene_id", r.scene.ID,
		"labels", len(items),
		"width", vp.Width,
		"height", vp.Height)
	if r.observer != nil {
		r.observer.Mounted(r.scene.ID, len(items))
	}

	var loop *Loop
	loop = NewLoop(r.sched, func() { r.tick(loop) })
	r.loop = loop
	loop.Start()
	return nil
}

func (r *Renderer) mountLocked(items []words.Item, vp Viewport) error {
	if err := words.Validate(items); err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("mount: viewport %dx%d: %w", vp.Width, vp.Height, ErrInvalidArgument)
	}
	sc, err := Build(items, r.opts, vp.Width, vp.Height)
	if err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	surf, err := r.newSurface(vp)
	if err == nil && surf == nil {
		err = ErrResourceUnavailable
	}
	if err != nil {
		sc.Clear()
		return fmt.Errorf("mount: create surface: %w", err)
	}
	sc.Step()
	if err := surf.Render(sc.Frame(vp.Width, vp.Height)); err != nil {
		surf.Dispose()
		sc.Clear()
		return fmt.Errorf("mount: first frame: %w: %w", ErrResourceUnavailable, err)
	}
	r.scene, r.surface, r.vp = sc, surf, vp
	return nil
}

func (r *Renderer) tick(loop *Loop) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Mounted || r.loop != loop {
		return
	}
	if !r.paused {
		r.scene.Step()
	}
	if err := r.surface.Render(r.scene.Frame(r.vp.Width, r.vp.Height)); err != nil {
		r.logger.Error("render failed", "scene_id", r.scene.ID, "error", err)
		if r.observer != nil {
			r.observer.RenderFailed(err)
		}
		r.lastErr = err
		r.teardownLocked()
		r.state = Uninitialized
		return
	}
	if r.observer != nil {
		r.observer.Rendered()
	}
}

// Resize updates the camera aspect and the surface size. It is a no-op
// unless a scene is mounted or the size is empty.
func (r *Renderer) Resize(vp Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Mounted || vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	r.vp = vp
	r.scene.Camera.SetAspect(vp.Width, vp.Height)
	r.surface.Resize(vp.Width, vp.Height)
	r.logger.Debug("viewport resized", "scene_id", r.scene.ID, "width", vp.Width, "height", vp.Height)
}

// Dispose stops the loop and releases the scene and surface. It may be
// called any number of times from any state.
func (r *Renderer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Disposed {
		return
	}
	r.teardownLocked()
	r.state = Disposed
	r.logger.Debug("renderer disposed")
}

// teardownLocked cancels the pending frame before releasing anything it
// would touch.
func (r *Renderer) teardownLocked() {
	if r.loop != nil {
		r.loop.Stop()
		r.loop = nil
	}
	if r.surface != nil {
		r.surface.Dispose()
		r.surface = nil
	}
	if r.scene != nil {
		id := r.scene.ID
		r.scene.Clear()
		r.scene = nil
		if r.observer != nil {
			r.observer.Disposed(id)
		}
	}
}

// SetPaused freezes or resumes rotation; frames keep being drawn.
func (r *Renderer) SetPaused(p bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = p
}

func (r *Renderer) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Aspect is the camera aspect ratio, or 0 when nothing is mounted.
func (r *Renderer) Aspect() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scene == nil {
		return 0
	}
	return r.scene.Camera.Aspect
}

// Rotation is the current group rotation, or 0 when nothing is mounted.
func (r *Renderer) Rotation() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scene == nil {
		return 0
	}
	return r.scene.Group.RotationY
}

func (r *Renderer) SceneID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scene == nil {
		return ""
	}
	return r.scene.ID
}

// Err is the error that ended the last mount or frame, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Frames is the number of loop ticks of the current scene.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loop == nil {
		return 0
	}
	return r.loop.Frames()
}
