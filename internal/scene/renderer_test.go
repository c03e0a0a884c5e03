package scene

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsphere/internal/words"
)

type fakeSurface struct {
	mu        sync.Mutex
	w, h      int
	renders   int
	disposed  bool
	failAfter int // fail the Nth render when > 0
	last      *Frame
}

func (s *fakeSurface) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = w, h
}

func (s *fakeSurface) Render(f *Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return errors.New("render after dispose")
	}
	s.renders++
	if s.failAfter > 0 && s.renders >= s.failAfter {
		return errors.New("context lost")
	}
	s.last = f
	return nil
}

func (s *fakeSurface) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
}

func (s *fakeSurface) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

type surfaces struct {
	mu  sync.Mutex
	all []*fakeSurface
	err error
	tpl fakeSurface
}

func (f *surfaces) factory(vp Viewport) (Surface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s := &fakeSurface{w: vp.Width, h: vp.Height, failAfter: f.tpl.failAfter}
	f.all = append(f.all, s)
	return s, nil
}

type countingObserver struct {
	mounted, failed, rendered, renderFailed, disposed int
}

func (o *countingObserver) Mounted(string, int) { o.mounted++ }
func (o *countingObserver) MountFailed(error)   { o.failed++ }
func (o *countingObserver) Rendered()           { o.rendered++ }
func (o *countingObserver) RenderFailed(error)  { o.renderFailed++ }
func (o *countingObserver) Disposed(string)     { o.disposed++ }

func newTestRenderer(t *testing.T) (*Renderer, *ManualScheduler, *surfaces, *countingObserver) {
	t.Helper()
	s := NewManualScheduler()
	f := &surfaces{}
	o := &countingObserver{}
	return NewRenderer(DefaultOptions(), f.factory, s, WithObserver(o)), s, f, o
}

func TestRendererMount(t *testing.T) {
	r, s, f, o := newTestRenderer(t)
	assert.Equal(t, Uninitialized, r.State())

	require.NoError(t, r.Mount(sampleItems(t, 20), Viewport{800, 600}))
	assert.Equal(t, Mounted, r.State())
	require.Len(t, f.all, 1)
	assert.Equal(t, 1, f.all[0].count(), "first frame is drawn during mount")
	assert.Len(t, f.all[0].last.Sprites, 20)
	assert.Equal(t, 1, s.Pending())
	assert.InDelta(t, 0.003, r.Rotation(), 1e-12)
	assert.NotEmpty(t, r.SceneID())
	assert.Equal(t, 1, o.mounted)
}

func TestRendererRunning(t *testing.T) {
	r, s, f, o := newTestRenderer(t)
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	for i := 0; i < 10; i++ {
		s.Step()
	}
	assert.Equal(t, 11, f.all[0].count())
	assert.InDelta(t, 11*0.003, r.Rotation(), 1e-12)
	assert.Equal(t, uint64(10), r.Frames())
	assert.Equal(t, 10, o.rendered)
}

func TestRendererPause(t *testing.T) {
	r, s, f, _ := newTestRenderer(t)
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	r.SetPaused(true)
	assert.True(t, r.Paused())
	s.Step()
	s.Step()
	assert.InDelta(t, 0.003, r.Rotation(), 1e-12)
	assert.Equal(t, 3, f.all[0].count(), "paused frames still redraw")
	r.SetPaused(false)
	s.Step()
	assert.InDelta(t, 0.006, r.Rotation(), 1e-12)
}

func TestRendererResize(t *testing.T) {
	r, _, f, _ := newTestRenderer(t)
	r.Resize(Viewport{100, 100})
	assert.Equal(t, 0.0, r.Aspect(), "resize before mount is a no-op")

	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	r.Resize(Viewport{1920, 1080})
	assert.InDelta(t, 1920.0/1080.0, r.Aspect(), 1e-12)
	assert.Equal(t, 1920, f.all[0].w)
	assert.Equal(t, 1080, f.all[0].h)

	r.Resize(Viewport{0, 50})
	assert.InDelta(t, 1920.0/1080.0, r.Aspect(), 1e-12)
}

func TestRendererResizeUsedByNextFrame(t *testing.T) {
	r, s, f, _ := newTestRenderer(t)
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	r.Resize(Viewport{400, 400})
	s.Step()
	assert.Equal(t, 400, f.all[0].last.Width)
	assert.Equal(t, 400, f.all[0].last.Height)
}

func TestRendererRemountTearsDownFirst(t *testing.T) {
	r, s, f, o := newTestRenderer(t)
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	first := r.SceneID()
	require.NoError(t, r.Mount(sampleItems(t, 8), Viewport{800, 600}))

	require.Len(t, f.all, 2)
	assert.True(t, f.all[0].disposed)
	assert.False(t, f.all[1].disposed)
	assert.NotEqual(t, first, r.SceneID())
	assert.Equal(t, 1, s.Pending(), "only the live scene has a pending frame")

	s.Step()
	assert.Equal(t, 1, f.all[0].count())
	assert.Equal(t, 2, f.all[1].count())
	assert.Equal(t, 1, o.disposed)
}

func TestRendererDispose(t *testing.T) {
	r, s, f, o := newTestRenderer(t)
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	s.Step()
	r.Dispose()

	assert.Equal(t, Disposed, r.State())
	assert.True(t, f.all[0].disposed)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, s.Step())
	assert.Equal(t, 2, f.all[0].count())
	assert.Equal(t, 0.0, r.Aspect())
	assert.Equal(t, 1, o.disposed)

	r.Dispose()
	r.Resize(Viewport{10, 10})
	assert.Equal(t, Disposed, r.State())
	assert.ErrorIs(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}), ErrDisposed)
}

func TestRendererDisposeBeforeMount(t *testing.T) {
	r, s, f, o := newTestRenderer(t)
	r.Dispose()
	r.Dispose()
	assert.Equal(t, Disposed, r.State())
	assert.Empty(t, f.all)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, o.disposed)
}

func TestRendererNoFramesAfterDisposeWithTimer(t *testing.T) {
	f := &surfaces{}
	r := NewRenderer(DefaultOptions(), f.factory, TimerScheduler{Interval: time.Millisecond})
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{320, 240}))
	require.Eventually(t, func() bool { return f.all[0].count() >= 3 }, 2*time.Second, time.Millisecond)

	r.Dispose()
	n := f.all[0].count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, f.all[0].count())
}

func TestRendererSurfaceUnavailable(t *testing.T) {
	r, s, f, o := newTestRenderer(t)
	f.err = ErrResourceUnavailable

	err := r.Mount(sampleItems(t, 5), Viewport{800, 600})
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.Equal(t, Uninitialized, r.State())
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, "", r.SceneID())
	assert.ErrorIs(t, r.Err(), ErrResourceUnavailable)
	assert.Equal(t, 1, o.failed)

	f.err = nil
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	assert.NoError(t, r.Err())
}

func TestRendererFailedRemountLeavesNothing(t *testing.T) {
	r, s, f, _ := newTestRenderer(t)
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	f.err = ErrResourceUnavailable
	require.Error(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))

	assert.True(t, f.all[0].disposed)
	assert.Equal(t, Uninitialized, r.State())
	assert.Equal(t, 0, s.Pending())
}

func TestRendererFirstFrameFailure(t *testing.T) {
	r, s, f, _ := newTestRenderer(t)
	f.tpl.failAfter = 1
	err := r.Mount(sampleItems(t, 5), Viewport{800, 600})
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.True(t, f.all[0].disposed)
	assert.Equal(t, Uninitialized, r.State())
	assert.Equal(t, 0, s.Pending())
}

func TestRendererRenderFailureStopsLoop(t *testing.T) {
	r, s, f, o := newTestRenderer(t)
	f.tpl.failAfter = 3
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{800, 600}))
	s.Step()
	s.Step()

	assert.Equal(t, Uninitialized, r.State())
	assert.True(t, f.all[0].disposed)
	assert.Equal(t, 0, s.Pending())
	assert.Error(t, r.Err())
	assert.Equal(t, 1, o.renderFailed)
}

func TestRendererInvalidArguments(t *testing.T) {
	r, _, f, _ := newTestRenderer(t)
	err := r.Mount([]words.Item{{Text: "", Frequency: 1}}, Viewport{800, 600})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = r.Mount(sampleItems(t, 3), Viewport{0, 600})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, f.all)
	assert.Equal(t, Uninitialized, r.State())
}

func TestRendererOversizedLabelTexture(t *testing.T) {
	opts := DefaultOptions()
	opts.Label.Width = 1 << 40
	opts.Label.Height = 1 << 40
	f := &surfaces{}
	o := &countingObserver{}
	r := NewRenderer(opts, f.factory, NewManualScheduler(), WithObserver(o))

	var err error
	assert.NotPanics(t, func() { err = r.Mount(sampleItems(t, 5), Viewport{800, 600}) })
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.Equal(t, Uninitialized, r.State())
	assert.Empty(t, f.all, "no surface is created for a scene that cannot be built")
	assert.Equal(t, 1, o.failed)
}

func TestRendererSingleWord(t *testing.T) {
	r, _, f, _ := newTestRenderer(t)
	require.NoError(t, r.Mount([]words.Item{{Text: "Solo", Frequency: 1}}, Viewport{800, 600}))
	assert.Len(t, f.all[0].last.Sprites, 1)
}

func TestRendererConcurrentDispose(t *testing.T) {
	f := &surfaces{}
	r := NewRenderer(DefaultOptions(), f.factory, TimerScheduler{Interval: time.Microsecond})
	require.NoError(t, r.Mount(sampleItems(t, 5), Viewport{320, 240}))
	var wg sync.WaitGroup
	var calls atomic.Int32
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Dispose()
			calls.Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, Disposed, r.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "mounted", Mounted.String())
	assert.Equal(t, "disposed", Disposed.String())
	assert.Equal(t, "State(9)", State(9).String())
}
