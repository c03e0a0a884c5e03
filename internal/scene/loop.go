package scene

import (
	"sync"
	"time"
)

// Scheduler requests a single callback on the host's next display refresh.
// Schedule must not call fn before returning; cancel is safe to call after
// fn has run.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// Loop is a self-rescheduling render loop. Stop is the only way to end it.
type Loop struct {
	sched Scheduler
	frame func()

	mu      sync.Mutex
	gen     uint64
	cancel  func()
	running bool
	stopped bool
	frames  uint64
}

func NewLoop(s Scheduler, frame func()) *Loop {
	return &Loop{sched: s, frame: frame}
}

// Start schedules the first frame. Starting a running or stopped loop is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running || l.stopped {
		return
	}
	l.running = true
	l.scheduleLocked()
}

func (l *Loop) scheduleLocked() {
	l.gen++
	gen := l.gen
	l.cancel = l.sched.Schedule(func() { l.tick(gen) })
}

func (l *Loop) tick(gen uint64) {
	l.mu.Lock()
	// a callback that raced with Stop or was superseded carries a stale gen
	if l.stopped || gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.cancel = nil
	l.frames++
	l.mu.Unlock()

	l.frame()

	l.mu.Lock()
	if !l.stopped {
		l.scheduleLocked()
	}
	l.mu.Unlock()
}

// Stop cancels the pending frame. It is idempotent.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.running = false
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Loop) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// Frames is the number of frame callbacks that have run.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// TimerScheduler fires callbacks on a wall-clock interval.
type TimerScheduler struct {
	Interval time.Duration
}

func (s TimerScheduler) Schedule(fn func()) func() {
	t := time.AfterFunc(s.Interval, fn)
	return func() { t.Stop() }
}

// ManualScheduler queues callbacks until Step runs them. Headless hosts and
// tests use it to advance the loop one frame at a time.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]func()
	order   []uint64
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[uint64]func())}
}

func (s *ManualScheduler) Schedule(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.pending[id] = fn
	s.order = append(s.order, id)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.pending, id)
	}
}

// Step runs the callbacks queued so far and returns how many ran. Callbacks
// scheduled while stepping wait for the next Step.
func (s *ManualScheduler) Step() int {
	s.mu.Lock()
	ids := s.order
	s.order = nil
	var fns []func()
	for _, id := range ids {
		if fn, ok := s.pending[id]; ok {
			fns = append(fns, fn)
			delete(s.pending, id)
		}
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Pending is the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
