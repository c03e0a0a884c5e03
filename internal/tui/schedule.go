package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries a render loop callback onto the Update goroutine.
type frameMsg struct {
	run func()
}

// programScheduler is a scene.Scheduler that fires through the running
// program, so frames are drawn on the same goroutine as Update and View.
type programScheduler struct {
	interval time.Duration

	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *programScheduler) attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *programScheduler) Schedule(fn func()) func() {
	t := time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send != nil {
			send(frameMsg{run: fn})
		}
	})
	return func() { t.Stop() }
}
