package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"wordsphere/internal/scene"
	"wordsphere/internal/words"
)

const (
	headerHeight = 1
	footerHeight = 1
)

// viewport is the canvas area in braille micro-pixels.
func (m Model) viewport() scene.Viewport {
	w := max(1, m.width)
	h := max(1, m.height-headerHeight-footerHeight)
	return scene.Viewport{Width: w * microX, Height: h * microY}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		msg.run()
	case tea.WindowSizeMsg:
		first := m.width == 0 && m.height == 0
		m.width = msg.Width
		m.height = msg.Height
		if first {
			m.mount()
		} else {
			m.renderer.Resize(m.viewport())
		}
		m.help.Width = m.width
		if m.showFiles {
			m.sizeFiles()
		}
	case wordsChangedMsg:
		m.loadWords()
		m.mount()
		return m, m.watchNext()
	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		m.logger.Warn("word list watch error", "error", msg.err)
		return m, m.watchNext()
	case tea.KeyMsg:
		if m.showFiles && (m.files.FilterState() == list.Filtering || !key.Matches(msg, m.keys.Quit, m.keys.Open)) {
			return m.updateFiles(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Shuffle):
			if m.wordsPath != "" {
				m.loadWords()
			} else {
				m.shuffle()
			}
			m.mount()
		case key.Matches(msg, m.keys.Pause):
			p := !m.renderer.Paused()
			m.renderer.SetPaused(p)
			if p {
				m.status = "paused"
			} else {
				m.status = "rotating"
			}
		case key.Matches(msg, m.keys.Open):
			m.showFiles = !m.showFiles
			if m.showFiles {
				m.showLegend = false
				m.refreshDir()
			}
		case key.Matches(msg, m.keys.Legend):
			m.showLegend = !m.showLegend
			if m.showLegend {
				m.refreshLegend()
			}
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
		}
		if m.showLegend {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// mount rebuilds the scene for the current items. A failure leaves the
// canvas empty and reports in the status line.
func (m *Model) mount() {
	if m.width == 0 || m.height == 0 {
		return
	}
	if m.items == nil {
		return
	}
	if err := m.renderer.Mount(m.items, m.viewport()); err != nil {
		switch {
		case errors.Is(err, scene.ErrInvalidArgument):
			m.status = "invalid words: " + err.Error()
		case errors.Is(err, scene.ErrResourceUnavailable):
			m.status = "display unavailable: " + err.Error()
		default:
			m.status = "render error: " + err.Error()
		}
		return
	}
	if m.showLegend {
		m.refreshLegend()
	}
}

func (m *Model) shuffle() {
	items, err := m.selector.Select(m.cfg.Words.Count)
	if err != nil {
		m.status = "select error: " + err.Error()
		m.items = nil
		return
	}
	m.items = items
	m.status = fmt.Sprintf("%d words", len(items))
}

// loadWords replaces the items from the word-list file. On error the
// previous items stay.
func (m *Model) loadWords() bool {
	items, err := words.LoadFile(m.wordsPath)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.logger.Warn("word list not loaded", "path", m.wordsPath, "error", err)
		return false
	}
	m.items = items
	m.status = "loaded: " + filepath.Base(m.wordsPath) + fmt.Sprintf("  words=%d", len(items))
	return true
}
