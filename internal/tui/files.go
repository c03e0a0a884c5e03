package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"wordsphere/internal/words"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func newFileList() list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	l := list.New(nil, d, 0, 0)
	l.Title = "Word lists"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return l
}

// refreshDir lists the word-list files in the working directory.
func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !words.Supported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.files.SetItems(items)
	m.sizeFiles()
	if len(items) == 0 {
		m.status = "no word lists in " + m.cwd
	}
}

func (m *Model) sizeFiles() {
	vp := m.viewport()
	m.files.SetSize(min(40, vp.Width/microX-4), max(3, vp.Height/microY-4))
}

// openWordsFile switches to the word list at p: the scene is rebuilt from
// it and the watcher follows it. A file that does not load changes nothing.
func (m *Model) openWordsFile(p string) tea.Cmd {
	prev := m.wordsPath
	m.wordsPath = p
	if !m.loadWords() {
		m.wordsPath = prev
		return nil
	}
	m.mount()

	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	w, err := newFileWatcher(p)
	if err != nil {
		m.status = "watch error: " + err.Error()
		m.logger.Warn("word list not watched", "path", p, "error", err)
		return nil
	}
	m.watcher = w
	return w.next()
}

// updateFiles routes keys to the open file list.
func (m Model) updateFiles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.files.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			m.showFiles = false
			return m, nil
		case "enter":
			it, ok := m.files.SelectedItem().(fileItem)
			if !ok {
				return m, nil
			}
			m.showFiles = false
			cmd := m.openWordsFile(it.path)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)
	return m, cmd
}
