package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Shuffle key.Binding
	Pause   key.Binding
	Open    key.Binding
	Legend  key.Binding
	Help    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Shuffle: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reshuffle")),
		Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open list")),
		Legend:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "legend")),
		Help:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shuffle, k.Pause, k.Open, k.Legend, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
