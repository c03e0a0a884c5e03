package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"wordsphere/internal/scene"
)

// refreshLegend rebuilds the legend table from the current items.
func (m *Model) refreshLegend() {
	wordW := len("Word")
	for _, it := range m.items {
		wordW = max(wordW, len([]rune(it.Text)))
	}
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Word", Width: min(wordW, 24)},
		{Title: "Freq", Width: 5},
		{Title: "Size", Width: 5},
	}
	style := m.cfg.SceneOptions().Label
	rows := make([]table.Row, 0, len(m.items))
	for i, it := range m.items {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			it.Text,
			fmt.Sprintf("%.2f", it.Frequency),
			fmt.Sprintf("%.2f", scene.LabelScale(i, it.Frequency, style)),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

func legendWidth(cols []table.Column) int {
	w := 0
	for _, c := range cols {
		w += c.Width + 2
	}
	return w
}
