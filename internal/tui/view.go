package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"wordsphere/internal/scene"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentWidth := max(10, m.width)
	vp := m.viewport()
	canvasW, canvasH := vp.Width/microX, vp.Height/microY

	header := titleStyle.Render(" wordsphere ─ rotating word cloud ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	var body string
	if m.showFiles {
		box := boxStyle.Render(m.files.View())
		body = lipgloss.Place(canvasW, canvasH, lipgloss.Center, lipgloss.Center, box)
	} else if m.showLegend {
		cols := m.tbl.Columns()
		boxW := min(canvasW, legendWidth(cols)+4)
		m.tbl.SetHeight(clamp(len(m.items)+1, 2, max(2, canvasH-3)))
		legend := boxStyle.Width(boxW).Render(m.tbl.View())
		body = lipgloss.Place(canvasW, canvasH, lipgloss.Center, lipgloss.Center, legend)
	} else {
		// an unmounted renderer leaves an empty area, never a stale frame
		frame := ""
		if m.renderer.State() == scene.Mounted {
			frame = m.canvas.view()
		}
		body = lipgloss.NewStyle().Width(canvasW).Height(canvasH).Render(frame)
	}

	status := dimStyle.Render(" " + m.status + " ")
	if err := m.renderer.Err(); err != nil && m.renderer.State() != scene.Mounted {
		status = errStyle.Render(" " + m.status + " ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	info := ""
	if id := m.renderer.SceneID(); id != "" {
		info = dimStyle.Render(fmt.Sprintf("  scene %s  frame %d  ", id[:8], m.renderer.Frames()))
	}
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(info))
	right := lipgloss.Place(spacerW+lipgloss.Width(info), 1, lipgloss.Right, lipgloss.Center, info)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}
