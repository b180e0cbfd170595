package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout
	active := m.store.ActiveMap()

	header := titleStyle.Render(" gtamap ─ " + active.Label + " ")
	header = lipgloss.NewStyle().Width(lay.contentW).Render(header)

	// Buttons row; the active map's button is highlighted.
	row := []string{" "}
	for i, b := range lay.buttons {
		st := buttonStyle
		if (b.action == actionSatellite && active.Image == m.catalog.Satellite.Image) ||
			(b.action == actionAtlas && active.Image == m.catalog.Atlas.Image) ||
			(b.action == actionChooseFile && m.showPicker) {
			st = buttonActiveStyle
		}
		if i > 0 {
			row = append(row, "  ")
		}
		row = append(row, st.Render(b.label))
	}
	buttons := lipgloss.NewStyle().Width(lay.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Top, row...))

	var mapView string
	switch {
	case m.showTable:
		maxW := min(lay.mapW, max(32, m.tableWidth()+4))
		m.tbl.SetWidth(maxW - 4)
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	default:
		mapView = m.renderSurface(lay.mapW, lay.mapH)
	}

	body := mapView
	if m.showPicker {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(lay.contentH).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status and help on the left, pointer readout on the right
	status := dimStyle.Render(" " + m.status + " ")
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	coords := m.readout.View()
	spacerW := max(0, lay.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lay.contentW).MaxHeight(footerHeight).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, buttons, body, footer)
	return appStyle.Width(lay.contentW).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"s/a map",
		"o open",
		"n/N marker",
		"t table",
		"p paste",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
