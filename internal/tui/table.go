package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/samber/lo"

	"gtamap/internal/dataset"
)

// refreshTable rebuilds the marker table from the store.
func (m *Model) refreshTable() {
	markers := m.store.Markers()
	nameW, imageW := 8, 8
	for _, p := range markers {
		nameW = max(nameW, len(p.Name)+2)
		imageW = max(imageW, len(p.ImageURL)+2)
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: min(nameW, 24)},
		{Title: "Position", Width: 16},
		{Title: "Image", Width: min(imageW, 24)},
	}
	rows := lo.Map(markers, func(p dataset.PointOfInterest, i int) table.Row {
		return table.Row{fmt.Sprintf("%d", i+1), p.Name, p.Position.String(), p.ImageURL}
	})
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	if len(rows) > 0 && m.tbl.Cursor() >= len(rows) {
		m.tbl.SetCursor(0)
	}
}

func (m Model) tableWidth() int {
	w := 0
	for _, c := range m.tbl.Columns() {
		w += c.Width + 2
	}
	return w
}
