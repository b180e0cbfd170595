package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gtamap/internal/geom"
)

// renderSurface draws the base map, the markers and the open popup into a
// w x h block of cells.
func (m Model) renderSurface(w, h int) string {
	s := m.surface
	grid := make([][]string, h)

	// Without an image, outline the image bounds so the coordinate space
	// stays visible over the background colour.
	var outline *brailleBuf
	if s.raster == nil {
		outline = newBrailleBuf(w, h)
		c0, r0 := s.view.Project(geom.LatLng{Lat: geom.ImageBounds.MaxY, Lng: geom.ImageBounds.MinX})
		c1, r1 := s.view.Project(geom.LatLng{Lat: geom.ImageBounds.MinY, Lng: geom.ImageBounds.MaxX})
		outline.rect(micro(c0, 2), micro(r0, 4), micro(c1, 2)-1, micro(r1, 4)-1)
	}
	bg := s.def.BackgroundColor().Hex()
	bgStyle := lipgloss.NewStyle().Background(lipgloss.Color(bg))

	for row := 0; row < h; row++ {
		cells := make([]string, w)
		for col := 0; col < w; col++ {
			if outline != nil {
				if r, ok := outline.at(col, row); ok {
					cells[col] = outlineStyle.Background(lipgloss.Color(bg)).Render(string(r))
				} else {
					cells[col] = bgStyle.Render(" ")
				}
				continue
			}
			cells[col] = halfBlock(s.sample(col, row*2).Hex(), s.sample(col, row*2+1).Hex())
		}
		grid[row] = cells
	}

	m.drawMarkers(grid)
	m.drawPopup(grid, w)

	lines := make([]string, h)
	for i, cells := range grid {
		lines[i] = strings.Join(cells, "")
	}
	return strings.Join(lines, "\n")
}

func micro(v float64, per int) int {
	return int(math.Floor(v * float64(per)))
}

// visibleMarkers returns the marker indices on screen, in list order.
func (m Model) visibleMarkers() []int {
	if m.index == nil {
		return nil
	}
	vis, err := m.index.Within(m.surface.view.Visible())
	if err != nil {
		m.log.Debug().Err(err).Msg("marker culling skipped")
		vis = make([]int, len(m.store.Markers()))
		for i := range vis {
			vis[i] = i
		}
	}
	return vis
}

// markerCell is the cell the glyph for a marker at p is drawn in.
func (m Model) markerCell(p geom.LatLng) (int, int, bool) {
	v := m.surface.view
	col, row, _ := v.Cell(p)
	dc, dr := m.icon.MarkerOffset()
	col, row = col+dc, row+dr
	return col, row, col >= 0 && col < v.W && row >= 0 && row < v.H
}

func (m Model) drawMarkers(grid [][]string) {
	markers := m.store.Markers()
	sel := m.selectedIndex()
	for _, i := range m.visibleMarkers() {
		if i >= len(markers) {
			continue
		}
		col, row, ok := m.markerCell(markers[i].Position)
		if !ok {
			continue
		}
		grid[row][col] = m.icon.Render(i == sel)
	}
}

// drawPopup places the popup above its marker, shifted by the icon's popup
// anchor and kept inside the surface.
func (m Model) drawPopup(grid [][]string, w int) {
	i := m.selectedIndex()
	if i < 0 || len(grid) == 0 {
		return
	}
	poi := m.store.Markers()[i]
	col, row, ok := m.surface.view.Cell(poi.Position)
	if !ok {
		return
	}
	box := m.renderPopup(poi, w)
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	dc, dr := m.icon.PopupOffset()
	x := clampInt(col+dc-bw/2, 0, max(0, w-bw))
	y := clampInt(row+dr-bh+1, 0, max(0, len(grid)-bh))
	overlay(grid, x, y, box)
}
