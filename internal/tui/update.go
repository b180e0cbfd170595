package tui

import (
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"gtamap/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil
	case datasetLoadedMsg:
		m.applyDataset(msg)
		return m, nil
	case datasetFailedMsg:
		m.failDataset(msg)
		return m, nil
	case rasterLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("image", msg.path).Msg("base map image unavailable")
			return m, nil
		}
		// a late image for a map that is no longer shown stays in the cache only
		if m.surface.Key() == msg.path {
			m.surface.raster = msg.raster
		}
		return m, nil
	case thumbLoadedMsg:
		if msg.err != nil {
			m.thumbFailed[msg.path] = true
			m.log.Warn().Err(msg.err).Str("image", msg.path).Msg("popup image unavailable")
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.ta.Value())
			m.pasteMode = false
			m.ta.Blur()
			if text == "" {
				return m, nil
			}
			return m.Update(decodePasted(text))
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}
	if m.showPicker {
		if m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "esc", "o":
			m.closePicker()
			return m, nil
		case "enter":
			cmd := m.choose()
			return m, cmd
		}
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showTable {
		switch msg.String() {
		case "esc", "t":
			m.showTable = false
			return m, nil
		case "enter":
			m.showTable = false
			cmd := m.focusMarker(m.tbl.Cursor())
			return m, cmd
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "o":
		m.openPicker()
	case "s":
		cmd := m.setActiveMap(m.catalog.Satellite)
		return m, cmd
	case "a":
		cmd := m.setActiveMap(m.catalog.Atlas)
		return m, cmd
	case "+", "=":
		m.surface.view = m.surface.view.ZoomBy(geom.ZoomStep)
	case "-", "_":
		m.surface.view = m.surface.view.ZoomBy(-geom.ZoomStep)
	case "up":
		m.surface.view = m.surface.view.Pan(0, -1)
	case "down":
		m.surface.view = m.surface.view.Pan(0, 1)
	case "left":
		m.surface.view = m.surface.view.Pan(-2, 0)
	case "right":
		m.surface.view = m.surface.view.Pan(2, 0)
	case "n", "tab":
		cmd := m.cycleMarker(1)
		return m, cmd
	case "N", "shift+tab":
		cmd := m.cycleMarker(-1)
		return m, cmd
	case "esc":
		m.closePopup()
	case "t":
		m.showTable = true
		m.refreshTable()
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showPicker && msg.X < sidebarWidth && msg.Y >= m.layout.mapY {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	cx, cy, inMap := m.layout.mapCell(msg.X, msg.Y)
	if inMap {
		m.readout = readout{pos: m.surface.view.CellCenter(cx, cy), ok: true}
	} else {
		m.readout = readout{}
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && inMap:
		m.surface.view = m.surface.view.ZoomBy(geom.ZoomStep)
	case msg.Button == tea.MouseButtonWheelDown && inMap:
		m.surface.view = m.surface.view.ZoomBy(-geom.ZoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if b, ok := m.layout.buttonAt(msg.X, msg.Y); ok {
			cmd := m.press(b.action)
			return m, cmd
		}
		if !inMap || m.showTable || m.pasteMode {
			return m, nil
		}
		if i, ok := m.markerAt(cx, cy); ok {
			cmd := m.openPopup(i)
			return m, cmd
		}
		m.closePopup()
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.surface.view = m.surface.view.Pan(m.dragX-msg.X, m.dragY-msg.Y)
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

func (m *Model) press(a buttonAction) tea.Cmd {
	switch a {
	case actionChooseFile:
		m.openPicker()
	case actionSatellite:
		return m.setActiveMap(m.catalog.Satellite)
	case actionAtlas:
		return m.setActiveMap(m.catalog.Atlas)
	}
	return nil
}

// markerAt finds the marker whose glyph is drawn at, or one column beside,
// a surface cell. An exact column beats a neighbour; among equals the later
// marker wins since it is drawn on top.
func (m Model) markerAt(cx, cy int) (int, bool) {
	if m.index == nil {
		return 0, false
	}
	v := m.surface.view
	dc, dr := m.icon.MarkerOffset()
	tl := v.Unproject(float64(cx-1-dc), float64(cy-dr))
	br := v.Unproject(float64(cx+2-dc), float64(cy+1-dr))
	hits, err := m.index.Within(geom.BBox{MinX: tl.Lng, MinY: br.Lat, MaxX: br.Lng, MaxY: tl.Lat})
	if err != nil {
		m.log.Debug().Err(err).Msg("marker hit test skipped")
		return 0, false
	}
	markers := m.store.Markers()
	best, bestDist := -1, 2
	for _, i := range hits {
		if i >= len(markers) {
			continue
		}
		col, row, ok := m.markerCell(markers[i].Position)
		if !ok || row != cy {
			continue
		}
		if d := abs(col - cx); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
