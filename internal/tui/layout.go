package tui

import "github.com/charmbracelet/lipgloss"

const (
	headerHeight  = 1
	buttonsHeight = 1
	footerHeight  = 1
)

type buttonAction int

const (
	actionChooseFile buttonAction = iota
	actionSatellite
	actionAtlas
)

type buttonZone struct {
	action buttonAction
	label  string
	x0, x1 int // half-open
}

// layout holds screen positions shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
	buttonsY           int
	buttons            []buttonZone
}

func (m Model) computeLayout() layout {
	var lay layout
	lay.contentH = max(4, m.height-headerHeight-buttonsHeight-footerHeight)
	lay.contentW = max(10, m.width)
	lay.buttonsY = headerHeight
	lay.mapY = headerHeight + buttonsHeight
	if m.showPicker {
		lay.mapX = sidebarWidth + 1
	}
	lay.mapW = max(10, lay.contentW-lay.mapX)
	lay.mapH = lay.contentH

	x := 1
	for _, b := range []buttonZone{
		{action: actionChooseFile, label: "Choose File"},
		{action: actionSatellite, label: m.catalog.Satellite.Label},
		{action: actionAtlas, label: m.catalog.Atlas.Label},
	} {
		w := lipgloss.Width(buttonStyle.Render(b.label))
		b.x0, b.x1 = x, x+w
		lay.buttons = append(lay.buttons, b)
		x += w + 2
	}
	return lay
}

// relayout recomputes positions after a size or panel change.
func (m *Model) relayout() {
	m.layout = m.computeLayout()
	m.surface = m.surface.resize(m.layout.mapW, m.layout.mapH)
	if m.showPicker {
		m.l.SetSize(sidebarWidth-2, m.layout.contentH-2)
	}
	m.ta.SetWidth(m.layout.mapW)
	m.ta.SetHeight(min(m.layout.mapH, 12))
	m.tbl.SetHeight(min(m.layout.mapH-2, 20))
}

// buttonAt returns the button under a screen position.
func (lay layout) buttonAt(x, y int) (buttonZone, bool) {
	if y != lay.buttonsY {
		return buttonZone{}, false
	}
	for _, b := range lay.buttons {
		if x >= b.x0 && x < b.x1 {
			return b, true
		}
	}
	return buttonZone{}, false
}

// mapCell converts a screen position into a surface cell.
func (lay layout) mapCell(x, y int) (int, int, bool) {
	cx, cy := x-lay.mapX, y-lay.mapY
	return cx, cy, cx >= 0 && cx < lay.mapW && cy >= 0 && cy < lay.mapH
}
