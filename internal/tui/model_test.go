package tui

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtamap/internal/basemap"
	"gtamap/internal/dataset"
	"gtamap/internal/geom"
)

const safehouse = `[{"name":"Safehouse","position":[40,60],"imageUrl":"house.png","additionalText":"Starting base"}]`

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	cat := basemap.DefaultCatalog(filepath.Join(dir, "assets"))
	m := New(Options{
		Catalog:    cat,
		DefaultMap: cat.Satellite,
		Icon:       BuildHouseIcon(),
		Dir:        dir,
		Logger:     zerolog.New(io.Discard),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func loadFile(t *testing.T, m Model, path string) Model {
	t.Helper()
	m, _ = update(t, m, loadDatasetCmd(path)())
	return m
}

func TestLoadSafehouse(t *testing.T) {
	m := newTestModel(t)
	m = loadFile(t, m, writeFile(t, m.cwd, "poi.json", safehouse))

	markers := m.Store().Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, geom.LatLng{Lat: 40, Lng: 60}, markers[0].Position)
	assert.Contains(t, m.status, "markers=1")

	m, cmd := update(t, m, key("n"))
	require.NotNil(t, cmd, "a local image starts a thumbnail load")
	m, _ = update(t, m, cmd())
	assert.True(t, m.thumbFailed[filepath.Join(m.cwd, "house.png")])

	popup := m.renderPopup(markers[0], 80)
	assert.Contains(t, popup, "Safehouse")
	assert.Contains(t, popup, "house.png")
	assert.Contains(t, popup, "Starting base")

	v := m.View()
	assert.Contains(t, v, "⌂")
	assert.Contains(t, v, "Starting base")
}

func TestEveryMarkerRenders(t *testing.T) {
	m := newTestModel(t)
	m = loadFile(t, m, writeFile(t, m.cwd, "edges.json", `[
		{"name":"sw","position":[0,0]},
		{"name":"ne","position":[100,100]},
		{"name":"se","position":[0,100]},
		{"name":"nw","position":[100,0]},
		{"name":"s","position":[0,50]},
		{"name":"e","position":[50,100]},
		{"name":"mid","position":[50,50]}
	]`))
	require.Len(t, m.Store().Markers(), 7)
	assert.Equal(t, 7, strings.Count(m.View(), "⌂"))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 40})
	assert.Equal(t, 7, strings.Count(m.View(), "⌂"), "width-bound grid")
}

func TestLoadReplacesMarkers(t *testing.T) {
	m := newTestModel(t)
	a := writeFile(t, m.cwd, "a.json", `[{"name":"A1","position":[10,10]},{"name":"A2","position":[20,20]}]`)
	b := writeFile(t, m.cwd, "b.json", `[{"name":"B1","position":[30,30]}]`)

	m = loadFile(t, m, a)
	m, _ = update(t, m, key("n"))
	require.Equal(t, 0, m.selectedIndex())

	m = loadFile(t, m, b)
	markers := m.Store().Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, "B1", markers[0].Name)
	assert.Equal(t, -1, m.selectedIndex(), "popup of a replaced marker closes")
	assert.Equal(t, 1, m.index.Size())
	assert.Len(t, m.tbl.Rows(), 1)
}

func TestLastLoadWins(t *testing.T) {
	m := newTestModel(t)
	a := loadDatasetCmd(writeFile(t, m.cwd, "a.json", `[{"name":"A","position":[1,1]}]`))
	b := loadDatasetCmd(writeFile(t, m.cwd, "b.json", `[{"name":"B","position":[2,2]}]`))

	// results apply in arrival order
	msgA, msgB := a(), b()
	m, _ = update(t, m, msgA)
	m, _ = update(t, m, msgB)
	require.Len(t, m.Store().Markers(), 1)
	assert.Equal(t, "B", m.Store().Markers()[0].Name)
}

func TestBadFileKeepsMarkers(t *testing.T) {
	m := newTestModel(t)
	m = loadFile(t, m, writeFile(t, m.cwd, "good.json", safehouse))
	status := m.status
	rev := m.Store().Revision()

	for _, p := range []string{
		writeFile(t, m.cwd, "bad.json", `{not json`),
		writeFile(t, m.cwd, "shape.json", `[{"name":"x"}]`),
		filepath.Join(m.cwd, "missing.json"),
	} {
		msg := loadDatasetCmd(p)()
		require.IsType(t, datasetFailedMsg{}, msg)
		m, _ = update(t, m, msg)
	}
	assert.Len(t, m.Store().Markers(), 1)
	assert.Equal(t, rev, m.Store().Revision())
	assert.Equal(t, status, m.status)
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestMapToggleKeepsMarkers(t *testing.T) {
	m := newTestModel(t)
	m = loadFile(t, m, writeFile(t, m.cwd, "poi.json", safehouse))
	before := m.Store().Markers()

	m, _ = update(t, m, key("a"))
	assert.Equal(t, basemap.Atlas, m.Store().ActiveMap().Key)
	assert.Equal(t, before, m.Store().Markers())

	m = loadFile(t, m, writeFile(t, m.cwd, "other.json", `[{"name":"X","position":[5,5]}]`))
	assert.Equal(t, basemap.Atlas, m.Store().ActiveMap().Key)
}

func TestMapSwitchResetsViewport(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, key("+"))
	m, _ = update(t, m, key("right"))
	m, _ = update(t, m, key("up"))
	require.NotEqual(t, geom.DefaultCenter, m.surface.view.Center)

	m, _ = update(t, m, key("a"))
	assert.Equal(t, geom.DefaultCenter, m.surface.view.Center)
	assert.Equal(t, geom.DefaultZoom, m.surface.view.Zoom)
	assert.Equal(t, m.Store().ActiveMap().Image, m.surface.Key())
}

func TestSameMapIsIdempotent(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, key("+"))
	m, _ = update(t, m, key("s"))
	view := m.surface.view
	once := m.View()

	m, _ = update(t, m, key("s"))
	assert.Equal(t, view, m.surface.view)
	assert.Equal(t, once, m.View())
	assert.Equal(t, geom.DefaultZoom+geom.ZoomStep, m.surface.view.Zoom, "reselecting keeps the zoom")
}

func TestButtons(t *testing.T) {
	m := newTestModel(t)
	require.Len(t, m.layout.buttons, 3)
	atlas := m.layout.buttons[2]

	m, _ = update(t, m, click(atlas.x0, m.layout.buttonsY))
	assert.Equal(t, basemap.Atlas, m.Store().ActiveMap().Key)

	sat := m.layout.buttons[1]
	m, _ = update(t, m, click(sat.x1-1, m.layout.buttonsY))
	assert.Equal(t, basemap.Satellite, m.Store().ActiveMap().Key)

	m, _ = update(t, m, click(m.layout.buttons[0].x0, m.layout.buttonsY))
	assert.True(t, m.showPicker)
}

func TestMarkerClick(t *testing.T) {
	m := newTestModel(t)
	m = loadFile(t, m, writeFile(t, m.cwd, "poi.json", `[{"name":"Centre","position":[50,50]}]`))

	col, row, ok := m.surface.view.Cell(geom.LatLng{Lat: 50, Lng: 50})
	require.True(t, ok)
	m, _ = update(t, m, click(m.layout.mapX+col, m.layout.mapY+row))
	assert.Equal(t, 0, m.selectedIndex())
	assert.False(t, m.dragging)

	// empty space closes the popup and starts a drag
	m, _ = update(t, m, click(m.layout.mapX+2, m.layout.mapY+2))
	assert.Equal(t, -1, m.selectedIndex())
	assert.True(t, m.dragging)
}

func TestMarkerClickAdjacentRows(t *testing.T) {
	m := newTestModel(t)
	v := m.surface.view
	// lower sits in the top corner of its cell; upper sits just above that
	// cell's top edge and is nearer to the lower cell's centre
	lower := v.Unproject(40.95, 10.02)
	upper := v.Unproject(40.5, 9.98)
	m, _ = update(t, m, datasetLoadedMsg{path: "rows.json", points: []dataset.PointOfInterest{
		{ID: "lower", Name: "Lower", Position: lower},
		{ID: "upper", Name: "Upper", Position: upper},
	}})

	col, row, ok := m.markerCell(lower)
	require.True(t, ok)
	require.Equal(t, [2]int{40, 10}, [2]int{col, row})
	col, row, ok = m.markerCell(upper)
	require.True(t, ok)
	require.Equal(t, [2]int{40, 9}, [2]int{col, row})

	m, _ = update(t, m, click(m.layout.mapX+40, m.layout.mapY+10))
	assert.Equal(t, "lower", m.popupID)
	assert.False(t, m.dragging)

	m, _ = update(t, m, click(m.layout.mapX+40, m.layout.mapY+9))
	assert.Equal(t, "upper", m.popupID)
}

func TestMarkerClickPrefersTopmost(t *testing.T) {
	m := newTestModel(t)
	m = loadFile(t, m, writeFile(t, m.cwd, "stack.json",
		`[{"name":"Under","position":[50,50]},{"name":"Over","position":[50,50]},{"name":"Beside","position":[50,52.5]}]`))
	col, row, ok := m.markerCell(geom.LatLng{Lat: 50, Lng: 50})
	require.True(t, ok)

	m, _ = update(t, m, click(m.layout.mapX+col, m.layout.mapY+row))
	assert.Equal(t, 1, m.selectedIndex(), "the marker drawn last is on top")

	// one column off still hits, the exact column wins over a neighbour
	m, _ = update(t, m, click(m.layout.mapX+col+1, m.layout.mapY+row))
	assert.Equal(t, 2, m.selectedIndex())
}

func TestDragAndWheel(t *testing.T) {
	m := newTestModel(t)
	x, y := m.layout.mapX+10, m.layout.mapY+5
	m, _ = update(t, m, click(x, y))
	m, _ = update(t, m, tea.MouseMsg{X: x + 4, Y: y, Action: tea.MouseActionMotion})
	assert.Less(t, m.surface.view.Center.Lng, geom.DefaultCenter.Lng)
	assert.Equal(t, geom.DefaultCenter.Lat, m.surface.view.Center.Lat)
	assert.True(t, m.readout.ok)

	m, _ = update(t, m, tea.MouseMsg{X: x + 4, Y: y, Action: tea.MouseActionRelease})
	assert.False(t, m.dragging)

	m, _ = update(t, m, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, geom.DefaultZoom+geom.ZoomStep, m.surface.view.Zoom)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, m.readout.ok)
}

func TestZoomClamped(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 20; i++ {
		m, _ = update(t, m, key("+"))
	}
	assert.Equal(t, geom.MaxZoom, m.surface.view.Zoom)
	for i := 0; i < 20; i++ {
		m, _ = update(t, m, key("-"))
	}
	assert.Equal(t, geom.MinZoom, m.surface.view.Zoom)
}

func TestPicker(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, os.Mkdir(filepath.Join(m.cwd, "nested"), 0o755))
	writeFile(t, m.cwd, "poi.json", safehouse)
	writeFile(t, m.cwd, "notes.txt", "ignored")

	m, _ = update(t, m, key("o"))
	require.True(t, m.showPicker)
	assert.Equal(t, sidebarWidth+1, m.layout.mapX)

	var titles []string
	for _, it := range m.items {
		titles = append(titles, it.(fileItem).Title())
	}
	assert.Equal(t, []string{"../", "nested/", "poi.json"}, titles)

	m.l.Select(2)
	m, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.False(t, m.showPicker)
	assert.Equal(t, 0, m.layout.mapX)

	m, _ = update(t, m, cmd())
	assert.Len(t, m.Store().Markers(), 1)
	assert.Equal(t, filepath.Join(m.cwd, "poi.json"), m.datasetPath)
}

func TestPickerEntersDirectory(t *testing.T) {
	m := newTestModel(t)
	root := m.cwd
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested"), 0o755))
	writeFile(t, filepath.Join(root, "nested"), "inner.geojson", `{"type":"FeatureCollection","features":[]}`)

	m, _ = update(t, m, key("o"))
	m.l.Select(1)
	m, cmd := update(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.True(t, m.showPicker)
	assert.Equal(t, filepath.Join(root, "nested"), m.cwd)
	require.Len(t, m.items, 2)
	assert.Equal(t, "inner.geojson", m.items[1].(fileItem).Title())

	m, _ = update(t, m, key("esc"))
	assert.False(t, m.showPicker)
}

func TestPaste(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, key("p"))
	require.True(t, m.pasteMode)

	m.ta.SetValue(`[{"name":"Pasted","position":{"lat":1,"lng":2}}]`)
	m, _ = update(t, m, key("enter"))
	assert.False(t, m.pasteMode)
	require.Len(t, m.Store().Markers(), 1)
	assert.Equal(t, "Pasted", m.Store().Markers()[0].Name)
	assert.Contains(t, m.status, "pasted data")

	m, _ = update(t, m, key("p"))
	m.ta.SetValue(`garbage`)
	m, _ = update(t, m, key("enter"))
	assert.Len(t, m.Store().Markers(), 1)

	m, _ = update(t, m, key("p"))
	m, _ = update(t, m, key("esc"))
	assert.False(t, m.pasteMode)
}

func TestTableFocusesMarker(t *testing.T) {
	m := newTestModel(t)
	m = loadFile(t, m, writeFile(t, m.cwd, "poi.json",
		`[{"name":"One","position":[10,20]},{"name":"Two","position":[70,80]}]`))

	m, _ = update(t, m, key("t"))
	require.True(t, m.showTable)
	assert.Len(t, m.tbl.Rows(), 2)
	assert.Contains(t, m.View(), "Two")

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("enter"))
	assert.False(t, m.showTable)
	assert.Equal(t, 1, m.selectedIndex())
	assert.Equal(t, geom.LatLng{Lat: 70, Lng: 80}, m.surface.view.Center)
}

func TestCycleMarkers(t *testing.T) {
	m := newTestModel(t)
	m = loadFile(t, m, writeFile(t, m.cwd, "poi.json",
		`[{"name":"One","position":[10,20]},{"name":"Two","position":[70,80]}]`))

	m, _ = update(t, m, key("N"))
	assert.Equal(t, 1, m.selectedIndex())
	m, _ = update(t, m, key("n"))
	assert.Equal(t, 0, m.selectedIndex())
	m, _ = update(t, m, key("esc"))
	assert.Equal(t, -1, m.selectedIndex())
}

func TestRasterLoad(t *testing.T) {
	m := newTestModel(t)
	path := m.surface.Key()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cmd := m.surfaceCmd()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.NotNil(t, m.surface.raster)
	assert.Nil(t, m.surfaceCmd(), "cached image needs no load")

	c := m.surface.sample(m.layout.mapW/2, m.layout.mapH)
	r, _, _ := c.RGB255()
	assert.Equal(t, uint8(200), r)

	// outside the image the background colour shows
	out := m.surface.sample(0, 0)
	assert.Equal(t, m.surface.def.BackgroundColor(), out)
}

func TestRasterLoadFailure(t *testing.T) {
	m := newTestModel(t)
	msg := m.surfaceCmd()()
	loaded, ok := msg.(rasterLoadedMsg)
	require.True(t, ok)
	require.Error(t, loaded.err)

	m, _ = update(t, m, msg)
	assert.Nil(t, m.surface.raster)
	assert.Contains(t, m.View(), "Satellite View")
}

func TestIconPopupOffset(t *testing.T) {
	ic := BuildHouseIcon()
	dc, dr := ic.PopupOffset()
	assert.Equal(t, 0, dc)
	assert.Equal(t, -2, dr)

	dc, dr = ic.MarkerOffset()
	assert.Equal(t, [2]int{0, 0}, [2]int{dc, dr}, "bottom-centre anchor")

	top := ic
	top.Anchor = [2]int{17, 0}
	dc, dr = top.MarkerOffset()
	assert.Equal(t, [2]int{0, 3}, [2]int{dc, dr})
	assert.Contains(t, ic.Render(false), "⌂")
	assert.Contains(t, ic.Render(true), "⌂")
}

func TestViewBeforeSize(t *testing.T) {
	cat := basemap.DefaultCatalog("assets")
	m := New(Options{Catalog: cat, Icon: BuildHouseIcon(), Logger: zerolog.New(io.Discard)})
	assert.Equal(t, "", m.View())
	assert.Equal(t, basemap.Satellite, m.Store().ActiveMap().Key)
}
