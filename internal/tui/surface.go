package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"

	"gtamap/internal/basemap"
	"gtamap/internal/geom"
)

// Surface is the pannable map canvas for one base map. It is identified by
// the image it shows; switching maps builds a new Surface, which drops any
// pan and zoom.
type Surface struct {
	def    basemap.Definition
	view   geom.Viewport
	raster *basemap.Raster
}

func newSurface(def basemap.Definition, w, h int, rasters *basemap.Cache) Surface {
	s := Surface{def: def, view: geom.NewViewport(w, h)}
	s.raster, _ = rasters.Get(def.Image)
	return s
}

// Key is the image resource the surface was built for.
func (s Surface) Key() string { return s.def.Image }

func (s Surface) resize(w, h int) Surface {
	s.view = s.view.Resize(w, h)
	return s
}

// sample returns the colour at a half-row position: each cell row holds two
// image rows.
func (s Surface) sample(col, half int) colorful.Color {
	p := s.view.Unproject(float64(col)+0.5, (float64(half)+0.5)/2)
	if s.raster == nil || !geom.ImageBounds.Contains(p) {
		return s.def.BackgroundColor()
	}
	b := geom.ImageBounds
	return s.raster.At((p.Lng-b.MinX)/b.Width(), (b.MaxY-p.Lat)/b.Height())
}

type rasterLoadedMsg struct {
	path   string
	raster *basemap.Raster
	err    error
}

// loadRasterCmd decodes a base map image off the update loop.
func loadRasterCmd(rasters *basemap.Cache, path string) tea.Cmd {
	return func() tea.Msg {
		r, err := rasters.Load(path)
		return rasterLoadedMsg{path: path, raster: r, err: err}
	}
}
