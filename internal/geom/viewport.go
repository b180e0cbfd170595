package geom

import "math"

const (
	DefaultZoom = 3.5
	MinZoom     = 1.0
	MaxZoom     = 8.0
	ZoomStep    = 0.5
)

// DefaultCenter is the centre of ImageBounds.
var DefaultCenter = LatLng{Lat: 50, Lng: 50}

// Viewport maps logical coordinates onto a grid of terminal cells.
//
// A cell counts as one pixel wide and two pixels tall. At DefaultZoom the
// whole ImageBounds square fits the grid, max edges included, and each zoom
// level doubles the scale.
type Viewport struct {
	Center LatLng
	Zoom   float64
	W, H   int
}

// NewViewport returns a viewport at the default centre and zoom.
func NewViewport(w, h int) Viewport {
	return Viewport{Center: DefaultCenter, Zoom: DefaultZoom, W: w, H: h}
}

// Scale returns pixels per logical unit.
func (v Viewport) Scale() float64 {
	// one pixel short of the grid so the max edge still falls in the last cell
	fit := math.Min(float64(v.W-1), float64(v.H*2-1))
	if fit <= 0 {
		fit = 1
	}
	base := fit / math.Max(ImageBounds.Width(), ImageBounds.Height())
	return base * math.Pow(2, v.Zoom-DefaultZoom)
}

// Project returns the fractional cell position of p. Rows grow downward.
func (v Viewport) Project(p LatLng) (col, row float64) {
	s := v.Scale()
	col = float64(v.W)/2 + (p.Lng-v.Center.Lng)*s
	row = float64(v.H)/2 - (p.Lat-v.Center.Lat)*s/2
	return col, row
}

// Cell returns the integer cell containing p and whether it is on screen.
func (v Viewport) Cell(p LatLng) (int, int, bool) {
	c, r := v.Project(p)
	col, row := int(math.Floor(c)), int(math.Floor(r))
	return col, row, col >= 0 && col < v.W && row >= 0 && row < v.H
}

// Unproject is the inverse of Project.
func (v Viewport) Unproject(col, row float64) LatLng {
	s := v.Scale()
	return LatLng{
		Lat: v.Center.Lat - (row-float64(v.H)/2)*2/s,
		Lng: v.Center.Lng + (col-float64(v.W)/2)/s,
	}
}

// CellCenter unprojects the middle of a cell.
func (v Viewport) CellCenter(col, row int) LatLng {
	return v.Unproject(float64(col)+0.5, float64(row)+0.5)
}

// Visible returns the logical box covered by the grid.
func (v Viewport) Visible() BBox {
	tl := v.Unproject(0, 0)
	br := v.Unproject(float64(v.W), float64(v.H))
	return BBox{MinX: tl.Lng, MinY: br.Lat, MaxX: br.Lng, MaxY: tl.Lat}
}

// Pan moves the view by whole cells. Positive dc scrolls right, positive dr
// scrolls down.
func (v Viewport) Pan(dc, dr int) Viewport {
	s := v.Scale()
	v.Center.Lng += float64(dc) / s
	v.Center.Lat -= float64(dr) * 2 / s
	return v
}

// ZoomBy changes the zoom level by delta steps, clamped to [MinZoom, MaxZoom].
func (v Viewport) ZoomBy(delta float64) Viewport {
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, v.Zoom+delta))
	return v
}

// Resize keeps centre and zoom while changing the grid size.
func (v Viewport) Resize(w, h int) Viewport {
	v.W, v.H = w, h
	return v
}
