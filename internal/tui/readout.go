package tui

import (
	"fmt"

	"gtamap/internal/geom"
)

// readout shows the logical position under the pointer.
type readout struct {
	pos geom.LatLng
	ok  bool
}

func (r readout) View() string {
	if !r.ok {
		return ""
	}
	return dimStyle.Render(fmt.Sprintf("  lat=%.2f lng=%.2f  ", r.pos.Lat, r.pos.Lng))
}
