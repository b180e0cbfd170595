// Package dataset reads point-of-interest files picked by the user.
package dataset

import (
	"github.com/google/uuid"

	"gtamap/internal/geom"
)

// PointOfInterest is one marker on the map.
type PointOfInterest struct {
	// ID is assigned at load time; two loads of the same file get new IDs.
	ID             string      `json:"-"`
	Name           string      `json:"name"`
	Position       geom.LatLng `json:"position"`
	ImageURL       string      `json:"imageUrl"`
	AdditionalText string      `json:"additionalText"`
}

// record is the on-disk shape of a PointOfInterest.
type record struct {
	Name           string       `json:"name"`
	Position       *geom.LatLng `json:"position" validate:"required"`
	ImageURL       string       `json:"imageUrl"`
	AdditionalText string       `json:"additionalText"`
}

func (r record) toPOI() PointOfInterest {
	return PointOfInterest{
		ID:             uuid.NewString(),
		Name:           r.Name,
		Position:       *r.Position,
		ImageURL:       r.ImageURL,
		AdditionalText: r.AdditionalText,
	}
}

// Positions returns the marker positions in list order.
func Positions(points []PointOfInterest) []geom.LatLng {
	out := make([]geom.LatLng, len(points))
	for i, p := range points {
		out[i] = p.Position
	}
	return out
}
