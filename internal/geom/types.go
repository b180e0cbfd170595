package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// ImageBounds is the logical rectangle every base image is stretched onto.
var ImageBounds = BBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether the box has a positive area.
func (b BBox) Valid() bool { return b.MaxX > b.MinX && b.MaxY > b.MinY }

// Contains reports whether p lies inside the box, edges included.
func (b BBox) Contains(p LatLng) bool {
	return p.Lng >= b.MinX && p.Lng <= b.MaxX && p.Lat >= b.MinY && p.Lat <= b.MaxY
}

// LatLng is a position in the logical map space. Lat is the vertical axis
// (growing upward), Lng the horizontal one. The names follow the [lat, lng]
// pair order datasets use.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) String() string { return fmt.Sprintf("[%.2f, %.2f]", p.Lat, p.Lng) }

// Finite reports whether both components are real numbers.
func (p LatLng) Finite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) && !math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0)
}

var errBadPosition = errors.New("position must be [lat, lng] or {lat, lng}")

// UnmarshalJSON accepts [lat, lng] pairs as well as {"lat","lng"} and
// {"lat","lon"} objects.
func (p *LatLng) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("%w: got %d numbers", errBadPosition, len(pair))
		}
		p.Lat, p.Lng = pair[0], pair[1]
		return nil
	}
	var obj struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return errBadPosition
	}
	if obj.Lng == nil {
		obj.Lng = obj.Lon
	}
	if obj.Lat == nil || obj.Lng == nil {
		return errBadPosition
	}
	p.Lat, p.Lng = *obj.Lat, *obj.Lng
	return nil
}

// MarshalJSON writes the [lat, lng] pair form.
func (p LatLng) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lng})
}
