package dataset

import (
	"encoding/json"
	"errors"

	"gtamap/internal/geom"
)

// decodeGeoJSON extracts Point and MultiPoint features. Coordinates are
// [x, y], so x becomes Lng. Feature properties name, imageUrl and
// additionalText fill the record; other geometry types are skipped.
func decodeGeoJSON(data []byte) ([]PointOfInterest, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	t, _ := raw["type"].(string)
	if t == "" {
		return nil, errors.New("invalid geojson: missing type")
	}

	var recs []record
	parsePoint := func(v any) (geom.LatLng, bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return geom.LatLng{Lat: y, Lng: x}, true
			}
		}
		return geom.LatLng{}, false
	}
	prop := func(props map[string]any, key string) string {
		s, _ := props[key].(string)
		return s
	}
	addFeature := func(f map[string]any) {
		g, ok := f["geometry"].(map[string]any)
		if !ok {
			return
		}
		props, _ := f["properties"].(map[string]any)
		add := func(pos geom.LatLng) {
			recs = append(recs, newRecord(prop(props, "name"), pos, prop(props, "imageUrl"), prop(props, "additionalText")))
		}
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if pt, ok := parsePoint(g["coordinates"]); ok {
				add(pt)
			}
		case "MultiPoint":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if pt, ok := parsePoint(el); ok {
						add(pt)
					}
				}
			}
		}
	}

	switch t {
	case "Feature":
		addFeature(raw)
	case "FeatureCollection":
		fs, ok := raw["features"].([]any)
		if !ok {
			return nil, errors.New("invalid geojson: features is not an array")
		}
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				addFeature(fm)
			}
		}
	default:
		return nil, errors.New("unsupported geojson type: " + t)
	}

	return checkedPOIs(recs)
}
