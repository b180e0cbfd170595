package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gtamap/internal/geom"
)

// decodeCSV reads a header row followed by one record per row.
// Column detection (case-insensitive): name|title, lat|latitude|y,
// lng|lon|long|longitude|x, imageurl|image|img, additionaltext|text|description.
func decodeCSV(r io.Reader) ([]PointOfInterest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idx := map[string]int{"name": -1, "lat": -1, "lng": -1, "image": -1, "text": -1}
	set := func(key string, i int) {
		if idx[key] == -1 {
			idx[key] = i
		}
	}
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "title":
			set("name", i)
		case "lat", "latitude", "y":
			set("lat", i)
		case "lng", "lon", "long", "longitude", "x":
			set("lng", i)
		case "imageurl", "image", "img":
			set("image", i)
		case "additionaltext", "text", "description":
			set("text", i)
		}
	}
	if idx["lat"] == -1 || idx["lng"] == -1 {
		return nil, errors.New("csv: lat/lng columns not found")
	}
	cell := func(row []string, key string) string {
		i := idx[key]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	out := make([]PointOfInterest, 0, len(recs)-1)
	for n, row := range recs[1:] {
		lat, err1 := strconv.ParseFloat(cell(row, "lat"), 64)
		lng, err2 := strconv.ParseFloat(cell(row, "lng"), 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("csv row %d: bad position", n+2)
		}
		rec := newRecord(cell(row, "name"), geom.LatLng{Lat: lat, Lng: lng}, cell(row, "image"), cell(row, "text"))
		if err := checkRecord(rec); err != nil {
			return nil, fmt.Errorf("csv row %d: %w", n+2, err)
		}
		out = append(out, rec.toPOI())
	}
	return out, nil
}
