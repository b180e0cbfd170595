package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"gtamap/internal/geom"
)

var validate = validator.New()

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extensions lists the file extensions offered by the file picker.
var Extensions = []string{".json", ".geojson", ".csv"}

// Load reads the whole file at path and decodes it.
func Load(path string) ([]PointOfInterest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode parses a dataset. The format is picked from the content: a JSON
// array is a list of records, a JSON object is GeoJSON. Only content that is
// not JSON at all falls back to CSV, and only when name ends in .csv.
func Decode(r io.Reader, name string) ([]PointOfInterest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileReadError{Path: name, Err: err}
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return nil, &ParseError{Source: name, Err: errors.New("empty input")}
	}
	var points []PointOfInterest
	switch {
	case data[0] == '[':
		points, err = decodeRecords(data)
	case data[0] == '{':
		points, err = decodeGeoJSON(data)
	case strings.EqualFold(filepath.Ext(name), ".csv"):
		points, err = decodeCSV(bytes.NewReader(data))
	default:
		err = errors.New("not a JSON array")
	}
	if err != nil {
		return nil, &ParseError{Source: name, Err: err}
	}
	return points, nil
}

func decodeRecords(data []byte) ([]PointOfInterest, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return checkedPOIs(recs)
}

// checkedPOIs validates every record before any of them becomes a point.
func checkedPOIs(recs []record) ([]PointOfInterest, error) {
	for i, r := range recs {
		if err := checkRecord(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return lo.Map(recs, func(r record, _ int) PointOfInterest { return r.toPOI() }), nil
}

func checkRecord(r record) error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("field %s failed %q", strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return err
	}
	if !r.Position.Finite() {
		return fmt.Errorf("position %v is not finite", *r.Position)
	}
	return nil
}

func newRecord(name string, pos geom.LatLng, image, text string) record {
	return record{Name: name, Position: &pos, ImageURL: image, AdditionalText: text}
}
