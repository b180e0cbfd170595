// Package basemap holds the two base-map definitions and decodes their images.
package basemap

import (
	"fmt"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	Satellite = "satellite"
	Atlas     = "atlas"
)

// Definition is one selectable base map. Values are immutable once built.
type Definition struct {
	Key        string
	Label      string
	Image      string
	Background string
}

// BackgroundColor parses Background, falling back to black.
func (d Definition) BackgroundColor() colorful.Color {
	c, err := colorful.Hex(d.Background)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Catalog is the closed set of base maps.
type Catalog struct {
	Satellite Definition
	Atlas     Definition
}

// DefaultCatalog returns the bundled maps, resolved against assetsDir.
func DefaultCatalog(assetsDir string) Catalog {
	return Catalog{
		Satellite: Definition{
			Key:        Satellite,
			Label:      "Satellite View",
			Image:      filepath.Join(assetsDir, "GTAVSatellite.jpg"),
			Background: "#143d6b",
		},
		Atlas: Definition{
			Key:        Atlas,
			Label:      "Atlas View",
			Image:      filepath.Join(assetsDir, "GTAVAtlas.png"),
			Background: "#0FA8D2",
		},
	}
}

// Lookup returns the definition registered under key.
func (c Catalog) Lookup(key string) (Definition, error) {
	switch key {
	case Satellite:
		return c.Satellite, nil
	case Atlas:
		return c.Atlas, nil
	}
	return Definition{}, fmt.Errorf("unknown base map %q (want %s or %s)", key, Satellite, Atlas)
}

// Validate checks that both maps have an image and a parsable background.
func (c Catalog) Validate() error {
	for _, d := range []Definition{c.Satellite, c.Atlas} {
		if d.Image == "" {
			return fmt.Errorf("base map %s: missing image", d.Key)
		}
		if _, err := colorful.Hex(d.Background); err != nil {
			return fmt.Errorf("base map %s: background %q: %w", d.Key, d.Background, err)
		}
	}
	if c.Satellite.Image == c.Atlas.Image {
		return fmt.Errorf("base maps share image %s", c.Satellite.Image)
	}
	return nil
}
