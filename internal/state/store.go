// Package state owns the mutable view state: the loaded markers and the
// active base map.
package state

import (
	"gtamap/internal/basemap"
	"gtamap/internal/dataset"
)

// Store is written only from the UI update loop.
type Store struct {
	markers   []dataset.PointOfInterest
	activeMap basemap.Definition
	revision  uint64
}

// New starts with no markers and def as the active map.
func New(def basemap.Definition) *Store {
	return &Store{activeMap: def}
}

// Markers returns the current list. Callers must not modify it.
func (s *Store) Markers() []dataset.PointOfInterest { return s.markers }

// ActiveMap returns the selected base map.
func (s *Store) ActiveMap() basemap.Definition { return s.activeMap }

// Revision increases on every SetMarkers call.
func (s *Store) Revision() uint64 { return s.revision }

// SetMarkers replaces the whole marker list.
func (s *Store) SetMarkers(list []dataset.PointOfInterest) {
	s.markers = append([]dataset.PointOfInterest(nil), list...)
	s.revision++
}

// SetActiveMap replaces the selected base map.
func (s *Store) SetActiveMap(def basemap.Definition) {
	s.activeMap = def
}
