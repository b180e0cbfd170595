package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gtamap/internal/dataset"
	"gtamap/internal/geom"
)

type datasetLoadedMsg struct {
	path   string
	points []dataset.PointOfInterest
}

type datasetFailedMsg struct {
	path string
	err  error
}

// loadDatasetCmd reads and decodes path off the update loop. Several loads
// may be in flight; whichever result arrives last wins.
func loadDatasetCmd(path string) tea.Cmd {
	return func() tea.Msg {
		points, err := dataset.Load(path)
		if err != nil {
			return datasetFailedMsg{path: path, err: err}
		}
		return datasetLoadedMsg{path: path, points: points}
	}
}

// decodePasted runs pasted text through the same decoder as files.
func decodePasted(text string) tea.Msg {
	points, err := dataset.Decode(strings.NewReader(text), "pasted")
	if err != nil {
		return datasetFailedMsg{path: "pasted", err: err}
	}
	return datasetLoadedMsg{points: points}
}

func (m *Model) applyDataset(msg datasetLoadedMsg) {
	m.store.SetMarkers(msg.points)
	m.syncIndex()
	if msg.path != "" {
		m.datasetPath = msg.path
	}
	if m.selectedIndex() < 0 {
		m.popupID = ""
	}
	m.refreshTable()
	name := filepath.Base(msg.path)
	if msg.path == "" {
		name = "pasted data"
	}
	m.status = fmt.Sprintf("loaded: %s  markers=%d", name, len(msg.points))
	m.log.Info().Str("path", msg.path).Int("markers", len(msg.points)).Msg("dataset loaded")
}

// failDataset leaves the markers alone. The failure goes to the log only.
func (m *Model) failDataset(msg datasetFailedMsg) {
	m.log.Error().Err(msg.err).Str("path", msg.path).Msg("dataset load failed")
}

// syncIndex rebuilds the marker index when the store has new markers.
func (m *Model) syncIndex() {
	if m.index != nil && m.indexRev == m.store.Revision() {
		return
	}
	m.index = geom.NewIndex(dataset.Positions(m.store.Markers()))
	m.indexRev = m.store.Revision()
}
