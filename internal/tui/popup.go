package tui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gtamap/internal/basemap"
	"gtamap/internal/dataset"
)

const (
	popupMaxWidth = 48
	thumbMaxWidth = 32
)

type thumbLoadedMsg struct {
	path string
	err  error
}

// selectedIndex returns the list position of the open popup's marker, or -1.
func (m Model) selectedIndex() int {
	if m.popupID == "" {
		return -1
	}
	for i, p := range m.store.Markers() {
		if p.ID == m.popupID {
			return i
		}
	}
	return -1
}

// openPopup selects marker i and starts loading its image when it is a
// local file not seen before.
func (m *Model) openPopup(i int) tea.Cmd {
	markers := m.store.Markers()
	if i < 0 || i >= len(markers) {
		return nil
	}
	poi := markers[i]
	m.popupID = poi.ID
	m.status = "marker: " + poi.Name

	path, local := m.resolveImage(poi.ImageURL)
	if !local || m.thumbFailed[path] {
		return nil
	}
	if _, ok := m.thumbs.Get(path); ok {
		return nil
	}
	thumbs := m.thumbs
	return func() tea.Msg {
		_, err := thumbs.Load(path)
		return thumbLoadedMsg{path: path, err: err}
	}
}

func (m *Model) closePopup() {
	m.popupID = ""
}

// cycleMarker moves the selection by delta and centres the view on it.
func (m *Model) cycleMarker(delta int) tea.Cmd {
	n := len(m.store.Markers())
	if n == 0 {
		return nil
	}
	i := m.selectedIndex()
	if i < 0 {
		if delta > 0 {
			i = -1
		} else {
			i = 0
		}
	}
	i = ((i+delta)%n + n) % n
	return m.focusMarker(i)
}

func (m *Model) focusMarker(i int) tea.Cmd {
	markers := m.store.Markers()
	if i < 0 || i >= len(markers) {
		return nil
	}
	if pos := markers[i].Position; pos.Finite() {
		m.surface.view.Center = pos
	}
	return m.openPopup(i)
}

// resolveImage maps an image reference to a local path. Remote references
// are reported as not local.
func (m Model) resolveImage(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	lower := strings.ToLower(ref)
	for _, scheme := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return ref, false
		}
	}
	ref = strings.TrimPrefix(ref, "file://")
	if filepath.IsAbs(ref) {
		return ref, true
	}
	base := m.cwd
	if m.datasetPath != "" {
		base = filepath.Dir(m.datasetPath)
	}
	return filepath.Join(base, ref), true
}

// renderPopup builds the popup box for poi: name, image, then text.
func (m Model) renderPopup(poi dataset.PointOfInterest, maxW int) string {
	w := min(popupMaxWidth, maxW)
	if w < 12 {
		w = 12
	}
	inner := w - 4

	parts := []string{popupTitleStyle.Render(poi.Name)}
	if poi.ImageURL != "" {
		path, local := m.resolveImage(poi.ImageURL)
		if r, ok := m.thumbs.Get(path); local && ok {
			parts = append(parts, renderThumb(r, min(inner, thumbMaxWidth)))
		} else {
			parts = append(parts, dimStyle.Render("[image] "+poi.ImageURL))
		}
	}
	if poi.AdditionalText != "" {
		parts = append(parts, "", poi.AdditionalText)
	}
	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return popupStyle.Width(w - 2).Render(body)
}

// renderThumb draws r with half-block cells, w cells wide.
func renderThumb(r *basemap.Raster, w int) string {
	iw, ih := r.Size()
	h := w * ih / iw / 2
	h = max(2, min(h, 10))
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			top := r.At(u, (float64(2*y)+0.5)/float64(2*h))
			bottom := r.At(u, (float64(2*y+1)+0.5)/float64(2*h))
			sb.WriteString(halfBlock(top.Hex(), bottom.Hex()))
		}
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}
