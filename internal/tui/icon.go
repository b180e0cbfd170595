package tui

import "github.com/charmbracelet/lipgloss"

// Terminal cell size in pixels, used to turn pixel offsets into cell offsets.
const (
	cellPxW = 8
	cellPxH = 16
)

// IconDefinition is the marker badge shared by every point of interest.
// Sizes and offsets are in pixels, measured like a map pin: Anchor is the
// point of the icon that sits on the marker position, PopupAnchor is where
// the popup tip goes relative to Anchor.
type IconDefinition struct {
	Glyph       string
	Size        [2]int
	Anchor      [2]int
	PopupAnchor [2]int

	badge    lipgloss.Style
	selected lipgloss.Style
}

// BuildHouseIcon returns the house-in-a-dark-circle badge.
func BuildHouseIcon() IconDefinition {
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#000000")).
		Bold(true)
	return IconDefinition{
		Glyph:       "⌂",
		Size:        [2]int{35, 51},
		Anchor:      [2]int{17, 51},
		PopupAnchor: [2]int{1, -34},
		badge:       badge,
		selected:    badge.Foreground(lipgloss.Color("#FFA500")),
	}
}

// Render draws the badge in one cell.
func (ic IconDefinition) Render(selected bool) string {
	if selected {
		return ic.selected.Render(ic.Glyph)
	}
	return ic.badge.Render(ic.Glyph)
}

// MarkerOffset is the glyph cell relative to the cell of the marker
// position. The one-cell glyph stands for the icon's bottom edge, so a
// bottom-centre Anchor gives (0, 0).
func (ic IconDefinition) MarkerOffset() (dc, dr int) {
	return roundDiv(ic.Size[0]/2-ic.Anchor[0], cellPxW), roundDiv(ic.Size[1]-ic.Anchor[1], cellPxH)
}

// PopupOffset converts PopupAnchor into whole cells.
func (ic IconDefinition) PopupOffset() (dc, dr int) {
	return roundDiv(ic.PopupAnchor[0], cellPxW), roundDiv(ic.PopupAnchor[1], cellPxH)
}

func roundDiv(a, b int) int {
	if a < 0 {
		return -((-a + b/2) / b)
	}
	return (a + b/2) / b
}
