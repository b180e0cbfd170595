package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// halfBlock draws one cell holding two vertically stacked pixels.
func halfBlock(top, bottom string) string {
	if top == bottom {
		return lipgloss.NewStyle().Background(lipgloss.Color(bottom)).Render(" ")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Background(lipgloss.Color(bottom)).Render("▀")
}

// overlay writes block onto grid with its top-left corner at (x, y). Each
// line of block takes the first cell it covers; the rest of the covered
// cells are emptied so joined rows keep their width.
func overlay(grid [][]string, x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(grid) {
			continue
		}
		w := lipgloss.Width(line)
		if x < 0 || x+w > len(grid[row]) {
			continue
		}
		grid[row][x] = line
		for c := x + 1; c < x+w; c++ {
			grid[row][c] = ""
		}
	}
}
