// Package overlay layers a foreground block (a popover, a modal) over an
// already rendered background frame.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/datebox/pkg/tui/ui"
)

// Placement controls overlay alignment and sizing. When Absolute is set the
// overlay's top-left cell is (X, Y) and the alignment fields are ignored.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int

	Absolute bool
	X        int
	Y        int
}

// Bounds reports where Compose would draw foreground inside a width x height
// frame. An empty rect means nothing would be drawn.
func Bounds(width, height int, foreground string, placement Placement) ui.Rect {
	if foreground == "" || width <= 0 || height <= 0 {
		return ui.Rect{}
	}
	fgLines := strings.Split(foreground, "\n")

	overlayWidth := placement.Width
	if overlayWidth <= 0 {
		for _, line := range fgLines {
			if w := lipgloss.Width(line); w > overlayWidth {
				overlayWidth = w
			}
		}
	}
	if overlayWidth <= 0 {
		return ui.Rect{}
	}
	if overlayWidth > width {
		overlayWidth = width
	}

	overlayHeight := placement.Height
	if overlayHeight <= 0 {
		overlayHeight = len(fgLines)
	}
	if overlayHeight > height {
		overlayHeight = height
	}

	offsetX, offsetY := computeOffsets(width, height, overlayWidth, overlayHeight, placement)
	return ui.Rect{X: offsetX, Y: offsetY, Width: overlayWidth, Height: overlayHeight}
}

// Compose overlays the foreground view atop the background while preserving
// background content outside the overlay bounds.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalizeBackground(background, width, height)
	bounds := Bounds(width, height, foreground, placement)
	if bounds.Empty() {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")
	for row := 0; row < bounds.Height; row++ {
		destY := bounds.Y + row
		if destY < 0 || destY >= len(bgLines) {
			continue
		}
		fgLine := ""
		if row < len(fgLines) {
			fgLine = fgLines[row]
		}
		fgLine = padToWidth(fgLine, bounds.Width)

		baseLine := bgLines[destY]
		prefix := ansi.Truncate(baseLine, bounds.X, "")
		suffix := ansi.Cut(baseLine, bounds.X+bounds.Width, width)
		bgLines[destY] = prefix + fgLine + suffix
	}

	return strings.Join(bgLines, "\n")
}

func normalizeBackground(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padToWidth(lines[i], width)
	}
	return lines
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currWidth := ansi.StringWidth(s)
	if currWidth >= width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-currWidth)
}

func computeOffsets(width, height, overlayWidth, overlayHeight int, placement Placement) (int, int) {
	var offsetX, offsetY int
	if placement.Absolute {
		offsetX, offsetY = placement.X, placement.Y
	} else {
		h := placement.Horizontal
		if h == 0 {
			h = lipgloss.Center
		}
		v := placement.Vertical
		if v == 0 {
			v = lipgloss.Center
		}

		offsetX = placement.MarginX
		switch h {
		case lipgloss.Right:
			offsetX = width - overlayWidth - placement.MarginX
		case lipgloss.Center:
			offsetX = (width - overlayWidth) / 2
		}

		offsetY = placement.MarginY
		switch v {
		case lipgloss.Bottom:
			offsetY = height - overlayHeight - placement.MarginY
		case lipgloss.Center:
			offsetY = (height - overlayHeight) / 2
		}
	}

	if offsetX > width-overlayWidth {
		offsetX = width - overlayWidth
	}
	if offsetX < 0 {
		offsetX = 0
	}
	if offsetY > height-overlayHeight {
		offsetY = height - overlayHeight
	}
	if offsetY < 0 {
		offsetY = 0
	}
	return offsetX, offsetY
}
