package effect

import "strings"

// MeasureFunc returns the rendered width of a line in pixels.
type MeasureFunc func(line string) float64

// WrapText greedily packs the space-separated words of text into lines no
// wider than maxWidth. A word that is wider than maxWidth on its own is kept
// whole on its own line. Empty or blank text yields a single empty line.
func WrapText(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Split(text, " ")

	var lines []string
	line := ""
	for _, word := range words {
		if line == "" {
			line = word
			continue
		}
		candidate := line + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, line)
			line = word
		} else {
			line = candidate
		}
	}

	// A blank tail only survives as the single line of blank text
	if strings.TrimSpace(line) == "" {
		if len(lines) > 0 {
			return lines
		}
		return []string{""}
	}
	return append(lines, line)
}

// Layout positions wrapped lines on a surface.
type Layout struct {
	Lines      []string
	X          float64 // Horizontal center of every line
	FirstY     float64 // Vertical middle of the first line
	LineHeight float64
}

// LineY returns the vertical middle of line i.
func (l Layout) LineY(i int) float64 {
	return l.FirstY + float64(i)*l.LineHeight
}

// LayoutLines centers the block of lines on a width x height surface.
func LayoutLines(lines []string, width, height int, lineHeight float64) Layout {
	blockHeight := lineHeight * float64(max(len(lines)-1, 0))
	return Layout{
		Lines:      lines,
		X:          float64(width) / 2,
		FirstY:     float64(height)/2 - blockHeight/2,
		LineHeight: lineHeight,
	}
}
