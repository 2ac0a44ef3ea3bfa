package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bombmaze/internal/core"
)

// ansiCodes maps core.Color to terminal palette entries.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Palette converts screen colors to lipgloss styles for one output.
// SSH sessions each get their own so color detection follows the
// client terminal rather than the server's.
type Palette struct {
	base   lipgloss.Style
	styles map[core.Color]lipgloss.Style
}

// NewPalette builds a palette on r. A nil renderer uses the default one.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		base:   r.NewStyle(),
		styles: make(map[core.Color]lipgloss.Style, len(ansiCodes)),
	}
	for c, code := range ansiCodes {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.base
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence, and
// trailing blank cells of each row are dropped.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		end := s.Width()
		for end > 0 && s.GetCell(end-1, y).Rune == ' ' {
			end--
		}

		x := 0
		for x < end {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < end {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s with the default palette.
func RenderScreen(s *core.Screen) string {
	return NewPalette(nil).Render(s)
}
