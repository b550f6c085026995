package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type cellStyle struct {
	fg, bg core.Color
}

// ScreenRenderer converts Screen buffers to styled strings.
// Styles are cached per color pair; a ScreenRenderer is not safe for
// concurrent use.
type ScreenRenderer struct {
	r      *lipgloss.Renderer
	styles map[cellStyle]lipgloss.Style
}

// NewScreenRenderer creates a renderer bound to a lipgloss renderer, which
// decides the color profile. nil uses the default renderer.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{r: r, styles: make(map[cellStyle]lipgloss.Style)}
}

func (sr *ScreenRenderer) style(cs cellStyle) lipgloss.Style {
	if st, ok := sr.styles[cs]; ok {
		return st
	}
	st := sr.r.NewStyle()
	if cs.fg.Set {
		st = st.Foreground(lipgloss.Color(cs.fg.Hex()))
	}
	if cs.bg.Set {
		st = st.Background(lipgloss.Color(cs.bg.Hex()))
	}
	sr.styles[cs] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
// Without color support only the runes are written.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	if sr.r.ColorProfile() == termenv.Ascii {
		return s.String()
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellStyle{cell.Fg, cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellStyle{cell.Fg, cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(sr.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultRenderer = NewScreenRenderer(nil)

// RenderScreen renders with the process-wide default renderer.
func RenderScreen(s *core.Screen) string {
	return defaultRenderer.Render(s)
}
