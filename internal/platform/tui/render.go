package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wordhunt/internal/game"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
)

// Grid layout. Each cell is drawn " X " followed by one space, and grid rows
// are separated by a blank line. Mouse hit-testing relies on these numbers.
const (
	gridLeft   = 2 // Columns before the first cell
	gridTop    = 3 // Lines above the first grid row (title, HUD, blank)
	cellWidth  = 3
	cellPitchX = cellWidth + 1
	cellPitchY = 2
)

// styles holds every lipgloss style used by the game screen.
type styles struct {
	title      lipgloss.Style
	hud        lipgloss.Style
	dim        lipgloss.Style
	cell       lipgloss.Style
	cellFound  lipgloss.Style
	cellPath   lipgloss.Style
	cellCursor lipgloss.Style
	word       lipgloss.Style
	foundWord  lipgloss.Style
	banner     lipgloss.Style
	feedback   map[game.FeedbackKind]lipgloss.Style
}

// newStyles builds styles bound to a renderer, so SSH sessions get colour
// output matched to the remote terminal.
func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return styles{
		title:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		hud:        r.NewStyle().Foreground(lipgloss.Color("252")),
		dim:        r.NewStyle().Foreground(lipgloss.Color("245")),
		cell:       r.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("238")),
		cellFound:  r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("71")),
		cellPath:   r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Bold(true),
		cellCursor: r.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
		word:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		foundWord:  r.NewStyle().Foreground(lipgloss.Color("71")),
		banner:     r.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212")),
		feedback: map[game.FeedbackKind]lipgloss.Style{
			game.FeedbackSuccess: r.NewStyle().Foreground(lipgloss.Color("10")),
			game.FeedbackError:   r.NewStyle().Foreground(lipgloss.Color("9")),
			game.FeedbackInfo:    r.NewStyle().Foreground(lipgloss.Color("12")),
		},
	}
}

// renderGrid draws the grid. Cells on path win over the cursor, which wins
// over found cells.
func renderGrid(st styles, g puzzle.Grid, path puzzle.Path, cursor int) string {
	onPath := make(map[int]bool, len(path))
	for _, idx := range path {
		onPath[idx] = true
	}

	pad := strings.Repeat(" ", gridLeft)
	var sb strings.Builder
	for row := 0; row < g.Size; row++ {
		if row > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(pad)
		for col := 0; col < g.Size; col++ {
			idx := g.Index(row, col)
			cell := g.Cells[idx]

			style := st.cell
			switch {
			case onPath[idx]:
				style = st.cellPath
			case idx == cursor:
				style = st.cellCursor
			case cell.Found:
				style = st.cellFound
			}
			sb.WriteString(style.Render(" " + string(cell.Letter) + " "))
			if col < g.Size-1 {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// cellAt maps a terminal position to a grid index. Positions on the gaps
// between cells do not hit anything.
func cellAt(size, x, y int) (int, bool) {
	x -= gridLeft
	y -= gridTop
	if x < 0 || y < 0 {
		return -1, false
	}
	if x%cellPitchX >= cellWidth || y%cellPitchY != 0 {
		return -1, false
	}
	col, row := x/cellPitchX, y/cellPitchY
	if col >= size || row >= size {
		return -1, false
	}
	return row*size + col, true
}

// formatClock renders seconds as m:ss.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// wrapWords joins words into lines no wider than width.
func wrapWords(words []string, width int) []string {
	if width < 10 {
		width = 10
	}
	var lines []string
	var line strings.Builder
	for _, w := range words {
		if line.Len() > 0 && line.Len()+1+len(w) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
