package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wordhunt/internal/puzzle"
)

const pickerMinHeight = 6

// BestScoreFunc returns the best recorded score for a level, 0 if none.
type BestScoreFunc func(level int) int

// LevelPicker is a table of the level catalog.
type LevelPicker struct {
	levels []puzzle.LevelConfig
	table  table.Model
	help   help.Model
	keys   PickerKeyMap
	title  lipgloss.Style
	chosen int
	closed bool
	quit   bool
}

// NewLevelPicker creates a picker with the cursor on current (1-based).
// best may be nil.
func NewLevelPicker(levels []puzzle.LevelConfig, current int, best BestScoreFunc, height int, r *lipgloss.Renderer) LevelPicker {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Tier", Width: 8},
		{Title: "Min", Width: 4},
		{Title: "Target", Width: 7},
		{Title: "Time", Width: 6},
		{Title: "x", Width: 4},
		{Title: "Best", Width: 6},
	}

	rows := make([]table.Row, 0, len(levels))
	for _, lvl := range levels {
		bestCell := "-"
		if best != nil {
			if b := best(lvl.Level); b > 0 {
				bestCell = strconv.Itoa(b)
			}
		}
		rows = append(rows, table.Row{
			strconv.Itoa(lvl.Level),
			string(lvl.Difficulty),
			strconv.Itoa(lvl.MinWordLength),
			strconv.Itoa(lvl.WinThreshold),
			formatClock(lvl.TimeLimitSeconds),
			fmt.Sprintf("%.1f", lvl.ScoreMultiplier),
			bestCell,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(pickerTableHeight(height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	if current >= 1 && current <= len(levels) {
		t.SetCursor(current - 1)
	}

	return LevelPicker{
		levels: levels,
		table:  t,
		help:   help.New(),
		keys:   DefaultPickerKeyMap(),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	}
}

// Update handles picker input.
func (p LevelPicker) Update(msg tea.Msg) (LevelPicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.quit = true
			return p, nil
		case key.Matches(msg, p.keys.Back):
			p.closed = true
			return p, nil
		case key.Matches(msg, p.keys.Select):
			p.chosen = p.table.Cursor() + 1
			p.closed = true
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// SetHeight fits the table to a new terminal height.
func (p *LevelPicker) SetHeight(height int) {
	p.table.SetHeight(pickerTableHeight(height))
}

// pickerTableHeight leaves room for the title, help and margins.
func pickerTableHeight(height int) int {
	return max(height-6, pickerMinHeight)
}

// Chosen returns the selected level, if one was picked.
func (p LevelPicker) Chosen() (int, bool) {
	return p.chosen, p.chosen > 0
}

// Closed reports whether the picker was dismissed or a level was picked.
func (p LevelPicker) Closed() bool {
	return p.closed
}

// Quitting reports whether the user asked to quit.
func (p LevelPicker) Quitting() bool {
	return p.quit
}

// Cursor returns the highlighted level (1-based).
func (p LevelPicker) Cursor() int {
	return p.table.Cursor() + 1
}

// View renders the picker.
func (p LevelPicker) View() string {
	desc := ""
	if c := p.table.Cursor(); c >= 0 && c < len(p.levels) {
		desc = p.levels[c].Description
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.title.Render("Choose a level"),
		"",
		p.table.View(),
		desc,
		p.help.View(p.keys),
	)
}
