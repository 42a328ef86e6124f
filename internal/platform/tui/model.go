package tui

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/game"
	"github.com/vovakirdan/wordhunt/internal/storage"
)

const maxFeedbackLines = 3

// GameOptions configures a game screen.
type GameOptions struct {
	Config    config.Config
	Validator game.Validator
	Store     *storage.Store // Optional
	Player    string
	Seed      int64 // 0 means time-based
	Logger    *log.Logger
	Renderer  *lipgloss.Renderer // Optional, set for SSH sessions

	// StartLevel overrides the saved level when positive.
	StartLevel int

	// OpenPicker shows the level picker before the first word.
	OpenPicker bool
}

// verdictMsg carries a finished dictionary lookup back to Update.
type verdictMsg game.Verdict

type feedbackLine struct {
	text string
	kind game.FeedbackKind
}

// feed collects controller events for rendering.
type feed struct {
	game.NopListener
	lines  []feedbackLine
	banner string
}

func (f *feed) OnFeedback(msg string, kind game.FeedbackKind) {
	f.lines = append(f.lines, feedbackLine{text: msg, kind: kind})
	if len(f.lines) > maxFeedbackLines {
		f.lines = f.lines[len(f.lines)-maxFeedbackLines:]
	}
}

func (f *feed) OnWin() { f.banner = "LEVEL COMPLETE" }

func (f *feed) OnTimeExpired() { f.banner = "TIME'S UP" }

// Model is the Bubble Tea model for the game screen.
type Model struct {
	ctrl     *game.Controller
	feed     *feed
	store    *storage.Store
	player   string
	renderer *lipgloss.Renderer
	styles   styles
	keys     GameKeyMap
	help     help.Model
	cursor   int
	width    int
	height   int
	picker   *LevelPicker
	quitting bool
}

// NewModel creates the game screen and starts the first level.
func NewModel(opts GameOptions) Model {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = storage.DefaultPlayer
	}

	f := &feed{}
	gopts := game.Options{
		Validator:   opts.Validator,
		Listener:    f,
		GridParams:  opts.Config.GridParams(),
		PerLetter:   opts.Config.ScorePerLetter(),
		WinDelay:    opts.Config.Session.WinDelaySeconds,
		TimeUpDelay: opts.Config.Session.TimeUpDelaySeconds,
		Rand:        rand.New(rand.NewSource(seed)),
		Player:      player,
		Logger:      logger,
	}
	if opts.Store != nil {
		gopts.Progress = opts.Store
		gopts.Results = opts.Store
	}

	ctrl := game.New(gopts)
	ctrl.Start()
	if opts.StartLevel > 0 && opts.StartLevel != ctrl.Level() {
		ctrl.SelectLevel(opts.StartLevel)
	}

	m := Model{
		ctrl:     ctrl,
		feed:     f,
		store:    opts.Store,
		player:   player,
		renderer: opts.Renderer,
		styles:   newStyles(opts.Renderer),
		keys:     DefaultGameKeyMap(),
		help:     help.New(),
	}
	if opts.OpenPicker {
		m.openPicker()
	}
	return m
}

// Controller exposes the session controller.
func (m Model) Controller() *game.Controller {
	return m.ctrl
}

// Init starts the countdown.
func (m Model) Init() tea.Cmd {
	return tickCmd(1)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.picker != nil {
			m.picker.SetHeight(msg.Height)
		}
		return m, nil

	case TickMsg:
		// The picker pauses the countdown
		if m.picker == nil {
			m.ctrl.Tick()
			m.clearBanner()
		}
		return m, tickCmd(1)

	case verdictMsg:
		m.ctrl.Resolve(game.Verdict(msg))
		return m, nil
	}

	if m.picker != nil {
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.ctrl.Grid().Size

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Levels):
		m.ctrl.CancelSelection()
		m.openPicker()
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CancelSelection()
	case key.Matches(msg, m.keys.Select):
		if len(m.ctrl.Path()) == 0 {
			m.ctrl.PointerDown(m.cursor)
			return m, nil
		}
		return m, m.submit()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0, size)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0, size)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1, size)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1, size)
	}
	return m, nil
}

// moveCursor moves within the grid and extends an active selection.
func (m *Model) moveCursor(dRow, dCol, size int) {
	if m.cursor >= size*size {
		m.cursor = 0
	}
	row, col := m.cursor/size+dRow, m.cursor%size+dCol
	if row < 0 || row >= size || col < 0 || col >= size {
		return
	}
	m.cursor = row*size + col
	if len(m.ctrl.Path()) > 0 {
		m.ctrl.PointerEnter(m.cursor)
	}
}

// handleMouse maps drag gestures to pointer events.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	idx, hit := cellAt(m.ctrl.Grid().Size, msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !hit {
			return m, nil
		}
		m.cursor = idx
		m.ctrl.PointerDown(idx)
	case tea.MouseActionMotion:
		if hit && len(m.ctrl.Path()) > 0 {
			m.cursor = idx
			m.ctrl.PointerEnter(idx)
		}
	case tea.MouseActionRelease:
		return m, m.submit()
	}
	return m, nil
}

// submit ends the selection and schedules the lookup, if one is needed.
func (m Model) submit() tea.Cmd {
	p := m.ctrl.PointerUp()
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		return verdictMsg(p.Run(context.Background()))
	}
}

func (m *Model) openPicker() {
	var best BestScoreFunc
	if m.store != nil {
		store, player := m.store, m.player
		best = func(level int) int {
			b, err := store.BestScore(player, level)
			if err != nil {
				return 0
			}
			return b
		}
	}
	p := NewLevelPicker(m.ctrl.Catalog().Levels(), m.ctrl.Level(), best, m.height, m.renderer)
	m.picker = &p
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	p, cmd := m.picker.Update(msg)
	m.picker = &p

	if p.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if p.Closed() {
		if level, ok := p.Chosen(); ok {
			m.ctrl.SelectLevel(level)
			m.cursor = 0
		}
		m.picker = nil
	}
	return m, cmd
}

// clearBanner hides the win/time-up banner once a new level is running.
func (m Model) clearBanner() {
	if m.ctrl.State() == game.StatePlaying || m.ctrl.State() == game.StateValidating {
		m.feed.banner = ""
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.picker != nil {
		return m.picker.View()
	}

	st := m.styles
	cfg := m.ctrl.LevelConfig()
	grid := m.ctrl.Grid()
	path := m.ctrl.Path()

	var sb strings.Builder

	// Title and HUD are exactly gridTop lines tall
	sb.WriteString(st.title.Render(fmt.Sprintf("WORD HUNT  Level %d/%d", m.ctrl.Level(), m.ctrl.Catalog().Len())))
	sb.WriteString(st.dim.Render(fmt.Sprintf("  %s, %d+ letters", cfg.Difficulty, cfg.MinWordLength)))
	sb.WriteByte('\n')
	hud := fmt.Sprintf("Score %d/%d   Time %s   Words %d",
		m.ctrl.Score(), cfg.WinThreshold, formatClock(m.ctrl.TimeLeft()), len(m.ctrl.FoundWords()))
	if m.ctrl.State() == game.StateValidating {
		hud += "   checking..."
	}
	sb.WriteString(st.hud.Render(hud))
	sb.WriteString("\n\n")

	sb.WriteString(renderGrid(st, grid, path, m.cursor))
	sb.WriteString("\n\n")

	if len(path) > 0 {
		sb.WriteString("  " + st.word.Render(grid.Word(path)))
	} else if m.feed.banner != "" {
		sb.WriteString("  " + st.banner.Render(m.feed.banner))
	}
	sb.WriteString("\n\n")

	width := m.width - 4
	if width <= 0 {
		width = 60
	}
	for _, line := range wrapWords(m.ctrl.FoundWords(), width) {
		sb.WriteString("  " + st.foundWord.Render(line) + "\n")
	}
	sb.WriteByte('\n')

	for _, fl := range m.feed.lines {
		sb.WriteString("  " + st.feedback[fl.kind].Render(fl.text) + "\n")
	}
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

// Run starts the Bubble Tea program with a new game screen.
func Run(opts GameOptions) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag to select letters
	)

	_, err := p.Run()
	return err
}
