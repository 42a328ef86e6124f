// Package game holds the word-hunt session controller: the owner of the
// timer, score, grid, found words and level progression.
//
// The controller is not safe for concurrent use. One goroutine (the UI loop
// or a test) drives it with pointer events and Tick; only Pending.Run may
// execute elsewhere.
package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/wordhunt/internal/dictionary"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/storage"
)

// Default delays, in ticks, before the next level session starts.
const (
	DefaultWinDelay    = 3
	DefaultTimeUpDelay = 3
)

// Options configures a Controller. Validator is required.
type Options struct {
	Validator Validator
	Progress  ProgressStore  // Optional
	Results   ResultRecorder // Optional
	Listener  Listener       // Optional

	Catalog    *puzzle.Catalog
	GridParams puzzle.GridParams
	PerLetter  map[puzzle.Difficulty]int

	// Generate overrides grid generation.
	Generate func(d puzzle.Difficulty) puzzle.Grid

	WinDelay    int // Ticks between winning and the next level
	TimeUpDelay int // Ticks between time running out and the restart

	Rand   *rand.Rand
	Player string
	Logger *log.Logger
}

// Controller runs level sessions.
type Controller struct {
	validator Validator
	progress  ProgressStore
	results   ResultRecorder
	listener  Listener
	catalog   *puzzle.Catalog
	perLetter map[puzzle.Difficulty]int
	generate  func(d puzzle.Difficulty) puzzle.Grid
	player    string
	logger    *log.Logger

	winDelay    int
	timeUpDelay int

	// Session state
	state     State
	level     int
	cfg       puzzle.LevelConfig
	score     int
	timeLeft  int
	delay     int
	grid      puzzle.Grid
	found     mapset.Set[string]
	cache     *dictionary.Cache
	tracker   *puzzle.Tracker
	sessionID string
	gen       uint64
	ready     bool
}

// New creates an idle controller. Call Start to begin playing.
func New(opts Options) *Controller {
	c := &Controller{
		validator:   opts.Validator,
		progress:    opts.Progress,
		results:     opts.Results,
		listener:    opts.Listener,
		catalog:     opts.Catalog,
		perLetter:   opts.PerLetter,
		generate:    opts.Generate,
		player:      opts.Player,
		logger:      opts.Logger,
		winDelay:    opts.WinDelay,
		timeUpDelay: opts.TimeUpDelay,
		level:       1,
		found:       mapset.New[string](),
		cache:       dictionary.NewCache(),
	}
	if c.listener == nil {
		c.listener = NopListener{}
	}
	if c.catalog == nil {
		c.catalog = puzzle.NewCatalog()
	}
	if c.perLetter == nil {
		c.perLetter = puzzle.DefaultScorePerLetter
	}
	if c.player == "" {
		c.player = storage.DefaultPlayer
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.winDelay < 0 {
		c.winDelay = DefaultWinDelay
	}
	if c.timeUpDelay < 0 {
		c.timeUpDelay = DefaultTimeUpDelay
	}
	if c.generate == nil {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		params := opts.GridParams
		if len(params.Sizes) == 0 {
			params = puzzle.DefaultGridParams()
		}
		c.generate = func(d puzzle.Difficulty) puzzle.Grid {
			return puzzle.GenerateGrid(d, rng, params)
		}
	}
	return c
}

// Start loads the persisted level and begins the first session.
// OnReady is emitted the first time Start is called.
func (c *Controller) Start() {
	level := 1
	if c.progress != nil {
		saved, err := c.progress.LoadLevel(c.player)
		if err != nil {
			c.logger.Warn("could not load progress", "player", c.player, "error", err)
		} else if saved > 0 {
			level = saved
		}
	}

	c.InitGame(level)

	if !c.ready {
		c.ready = true
		c.listener.OnReady()
	}
}

// InitGame starts a fresh session on level: full timer, zero score, empty
// found words and cache, new grid. Verdicts from earlier sessions are ignored.
func (c *Controller) InitGame(level int) {
	c.level = c.catalog.Clamp(level)
	c.cfg = c.catalog.Get(c.level)
	c.gen++
	c.sessionID = uuid.NewString()
	c.score = 0
	c.timeLeft = c.cfg.TimeLimitSeconds
	c.delay = 0
	c.found = mapset.New[string]()
	c.cache = dictionary.NewCache()
	c.grid = c.generate(c.cfg.Difficulty)
	c.tracker = puzzle.NewTracker(c.grid.Size)
	c.state = StatePlaying

	c.logger.Debug("level started",
		"level", c.level,
		"difficulty", c.cfg.Difficulty,
		"size", c.grid.Size,
		"session", c.sessionID,
	)

	c.listener.OnCellsChanged(c.grid.Clone())
	c.listener.OnScoreChanged(c.score)
	c.listener.OnFeedback(fmt.Sprintf("Level %d: %s", c.level, c.cfg.Description), FeedbackInfo)
}

// SelectLevel jumps to level n (clamped), persists it and restarts.
func (c *Controller) SelectLevel(n int) {
	n = c.catalog.Clamp(n)
	c.saveLevel(n)
	c.InitGame(n)
}

// PointerDown starts a selection at cell index.
func (c *Controller) PointerDown(index int) bool {
	if !c.selectable() {
		return false
	}
	return c.tracker.Start(index)
}

// PointerEnter extends the selection to cell index when it is adjacent and unused.
func (c *Controller) PointerEnter(index int) bool {
	if !c.selectable() {
		return false
	}
	return c.tracker.Continue(index)
}

// CancelSelection drops the current selection.
func (c *Controller) CancelSelection() {
	if c.tracker != nil {
		c.tracker.Cancel()
	}
}

// PointerUp finishes the selection. Local rejections and cache hits are
// resolved immediately and return nil. Otherwise the controller enters
// StateValidating and returns the lookup to run; pass its Verdict to Resolve.
func (c *Controller) PointerUp() *Pending {
	if !c.selectable() {
		return nil
	}
	path, ok := c.tracker.End()
	if !ok || len(path) < 2 {
		return nil
	}

	word := c.grid.Word(path)

	if c.state == StateValidating {
		c.listener.OnFeedback(fmt.Sprintf("Still checking the last word, %s was not submitted", word), FeedbackInfo)
		return nil
	}
	if len(path) < c.cfg.MinWordLength {
		c.listener.OnFeedback(fmt.Sprintf("Too short: words need at least %d letters", c.cfg.MinWordLength), FeedbackError)
		return nil
	}
	if c.found.Has(word) {
		c.listener.OnFeedback(fmt.Sprintf("Already found: %s", word), FeedbackError)
		return nil
	}

	if valid, hit := c.cache.Get(word); hit {
		c.apply(word, path, dictionary.Result{Word: word, Valid: valid, Source: dictionary.SourceCache})
		return nil
	}

	c.state = StateValidating
	return &Pending{
		Word:      word,
		Path:      path,
		gen:       c.gen,
		cache:     c.cache,
		validator: c.validator,
	}
}

// Resolve applies a verdict. It reports false when the verdict belongs to a
// session that has since been reset or has run out of time.
func (c *Controller) Resolve(v Verdict) bool {
	if v.gen != c.gen || c.state != StateValidating {
		c.logger.Debug("dropping stale verdict", "word", v.Word, "state", c.state)
		return false
	}
	c.state = StatePlaying
	c.apply(v.Word, v.Path, v.Result)
	return true
}

// Submit finishes the selection and validates it on the calling goroutine.
func (c *Controller) Submit(ctx context.Context) {
	if p := c.PointerUp(); p != nil {
		c.Resolve(p.Run(ctx))
	}
}

// Tick advances the session by one second.
func (c *Controller) Tick() {
	switch c.state {
	case StatePlaying, StateValidating:
		if c.timeLeft > 0 {
			c.timeLeft--
		}
		if c.timeLeft == 0 {
			c.expire()
		}
	case StateWon:
		c.delay--
		if c.delay <= 0 {
			next := c.catalog.Next(c.level)
			c.saveLevel(next)
			c.InitGame(next)
		}
	case StateTimeExpired:
		c.delay--
		if c.delay <= 0 {
			c.InitGame(c.level)
		}
	}
}

// apply records a verdict for word.
func (c *Controller) apply(word string, path puzzle.Path, r dictionary.Result) {
	if notice := r.Notice(); notice != "" {
		c.listener.OnFeedback(notice, FeedbackInfo)
	}

	if !r.Valid {
		c.listener.OnFeedback(fmt.Sprintf("Not a valid word: %s", word), FeedbackError)
		return
	}

	points := puzzle.Score(word, c.cfg.Difficulty, c.cfg, c.perLetter)
	c.found.Put(word)
	c.grid.MarkFound(path)
	c.score += points

	c.listener.OnCellsChanged(c.grid.Clone())
	c.listener.OnScoreChanged(c.score)
	c.listener.OnFeedback(fmt.Sprintf("+%d %s", points, word), FeedbackSuccess)

	if puzzle.EvaluateWin(c.score, c.cfg) {
		c.win()
	}
}

func (c *Controller) win() {
	c.state = StateWon
	c.delay = c.winDelay
	c.tracker.Cancel()

	c.logger.Info("level won", "level", c.level, "score", c.score, "words", c.found.Size())
	c.recordResult(true)

	c.listener.OnWin()
	c.listener.OnFeedback(fmt.Sprintf("Level %d complete with %d points!", c.level, c.score), FeedbackSuccess)
}

func (c *Controller) expire() {
	c.state = StateTimeExpired
	c.delay = c.timeUpDelay
	c.gen++ // in-flight verdicts no longer count
	c.tracker.Cancel()

	c.logger.Info("time expired", "level", c.level, "score", c.score, "target", c.cfg.WinThreshold)
	c.recordResult(false)

	c.listener.OnTimeExpired()
	c.listener.OnFeedback(fmt.Sprintf("Time's up! %d of %d points. Restarting level %d", c.score, c.cfg.WinThreshold, c.level), FeedbackInfo)
}

func (c *Controller) selectable() bool {
	return (c.state == StatePlaying || c.state == StateValidating) && c.tracker != nil
}

func (c *Controller) saveLevel(level int) {
	if c.progress == nil {
		return
	}
	if err := c.progress.SaveLevel(c.player, level); err != nil {
		c.logger.Warn("could not save progress", "player", c.player, "level", level, "error", err)
		c.listener.OnFeedback("Progress could not be saved", FeedbackInfo)
	}
}

func (c *Controller) recordResult(won bool) {
	if c.results == nil {
		return
	}
	_, err := c.results.SaveResult(storage.LevelResult{
		SessionID:    c.sessionID,
		Player:       c.player,
		Level:        c.level,
		Difficulty:   string(c.cfg.Difficulty),
		Score:        c.score,
		Threshold:    c.cfg.WinThreshold,
		Won:          won,
		WordsFound:   c.found.Size(),
		DurationSecs: c.cfg.TimeLimitSeconds - c.timeLeft,
	})
	if err != nil {
		c.logger.Warn("could not record result", "session", c.sessionID, "error", err)
	}
}

// State returns the controller state.
func (c *Controller) State() State { return c.state }

// Level returns the current 1-based level.
func (c *Controller) Level() int { return c.level }

// LevelConfig returns the current level's config.
func (c *Controller) LevelConfig() puzzle.LevelConfig { return c.cfg }

// Score returns the session score.
func (c *Controller) Score() int { return c.score }

// TimeLeft returns the seconds left on the timer.
func (c *Controller) TimeLeft() int { return c.timeLeft }

// Grid returns a copy of the grid.
func (c *Controller) Grid() puzzle.Grid { return c.grid.Clone() }

// SessionID identifies the current level session.
func (c *Controller) SessionID() string { return c.sessionID }

// Catalog returns the level catalog.
func (c *Controller) Catalog() *puzzle.Catalog { return c.catalog }

// Path returns the selection in progress.
func (c *Controller) Path() puzzle.Path {
	if c.tracker == nil {
		return nil
	}
	return c.tracker.Path()
}

// FoundWords returns the words found this session, sorted.
func (c *Controller) FoundWords() []string {
	out := make([]string, 0, c.found.Size())
	c.found.Each(func(w string) {
		out = append(out, w)
	})
	sort.Strings(out)
	return out
}
