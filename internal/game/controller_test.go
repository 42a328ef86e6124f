package game

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/wordhunt/internal/dictionary"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/storage"
)

// testLetters lays out a 4×4 grid:
//
//	C A T S
//	H O M E
//	B I R D
//	X Y Z Q
const testLetters = "CATSHOMEBIRDXYZQ"

var (
	pathCAT  = puzzle.Path{0, 1, 2}
	pathTAC  = puzzle.Path{2, 1, 0}
	pathHOME = puzzle.Path{4, 5, 6, 7}
	pathBIRD = puzzle.Path{8, 9, 10, 11}
)

// fakeValidator answers from a fixed word set and counts lookups.
type fakeValidator struct {
	words     map[string]bool
	acceptAll bool
	source    dictionary.Source
	calls     int
}

func (f *fakeValidator) Validate(_ context.Context, word string, cache *dictionary.Cache) dictionary.Result {
	key := strings.ToLower(word)
	if v, ok := cache.Get(key); ok {
		return dictionary.Result{Word: key, Valid: v, Source: dictionary.SourceCache}
	}
	f.calls++
	valid := f.acceptAll || f.words[key]
	cache.Put(key, valid)
	r := dictionary.Result{Word: key, Valid: valid, Source: f.source}
	if f.source == dictionary.SourceFallback {
		r.Err = dictionary.ErrDisabled
	}
	return r
}

type memProgress struct {
	levels map[string]int
	saves  []int
	err    error
}

func (m *memProgress) LoadLevel(player string) (int, error) {
	return m.levels[player], m.err
}

func (m *memProgress) SaveLevel(player string, level int) error {
	if m.err != nil {
		return m.err
	}
	m.levels[player] = level
	m.saves = append(m.saves, level)
	return nil
}

type recorder struct {
	NopListener
	feedback  []string
	kinds     []FeedbackKind
	ready     int
	wins      int
	expired   int
	lastScore int
	lastGrid  puzzle.Grid
}

func (r *recorder) OnReady() { r.ready++ }
func (r *recorder) OnWin() { r.wins++ }
func (r *recorder) OnTimeExpired() { r.expired++ }

func (r *recorder) OnFeedback(msg string, kind FeedbackKind) {
	r.feedback = append(r.feedback, msg)
	r.kinds = append(r.kinds, kind)
}

func (r *recorder) OnScoreChanged(score int) { r.lastScore = score }
func (r *recorder) OnCellsChanged(g puzzle.Grid) { r.lastGrid = g }

func (r *recorder) last() (string, FeedbackKind) {
	if len(r.feedback) == 0 {
		return "", -1
	}
	return r.feedback[len(r.feedback)-1], r.kinds[len(r.kinds)-1]
}

func (r *recorder) saw(sub string) bool {
	for _, f := range r.feedback {
		if strings.Contains(f, sub) {
			return true
		}
	}
	return false
}

type harness struct {
	c         *Controller
	v         *fakeValidator
	rec       *recorder
	progress  *memProgress
	generated int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		v:        &fakeValidator{words: map[string]bool{"cat": true, "home": true, "bird": true}, source: dictionary.SourceRemote},
		rec:      &recorder{},
		progress: &memProgress{levels: map[string]int{}},
	}
	h.c = New(Options{
		Validator:   h.v,
		Progress:    h.progress,
		Listener:    h.rec,
		WinDelay:    3,
		TimeUpDelay: 3,
		Generate: func(puzzle.Difficulty) puzzle.Grid {
			h.generated++
			return puzzle.NewGrid(4, testLetters)
		},
	})
	return h
}

// play selects path and submits it synchronously.
func (h *harness) play(t *testing.T, path puzzle.Path) {
	t.Helper()
	if !h.c.PointerDown(path[0]) {
		t.Fatalf("PointerDown(%d) refused in state %v", path[0], h.c.State())
	}
	for _, idx := range path[1:] {
		if !h.c.PointerEnter(idx) {
			t.Fatalf("PointerEnter(%d) refused", idx)
		}
	}
	h.c.Submit(context.Background())
}

// pend selects path and returns the pending lookup without running it.
func (h *harness) pend(t *testing.T, path puzzle.Path) *Pending {
	t.Helper()
	h.c.PointerDown(path[0])
	for _, idx := range path[1:] {
		h.c.PointerEnter(idx)
	}
	return h.c.PointerUp()
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.c.Tick()
	}
}

func TestStartDefaultsToLevelOne(t *testing.T) {
	h := newHarness(t)
	if h.c.State() != StateIdle {
		t.Fatalf("new controller state = %v, want idle", h.c.State())
	}

	h.c.Start()

	if h.c.Level() != 1 || h.c.State() != StatePlaying {
		t.Errorf("after Start: level %d state %v, want 1 playing", h.c.Level(), h.c.State())
	}
	if h.c.TimeLeft() != 180 {
		t.Errorf("TimeLeft() = %d, want 180", h.c.TimeLeft())
	}
	if h.rec.ready != 1 {
		t.Errorf("OnReady fired %d times, want 1", h.rec.ready)
	}
	if h.c.SessionID() == "" {
		t.Error("session id should be set")
	}
}

func TestStartLoadsProgressAndReadyOnce(t *testing.T) {
	h := newHarness(t)
	h.progress.levels[storage.DefaultPlayer] = 6

	h.c.Start()
	first := h.c.SessionID()
	h.c.Start()

	if h.c.Level() != 6 {
		t.Errorf("Level() = %d, want persisted 6", h.c.Level())
	}
	if h.c.LevelConfig().Difficulty != puzzle.DifficultyMedium {
		t.Errorf("difficulty = %s, want medium", h.c.LevelConfig().Difficulty)
	}
	if h.rec.ready != 1 {
		t.Errorf("OnReady fired %d times, want 1", h.rec.ready)
	}
	if h.c.SessionID() == first {
		t.Error("each session should get a new id")
	}
}

func TestStartSurvivesProgressError(t *testing.T) {
	h := newHarness(t)
	h.progress.err = errors.New("disk on fire")

	h.c.Start()

	if h.c.Level() != 1 || h.c.State() != StatePlaying {
		t.Errorf("level %d state %v, want 1 playing", h.c.Level(), h.c.State())
	}
}

func TestAcceptedWordThenAlreadyFound(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	h.play(t, pathCAT)

	if h.c.Score() != 30 {
		t.Fatalf("Score() = %d, want 30", h.c.Score())
	}
	if h.rec.lastScore != 30 {
		t.Errorf("OnScoreChanged last = %d, want 30", h.rec.lastScore)
	}
	if msg, kind := h.rec.last(); msg != "+30 CAT" || kind != FeedbackSuccess {
		t.Errorf("feedback = %q (%v), want +30 CAT success", msg, kind)
	}
	for _, idx := range pathCAT {
		if !h.rec.lastGrid.Cells[idx].Found {
			t.Errorf("cell %d should be marked found", idx)
		}
	}
	if got := h.c.FoundWords(); len(got) != 1 || got[0] != "CAT" {
		t.Errorf("FoundWords() = %v, want [CAT]", got)
	}

	h.play(t, pathCAT)

	if h.c.Score() != 30 {
		t.Errorf("Score() after duplicate = %d, want 30", h.c.Score())
	}
	if msg, kind := h.rec.last(); msg != "Already found: CAT" || kind != FeedbackError {
		t.Errorf("feedback = %q (%v), want already found error", msg, kind)
	}
	if h.v.calls != 1 {
		t.Errorf("validator calls = %d, want 1", h.v.calls)
	}
}

func TestTooShortNeverValidates(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	h.play(t, puzzle.Path{0, 1})

	if msg, kind := h.rec.last(); !strings.HasPrefix(msg, "Too short") || kind != FeedbackError {
		t.Errorf("feedback = %q (%v), want too short error", msg, kind)
	}
	if h.v.calls != 0 {
		t.Errorf("validator calls = %d, want 0", h.v.calls)
	}

	// A single cell is not a candidate at all
	before := len(h.rec.feedback)
	h.c.PointerDown(5)
	if p := h.c.PointerUp(); p != nil {
		t.Error("single-cell selection should not be submitted")
	}
	if len(h.rec.feedback) != before {
		t.Error("single-cell selection should not produce feedback")
	}
}

func TestInvalidWordIsCached(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	h.play(t, pathTAC)
	if msg, kind := h.rec.last(); msg != "Not a valid word: TAC" || kind != FeedbackError {
		t.Errorf("feedback = %q (%v), want invalid word error", msg, kind)
	}
	if h.c.State() != StatePlaying || h.c.Score() != 0 {
		t.Errorf("state %v score %d, want playing 0", h.c.State(), h.c.Score())
	}

	// Second attempt is a synchronous cache hit
	h.c.PointerDown(2)
	h.c.PointerEnter(1)
	h.c.PointerEnter(0)
	if p := h.c.PointerUp(); p != nil {
		t.Error("cached verdict should resolve without a pending lookup")
	}
	if h.v.calls != 1 {
		t.Errorf("validator calls = %d, want 1", h.v.calls)
	}
}

func TestPointerIgnoresNonAdjacentCells(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	h.c.PointerDown(0)
	if h.c.PointerEnter(2) {
		t.Error("non-adjacent cell should be refused")
	}
	if h.c.PointerEnter(0) {
		t.Error("reused cell should be refused")
	}
	h.c.PointerEnter(5)
	if got := h.c.Path(); len(got) != 2 || got[0] != 0 || got[1] != 5 {
		t.Errorf("Path() = %v, want [0 5]", got)
	}
	h.c.CancelSelection()
	if len(h.c.Path()) != 0 {
		t.Error("CancelSelection should clear the path")
	}
}

func TestTimeExpiryRestartsSameLevel(t *testing.T) {
	h := newHarness(t)
	h.c.Start()
	h.play(t, pathCAT)

	h.ticks(179)
	if h.c.State() != StatePlaying || h.c.TimeLeft() != 1 {
		t.Fatalf("after 179 ticks: state %v time %d, want playing 1", h.c.State(), h.c.TimeLeft())
	}

	h.c.Tick()
	if h.c.State() != StateTimeExpired {
		t.Fatalf("state = %v, want time expired", h.c.State())
	}
	if h.rec.expired != 1 {
		t.Errorf("OnTimeExpired fired %d times, want 1", h.rec.expired)
	}
	if !h.rec.saw("Time's up") {
		t.Error("expected time's up feedback")
	}
	if h.c.PointerDown(0) {
		t.Error("selection should be refused after time ran out")
	}

	h.ticks(2)
	if h.c.State() != StateTimeExpired {
		t.Fatalf("restart happened before the delay elapsed")
	}
	h.c.Tick()

	if h.c.State() != StatePlaying {
		t.Fatalf("state = %v, want playing after restart", h.c.State())
	}
	if h.c.Level() != 1 || h.c.Score() != 0 || h.c.TimeLeft() != 180 {
		t.Errorf("after restart: level %d score %d time %d, want 1 0 180", h.c.Level(), h.c.Score(), h.c.TimeLeft())
	}
	if len(h.c.FoundWords()) != 0 {
		t.Errorf("found words should be cleared, got %v", h.c.FoundWords())
	}
	if h.generated != 2 {
		t.Errorf("grids generated = %d, want 2", h.generated)
	}
	if len(h.progress.saves) != 0 {
		t.Errorf("a loss should not persist a level, saves = %v", h.progress.saves)
	}
}

func TestWinAdvancesExactlyOnce(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	h.play(t, pathCAT)  // 30
	h.play(t, pathBIRD) // 70
	if h.c.State() != StatePlaying {
		t.Fatalf("state = %v before crossing the threshold", h.c.State())
	}
	h.play(t, pathHOME) // 110 >= 80

	if h.c.State() != StateWon {
		t.Fatalf("state = %v, want won", h.c.State())
	}
	if h.rec.wins != 1 {
		t.Errorf("OnWin fired %d times, want 1", h.rec.wins)
	}
	timeAtWin := h.c.TimeLeft()

	// Timer is stopped and no further selections count
	h.c.Tick()
	if h.c.TimeLeft() != timeAtWin {
		t.Errorf("timer kept running after win: %d -> %d", timeAtWin, h.c.TimeLeft())
	}
	if h.c.PointerDown(0) {
		t.Error("selection should be refused after winning")
	}

	h.ticks(2)

	if h.rec.wins != 1 {
		t.Errorf("OnWin fired %d times, want 1", h.rec.wins)
	}
	if h.c.Level() != 2 || h.c.State() != StatePlaying {
		t.Errorf("level %d state %v, want 2 playing", h.c.Level(), h.c.State())
	}
	if h.progress.levels[storage.DefaultPlayer] != 2 {
		t.Errorf("persisted level = %d, want 2", h.progress.levels[storage.DefaultPlayer])
	}
	if h.generated != 2 {
		t.Errorf("grids generated = %d, want 2", h.generated)
	}
	if h.c.Score() != 0 {
		t.Errorf("Score() = %d, want 0 on the new level", h.c.Score())
	}
}

func TestWinOnLastLevelStaysCapped(t *testing.T) {
	h := newHarness(t)
	h.v.acceptAll = true
	h.c.Start()
	h.c.SelectLevel(20)

	// Level 20: 7 letters × 20 × 3.3 = 462 per word, threshold 1500
	paths := []puzzle.Path{
		{0, 1, 2, 3, 7, 6, 5},
		{8, 9, 10, 11, 15, 14, 13},
		{4, 5, 6, 7, 11, 10, 9},
		{12, 13, 14, 15, 11, 10, 9},
	}
	for _, p := range paths {
		h.play(t, p)
	}
	if h.c.State() != StateWon {
		t.Fatalf("state = %v score %d, want won", h.c.State(), h.c.Score())
	}

	h.ticks(3)

	if h.c.Level() != 20 {
		t.Errorf("Level() = %d, want capped at 20", h.c.Level())
	}
	if h.progress.levels[storage.DefaultPlayer] != 20 {
		t.Errorf("persisted level = %d, want 20", h.progress.levels[storage.DefaultPlayer])
	}
}

func TestSelectLevelClampsAndPersists(t *testing.T) {
	h := newHarness(t)
	h.c.Start()
	h.play(t, pathCAT)

	h.c.SelectLevel(99)
	if h.c.Level() != 20 || h.c.Score() != 0 {
		t.Errorf("level %d score %d, want 20 0", h.c.Level(), h.c.Score())
	}
	h.c.SelectLevel(-3)
	if h.c.Level() != 1 {
		t.Errorf("Level() = %d, want 1", h.c.Level())
	}
	if want := []int{20, 1}; len(h.progress.saves) != 2 || h.progress.saves[0] != want[0] || h.progress.saves[1] != want[1] {
		t.Errorf("saves = %v, want %v", h.progress.saves, want)
	}
}

func TestStaleVerdictAfterReset(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	p := h.pend(t, pathCAT)
	if p == nil || h.c.State() != StateValidating {
		t.Fatalf("expected a pending lookup, state %v", h.c.State())
	}

	h.c.SelectLevel(1)

	if h.c.Resolve(p.Run(context.Background())) {
		t.Error("verdict from a previous session should be dropped")
	}
	if h.c.Score() != 0 || len(h.c.FoundWords()) != 0 {
		t.Errorf("stale verdict changed the session: score %d found %v", h.c.Score(), h.c.FoundWords())
	}
}

func TestStaleVerdictAfterTimeExpiry(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	p := h.pend(t, pathCAT)
	h.ticks(180)
	if h.c.State() != StateTimeExpired {
		t.Fatalf("state = %v, want time expired", h.c.State())
	}

	if h.c.Resolve(p.Run(context.Background())) {
		t.Error("verdict arriving after time ran out should be dropped")
	}
	if h.c.Score() != 0 {
		t.Errorf("Score() = %d, want 0", h.c.Score())
	}
}

func TestSecondSubmissionRejectedWhileValidating(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	first := h.pend(t, pathCAT)
	if first == nil {
		t.Fatal("expected a pending lookup")
	}

	if second := h.pend(t, pathBIRD); second != nil {
		t.Fatal("second submission should be rejected while validating")
	}
	if msg, kind := h.rec.last(); !strings.HasPrefix(msg, "Still checking") || kind != FeedbackInfo {
		t.Errorf("feedback = %q (%v), want still checking info", msg, kind)
	}

	done := make(chan Verdict)
	go func() { done <- first.Run(context.Background()) }()
	if !h.c.Resolve(<-done) {
		t.Fatal("current verdict should be applied")
	}

	if h.c.Score() != 30 {
		t.Errorf("Score() = %d, want 30 (only CAT)", h.c.Score())
	}
	if h.c.State() != StatePlaying {
		t.Errorf("state = %v, want playing", h.c.State())
	}
	if h.v.calls != 1 {
		t.Errorf("validator calls = %d, want 1", h.v.calls)
	}
}

func TestTimerRunsWhileValidating(t *testing.T) {
	h := newHarness(t)
	h.c.Start()

	p := h.pend(t, pathCAT)
	h.ticks(5)
	if h.c.TimeLeft() != 175 {
		t.Errorf("TimeLeft() = %d, want 175", h.c.TimeLeft())
	}
	if !h.c.Resolve(p.Run(context.Background())) {
		t.Error("verdict should still apply before time runs out")
	}
}

func TestFallbackVerdictEmitsNotice(t *testing.T) {
	h := newHarness(t)
	h.v.source = dictionary.SourceFallback
	h.c.Start()

	h.play(t, pathCAT)

	if h.c.Score() != 30 {
		t.Errorf("Score() = %d, want 30", h.c.Score())
	}
	if !h.rec.saw("Dictionary unavailable") {
		t.Errorf("expected an offline notice, got %v", h.rec.feedback)
	}
	if msg, kind := h.rec.last(); msg != "+30 CAT" || kind != FeedbackSuccess {
		t.Errorf("feedback = %q (%v), want +30 CAT last", msg, kind)
	}
}

func TestResultsRecordedInStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	v := &fakeValidator{words: map[string]bool{"cat": true, "home": true, "bird": true}, source: dictionary.SourceRemote}
	c := New(Options{
		Validator: v,
		Progress:  store,
		Results:   store,
		Player:    "alice",
		Generate: func(puzzle.Difficulty) puzzle.Grid {
			return puzzle.NewGrid(4, testLetters)
		},
	})
	c.Start()

	for _, p := range []puzzle.Path{pathCAT, pathBIRD, pathHOME} {
		c.PointerDown(p[0])
		for _, idx := range p[1:] {
			c.PointerEnter(idx)
		}
		c.Submit(context.Background())
	}
	if c.State() != StateWon {
		t.Fatalf("state = %v, want won", c.State())
	}
	c.Tick() // zero delay: advance straight away

	level, err := store.LoadLevel("alice")
	if err != nil || level != 2 {
		t.Errorf("LoadLevel() = %d, %v, want 2", level, err)
	}
	results, err := store.RecentResults("alice", 5)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if !r.Won || r.Score != 110 || r.WordsFound != 3 || r.Level != 1 || r.Threshold != 80 {
		t.Errorf("unexpected result row: %+v", r)
	}
}
