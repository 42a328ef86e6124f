package game

import (
	"context"

	"github.com/vovakirdan/wordhunt/internal/dictionary"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/storage"
)

// State is the session controller state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateValidating
	StateWon
	StateTimeExpired
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateValidating:
		return "validating"
	case StateWon:
		return "won"
	case StateTimeExpired:
		return "time expired"
	default:
		return "unknown"
	}
}

// Validator checks a word, consulting and filling cache.
// *dictionary.Client implements it.
type Validator interface {
	Validate(ctx context.Context, word string, cache *dictionary.Cache) dictionary.Result
}

// ProgressStore persists the current level per player.
// LoadLevel returns 0 when nothing was saved.
type ProgressStore interface {
	LoadLevel(player string) (int, error)
	SaveLevel(player string, level int) error
}

// ResultRecorder stores finished level sessions.
type ResultRecorder interface {
	SaveResult(r storage.LevelResult) (int64, error)
}

var (
	_ Validator      = (*dictionary.Client)(nil)
	_ ProgressStore  = (*storage.Store)(nil)
	_ ResultRecorder = (*storage.Store)(nil)
)

// Pending is a submitted word waiting for its dictionary verdict.
// Run may be called on any goroutine; it touches no controller state.
type Pending struct {
	Word      string
	Path      puzzle.Path
	gen       uint64
	cache     *dictionary.Cache
	validator Validator
}

// Run performs the lookup. It blocks for as long as the validator does.
func (p *Pending) Run(ctx context.Context) Verdict {
	return Verdict{
		Word:   p.Word,
		Path:   p.Path,
		Result: p.validator.Validate(ctx, p.Word, p.cache),
		gen:    p.gen,
	}
}

// Verdict is the outcome of a Pending lookup, applied with Controller.Resolve.
type Verdict struct {
	Word   string
	Path   puzzle.Path
	Result dictionary.Result
	gen    uint64
}
