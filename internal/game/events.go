package game

import "github.com/vovakirdan/wordhunt/internal/puzzle"

// FeedbackKind classifies a feedback message.
type FeedbackKind int

const (
	FeedbackSuccess FeedbackKind = iota
	FeedbackError
	FeedbackInfo
)

// String returns a human-readable name for the kind.
func (k FeedbackKind) String() string {
	switch k {
	case FeedbackSuccess:
		return "success"
	case FeedbackError:
		return "error"
	case FeedbackInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Listener receives the controller's outbound events. All methods are
// called on the goroutine that drives the controller.
type Listener interface {
	// OnReady fires once, after the first level has been initialised.
	OnReady()
	OnFeedback(msg string, kind FeedbackKind)
	OnWin()
	OnTimeExpired()
	// OnCellsChanged receives a copy of the grid.
	OnCellsChanged(grid puzzle.Grid)
	OnScoreChanged(score int)
}

// NopListener ignores every event. Embed it to implement only some methods.
type NopListener struct{}

func (NopListener) OnReady() {}
func (NopListener) OnFeedback(string, FeedbackKind) {}
func (NopListener) OnWin() {}
func (NopListener) OnTimeExpired() {}
func (NopListener) OnCellsChanged(puzzle.Grid) {}
func (NopListener) OnScoreChanged(int) {}

var _ Listener = NopListener{}
