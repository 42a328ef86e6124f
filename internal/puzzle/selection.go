package puzzle

import "github.com/zyedidia/generic/mapset"

// Path is an ordered list of distinct, pairwise-adjacent cell indices.
type Path []int

// TrackState is the state of a Tracker.
type TrackState int

const (
	TrackIdle TrackState = iota
	TrackSelecting
	TrackDone
)

// String returns a human-readable name for the state.
func (s TrackState) String() string {
	switch s {
	case TrackIdle:
		return "idle"
	case TrackSelecting:
		return "selecting"
	case TrackDone:
		return "done"
	default:
		return "unknown"
	}
}

// Tracker turns pointer events into a selection path. Invalid extensions
// are refused when attempted, so a finished path always holds distinct
// indices with every consecutive pair adjacent.
type Tracker struct {
	size  int
	state TrackState
	path  Path
	used  mapset.Set[int]
}

// NewTracker creates an idle tracker for a size×size grid.
func NewTracker(size int) *Tracker {
	return &Tracker{size: size, used: mapset.New[int]()}
}

// State returns the current tracker state.
func (t *Tracker) State() TrackState {
	return t.state
}

// Path returns a copy of the path selected so far.
func (t *Tracker) Path() Path {
	out := make(Path, len(t.path))
	copy(out, t.path)
	return out
}

// Start begins a selection at index. Only valid while idle.
func (t *Tracker) Start(index int) bool {
	if t.state != TrackIdle || !t.inBounds(index) {
		return false
	}
	t.state = TrackSelecting
	t.path = Path{index}
	t.used.Put(index)
	return true
}

// Continue extends the selection with index if it is unused and adjacent
// to the last selected cell. Only valid while selecting.
func (t *Tracker) Continue(index int) bool {
	if t.state != TrackSelecting || !t.inBounds(index) || t.used.Has(index) {
		return false
	}
	if !IsAdjacent(t.size, t.path[len(t.path)-1], index) {
		return false
	}
	t.path = append(t.path, index)
	t.used.Put(index)
	return true
}

// End finishes the selection and returns the path, then resets to idle.
// ok is false when no selection was in progress.
func (t *Tracker) End() (path Path, ok bool) {
	if t.state != TrackSelecting {
		return nil, false
	}
	t.state = TrackDone
	path = t.path
	t.reset()
	return path, true
}

// Cancel drops any selection in progress.
func (t *Tracker) Cancel() {
	t.reset()
}

func (t *Tracker) reset() {
	t.state = TrackIdle
	t.path = nil
	t.used = mapset.New[int]()
}

func (t *Tracker) inBounds(index int) bool {
	return index >= 0 && index < t.size*t.size
}

// ValidPath reports whether p has distinct indices inside the grid and
// every consecutive pair adjacent.
func ValidPath(size int, p Path) bool {
	seen := mapset.New[int]()
	for i, idx := range p {
		if idx < 0 || idx >= size*size || seen.Has(idx) {
			return false
		}
		if i > 0 && !IsAdjacent(size, p[i-1], idx) {
			return false
		}
		seen.Put(idx)
	}
	return true
}
