package dictionary

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote lookup.
type Kind int

const (
	KindNetwork Kind = iota + 1 // Transport failure, non-2xx status, or lookups disabled
	KindParse                   // Body is not a JSON array of entries
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

var (
	// ErrNetwork matches any LookupError of KindNetwork via errors.Is.
	ErrNetwork = errors.New("dictionary: network error")
	// ErrParse matches any LookupError of KindParse via errors.Is.
	ErrParse = errors.New("dictionary: parse error")
	// ErrDisabled is wrapped when no dictionary URL is configured.
	ErrDisabled = errors.New("dictionary: remote lookup disabled")
)

// LookupError describes why a remote lookup failed.
type LookupError struct {
	Kind Kind
	Word string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("dictionary: %s error looking up %q: %v", e.Kind, e.Word, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels.
func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

func networkErr(word string, err error) error {
	return &LookupError{Kind: KindNetwork, Word: word, Err: err}
}

func parseErr(word string, err error) error {
	return &LookupError{Kind: KindParse, Word: word, Err: err}
}
