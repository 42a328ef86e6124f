// Package dictionary validates candidate words: a per-session cache first,
// then a remote dictionary lookup, then the local common-word list when the
// remote side cannot answer.
package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Entry is one object in a dictionary response. Responses are JSON arrays
// whose elements are either entry objects or bare suggestion strings.
type Entry struct {
	Meta EntryMeta `json:"meta"`
	Hwi  Headword  `json:"hwi"`
}

// EntryMeta carries the entry identifier ("word:1") and root forms.
type EntryMeta struct {
	ID    string   `json:"id"`
	Stems []string `json:"stems,omitempty"`
}

// Headword is the display form, possibly with syllable or stress marks.
type Headword struct {
	Hw string `json:"hw"`
}

var errNotArray = errors.New("response is not a JSON array")

// ParseEntries decodes a response body. String elements are skipped.
func ParseEntries(body []byte) ([]Entry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errNotArray
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] == '"' {
			continue
		}
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// markers are stripped from headwords before comparison.
var markers = strings.NewReplacer("*", "", "ˈ", "", "ˌ", "", "·", "", "‧", "")

// Matches reports whether any entry names word, ignoring case. An entry
// matches when its id before the colon, its headword without markers, or
// one of its stems equals word.
func (e Entry) Matches(word string) bool {
	id := e.Meta.ID
	if i := strings.IndexByte(id, ':'); i >= 0 {
		id = id[:i]
	}
	if id != "" && strings.EqualFold(id, word) {
		return true
	}
	if hw := markers.Replace(e.Hwi.Hw); hw != "" && strings.EqualFold(hw, word) {
		return true
	}
	for _, stem := range e.Meta.Stems {
		if strings.EqualFold(stem, word) {
			return true
		}
	}
	return false
}

// AnyMatch reports whether any entry matches word.
func AnyMatch(entries []Entry, word string) bool {
	for _, e := range entries {
		if e.Matches(word) {
			return true
		}
	}
	return false
}

// NewEntry builds the entry the offline server returns for a known word.
func NewEntry(word string) Entry {
	w := strings.ToLower(word)
	return Entry{
		Meta: EntryMeta{ID: w + ":1", Stems: []string{w}},
		Hwi:  Headword{Hw: w},
	}
}
