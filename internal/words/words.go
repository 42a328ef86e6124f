// Package words owns the common-word list shared by the grid generator
// (as its letter corpus) and the dictionary fallback (as the offline word list).
//
// The list is embedded. Setting WORDHUNT_WORDS_FILE replaces it with a
// newline-separated file; lines starting with '#' are ignored.
package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed common.txt
var embeddedCommon string

// EnvWordsFile names the environment variable that overrides the embedded list.
const EnvWordsFile = "WORDHUNT_WORDS_FILE"

var (
	initOnce sync.Once
	initErr  error
	list     []string
	set      map[string]struct{}
	corpus   string
)

// Init loads the word list exactly once. It is safe to call repeatedly;
// every accessor calls it lazily.
func Init() error {
	initOnce.Do(func() {
		var words []string
		if path := os.Getenv(EnvWordsFile); path != "" {
			f, err := os.Open(path)
			if err != nil {
				initErr = fmt.Errorf("words: cannot open %s: %w", path, err)
				return
			}
			defer f.Close()
			words, err = parse(bufio.NewScanner(f))
			if err != nil {
				initErr = fmt.Errorf("words: cannot read %s: %w", path, err)
				return
			}
		} else {
			words, _ = parse(bufio.NewScanner(strings.NewReader(embeddedCommon)))
		}
		if len(words) == 0 {
			initErr = errors.New("words: word list is empty")
		}
		load(words)
	})
	return initErr
}

// load replaces the in-memory list. Callers must hold initOnce.
func load(words []string) {
	list = words
	set = make(map[string]struct{}, len(words))
	var sb strings.Builder
	for _, w := range words {
		set[w] = struct{}{}
		sb.WriteString(strings.ToUpper(w))
	}
	corpus = sb.String()
}

// parse reads one word per line, lowercases it and drops anything that is
// not purely alphabetic. Duplicates are removed, order is kept.
func parse(sc *bufio.Scanner) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, sc.Err()
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// Contains reports whether word is on the list, ignoring case.
func Contains(word string) bool {
	_ = Init()
	_, ok := set[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// Corpus returns every letter of every listed word, uppercase, concatenated.
func Corpus() string {
	_ = Init()
	return corpus
}

// List returns a sorted copy of the word list.
func List() []string {
	_ = Init()
	out := make([]string, len(list))
	copy(out, list)
	sort.Strings(out)
	return out
}

// Len returns the number of words loaded.
func Len() int {
	_ = Init()
	return len(list)
}
