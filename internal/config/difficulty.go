package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/wordhunt/internal/puzzle"
)

// TierInts holds one integer per difficulty tier.
type TierInts struct {
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
	Expert int `yaml:"expert"`
}

// Map returns the values keyed by puzzle.Difficulty.
func (t TierInts) Map() map[puzzle.Difficulty]int {
	return map[puzzle.Difficulty]int{
		puzzle.DifficultyEasy:   t.Easy,
		puzzle.DifficultyMedium: t.Medium,
		puzzle.DifficultyHard:   t.Hard,
		puzzle.DifficultyExpert: t.Expert,
	}
}

// TierFloats holds one float per difficulty tier.
type TierFloats struct {
	Easy   float64 `yaml:"easy"`
	Medium float64 `yaml:"medium"`
	Hard   float64 `yaml:"hard"`
	Expert float64 `yaml:"expert"`
}

// Map returns the values keyed by puzzle.Difficulty.
func (t TierFloats) Map() map[puzzle.Difficulty]float64 {
	return map[puzzle.Difficulty]float64{
		puzzle.DifficultyEasy:   t.Easy,
		puzzle.DifficultyMedium: t.Medium,
		puzzle.DifficultyHard:   t.Hard,
		puzzle.DifficultyExpert: t.Expert,
	}
}

// ParseDifficulty converts a user-supplied tier name.
func ParseDifficulty(s string) (puzzle.Difficulty, error) {
	d := puzzle.Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, medium, hard or expert)", s)
	}
	return d, nil
}

// Validate checks that the configuration can drive a game.
func (c Config) Validate() error {
	var errs []error
	for d, size := range c.Grid.Sizes.Map() {
		if size < 2 {
			errs = append(errs, fmt.Errorf("grid.sizes.%s must be at least 2, got %d", d, size))
		}
	}
	for d, pct := range c.Grid.VowelPercentage.Map() {
		if pct < 0 || pct > 1 {
			errs = append(errs, fmt.Errorf("grid.vowel_percentage.%s must be within [0,1], got %v", d, pct))
		}
	}
	for d, n := range c.Grid.ExtraVowels.Map() {
		if n < 0 {
			errs = append(errs, fmt.Errorf("grid.extra_vowels.%s must not be negative", d))
		}
	}
	if c.Grid.ExtraConsonants < 0 {
		errs = append(errs, errors.New("grid.extra_consonants must not be negative"))
	}
	if len(c.Grid.Suffixes) == 0 {
		errs = append(errs, errors.New("grid.suffixes must not be empty"))
	}
	for d, n := range c.Scoring.PerLetter.Map() {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("scoring.per_letter.%s must be positive", d))
		}
	}
	if c.Session.WinDelaySeconds < 0 || c.Session.TimeUpDelaySeconds < 0 {
		errs = append(errs, errors.New("session delays must not be negative"))
	}
	if c.Dictionary.URL != "" && !strings.Contains(c.Dictionary.URL, "%s") {
		errs = append(errs, errors.New("dictionary.url must contain %s"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
