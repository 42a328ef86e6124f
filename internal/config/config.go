// Package config provides YAML-based configuration loading for wordhunt,
// layered with .env files and environment overrides.
package config

import "github.com/vovakirdan/wordhunt/internal/puzzle"

// Config contains every tunable value of the game.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Session    SessionConfig    `yaml:"session"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// GridConfig defines letter-grid generation per difficulty tier.
type GridConfig struct {
	Sizes           TierInts   `yaml:"sizes"`
	VowelPercentage TierFloats `yaml:"vowel_percentage"`
	ExtraVowels     TierInts   `yaml:"extra_vowels"`
	ExtraConsonants int        `yaml:"extra_consonants"`
	Suffixes        []string   `yaml:"suffixes"`
	MaxSuffixCells  int        `yaml:"max_suffix_cells"`
}

// ScoringConfig defines the per-letter score per tier.
type ScoringConfig struct {
	PerLetter TierInts `yaml:"per_letter"`
}

// SessionConfig defines the pauses after a level ends.
type SessionConfig struct {
	WinDelaySeconds    int `yaml:"win_delay_seconds"`    // Before advancing to the next level
	TimeUpDelaySeconds int `yaml:"time_up_delay_seconds"` // Before restarting the same level
}

// DictionaryConfig defines the remote dictionary lookup.
type DictionaryConfig struct {
	URL            string `yaml:"url"` // Format string, %s is the word. Empty disables lookups.
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StorageConfig defines where progress is persisted.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Used while the TUI owns the terminal
}

// GridParams converts the grid section for the generator.
func (c Config) GridParams() puzzle.GridParams {
	return puzzle.GridParams{
		Sizes:           c.Grid.Sizes.Map(),
		VowelPercentage: c.Grid.VowelPercentage.Map(),
		ExtraVowels:     c.Grid.ExtraVowels.Map(),
		ExtraConsonants: c.Grid.ExtraConsonants,
		Suffixes:        c.Grid.Suffixes,
		MaxSuffixCells:  c.Grid.MaxSuffixCells,
	}
}

// ScorePerLetter converts the scoring section for puzzle.Score.
func (c Config) ScorePerLetter() map[puzzle.Difficulty]int {
	return c.Scoring.PerLetter.Map()
}
