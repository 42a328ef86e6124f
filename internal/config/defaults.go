package config

import (
	_ "embed"
)

//go:embed defaults/wordhunt.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors
// defaults/wordhunt.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Sizes:           TierInts{Easy: 4, Medium: 5, Hard: 5, Expert: 6},
			VowelPercentage: TierFloats{Easy: 0.40, Medium: 0.38, Hard: 0.35, Expert: 0.35},
			ExtraVowels:     TierInts{Easy: 200, Medium: 250, Hard: 300, Expert: 400},
			ExtraConsonants: 300,
			Suffixes:        []string{"ING", "MENT", "TION", "NESS", "ABLE", "ER", "ED", "EST"},
			MaxSuffixCells:  3,
		},
		Scoring: ScoringConfig{
			PerLetter: TierInts{Easy: 10, Medium: 12, Hard: 15, Expert: 20},
		},
		Session: SessionConfig{
			WinDelaySeconds:    3,
			TimeUpDelaySeconds: 3,
		},
		Dictionary: DictionaryConfig{
			URL:            "https://www.dictionaryapi.com/api/v3/references/collegiate/json/%s",
			TimeoutSeconds: 5,
		},
		Storage: StorageConfig{
			Path: "~/.wordhunt/wordhunt.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.wordhunt/wordhunt.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
