// Package puzzle implements the pure word-search rules: the level catalog,
// grid generation, path selection and scoring. Nothing here holds session
// state or performs I/O.
package puzzle

import "fmt"

// Difficulty is a level tier. It drives grid size, vowel density and the
// per-letter score.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Difficulties lists every tier from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

// LevelConfig describes one level. Values are immutable once generated.
type LevelConfig struct {
	Level            int
	Difficulty       Difficulty
	MinWordLength    int
	WinThreshold     int
	TimeLimitSeconds int
	ScoreMultiplier  float64
	Description      string
}

// band is a group of four consecutive levels sharing a tier.
type band struct {
	name       string
	difficulty Difficulty
	minLen     int
	thresholds [4]int
	timeLimit  int
	multiplier float64 // multiplier of the band's first level
}

// multiplierStep is added per level inside a band.
const multiplierStep = 0.1

var bands = []band{
	{name: "Easy", difficulty: DifficultyEasy, minLen: 3, thresholds: [4]int{80, 100, 120, 140}, timeLimit: 180, multiplier: 1.0},
	{name: "Medium", difficulty: DifficultyMedium, minLen: 4, thresholds: [4]int{180, 220, 260, 300}, timeLimit: 180, multiplier: 1.5},
	{name: "Hard", difficulty: DifficultyHard, minLen: 5, thresholds: [4]int{360, 430, 500, 570}, timeLimit: 180, multiplier: 2.0},
	{name: "Expert", difficulty: DifficultyExpert, minLen: 6, thresholds: [4]int{660, 760, 860, 960}, timeLimit: 210, multiplier: 2.5},
	{name: "Master", difficulty: DifficultyExpert, minLen: 7, thresholds: [4]int{1080, 1220, 1360, 1500}, timeLimit: 200, multiplier: 3.0},
}

// GenerateLevels builds the 20-level catalog: five bands of four levels.
// Within a band the multiplier grows by a fixed step; each band starts
// from a larger base.
func GenerateLevels() []LevelConfig {
	levels := make([]LevelConfig, 0, 20)
	n := 1
	for _, b := range bands {
		for i, threshold := range b.thresholds {
			mult := b.multiplier + float64(i)*multiplierStep
			// Round to one decimal so 1.0+0.1*3 prints as 1.3.
			mult = float64(int(mult*10+0.5)) / 10
			levels = append(levels, LevelConfig{
				Level:            n,
				Difficulty:       b.difficulty,
				MinWordLength:    b.minLen,
				WinThreshold:     threshold,
				TimeLimitSeconds: b.timeLimit,
				ScoreMultiplier:  mult,
				Description: fmt.Sprintf("%s %d: score %d with words of %d+ letters",
					b.name, i+1, threshold, b.minLen),
			})
			n++
		}
	}
	return levels
}

// Catalog is the immutable level list created once at startup.
type Catalog struct {
	levels []LevelConfig
}

// NewCatalog generates the level list.
func NewCatalog() *Catalog {
	return &Catalog{levels: GenerateLevels()}
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Clamp restricts a 1-based level number to the catalog range.
func (c *Catalog) Clamp(level int) int {
	if level < 1 {
		return 1
	}
	if level > len(c.levels) {
		return len(c.levels)
	}
	return level
}

// Get returns the config for a 1-based level number, clamped to range.
func (c *Catalog) Get(level int) LevelConfig {
	return c.levels[c.Clamp(level)-1]
}

// Next returns the level after the given one, capped at the last level.
func (c *Catalog) Next(level int) int {
	return c.Clamp(level + 1)
}

// Levels returns a copy of the catalog.
func (c *Catalog) Levels() []LevelConfig {
	out := make([]LevelConfig, len(c.levels))
	copy(out, c.levels)
	return out
}
