package puzzle

import "math"

// DefaultScorePerLetter is the base value of one letter per tier.
var DefaultScorePerLetter = map[Difficulty]int{
	DifficultyEasy:   10,
	DifficultyMedium: 12,
	DifficultyHard:   15,
	DifficultyExpert: 20,
}

// Score values an accepted word:
// floor(len(word) × perLetter[difficulty] × level.ScoreMultiplier).
// A nil perLetter uses DefaultScorePerLetter.
func Score(word string, d Difficulty, level LevelConfig, perLetter map[Difficulty]int) int {
	if perLetter == nil {
		perLetter = DefaultScorePerLetter
	}
	raw := float64(len(word)) * float64(perLetter[d]) * level.ScoreMultiplier
	// Nudge before flooring so 3×10×1.1 stays 33 and not 32.999...
	return int(math.Floor(raw + 1e-9))
}

// EvaluateWin reports whether score reaches the level's win threshold.
func EvaluateWin(score int, level LevelConfig) bool {
	return score >= level.WinThreshold
}
