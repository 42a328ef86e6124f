package puzzle

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/wordhunt/internal/words"
)

const (
	// Vowels is the alphabet used for vowel padding and repair.
	Vowels = "AEIOU"
	// Consonants is the alphabet used for consonant padding.
	Consonants = "BCDFGHJKLMNPQRSTVWXYZ"
)

// GridParams holds the tunable constants of grid generation, keyed by tier.
type GridParams struct {
	Sizes           map[Difficulty]int     // Grid side length
	VowelPercentage map[Difficulty]float64 // Minimum share of vowel cells
	ExtraVowels     map[Difficulty]int     // Random vowels added to the letter pool
	ExtraConsonants int                    // Random consonants added to the letter pool
	Suffixes        []string               // Seeded into expert grids
	MaxSuffixCells  int                    // Cells overwritten by a suffix
	Corpus          string                 // Letter source; empty means words.Corpus()
}

// DefaultGridParams returns the stock generation constants.
func DefaultGridParams() GridParams {
	return GridParams{
		Sizes: map[Difficulty]int{
			DifficultyEasy:   4,
			DifficultyMedium: 5,
			DifficultyHard:   5,
			DifficultyExpert: 6,
		},
		VowelPercentage: map[Difficulty]float64{
			DifficultyEasy:   0.40,
			DifficultyMedium: 0.38,
			DifficultyHard:   0.35,
			DifficultyExpert: 0.35,
		},
		ExtraVowels: map[Difficulty]int{
			DifficultyEasy:   200,
			DifficultyMedium: 250,
			DifficultyHard:   300,
			DifficultyExpert: 400,
		},
		ExtraConsonants: 300,
		Suffixes:        []string{"ING", "MENT", "TION", "NESS", "ABLE", "ER", "ED", "EST"},
		MaxSuffixCells:  3,
	}
}

// SizeFor returns the grid side length for a tier, defaulting to 4.
func (p GridParams) SizeFor(d Difficulty) int {
	if n, ok := p.Sizes[d]; ok && n > 0 {
		return n
	}
	return 4
}

// MinVowels returns the vowel quota for a tier: ceil(size² × percentage).
func (p GridParams) MinVowels(d Difficulty) int {
	size := p.SizeFor(d)
	return int(math.Ceil(float64(size*size) * p.VowelPercentage[d]))
}

// GenStats reports what happened while generating a grid.
type GenStats struct {
	MinVowels       int  // Quota the grid aimed for
	Vowels          int  // Vowels in the final grid
	Repairs         int  // Consonants replaced by vowels
	BudgetExhausted bool // Repair loop stopped before meeting the quota
	Suffix          string
}

// GenerateGrid builds a letter grid for the tier. See GenerateGridStats.
func GenerateGrid(d Difficulty, rng *rand.Rand, p GridParams) Grid {
	g, _ := GenerateGridStats(d, rng, p)
	return g
}

// GenerateGridStats builds a letter grid and reports generation stats.
//
// Letters are drawn uniformly from a pool made of the corpus letters plus
// a block of random vowels and a block of random consonants. Consonant
// cells are then swapped for vowels until the quota is met or 2×size²
// attempts are spent; an unmet quota is accepted. Expert grids finally get
// the first letters of a random suffix written into random cells.
func GenerateGridStats(d Difficulty, rng *rand.Rand, p GridParams) (Grid, GenStats) {
	size := p.SizeFor(d)
	area := size * size
	pool := letterPool(d, rng, p)

	g := Grid{Size: size, Cells: make([]Cell, area)}
	for i := range g.Cells {
		g.Cells[i] = Cell{Letter: pool[rng.Intn(len(pool))]}
	}

	stats := GenStats{MinVowels: p.MinVowels(d)}

	// Vowel repair
	vowels := g.VowelCount()
	budget := 2 * area
	for vowels < stats.MinVowels && budget > 0 {
		budget--
		idx := rng.Intn(area)
		if IsVowel(g.Cells[idx].Letter) {
			continue
		}
		g.Cells[idx].Letter = Vowels[rng.Intn(len(Vowels))]
		stats.Repairs++
		vowels = g.VowelCount()
	}
	stats.BudgetExhausted = vowels < stats.MinVowels

	if d == DifficultyExpert && len(p.Suffixes) > 0 {
		stats.Suffix = seedSuffix(g, rng, p)
	}

	stats.Vowels = g.VowelCount()
	return g, stats
}

// letterPool assembles the weighted pool the grid is sampled from.
func letterPool(d Difficulty, rng *rand.Rand, p GridParams) []byte {
	corpus := p.Corpus
	if corpus == "" {
		corpus = words.Corpus()
	}

	extraV := p.ExtraVowels[d]
	pool := make([]byte, 0, len(corpus)+extraV+p.ExtraConsonants)
	for i := 0; i < len(corpus); i++ {
		pool = append(pool, upper(corpus[i]))
	}
	for i := 0; i < extraV; i++ {
		pool = append(pool, Vowels[rng.Intn(len(Vowels))])
	}
	for i := 0; i < p.ExtraConsonants; i++ {
		pool = append(pool, Consonants[rng.Intn(len(Consonants))])
	}
	if len(pool) == 0 {
		// Nothing configured at all; fall back to the plain alphabet.
		pool = append(pool, Vowels+Consonants...)
	}
	return pool
}

// seedSuffix writes up to MaxSuffixCells letters of a random suffix into
// distinct random cells and returns the suffix used.
func seedSuffix(g Grid, rng *rand.Rand, p GridParams) string {
	suffix := p.Suffixes[rng.Intn(len(p.Suffixes))]
	n := min(len(suffix), p.MaxSuffixCells, len(g.Cells))
	for i, idx := range rng.Perm(len(g.Cells))[:n] {
		g.Cells[idx].Letter = upper(suffix[i])
	}
	return suffix
}
