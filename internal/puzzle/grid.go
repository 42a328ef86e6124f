package puzzle

import "strings"

// Cell is one letter on the grid.
type Cell struct {
	Letter byte // Uppercase ASCII letter
	Found  bool // Part of an accepted word
}

// Grid is a square letter grid stored row-major: index = row*Size + col.
type Grid struct {
	Size  int
	Cells []Cell
}

// NewGrid creates a size×size grid filled with the given letters.
// Missing letters are left as zero bytes.
func NewGrid(size int, letters string) Grid {
	g := Grid{Size: size, Cells: make([]Cell, size*size)}
	for i := 0; i < len(letters) && i < len(g.Cells); i++ {
		g.Cells[i] = Cell{Letter: upper(letters[i])}
	}
	return g
}

// Len returns the number of cells.
func (g Grid) Len() int {
	return len(g.Cells)
}

// InBounds reports whether index addresses a cell.
func (g Grid) InBounds(index int) bool {
	return index >= 0 && index < len(g.Cells)
}

// RowCol converts a cell index to its row and column.
func (g Grid) RowCol(index int) (row, col int) {
	return index / g.Size, index % g.Size
}

// Index converts a row and column to a cell index, or -1 when out of range.
func (g Grid) Index(row, col int) int {
	if row < 0 || col < 0 || row >= g.Size || col >= g.Size {
		return -1
	}
	return row*g.Size + col
}

// Word concatenates the letters along a path.
func (g Grid) Word(path Path) string {
	var sb strings.Builder
	sb.Grow(len(path))
	for _, idx := range path {
		if g.InBounds(idx) {
			sb.WriteByte(g.Cells[idx].Letter)
		}
	}
	return sb.String()
}

// MarkFound flags every cell on the path as found.
func (g Grid) MarkFound(path Path) {
	for _, idx := range path {
		if g.InBounds(idx) {
			g.Cells[idx].Found = true
		}
	}
}

// VowelCount returns how many cells hold a vowel.
func (g Grid) VowelCount() int {
	n := 0
	for _, c := range g.Cells {
		if IsVowel(c.Letter) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return Grid{Size: g.Size, Cells: cells}
}

// String renders the letters row by row, for logs and tests.
func (g Grid) String() string {
	var sb strings.Builder
	for i, c := range g.Cells {
		if i > 0 && i%g.Size == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte(c.Letter)
	}
	return sb.String()
}

// IsAdjacent reports whether cells a and b on a size×size grid touch in one
// of the eight directions. A cell is not adjacent to itself.
func IsAdjacent(size, a, b int) bool {
	if size <= 0 || a < 0 || b < 0 || a >= size*size || b >= size*size || a == b {
		return false
	}
	ar, ac := a/size, a%size
	br, bc := b/size, b%size
	return abs(ar-br) <= 1 && abs(ac-bc) <= 1
}

// IsVowel reports whether letter is A, E, I, O or U (either case).
func IsVowel(letter byte) bool {
	switch upper(letter) {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
