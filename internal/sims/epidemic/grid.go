package epidemic

import "fmt"

// Grid stores an N x N lattice of cells in row-major order together with a
// same-shaped scratch buffer for the generation being computed.
type Grid struct {
	n   int
	cur []Cell
	nxt []Cell
}

// NewGrid allocates an all-Empty grid of size x size cells.
func NewGrid(size int) (*Grid, error) {
	g := &Grid{}
	if err := g.Allocate(size); err != nil {
		return nil, err
	}
	return g, nil
}

// Allocate replaces the lattice with a fresh all-Empty one. Any prior state is
// dropped. On error the existing buffers are left untouched.
func (g *Grid) Allocate(size int) error {
	if size <= 0 {
		return &ConfigError{Field: "size", Reason: fmt.Sprintf("grid size must be positive, got %d", size)}
	}
	total := size * size
	g.n = size
	g.cur = make([]Cell, total)
	g.nxt = make([]Cell, total)
	return nil
}

// Size returns N, the number of rows (and columns).
func (g *Grid) Size() int { return g.n }

// Len returns the number of cells, N*N.
func (g *Grid) Len() int { return len(g.cur) }

// Index returns the flattened index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.n + col }

// Coords is the inverse of Index.
func (g *Grid) Coords(idx int) (row, col int) { return idx / g.n, idx % g.n }

// Get returns the committed cell at (row, col). Coordinates outside the grid
// panic; callers validate against Size.
func (g *Grid) Get(row, col int) Cell {
	g.mustContain(row, col)
	return g.cur[g.Index(row, col)]
}

// Set writes the committed cell at (row, col). A non-zero age is only legal
// for Infected cells; anything else is a programming error and panics.
func (g *Grid) Set(row, col int, status Health, age int) {
	g.mustContain(row, col)
	g.cur[g.Index(row, col)] = makeCell(status, age)
}

// SnapshotForNextTick primes the scratch buffer with a copy of the committed
// one so cells the step leaves alone carry forward unchanged.
func (g *Grid) SnapshotForNextTick() {
	copy(g.nxt, g.cur)
}

// Commit swaps the scratch buffer in as the committed generation.
func (g *Grid) Commit() {
	g.cur, g.nxt = g.nxt, g.cur
}

// ForEachCell visits every committed cell in row-major order.
func (g *Grid) ForEachCell(visit func(row, col int, c Cell)) {
	for idx, c := range g.cur {
		visit(idx/g.n, idx%g.n, c)
	}
}

// CountStatus returns how many committed cells hold status.
func (g *Grid) CountStatus(status Health) int {
	n := 0
	for _, c := range g.cur {
		if c.Status == status {
			n++
		}
	}
	return n
}

func (g *Grid) next(idx int) Cell { return g.nxt[idx] }

func (g *Grid) writeNext(idx int, status Health, age int) {
	g.nxt[idx] = makeCell(status, age)
}

func (g *Grid) mustContain(row, col int) {
	if row < 0 || row >= g.n || col < 0 || col >= g.n {
		panic(fmt.Sprintf("epidemic: cell (%d,%d) outside %dx%d grid", row, col, g.n, g.n))
	}
}

func makeCell(status Health, age int) Cell {
	if !status.Valid() {
		panic(fmt.Sprintf("epidemic: invalid health status %d", status))
	}
	if age < 0 {
		panic(fmt.Sprintf("epidemic: negative infection age %d", age))
	}
	if status != Infected && age != 0 {
		panic(fmt.Sprintf("epidemic: infection age %d on %s cell", age, status))
	}
	return Cell{Status: status, Age: age}
}
