package epidemic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// constSource always returns the same draw.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// seqSource replays draws in order and counts how many were taken. Once the
// script runs out it keeps returning the final value.
type seqSource struct {
	vals  []float64
	taken int
}

func (s *seqSource) Float64() float64 {
	i := s.taken
	s.taken++
	if i >= len(s.vals) {
		return s.vals[len(s.vals)-1]
	}
	return s.vals[i]
}

// fillGrid builds a grid from rows of status letters: . H I R D.
func fillGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := NewGrid(len(rows))
	require.NoError(t, err)
	for r, line := range rows {
		require.Len(t, line, len(rows), "row %d must be square", r)
		for c, ch := range line {
			switch ch {
			case '.':
			case 'H':
				g.Set(r, c, Healthy, 0)
			case 'I':
				g.Set(r, c, Infected, 0)
			case 'R':
				g.Set(r, c, Recovered, 0)
			case 'D':
				g.Set(r, c, Dead, 0)
			default:
				t.Fatalf("unknown cell %q", ch)
			}
		}
	}
	return g
}

// render is the inverse of fillGrid.
func render(g *Grid) []string {
	letters := map[Health]byte{Empty: '.', Healthy: 'H', Infected: 'I', Recovered: 'R', Dead: 'D'}
	n := g.Size()
	out := make([]string, n)
	row := make([]byte, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			row[c] = letters[g.Get(r, c).Status]
		}
		out[r] = string(row)
	}
	return out
}

func requireAgeInvariant(t *testing.T, g *Grid) {
	t.Helper()
	g.ForEachCell(func(row, col int, c Cell) {
		if c.Status != Infected && c.Age != 0 {
			t.Fatalf("cell (%d,%d) is %s with age %d", row, col, c.Status, c.Age)
		}
	})
}
