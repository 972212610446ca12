package epidemic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -4} {
		_, err := NewGrid(size)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "size", cfgErr.Field)
	}
}

func TestAllocateReplacesState(t *testing.T) {
	g := fillGrid(t, "HI", "RD")
	require.NoError(t, g.Allocate(3))
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 9, g.Len())
	assert.Equal(t, 9, g.CountStatus(Empty))

	err := g.Allocate(0)
	require.Error(t, err)
	assert.Equal(t, 3, g.Size(), "failed allocate must keep the current lattice")
}

func TestSetEnforcesAgeInvariant(t *testing.T) {
	g, err := NewGrid(2)
	require.NoError(t, err)

	g.Set(0, 0, Infected, 7)
	assert.Equal(t, Cell{Status: Infected, Age: 7}, g.Get(0, 0))

	assert.Panics(t, func() { g.Set(0, 1, Healthy, 1) })
	assert.Panics(t, func() { g.Set(0, 1, Recovered, 2) })
	assert.Panics(t, func() { g.Set(0, 1, Infected, -1) })
	assert.Panics(t, func() { g.Set(0, 1, Health(42), 0) })
	assert.Equal(t, Cell{}, g.Get(0, 1))
}

func TestGetOutOfBoundsPanics(t *testing.T) {
	g, err := NewGrid(2)
	require.NoError(t, err)
	assert.Panics(t, func() { g.Get(2, 0) })
	assert.Panics(t, func() { g.Get(0, -1) })
}

func TestSnapshotCommitSwapsBuffers(t *testing.T) {
	g := fillGrid(t,
		"H.",
		".I",
	)
	g.SnapshotForNextTick()
	g.writeNext(g.Index(0, 0), Infected, 0)

	assert.Equal(t, Healthy, g.Get(0, 0).Status, "scratch writes must stay invisible until commit")

	g.Commit()
	assert.Equal(t, []string{"I.", ".I"}, render(g))

	// The old generation is now scratch; a fresh snapshot overwrites it.
	g.SnapshotForNextTick()
	for idx := 0; idx < g.Len(); idx++ {
		assert.Equal(t, g.cur[idx], g.next(idx))
	}
}

func TestForEachCellRowMajor(t *testing.T) {
	g := fillGrid(t,
		"H..",
		".I.",
		"..D",
	)
	var order [][2]int
	var statuses []Health
	g.ForEachCell(func(row, col int, c Cell) {
		order = append(order, [2]int{row, col})
		statuses = append(statuses, c.Status)
	})
	require.Len(t, order, 9)
	assert.Equal(t, [2]int{0, 0}, order[0])
	assert.Equal(t, [2]int{0, 2}, order[2])
	assert.Equal(t, [2]int{1, 0}, order[3])
	assert.Equal(t, [2]int{2, 2}, order[8])
	assert.Equal(t, Infected, statuses[4])

	var again int
	g.ForEachCell(func(int, int, Cell) { again++ })
	assert.Equal(t, 9, again, "iteration must restart from the beginning")
}

func TestIndexCoordsRoundTrip(t *testing.T) {
	g, err := NewGrid(7)
	require.NoError(t, err)
	for idx := 0; idx < g.Len(); idx++ {
		r, c := g.Coords(idx)
		assert.Equal(t, idx, g.Index(r, c))
	}
}

func TestHealthString(t *testing.T) {
	assert.Equal(t, "infected", Infected.String())
	assert.Equal(t, "unknown", Health(9).String())
}
