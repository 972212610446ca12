package epidemic

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rng "epi-ca/pkg/core"
)

func neverResolve() Params {
	return Params{InfectionRadius: 1, InfectionRate: 1, InfectionDuration: 100}
}

func TestStepInfectsOrthogonalNeighborsAtRadiusOne(t *testing.T) {
	g := fillGrid(t,
		"HHH",
		"HIH",
		"HHH",
	)
	var e Engine
	active := e.Step(g, neverResolve(), constSource(0))

	assert.True(t, active)
	assert.Equal(t, []string{
		"HIH",
		"III",
		"HIH",
	}, render(g))
	assert.Equal(t, Cell{Status: Infected, Age: 1}, g.Get(1, 1))
	for _, rc := range [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}} {
		assert.Equal(t, 0, g.Get(rc[0], rc[1]).Age, "new infection at %v must start at age 0", rc)
	}
}

func TestStepResolvingCellDoesNotTransmit(t *testing.T) {
	g := fillGrid(t,
		"HHH",
		"HIH",
		"HHH",
	)
	p := Params{InfectionRadius: 1, InfectionRate: 1, InfectionDuration: 1, MortalityRate: 1}
	var e Engine
	active := e.Step(g, p, constSource(0))

	assert.False(t, active)
	assert.Equal(t, Cell{Status: Dead}, g.Get(1, 1))
	assert.Equal(t, 8, g.CountStatus(Healthy))
}

func TestStepResolutionOutcomes(t *testing.T) {
	cases := []struct {
		name  string
		p     Params
		draws []float64
		want  Health
		taken int
	}{
		{
			name:  "dies",
			p:     Params{InfectionDuration: 1, MortalityRate: 0.3, ImmunityLevel: 0.5},
			draws: []float64{0.1},
			want:  Dead,
			taken: 1,
		},
		{
			name:  "recovers",
			p:     Params{InfectionDuration: 1, MortalityRate: 0.3, ImmunityLevel: 0.5},
			draws: []float64{0.5, 0.2},
			want:  Recovered,
			taken: 2,
		},
		{
			name:  "returns to healthy",
			p:     Params{InfectionDuration: 1, MortalityRate: 0.3, ImmunityLevel: 0.5},
			draws: []float64{0.5, 0.7},
			want:  Healthy,
			taken: 2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := fillGrid(t, "I")
			src := &seqSource{vals: tc.draws}
			var e Engine
			assert.False(t, e.Step(g, tc.p, src))
			assert.Equal(t, Cell{Status: tc.want}, g.Get(0, 0))
			assert.Equal(t, tc.taken, src.taken)
		})
	}
}

func TestStepAgesUntilDuration(t *testing.T) {
	g := fillGrid(t,
		"I..",
		"...",
		"...",
	)
	p := Params{InfectionRadius: 1, InfectionRate: 1, InfectionDuration: 5, ImmunityLevel: 1}
	var e Engine
	for want := 1; want < 5; want++ {
		require.True(t, e.Step(g, p, constSource(0.5)))
		assert.Equal(t, Cell{Status: Infected, Age: want}, g.Get(0, 0))
	}
	assert.False(t, e.Step(g, p, constSource(0.5)))
	assert.Equal(t, Cell{Status: Recovered}, g.Get(0, 0))
}

func TestStepNewInfectionsWaitForNextTick(t *testing.T) {
	g := fillGrid(t,
		"IHH",
		"...",
		"...",
	)
	var e Engine
	e.Step(g, neverResolve(), constSource(0))
	assert.Equal(t, "IIH", render(g)[0], "a cell infected this tick must not spread until the next")

	e.Step(g, neverResolve(), constSource(0))
	assert.Equal(t, "III", render(g)[0])
	assert.Equal(t, []int{2, 1, 0}, []int{g.Get(0, 0).Age, g.Get(0, 1).Age, g.Get(0, 2).Age})
}

func TestStepFirstInfectionWins(t *testing.T) {
	g := fillGrid(t,
		"...",
		"IHI",
		"...",
	)
	src := &seqSource{vals: []float64{0}}
	var e Engine
	e.Step(g, neverResolve(), src)

	assert.Equal(t, "III", render(g)[1])
	assert.Equal(t, 0, g.Get(1, 1).Age)
	assert.Equal(t, 1, src.taken, "the second infector must skip a target that is already claimed")
}

func TestStepZeroRadiusNeverTransmits(t *testing.T) {
	g := fillGrid(t,
		"HHH",
		"HIH",
		"HHH",
	)
	p := neverResolve()
	p.InfectionRadius = 0
	src := &seqSource{vals: []float64{0}}
	var e Engine
	assert.True(t, e.Step(g, p, src))
	assert.Equal(t, 8, g.CountStatus(Healthy))
	assert.Zero(t, src.taken)
}

func TestStepIgnoresNonHealthyTargets(t *testing.T) {
	g := fillGrid(t,
		"RDR",
		"DID",
		"R.R",
	)
	src := &seqSource{vals: []float64{0}}
	var e Engine
	e.Step(g, Params{InfectionRadius: 3, InfectionRate: 1, InfectionDuration: 10}, src)
	assert.Equal(t, []string{"RDR", "DID", "R.R"}, render(g))
	assert.Zero(t, src.taken)
}

func TestStepRadiusChangeRebuildsStencil(t *testing.T) {
	g := fillGrid(t,
		"HHH",
		"HIH",
		"HHH",
	)
	var e Engine
	narrow := neverResolve()
	narrow.InfectionRate = 0.5
	e.Step(g, narrow, constSource(0.99))
	require.Equal(t, 1, g.CountStatus(Infected))

	wide := neverResolve()
	wide.InfectionRadius = 1.5
	e.Step(g, wide, constSource(0))
	assert.Equal(t, 9, g.CountStatus(Infected))
}

func TestStepHugeRadiusCoversWholeGrid(t *testing.T) {
	run := func(radius float64) []string {
		rows := make([]string, 10)
		for i := range rows {
			rows[i] = "HHHHHHHHHH"
		}
		rows[0] = "IHHHHHHHHH"
		g := fillGrid(t, rows...)
		p := neverResolve()
		p.InfectionRadius = radius
		var e Engine
		require.NotPanics(t, func() { e.Step(g, p, constSource(0)) })
		return render(g)
	}

	far := run(1e9)
	assert.Equal(t, run(13), far, "13 already reaches the opposite corner of a 10x10 grid")
	for _, row := range far {
		assert.Equal(t, "IIIIIIIIII", row)
	}
}

func TestStepStencilFollowsGridSize(t *testing.T) {
	var e Engine
	p := neverResolve()
	p.InfectionRadius = 50

	small := fillGrid(t, "IH", "HH")
	e.Step(small, p, constSource(0))
	assert.Equal(t, []string{"II", "II"}, render(small))

	large := fillGrid(t,
		"IHHH",
		"HHHH",
		"HHHH",
		"HHHH",
	)
	e.Step(large, p, constSource(0))
	assert.Equal(t, 16, large.CountStatus(Infected), "a stencil built for a smaller grid must not be reused")
}

func TestTransmissionProbability(t *testing.T) {
	p := Params{InfectionRadius: 4, InfectionRate: 0.6}
	assert.Equal(t, 0.6, TransmissionProbability(p, 1))
	assert.InDelta(t, 0.45, TransmissionProbability(p, 2), 1e-12)
	assert.InDelta(t, 0.6*(1-(math.Sqrt2-1)/4), TransmissionProbability(p, math.Sqrt2), 1e-12)
	assert.Zero(t, TransmissionProbability(p, 5))
	assert.Zero(t, TransmissionProbability(p, 9))
	assert.Equal(t, 0.6, TransmissionProbability(p, 0.5), "never exceeds the base rate")

	small := Params{InfectionRadius: 0.5, InfectionRate: 0.3}
	assert.Equal(t, 0.3, TransmissionProbability(small, 1))
	assert.Zero(t, TransmissionProbability(small, 2))
}

func TestTransmissionProbabilityNonIncreasing(t *testing.T) {
	for _, radius := range []float64{0, 1, 2.5, 7} {
		p := Params{InfectionRadius: radius, InfectionRate: 0.8}
		prev := math.Inf(1)
		for d := 1.0; d <= radius+3; d += 0.05 {
			got := TransmissionProbability(p, d)
			require.LessOrEqual(t, got, prev, "radius %v distance %v", radius, d)
			require.GreaterOrEqual(t, got, 0.0)
			prev = got
		}
	}
}

func seededRun(t *testing.T, seed, stepSeed int64, ticks int) ([]Cell, []bool) {
	t.Helper()
	g, err := NewGrid(24)
	require.NoError(t, err)
	Place(g, 300, 6, rng.NewRNG(seed))
	p := Params{InfectionRadius: 2.5, InfectionRate: 0.3, InfectionDuration: 8, MortalityRate: 0.1, ImmunityLevel: 0.6}
	src := rng.NewRNG(stepSeed)
	var e Engine
	var active []bool
	for i := 0; i < ticks; i++ {
		active = append(active, e.Step(g, p, src))
	}
	return slices.Clone(g.cur), active
}

func TestStepDeterministicReplay(t *testing.T) {
	a, activeA := seededRun(t, 5, 9, 40)
	b, activeB := seededRun(t, 5, 9, 40)
	assert.Equal(t, a, b)
	assert.Equal(t, activeA, activeB)

	c, _ := seededRun(t, 5, 10, 40)
	assert.NotEqual(t, a, c, "different draw sequences should diverge")
}

func TestStepConservesPopulationAndInvariants(t *testing.T) {
	g, err := NewGrid(30)
	require.NoError(t, err)
	Place(g, 500, 10, rng.NewRNG(21))
	population := g.Len() - g.CountStatus(Empty)
	require.Positive(t, population)

	p := Params{InfectionRadius: 2, InfectionRate: 0.25, InfectionDuration: 6, MortalityRate: 0.2, ImmunityLevel: 0.5}
	src := rng.NewRNG(4)
	var e Engine
	for tick := 0; tick < 200; tick++ {
		active := e.Step(g, p, src)
		assert.Equal(t, population, g.Len()-g.CountStatus(Empty), "tick %d", tick)
		assert.Equal(t, g.CountStatus(Infected) > 0, active, "tick %d", tick)
		requireAgeInvariant(t, g)
		g.ForEachCell(func(row, col int, c Cell) {
			if c.Status == Infected && c.Age >= p.InfectionDuration {
				t.Fatalf("cell (%d,%d) outlived the infection duration: age %d", row, col, c.Age)
			}
		})
	}
}

func TestStepDoesNotAllocate(t *testing.T) {
	g, err := NewGrid(32)
	require.NoError(t, err)
	Place(g, 600, 20, rng.NewRNG(2))
	p := Params{InfectionRadius: 3, InfectionRate: 0.2, InfectionDuration: 1000}
	var src rng.Source = constSource(0.99)
	var e Engine
	e.Step(g, p, src)

	allocs := testing.AllocsPerRun(20, func() { e.Step(g, p, src) })
	assert.Zero(t, allocs)
}
