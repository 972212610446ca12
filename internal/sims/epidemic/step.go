package epidemic

import (
	"math"

	"epi-ca/internal/core"
	rng "epi-ca/pkg/core"
)

// TransmissionProbability is the chance that an infected cell converts a
// healthy one at Euclidean distance d. It equals InfectionRate for d <= 1 and
// decays linearly, reaching zero around d = radius + 1.
func TransmissionProbability(p Params, d float64) float64 {
	reach := math.Max(1, p.InfectionRadius)
	prob := p.InfectionRate * math.Max(0, 1-(d-1)/reach)
	if prob < 0 {
		return 0
	}
	if prob > p.InfectionRate {
		return p.InfectionRate
	}
	return prob
}

// Engine advances a Grid by whole ticks. It caches the neighbor stencil for
// the last radius and grid size it saw; the zero value is ready to use.
type Engine struct {
	radius  float64
	size    int
	stencil []core.Offset
	primed  bool
}

// neighborhood returns the stencil for radius, clipped to what an n x n grid
// can reach.
func (e *Engine) neighborhood(radius float64, n int) []core.Offset {
	if !e.primed || e.radius != radius || e.size != n {
		e.stencil = core.DiscStencil(radius, n-1)
		e.radius = radius
		e.size = n
		e.primed = true
	}
	return e.stencil
}

// Step computes the next generation of g against a single snapshot of the
// committed buffer and commits it. Decisions read only the committed buffer;
// writes go to the scratch buffer, where the first infection of a healthy
// cell wins. A cell that resolves this tick does not transmit. The return
// value reports whether any Infected cell remains after the commit.
func (e *Engine) Step(g *Grid, p Params, src rng.Source) bool {
	g.SnapshotForNextTick()

	n := g.n
	stencil := e.neighborhood(p.InfectionRadius, n)
	infected := 0

	for idx, cell := range g.cur {
		if cell.Status != Infected {
			continue
		}

		age := cell.Age + 1
		if age >= p.InfectionDuration {
			g.writeNext(idx, resolve(p, src), 0)
			continue
		}
		g.writeNext(idx, Infected, age)
		infected++

		row, col := idx/n, idx%n
		for _, off := range stencil {
			r, c := row+off.DRow, col+off.DCol
			if !core.InBounds(n, r, c) {
				continue
			}
			target := r*n + c
			if g.cur[target].Status != Healthy || g.next(target).Status != Healthy {
				continue
			}
			prob := TransmissionProbability(p, off.Dist)
			if prob <= 0 {
				continue
			}
			if src.Float64() < prob {
				g.writeNext(target, Infected, 0)
				infected++
			}
		}
	}

	g.Commit()
	return infected > 0
}

// resolve draws the outcome of an infection that reached its duration:
// mortality first, then immunity among survivors.
func resolve(p Params, src rng.Source) Health {
	if src.Float64() < p.MortalityRate {
		return Dead
	}
	if src.Float64() < p.ImmunityLevel {
		return Recovered
	}
	return Healthy
}
