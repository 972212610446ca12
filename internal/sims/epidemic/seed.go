package epidemic

import rng "epi-ca/pkg/core"

// PlacementReport describes the outcome of seeding a population.
type PlacementReport struct {
	// Requested is the population target after clamping to grid capacity.
	Requested int
	Placed    int

	// InfectedRequested is the initial infected target as asked for.
	InfectedRequested int
	Infected          int
}

// Shortfall is the number of individuals the bounded probe could not place.
func (r PlacementReport) Shortfall() int {
	if r.Placed >= r.Requested {
		return 0
	}
	return r.Requested - r.Placed
}

// Place scatters count Healthy individuals over empty cells of g, then infects
// a uniformly chosen subset of min(initialInfected, healthy) of them. Random
// probing is bounded to 2*N*N attempts, so a crowded grid may come up short;
// the report carries the shortfall instead of an error.
func Place(g *Grid, count, initialInfected int, src rng.Source) PlacementReport {
	var report PlacementReport
	if initialInfected > 0 {
		report.InfectedRequested = initialInfected
	}
	if count <= 0 {
		return report
	}
	capacity := g.Len()
	if count > capacity {
		count = capacity
	}
	report.Requested = count

	n := g.n
	maxAttempts := 2 * capacity
	for attempts := 0; report.Placed < count && attempts < maxAttempts; attempts++ {
		r := rng.IntN(src, n)
		c := rng.IntN(src, n)
		idx := r*n + c
		if g.cur[idx].Status == Empty {
			g.cur[idx] = Cell{Status: Healthy}
			report.Placed++
		}
	}

	healthy := make([]int, 0, report.Placed)
	for idx, cell := range g.cur {
		if cell.Status == Healthy {
			healthy = append(healthy, idx)
		}
	}
	rng.Shuffle(src, len(healthy), func(i, j int) {
		healthy[i], healthy[j] = healthy[j], healthy[i]
	})

	k := min(report.InfectedRequested, len(healthy))
	for _, idx := range healthy[:k] {
		g.cur[idx] = Cell{Status: Infected}
	}
	report.Infected = k
	return report
}
