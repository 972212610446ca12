package core

import (
	"math"
	"sort"
)

// Offset is a displacement from a center cell inside a disc neighborhood.
type Offset struct {
	DRow, DCol int
	Dist       float64
}

// DiscStencil lists every offset within Euclidean distance radius of the
// center, excluding the center itself. Candidates come from the bounding box
// of floor(radius), cut down to maxReach cells on each side, and are ordered
// row-major, so applying the stencil visits neighbors in the same order as a
// direct box scan. An n x n lattice never needs a maxReach above n-1.
func DiscStencil(radius float64, maxReach int) []Offset {
	if radius < 1 || math.IsNaN(radius) || maxReach < 1 {
		return nil
	}
	reach := maxReach
	if radius < float64(maxReach) {
		reach = int(math.Floor(radius))
	}
	offsets := make([]Offset, 0, (2*reach+1)*(2*reach+1)-1)
	for dr := -reach; dr <= reach; dr++ {
		for dc := -reach; dc <= reach; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			d := math.Sqrt(float64(dr*dr + dc*dc))
			if d > radius {
				continue
			}
			offsets = append(offsets, Offset{DRow: dr, DCol: dc, Dist: d})
		}
	}
	sort.SliceStable(offsets, func(i, j int) bool {
		if offsets[i].DRow != offsets[j].DRow {
			return offsets[i].DRow < offsets[j].DRow
		}
		return offsets[i].DCol < offsets[j].DCol
	})
	return offsets
}

// InBounds reports whether (row, col) lies on an n x n lattice.
func InBounds(n, row, col int) bool {
	return row >= 0 && row < n && col >= 0 && col < n
}
