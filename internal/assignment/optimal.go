package assignment

import (
	"math"

	"github.com/UnknownOlympus/dispatch/internal/models"
)

// Optimal assigns drivers so that the total suitability score is maximal,
// using the Hungarian method on a square matrix padded with zero-score dummies.
// Matches are reported in driver input order.
type Optimal struct {
	score Scorer
}

// NewOptimal creates an Optimal strategy.
func NewOptimal(score Scorer) *Optimal {
	return &Optimal{score: score}
}

// Assign computes a maximum total score one-to-one assignment.
func (o *Optimal) Assign(drivers []models.Driver, addresses []models.Address) models.Result {
	if len(drivers) == 0 || len(addresses) == 0 {
		return newResult([]models.Match{}, drivers, addresses)
	}

	scores := make([][]float64, len(drivers))
	for i := range drivers {
		scores[i] = make([]float64, len(addresses))
		for j := range addresses {
			scores[i][j] = o.score(drivers[i], addresses[j])
		}
	}

	colOf := maximizeAssignment(scores, len(addresses))

	matches := make([]models.Match, 0, min(len(drivers), len(addresses)))
	usedAddress := make([]bool, len(addresses))
	var leftoverDrivers []int
	for i, j := range colOf {
		if j >= len(addresses) {
			leftoverDrivers = append(leftoverDrivers, i)
			continue
		}
		usedAddress[j] = true
		matches = append(matches, candidate{driver: i, address: j, score: scores[i][j]}.match(drivers, addresses))
	}

	var leftoverAddresses []int
	for j, used := range usedAddress {
		if !used {
			leftoverAddresses = append(leftoverAddresses, j)
		}
	}

	return newResult(matches, pick(drivers, leftoverDrivers), pick(addresses, leftoverAddresses))
}

// maximizeAssignment returns, for each row of scores, the column it is assigned to.
// Columns at or beyond cols are padding and mean the row is unassigned.
func maximizeAssignment(scores [][]float64, cols int) []int {
	rows := len(scores)
	n := max(rows, cols)

	// cost[i][j] is the negated score; padding cells cost nothing.
	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		if i < rows {
			for j := 0; j < cols; j++ {
				cost[i][j] = -scores[i][j]
			}
		}
	}

	// 1-based potentials; rowOf[j] is the row matched to column j, 0 for none.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	rowOf := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		rowOf[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := rowOf[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[rowOf[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if rowOf[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			rowOf[j0] = rowOf[j1]
			j0 = j1
		}
	}

	colOf := make([]int, rows)
	for j := 1; j <= n; j++ {
		if r := rowOf[j]; r > 0 && r <= rows {
			colOf[r-1] = j - 1
		}
	}

	return colOf
}
