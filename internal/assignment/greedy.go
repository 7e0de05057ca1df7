package assignment

import (
	"slices"

	"github.com/UnknownOlympus/dispatch/internal/models"
	"golang.org/x/sync/errgroup"
)

// Greedy assigns drivers in rounds. Each round every remaining driver finds its best
// remaining address, the best of those pairs is confirmed and both sides leave their
// pools. On equal scores the pair found first wins, scanning drivers and then
// addresses in pool order.
//
// The result is not necessarily the maximum total score; see Optimal for that.
type Greedy struct {
	score   Scorer
	workers int
}

// NewGreedy creates a Greedy strategy. With more than one worker the per-driver scan of
// each round runs concurrently; the selected pairs are identical to a sequential run.
func NewGreedy(score Scorer, workers int) *Greedy {
	if workers < 1 {
		workers = 1
	}

	return &Greedy{score: score, workers: workers}
}

// Assign runs greedy rounds until either pool is empty.
func (g *Greedy) Assign(drivers []models.Driver, addresses []models.Address) models.Result {
	driverPool := positions(len(drivers))
	addressPool := positions(len(addresses))
	matches := make([]models.Match, 0, min(len(drivers), len(addresses)))
	round := make([]candidate, len(drivers))

	for len(driverPool) > 0 && len(addressPool) > 0 {
		best := g.bestOfRound(drivers, addresses, driverPool, addressPool, round[:len(driverPool)])
		matches = append(matches, best.match(drivers, addresses))

		driverPool = slices.DeleteFunc(driverPool, func(idx int) bool { return idx == best.driver })
		addressPool = slices.DeleteFunc(addressPool, func(idx int) bool { return idx == best.address })
	}

	return newResult(matches, pick(drivers, driverPool), pick(addresses, addressPool))
}

// bestOfRound fills round with each pooled driver's best pairing and returns the best of them.
func (g *Greedy) bestOfRound(
	drivers []models.Driver,
	addresses []models.Address,
	driverPool, addressPool []int,
	round []candidate,
) candidate {
	if g.workers == 1 || len(driverPool) == 1 {
		for i, d := range driverPool {
			round[i] = g.bestForDriver(drivers, addresses, d, addressPool)
		}
	} else {
		var eg errgroup.Group
		eg.SetLimit(g.workers)
		for i, d := range driverPool {
			eg.Go(func() error {
				round[i] = g.bestForDriver(drivers, addresses, d, addressPool)
				return nil
			})
		}
		_ = eg.Wait()
	}

	best := round[0]
	for _, c := range round[1:] {
		if c.score > best.score {
			best = c
		}
	}

	return best
}

func (g *Greedy) bestForDriver(drivers []models.Driver, addresses []models.Address, d int, addressPool []int) candidate {
	best := candidate{driver: d, address: addressPool[0], score: g.score(drivers[d], addresses[addressPool[0]])}
	for _, a := range addressPool[1:] {
		if s := g.score(drivers[d], addresses[a]); s > best.score {
			best = candidate{driver: d, address: a, score: s}
		}
	}

	return best
}

func positions(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func pick[T any](items []T, idx []int) []T {
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}

	return out
}
