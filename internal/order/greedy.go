package order

import (
	"errors"
	"math"
)

// ErrNoChain indicates that greedy construction could not complete a chain
// from any start. This happens only when the cost matrix has unusable
// entries blocking every path, e.g. from corrupted data.
var ErrNoChain = errors.New("order: no complete chain from any start")

// Assemble builds a full ordering by nearest-neighbor chaining.
//
// Every strip is tried as a start: the chain repeatedly appends the unused
// strip with the cheapest transition from the current tail, abandoning the
// attempt when only unusable (+Inf) transitions remain. The cheapest
// complete chain over all starts wins. Ties — both within a scan and
// between starts — resolve to the smallest id, keeping the output
// deterministic.
//
// Complexity is O(n³): n starts × n growth steps × n candidate scan.
func Assemble(m Matrix, n int) ([]int, error) {
	var best []int
	bestCost := math.Inf(1)

	for start := 0; start < n; start++ {
		chain, cost, ok := chainFrom(m, n, start)
		if ok && cost < bestCost {
			best = chain
			bestCost = cost
		}
	}

	if best == nil {
		return nil, ErrNoChain
	}
	return best, nil
}

// chainFrom grows one nearest-neighbor chain from a fixed start strip.
// ok is false when the chain could not reach length n.
func chainFrom(m Matrix, n, start int) (chain []int, cost float64, ok bool) {
	used := make([]bool, n)
	chain = make([]int, 1, n)
	chain[0] = start
	used[start] = true
	last := start

	for len(chain) < n {
		next := -1
		bestEdge := math.Inf(1)
		// Ascending scan with strict < keeps the smallest id on ties.
		for k := 0; k < n; k++ {
			if used[k] {
				continue
			}
			if c := m[last][k]; c < bestEdge {
				bestEdge = c
				next = k
			}
		}
		if next < 0 {
			return nil, 0, false
		}
		chain = append(chain, next)
		used[next] = true
		cost += bestEdge
		last = next
	}
	return chain, cost, true
}
