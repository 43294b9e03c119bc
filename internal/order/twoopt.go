package order

// DefaultEpsilon is the tolerance used for 2-opt move acceptance and for
// the NCC flat-edge checks. Improvements smaller than this are treated as
// floating-point noise and rejected, which also guarantees termination.
const DefaultEpsilon = 1e-9

// Refine improves a permutation in place with 2-opt local search on the
// open path and returns it.
//
// A move picks path edges (p[i],p[i+1]) and (p[j],p[j+1]) with j ≥ i+2 and
// j before the last index, and reverses the segment p[i+1..j], replacing
// those edges with (p[i],p[j]) and (p[i+1],p[j+1]). The matrix is
// asymmetric, so the reversal also flips every arc inside the segment;
// their cost difference is part of the move's delta. A move is accepted
// when the full delta is below −eps.
//
// The policy is first-improvement: the scan runs i ascending then j
// ascending, applies the first improving move, and restarts from the
// beginning of the mutated permutation. The loop ends when a full scan
// finds no improving move.
//
// Total path cost never increases, and the search terminates because each
// accepted move strictly decreases a cost bounded below. The result is a
// local optimum only. Fewer than four strips admit no move; the input is
// returned unchanged.
func Refine(perm []int, m Matrix, eps float64) []int {
	n := len(perm)
	if n < 4 {
		return perm
	}
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	for {
		improved := false

	scan:
		for i := 0; i < n-2; i++ {
			for j := i + 2; j < n-1; j++ {
				delta := m[perm[i]][perm[j]] + m[perm[i+1]][perm[j+1]] -
					m[perm[i]][perm[i+1]] - m[perm[j]][perm[j+1]]
				for k := i + 1; k < j; k++ {
					delta += m[perm[k+1]][perm[k]] - m[perm[k]][perm[k+1]]
				}
				if delta < -eps {
					reverse(perm, i+1, j)
					improved = true
					break scan
				}
			}
		}

		if !improved {
			return perm
		}
	}
}

// reverse flips perm[lo..hi] in place.
func reverse(perm []int, lo, hi int) {
	for ; lo < hi; lo, hi = lo+1, hi-1 {
		perm[lo], perm[hi] = perm[hi], perm[lo]
	}
}
