package order

import (
	"fmt"
	"math"

	"github.com/paperglue/unshred-mcp/internal/strip"
)

// Matrix is the directed strip-to-strip dissimilarity table.
//
// Matrix[i][j] scores placing strip j immediately to the right of strip i
// (right edge of i against left edge of j). The diagonal is +Inf and must
// never be read as a cost; the table is asymmetric in general because
// Matrix[i][j] and Matrix[j][i] compare different edge pairs.
type Matrix [][]float64

// BuildMatrix computes all n(n−1) off-diagonal entries by invoking the
// scorer once per ordered pair. Scorer errors propagate; the caller decides
// whether to degrade gracefully.
func BuildMatrix(strips []strip.Strip, scorer Scorer) (Matrix, error) {
	n := len(strips)
	m := make(Matrix, n)
	for i := 0; i < n; i++ {
		m[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				m[i][j] = math.Inf(1)
				continue
			}
			cost, err := scorer.Score(strips[i].Right, strips[j].Left)
			if err != nil {
				return nil, fmt.Errorf("scoring pair (%d,%d): %w", i, j, err)
			}
			m[i][j] = cost
		}
	}
	return m, nil
}

// StepCosts returns the individual transition costs along an open path,
// one entry per consecutive pair in perm.
func (m Matrix) StepCosts(perm []int) []float64 {
	if len(perm) < 2 {
		return nil
	}
	costs := make([]float64, len(perm)-1)
	for k := 0; k+1 < len(perm); k++ {
		costs[k] = m[perm[k]][perm[k+1]]
	}
	return costs
}

// PathCost sums the transition costs along an open path: the document has a
// definite left and right end, so the last strip contributes no successor
// cost. Returns +Inf if any transition is unusable.
func (m Matrix) PathCost(perm []int) float64 {
	var total float64
	for k := 0; k+1 < len(perm); k++ {
		c := m[perm[k]][perm[k+1]]
		if math.IsInf(c, 1) {
			return math.Inf(1)
		}
		total += c
	}
	return total
}
