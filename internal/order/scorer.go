package order

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/paperglue/unshred-mcp/internal/strip"
)

// ErrDimensionMismatch indicates two edges that were expected to share a
// height did not. The strip package's height check makes this unreachable in
// normal operation; seeing it means a wiring bug upstream.
var ErrDimensionMismatch = errors.New("order: edge heights differ")

// Metric selects the edge dissimilarity function.
type Metric string

const (
	// MetricSAD is summed absolute difference over RGB rows.
	MetricSAD Metric = "sad"

	// MetricNCC is one minus normalized cross-correlation over grayscale rows.
	MetricNCC Metric = "ncc"
)

// Scorer measures how poorly two edges align.
//
// Score returns a non-negative dissimilarity between edge a (the right edge
// of a candidate predecessor) and edge b (the left edge of a candidate
// successor); lower means more likely adjacent.
type Scorer interface {
	Score(a, b strip.Edge) (float64, error)
}

// NewScorer returns the Scorer for a metric name.
func NewScorer(m Metric) (Scorer, error) {
	switch m {
	case MetricSAD:
		return sadScorer{}, nil
	case MetricNCC:
		return nccScorer{eps: DefaultEpsilon}, nil
	default:
		return nil, fmt.Errorf("order: unknown metric %q", m)
	}
}

// sadScorer implements summed absolute difference over RGB rows.
type sadScorer struct{}

func (sadScorer) Score(a, b strip.Edge) (float64, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, a.Len(), b.Len())
	}

	total := 0
	for i := range a.RGB {
		p1 := a.RGB[i]
		p2 := b.RGB[i]
		total += absDiff(p1.R, p2.R) + absDiff(p1.G, p2.G) + absDiff(p1.B, p2.B)
	}
	return float64(total), nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// nccScorer implements 1 − Pearson correlation over grayscale rows.
//
// Degenerate-case policy for flat edges (intensity spread below eps):
//   - both flat: 0 if their means are within eps, else 1
//   - exactly one flat: 1 (treated as uncorrelated)
//
// Otherwise the correlation coefficient is clamped to [-1, 1] to absorb
// floating-point drift, giving a score in [0, 2]: 0 = perfect match,
// 1 = uncorrelated, 2 = perfectly anti-correlated.
type nccScorer struct {
	eps float64
}

func (s nccScorer) Score(a, b strip.Edge) (float64, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, a.Len(), b.Len())
	}
	if a.Len() == 0 {
		return 0, fmt.Errorf("%w: empty edges", ErrDimensionMismatch)
	}

	meanA := stat.Mean(a.Gray, nil)
	meanB := stat.Mean(b.Gray, nil)
	flatA := isFlat(a.Gray, s.eps)
	flatB := isFlat(b.Gray, s.eps)

	switch {
	case flatA && flatB:
		if math.Abs(meanA-meanB) < s.eps {
			return 0, nil
		}
		return 1, nil
	case flatA || flatB:
		return 1, nil
	}

	r := stat.Correlation(a.Gray, b.Gray, nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return 1 - r, nil
}

// isFlat reports whether the samples have (near-)zero spread. A single-row
// edge is always flat.
func isFlat(xs []float64, eps float64) bool {
	if len(xs) < 2 {
		return true
	}
	return stat.StdDev(xs, nil) < eps
}
