package order

import (
	"log"

	"github.com/paperglue/unshred-mcp/internal/strip"
)

// Config controls one reconstruction pipeline instance.
type Config struct {
	// Metric selects the edge dissimilarity function. Default MetricSAD.
	Metric Metric

	// TwoOpt enables the 2-opt refinement pass after greedy assembly.
	TwoOpt bool

	// SmoothSigma is the Gaussian pre-smoothing radius applied to each
	// strip before edge sampling; zero disables smoothing.
	SmoothSigma float64

	// Epsilon is the floating-point tolerance for 2-opt acceptance and the
	// NCC degenerate-case checks. Zero or negative selects DefaultEpsilon.
	Epsilon float64
}

// DefaultConfig matches the behavior that works best on typical scanned
// documents: exact SAD matching with 2-opt cleanup and no smoothing.
func DefaultConfig() Config {
	return Config{
		Metric:  MetricSAD,
		TwoOpt:  true,
		Epsilon: DefaultEpsilon,
	}
}

// Result is the outcome of one reconstruction request.
type Result struct {
	// Permutation maps assembly position to original strip id: read the
	// input strips in this order to rebuild the document left to right.
	// Always a valid permutation of 0..n-1, even on fallback.
	Permutation []int `json:"permutation"`

	// TotalCost is the summed transition cost of the returned path under
	// the configured metric. Zero for fewer than two strips.
	TotalCost float64 `json:"total_cost"`

	// StepCosts holds the n-1 individual transition costs along the path,
	// StepCosts[k] being the cost of placing Permutation[k+1] after
	// Permutation[k]. Empty on fallback.
	StepCosts []float64 `json:"step_costs,omitempty"`

	// Metric records which dissimilarity function scored the request.
	Metric Metric `json:"metric"`

	// Refined reports whether the 2-opt pass ran.
	Refined bool `json:"refined"`

	// Fallback reports that reconstruction degraded to the identity
	// permutation; FallbackReason says why.
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// Reconstructor runs the full pipeline with one fixed configuration.
//
// A Reconstructor is stateless across requests and safe for concurrent use;
// every request owns its strips, matrix, and permutation exclusively.
type Reconstructor struct {
	cfg    Config
	scorer Scorer
}

// NewReconstructor validates the configuration and builds a Reconstructor.
func NewReconstructor(cfg Config) (*Reconstructor, error) {
	if cfg.Metric == "" {
		cfg.Metric = MetricSAD
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	scorer, err := NewScorer(cfg.Metric)
	if err != nil {
		return nil, err
	}
	return &Reconstructor{cfg: cfg, scorer: scorer}, nil
}

// Reconstruct predicts the reading order of encoded strip images.
//
// This is the single fallback site of the pipeline: decode failures, height
// mismatches, scoring errors, and assembly failures all degrade to the
// identity permutation. The caller always receives a valid permutation of
// the input count; errors are logged, never returned.
func (r *Reconstructor) Reconstruct(buffers [][]byte) *Result {
	strips, err := strip.FromBuffers(buffers, r.cfg.SmoothSigma)
	if err != nil {
		return r.fallback(len(buffers), err)
	}
	return r.ReconstructStrips(strips)
}

// ReconstructStrips runs the pipeline on already-extracted strips. Strip
// IDs must be 0..n-1 in slice order.
func (r *Reconstructor) ReconstructStrips(strips []strip.Strip) *Result {
	n := len(strips)
	if n == 0 {
		return &Result{Permutation: []int{}, Metric: r.cfg.Metric}
	}
	if n == 1 {
		return &Result{Permutation: []int{0}, Metric: r.cfg.Metric}
	}

	matrix, err := BuildMatrix(strips, r.scorer)
	if err != nil {
		// Height mismatches are caught during extraction, so a scorer
		// error here is a programming-invariant violation.
		return r.fallback(n, err)
	}

	perm, err := Assemble(matrix, n)
	if err != nil {
		return r.fallback(n, err)
	}

	refined := false
	if r.cfg.TwoOpt {
		perm = Refine(perm, matrix, r.cfg.Epsilon)
		refined = n >= 4
	}

	return &Result{
		Permutation: perm,
		TotalCost:   matrix.PathCost(perm),
		StepCosts:   matrix.StepCosts(perm),
		Metric:      r.cfg.Metric,
		Refined:     refined,
	}
}

// fallback builds the identity-permutation result for a failed request.
func (r *Reconstructor) fallback(n int, err error) *Result {
	log.Printf("reconstruction degraded to identity order: %v", err)
	return &Result{
		Permutation:    Identity(n),
		Metric:         r.cfg.Metric,
		Fallback:       true,
		FallbackReason: err.Error(),
	}
}

// Identity returns the permutation 0..n-1, the do-nothing ordering.
func Identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}
