// Package order predicts the permutation that restores a shredded document.
//
// Given the edge descriptors extracted by the strip package, the pipeline is:
//
//  1. Score every ordered strip pair: dissimilarity between the right edge
//     of one strip and the left edge of another (Scorer; SAD or NCC).
//  2. Build the full directed cost matrix from those scores (BuildMatrix).
//  3. Assemble an ordering by nearest-neighbor chaining, trying every strip
//     as a start and keeping the cheapest complete chain (Assemble).
//  4. Refine the ordering with first-improvement 2-opt local search on the
//     open path (Refine).
//
// The Reconstructor facade runs the whole pipeline and owns the single
// fallback decision: any decode, height, scoring, or assembly failure
// degrades to the identity permutation, so callers always receive a valid
// permutation of the input count.
//
// # Metrics
//
// Two interchangeable metrics are provided, both returning non-negative
// dissimilarity where lower means "more likely adjacent":
//
//   - SAD: summed absolute per-channel difference over RGB rows. Exact,
//     integer-valued for 8-bit input, sensitive to brightness shifts.
//   - NCC: one minus the Pearson correlation of the grayscale rows, in
//     [0, 2]. Invariant to affine intensity changes; flat (zero-variance)
//     edges are handled by an explicit degenerate-case policy.
//
// # Determinism
//
// Given identical input bytes the output permutation is identical across
// runs: ties in the greedy scan resolve to the smallest id, the 2-opt scan
// order is fixed, and no map iteration or randomness is involved.
//
// # Complexity
//
// For n strips of height h: matrix construction is O(n²·h), greedy assembly
// O(n³), and each 2-opt pass O(n²) candidate checks. The search is heuristic;
// the result is a local, not global, optimum of total path cost.
package order
