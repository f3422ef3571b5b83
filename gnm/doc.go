// Package gnm implements the Erdős–Rényi family: GNM (exactly m edges)
// and GNP (each edge independently with probability p), both in directed
// and undirected flavours.
//
// What:
//
//   - GNMDirected / GNMUndirected — m edges sampled uniformly without
//     replacement from the ordered / unordered pair space.
//   - GNPDirected / GNPUndirected — Bernoulli(p) inclusion per pair,
//     enumerated by geometric gap jumps.
//
// Why:
//
// Edges live in a flat pair-index space. Each chunk owns the pairs whose
// first (or smaller) endpoint falls into its vertex rows, so the global
// edge count splits over chunks by a hypergeometric tree and every chunk
// samples its share from its own deterministic stream. Undirected
// variants re-run the sampling of every chunk that can reach the local
// rows instead of communicating, so both orientations of every pair
// materialize on their owners without a message.
//
// Complexity:
//
//   - GNM: O(m/k · k_local + k · log k) per rank (directed),
//     O(m + k · log k) per rank (undirected regeneration scan).
//   - GNP: expected O(p · pairs) draws, failures skipped in O(1).
//
// Errors:
//
//   - generator.ErrConfiguration on m exceeding the pair space, p outside
//     [0, 1], or a non-positive n.
package gnm
