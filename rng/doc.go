// Package rng provides the deterministic randomness backbone of the
// generators: every draw is derived from (seed, chunk, label) through a
// stateless hash, so a chunk's output depends only on the seed and the
// chunk index — never on the rank that computes it or on the group size.
//
// What:
//
//   - RNG carries the global seed; Stream(labels...) derives an independent
//     random stream for any label tuple via xxhash mixing.
//   - Binomial and Hypergeometric draw counts from a derived stream.
//   - SplitSample partitions a global sample count exactly over k chunks by
//     descending a balanced binary tree of hypergeometric splits; every
//     caller that descends to the same chunk observes identical counts.
//   - GapSampler enumerates Bernoulli(p) successes over a huge index space
//     in O(successes) via geometric gaps.
//
// Why:
//
//   - Splitting m edges over k chunks with per-node hypergeometric draws is
//     exact (shares sum to m) and communication-free: any rank can recompute
//     any chunk's share and offset from the seed alone.
//
// Complexity:
//
//   - Stream: O(labels). SplitSample: O(log k) nodes, population callback
//     per node. GapSampler.Next: O(1) per success.
//
// Determinism:
//
//   - All functions are pure in (seed, labels); no package-level state.
package rng
