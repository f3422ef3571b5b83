// Package comm hosts a fixed-size, bulk-synchronous process group in a
// single OS process: P ranks, one goroutine each, exchanging messages only
// through collective operations.
//
// What:
//
//   - Group owns the pairwise mailboxes of a process group of size P.
//   - Comm is one rank's handle: Rank, Size, Barrier, Abort.
//   - Collectives are package-level generics: Allgather, Alltoall, plus
//     derived reductions (AllreduceOr, AllreduceMax, AllreduceSum, ReduceSum).
//   - Run spawns one goroutine per rank and waits for all of them.
//
// Why:
//
//   - Graph generators are deterministic per chunk and never communicate;
//     only post-processing and validation need collectives. An in-process
//     group makes P=4 or P=8 runs trivial to embed in services and tests.
//
// Contract:
//
//   - Every rank must execute the same sequence of collective calls in the
//     same order (bulk-synchronous execution). Mismatched sequences block.
//   - Abort releases all ranks currently inside (or later entering) a
//     collective with ErrAborted.
//
// Complexity:
//
//   - Allgather / Alltoall: O(P) messages per rank, one round.
//   - Barrier and reductions are built on Allgather.
//
// Errors:
//
//   - ErrBadGroupSize: requested group size < 1.
//   - ErrBadRank: rank outside [0, P).
//   - ErrBucketCount: Alltoall called with len(buckets) != P.
//   - ErrAborted: the group was aborted by some rank.
package comm
