// Package postprocess normalizes raw generator output into the canonical
// distributed form: every edge on the rank owning its source, undirected
// lists symmetric, duplicates removed.
//
// What:
//
//   - GatherVertexRanges — allgather of the per-rank ownership table.
//   - RedistributeEdgesByVertexRange — route every (u, v) to the owner
//     of u.
//   - AddReverseEdgesAndRedistribute — route (u, v) to the owner of u and
//     (v, u) to the owner of v in one exchange, then sort and optionally
//     unique.
//   - AddNonlocalReverseEdges — cheaper symmetric completion for lists
//     whose sources are already local: only cross-rank reverses travel.
//   - FixBrokenEdgeList — symmetric completion plus dedup for generators
//     that emit each pair once.
//   - RedistributeEdgesRoundRobin — edge-balanced deal, ignoring
//     ownership.
//
// Every operation is collective: all ranks of the group must call it or
// none. Cost is one Alltoall plus a local sort.
//
// Errors: ErrNoOwner when an endpoint lies outside every gathered range.
package postprocess
