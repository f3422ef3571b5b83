// Package graph defines the distributed graph value produced by every
// generator: a consecutive vertex range owned by one rank, the incident
// edges in edge-list or CSR representation, and optional weights and
// coordinates.
//
// What:
//
//   - Edge, VertexRange, Coordinates2D/3D — plain value types.
//   - Graph — one rank's share of the distributed graph.
//   - SortEdges / DedupEdges — canonical lexicographic ordering helpers.
//   - BuildCSRFromEdgeList / BuildEdgeListFromCSR — representation
//     conversion, inverse of each other modulo edge ordering.
//
// Invariants (see the generator contract for when they take effect):
//
//   - Vertex ranges of all ranks partition [0, n).
//   - In CSR form, XAdj has |range|+1 entries, AdjNcy is sorted per source
//     and len(AdjNcy) == XAdj[|range|].
//   - Coordinate slices, when present, have one entry per owned vertex.
//
// Complexity:
//
//   - BuildCSRFromEdgeList: O(E log E) (sort) + O(V + E).
//   - BuildEdgeListFromCSR: O(V + E).
//
// Errors:
//
//   - ErrEdgeOutOfRange: an edge source lies outside the owned range.
//   - ErrWeightCount: edge weights do not match the edge count.
package graph
