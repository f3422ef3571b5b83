// Package barabassi implements Barabási–Albert preferential attachment
// without shared state.
//
// What:
//
// The sequential model fills a stub array M where edge e of source
// v = e/d occupies slots 2e (the source) and 2e+1 (a copy of a uniformly
// earlier slot, which lands on a vertex proportionally to its degree).
// Here no array exists: the uniform draw of every slot is a pure hash of
// the slot index, so the chunk owning v resolves each of its d targets
// by walking odd slots downward until an even slot names a source. The
// walk shortens at every step and needs O(log v) expected hashes.
//
// Vertices below d emit no edges; every vertex v >= d has out-degree
// exactly d. Self-loops are resolved away by salting the walk with an
// attempt counter unless they are requested. The undirected form adds
// the missing reverse orientations collectively on finalize.
//
// Errors: generator.ErrConfiguration unless d >= 1, n > d and the chunk
// count is a power of two.
package barabassi
