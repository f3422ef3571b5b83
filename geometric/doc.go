// Package geometric implements the unit-square and unit-cube point
// models: random geometric graphs (RGG) and random Delaunay graphs (RDG).
//
// What:
//
// The space is cut into an axis-aligned chunk grid (square in 2D, cubic
// in 3D); every chunk is further cut into cells of side >= r, so two
// points within distance r always sit in the same or in adjacent cells.
// The global point count splits exactly over chunks (and over cells
// inside a chunk) by binomial trees, and every cell fills from its own
// stream. Point IDs follow the chunk/cell enumeration, so each chunk
// owns a contiguous ID range.
//
// A rank never asks another rank for points: adjacent chunks are simply
// regenerated locally from the seed and memoized for the duration of the
// pass. Intra-chunk pairs emit both orientations at once; for a pair
// crossing a chunk boundary each side emits its own orientation, which
// keeps the distributed edge list symmetric without a message.
//
// RDG builds a Delaunay triangulation over the chunk's points plus a
// one-ring halo (github.com/fogleman/delaunay) and keeps the edges with
// a locally-owned endpoint. There is no 3D triangulation backend, so
// rdg_3d is rejected at normalization.
//
// Complexity: O(points per cell² · cells) expected per chunk for RGG,
// O(h log h) for a halo of h points per Delaunay chunk.
//
// Errors: generator.ErrConfiguration on a radius exceeding the chunk
// width, a non-square / non-cubic chunk count, or rdg_3d.
package geometric
