// Package grid implements the regular 2D and 3D lattice generators.
//
// What:
//
//   - Grid2D — gx × gy lattice, square chunk grid.
//   - Grid3D — gx × gy × gz lattice, cubic chunk grid.
//
// Vertices carry chunk-contiguous IDs: the lattice is cut into an
// axis-aligned chunk grid, every chunk numbers its block row-major, and
// blocks follow each other in chunk order. Ranks therefore own
// consecutive vertex ranges without any redistribution.
//
// Each axis-neighbor edge is kept with probability p, decided by a hash
// of the canonical endpoint pair, so the two chunks sharing a boundary
// edge reach the same verdict without a message. p == 0 is treated as
// unset and keeps every edge; an edge budget m is translated into
// p = m / |lattice edges|. Periodic mode wraps every axis of extent > 1.
//
// Complexity: O(local vertices · degree) per rank.
//
// Errors: generator.ErrConfiguration on missing grid extents or a
// non-square / non-cubic chunk count.
package grid
