// Package hyperbolic implements the random hyperbolic graph (RHG): a
// power-law graph in the Poincaré disk with exponent gamma and a target
// average degree.
//
// What:
//
// The disk radius R is solved by binary search so that the expected
// average degree matches the target. Points carry a radial coordinate
// with density proportional to sinh(alpha*r), alpha = (gamma-1)/2, and a
// uniform angle. The angle space is cut into k sectors (the chunks); the
// radius into bands of equal probability mass, so band x sector cells
// hold roughly equal point counts bounded by the configured base.
//
// Two points connect when their hyperbolic distance is at most R. For a
// query point the search walks every band and bounds the reachable
// angular half-width at the band's inner radius, which
// shrinks the candidate set to a few sectors per band. Remote sectors
// are regenerated locally from the seed and memoized, never exchanged.
//
// Complexity: near-linear in the local edge count; the heavy tail sits
// in the innermost bands where the angular bound opens up to the full
// circle.
//
// Errors: generator.ErrConfiguration unless gamma > 2, the average
// degree is positive and the chunk count is a power of two.
package hyperbolic
