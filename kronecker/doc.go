// Package kronecker implements the stochastic Kronecker and R-MAT
// models by recursive quadrant descent.
//
// What:
//
// Each of the m edges walks log2(n) levels of the adjacency matrix; at
// every level it falls into one quadrant with probabilities
// (a, b, c, d = 1-a-b-c), fixing one bit of u and v. The edge budget is
// split over chunks by a binomial tree, every chunk draws from its own
// stream, and the finished edges are routed to the owners of their
// sources in one exchange. Unset quadrant probabilities default to the
// Graph500 initiator (0.57, 0.19, 0.19).
//
// Edges are drawn independently, so the output is a directed multigraph:
// duplicates stay unless the caller asks for a simple graph downstream.
// Self-loops are redrawn away unless requested.
//
// Complexity: O(m/P · log n) per rank plus one redistribution exchange.
//
// Errors: generator.ErrConfiguration unless n is a power of two, the
// probabilities sum to at most one, and the chunk count is a power of two.
package kronecker
