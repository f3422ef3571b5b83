package graph

import (
	"errors"
	"sort"
)

// Sentinel errors for representation conversions.
var (
	// ErrEdgeOutOfRange indicates an edge whose source vertex is not owned.
	ErrEdgeOutOfRange = errors.New("graph: edge source outside owned vertex range")

	// ErrWeightCount indicates len(edge weights) != len(edges).
	ErrWeightCount = errors.New("graph: edge weight count does not match edge count")
)

// Representation selects how a rank's edges are stored.
type Representation int

const (
	// EdgeList stores edges as explicit (U, V) pairs.
	EdgeList Representation = iota

	// CSR stores cumulative degrees (XAdj) plus adjacency (AdjNcy).
	CSR
)

// String implements fmt.Stringer.
func (r Representation) String() string {
	switch r {
	case EdgeList:
		return "edge-list"
	case CSR:
		return "csr"
	default:
		return "unknown"
	}
}

// Edge is an ordered pair of global vertex IDs. Undirected graphs carry
// both orientations in canonical form.
type Edge struct {
	U int64
	V int64
}

// VertexRange is the half-open interval [From, To) of global vertex IDs
// owned by one rank.
type VertexRange struct {
	From int64
	To   int64
}

// Len returns the number of owned vertices.
func (vr VertexRange) Len() int64 { return vr.To - vr.From }

// Contains reports whether v lies in [From, To).
func (vr VertexRange) Contains(v int64) bool { return v >= vr.From && v < vr.To }

// Coord2D is a point in the unit square.
type Coord2D struct {
	X float64
	Y float64
}

// Coord3D is a point in the unit cube.
type Coord3D struct {
	X float64
	Y float64
	Z float64
}

// Graph is one rank's share of a distributed graph.
//
// Exactly one representation is populated, indicated by Representation;
// converting between the two is the job of BuildCSRFromEdgeList and
// BuildEdgeListFromCSR. Weights and coordinates are optional and, when
// present, are parallel to the owned vertices resp. local edges.
type Graph struct {
	VertexRange    VertexRange
	Representation Representation

	Edges []Edge

	XAdj   []int64
	AdjNcy []int64

	VertexWeights []int64
	EdgeWeights   []int64

	Coordinates2D []Coord2D
	Coordinates3D []Coord3D
}

// NumLocalEdges returns the local edge count in either representation.
func (g *Graph) NumLocalEdges() int64 {
	if len(g.AdjNcy) > len(g.Edges) {
		return int64(len(g.AdjNcy))
	}

	return int64(len(g.Edges))
}

// SortEdges orders edges lexicographically by (U, V).
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})
}

// DedupEdges sorts edges and removes exact duplicates in place,
// returning the deduplicated prefix.
func DedupEdges(edges []Edge) []Edge {
	if len(edges) == 0 {
		return edges
	}
	SortEdges(edges)
	out := edges[:1]
	for _, e := range edges[1:] {
		if e != out[len(out)-1] {
			out = append(out, e)
		}
	}

	return out
}
