package generator

import (
	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/graph"
)

// Requirement is a bitmask of structural demands a model places on the
// process group and chunk decomposition; factories enforce them during
// Normalize.
type Requirement uint8

const (
	// ReqPowerOfTwoSize demands a power-of-two process group.
	ReqPowerOfTwoSize Requirement = 1 << iota
	// ReqSquareChunks demands a perfect-square chunk count.
	ReqSquareChunks
	// ReqCubicChunks demands a perfect-cube chunk count.
	ReqCubicChunks
	// ReqPowerOfTwoChunks demands a power-of-two chunk count.
	ReqPowerOfTwoChunks
	// ReqOneChunkPerRank demands exactly one chunk per rank.
	ReqOneChunkPerRank
)

// Feature is a bitmask describing the shape of a model's raw output; the
// façade selects post-processing from it.
type Feature uint8

const (
	// FeatUndirected means the model emits both orientations locally.
	FeatUndirected Feature = 1 << iota
	// FeatAlmostUndirected means cross-rank pairs may miss one orientation
	// and need reverse-edge completion.
	FeatAlmostUndirected
	// FeatRedistribute means emitted edges are not grouped by owner and
	// need a redistribution pass.
	FeatRedistribute
	// FeatCoordinates means the model can emit per-vertex coordinates.
	FeatCoordinates
)

// Generator produces one rank's share of a distributed graph.
// Implementations are bound to (config, rank, size) at construction.
type Generator interface {
	// Generate populates the internal buffers in the requested
	// representation. No collective communication happens here.
	Generate(rep graph.Representation) error

	// Finalize converts representations if needed and performs the
	// model's collective fix-ups (redistribution, symmetry completion).
	Finalize(c *comm.Comm) error

	// Take moves the generated graph out, leaving the generator empty.
	Take() graph.Graph

	// Requirements reports the structural demands of the model.
	Requirements() Requirement

	// Features reports the shape of the raw output.
	Features() Feature
}

// Factory normalizes parameters for a model and constructs its generators.
type Factory interface {
	// Normalize validates cfg against the model's constraints for a group
	// of the given size, filling defaulted fields (such as K).
	Normalize(cfg Config, size int) (Config, error)

	// Create builds a generator bound to one rank of the group.
	Create(cfg Config, rank, size int) (Generator, error)
}

// EdgeListBase carries the buffers of an edge-list-native generator and
// implements the representation duality: a CSR request is served by
// sorting the finalized edge list and prefix-summing degrees.
type EdgeListBase struct {
	rep    graph.Representation
	vrange graph.VertexRange

	edges  []graph.Edge
	xadj   []int64
	adjncy []int64

	coords2D []graph.Coord2D
	coords3D []graph.Coord3D
}

// Reset drops all buffers, preparing for a fresh Generate.
func (b *EdgeListBase) Reset(rep graph.Representation) {
	b.rep = rep
	b.edges = nil
	b.xadj = nil
	b.adjncy = nil
	b.coords2D = nil
	b.coords3D = nil
}

// PushEdge appends one directed edge.
func (b *EdgeListBase) PushEdge(u, v int64) {
	b.edges = append(b.edges, graph.Edge{U: u, V: v})
}

// PushCoordinate2D appends one owned vertex coordinate.
func (b *EdgeListBase) PushCoordinate2D(x, y float64) {
	b.coords2D = append(b.coords2D, graph.Coord2D{X: x, Y: y})
}

// PushCoordinate3D appends one owned vertex coordinate.
func (b *EdgeListBase) PushCoordinate3D(x, y, z float64) {
	b.coords3D = append(b.coords3D, graph.Coord3D{X: x, Y: y, Z: z})
}

// SetVertexRange records the owned range [from, to).
func (b *EdgeListBase) SetVertexRange(from, to int64) {
	b.vrange = graph.VertexRange{From: from, To: to}
}

// VertexRange returns the owned range.
func (b *EdgeListBase) VertexRange() graph.VertexRange { return b.vrange }

// Edges exposes the local edge buffer; Finalize implementations may
// replace it wholesale after collective fix-ups.
func (b *EdgeListBase) Edges() []graph.Edge { return b.edges }

// SetEdges replaces the local edge buffer.
func (b *EdgeListBase) SetEdges(edges []graph.Edge) { b.edges = edges }

// FilterDuplicateEdges sorts and uniques the edge buffer.
func (b *EdgeListBase) FilterDuplicateEdges() {
	b.edges = graph.DedupEdges(b.edges)
}

// FinalizeRepresentation converts the edge list to CSR when CSR was
// requested. Must run after any collective fix-up has settled the edges.
func (b *EdgeListBase) FinalizeRepresentation() error {
	if b.rep != graph.CSR || b.xadj != nil {
		return nil
	}
	xadj, adjncy, _, err := graph.BuildCSRFromEdgeList(b.vrange, b.edges, nil)
	if err != nil {
		return err
	}
	b.xadj, b.adjncy = xadj, adjncy
	b.edges = nil

	return nil
}

// Take moves the buffers out as a graph.Graph, emptying the base.
func (b *EdgeListBase) Take() graph.Graph {
	g := graph.Graph{
		VertexRange:    b.vrange,
		Representation: b.rep,
		Edges:          b.edges,
		XAdj:           b.xadj,
		AdjNcy:         b.adjncy,
		Coordinates2D:  b.coords2D,
		Coordinates3D:  b.coords3D,
	}
	b.edges = nil
	b.xadj = nil
	b.adjncy = nil
	b.coords2D = nil
	b.coords3D = nil

	return g
}
