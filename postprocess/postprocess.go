package postprocess

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/graph"
)

// ErrNoOwner reports an edge endpoint outside every vertex range.
var ErrNoOwner = errors.New("postprocess: vertex has no owning rank")

// GatherVertexRanges collects the ownership table, indexed by rank.
func GatherVertexRanges(c *comm.Comm, local graph.VertexRange) ([]graph.VertexRange, error) {
	return comm.Allgather(c, local)
}

// OwnerOf returns the rank owning v, or -1. Ranges must be sorted by
// From, which the rank order guarantees for consecutive distributions.
func OwnerOf(ranges []graph.VertexRange, v int64) int {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].To > v })
	if i < len(ranges) && ranges[i].Contains(v) {
		return i
	}

	return -1
}

// RedistributeEdgesByVertexRange routes every edge to the rank owning its
// source and returns the sorted local result.
func RedistributeEdgesByVertexRange(c *comm.Comm, edges []graph.Edge, ranges []graph.VertexRange) ([]graph.Edge, error) {
	buckets := make([][]graph.Edge, c.Size())
	for _, e := range edges {
		owner := OwnerOf(ranges, e.U)
		if owner < 0 {
			return nil, fmt.Errorf("%w: source %d", ErrNoOwner, e.U)
		}
		buckets[owner] = append(buckets[owner], e)
	}

	return exchange(c, buckets)
}

// AddReverseEdgesAndRedistribute routes (u, v) to the owner of u and
// (v, u) to the owner of v in one exchange. The result is sorted;
// removeDuplicates collapses repeated pairs (a pair present in both
// orientations on input would otherwise appear twice).
func AddReverseEdgesAndRedistribute(c *comm.Comm, edges []graph.Edge, ranges []graph.VertexRange, removeDuplicates bool) ([]graph.Edge, error) {
	buckets := make([][]graph.Edge, c.Size())
	for _, e := range edges {
		fwd := OwnerOf(ranges, e.U)
		rev := OwnerOf(ranges, e.V)
		if fwd < 0 || rev < 0 {
			return nil, fmt.Errorf("%w: edge (%d, %d)", ErrNoOwner, e.U, e.V)
		}
		buckets[fwd] = append(buckets[fwd], e)
		if e.U != e.V {
			buckets[rev] = append(buckets[rev], graph.Edge{U: e.V, V: e.U})
		}
	}
	out, err := exchange(c, buckets)
	if err != nil {
		return nil, err
	}
	if removeDuplicates {
		out = graph.DedupEdges(out)
	}

	return out, nil
}

// AddNonlocalReverseEdges completes a list whose sources are all local:
// reverses of intra-rank pairs are appended directly, only reverses
// pointing at other ranks travel. The result is sorted and deduplicated.
func AddNonlocalReverseEdges(c *comm.Comm, edges []graph.Edge, ranges []graph.VertexRange) ([]graph.Edge, error) {
	local := ranges[c.Rank()]
	buckets := make([][]graph.Edge, c.Size())
	out := make([]graph.Edge, 0, 2*len(edges))
	out = append(out, edges...)
	for _, e := range edges {
		if e.U == e.V {
			continue
		}
		if local.Contains(e.V) {
			out = append(out, graph.Edge{U: e.V, V: e.U})
			continue
		}
		owner := OwnerOf(ranges, e.V)
		if owner < 0 {
			return nil, fmt.Errorf("%w: target %d", ErrNoOwner, e.V)
		}
		buckets[owner] = append(buckets[owner], graph.Edge{U: e.V, V: e.U})
	}
	received, err := comm.Alltoall(c, buckets)
	if err != nil {
		return nil, err
	}
	for _, part := range received {
		out = append(out, part...)
	}

	return graph.DedupEdges(out), nil
}

// FixBrokenEdgeList turns a list holding each undirected pair at least
// once, on whichever rank drew it, into the canonical symmetric
// distributed form.
func FixBrokenEdgeList(c *comm.Comm, edges []graph.Edge, ranges []graph.VertexRange) ([]graph.Edge, error) {
	return AddReverseEdgesAndRedistribute(c, edges, ranges, true)
}

// RedistributeEdgesRoundRobin deals the edges evenly across ranks,
// ignoring vertex ownership. Useful for edge-balanced pipelines.
func RedistributeEdgesRoundRobin(c *comm.Comm, edges []graph.Edge) ([]graph.Edge, error) {
	buckets := make([][]graph.Edge, c.Size())
	for i, e := range edges {
		buckets[(c.Rank()+i)%c.Size()] = append(buckets[(c.Rank()+i)%c.Size()], e)
	}
	received, err := comm.Alltoall(c, buckets)
	if err != nil {
		return nil, err
	}
	var out []graph.Edge
	for _, part := range received {
		out = append(out, part...)
	}

	return out, nil
}

// exchange runs the Alltoall, flattens and sorts.
func exchange(c *comm.Comm, buckets [][]graph.Edge) ([]graph.Edge, error) {
	received, err := comm.Alltoall(c, buckets)
	if err != nil {
		return nil, err
	}
	var out []graph.Edge
	for _, part := range received {
		out = append(out, part...)
	}
	graph.SortEdges(out)

	return out, nil
}
