package graph

import "sort"

// BuildCSRFromEdgeList converts an edge list into CSR form for the owned
// vertex range. Edge weights, when given, are permuted alongside their
// edges. The input slices are not modified.
//
// AdjNcy ends up sorted ascending per source vertex.
// Complexity: O(V + E log deg).
func BuildCSRFromEdgeList(vr VertexRange, edges []Edge, weights []int64) (xadj, adjncy, outWeights []int64, err error) {
	if len(weights) != 0 && len(weights) != len(edges) {
		return nil, nil, nil, ErrWeightCount
	}

	n := vr.Len()
	xadj = make([]int64, n+1)
	for _, e := range edges {
		if !vr.Contains(e.U) {
			return nil, nil, nil, ErrEdgeOutOfRange
		}
		xadj[e.U-vr.From+1]++
	}
	for i := int64(1); i <= n; i++ {
		xadj[i] += xadj[i-1]
	}

	adjncy = make([]int64, len(edges))
	if len(weights) != 0 {
		outWeights = make([]int64, len(edges))
	}
	fill := make([]int64, n)
	for i, e := range edges {
		u := e.U - vr.From
		pos := xadj[u] + fill[u]
		adjncy[pos] = e.V
		if outWeights != nil {
			outWeights[pos] = weights[i]
		}
		fill[u]++
	}

	// Per-source ascending order; weights follow their adjacency entry.
	for u := int64(0); u < n; u++ {
		lo, hi := xadj[u], xadj[u+1]
		if outWeights == nil {
			row := adjncy[lo:hi]
			sort.Slice(row, func(i, j int) bool { return row[i] < row[j] })
			continue
		}
		row := adjncy[lo:hi]
		wrow := outWeights[lo:hi]
		sort.Sort(&rowSorter{adj: row, w: wrow})
	}

	return xadj, adjncy, outWeights, nil
}

// BuildEdgeListFromCSR expands CSR adjacency back into explicit pairs.
// Complexity: O(V + E).
func BuildEdgeListFromCSR(vr VertexRange, xadj, adjncy []int64) []Edge {
	edges := make([]Edge, 0, len(adjncy))
	for u := int64(0); u < vr.Len(); u++ {
		for i := xadj[u]; i < xadj[u+1]; i++ {
			edges = append(edges, Edge{U: vr.From + u, V: adjncy[i]})
		}
	}

	return edges
}

// rowSorter co-sorts one adjacency row with its weights.
type rowSorter struct {
	adj []int64
	w   []int64
}

func (s *rowSorter) Len() int           { return len(s.adj) }
func (s *rowSorter) Less(i, j int) bool { return s.adj[i] < s.adj[j] }
func (s *rowSorter) Swap(i, j int) {
	s.adj[i], s.adj[j] = s.adj[j], s.adj[i]
	s.w[i], s.w[j] = s.w[j], s.w[i]
}
