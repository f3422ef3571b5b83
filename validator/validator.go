package validator

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/postprocess"
)

// ErrValidation marks a post-generation invariant violation.
var ErrValidation = errors.New("validator: graph invariant violated")

// reduce agrees on the group-wide verdict; any local diagnostic turns
// into an error on every rank.
func reduce(c *comm.Comm, what, diag string) error {
	failed, err := c.AllreduceOr(diag != "")
	if err != nil {
		return err
	}
	if !failed {
		return nil
	}
	if diag == "" {
		diag = "a peer rank reported a violation"
	}

	return fmt.Errorf("%w: %s: %s", ErrValidation, what, diag)
}

// ValidateSimpleGraph checks that every local edge stays inside [0, n),
// that no self loop appears unless selfLoops permits them, and that no
// edge occurs twice.
func ValidateSimpleGraph(c *comm.Comm, g *graph.Graph, n int64, selfLoops bool) error {
	var diag string
	for _, e := range g.Edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			diag = fmt.Sprintf("edge (%d, %d) leaves [0, %d)", e.U, e.V, n)
			break
		}
		if !selfLoops && e.U == e.V {
			diag = fmt.Sprintf("unsolicited self loop at vertex %d", e.U)
			break
		}
	}
	if diag == "" {
		sorted := append([]graph.Edge(nil), g.Edges...)
		graph.SortEdges(sorted)
		for i := 1; i < len(sorted); i++ {
			if sorted[i] == sorted[i-1] {
				diag = fmt.Sprintf("duplicate edge (%d, %d)", sorted[i].U, sorted[i].V)
				break
			}
		}
	}

	return reduce(c, "simple-graph check", diag)
}

// ValidateUndirected verifies (u, v) ∈ E ⇔ (v, u) ∈ E. Pairs with a
// remote head become probes routed to the head's owner in one
// all-to-all; local pairs are checked in place.
func ValidateUndirected(c *comm.Comm, edges []graph.Edge, ranges []graph.VertexRange) error {
	local := make(map[graph.Edge]struct{}, len(edges))
	for _, e := range edges {
		local[e] = struct{}{}
	}

	mine := ranges[c.Rank()]
	buckets := make([][]graph.Edge, c.Size())
	var diag string
	for _, e := range edges {
		rev := graph.Edge{U: e.V, V: e.U}
		if mine.Contains(e.V) {
			if _, ok := local[rev]; !ok && diag == "" {
				diag = fmt.Sprintf("missing reverse of (%d, %d)", e.U, e.V)
			}
			continue
		}
		owner := postprocess.OwnerOf(ranges, e.V)
		if owner < 0 {
			if diag == "" {
				diag = fmt.Sprintf("edge head %d has no owning rank", e.V)
			}
			continue
		}
		buckets[owner] = append(buckets[owner], rev)
	}
	for _, b := range buckets {
		graph.SortEdges(b)
	}
	// Every rank joins the exchange even after a local failure; the
	// verdict is settled by the reduction afterwards.
	probes, err := comm.Alltoall(c, buckets)
	if err != nil {
		return err
	}
	for _, b := range probes {
		for _, probe := range b {
			if _, ok := local[probe]; !ok && diag == "" {
				diag = fmt.Sprintf("missing reverse of (%d, %d)", probe.V, probe.U)
			}
		}
	}

	return reduce(c, "undirected symmetry check", diag)
}

// ValidateRangesConsecutive checks that the owned ranges, ordered by
// rank, tile [0, n) exactly.
func ValidateRangesConsecutive(c *comm.Comm, vr graph.VertexRange, n int64) error {
	ranges, err := postprocess.GatherVertexRanges(c, vr)
	if err != nil {
		return err
	}
	var diag string
	next := int64(0)
	for rank, r := range ranges {
		if r.From != next || r.To < r.From {
			diag = fmt.Sprintf("rank %d owns [%d, %d), expected start %d", rank, r.From, r.To, next)
			break
		}
		next = r.To
	}
	if diag == "" && next != n {
		diag = fmt.Sprintf("ranges cover [0, %d), want [0, %d)", next, n)
	}

	return reduce(c, "consecutive-ranges check", diag)
}

// ActualNumVertices returns one past the largest endpoint referenced by
// any rank's edges, or 0 for an edgeless graph.
func ActualNumVertices(c *comm.Comm, edges []graph.Edge) (int64, error) {
	localMax := int64(-1)
	for _, e := range edges {
		if e.U > localMax {
			localMax = e.U
		}
		if e.V > localMax {
			localMax = e.V
		}
	}
	globalMax, err := c.AllreduceMax(localMax)
	if err != nil {
		return 0, err
	}

	return globalMax + 1, nil
}

// Writers downstream commonly store IDs in 32 bits.
const idWidthLimit = int64(1) << 32

// Warnings reports local oddities that do not halt generation: negative
// weights and vertex IDs too wide for common writer formats.
func Warnings(g *graph.Graph) []string {
	var w []string
	for _, x := range g.VertexWeights {
		if x < 0 {
			w = append(w, "negative vertex weights present")
			break
		}
	}
	for _, x := range g.EdgeWeights {
		if x < 0 {
			w = append(w, "negative edge weights present")
			break
		}
	}
	if g.VertexRange.To > idWidthLimit {
		w = append(w, "vertex IDs exceed 32 bits; some writers truncate")
	}

	return w
}
