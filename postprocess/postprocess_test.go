package postprocess_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/postprocess"
)

// testRange splits [0, 12) over 3 ranks.
func testRange(rank int) graph.VertexRange {
	return graph.VertexRange{From: int64(rank) * 4, To: int64(rank)*4 + 4}
}

func TestOwnerOf(t *testing.T) {
	ranges := []graph.VertexRange{{From: 0, To: 4}, {From: 4, To: 8}, {From: 8, To: 12}}
	assert.Equal(t, 0, postprocess.OwnerOf(ranges, 0))
	assert.Equal(t, 1, postprocess.OwnerOf(ranges, 7))
	assert.Equal(t, 2, postprocess.OwnerOf(ranges, 11))
	assert.Equal(t, -1, postprocess.OwnerOf(ranges, 12))
	assert.Equal(t, -1, postprocess.OwnerOf(ranges, -1))
}

func TestRedistributeEdgesByVertexRange(t *testing.T) {
	results := make([][]graph.Edge, 3)
	err := comm.Run(3, func(c *comm.Comm) error {
		ranges, err := postprocess.GatherVertexRanges(c, testRange(c.Rank()))
		if err != nil {
			return err
		}
		// Every rank holds edges whose sources belong elsewhere.
		local := []graph.Edge{
			{U: int64((c.Rank()+1)%3) * 4, V: 1},
			{U: int64((c.Rank()+2)%3)*4 + 1, V: 2},
		}
		out, err := postprocess.RedistributeEdgesByVertexRange(c, local, ranges)
		if err != nil {
			return err
		}
		results[c.Rank()] = out
		return nil
	})
	require.NoError(t, err)

	total := 0
	for rank, edges := range results {
		vr := testRange(rank)
		assert.True(t, sort.SliceIsSorted(edges, func(i, j int) bool {
			if edges[i].U != edges[j].U {
				return edges[i].U < edges[j].U
			}
			return edges[i].V < edges[j].V
		}))
		for _, e := range edges {
			assert.True(t, vr.Contains(e.U), "rank %d received foreign source %d", rank, e.U)
		}
		total += len(edges)
	}
	assert.Equal(t, 6, total)
}

func TestAddReverseEdgesAndRedistribute(t *testing.T) {
	results := make([][]graph.Edge, 3)
	err := comm.Run(3, func(c *comm.Comm) error {
		ranges, err := postprocess.GatherVertexRanges(c, testRange(c.Rank()))
		if err != nil {
			return err
		}
		// Rank 0 contributes one cross-rank pair, emitted once.
		var local []graph.Edge
		if c.Rank() == 0 {
			local = []graph.Edge{{U: 1, V: 9}}
		}
		out, err := postprocess.AddReverseEdgesAndRedistribute(c, local, ranges, true)
		if err != nil {
			return err
		}
		results[c.Rank()] = out
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []graph.Edge{{U: 1, V: 9}}, results[0])
	assert.Empty(t, results[1])
	assert.Equal(t, []graph.Edge{{U: 9, V: 1}}, results[2])
}

func TestAddReverseEdges_DeduplicatesDoubleOrientation(t *testing.T) {
	results := make([][]graph.Edge, 2)
	err := comm.Run(2, func(c *comm.Comm) error {
		ranges := []graph.VertexRange{{From: 0, To: 4}, {From: 4, To: 8}}
		// Both orientations of {1, 5} already exist on their owners.
		var local []graph.Edge
		if c.Rank() == 0 {
			local = []graph.Edge{{U: 1, V: 5}}
		} else {
			local = []graph.Edge{{U: 5, V: 1}}
		}
		out, err := postprocess.AddReverseEdgesAndRedistribute(c, local, ranges, true)
		if err != nil {
			return err
		}
		results[c.Rank()] = out
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []graph.Edge{{U: 1, V: 5}}, results[0])
	assert.Equal(t, []graph.Edge{{U: 5, V: 1}}, results[1])
}

func TestAddNonlocalReverseEdges(t *testing.T) {
	results := make([][]graph.Edge, 2)
	err := comm.Run(2, func(c *comm.Comm) error {
		ranges := []graph.VertexRange{{From: 0, To: 4}, {From: 4, To: 8}}
		// Sources are local; one intra-rank pair, one cross-rank pair.
		var local []graph.Edge
		if c.Rank() == 0 {
			local = []graph.Edge{{U: 0, V: 2}, {U: 1, V: 6}}
		}
		out, err := postprocess.AddNonlocalReverseEdges(c, local, ranges)
		if err != nil {
			return err
		}
		results[c.Rank()] = out
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []graph.Edge{{U: 0, V: 2}, {U: 1, V: 6}, {U: 2, V: 0}}, results[0])
	assert.Equal(t, []graph.Edge{{U: 6, V: 1}}, results[1])
}

func TestRedistributeEdgesRoundRobin(t *testing.T) {
	counts := make([]int, 4)
	err := comm.Run(4, func(c *comm.Comm) error {
		// Rank 0 holds everything; the deal spreads it out.
		var local []graph.Edge
		if c.Rank() == 0 {
			for i := int64(0); i < 40; i++ {
				local = append(local, graph.Edge{U: i, V: i + 1})
			}
		}
		out, err := postprocess.RedistributeEdgesRoundRobin(c, local)
		if err != nil {
			return err
		}
		counts[c.Rank()] = len(out)
		return nil
	})
	require.NoError(t, err)

	total := 0
	for rank, n := range counts {
		assert.Equal(t, 10, n, "rank %d", rank)
		total += n
	}
	assert.Equal(t, 40, total)
}
