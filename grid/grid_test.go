package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/grid"
)

// generate runs the lattice on a group of the given size (the lattice
// Finalize needs no collectives) and returns the per-rank graphs.
func generate(t *testing.T, cfg generator.Config, size int) []graph.Graph {
	t.Helper()
	var f grid.Factory
	cfg, err := f.Normalize(cfg, size)
	require.NoError(t, err)

	out := make([]graph.Graph, size)
	for rank := 0; rank < size; rank++ {
		gen, err := f.Create(cfg, rank, size)
		require.NoError(t, err)
		require.NoError(t, gen.Generate(graph.EdgeList))
		require.NoError(t, gen.Finalize(nil))
		out[rank] = gen.Take()
	}

	return out
}

func allEdges(graphs []graph.Graph) map[graph.Edge]int {
	set := make(map[graph.Edge]int)
	for _, g := range graphs {
		for _, e := range g.Edges {
			set[e]++
		}
	}

	return set
}

func TestGrid2D_PeriodicFullLattice(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeGrid2D, GridX: 10, GridY: 10, Periodic: true, Seed: 1}
	graphs := generate(t, cfg, 4)
	set := allEdges(graphs)

	// 100 vertices, degree 4 each: 200 undirected pairs, 400 entries.
	require.Len(t, set, 400)
	degree := make(map[int64]int)
	for e, count := range set {
		assert.Equal(t, 1, count)
		assert.Contains(t, set, graph.Edge{U: e.V, V: e.U})
		degree[e.U]++
	}
	for v, d := range degree {
		assert.Equal(t, 4, d, "vertex %d", v)
	}
}

func TestGrid2D_NonPeriodicEdgeCount(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeGrid2D, GridX: 4, GridY: 5, Seed: 1}
	set := allEdges(generate(t, cfg, 1))

	// (gx-1)*gy + gx*(gy-1) = 15 + 16 = 31 pairs.
	assert.Len(t, set, 62)
}

func TestGrid2D_RangesPartitionAndContiguousIDs(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeGrid2D, GridX: 7, GridY: 9, Coordinates: true, Seed: 2}
	graphs := generate(t, cfg, 4)

	var next int64
	for rank, g := range graphs {
		assert.Equal(t, next, g.VertexRange.From, "rank %d range not consecutive", rank)
		next = g.VertexRange.To
		assert.Len(t, g.Coordinates2D, int(g.VertexRange.Len()))
		for _, e := range g.Edges {
			assert.True(t, g.VertexRange.Contains(e.U))
			assert.GreaterOrEqual(t, e.V, int64(0))
			assert.Less(t, e.V, int64(63))
		}
	}
	assert.EqualValues(t, 63, next)
}

func TestGrid2D_KeepDecisionSymmetric(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeGrid2D, GridX: 12, GridY: 12, P: 0.5, Seed: 7}
	set := allEdges(generate(t, cfg, 4))
	require.NotEmpty(t, set)
	for e := range set {
		assert.Contains(t, set, graph.Edge{U: e.V, V: e.U}, "missing reverse of %+v", e)
	}
	// Roughly half of the 264 lattice pairs survive.
	assert.Greater(t, len(set), 130)
	assert.Less(t, len(set), 400)
}

func TestGrid2D_EdgeBudgetSolvesProbability(t *testing.T) {
	var f grid.Factory
	cfg, err := f.Normalize(generator.Config{
		Generator: generator.TypeGrid2D, GridX: 10, GridY: 10, Periodic: true, M: 200,
	}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cfg.P, 1e-12)

	cfg, err = f.Normalize(generator.Config{
		Generator: generator.TypeGrid2D, GridX: 10, GridY: 10, Periodic: true, M: 50,
	}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, cfg.P, 1e-12)
}

func TestGrid2D_DeterministicAcrossGroupSizes(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeGrid2D, GridX: 8, GridY: 8, K: 4, P: 0.7, Seed: 3}
	assert.Equal(t, allEdges(generate(t, cfg, 1)), allEdges(generate(t, cfg, 4)))
}

func TestGrid3D_NonPeriodicEdgeCount(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeGrid3D, GridX: 3, GridY: 3, GridZ: 3, Seed: 1}
	set := allEdges(generate(t, cfg, 1))

	// 3 axes x 2*3*3 pairs each = 54 pairs.
	require.Len(t, set, 108)
	for e := range set {
		assert.Contains(t, set, graph.Edge{U: e.V, V: e.U})
	}
}

func TestGrid3D_PeriodicDegree(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeGrid3D, GridX: 4, GridY: 4, GridZ: 4, Periodic: true, Seed: 1}
	graphs := generate(t, cfg, 8)
	set := allEdges(graphs)

	degree := make(map[int64]int)
	for e := range set {
		degree[e.U]++
	}
	require.Len(t, degree, 64)
	for v, d := range degree {
		assert.Equal(t, 6, d, "vertex %d", v)
	}
}

func TestNormalize_Rejections(t *testing.T) {
	var f grid.Factory

	_, err := f.Normalize(generator.Config{Generator: generator.TypeGrid2D, GridY: 4}, 1)
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = f.Normalize(generator.Config{Generator: generator.TypeGrid2D, GridX: 4, GridY: 4, K: 8}, 1)
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = f.Normalize(generator.Config{Generator: generator.TypeGrid3D, GridX: 4, GridY: 4, GridZ: 4, K: 9}, 1)
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = f.Normalize(generator.Config{Generator: generator.TypeGNMDirected, N: 4}, 1)
	assert.ErrorIs(t, err, generator.ErrConfiguration)
}
