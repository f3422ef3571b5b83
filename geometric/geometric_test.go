package geometric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/geometric"
	"github.com/katalvlaran/kagen/graph"
)

// generate runs the model on a group of the given size; the geometric
// Finalize needs no collectives.
func generate(t *testing.T, cfg generator.Config, size int) []graph.Graph {
	t.Helper()
	var f geometric.Factory
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

// globalCoords2 stitches the per-rank coordinate arrays into one slice
// indexed by global vertex ID.
func globalCoords2(t *testing.T, graphs []graph.Graph, n int) []graph.Coord2D {
	t.Helper()
	coords := make([]graph.Coord2D, n)
	var covered int64
	for _, g := range graphs {
		require.Len(t, g.Coordinates2D, int(g.VertexRange.Len()))
		for i, p := range g.Coordinates2D {
			coords[g.VertexRange.From+int64(i)] = p
		}
		covered += g.VertexRange.Len()
	}
	require.EqualValues(t, n, covered)

	return coords
}

func TestRGG2D_EdgesMatchBruteForce(t *testing.T) {
	const (
		n = 1000
		r = 0.05
	)
	cfg := generator.Config{Generator: generator.TypeRGG2D, N: n, R: r, Coordinates: true, Seed: 1}
	graphs := generate(t, cfg, 4)
	set := allEdges(graphs)
	coords := globalCoords2(t, graphs, n)

	// Every reported edge respects the radius; every close pair appears.
	for e, count := range set {
		assert.Equal(t, 1, count, "duplicate edge %+v", e)
		assert.NotEqual(t, e.U, e.V)
		assert.Contains(t, set, graph.Edge{U: e.V, V: e.U})
		dx := coords[e.U].X - coords[e.V].X
		dy := coords[e.U].Y - coords[e.V].Y
		assert.LessOrEqual(t, dx*dx+dy*dy, r*r, "edge %+v too long", e)
	}
	expected := 0
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			dx := coords[u].X - coords[v].X
			dy := coords[u].Y - coords[v].Y
			if dx*dx+dy*dy <= r*r {
				expected += 2
				assert.Contains(t, set, graph.Edge{U: int64(u), V: int64(v)},
					"missing close pair (%d, %d)", u, v)
			}
		}
	}
	assert.Len(t, set, expected)
}

func TestRGG2D_DeterministicAcrossGroupSizes(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeRGG2D, N: 500, R: 0.08, K: 4, Seed: 3}
	assert.Equal(t, allEdges(generate(t, cfg, 1)), allEdges(generate(t, cfg, 4)))
}

func TestRGG2D_PeriodicWrapsDistances(t *testing.T) {
	const r = 0.1
	cfg := generator.Config{
		Generator: generator.TypeRGG2D, N: 600, R: r, K: 4,
		Periodic: true, Coordinates: true, Seed: 5,
	}
	graphs := generate(t, cfg, 4)
	set := allEdges(graphs)
	coords := globalCoords2(t, graphs, 600)

	torus := func(d float64) float64 {
		d = math.Abs(d)
		if d > 0.5 {
			d = 1 - d
		}
		return d
	}
	wrapped := 0
	for e := range set {
		assert.Contains(t, set, graph.Edge{U: e.V, V: e.U})
		dx := torus(coords[e.U].X - coords[e.V].X)
		dy := torus(coords[e.U].Y - coords[e.V].Y)
		assert.LessOrEqual(t, dx*dx+dy*dy, r*r)
		if math.Abs(coords[e.U].X-coords[e.V].X) > 0.5 || math.Abs(coords[e.U].Y-coords[e.V].Y) > 0.5 {
			wrapped++
		}
	}
	assert.Greater(t, wrapped, 0, "no edge crossed the torus seam")
}

func TestRGG3D_EdgesMatchBruteForce(t *testing.T) {
	const (
		n = 400
		r = 0.12
	)
	cfg := generator.Config{Generator: generator.TypeRGG3D, N: n, R: r, K: 8, Coordinates: true, Seed: 7}
	graphs := generate(t, cfg, 2)
	set := allEdges(graphs)

	coords := make([]graph.Coord3D, n)
	for _, g := range graphs {
		require.Len(t, g.Coordinates3D, int(g.VertexRange.Len()))
		for i, p := range g.Coordinates3D {
			coords[g.VertexRange.From+int64(i)] = p
		}
	}

	expected := 0
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			dx := coords[u].X - coords[v].X
			dy := coords[u].Y - coords[v].Y
			dz := coords[u].Z - coords[v].Z
			if dx*dx+dy*dy+dz*dz <= r*r {
				expected += 2
				assert.Contains(t, set, graph.Edge{U: int64(u), V: int64(v)})
			}
		}
	}
	assert.Len(t, set, expected)
}

func TestRDG2D_PlanarSymmetricTriangulation(t *testing.T) {
	const n = 500
	cfg := generator.Config{Generator: generator.TypeRDG2D, N: n, Coordinates: true, Seed: 1}
	graphs := generate(t, cfg, 1)
	set := allEdges(graphs)

	require.NotEmpty(t, set)
	for e, count := range set {
		assert.Equal(t, 1, count)
		assert.NotEqual(t, e.U, e.V)
		assert.Contains(t, set, graph.Edge{U: e.V, V: e.U})
	}
	// A planar triangulation has at most 3n-6 undirected edges and, being
	// connected, at least n-1.
	pairs := len(set) / 2
	assert.LessOrEqual(t, pairs, 3*n-6)
	assert.GreaterOrEqual(t, pairs, n-1)
}

func TestRDG2D_LocalSymmetryAcrossChunks(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeRDG2D, N: 800, K: 4, Seed: 2}
	graphs := generate(t, cfg, 4)
	set := allEdges(graphs)
	require.NotEmpty(t, set)
	for e := range set {
		assert.Contains(t, set, graph.Edge{U: e.V, V: e.U}, "missing reverse of %+v", e)
	}
}

func TestNormalize_RadiusFromEdgeBudget(t *testing.T) {
	var f geometric.Factory
	cfg, err := f.Normalize(generator.Config{Generator: generator.TypeRGG2D, N: 1000, M: 5000}, 1)
	require.NoError(t, err)
	want := math.Sqrt(2 * 5000 / (math.Pi * 1000 * 999))
	assert.InDelta(t, want, cfg.R, 1e-12)
}

func TestNormalize_Rejections(t *testing.T) {
	var f geometric.Factory

	// Radius wider than a chunk breaks the neighbor-cell bound.
	_, err := f.Normalize(generator.Config{Generator: generator.TypeRGG2D, N: 100, R: 0.6, K: 4}, 4)
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = f.Normalize(generator.Config{Generator: generator.TypeRGG2D, N: 100}, 1)
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = f.Normalize(generator.Config{Generator: generator.TypeRDG3D, N: 100}, 1)
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = f.Normalize(generator.Config{Generator: generator.TypeRGG3D, N: 100, R: 0.1, K: 4}, 4)
	assert.ErrorIs(t, err, generator.ErrConfiguration)
}
