package kagen_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kagen"
	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/graph"
)

// runGroup generates one graph per rank and returns them indexed by rank.
func runGroup(t *testing.T, size int, gen func(*kagen.KaGen) (graph.Graph, error)) []graph.Graph {
	t.Helper()
	out := make([]graph.Graph, size)
	err := comm.Run(size, func(c *comm.Comm) error {
		g, err := gen(kagen.New(c))
		if err != nil {
			return err
		}
		out[c.Rank()] = g
		return nil
	})
	require.NoError(t, err)

	return out
}

func edgeSet(t *testing.T, graphs []graph.Graph) map[graph.Edge]int {
	t.Helper()
	set := make(map[graph.Edge]int)
	for _, g := range graphs {
		for _, e := range g.Edges {
			set[e]++
		}
	}

	return set
}

func TestScenario_UndirectedGNM(t *testing.T) {
	// The chunk count is pinned so single- and multi-rank runs agree.
	const options = "type=gnm_undirected;n=1024;m=4096;seed=1;k=4"
	gen := func(k *kagen.KaGen) (graph.Graph, error) {
		k.EnableValidation()
		return k.GenerateFromOptionString(options)
	}
	single := edgeSet(t, runGroup(t, 1, gen))
	multi := edgeSet(t, runGroup(t, 4, gen))

	assert.Equal(t, single, multi)
	assert.Len(t, multi, 2*4096)
	for e, count := range multi {
		assert.Equal(t, 1, count)
		assert.NotEqual(t, e.U, e.V)
		_, ok := multi[graph.Edge{U: e.V, V: e.U}]
		assert.True(t, ok, "missing reverse of %+v", e)
	}
}

func TestScenario_RGG2DWithCoordinates(t *testing.T) {
	const (
		n = 1000
		r = 0.05
	)
	graphs := runGroup(t, 4, func(k *kagen.KaGen) (graph.Graph, error) {
		return k.GenerateFromOptionString("type=rgg_2d;n=1000;radius=0.05;seed=1;coordinates")
	})

	coords := make([]graph.Coord2D, n)
	var covered int64
	for _, g := range graphs {
		require.Len(t, g.Coordinates2D, int(g.VertexRange.Len()))
		for i, p := range g.Coordinates2D {
			coords[g.VertexRange.From+int64(i)] = p
		}
		covered += g.VertexRange.Len()
	}
	assert.EqualValues(t, n, covered)

	for e := range edgeSet(t, graphs) {
		dx := coords[e.U].X - coords[e.V].X
		dy := coords[e.U].Y - coords[e.V].Y
		assert.LessOrEqual(t, math.Hypot(dx, dy), r)
	}
}

func TestScenario_PeriodicGrid(t *testing.T) {
	graphs := runGroup(t, 2, func(k *kagen.KaGen) (graph.Graph, error) {
		k.EnableValidation()
		return k.GenerateFromOptionString("type=grid_2d;grid_x=10;grid_y=10;periodic;prob=1.0")
	})

	set := edgeSet(t, graphs)
	assert.Len(t, set, 400) // 100 vertices, 2 wrap-around axis pairs each

	degree := make(map[int64]int)
	for e := range set {
		degree[e.U]++
	}
	require.Len(t, degree, 100)
	for v, d := range degree {
		assert.Equal(t, 4, d, "vertex %d", v)
	}
}

func TestScenario_DirectedBA(t *testing.T) {
	const (
		n = 10000
		d = 4
	)
	graphs := runGroup(t, 4, func(k *kagen.KaGen) (graph.Graph, error) {
		k.SetSeed(1)
		return k.GenerateBA(n, d, true, false)
	})

	outDegree := make(map[int64]int)
	var total int
	for _, g := range graphs {
		for _, e := range g.Edges {
			outDegree[e.U]++
			total++
		}
	}
	assert.Equal(t, d*(n-d), total)
	assert.Len(t, outDegree, n-d)
	for v, deg := range outDegree {
		assert.Equal(t, d, deg, "vertex %d", v)
		assert.GreaterOrEqual(t, v, int64(d))
	}
}

func TestScenario_RMAT(t *testing.T) {
	graphs := runGroup(t, 4, func(k *kagen.KaGen) (graph.Graph, error) {
		return k.GenerateFromOptionString("type=rmat;N=14;M=17;rmat_a=0.57;rmat_b=0.19;rmat_c=0.19;seed=1")
	})

	var total int64
	for _, g := range graphs {
		total += int64(len(g.Edges))
		for _, e := range g.Edges {
			assert.GreaterOrEqual(t, e.U, int64(0))
			assert.Less(t, e.U, int64(1)<<14)
			assert.GreaterOrEqual(t, e.V, int64(0))
			assert.Less(t, e.V, int64(1)<<14)
			// Self loops are redrawn, never dropped.
			assert.NotEqual(t, e.U, e.V)
		}
	}
	assert.EqualValues(t, int64(1)<<17, total)
}

func TestScenario_RHG(t *testing.T) {
	const (
		n      = 1 << 16
		target = 10.0
	)
	graphs := runGroup(t, 8, func(k *kagen.KaGen) (graph.Graph, error) {
		k.SetSeed(1)
		return k.GenerateRHG(n, 2.5, target)
	})

	// Hundreds of thousands of oriented edges: check membership by map
	// lookup and report totals, never per-edge assertions.
	set := edgeSet(t, graphs)
	var dups, asymmetric int
	for e, count := range set {
		if count != 1 {
			dups++
		}
		if _, ok := set[graph.Edge{U: e.V, V: e.U}]; !ok {
			asymmetric++
		}
	}
	assert.Zero(t, dups)
	assert.Zero(t, asymmetric)
	avg := float64(len(set)) / float64(n)
	assert.InEpsilon(t, target, avg, 0.05)
}

func TestKaGen_SeedChangesTheGraph(t *testing.T) {
	gen := func(seed uint64) map[graph.Edge]int {
		return edgeSet(t, runGroup(t, 1, func(k *kagen.KaGen) (graph.Graph, error) {
			k.SetSeed(seed)
			return k.GenerateUndirectedGNM(256, 512, false)
		}))
	}
	assert.NotEqual(t, gen(1), gen(2))
}

func TestKaGen_RadiusFromEdgeBudget(t *testing.T) {
	// The NM variant should land near the requested edge count.
	const m = 5000
	graphs := runGroup(t, 4, func(k *kagen.KaGen) (graph.Graph, error) {
		k.SetSeed(3)
		return k.GenerateRGG2DNM(2000, m)
	})
	pairs := len(edgeSet(t, graphs)) / 2
	assert.InEpsilon(t, m, pairs, 0.2)
}

func TestKaGen_DerivedVariants(t *testing.T) {
	// BA with an edge budget resolves the attachment degree.
	graphs := runGroup(t, 2, func(k *kagen.KaGen) (graph.Graph, error) {
		return k.GenerateBANM(1000, 3000, true, false)
	})
	var total int
	for _, g := range graphs {
		total += len(g.Edges)
	}
	assert.Equal(t, 3*(1000-3), total)

	// A grid edge budget becomes a keep probability.
	graphs = runGroup(t, 2, func(k *kagen.KaGen) (graph.Graph, error) {
		k.SetSeed(9)
		return k.GenerateGrid2DNM(100, 150, true)
	})
	pairs := len(edgeSet(t, graphs)) / 2
	assert.InEpsilon(t, 150, pairs, 0.15)
}

func TestKaGen_UnknownModel(t *testing.T) {
	err := comm.Run(1, func(c *comm.Comm) error {
		_, err := kagen.New(c).GenerateFromOptionString("type=socialnet")
		assert.ErrorIs(t, err, kagen.ErrUnknownType)
		return nil
	})
	require.NoError(t, err)
}
