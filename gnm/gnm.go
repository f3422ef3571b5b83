package gnm

import (
	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/rng"

	"golang.org/x/exp/rand"
)

// Stream labels of the Erdős–Rényi family. labelEdgeSplit seeds the
// hypergeometric partition tree, labelChunkDraw the per-chunk samplers.
const (
	labelEdgeSplit uint64 = 0x6e6d_0001
	labelChunkDraw uint64 = 0x6e6d_0002
)

// Factory builds the four Erdős–Rényi generators.
type Factory struct{}

// Normalize applies chunk defaults and validates the model size against
// the pair space.
func (Factory) Normalize(cfg generator.Config, size int) (generator.Config, error) {
	if cfg.N <= 0 {
		return cfg, generator.ConfigErrorf("number of vertices (%d) must be positive", cfg.N)
	}
	cfg, err := generator.NormalizeChunks(cfg, size)
	if err != nil {
		return cfg, err
	}
	space := pairSpace{n: cfg.N, selfLoops: cfg.SelfLoops}
	switch cfg.Generator {
	case generator.TypeGNMDirected, generator.TypeGNMUndirected:
		total := space.directedPop(0, cfg.N)
		if cfg.Generator == generator.TypeGNMUndirected {
			total = space.undirectedPop(0, cfg.N)
		}
		if cfg.M < 0 || cfg.M > total {
			return cfg, generator.ConfigErrorf("number of edges (%d) exceeds the pair space (%d)", cfg.M, total)
		}
	case generator.TypeGNPDirected, generator.TypeGNPUndirected:
		if cfg.P < 0 || cfg.P > 1 {
			return cfg, generator.ConfigErrorf("edge probability (%v) must lie in [0, 1]", cfg.P)
		}
	default:
		return cfg, generator.ConfigErrorf("model %s does not belong to the Erdős–Rényi family", cfg.Generator)
	}

	return cfg, nil
}

// Create builds the generator for one rank.
func (Factory) Create(cfg generator.Config, rank, size int) (generator.Generator, error) {
	b := base{
		cfg:   cfg,
		rank:  rank,
		size:  size,
		space: pairSpace{n: cfg.N, selfLoops: cfg.SelfLoops},
		rng:   rng.New(cfg.Seed),
	}
	switch cfg.Generator {
	case generator.TypeGNMDirected:
		return &GNMDirected{base: b}, nil
	case generator.TypeGNMUndirected:
		return &GNMUndirected{base: b}, nil
	case generator.TypeGNPDirected:
		return &GNPDirected{base: b}, nil
	case generator.TypeGNPUndirected:
		return &GNPUndirected{base: b}, nil
	}

	return nil, generator.ConfigErrorf("model %s does not belong to the Erdős–Rényi family", cfg.Generator)
}

// base carries the state shared by the four variants.
type base struct {
	generator.EdgeListBase

	cfg   generator.Config
	rank  int
	size  int
	space pairSpace
	rng   rng.RNG
}

// rowStart returns the first vertex row of chunk c; rowStart(k) == n.
func (b *base) rowStart(c int64) int64 {
	from, _ := generator.VertexRangeOfChunk(c, b.cfg.N, b.cfg.K)

	return from
}

// prepare resets the buffers and records the owned vertex rows. Returns
// the owned chunk interval.
func (b *base) prepare(rep graph.Representation) (clo, chi int64) {
	b.Reset(rep)
	clo, chi = generator.ChunkRange(b.rank, b.cfg.K, b.size)
	b.SetVertexRange(b.rowStart(clo), b.rowStart(chi))

	return clo, chi
}

// chunkStream returns the draw stream of chunk c.
func (b *base) chunkStream(c int64) *rand.Rand {
	return b.rng.Stream(labelChunkDraw, uint64(c))
}

// Finalize converts the representation; no collective work is needed,
// both orientations already sit on their owners.
func (b *base) Finalize(_ *comm.Comm) error {
	return b.FinalizeRepresentation()
}

// Requirements places no shape constraints beyond k >= size.
func (b *base) Requirements() generator.Requirement { return 0 }

// sampleDistinct draws sample distinct indices from [0, population) in
// O(sample) expected time (Floyd's algorithm). Order follows the stream,
// not the index space.
func sampleDistinct(rnd *rand.Rand, population, sample int64) []int64 {
	if sample > population {
		sample = population
	}
	picked := make(map[int64]struct{}, sample)
	out := make([]int64, 0, sample)
	for j := population - sample; j < population; j++ {
		t := rng.UniformInt64(rnd, j+1)
		if _, dup := picked[t]; dup {
			t = j
		}
		picked[t] = struct{}{}
		out = append(out, t)
	}

	return out
}

// GNMDirected samples m directed edges uniformly without replacement.
type GNMDirected struct{ base }

// Generate draws the local chunks' shares of the m edges.
func (g *GNMDirected) Generate(rep graph.Representation) error {
	clo, chi := g.prepare(rep)
	pop := func(lo, hi int64) int64 {
		return g.space.directedPop(g.rowStart(lo), g.rowStart(hi))
	}
	for c := clo; c < chi; c++ {
		share, _ := g.rng.SplitSample(labelEdgeSplit, g.cfg.K, g.cfg.M, pop, c)
		rowFrom := g.rowStart(c)
		chunkPop := g.space.directedPop(rowFrom, g.rowStart(c+1))
		for _, idx := range sampleDistinct(g.chunkStream(c), chunkPop, share) {
			u, v := g.space.directedPair(rowFrom, idx)
			g.PushEdge(u, v)
		}
	}

	return nil
}

// Features reports plain directed output.
func (g *GNMDirected) Features() generator.Feature { return 0 }

// GNMUndirected samples m unordered pairs uniformly without replacement
// and emits both orientations on their owning ranks.
type GNMUndirected struct{ base }

// Generate re-runs the sampling of every chunk whose rows start below the
// local range, keeping the orientations whose source is local. Chunks
// further down cannot touch local rows, their pairs only grow upward.
func (g *GNMUndirected) Generate(rep graph.Representation) error {
	g.prepare(rep)
	vr := g.VertexRange()
	pop := func(lo, hi int64) int64 {
		return g.space.undirectedPop(g.rowStart(lo), g.rowStart(hi))
	}
	for c := int64(0); c < g.cfg.K && g.rowStart(c) < vr.To; c++ {
		share, _ := g.rng.SplitSample(labelEdgeSplit, g.cfg.K, g.cfg.M, pop, c)
		if share == 0 {
			continue
		}
		rowFrom := g.rowStart(c)
		chunkPop := g.space.undirectedPop(rowFrom, g.rowStart(c+1))
		for _, idx := range sampleDistinct(g.chunkStream(c), chunkPop, share) {
			u, v := g.space.undirectedPair(rowFrom, idx)
			if vr.Contains(u) {
				g.PushEdge(u, v)
			}
			if u != v && vr.Contains(v) {
				g.PushEdge(v, u)
			}
		}
	}

	return nil
}

// Features reports locally symmetric output.
func (g *GNMUndirected) Features() generator.Feature { return generator.FeatUndirected }

// GNPDirected includes each directed pair independently with probability p.
type GNPDirected struct{ base }

// Generate gap-samples the local chunks' pair spaces.
func (g *GNPDirected) Generate(rep graph.Representation) error {
	clo, chi := g.prepare(rep)
	for c := clo; c < chi; c++ {
		rowFrom := g.rowStart(c)
		chunkPop := g.space.directedPop(rowFrom, g.rowStart(c+1))
		gs := rng.NewGapSampler(g.chunkStream(c), g.cfg.P, chunkPop)
		for idx, ok := gs.Next(); ok; idx, ok = gs.Next() {
			u, v := g.space.directedPair(rowFrom, idx)
			g.PushEdge(u, v)
		}
	}

	return nil
}

// Features reports plain directed output.
func (g *GNPDirected) Features() generator.Feature { return 0 }

// GNPUndirected includes each unordered pair independently with
// probability p and emits both orientations on their owning ranks.
type GNPUndirected struct{ base }

// Generate gap-samples every chunk whose rows start below the local
// range, keeping the orientations whose source is local.
func (g *GNPUndirected) Generate(rep graph.Representation) error {
	g.prepare(rep)
	vr := g.VertexRange()
	for c := int64(0); c < g.cfg.K && g.rowStart(c) < vr.To; c++ {
		rowFrom := g.rowStart(c)
		chunkPop := g.space.undirectedPop(rowFrom, g.rowStart(c+1))
		gs := rng.NewGapSampler(g.chunkStream(c), g.cfg.P, chunkPop)
		for idx, ok := gs.Next(); ok; idx, ok = gs.Next() {
			u, v := g.space.undirectedPair(rowFrom, idx)
			if vr.Contains(u) {
				g.PushEdge(u, v)
			}
			if u != v && vr.Contains(v) {
				g.PushEdge(v, u)
			}
		}
	}

	return nil
}

// Features reports locally symmetric output.
func (g *GNPUndirected) Features() generator.Feature { return generator.FeatUndirected }
