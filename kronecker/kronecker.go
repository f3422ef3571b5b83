package kronecker

import (
	"math/bits"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/postprocess"
	"github.com/katalvlaran/kagen/rng"
)

// Stream labels: the binomial edge-budget tree and the per-chunk descents.
const (
	labelEdgeSplit uint64 = 0x6b72_0001
	labelChunkDraw uint64 = 0x6b72_0002
)

// Graph500 initiator matrix, used when the probabilities are unset.
const (
	graph500A = 0.57
	graph500B = 0.19
	graph500C = 0.19
)

// Factory builds the quadrant-descent generators.
type Factory struct{}

// Normalize requires a power-of-two n and chunk count, defaults the
// initiator to Graph500 and validates the probability simplex.
func (Factory) Normalize(cfg generator.Config, size int) (generator.Config, error) {
	if cfg.Generator != generator.TypeKronecker && cfg.Generator != generator.TypeRMAT {
		return cfg, generator.ConfigErrorf("model %s is not a quadrant model", cfg.Generator)
	}
	if !generator.IsPowerOfTwo(cfg.N) {
		return cfg, generator.ConfigErrorf("number of vertices (%d) must be a power of two", cfg.N)
	}
	if cfg.M < 0 {
		return cfg, generator.ConfigErrorf("number of edges (%d) must be non-negative", cfg.M)
	}
	if !cfg.SelfLoops && cfg.N == 1 && cfg.M > 0 {
		return cfg, generator.ConfigErrorf("a single vertex admits only self-loops")
	}
	if cfg.RMatA == 0 && cfg.RMatB == 0 && cfg.RMatC == 0 {
		cfg.RMatA, cfg.RMatB, cfg.RMatC = graph500A, graph500B, graph500C
	}
	if cfg.RMatA < 0 || cfg.RMatB < 0 || cfg.RMatC < 0 || cfg.RMatA+cfg.RMatB+cfg.RMatC > 1 {
		return cfg, generator.ConfigErrorf("quadrant probabilities (%v, %v, %v) must be non-negative and sum to at most one",
			cfg.RMatA, cfg.RMatB, cfg.RMatC)
	}

	return generator.EnsurePowerOfTwoChunks(cfg, size)
}

// Create builds the generator for one rank.
func (Factory) Create(cfg generator.Config, rank, size int) (generator.Generator, error) {
	return &Kronecker{cfg: cfg, rank: rank, size: size, rng: rng.New(cfg.Seed)}, nil
}

// Kronecker draws m independent quadrant-descent edges; it serves both
// the Kronecker and the R-MAT configuration.
type Kronecker struct {
	generator.EdgeListBase

	cfg  generator.Config
	rank int
	size int
	rng  rng.RNG
}

// Generate draws the local chunks' edge shares.
func (g *Kronecker) Generate(rep graph.Representation) error {
	g.Reset(rep)
	from, to := generator.VertexRangeOfChunk(int64(g.rank), g.cfg.N, int64(g.size))
	g.SetVertexRange(from, to)

	scale := bits.Len64(uint64(g.cfg.N)) - 1
	clo, chi := generator.ChunkRange(g.rank, g.cfg.K, g.size)
	for c := clo; c < chi; c++ {
		share, _ := g.rng.SplitIID(labelEdgeSplit, g.cfg.K, g.cfg.M, c)
		rnd := g.rng.Stream(labelChunkDraw, uint64(c))
		for i := int64(0); i < share; i++ {
			var u, v int64
			for {
				u, v = 0, 0
				for bit := scale - 1; bit >= 0; bit-- {
					r := rnd.Float64()
					switch {
					case r < g.cfg.RMatA:
						// top-left: both bits stay zero
					case r < g.cfg.RMatA+g.cfg.RMatB:
						v |= 1 << bit
					case r < g.cfg.RMatA+g.cfg.RMatB+g.cfg.RMatC:
						u |= 1 << bit
					default:
						u |= 1 << bit
						v |= 1 << bit
					}
				}
				if g.cfg.SelfLoops || u != v {
					break
				}
			}
			g.PushEdge(u, v)
		}
	}

	return nil
}

// Finalize routes every edge to the owner of its source and converts the
// representation. Duplicates are kept: the model is a multigraph.
func (g *Kronecker) Finalize(c *comm.Comm) error {
	if !g.cfg.SkipPostprocessing && c != nil && c.Size() > 1 {
		ranges, err := postprocess.GatherVertexRanges(c, g.VertexRange())
		if err != nil {
			return err
		}
		edges, err := postprocess.RedistributeEdgesByVertexRange(c, g.Edges(), ranges)
		if err != nil {
			return err
		}
		g.SetEdges(edges)
	}

	return g.FinalizeRepresentation()
}

// Requirements demands a power-of-two chunk count.
func (g *Kronecker) Requirements() generator.Requirement { return generator.ReqPowerOfTwoChunks }

// Features reports ungrouped directed output.
func (g *Kronecker) Features() generator.Feature { return generator.FeatRedistribute }
