package barabassi

import (
	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/postprocess"
	"github.com/katalvlaran/kagen/rng"
)

// labelSlot seeds the per-slot uniform draws of the stub walk.
const labelSlot uint64 = 0x6261_0001

// Factory builds the preferential-attachment generator.
type Factory struct{}

// Normalize validates the attachment degree and enforces power-of-two
// chunks.
func (Factory) Normalize(cfg generator.Config, size int) (generator.Config, error) {
	if cfg.Generator != generator.TypeBA {
		return cfg, generator.ConfigErrorf("model %s is not preferential attachment", cfg.Generator)
	}
	if cfg.MinDegree < 1 {
		return cfg, generator.ConfigErrorf("attachment degree (%d) must be at least one", cfg.MinDegree)
	}
	if cfg.N <= cfg.MinDegree {
		return cfg, generator.ConfigErrorf("number of vertices (%d) must exceed the attachment degree (%d)", cfg.N, cfg.MinDegree)
	}

	return generator.EnsurePowerOfTwoChunks(cfg, size)
}

// Create builds the generator for one rank.
func (Factory) Create(cfg generator.Config, rank, size int) (generator.Generator, error) {
	return &BA{cfg: cfg, rank: rank, size: size, rng: rng.New(cfg.Seed)}, nil
}

// BA resolves every local vertex's d attachment targets from hashed
// history.
type BA struct {
	generator.EdgeListBase

	cfg  generator.Config
	rank int
	size int
	rng  rng.RNG
}

// Generate emits the d out-edges of every owned vertex v >= d.
func (g *BA) Generate(rep graph.Representation) error {
	g.Reset(rep)
	clo, chi := generator.ChunkRange(g.rank, g.cfg.K, g.size)
	vfrom, _ := generator.VertexRangeOfChunk(clo, g.cfg.N, g.cfg.K)
	_, vto := generator.VertexRangeOfChunk(chi-1, g.cfg.N, g.cfg.K)
	g.SetVertexRange(vfrom, vto)

	d := g.cfg.MinDegree
	for v := max64(vfrom, d); v < vto; v++ {
		for j := int64(0); j < d; j++ {
			g.PushEdge(v, g.target(v, j))
		}
	}

	return nil
}

// target resolves attachment j of vertex v by the stub walk. A walk
// ending on v itself is re-run with the next attempt salt unless
// self-loops are allowed, keeping the out-degree exact.
func (g *BA) target(v, j int64) int64 {
	for attempt := uint64(0); ; attempt++ {
		w := g.resolve(2*(v*g.cfg.MinDegree+j)+1, attempt)
		if g.cfg.SelfLoops || w != v {
			return w
		}
	}
}

// resolve follows the stub walk down from slot s. The salt perturbs the
// draw at s only; interior slots are always drawn with salt 0, so every
// vertex that walks through a slot sees the value its owner resolved.
func (g *BA) resolve(s int64, salt uint64) int64 {
	for {
		u := rng.UniformInt64(g.rng.Stream(labelSlot, uint64(s), salt), s)
		salt = 0
		if u%2 == 0 {
			return u / 2 / g.cfg.MinDegree
		}
		s = u
	}
}

// Finalize adds the reverse orientations collectively unless the caller
// asked for the directed form, then converts the representation.
func (g *BA) Finalize(c *comm.Comm) error {
	if !g.cfg.Directed && !g.cfg.SkipPostprocessing && c != nil {
		ranges, err := postprocess.GatherVertexRanges(c, g.VertexRange())
		if err != nil {
			return err
		}
		edges, err := postprocess.AddReverseEdgesAndRedistribute(c, g.Edges(), ranges, false)
		if err != nil {
			return err
		}
		g.SetEdges(edges)
	}

	return g.FinalizeRepresentation()
}

// Requirements demands a power-of-two chunk count.
func (g *BA) Requirements() generator.Requirement { return generator.ReqPowerOfTwoChunks }

// Features reports output missing its reverse orientations.
func (g *BA) Features() generator.Feature { return generator.FeatAlmostUndirected }

func max64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}
