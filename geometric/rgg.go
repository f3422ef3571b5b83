package geometric

import (
	"math"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/rng"
)

// Factory builds the geometric generators.
type Factory struct{}

// Normalize enforces the chunk-grid shape, resolves a radius from an
// edge budget when asked, and bounds the radius by the chunk width.
func (Factory) Normalize(cfg generator.Config, size int) (generator.Config, error) {
	if cfg.N <= 0 {
		return cfg, generator.ConfigErrorf("number of vertices (%d) must be positive", cfg.N)
	}
	var err error
	switch cfg.Generator {
	case generator.TypeRGG2D:
		if cfg, err = generator.EnsureSquareChunks(cfg, size); err != nil {
			return cfg, err
		}
		if cfg.R == 0 && cfg.M > 0 {
			cfg.R = math.Sqrt(2 * float64(cfg.M) / (math.Pi * float64(cfg.N) * float64(cfg.N-1)))
		}
		return checkRadius(cfg, intRoot(cfg.K, 2))
	case generator.TypeRGG3D:
		if cfg, err = generator.EnsureCubicChunks(cfg, size); err != nil {
			return cfg, err
		}
		if cfg.R == 0 && cfg.M > 0 {
			cfg.R = math.Cbrt(3 * float64(cfg.M) / (2 * math.Pi * float64(cfg.N) * float64(cfg.N-1)))
		}
		return checkRadius(cfg, intRoot(cfg.K, 3))
	case generator.TypeRDG2D:
		return generator.EnsureSquareChunks(cfg, size)
	case generator.TypeRDG3D:
		return cfg, generator.ConfigErrorf("rdg_3d has no triangulation backend")
	}

	return cfg, generator.ConfigErrorf("model %s is not geometric", cfg.Generator)
}

func checkRadius(cfg generator.Config, dim int64) (generator.Config, error) {
	if cfg.R <= 0 {
		return cfg, generator.ConfigErrorf("connection radius (%v) must be positive", cfg.R)
	}
	if cfg.R > 1/float64(dim) {
		return cfg, generator.ConfigErrorf("connection radius (%v) exceeds the chunk width (%v); lower the chunk count",
			cfg.R, 1/float64(dim))
	}

	return cfg, nil
}

// Create builds the generator for one rank.
func (Factory) Create(cfg generator.Config, rank, size int) (generator.Generator, error) {
	r := rng.New(cfg.Seed)
	switch cfg.Generator {
	case generator.TypeRGG2D:
		return &RGG2D{rank: rank, size: size, cfg: cfg, space: newSpace2(cfg, r, cfg.R)}, nil
	case generator.TypeRGG3D:
		return &RGG3D{rank: rank, size: size, cfg: cfg, space: newSpace3(cfg, r, cfg.R)}, nil
	case generator.TypeRDG2D:
		return &RDG2D{rank: rank, size: size, cfg: cfg, space: newSpace2(cfg, r, 0)}, nil
	}

	return nil, generator.ConfigErrorf("model %s is not geometric", cfg.Generator)
}

// RGG2D connects unit-square points within Euclidean distance r.
type RGG2D struct {
	generator.EdgeListBase

	cfg   generator.Config
	rank  int
	size  int
	space *space2
}

// Generate walks the local cells and their closed neighborhoods.
func (g *RGG2D) Generate(rep graph.Representation) error {
	g.Reset(rep)
	clo, chi := generator.ChunkRange(g.rank, g.cfg.K, g.size)
	g.SetVertexRange(g.space.chunkOffset(clo), g.space.chunkOffset(chi))

	r2 := g.cfg.R * g.cfg.R
	for c := clo; c < chi; c++ {
		g.chunkEdges(c, r2)
	}

	return nil
}

func (g *RGG2D) chunkEdges(c int64, r2 float64) {
	s := g.space
	cx, cy := c%s.dim, c/s.dim
	for cell, bucket := range s.chunkPoints(c) {
		gx0 := cx*s.cells + int64(cell)%s.cells
		gy0 := cy*s.cells + int64(cell)/s.cells
		neighborhood := g.neighborhood(gx0, gy0)
		for _, p := range bucket {
			if g.cfg.Coordinates {
				g.PushCoordinate2D(p.x, p.y)
			}
			for _, key := range neighborhood {
				nb, owner := s.cellBucket(key)
				for _, q := range nb {
					if owner == c && q.id <= p.id {
						continue
					}
					if s.dist2(p, q) > r2 {
						continue
					}
					g.PushEdge(p.id, q.id)
					if owner == c {
						g.PushEdge(q.id, p.id)
					}
				}
			}
		}
	}
}

// neighborhood lists the distinct canonical cells of the closed 3x3
// neighborhood; wrap on a small torus can collapse offsets.
func (g *RGG2D) neighborhood(gx, gy int64) []int64 {
	keys := make([]int64, 0, 9)
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			key, ok := g.space.cellKey(gx+dx, gy+dy)
			if !ok || containsKey(keys, key) {
				continue
			}
			keys = append(keys, key)
		}
	}

	return keys
}

// Finalize converts the representation; symmetry is already complete.
func (g *RGG2D) Finalize(_ *comm.Comm) error { return g.FinalizeRepresentation() }

// Requirements demands a perfect-square chunk count.
func (g *RGG2D) Requirements() generator.Requirement { return generator.ReqSquareChunks }

// Features reports locally symmetric output with coordinates.
func (g *RGG2D) Features() generator.Feature {
	return generator.FeatUndirected | generator.FeatCoordinates
}

// RGG3D connects unit-cube points within Euclidean distance r.
type RGG3D struct {
	generator.EdgeListBase

	cfg   generator.Config
	rank  int
	size  int
	space *space3
}

// Generate walks the local cells and their closed neighborhoods.
func (g *RGG3D) Generate(rep graph.Representation) error {
	g.Reset(rep)
	clo, chi := generator.ChunkRange(g.rank, g.cfg.K, g.size)
	g.SetVertexRange(g.space.chunkOffset(clo), g.space.chunkOffset(chi))

	r2 := g.cfg.R * g.cfg.R
	for c := clo; c < chi; c++ {
		g.chunkEdges(c, r2)
	}

	return nil
}

func (g *RGG3D) chunkEdges(c int64, r2 float64) {
	s := g.space
	cx := c % s.dim
	cy := (c / s.dim) % s.dim
	cz := c / (s.dim * s.dim)
	for cell, bucket := range s.chunkPoints(c) {
		gx0 := cx*s.cells + int64(cell)%s.cells
		gy0 := cy*s.cells + (int64(cell)/s.cells)%s.cells
		gz0 := cz*s.cells + int64(cell)/(s.cells*s.cells)
		neighborhood := g.neighborhood(gx0, gy0, gz0)
		for _, p := range bucket {
			if g.cfg.Coordinates {
				g.PushCoordinate3D(p.x, p.y, p.z)
			}
			for _, key := range neighborhood {
				nb, owner := s.cellBucket(key)
				for _, q := range nb {
					if owner == c && q.id <= p.id {
						continue
					}
					if s.dist2(p, q) > r2 {
						continue
					}
					g.PushEdge(p.id, q.id)
					if owner == c {
						g.PushEdge(q.id, p.id)
					}
				}
			}
		}
	}
}

// neighborhood lists the distinct canonical cells of the closed 3x3x3
// neighborhood.
func (g *RGG3D) neighborhood(gx, gy, gz int64) []int64 {
	keys := make([]int64, 0, 27)
	for dz := int64(-1); dz <= 1; dz++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				key, ok := g.space.cellKey(gx+dx, gy+dy, gz+dz)
				if !ok || containsKey(keys, key) {
					continue
				}
				keys = append(keys, key)
			}
		}
	}

	return keys
}

// Finalize converts the representation; symmetry is already complete.
func (g *RGG3D) Finalize(_ *comm.Comm) error { return g.FinalizeRepresentation() }

// Requirements demands a perfect-cube chunk count.
func (g *RGG3D) Requirements() generator.Requirement { return generator.ReqCubicChunks }

// Features reports locally symmetric output with coordinates.
func (g *RGG3D) Features() generator.Feature {
	return generator.FeatUndirected | generator.FeatCoordinates
}

func containsKey(keys []int64, key int64) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}

	return false
}
