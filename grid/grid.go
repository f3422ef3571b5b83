package grid

import (
	"math"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/rng"
)

// labelEdgeKeep seeds the per-edge keep/drop draws. Both chunks sharing
// a boundary edge hash the same canonical pair and agree.
const labelEdgeKeep uint64 = 0x6772_0001

// Factory builds the lattice generators.
type Factory struct{}

// Normalize enforces the chunk-grid shape, records n = |lattice| and
// resolves the keep probability: an explicit edge budget m wins, an
// unset p keeps every edge.
func (Factory) Normalize(cfg generator.Config, size int) (generator.Config, error) {
	var err error
	var total int64
	switch cfg.Generator {
	case generator.TypeGrid2D:
		if cfg.GridX <= 0 || cfg.GridY <= 0 {
			return cfg, generator.ConfigErrorf("grid extents (%d x %d) must be positive", cfg.GridX, cfg.GridY)
		}
		if cfg, err = generator.EnsureSquareChunks(cfg, size); err != nil {
			return cfg, err
		}
		cfg.N = cfg.GridX * cfg.GridY
		total = latticeEdges2D(cfg.GridX, cfg.GridY, cfg.Periodic)
	case generator.TypeGrid3D:
		if cfg.GridX <= 0 || cfg.GridY <= 0 || cfg.GridZ <= 0 {
			return cfg, generator.ConfigErrorf("grid extents (%d x %d x %d) must be positive", cfg.GridX, cfg.GridY, cfg.GridZ)
		}
		if cfg, err = generator.EnsureCubicChunks(cfg, size); err != nil {
			return cfg, err
		}
		cfg.N = cfg.GridX * cfg.GridY * cfg.GridZ
		total = latticeEdges3D(cfg.GridX, cfg.GridY, cfg.GridZ, cfg.Periodic)
	default:
		return cfg, generator.ConfigErrorf("model %s is not a lattice", cfg.Generator)
	}
	switch {
	case cfg.M > 0:
		cfg.P = float64(cfg.M) / float64(total)
		if cfg.P > 1 {
			cfg.P = 1
		}
	case cfg.P == 0:
		cfg.P = 1
	case cfg.P < 0 || cfg.P > 1:
		return cfg, generator.ConfigErrorf("edge probability (%v) must lie in [0, 1]", cfg.P)
	}

	return cfg, nil
}

// Create builds the generator for one rank.
func (Factory) Create(cfg generator.Config, rank, size int) (generator.Generator, error) {
	b := base{cfg: cfg, rank: rank, size: size, rng: rng.New(cfg.Seed)}
	switch cfg.Generator {
	case generator.TypeGrid2D:
		return &Grid2D{base: b, dim: intRoot(cfg.K, 2)}, nil
	case generator.TypeGrid3D:
		return &Grid3D{base: b, dim: intRoot(cfg.K, 3)}, nil
	}

	return nil, generator.ConfigErrorf("model %s is not a lattice", cfg.Generator)
}

func latticeEdges2D(gx, gy int64, periodic bool) int64 {
	if periodic {
		return 2 * gx * gy
	}

	return (gx-1)*gy + gx*(gy-1)
}

func latticeEdges3D(gx, gy, gz int64, periodic bool) int64 {
	if periodic {
		return 3 * gx * gy * gz
	}

	return (gx-1)*gy*gz + gx*(gy-1)*gz + gx*gy*(gz-1)
}

// intRoot returns round(v^(1/deg)) for exact powers.
func intRoot(v int64, deg int) int64 {
	return int64(math.Round(math.Pow(float64(v), 1/float64(deg))))
}

// bandStart returns the first lattice line of band c when g lines split
// blocked over d bands; bandStart(d) == g.
func bandStart(c, g, d int64) int64 {
	return (c*g + d - 1) / d
}

// bandOf returns the band owning line x, the inverse of bandStart.
func bandOf(x, g, d int64) int64 {
	return x * d / g
}

// base carries the state shared by both lattices.
type base struct {
	generator.EdgeListBase

	cfg  generator.Config
	rank int
	size int
	rng  rng.RNG
}

// keep decides the fate of the undirected edge {u, v} from a hash of the
// canonical pair, independent of which side asks.
func (b *base) keep(u, v int64) bool {
	if b.cfg.P >= 1 {
		return true
	}
	if u > v {
		u, v = v, u
	}

	return b.rng.Stream(labelEdgeKeep, uint64(u), uint64(v)).Float64() < b.cfg.P
}

// wrap folds a lattice coordinate into [0, g); the second result is
// false when the coordinate falls off a non-periodic axis.
func (b *base) wrap(x, g int64) (int64, bool) {
	if x >= 0 && x < g {
		return x, true
	}
	if !b.cfg.Periodic {
		return 0, false
	}
	if x < 0 {
		return x + g, true
	}

	return x - g, true
}

// Finalize drops the duplicates a wrap on an extent-2 axis produces and
// converts the representation.
func (b *base) Finalize(_ *comm.Comm) error {
	b.FilterDuplicateEdges()

	return b.FinalizeRepresentation()
}

// Features reports locally symmetric output with coordinates.
func (b *base) Features() generator.Feature {
	return generator.FeatUndirected | generator.FeatCoordinates
}

// Grid2D is the gx × gy lattice over a dim × dim chunk grid.
type Grid2D struct {
	base
	dim int64
}

// Requirements demands a perfect-square chunk count.
func (g *Grid2D) Requirements() generator.Requirement { return generator.ReqSquareChunks }

// chunkOffset returns the first vertex ID of chunk c; chunk blocks tile
// [0, gx*gy) in chunk order.
func (g *Grid2D) chunkOffset(c int64) int64 {
	if c >= g.dim*g.dim {
		return g.cfg.GridX * g.cfg.GridY
	}
	cx, cy := c%g.dim, c/g.dim
	y0 := bandStart(cy, g.cfg.GridY, g.dim)
	y1 := bandStart(cy+1, g.cfg.GridY, g.dim)

	return y0*g.cfg.GridX + (y1-y0)*bandStart(cx, g.cfg.GridX, g.dim)
}

// vertexID maps lattice coordinates to the chunk-contiguous ID.
func (g *Grid2D) vertexID(x, y int64) int64 {
	cx := bandOf(x, g.cfg.GridX, g.dim)
	cy := bandOf(y, g.cfg.GridY, g.dim)
	x0 := bandStart(cx, g.cfg.GridX, g.dim)
	x1 := bandStart(cx+1, g.cfg.GridX, g.dim)
	y0 := bandStart(cy, g.cfg.GridY, g.dim)

	return g.chunkOffset(cy*g.dim+cx) + (y-y0)*(x1-x0) + (x - x0)
}

// Generate walks the local blocks and emits the surviving neighbor edges
// in both orientations.
func (g *Grid2D) Generate(rep graph.Representation) error {
	g.Reset(rep)
	clo, chi := generator.ChunkRange(g.rank, g.cfg.K, g.size)
	g.SetVertexRange(g.chunkOffset(clo), g.chunkOffset(chi))
	for c := clo; c < chi; c++ {
		cx, cy := c%g.dim, c/g.dim
		x0 := bandStart(cx, g.cfg.GridX, g.dim)
		x1 := bandStart(cx+1, g.cfg.GridX, g.dim)
		y0 := bandStart(cy, g.cfg.GridY, g.dim)
		y1 := bandStart(cy+1, g.cfg.GridY, g.dim)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				u := g.vertexID(x, y)
				if g.cfg.Coordinates {
					g.PushCoordinate2D(float64(x)/float64(g.cfg.GridX), float64(y)/float64(g.cfg.GridY))
				}
				g.neighbor(u, x-1, y)
				g.neighbor(u, x+1, y)
				g.neighbor(u, x, y-1)
				g.neighbor(u, x, y+1)
			}
		}
	}

	return nil
}

func (g *Grid2D) neighbor(u, nx, ny int64) {
	nx, ok := g.wrap(nx, g.cfg.GridX)
	if !ok {
		return
	}
	ny, ok = g.wrap(ny, g.cfg.GridY)
	if !ok {
		return
	}
	v := g.vertexID(nx, ny)
	if v == u || !g.keep(u, v) {
		return
	}
	g.PushEdge(u, v)
}

// Grid3D is the gx × gy × gz lattice over a dim × dim × dim chunk grid.
type Grid3D struct {
	base
	dim int64
}

// Requirements demands a perfect-cube chunk count.
func (g *Grid3D) Requirements() generator.Requirement { return generator.ReqCubicChunks }

// chunkOffset returns the first vertex ID of chunk c; chunk blocks tile
// [0, gx*gy*gz) in chunk order (z-major, then y, then x).
func (g *Grid3D) chunkOffset(c int64) int64 {
	if c >= g.dim*g.dim*g.dim {
		return g.cfg.GridX * g.cfg.GridY * g.cfg.GridZ
	}
	cx := c % g.dim
	cy := (c / g.dim) % g.dim
	cz := c / (g.dim * g.dim)
	y0 := bandStart(cy, g.cfg.GridY, g.dim)
	y1 := bandStart(cy+1, g.cfg.GridY, g.dim)
	z0 := bandStart(cz, g.cfg.GridZ, g.dim)
	z1 := bandStart(cz+1, g.cfg.GridZ, g.dim)

	return z0*g.cfg.GridX*g.cfg.GridY +
		(z1-z0)*y0*g.cfg.GridX +
		(z1-z0)*(y1-y0)*bandStart(cx, g.cfg.GridX, g.dim)
}

// vertexID maps lattice coordinates to the chunk-contiguous ID.
func (g *Grid3D) vertexID(x, y, z int64) int64 {
	cx := bandOf(x, g.cfg.GridX, g.dim)
	cy := bandOf(y, g.cfg.GridY, g.dim)
	cz := bandOf(z, g.cfg.GridZ, g.dim)
	x0 := bandStart(cx, g.cfg.GridX, g.dim)
	x1 := bandStart(cx+1, g.cfg.GridX, g.dim)
	y0 := bandStart(cy, g.cfg.GridY, g.dim)
	y1 := bandStart(cy+1, g.cfg.GridY, g.dim)
	z0 := bandStart(cz, g.cfg.GridZ, g.dim)
	c := (cz*g.dim+cy)*g.dim + cx

	return g.chunkOffset(c) + ((z-z0)*(y1-y0)+(y-y0))*(x1-x0) + (x - x0)
}

// Generate walks the local blocks and emits the surviving neighbor edges
// in both orientations.
func (g *Grid3D) Generate(rep graph.Representation) error {
	g.Reset(rep)
	clo, chi := generator.ChunkRange(g.rank, g.cfg.K, g.size)
	g.SetVertexRange(g.chunkOffset(clo), g.chunkOffset(chi))
	for c := clo; c < chi; c++ {
		cx := c % g.dim
		cy := (c / g.dim) % g.dim
		cz := c / (g.dim * g.dim)
		x0 := bandStart(cx, g.cfg.GridX, g.dim)
		x1 := bandStart(cx+1, g.cfg.GridX, g.dim)
		y0 := bandStart(cy, g.cfg.GridY, g.dim)
		y1 := bandStart(cy+1, g.cfg.GridY, g.dim)
		z0 := bandStart(cz, g.cfg.GridZ, g.dim)
		z1 := bandStart(cz+1, g.cfg.GridZ, g.dim)
		for z := z0; z < z1; z++ {
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					u := g.vertexID(x, y, z)
					if g.cfg.Coordinates {
						g.PushCoordinate3D(
							float64(x)/float64(g.cfg.GridX),
							float64(y)/float64(g.cfg.GridY),
							float64(z)/float64(g.cfg.GridZ))
					}
					g.neighbor(u, x-1, y, z)
					g.neighbor(u, x+1, y, z)
					g.neighbor(u, x, y-1, z)
					g.neighbor(u, x, y+1, z)
					g.neighbor(u, x, y, z-1)
					g.neighbor(u, x, y, z+1)
				}
			}
		}
	}

	return nil
}

func (g *Grid3D) neighbor(u, nx, ny, nz int64) {
	nx, ok := g.wrap(nx, g.cfg.GridX)
	if !ok {
		return
	}
	ny, ok = g.wrap(ny, g.cfg.GridY)
	if !ok {
		return
	}
	nz, ok = g.wrap(nz, g.cfg.GridZ)
	if !ok {
		return
	}
	v := g.vertexID(nx, ny, nz)
	if v == u || !g.keep(u, v) {
		return
	}
	g.PushEdge(u, v)
}
