package geometric

import (
	"math"

	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/rng"
)

// Stream labels: chunk point-count tree, per-chunk cell trees, per-cell
// coordinate draws.
const (
	labelPointSplit uint64 = 0x6765_0001
	labelCellSplit  uint64 = 0x6765_0002
	labelPointDraw  uint64 = 0x6765_0003
)

type point2 struct {
	id   int64
	x, y float64
}

type point3 struct {
	id      int64
	x, y, z float64
}

// space2 owns the 2D chunk/cell geometry and the memoized point sets.
type space2 struct {
	cfg   generator.Config
	rng   rng.RNG
	dim   int64 // chunks per axis
	cells int64 // cells per chunk axis
	cache map[int64][][]point2
}

func newSpace2(cfg generator.Config, r rng.RNG, minCellSide float64) *space2 {
	s := &space2{cfg: cfg, rng: r, cache: make(map[int64][][]point2)}
	s.dim = intRoot(cfg.K, 2)
	s.cells = cellsPerChunk(s.dim, minCellSide)

	return s
}

// cellsPerChunk returns the number of cells per chunk axis such that the
// cell side stays >= minSide; one cell when minSide is zero or exceeds
// the chunk width.
func cellsPerChunk(dim int64, minSide float64) int64 {
	if minSide <= 0 {
		return 1
	}
	c := int64(1 / (minSide * float64(dim)))
	if c < 1 {
		c = 1
	}

	return c
}

// intRoot returns round(v^(1/deg)) for exact powers.
func intRoot(v int64, deg int) int64 {
	return int64(math.Round(math.Pow(float64(v), 1/float64(deg))))
}

// chunkOffset returns the first point ID of chunk c; chunkOffset(k) == n.
func (s *space2) chunkOffset(c int64) int64 {
	if c >= s.cfg.K {
		return s.cfg.N
	}
	_, offset := s.rng.SplitIID(labelPointSplit, s.cfg.K, s.cfg.N, c)

	return offset
}

// chunkPoints returns the points of chunk c bucketed per cell,
// regenerating and memoizing them on first use.
func (s *space2) chunkPoints(c int64) [][]point2 {
	if pts, ok := s.cache[c]; ok {
		return pts
	}
	count, offset := s.rng.SplitIID(labelPointSplit, s.cfg.K, s.cfg.N, c)
	chunkW := 1 / float64(s.dim)
	cellW := chunkW / float64(s.cells)
	cx, cy := c%s.dim, c/s.dim
	x0, y0 := float64(cx)*chunkW, float64(cy)*chunkW

	cellCount := s.cells * s.cells
	cellLabel := s.rng.Mix(labelCellSplit, uint64(c))
	buckets := make([][]point2, cellCount)
	id := offset
	for cell := int64(0); cell < cellCount; cell++ {
		share, _ := s.rng.SplitIID(cellLabel, cellCount, count, cell)
		if share == 0 {
			continue
		}
		rnd := s.rng.Stream(labelPointDraw, uint64(c), uint64(cell))
		bx := x0 + float64(cell%s.cells)*cellW
		by := y0 + float64(cell/s.cells)*cellW
		bucket := make([]point2, 0, share)
		for i := int64(0); i < share; i++ {
			bucket = append(bucket, point2{id: id, x: bx + rnd.Float64()*cellW, y: by + rnd.Float64()*cellW})
			id++
		}
		buckets[cell] = bucket
	}
	s.cache[c] = buckets

	return buckets
}

// cellKey canonicalizes a global cell coordinate, wrapping on the torus
// when periodic. ok is false off a bounded space.
func (s *space2) cellKey(gx, gy int64) (key int64, ok bool) {
	grid := s.dim * s.cells
	if s.cfg.Periodic {
		gx = mod(gx, grid)
		gy = mod(gy, grid)
	} else if gx < 0 || gx >= grid || gy < 0 || gy >= grid {
		return 0, false
	}

	return gy*grid + gx, true
}

// cellBucket resolves a canonical cell key to its point bucket and the
// chunk owning it.
func (s *space2) cellBucket(key int64) ([]point2, int64) {
	grid := s.dim * s.cells
	gx, gy := key%grid, key/grid
	c := (gy/s.cells)*s.dim + gx/s.cells
	local := (gy%s.cells)*s.cells + gx%s.cells

	return s.chunkPoints(c)[local], c
}

// chunkOfPoint reports the chunk owning a point by its coordinates.
func (s *space2) chunkOf(p point2) int64 {
	cx := int64(p.x * float64(s.dim))
	cy := int64(p.y * float64(s.dim))
	if cx >= s.dim {
		cx = s.dim - 1
	}
	if cy >= s.dim {
		cy = s.dim - 1
	}

	return cy*s.dim + cx
}

// dist2 returns the squared distance, wrapped on the torus when periodic.
func (s *space2) dist2(p, q point2) float64 {
	dx := axisDelta(p.x-q.x, s.cfg.Periodic)
	dy := axisDelta(p.y-q.y, s.cfg.Periodic)

	return dx*dx + dy*dy
}

// space3 owns the 3D chunk/cell geometry and the memoized point sets.
type space3 struct {
	cfg   generator.Config
	rng   rng.RNG
	dim   int64
	cells int64
	cache map[int64][][]point3
}

func newSpace3(cfg generator.Config, r rng.RNG, minCellSide float64) *space3 {
	s := &space3{cfg: cfg, rng: r, cache: make(map[int64][][]point3)}
	s.dim = intRoot(cfg.K, 3)
	s.cells = cellsPerChunk(s.dim, minCellSide)

	return s
}

// chunkOffset returns the first point ID of chunk c; chunkOffset(k) == n.
func (s *space3) chunkOffset(c int64) int64 {
	if c >= s.cfg.K {
		return s.cfg.N
	}
	_, offset := s.rng.SplitIID(labelPointSplit, s.cfg.K, s.cfg.N, c)

	return offset
}

// chunkPoints returns the points of chunk c bucketed per cell.
func (s *space3) chunkPoints(c int64) [][]point3 {
	if pts, ok := s.cache[c]; ok {
		return pts
	}
	count, offset := s.rng.SplitIID(labelPointSplit, s.cfg.K, s.cfg.N, c)
	chunkW := 1 / float64(s.dim)
	cellW := chunkW / float64(s.cells)
	cx := c % s.dim
	cy := (c / s.dim) % s.dim
	cz := c / (s.dim * s.dim)
	x0, y0, z0 := float64(cx)*chunkW, float64(cy)*chunkW, float64(cz)*chunkW

	cellCount := s.cells * s.cells * s.cells
	cellLabel := s.rng.Mix(labelCellSplit, uint64(c))
	buckets := make([][]point3, cellCount)
	id := offset
	for cell := int64(0); cell < cellCount; cell++ {
		share, _ := s.rng.SplitIID(cellLabel, cellCount, count, cell)
		if share == 0 {
			continue
		}
		rnd := s.rng.Stream(labelPointDraw, uint64(c), uint64(cell))
		bx := x0 + float64(cell%s.cells)*cellW
		by := y0 + float64((cell/s.cells)%s.cells)*cellW
		bz := z0 + float64(cell/(s.cells*s.cells))*cellW
		bucket := make([]point3, 0, share)
		for i := int64(0); i < share; i++ {
			bucket = append(bucket, point3{
				id: id,
				x:  bx + rnd.Float64()*cellW,
				y:  by + rnd.Float64()*cellW,
				z:  bz + rnd.Float64()*cellW,
			})
			id++
		}
		buckets[cell] = bucket
	}
	s.cache[c] = buckets

	return buckets
}

// cellKey canonicalizes a global cell coordinate, wrapping on the torus
// when periodic. ok is false off a bounded space.
func (s *space3) cellKey(gx, gy, gz int64) (key int64, ok bool) {
	grid := s.dim * s.cells
	if s.cfg.Periodic {
		gx = mod(gx, grid)
		gy = mod(gy, grid)
		gz = mod(gz, grid)
	} else if gx < 0 || gx >= grid || gy < 0 || gy >= grid || gz < 0 || gz >= grid {
		return 0, false
	}

	return (gz*grid+gy)*grid + gx, true
}

// cellBucket resolves a canonical cell key to its point bucket and the
// chunk owning it.
func (s *space3) cellBucket(key int64) ([]point3, int64) {
	grid := s.dim * s.cells
	gx := key % grid
	gy := (key / grid) % grid
	gz := key / (grid * grid)
	c := ((gz/s.cells)*s.dim+gy/s.cells)*s.dim + gx/s.cells
	local := ((gz%s.cells)*s.cells+gy%s.cells)*s.cells + gx%s.cells

	return s.chunkPoints(c)[local], c
}

// chunkOf reports the chunk owning a point by its coordinates.
func (s *space3) chunkOf(p point3) int64 {
	cx := clampAxis(int64(p.x*float64(s.dim)), s.dim)
	cy := clampAxis(int64(p.y*float64(s.dim)), s.dim)
	cz := clampAxis(int64(p.z*float64(s.dim)), s.dim)

	return (cz*s.dim+cy)*s.dim + cx
}

// dist2 returns the squared distance, wrapped on the torus when periodic.
func (s *space3) dist2(p, q point3) float64 {
	dx := axisDelta(p.x-q.x, s.cfg.Periodic)
	dy := axisDelta(p.y-q.y, s.cfg.Periodic)
	dz := axisDelta(p.z-q.z, s.cfg.Periodic)

	return dx*dx + dy*dy + dz*dz
}

func axisDelta(d float64, periodic bool) float64 {
	d = math.Abs(d)
	if periodic && d > 0.5 {
		d = 1 - d
	}

	return d
}

func clampAxis(c, dim int64) int64 {
	if c >= dim {
		return dim - 1
	}

	return c
}

func mod(a, m int64) int64 {
	a %= m
	if a < 0 {
		a += m
	}

	return a
}
