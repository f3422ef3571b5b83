package hyperbolic

import (
	"math"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/rng"
)

// Stream labels: sector point-count tree, per-sector band counts,
// per-cell coordinate draws.
const (
	labelSectorSplit uint64 = 0x7268_0001
	labelBandSplit   uint64 = 0x7268_0002
	labelPointDraw   uint64 = 0x7268_0003
)

// Factory builds the hyperbolic generator.
type Factory struct{}

// Normalize validates the power-law exponent, derives the average
// degree from an edge budget when given, and enforces power-of-two
// chunks.
func (Factory) Normalize(cfg generator.Config, size int) (generator.Config, error) {
	if cfg.Generator != generator.TypeRHG {
		return cfg, generator.ConfigErrorf("model %s is not hyperbolic", cfg.Generator)
	}
	if cfg.N <= 0 {
		return cfg, generator.ConfigErrorf("number of vertices (%d) must be positive", cfg.N)
	}
	if cfg.PLExp <= 2 {
		return cfg, generator.ConfigErrorf("power-law exponent (%v) must exceed 2", cfg.PLExp)
	}
	if cfg.M > 0 {
		cfg.AvgDegree = 2 * float64(cfg.M) / float64(cfg.N)
	}
	if cfg.AvgDegree <= 0 {
		return cfg, generator.ConfigErrorf("average degree (%v) must be positive", cfg.AvgDegree)
	}
	if cfg.HypBase <= 0 {
		cfg.HypBase = 1 << 8
	}

	return generator.EnsurePowerOfTwoChunks(cfg, size)
}

// Create builds the generator for one rank, solving the disk radius and
// the band partition once.
func (Factory) Create(cfg generator.Config, rank, size int) (generator.Generator, error) {
	g := &RHG{
		cfg:   cfg,
		rank:  rank,
		size:  size,
		rng:   rng.New(cfg.Seed),
		cache: make(map[int64][][]point),
	}
	g.alpha = (cfg.PLExp - 1) / 2
	g.radius = targetRadius(float64(cfg.N), g.alpha, cfg.AvgDegree)
	g.coshRadius = math.Cosh(g.radius)
	g.buildBands()

	return g, nil
}

type point struct {
	id     int64
	r, phi float64
	ch, sh float64 // cosh(r), sinh(r)
}

// RHG samples sinh-distributed radii in angular sectors and connects
// points within hyperbolic distance R.
type RHG struct {
	generator.EdgeListBase

	cfg  generator.Config
	rank int
	size int
	rng  rng.RNG

	alpha      float64
	radius     float64
	coshRadius float64

	bands    []float64 // B+1 radial boundaries
	bandMass []float64 // probability mass per band
	cumMass  []float64 // mass of all bands before index

	cache map[int64][][]point
}

// buildBands cuts the radius into equal-mass bands, at most HypBase
// expected points per band x sector cell.
func (g *RHG) buildBands() {
	b := (g.cfg.N + g.cfg.K*g.cfg.HypBase - 1) / (g.cfg.K * g.cfg.HypBase)
	if b < 1 {
		b = 1
	}
	total := math.Cosh(g.alpha*g.radius) - 1
	g.bands = make([]float64, b+1)
	g.bandMass = make([]float64, b)
	for i := int64(1); i < b; i++ {
		g.bands[i] = math.Acosh(1+total*float64(i)/float64(b)) / g.alpha
	}
	g.bands[b] = g.radius
	for i := int64(0); i < b; i++ {
		g.bandMass[i] = (math.Cosh(g.alpha*g.bands[i+1]) - math.Cosh(g.alpha*g.bands[i])) / total
	}
	g.cumMass = cumulative(g.bandMass, g.cfg.HPFloats)
}

// cumulative prefixes the masses; the high-precision mode compensates
// the running sum (Kahan) so deep band partitions keep exact tails.
func cumulative(mass []float64, hp bool) []float64 {
	cum := make([]float64, len(mass)+1)
	var sum, comp float64
	for i, m := range mass {
		if hp {
			y := m - comp
			t := sum + y
			comp = (t - sum) - y
			sum = t
		} else {
			sum += m
		}
		cum[i+1] = sum
	}

	return cum
}

// sectorOffset returns the first point ID of sector s; sectorOffset(k) == n.
func (g *RHG) sectorOffset(s int64) int64 {
	if s >= g.cfg.K {
		return g.cfg.N
	}
	_, offset := g.rng.SplitIID(labelSectorSplit, g.cfg.K, g.cfg.N, s)

	return offset
}

// sectorPoints returns the points of a sector bucketed per band,
// regenerating and memoizing them on first use.
func (g *RHG) sectorPoints(sec int64) [][]point {
	if pts, ok := g.cache[sec]; ok {
		return pts
	}
	count, offset := g.rng.SplitIID(labelSectorSplit, g.cfg.K, g.cfg.N, sec)
	nBands := int64(len(g.bandMass))
	secW := 2 * math.Pi / float64(g.cfg.K)
	phi0 := float64(sec) * secW

	buckets := make([][]point, nBands)
	id := offset
	remaining := count
	for b := int64(0); b < nBands; b++ {
		cnt := remaining
		if b < nBands-1 {
			p := g.bandMass[b] / (1 - g.cumMass[b])
			cnt = g.rng.Binomial(remaining, p, labelBandSplit, uint64(sec), uint64(b))
			if cnt > remaining {
				cnt = remaining
			}
		}
		if cnt > 0 {
			rnd := g.rng.Stream(labelPointDraw, uint64(sec), uint64(b))
			coshLo := math.Cosh(g.alpha * g.bands[b])
			coshHi := math.Cosh(g.alpha * g.bands[b+1])
			bucket := make([]point, 0, cnt)
			for i := int64(0); i < cnt; i++ {
				r := math.Acosh(coshLo+rnd.Float64()*(coshHi-coshLo)) / g.alpha
				phi := phi0 + rnd.Float64()*secW
				bucket = append(bucket, point{id: id, r: r, phi: phi, ch: math.Cosh(r), sh: math.Sinh(r)})
				id++
			}
			buckets[b] = bucket
		}
		remaining -= cnt
	}
	g.cache[sec] = buckets

	return buckets
}

// Generate samples the owned sectors and searches their neighborhoods.
func (g *RHG) Generate(rep graph.Representation) error {
	g.Reset(rep)
	clo, chi := generator.ChunkRange(g.rank, g.cfg.K, g.size)
	g.SetVertexRange(g.sectorOffset(clo), g.sectorOffset(chi))

	for sec := clo; sec < chi; sec++ {
		for _, bucket := range g.sectorPoints(sec) {
			for _, p := range bucket {
				if g.cfg.Coordinates {
					g.PushCoordinate2D(p.r*math.Cos(p.phi), p.r*math.Sin(p.phi))
				}
				g.searchNeighbors(sec, p)
			}
		}
	}

	return nil
}

// searchNeighbors walks every band, bounds the reachable angular
// half-width and tests the candidate sectors' points exactly.
func (g *RHG) searchNeighbors(homeSec int64, p point) {
	secW := 2 * math.Pi / float64(g.cfg.K)
	for b := range g.bandMass {
		// The reach shrinks as the candidate radius grows (r_p <= R), so
		// the band's inner boundary bounds the whole band.
		theta, reachable := g.angularBound(p, g.bands[b])
		if !reachable {
			continue
		}
		lo, hi := int64(0), g.cfg.K-1
		if theta < math.Pi {
			lo = int64(math.Floor((p.phi - theta) / secW))
			hi = int64(math.Floor((p.phi + theta) / secW))
			if hi-lo+1 >= g.cfg.K {
				lo, hi = 0, g.cfg.K-1
			}
		}
		for s := lo; s <= hi; s++ {
			sec := mod(s, g.cfg.K)
			for _, q := range g.sectorPoints(sec)[b] {
				if sec == homeSec && q.id <= p.id {
					continue
				}
				if p.ch*q.ch-p.sh*q.sh*math.Cos(angleDelta(p.phi, q.phi)) > g.coshRadius {
					continue
				}
				g.PushEdge(p.id, q.id)
				if sec == homeSec {
					g.PushEdge(q.id, p.id)
				}
			}
		}
	}
}

// angularBound returns the largest angle at which a point at radius rq
// can still be within distance R of p. reachable is false when even an
// aligned point at rq is too far.
func (g *RHG) angularBound(p point, rq float64) (theta float64, reachable bool) {
	num := p.ch*math.Cosh(rq) - g.coshRadius
	den := p.sh * math.Sinh(rq)
	switch {
	case den == 0:
		return math.Pi, num <= 0
	case num >= den:
		return 0, false
	case num <= -den:
		return math.Pi, true
	}

	return math.Acos(num / den), true
}

// Finalize converts the representation; symmetry is already complete.
func (g *RHG) Finalize(_ *comm.Comm) error { return g.FinalizeRepresentation() }

// Requirements demands a power-of-two chunk count.
func (g *RHG) Requirements() generator.Requirement { return generator.ReqPowerOfTwoChunks }

// Features reports locally symmetric output with coordinates.
func (g *RHG) Features() generator.Feature {
	return generator.FeatUndirected | generator.FeatCoordinates
}

func angleDelta(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}

	return d
}

func mod(a, m int64) int64 {
	a %= m
	if a < 0 {
		a += m
	}

	return a
}
