package kagen

import (
	"math"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
)

// KaGen generates graphs on one rank of a process group. Configure it
// once with the setters, then call any number of Generate methods;
// every rank of the group must issue the same calls in the same order.
type KaGen struct {
	comm *comm.Comm
	cfg  generator.Config
}

// New binds a generator helper to one rank's communicator.
func New(c *comm.Comm) *KaGen {
	return &KaGen{comm: c, cfg: generator.Defaults()}
}

// SetSeed fixes the seed all random streams derive from.
func (k *KaGen) SetSeed(seed uint64) { k.cfg.Seed = seed }

// SetNumberOfChunks fixes the unit of deterministic work; 0 lets each
// model pick the smallest valid count for the group size.
func (k *KaGen) SetNumberOfChunks(chunks int64) { k.cfg.K = chunks }

// EnableValidation runs the collective invariant checks after every
// generation.
func (k *KaGen) EnableValidation() { k.cfg.ValidateSimpleGraph = true }

// EnableStatistics logs global degree statistics after every generation.
func (k *KaGen) EnableStatistics() { k.cfg.Statistics = true }

// EnableCoordinates asks geometric models to return point coordinates.
func (k *KaGen) EnableCoordinates() { k.cfg.Coordinates = true }

// EnableHighPrecisionFloats compensates long float accumulations, which
// matters beyond ~2^32 vertices.
func (k *KaGen) EnableHighPrecisionFloats() { k.cfg.HPFloats = true }

// SkipPostprocessing leaves raw generator output in place: no reverse
// completion, no owner redistribution.
func (k *KaGen) SkipPostprocessing() { k.cfg.SkipPostprocessing = true }

// SetQuiet toggles rank-0 progress logging.
func (k *KaGen) SetQuiet(quiet bool) { k.cfg.Quiet = quiet }

func (k *KaGen) run(cfg generator.Config) (graph.Graph, error) {
	return Generate(cfg, k.comm)
}

// GenerateDirectedGNM samples exactly m distinct directed edges over n
// vertices.
func (k *KaGen) GenerateDirectedGNM(n, m int64, selfLoops bool) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.M, cfg.SelfLoops, cfg.Directed = generator.TypeGNMDirected, n, m, selfLoops, true

	return k.run(cfg)
}

// GenerateUndirectedGNM samples exactly m distinct undirected edges over
// n vertices; the result carries both orientations.
func (k *KaGen) GenerateUndirectedGNM(n, m int64, selfLoops bool) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.M, cfg.SelfLoops = generator.TypeGNMUndirected, n, m, selfLoops

	return k.run(cfg)
}

// GenerateDirectedGNP includes each directed edge independently with
// probability p.
func (k *KaGen) GenerateDirectedGNP(n int64, p float64, selfLoops bool) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.P, cfg.SelfLoops, cfg.Directed = generator.TypeGNPDirected, n, p, selfLoops, true

	return k.run(cfg)
}

// GenerateUndirectedGNP includes each undirected edge independently with
// probability p.
func (k *KaGen) GenerateUndirectedGNP(n int64, p float64, selfLoops bool) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.P, cfg.SelfLoops = generator.TypeGNPUndirected, n, p, selfLoops

	return k.run(cfg)
}

// GenerateRGG2D connects unit-square points closer than radius r.
func (k *KaGen) GenerateRGG2D(n int64, r float64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.R = generator.TypeRGG2D, n, r

	return k.run(cfg)
}

// GenerateRGG2DNM solves the radius that makes m edges expected.
func (k *KaGen) GenerateRGG2DNM(n, m int64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.M, cfg.R = generator.TypeRGG2D, n, m, 0

	return k.run(cfg)
}

// GenerateRGG2DMR solves the vertex count that makes m edges expected at
// radius r.
func (k *KaGen) GenerateRGG2DMR(m int64, r float64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.R = generator.TypeRGG2D, verticesForEdges(m, math.Pi*r*r), r

	return k.run(cfg)
}

// GenerateRGG3D connects unit-cube points closer than radius r.
func (k *KaGen) GenerateRGG3D(n int64, r float64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.R = generator.TypeRGG3D, n, r

	return k.run(cfg)
}

// GenerateRGG3DNM solves the radius that makes m edges expected.
func (k *KaGen) GenerateRGG3DNM(n, m int64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.M, cfg.R = generator.TypeRGG3D, n, m, 0

	return k.run(cfg)
}

// GenerateRGG3DMR solves the vertex count that makes m edges expected at
// radius r.
func (k *KaGen) GenerateRGG3DMR(m int64, r float64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.R = generator.TypeRGG3D, verticesForEdges(m, 4.0/3.0*math.Pi*r*r*r), r

	return k.run(cfg)
}

// GenerateRDG2D triangulates n uniform unit-square points.
func (k *KaGen) GenerateRDG2D(n int64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N = generator.TypeRDG2D, n

	return k.run(cfg)
}

// GenerateRDG3D always fails: no 3D triangulation backend is wired.
func (k *KaGen) GenerateRDG3D(n int64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N = generator.TypeRDG3D, n

	return k.run(cfg)
}

// GenerateBA attaches every new vertex to d earlier ones, preferring
// high degrees.
func (k *KaGen) GenerateBA(n, d int64, directed, selfLoops bool) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.MinDegree, cfg.Directed, cfg.SelfLoops = generator.TypeBA, n, d, directed, selfLoops

	return k.run(cfg)
}

// GenerateBANM derives the attachment degree from an edge budget.
func (k *KaGen) GenerateBANM(n, m int64, directed, selfLoops bool) (graph.Graph, error) {
	return k.GenerateBA(n, m/n, directed, selfLoops)
}

// GenerateBAMD derives the vertex count from an edge budget and the
// attachment degree.
func (k *KaGen) GenerateBAMD(m, d int64, directed, selfLoops bool) (graph.Graph, error) {
	return k.GenerateBA(m/d, d, directed, selfLoops)
}

// GenerateRHG samples a hyperbolic disk with power-law exponent gamma
// and the given target average degree.
func (k *KaGen) GenerateRHG(n int64, gamma, avgDegree float64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.PLExp, cfg.AvgDegree = generator.TypeRHG, n, gamma, avgDegree

	return k.run(cfg)
}

// GenerateRHGNM targets an edge budget instead of an average degree.
func (k *KaGen) GenerateRHGNM(n, m int64, gamma float64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.M, cfg.PLExp, cfg.AvgDegree = generator.TypeRHG, n, m, gamma, 0

	return k.run(cfg)
}

// GenerateRHGMD derives the vertex count from an edge budget and the
// target average degree.
func (k *KaGen) GenerateRHGMD(m int64, gamma, avgDegree float64) (graph.Graph, error) {
	return k.GenerateRHG(int64(math.Round(2*float64(m)/avgDegree)), gamma, avgDegree)
}

// GenerateGrid2D builds a gx by gy lattice keeping each edge with
// probability p (0 keeps all); periodic wraps the boundary.
func (k *KaGen) GenerateGrid2D(gx, gy int64, p float64, periodic bool) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.GridX, cfg.GridY, cfg.P, cfg.Periodic = generator.TypeGrid2D, gx, gy, p, periodic

	return k.run(cfg)
}

// GenerateGrid3D builds a gx by gy by gz lattice.
func (k *KaGen) GenerateGrid3D(gx, gy, gz int64, p float64, periodic bool) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.GridX, cfg.GridY, cfg.GridZ = generator.TypeGrid3D, gx, gy, gz
	cfg.P, cfg.Periodic = p, periodic

	return k.run(cfg)
}

// GenerateGrid2DN builds a near-square lattice of about n vertices.
func (k *KaGen) GenerateGrid2DN(n int64, p float64, periodic bool) (graph.Graph, error) {
	side := int64(math.Round(math.Sqrt(float64(n))))

	return k.GenerateGrid2D(side, side, p, periodic)
}

// GenerateGrid2DNM builds a near-square lattice of about n vertices and
// solves the keep probability for an edge budget.
func (k *KaGen) GenerateGrid2DNM(n, m int64, periodic bool) (graph.Graph, error) {
	side := int64(math.Round(math.Sqrt(float64(n))))
	cfg := k.cfg
	cfg.Generator, cfg.GridX, cfg.GridY, cfg.M, cfg.Periodic = generator.TypeGrid2D, side, side, m, periodic

	return k.run(cfg)
}

// GenerateGrid3DN builds a near-cubic lattice of about n vertices.
func (k *KaGen) GenerateGrid3DN(n int64, p float64, periodic bool) (graph.Graph, error) {
	side := int64(math.Round(math.Cbrt(float64(n))))

	return k.GenerateGrid3D(side, side, side, p, periodic)
}

// GenerateGrid3DNM builds a near-cubic lattice of about n vertices and
// solves the keep probability for an edge budget.
func (k *KaGen) GenerateGrid3DNM(n, m int64, periodic bool) (graph.Graph, error) {
	side := int64(math.Round(math.Cbrt(float64(n))))
	cfg := k.cfg
	cfg.Generator, cfg.GridX, cfg.GridY, cfg.GridZ = generator.TypeGrid3D, side, side, side
	cfg.M, cfg.Periodic = m, periodic

	return k.run(cfg)
}

// GenerateKronecker samples m edges by recursive quadrant descent with
// the Graph500 probabilities.
func (k *KaGen) GenerateKronecker(n, m int64, selfLoops bool) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.M, cfg.SelfLoops, cfg.Directed = generator.TypeKronecker, n, m, selfLoops, true

	return k.run(cfg)
}

// GenerateRMAT samples m edges by recursive quadrant descent with
// explicit quadrant probabilities a, b, c (the fourth is 1-a-b-c).
func (k *KaGen) GenerateRMAT(n, m int64, a, b, c float64) (graph.Graph, error) {
	cfg := k.cfg
	cfg.Generator, cfg.N, cfg.M, cfg.Directed = generator.TypeRMAT, n, m, true
	cfg.RMatA, cfg.RMatB, cfg.RMatC = a, b, c

	return k.run(cfg)
}

// GenerateFromOptionString parses "key=value;key=value;flag" options and
// generates the configured graph.
func (k *KaGen) GenerateFromOptionString(options string) (graph.Graph, error) {
	cfg, err := ParseOptionString(options, k.cfg)
	if err != nil {
		return graph.Graph{}, err
	}

	return k.run(cfg)
}

// verticesForEdges inverts m = volume * n*(n-1)/2 for n.
func verticesForEdges(m int64, volume float64) int64 {
	return int64(math.Round(0.5 + math.Sqrt(0.25+2*float64(m)/volume)))
}
