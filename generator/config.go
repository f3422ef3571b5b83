package generator

// Type identifies a graph model.
type Type int

const (
	// TypeGNMDirected samples m directed edges uniformly.
	TypeGNMDirected Type = iota
	// TypeGNMUndirected samples m undirected edges uniformly.
	TypeGNMUndirected
	// TypeGNPDirected includes each directed edge with probability p.
	TypeGNPDirected
	// TypeGNPUndirected includes each undirected edge with probability p.
	TypeGNPUndirected
	// TypeRGG2D is the random geometric graph in the unit square.
	TypeRGG2D
	// TypeRGG3D is the random geometric graph in the unit cube.
	TypeRGG3D
	// TypeRDG2D is the random Delaunay graph in the unit square.
	TypeRDG2D
	// TypeRDG3D is the random Delaunay graph in the unit cube.
	TypeRDG3D
	// TypeGrid2D is the regular 2D lattice.
	TypeGrid2D
	// TypeGrid3D is the regular 3D lattice.
	TypeGrid3D
	// TypeBA is Barabási–Albert preferential attachment.
	TypeBA
	// TypeKronecker is the stochastic Kronecker model.
	TypeKronecker
	// TypeRHG is the random hyperbolic graph.
	TypeRHG
	// TypeRMAT is the recursive-matrix model.
	TypeRMAT
)

// typeNames doubles as the option-string vocabulary.
var typeNames = map[Type]string{
	TypeGNMDirected:   "gnm_directed",
	TypeGNMUndirected: "gnm_undirected",
	TypeGNPDirected:   "gnp_directed",
	TypeGNPUndirected: "gnp_undirected",
	TypeRGG2D:         "rgg_2d",
	TypeRGG3D:         "rgg_3d",
	TypeRDG2D:         "rdg_2d",
	TypeRDG3D:         "rdg_3d",
	TypeGrid2D:        "grid_2d",
	TypeGrid3D:        "grid_3d",
	TypeBA:            "ba",
	TypeKronecker:     "kronecker",
	TypeRHG:           "rhg",
	TypeRMAT:          "rmat",
}

// String implements fmt.Stringer using the option-string vocabulary.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}

	return "unknown"
}

// TypeFromString resolves an option-string model name.
func TypeFromString(s string) (Type, bool) {
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}

	return 0, false
}

// Config is the immutable parameter set of one generation run.
//
// Numeric fields left at zero mean "unset"; each factory's Normalize
// resolves them (e.g. K == 0 becomes the smallest valid chunk count for
// the group size) or rejects the combination with ErrConfiguration.
type Config struct {
	Generator Type

	// Model size: vertex count and/or edge count.
	N int64
	M int64

	// K is the chunk count, the unit of deterministic parallel work.
	K int64

	// P is the edge probability (GNP, grid lattices).
	P float64

	// R is the connection radius of geometric models.
	R float64

	// PLExp is the power-law exponent gamma of the hyperbolic model.
	PLExp float64

	// AvgDegree is the target average degree of the hyperbolic model.
	AvgDegree float64

	// MinDegree is the attachment degree d of the Barabási model.
	MinDegree int64

	// Grid dimensions of the lattice models.
	GridX int64
	GridY int64
	GridZ int64

	// R-MAT quadrant probabilities; the fourth is 1-a-b-c.
	RMatA float64
	RMatB float64
	RMatC float64

	// HypBase bounds the expected points per hyperbolic cell.
	HypBase int64

	Seed uint64

	Directed    bool
	SelfLoops   bool
	Periodic    bool
	Coordinates bool

	// HPFloats enables high-precision accumulation in the hyperbolic and
	// log-based samplers (cumulative sums via compensated summation).
	HPFloats bool

	// Output / pipeline switches consumed by the façade.
	Quiet               bool
	Statistics          bool
	ValidateSimpleGraph bool
	SkipPostprocessing  bool
}

// Defaults returns the configuration template the façade starts from.
func Defaults() Config {
	return Config{
		N:         100,
		Seed:      1,
		R:         0.125,
		AvgDegree: 5.0,
		PLExp:     2.6,
		MinDegree: 4,
		HypBase:   1 << 8,
		Quiet:     true,
	}
}
