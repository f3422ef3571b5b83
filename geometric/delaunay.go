package geometric

import (
	"fmt"

	"github.com/fogleman/delaunay"

	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/graph"
)

// RDG2D keeps the Delaunay edges of uniform unit-square points.
//
// Every chunk triangulates its own points plus a one-ring halo of
// neighbor chunks, then keeps the edges with a locally-owned endpoint.
// The halo makes the triangulations of adjacent chunks agree on the
// shared boundary except for degenerate, near-cocircular layouts.
type RDG2D struct {
	generator.EdgeListBase

	cfg   generator.Config
	rank  int
	size  int
	space *space2
}

// Generate triangulates every owned chunk with its halo.
func (g *RDG2D) Generate(rep graph.Representation) error {
	g.Reset(rep)
	clo, chi := generator.ChunkRange(g.rank, g.cfg.K, g.size)
	g.SetVertexRange(g.space.chunkOffset(clo), g.space.chunkOffset(chi))

	for c := clo; c < chi; c++ {
		if err := g.chunkEdges(c); err != nil {
			return err
		}
	}

	return nil
}

func (g *RDG2D) chunkEdges(c int64) error {
	s := g.space
	cx, cy := c%s.dim, c/s.dim

	var (
		pts   []delaunay.Point
		ids   []int64
		local []bool
	)
	seen := make([]int64, 0, 9)
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			nx, ny := cx+dx, cy+dy
			if g.cfg.Periodic {
				nx, ny = mod(nx, s.dim), mod(ny, s.dim)
			} else if nx < 0 || nx >= s.dim || ny < 0 || ny >= s.dim {
				continue
			}
			b := ny*s.dim + nx
			if containsKey(seen, b) {
				continue
			}
			seen = append(seen, b)
			for _, bucket := range s.chunkPoints(b) {
				for _, p := range bucket {
					if b == c && g.cfg.Coordinates {
						g.PushCoordinate2D(p.x, p.y)
					}
					pts = append(pts, delaunay.Point{X: p.x, Y: p.y})
					ids = append(ids, p.id)
					local = append(local, b == c)
				}
			}
		}
	}
	if len(pts) < 3 {
		return nil
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return fmt.Errorf("geometric: triangulation failed: %w", err)
	}
	for t := 0; t+2 < len(tri.Triangles); t += 3 {
		corners := tri.Triangles[t : t+3]
		for e := 0; e < 3; e++ {
			a, b := corners[e], corners[(e+1)%3]
			if local[a] {
				g.PushEdge(ids[a], ids[b])
			}
			if local[b] {
				g.PushEdge(ids[b], ids[a])
			}
		}
	}

	return nil
}

// Finalize drops the duplicates shared triangles produce and converts
// the representation.
func (g *RDG2D) Finalize(_ *comm.Comm) error {
	g.FilterDuplicateEdges()

	return g.FinalizeRepresentation()
}

// Requirements demands a perfect-square chunk count.
func (g *RDG2D) Requirements() generator.Requirement { return generator.ReqSquareChunks }

// Features reports locally symmetric output with coordinates.
func (g *RDG2D) Features() generator.Feature {
	return generator.FeatUndirected | generator.FeatCoordinates
}
