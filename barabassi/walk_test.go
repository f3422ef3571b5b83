package barabassi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/rng"
)

// A redrawn walk that steps into an interior slot must resolve it exactly
// as the slot's owning vertex did; otherwise the shared attachment
// history diverges between vertices.
func TestStubWalk_RedrawReplaysSharedHistory(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeBA, N: 256, MinDegree: 2, Seed: 7}
	g := &BA{cfg: cfg, rng: rng.New(cfg.Seed)}

	checked := 0
	for v := cfg.MinDegree; v < cfg.N; v++ {
		for j := int64(0); j < cfg.MinDegree; j++ {
			s := 2*(v*cfg.MinDegree+j) + 1
			for salt := uint64(1); salt < 4; salt++ {
				u := rng.UniformInt64(g.rng.Stream(labelSlot, uint64(s), salt), s)
				if u%2 == 1 {
					assert.Equal(t, g.resolve(u, 0), g.resolve(s, salt),
						"slot %d salt %d", s, salt)
					checked++
				}
			}
		}
	}
	assert.NotZero(t, checked)
}

// Forbidding self-loops changes a target only when the unsalted walk
// lands on the drawing vertex itself.
func TestStubWalk_RedrawOnlyOnSelfLoop(t *testing.T) {
	cfg := generator.Config{Generator: generator.TypeBA, N: 256, MinDegree: 2, Seed: 7}
	g := &BA{cfg: cfg, rng: rng.New(cfg.Seed)}

	for v := cfg.MinDegree; v < cfg.N; v++ {
		for j := int64(0); j < cfg.MinDegree; j++ {
			canonical := g.resolve(2*(v*cfg.MinDegree+j)+1, 0)
			w := g.target(v, j)
			if canonical == v {
				assert.NotEqual(t, v, w)
			} else {
				assert.Equal(t, canonical, w)
			}
		}
	}
}
