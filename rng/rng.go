package rng

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RNG derives deterministic random streams from a global seed.
// The zero value is usable and equivalent to New(0).
type RNG struct {
	seed uint64
}

// New returns an RNG bound to the given global seed.
func New(seed uint64) RNG {
	return RNG{seed: seed}
}

// Seed returns the global seed this RNG was bound to.
func (r RNG) Seed() uint64 { return r.seed }

// Mix hashes the seed together with the given labels into a stream seed.
// The same (seed, labels) tuple always yields the same value.
func (r RNG) Mix(labels ...uint64) uint64 {
	var buf [8]byte
	d := xxhash.New()
	binary.LittleEndian.PutUint64(buf[:], r.seed)
	_, _ = d.Write(buf[:])
	for _, l := range labels {
		binary.LittleEndian.PutUint64(buf[:], l)
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

// Stream returns an independent random stream for the given label tuple.
func (r RNG) Stream(labels ...uint64) *rand.Rand {
	return rand.New(rand.NewSource(r.Mix(labels...)))
}

// Binomial draws from Binomial(n, p) on the stream identified by labels.
// Results are clamped to [0, n].
func (r RNG) Binomial(n int64, p float64, labels ...uint64) int64 {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	b := distuv.Binomial{N: float64(n), P: p, Src: rand.NewSource(r.Mix(labels...))}
	v := int64(b.Rand())
	if v < 0 {
		v = 0
	}
	if v > n {
		v = n
	}

	return v
}

// Hypergeometric draws the number of successes in a sample of size sample
// drawn without replacement from a population with the given number of
// successes, on the stream identified by labels.
func (r RNG) Hypergeometric(successes, population, sample int64, labels ...uint64) int64 {
	return hypergeometric(r.Stream(labels...), successes, population, sample)
}

// UniformInt64 draws uniformly from [0, bound) on the given stream.
func UniformInt64(rnd *rand.Rand, bound int64) int64 {
	if bound <= 0 {
		return 0
	}

	return rnd.Int63n(bound)
}

// GapSampler enumerates the successes of independent Bernoulli(p) trials
// over the index space [0, limit) without touching failed indices.
// Indices are produced strictly increasing.
type GapSampler struct {
	rnd   *rand.Rand
	logQ  float64 // log(1-p), < 0
	next  int64
	limit int64
}

// NewGapSampler prepares gap sampling of Bernoulli(p) trials over [0, limit).
// p >= 1 degenerates to enumerating every index; p <= 0 yields no successes.
func NewGapSampler(rnd *rand.Rand, p float64, limit int64) *GapSampler {
	g := &GapSampler{rnd: rnd, limit: limit, next: -1}
	if p <= 0 {
		g.next = limit
		return g
	}
	if p < 1 {
		g.logQ = math.Log1p(-p)
	}
	g.advance()

	return g
}

// Next returns the next success index, or (-1, false) once exhausted.
func (g *GapSampler) Next() (int64, bool) {
	if g.next >= g.limit {
		return -1, false
	}
	idx := g.next
	g.advance()

	return idx, true
}

// advance moves next past a Geometric(p) gap: floor(log(U)/log(1-p)) failures.
func (g *GapSampler) advance() {
	if g.logQ == 0 { // p == 1
		g.next++
		return
	}
	u := g.rnd.Float64()
	for u == 0 {
		u = g.rnd.Float64()
	}
	gap := int64(math.Log(u) / g.logQ)
	if gap < 0 {
		gap = 0
	}
	if g.next >= g.limit-1-gap { // overflow-safe: next + gap + 1 > limit
		g.next = g.limit
		return
	}
	g.next += gap + 1
}
