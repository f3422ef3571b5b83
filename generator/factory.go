package generator

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfiguration wraps every invalid-parameter and chunk-shape failure.
var ErrConfiguration = errors.New("generator: invalid configuration")

// ConfigErrorf builds an ErrConfiguration-wrapped error; factories use it
// for every parameter and shape rejection.
func ConfigErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// IsPowerOfTwo reports whether v is a positive power of two.
func IsPowerOfTwo(v int64) bool {
	return v > 0 && v&(v-1) == 0
}

// IsSquare reports whether v is a perfect square.
func IsSquare(v int64) bool {
	if v < 0 {
		return false
	}
	root := int64(math.Round(math.Sqrt(float64(v))))

	return root*root == v
}

// IsCubic reports whether v is a perfect cube.
func IsCubic(v int64) bool {
	if v < 0 {
		return false
	}
	root := int64(math.Round(math.Cbrt(float64(v))))

	return root*root*root == v
}

// FindSquareMultipleOf returns the smallest perfect square that is a
// multiple of v. Every second power of two is itself square.
func FindSquareMultipleOf(v int64) int64 {
	if IsSquare(v) {
		return v
	}
	if IsPowerOfTwo(v) {
		return 2 * v
	}
	for cur := int64(math.Sqrt(float64(v))); cur < v; cur++ {
		if squared := cur * cur; squared%v == 0 {
			return squared
		}
	}

	return v * v
}

// FindCubeMultipleOf returns the smallest perfect cube that is a
// multiple of v.
func FindCubeMultipleOf(v int64) int64 {
	if IsCubic(v) {
		return v
	}
	if IsPowerOfTwo(v) {
		if IsCubic(2 * v) {
			return 2 * v
		}
		return 4 * v
	}
	for cur := int64(math.Cbrt(float64(v))); cur < v; cur++ {
		if cubed := cur * cur * cur; cubed%v == 0 {
			return cubed
		}
	}

	return v * v * v
}

// NormalizeChunks applies the defaults shared by every factory: an unset
// chunk count becomes one chunk per rank, and fewer chunks than ranks is
// rejected.
func NormalizeChunks(cfg Config, size int) (Config, error) {
	if cfg.K == 0 {
		cfg.K = int64(size)
	}
	if cfg.K < int64(size) {
		return cfg, ConfigErrorf("number of chunks (%d) must be at least the group size (%d)", cfg.K, size)
	}

	return cfg, nil
}

// EnsureSquareChunks defaults K to the smallest square multiple of the
// group size, or rejects a non-square explicit K.
func EnsureSquareChunks(cfg Config, size int) (Config, error) {
	if cfg.K == 0 {
		cfg.K = FindSquareMultipleOf(int64(size))
	} else if !IsSquare(cfg.K) {
		return cfg, ConfigErrorf("number of chunks (%d) must be a perfect square", cfg.K)
	}

	return NormalizeChunks(cfg, size)
}

// EnsureCubicChunks defaults K to the smallest cube multiple of the
// group size, or rejects a non-cubic explicit K.
func EnsureCubicChunks(cfg Config, size int) (Config, error) {
	if cfg.K == 0 {
		cfg.K = FindCubeMultipleOf(int64(size))
	} else if !IsCubic(cfg.K) {
		return cfg, ConfigErrorf("number of chunks (%d) must be a perfect cube", cfg.K)
	}

	return NormalizeChunks(cfg, size)
}

// EnsurePowerOfTwoChunks defaults K to the group size rounded up to a
// power of two, or rejects a non-power-of-two explicit K.
func EnsurePowerOfTwoChunks(cfg Config, size int) (Config, error) {
	if cfg.K == 0 {
		k := int64(1)
		for k < int64(size) {
			k <<= 1
		}
		cfg.K = k
	} else if !IsPowerOfTwo(cfg.K) {
		return cfg, ConfigErrorf("number of chunks (%d) must be a power of two", cfg.K)
	}

	return NormalizeChunks(cfg, size)
}

// EnsurePowerOfTwoSize rejects process groups whose size is not a power
// of two.
func EnsurePowerOfTwoSize(size int) error {
	if !IsPowerOfTwo(int64(size)) {
		return ConfigErrorf("group size (%d) must be a power of two", size)
	}

	return nil
}

// EnsureOneChunkPerRank rejects configurations where K != size.
func EnsureOneChunkPerRank(cfg Config, size int) (Config, error) {
	cfg, err := NormalizeChunks(cfg, size)
	if err != nil {
		return cfg, err
	}
	if cfg.K != int64(size) {
		return cfg, ConfigErrorf("number of chunks (%d) must equal the group size (%d)", cfg.K, size)
	}

	return cfg, nil
}

// RankOfChunk maps chunk c of k chunks onto one of size ranks by blocked
// assignment: rank = floor(c*size/k). Imbalance is at most one chunk.
func RankOfChunk(c, k int64, size int) int {
	return int(c * int64(size) / k)
}

// ChunkRange returns the half-open chunk interval [lo, hi) owned by rank
// under the blocked assignment of RankOfChunk.
func ChunkRange(rank int, k int64, size int) (lo, hi int64) {
	lo = ceilDiv(int64(rank)*k, int64(size))
	hi = ceilDiv(int64(rank+1)*k, int64(size))

	return lo, hi
}

// VertexRangeOfChunk returns the contiguous vertex interval [from, to)
// covered by chunk c when n vertices are spread blocked over k chunks.
// Chunk intervals tile [0, n) in chunk order.
func VertexRangeOfChunk(c, n, k int64) (from, to int64) {
	from = ceilDiv(c*n, k)
	to = ceilDiv((c+1)*n, k)

	return from, to
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
