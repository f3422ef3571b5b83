package gnm

// pairSpace flattens the edge candidates of an n-vertex graph into a
// contiguous index space. Directed pairs enumerate row-major over the
// columns [0, n) (minus the diagonal without self-loops); unordered pairs
// enumerate row-major over the upper triangle.
type pairSpace struct {
	n         int64
	selfLoops bool
}

// cols is the directed row width.
func (s pairSpace) cols() int64 {
	if s.selfLoops {
		return s.n
	}

	return s.n - 1
}

// directedPop counts directed pairs with first endpoint in [from, to).
func (s pairSpace) directedPop(from, to int64) int64 {
	if to <= from {
		return 0
	}

	return (to - from) * s.cols()
}

// directedPair maps a chunk-local index back to its ordered pair, given
// the first row of the chunk.
func (s pairSpace) directedPair(rowFrom, idx int64) (u, v int64) {
	cols := s.cols()
	u = rowFrom + idx/cols
	v = idx % cols
	if !s.selfLoops && v >= u {
		v++
	}

	return u, v
}

// tail counts unordered pairs whose smaller endpoint is >= x.
func (s pairSpace) tail(x int64) int64 {
	r := s.n - x
	if r <= 0 {
		return 0
	}
	if s.selfLoops {
		return r * (r + 1) / 2
	}

	return r * (r - 1) / 2
}

// undirectedPop counts unordered pairs with smaller endpoint in [from, to).
func (s pairSpace) undirectedPop(from, to int64) int64 {
	return s.tail(from) - s.tail(to)
}

// undirectedPair maps a chunk-local index back to its unordered pair
// (u <= v), given the first row of the chunk. The row is found by binary
// search over the triangle prefix sums.
func (s pairSpace) undirectedPair(rowFrom, idx int64) (u, v int64) {
	lo, hi := rowFrom, s.n-1
	head := s.tail(rowFrom)
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if head-s.tail(mid) <= idx {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	u = lo
	j := idx - (head - s.tail(u))
	if s.selfLoops {
		return u, u + j
	}

	return u, u + 1 + j
}
