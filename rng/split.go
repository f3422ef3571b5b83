package rng

// splitLabel namespaces the tree-node streams of SplitSample so they can
// never collide with caller streams that use the same labels.
const splitLabel uint64 = 0x5eed_517e_c0de_0001

// PopulationFunc reports the population (number of candidate draws) covered
// by the chunk interval [lo, hi). It must be additive:
// pop(lo, hi) == pop(lo, mid) + pop(mid, hi) for any split point.
type PopulationFunc func(lo, hi int64) int64

// SplitSample partitions `sample` draws over the chunks [0, k) and returns
// the share of the requested chunk together with the number of draws
// assigned to all chunks before it.
//
// The partition is computed by descending a balanced binary tree whose
// leaves are chunks: at each node the left subtree receives a
// Hypergeometric(pop_left, pop_node, sample_node) share and the right
// subtree the exact remainder. Node streams are derived from
// (seed, label, lo, hi), so any rank descending to the same chunk obtains
// identical counts. Left subtrees are always resolved first.
//
// Complexity: O(log k) nodes, one pop() call per node.
func (r RNG) SplitSample(label uint64, k, sample int64, pop PopulationFunc, chunk int64) (share, offset int64) {
	lo, hi := int64(0), k
	for hi-lo > 1 {
		mid := lo + (hi-lo+1)/2
		popNode := pop(lo, hi)
		popLeft := pop(lo, mid)
		left := r.Hypergeometric(popLeft, popNode, sample, splitLabel, label, uint64(lo), uint64(hi))
		if chunk < mid {
			hi = mid
			sample = left
		} else {
			lo = mid
			offset += left
			sample -= left
		}
	}

	return sample, offset
}

// SplitIID partitions sample independent draws over the chunks [0, k),
// every draw landing in each chunk with equal probability. The descent
// mirrors SplitSample but draws Binomial(sample, |left|/|node|) at each
// node, which is the exact multinomial marginal.
func (r RNG) SplitIID(label uint64, k, sample, chunk int64) (share, offset int64) {
	lo, hi := int64(0), k
	for hi-lo > 1 {
		mid := lo + (hi-lo+1)/2
		left := r.Binomial(sample, float64(mid-lo)/float64(hi-lo),
			splitLabel, label, uint64(lo), uint64(hi))
		if chunk < mid {
			hi = mid
			sample = left
		} else {
			lo = mid
			offset += left
			sample -= left
		}
	}

	return sample, offset
}

// SplitSampleUniform is SplitSample over chunks with balanced populations:
// chunk i covers population indices [i*population/k, (i+1)*population/k).
func (r RNG) SplitSampleUniform(label uint64, k, population, sample, chunk int64) (share, offset int64) {
	pop := func(lo, hi int64) int64 {
		return hi*population/k - lo*population/k
	}

	return r.SplitSample(label, k, sample, pop, chunk)
}
