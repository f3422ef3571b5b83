package rng

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// hypergeometricInversionLimit bounds the support width for which exact
// inversion is used; wider supports fall back to a clamped normal
// approximation. The tree splitter never depends on distributional
// exactness for its sum invariants, only on values staying within support.
const hypergeometricInversionLimit = 1 << 12

// hypergeometric draws the number of successes when `sample` items are
// taken without replacement from a population of size `population`
// containing `successes` success items.
func hypergeometric(rnd *rand.Rand, successes, population, sample int64) int64 {
	if population <= 0 || sample <= 0 || successes <= 0 {
		return 0
	}
	if sample >= population {
		return successes
	}
	if successes >= population {
		return sample
	}

	failures := population - successes
	low := int64(0)
	if sample > failures {
		low = sample - failures
	}
	high := sample
	if successes < high {
		high = successes
	}
	if low == high {
		return low
	}

	if high-low <= hypergeometricInversionLimit {
		return hypergeometricInversion(rnd, successes, failures, sample, low, high)
	}

	return hypergeometricNormal(rnd, successes, population, sample, low, high)
}

// hypergeometricInversion inverts the CDF by chop-down accumulation from
// the lower end of the support, using the multiplicative pmf recurrence.
func hypergeometricInversion(rnd *rand.Rand, successes, failures, sample, low, high int64) int64 {
	n := float64(successes + failures)
	// log pmf at the lower support bound, via log-gamma.
	lp := lchoose(float64(successes), float64(low)) +
		lchoose(float64(failures), float64(sample-low)) -
		lchoose(n, float64(sample))
	pmf := math.Exp(lp)

	u := rnd.Float64()
	x := low
	cdf := pmf
	for cdf < u && x < high {
		// pmf(x+1)/pmf(x) for the hypergeometric distribution.
		num := float64(successes-x) * float64(sample-x)
		den := float64(x+1) * float64(failures-sample+x+1)
		pmf *= num / den
		x++
		cdf += pmf
	}

	return x
}

// hypergeometricNormal approximates wide-support draws with a normal
// matched to the hypergeometric mean and variance, clamped to the support.
func hypergeometricNormal(rnd *rand.Rand, successes, population, sample, low, high int64) int64 {
	nn := float64(population)
	k := float64(successes)
	s := float64(sample)
	mean := s * k / nn
	variance := s * k * (nn - k) * (nn - s) / (nn * nn * (nn - 1))

	z := distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}.Rand()
	x := int64(math.Round(mean + z*math.Sqrt(variance)))
	if x < low {
		x = low
	}
	if x > high {
		x = high
	}

	return x
}

// lchoose computes log C(n, k) through the log-gamma function.
func lchoose(n, k float64) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	a, _ := math.Lgamma(n + 1)
	b, _ := math.Lgamma(k + 1)
	c, _ := math.Lgamma(n - k + 1)

	return a - b - c
}
