package hyperbolic

import "math"

// expectedAvgDegree estimates the mean degree of an n-point disk of
// radius radius with radial dispersion alpha (Krioukov et al., via the
// closed form popularized by NetworKit).
func expectedAvgDegree(n, alpha, radius float64) float64 {
	gamma := 2*alpha + 1
	xi := (gamma - 1) / (gamma - 2)
	first := math.Exp(-radius / 2)
	second := math.Exp(-alpha*radius) *
		(alpha*(radius/2)*((math.Pi/4)*math.Pow(1/alpha, 2)-(math.Pi-1)*(1/alpha)+(math.Pi-2)) - 1)

	return (2 / math.Pi) * xi * xi * n * (first + second)
}

// targetRadius solves expectedAvgDegree(n, alpha, R) == avgDegree for R.
// The expectation is strictly decreasing in R, so a plain bisection on a
// bracket around the classic 2*ln(n/v) estimate converges fast.
func targetRadius(n, alpha, avgDegree float64) float64 {
	gamma := 2*alpha + 1
	xiInv := (gamma - 2) / (gamma - 1)
	v := avgDegree * (math.Pi / 2) * xiInv * xiInv
	guess := 2 * math.Log(n/v)
	if guess <= 0 {
		guess = 1
	}

	lo, hi := guess/4, guess*4
	for expectedAvgDegree(n, alpha, lo) < avgDegree {
		lo /= 2
	}
	for expectedAvgDegree(n, alpha, hi) > avgDegree {
		hi *= 2
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if expectedAvgDegree(n, alpha, mid) > avgDegree {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2
}
