package calculator

import (
	"errors"
	"math"
	"math/big"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	MethodExact      = "exact"
	MethodAsymptotic = "asymptotic"

	// exactMaxN is the sample size up to which the exact null distribution
	// is used when the data has no ties.
	exactMaxN = 8
)

// ErrEmptySample is returned when either sample has no observations.
var ErrEmptySample = errors.New("rank test needs at least one observation per sample")

// RankSumResult is a two-sided Mann-Whitney U test outcome.
type RankSumResult struct {
	U      float64 // statistic of the first sample
	PValue float64
	Method string
}

// MannWhitneyU runs a two-sided Mann-Whitney U test of x against y.
// Samples may differ in size; no normality is assumed.
func MannWhitneyU(x, y []float64) (RankSumResult, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return RankSumResult{}, ErrEmptySample
	}

	ranks, tieTerm := rankAll(x, y)
	r1 := 0.0
	for _, r := range ranks[:n1] {
		r1 += r
	}
	u1 := r1 - float64(n1*(n1+1))/2
	u2 := float64(n1*n2) - u1
	u := math.Max(u1, u2)

	res := RankSumResult{U: u1}
	if (n1 <= exactMaxN || n2 <= exactMaxN) && tieTerm == 0 {
		res.Method = MethodExact
		res.PValue = 2 * exactSurvival(int(math.Round(u)), n1, n2)
	} else {
		res.Method = MethodAsymptotic
		res.PValue = asymptoticPValue(u, n1, n2, tieTerm)
	}
	res.PValue = math.Min(math.Max(res.PValue, 0), 1)
	return res, nil
}

// rankAll assigns average ranks (1-based) to the pooled samples, x first then y,
// and returns the tie correction term sum(t^3 - t).
func rankAll(x, y []float64) ([]float64, float64) {
	n := len(x) + len(y)
	pooled := make([]float64, 0, n)
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return pooled[order[a]] < pooled[order[b]] })

	ranks := make([]float64, n)
	tieTerm := 0.0
	for i := 0; i < n; {
		j := i + 1
		for j < n && pooled[order[j]] == pooled[order[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // mean of ranks i+1..j
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		if t := float64(j - i); t > 1 {
			tieTerm += t*t*t - t
		}
		i = j
	}
	return ranks, tieTerm
}

// exactSurvival returns P(U >= u) under the null hypothesis for sample sizes n1, n2.
// The counts are the coefficients of the Gaussian binomial [n1+n2 choose n1]_q.
// By symmetry the tail equals P(U <= n1*n2 - u), so only the series up to that
// degree is expanded, in exact integers.
func exactSurvival(u, n1, n2 int) float64 {
	m, n := n1, n2
	if m > n {
		m, n = n, m
	}
	deg := m * n
	if u <= 0 {
		return 1
	}
	if u > deg {
		return 0
	}

	limit := deg - u
	c := make([]*big.Int, limit+1)
	for k := range c {
		c[k] = new(big.Int)
	}
	c[0].SetInt64(1)
	for i := 1; i <= m; i++ {
		// multiply by (1 - q^(n+i)), then divide by (1 - q^i)
		s := n + i
		for k := limit; k >= s; k-- {
			c[k].Sub(c[k], c[k-s])
		}
		for k := i; k <= limit; k++ {
			c[k].Add(c[k], c[k-i])
		}
	}

	tail := new(big.Int)
	for _, v := range c {
		tail.Add(tail, v)
	}
	total := new(big.Int).Binomial(int64(m+n), int64(m))
	p, _ := new(big.Rat).SetFrac(tail, total).Float64()
	return p
}

// asymptoticPValue uses the tie-corrected normal approximation with continuity correction.
func asymptoticPValue(u float64, n1, n2 int, tieTerm float64) float64 {
	n := float64(n1 + n2)
	mu := float64(n1*n2) / 2
	sigma := math.Sqrt(float64(n1*n2) / 12 * ((n + 1) - tieTerm/(n*(n-1))))
	if sigma == 0 || math.IsNaN(sigma) {
		return 1
	}
	z := (u - mu - 0.5) / sigma
	return 2 * distuv.UnitNormal.Survival(z)
}
