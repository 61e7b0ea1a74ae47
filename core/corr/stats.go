package corr

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson returns the sample correlation coefficient of two equal-length
// vectors.
func Pearson(x, y []float64) float64 {
	return stat.Correlation(x, y, nil)
}

// Spearman returns the rank correlation coefficient: Pearson applied to the
// average ranks of both vectors.
func Spearman(x, y []float64) float64 {
	return stat.Correlation(averageRanks(x), averageRanks(y), nil)
}

// averageRanks assigns 1-based ranks to values, giving tied values the mean
// of the ranks they occupy.
func averageRanks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// Ranks are 1-based; ties share the mean of positions i..j.
		mean := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = mean
		}
		i = j + 1
	}
	return ranks
}

// CorrelationPValue returns the two-sided p-value for a correlation
// coefficient r over n samples, using the t statistic with n-2 degrees of
// freedom. A perfect correlation yields 0; fewer than 3 samples yield 1.
func CorrelationPValue(r float64, n int) float64 {
	if n < 3 || math.IsNaN(r) {
		return 1
	}
	if 1-r*r <= 0 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.Survival(math.Abs(t))
}

// JarqueBeraP returns the p-value of the Jarque-Bera normality test: the
// probability of seeing this much combined skewness and excess kurtosis if
// the sample came from a normal distribution. Small values reject normality.
func JarqueBeraP(values []float64) float64 {
	n := float64(len(values))
	if len(values) < 3 {
		return 0
	}
	skew := stat.Skew(values, nil)
	exk := stat.ExKurtosis(values, nil)
	if math.IsNaN(skew) || math.IsNaN(exk) {
		return 0
	}
	jb := n / 6 * (skew*skew + exk*exk/4)
	chi := distuv.ChiSquared{K: 2}
	return chi.Survival(jb)
}

// isConstant reports whether every value equals the first one. Correlation
// is undefined for constant vectors.
func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
