package engine

import (
	"slices"
)

// Stats tracks aggregate statistics of a wealth vector.
type Stats struct {
	Population  int     `json:"population" yaml:"population"`
	TotalWealth uint64  `json:"total_wealth" yaml:"total_wealth"`
	MaxWealth   uint64  `json:"max_wealth" yaml:"max_wealth"`
	Broke       int     `json:"broke" yaml:"broke"` // Agents holding nothing
	Gini        float64 `json:"gini" yaml:"gini"`
}

// ComputeStats summarizes wealth.
func ComputeStats(wealth []uint64) Stats {
	st := Stats{Population: len(wealth)}
	for _, w := range wealth {
		st.TotalWealth += w
		if w > st.MaxWealth {
			st.MaxWealth = w
		}
		if w == 0 {
			st.Broke++
		}
	}
	st.Gini = Gini(wealth)
	return st
}

// Gini returns the Gini coefficient of wealth: 0 for perfect equality,
// (n-1)/n when one agent holds everything. Empty and all-zero input yield 0.
func Gini(wealth []uint64) float64 {
	n := len(wealth)
	if n == 0 {
		return 0
	}

	sorted := slices.Clone(wealth)
	slices.Sort(sorted)

	var total, weighted float64
	for i, w := range sorted {
		total += float64(w)
		weighted += float64(w) * float64(n-i)
	}
	if total == 0 {
		return 0
	}

	b := weighted / (float64(n) * total)
	g := 1 + 1/float64(n) - 2*b
	if g < 0 {
		// Rounding on a perfectly equal vector.
		return 0
	}
	return g
}

// Bin is one wealth value and the number of samples holding it.
type Bin struct {
	Wealth uint64 `json:"wealth" yaml:"wealth"`
	Count  int    `json:"count" yaml:"count"`
}

// Histogram counts how many samples hold each wealth value, in ascending
// wealth order. Values between the minimum and maximum that no sample holds
// are included with a zero count.
func Histogram(wealth []uint64) []Bin {
	if len(wealth) == 0 {
		return nil
	}

	lo, hi := slices.Min(wealth), slices.Max(wealth)
	bins := make([]Bin, 0, hi-lo+1)
	for w := lo; w <= hi; w++ {
		bins = append(bins, Bin{Wealth: w})
	}
	for _, w := range wealth {
		bins[w-lo].Count++
	}
	return bins
}
