package dtl

import "gonum.org/v1/gonum/stat"

//Mean returns the arithmetic mean of values. values must not be empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		panic(ErrEmptyTable)
	}
	return stat.Mean(values, nil)
}

//MostFrequent returns the value with the highest occurrence count. Values are
//compared with exact equality. When several values share the highest count the
//one whose first occurrence comes earliest in values wins.
func MostFrequent(values []float64) float64 {
	if len(values) == 0 {
		panic(ErrEmptyTable)
	}

	counts := make(map[float64]int, len(values))
	firstSeen := make(map[float64]int, len(values))
	for ind, v := range values {
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = ind
		}
		counts[v]++
	}

	best := values[0]
	bestCount := counts[best]
	for v, count := range counts {
		if count > bestCount || (count == bestCount && firstSeen[v] < firstSeen[best]) {
			best, bestCount = v, count
		}
	}
	return best
}
