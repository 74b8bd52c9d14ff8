package dtl

import (
	"strings"

	"github.com/pkg/errors"
)

//Criterion measures the impurity of a set of target values. Implementations
//must not modify target and may assume it is not empty.
type Criterion interface {
	Calculate(target []float64) float64
}

//Mse is the mean squared deviation of the target values from their mean.
type Mse struct{}

//Calculate returns the mean squared error.
func (Mse) Calculate(target []float64) float64 {
	n := float64(len(target))
	m := Mean(target)
	s := 0.0
	for _, y := range target {
		d := y - m
		s += d * d
	}
	return s / n
}

//Gini is the Gini impurity of the target values treated as class labels.
type Gini struct{}

//Calculate returns 1 - sum(p_k^2) where p_k are the frequencies of the distinct values.
func (Gini) Calculate(target []float64) float64 {
	n := float64(len(target))
	counts := make(map[float64]int)
	order := make([]float64, 0)
	for _, y := range target {
		if _, ok := counts[y]; !ok {
			order = append(order, y)
		}
		counts[y]++
	}
	// summed in first-occurrence order, map order is random
	s := 0.0
	for _, y := range order {
		p := float64(counts[y]) / n
		s += p * p
	}
	return 1.0 - s
}

//CriterionByName resolves a criterion from a configuration value.
func CriterionByName(name string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mse":
		return Mse{}, nil
	case "gini":
		return Gini{}, nil
	default:
		return nil, errors.Errorf("unsupported criterion %q", name)
	}
}
