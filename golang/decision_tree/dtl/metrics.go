package dtl

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Rmse returns the root mean squared error between two single column matrices.
func Rmse(target, prediction *mat.Dense) float64 {
	h, _ := target.Dims()
	predictionH, _ := prediction.Dims()
	if h != predictionH {
		panic(errors.Wrapf(ErrDimensionMismatch, "target height %d, prediction height %d", h, predictionH))
	}
	return floats.Distance(mat.Col(nil, 0, target), mat.Col(nil, 0, prediction), 2) / math.Sqrt(float64(h))
}
