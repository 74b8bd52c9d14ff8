package dtl

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Table holds a training set: feature columns and a target column aligned by row.
//The backing data is never modified. A Table is a window over a permutation of
//row ids; sorting reorders the window and splitting hands out disjoint sub-windows.
type Table struct {
	features    *mat.Dense
	target      []float64
	rows        []int
	Description *string
}

//NewTable creates a table over features (one row per record) and target.
//The target slice is copied, features are shared and must not be changed while the table is in use.
func NewTable(features *mat.Dense, target []float64) (*Table, error) {
	if features == nil {
		return nil, errors.Wrap(ErrDimensionMismatch, "nil features")
	}
	h, _ := features.Dims()
	if h != len(target) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "the target height %d is not equal to the features height %d", len(target), h)
	}

	table := &Table{
		features: features,
		target:   append([]float64(nil), target...),
		rows:     make([]int, h),
	}
	for p := range table.rows {
		table.rows[p] = p
	}
	return table, nil
}

//NewTableFromRows creates a table from row-major feature vectors.
func NewTableFromRows(features [][]float64, target []float64) (*Table, error) {
	if len(features) != len(target) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%d feature rows and %d targets", len(features), len(target))
	}
	if len(features) == 0 {
		return &Table{features: &mat.Dense{}, target: nil, rows: nil}, nil
	}

	w := len(features[0])
	data := make([]float64, 0, len(features)*w)
	for p, row := range features {
		if len(row) != w {
			return nil, errors.Wrapf(ErrDimensionMismatch, "row %d has %d features, expected %d", p, len(row), w)
		}
		data = append(data, row...)
	}
	if w == 0 {
		return nil, errors.Wrap(ErrDimensionMismatch, "rows without features")
	}
	return NewTable(mat.NewDense(len(features), w, data), target)
}

//SetDescription sets a description used in log records about this table.
func (t *Table) SetDescription(description string) {
	t.Description = &description
}

func (t *Table) description() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

//Len returns the number of rows in the current window.
func (t *Table) Len() int {
	return len(t.rows)
}

//Width returns the number of feature columns.
func (t *Table) Width() int {
	if t.Len() == 0 {
		return 0
	}
	_, w := t.features.Dims()
	return w
}

//Feature returns the value of column for the row at position row of the current order.
func (t *Table) Feature(row, column int) float64 {
	return t.features.At(t.rows[row], column)
}

//Column returns the values of a feature column in the current row order.
func (t *Table) Column(column int) []float64 {
	values := make([]float64, len(t.rows))
	for p, id := range t.rows {
		values[p] = t.features.At(id, column)
	}
	return values
}

//Target returns the target values in the current row order. Every call returns a fresh slice.
func (t *Table) Target() []float64 {
	values := make([]float64, len(t.rows))
	for p, id := range t.rows {
		values[p] = t.target[id]
	}
	return values
}

//RecordIds returns the original row numbers of the rows in the current order.
func (t *Table) RecordIds() []int {
	return append([]int(nil), t.rows...)
}

//IsSingleTarget reports whether every target value in the window is identical.
//Values are compared exactly.
func (t *Table) IsSingleTarget() bool {
	if len(t.rows) == 0 {
		return false
	}
	first := t.target[t.rows[0]]
	for _, id := range t.rows[1:] {
		if t.target[id] != first {
			return false
		}
	}
	return true
}

//ColumnHasNaN reports whether any value of column in the window is NaN.
func (t *Table) ColumnHasNaN(column int) bool {
	return floats.HasNaN(t.Column(column))
}

//SortRowsByFeature reorders the window by ascending value of column.
//The relative order of equal values is unspecified.
func (t *Table) SortRowsByFeature(column int) {
	values := t.Column(column)
	inds := make([]int, len(values))
	floats.Argsort(values, inds)

	sorted := make([]int, len(t.rows))
	for p, ind := range inds {
		sorted[p] = t.rows[ind]
	}
	copy(t.rows, sorted)
}

//Thresholds returns the split candidates of column. The result is meaningful
//only right after SortRowsByFeature(column).
func (t *Table) Thresholds(column int) *Thresholds {
	return NewThresholds(t.Column(column))
}

//SearchThreshold returns the position of the first row whose value in column is
//not less than threshold. The window must be sorted by column.
func (t *Table) SearchThreshold(column int, threshold float64) int {
	row, _ := slices.BinarySearch(t.Column(column), threshold)
	return row
}

//WithSplit partitions the window into rows [0, row) and [row, Len()) and calls
//build on each part. Both parts must be non-empty.
func (t *Table) WithSplit(row int, build func(*Table) *Node) (left, right *Node) {
	if row <= 0 || row >= len(t.rows) {
		panic(errors.Errorf("split row %d outside of (0, %d)", row, len(t.rows)))
	}
	leftTable := &Table{features: t.features, target: t.target, rows: t.rows[:row:row], Description: t.Description}
	rightTable := &Table{features: t.features, target: t.target, rows: t.rows[row:], Description: t.Description}
	return build(leftTable), build(rightTable)
}

//Features returns a copy of the feature rows in the current order.
func (t *Table) Features() *mat.Dense {
	h, w := len(t.rows), t.Width()
	if h == 0 {
		return &mat.Dense{}
	}
	dense := mat.NewDense(h, w, nil)
	for p, id := range t.rows {
		dense.SetRow(p, t.features.RawRowView(id))
	}
	return dense
}

//Evaluate predicts every row of the table with tree, reports the RMSE against
//the target and returns it.
func (t *Table) Evaluate(tree *Tree, logger *zap.Logger) float64 {
	if logger == nil {
		logger = zap.NewNop()
	}
	prediction := tree.PredictValue(t.Features())
	rmse := Rmse(mat.NewDense(t.Len(), 1, t.Target()), prediction)
	logger.Info("evaluated tree",
		zap.String("description", t.description()),
		zap.Int("rows", t.Len()),
		zap.Float64("rmse", rmse),
	)
	return rmse
}
