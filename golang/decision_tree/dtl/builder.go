package dtl

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//TreeParams collect arguments required to fit a tree.
type TreeParams struct {
	Criterion Criterion
	// Classification selects the most frequent target value as the node label instead of the mean.
	Classification bool
	Logger         *zap.Logger
}

//Fit builds a tree on table. The table is reordered in place and should not be
//used for another fit afterwards.
func Fit(table *Table, criterion Criterion, classification bool) *Tree {
	return FitWithParams(table, TreeParams{Criterion: criterion, Classification: classification})
}

//FitWithParams builds a tree on table with the given parameters.
func FitWithParams(table *Table, params TreeParams) *Tree {
	if table == nil || table.Len() == 0 {
		panic(errors.WithStack(ErrEmptyTable))
	}
	if params.Criterion == nil {
		params.Criterion = Mse{}
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	builder := nodeBuilder{
		criterion:      params.Criterion,
		classification: params.Classification,
		logger:         logger,
	}
	tree := &Tree{root: builder.build(table, 0)}

	logger.Info("tree fitted",
		zap.String("description", table.description()),
		zap.Int("rows", table.Len()),
		zap.Int("nodes", tree.NodeCount()),
		zap.Int("leaves", tree.LeafCount()),
		zap.Int("depth", tree.Depth()),
	)
	return tree
}

type nodeBuilder struct {
	criterion      Criterion
	classification bool
	logger         *zap.Logger
}

//build recurrently builds a tree node over the current window of table.
func (b *nodeBuilder) build(table *Table, depth int) *Node {
	if table.IsSingleTarget() {
		return newLeaf(table.Target()[0], table.Len())
	}

	target := table.Target()
	var label float64
	if b.classification {
		label = MostFrequent(target)
	} else {
		label = Mean(target)
	}

	impurity := b.criterion.Calculate(target)
	best, ok := b.theBestSplit(table, impurity)
	if !ok {
		panic(errors.Wrapf(ErrNoSplit, "%d rows with different targets and no usable feature column at depth %d", table.Len(), depth))
	}

	b.logger.Debug("split",
		zap.Int("depth", depth),
		zap.Int("rows", table.Len()),
		zap.Int("column", best.Column),
		zap.Float64("threshold", best.Threshold),
		zap.Float64("gain", best.InformationGain),
	)

	node := &Node{label: label, split: &best, numberOfObjects: table.Len(), impurity: impurity}
	node.left, node.right = b.buildChildren(table, best, depth)
	return node
}

//theBestSplit scans all columns without NaN values and selects the candidate with
//the highest information gain. A candidate replaces the current best only if its
//gain is strictly greater, so ties keep the lowest column and then the lowest row.
func (b *nodeBuilder) theBestSplit(table *Table, impurity float64) (best SplitPoint, ok bool) {
	rows := table.Len()

	for column := 0; column < table.Width(); column++ {
		if table.ColumnHasNaN(column) {
			continue
		}

		table.SortRowsByFeature(column)
		target := table.Target()
		for thresholds := table.Thresholds(column); thresholds.HasNext(); {
			row, threshold := thresholds.GetNext()
			impurityLeft := b.criterion.Calculate(target[:row])
			impurityRight := b.criterion.Calculate(target[row:])
			nLeft := float64(row) / float64(rows)
			nRight := 1.0 - nLeft

			informationGain := impurity - (nLeft*impurityLeft + nRight*impurityRight)
			if !ok || best.InformationGain < informationGain {
				ok = true
				best = SplitPoint{InformationGain: informationGain, Column: column, Threshold: threshold}
			}
		}
	}
	return
}

//buildChildren partitions the table by split and builds both subtrees.
func (b *nodeBuilder) buildChildren(table *Table, split SplitPoint, depth int) (left, right *Node) {
	table.SortRowsByFeature(split.Column)
	row := table.SearchThreshold(split.Column, split.Threshold)
	return table.WithSplit(row, func(part *Table) *Node {
		return b.build(part, depth+1)
	})
}
