package dtl

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

//SplitPoint describes the split of an internal node. Rows whose value in Column
//is less than Threshold go to the left child, the others to the right child.
type SplitPoint struct {
	InformationGain float64
	Column          int
	Threshold       float64
}

//Node is a node of a fitted tree. A leaf has no split and no children. An
//internal node also carries a label, the fallback value of its rows, which is
//never returned by a prediction.
type Node struct {
	label           float64
	split           *SplitPoint
	left, right     *Node
	numberOfObjects int
	impurity        float64
}

func newLeaf(label float64, numberOfObjects int) *Node {
	return &Node{label: label, numberOfObjects: numberOfObjects}
}

//IsLeaf returns whether this node is a leaf.
func (node *Node) IsLeaf() bool {
	return node.split == nil
}

//Label returns the value predicted by a leaf or the fallback value of an internal node.
func (node *Node) Label() float64 {
	return node.label
}

//Split returns the split of an internal node. ok is false for a leaf.
func (node *Node) Split() (split SplitPoint, ok bool) {
	if node.split == nil {
		return SplitPoint{}, false
	}
	return *node.split, true
}

//Left returns the left child, nil for a leaf.
func (node *Node) Left() *Node {
	return node.left
}

//Right returns the right child, nil for a leaf.
func (node *Node) Right() *Node {
	return node.right
}

//NumberOfObjects returns the number of training rows that reached the node.
func (node *Node) NumberOfObjects() int {
	return node.numberOfObjects
}

//Impurity returns the criterion value over the training rows of the node.
//It is zero for pure leaves, the criterion is not evaluated for them.
func (node *Node) Impurity() float64 {
	return node.impurity
}

func (node *Node) predict(xs []float64) (float64, error) {
	for !node.IsLeaf() {
		column := node.split.Column
		if column >= len(xs) {
			return 0, errors.Wrapf(ErrFeatureIndexOutOfRange, "split on column %d, feature vector has %d entries", column, len(xs))
		}
		if xs[column] < node.split.Threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.label, nil
}

//Tree is a fitted decision tree.
type Tree struct {
	root *Node
}

//Root returns the root node.
func (tree *Tree) Root() *Node {
	return tree.root
}

//Predict returns the label of the leaf reached by xs. It panics if xs is too
//short for a column used along the path.
func (tree *Tree) Predict(xs []float64) float64 {
	value, err := tree.root.predict(xs)
	if err != nil {
		panic(err)
	}
	return value
}

//TryPredict is Predict that reports a too short feature vector as an error.
func (tree *Tree) TryPredict(xs []float64) (float64, error) {
	return tree.root.predict(xs)
}

//PredictValue predicts every row of features. The result has one column.
func (tree *Tree) PredictValue(features mat.Matrix) (prediction *mat.Dense) {
	h, w := features.Dims()
	if h == 0 {
		return &mat.Dense{}
	}
	prediction = mat.NewDense(h, 1, nil)
	xs := make([]float64, w)
	for p := 0; p < h; p++ {
		mat.Row(xs, p, features)
		prediction.Set(p, 0, tree.Predict(xs))
	}
	return
}

//Walk visits the nodes in pre-order, left before right. The root has depth 0.
func (tree *Tree) Walk(visit func(node *Node, depth int)) {
	var walk func(node *Node, depth int)
	walk = func(node *Node, depth int) {
		visit(node, depth)
		if !node.IsLeaf() {
			walk(node.left, depth+1)
			walk(node.right, depth+1)
		}
	}
	walk(tree.root, 0)
}

//NodeCount returns the number of nodes including leaves.
func (tree *Tree) NodeCount() (count int) {
	tree.Walk(func(*Node, int) { count++ })
	return
}

//LeafCount returns the number of leaves.
func (tree *Tree) LeafCount() (count int) {
	tree.Walk(func(node *Node, _ int) {
		if node.IsLeaf() {
			count++
		}
	})
	return
}

//Depth returns the length of the longest path from the root to a leaf.
func (tree *Tree) Depth() (depth int) {
	tree.Walk(func(_ *Node, d int) {
		if d > depth {
			depth = d
		}
	})
	return
}
