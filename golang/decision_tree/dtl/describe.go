package dtl

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

//DescribeTree renders the nodes of a tree as a text table, one line per node in pre-order.
func DescribeTree(tree *Tree) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"id", "depth", "kind", "rows", "label", "split", "gain"})

	nodeId := 0
	tree.Walk(func(node *Node, depth int) {
		kind, split, gain := "leaf", "", ""
		if s, ok := node.Split(); ok {
			kind = "node"
			split = fmt.Sprintf("f_%d < %g", s.Column, s.Threshold)
			gain = fmt.Sprintf("%.6g", s.InformationGain)
		}
		tw.AppendRow(table.Row{
			nodeId,
			depth,
			strings.Repeat("  ", depth) + kind,
			node.NumberOfObjects(),
			fmt.Sprintf("%.6g", node.Label()),
			split,
			gain,
		})
		nodeId++
	})
	tw.AppendFooter(table.Row{"", "", "", "", "", "leaves", tree.LeafCount()})
	return tw.Render()
}
