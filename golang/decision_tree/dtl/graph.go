package dtl

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"
)

//GraphDescription returns the description of a node for tree rendering as a graph
func (node *Node) GraphDescription(nodeId int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("id: ", nodeId))
	sb.WriteString(fmt.Sprintln("#", node.numberOfObjects))
	if node.IsLeaf() {
		sb.WriteString(fmt.Sprintf("value = %6.5g", node.label))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintln("impurity: ", node.impurity))
	sb.WriteString(fmt.Sprintln("gain: ", node.split.InformationGain))
	sb.WriteString(fmt.Sprintf("f_%d < %6.5f", node.split.Column, node.split.Threshold))
	return sb.String()
}

func recurrentDraw(g *cgraph.Graph, node *Node, nodeId *int, parentNode *cgraph.Node) error {
	currentId := *nodeId
	*nodeId++

	currentNode, err := g.CreateNode(fmt.Sprint(currentId))
	if err != nil {
		return errors.Wrapf(err, "create graph node %d", currentId)
	}

	if parentNode != nil {
		if _, err := g.CreateEdge("", parentNode, currentNode); err != nil {
			return errors.Wrapf(err, "create graph edge to %d", currentId)
		}
	}

	currentNode.Set("label", node.GraphDescription(currentId))
	if node.IsLeaf() {
		currentNode.Set("shape", "box")
		return nil
	}
	if err := recurrentDraw(g, node.left, nodeId, currentNode); err != nil {
		return err
	}
	return recurrentDraw(g, node.right, nodeId, currentNode)
}

//DrawGraph builds a graphviz graph of the tree. Nodes are numbered in pre-order.
//The caller owns both returned objects and should close them.
func (tree *Tree) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph, error) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		return nil, nil, errors.Wrap(err, "create graph")
	}

	nodeId := 0
	if err := recurrentDraw(graph, tree.root, &nodeId, nil); err != nil {
		return nil, nil, err
	}
	return graphViz, graph, nil
}

//GraphvizFormat maps a figure type name to a graphviz output format.
func GraphvizFormat(figureType string) (graphviz.Format, error) {
	format, ok := map[string]graphviz.Format{
		"png": graphviz.PNG,
		"svg": graphviz.SVG,
		"jpg": graphviz.JPG,
		"dot": graphviz.XDOT,
	}[strings.ToLower(figureType)]
	if !ok {
		return "", errors.Errorf("unsupported figure type %q", figureType)
	}
	return format, nil
}

//RenderTree writes a figure of the tree in the given figure type (png, svg, jpg or dot).
func (tree *Tree) RenderTree(figureType string, w io.Writer) error {
	format, err := GraphvizFormat(figureType)
	if err != nil {
		return err
	}

	graphViz, graph, err := tree.DrawGraph()
	if err != nil {
		return err
	}
	defer func() {
		_ = graph.Close()
		_ = graphViz.Close()
	}()

	return errors.Wrap(graphViz.Render(graph, format, w), "render tree")
}

//RenderTreeFilename writes a figure of the tree to fileName.
func (tree *Tree) RenderTreeFilename(figureType, fileName string) error {
	format, err := GraphvizFormat(figureType)
	if err != nil {
		return err
	}

	graphViz, graph, err := tree.DrawGraph()
	if err != nil {
		return err
	}
	defer func() {
		_ = graph.Close()
		_ = graphViz.Close()
	}()

	return errors.Wrapf(graphViz.RenderFilename(graph, format, fileName), "render tree to %s", fileName)
}
