package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const separatorWidth = 60 // Width of separator lines in text output

// jsonGraph is the JSON rendering of a Graph.
type jsonGraph struct {
	Nodes  []jsonNode `json:"nodes"`
	Cycles [][]string `json:"cycles,omitempty"`
}

type jsonNode struct {
	ID           string   `json:"id"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
	External     []string `json:"external,omitempty"`
}

// ToJSON outputs the graph as indented JSON in declaration order.
func (g *Graph) ToJSON() ([]byte, error) {
	out := jsonGraph{Nodes: make([]jsonNode, 0, len(g.Order))}
	for _, id := range g.Order {
		node := g.Nodes[id]
		out.Nodes = append(out.Nodes, jsonNode{
			ID:           id.String(),
			Dependencies: idStrings(node.Dependencies),
			Dependents:   idStrings(node.Dependents),
			External:     node.External,
		})
	}
	for _, cycle := range g.FindCycles() {
		out.Cycles = append(out.Cycles, idStrings(cycle))
	}
	return json.MarshalIndent(out, "", "  ")
}

func idStrings(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// ToDOT outputs the graph in Graphviz DOT format.
// External requirements are drawn as dashed ellipses.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph components {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	for _, id := range g.Order {
		buf.WriteString(fmt.Sprintf("  %q;\n", id.String()))
	}

	externals := make(map[string]bool)
	for _, id := range g.Order {
		for _, ext := range g.Nodes[id].External {
			if externals[ext] {
				continue
			}
			externals[ext] = true
			buf.WriteString(fmt.Sprintf("  %q [shape=ellipse, style=dashed];\n", ext))
		}
	}

	buf.WriteString("\n")

	for _, id := range g.Order {
		node := g.Nodes[id]
		for _, dep := range node.Dependencies {
			buf.WriteString(fmt.Sprintf("  %q -> %q;\n", id.String(), dep.String()))
		}
		for _, ext := range node.External {
			buf.WriteString(fmt.Sprintf("  %q -> %q;\n", id.String(), ext))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable tree, one tree per root node.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	stats := g.Stats()
	buf.WriteString("Component Graph\n")
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")
	buf.WriteString(fmt.Sprintf("Components: %d\n", stats.TotalNodes))
	buf.WriteString(fmt.Sprintf("Internal edges: %d\n", stats.TotalEdges))
	buf.WriteString(fmt.Sprintf("External requirements: %d\n", stats.ExternalEdges))
	buf.WriteString(fmt.Sprintf("Max depth: %d\n\n", stats.MaxDepth))

	roots := g.Roots()
	if len(roots) == 0 {
		// Every node has a dependent: the graph is one big cycle.
		roots = g.Order
	}

	buf.WriteString("Dependency Tree:\n")
	for _, root := range roots {
		g.printTree(&buf, root, "", true, make(map[NodeID]bool))
	}

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, id NodeID, prefix string, isLast bool, visited map[NodeID]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		buf.WriteString(id.String())
	} else {
		buf.WriteString(prefix + connector + id.String())
	}

	if visited[id] {
		buf.WriteString(" (circular)\n")
		return
	}

	node := g.Nodes[id]
	if node == nil {
		buf.WriteString(" (missing)\n")
		return
	}
	if len(node.External) > 0 {
		buf.WriteString(" [" + strings.Join(node.External, ", ") + "]")
	}
	buf.WriteString("\n")

	visited[id] = true
	defer func() { visited[id] = false }()

	for i, dep := range node.Dependencies {
		isLastChild := i == len(node.Dependencies)-1
		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
		g.printTree(buf, dep, childPrefix, isLastChild, visited)
	}
}
