package graph

// SimpleNode is a simplified node representation for building graphs.
type SimpleNode struct {
	ID           NodeID
	Dependencies []NodeID
	External     []string
}

// Build constructs a Graph from a node list, preserving declaration order.
//
// Edges to IDs that are not declared are kept on the node so that callers can
// report them through DanglingEdges; they are not given reverse edges.
// A repeated ID replaces the earlier node's contents but keeps its position.
func Build(nodes []SimpleNode) *Graph {
	g := &Graph{
		Nodes: make(map[NodeID]*Node, len(nodes)),
		Order: make([]NodeID, 0, len(nodes)),
	}

	// Create nodes
	for _, n := range nodes {
		node := &Node{
			ID:           n.ID,
			Dependencies: make([]NodeID, len(n.Dependencies)),
			Dependents:   make([]NodeID, 0),
			External:     make([]string, len(n.External)),
		}
		copy(node.Dependencies, n.Dependencies)
		copy(node.External, n.External)

		if _, exists := g.Nodes[n.ID]; !exists {
			g.Order = append(g.Order, n.ID)
		}
		g.Nodes[n.ID] = node
	}

	// Build reverse edges
	for _, id := range g.Order {
		for _, dep := range g.Nodes[id].Dependencies {
			if depNode, ok := g.Nodes[dep]; ok {
				depNode.Dependents = append(depNode.Dependents, id)
			}
		}
	}

	return g
}

// DanglingEdges returns edges whose target is not a node of the graph.
func (g *Graph) DanglingEdges() []Edge {
	var dangling []Edge
	for _, id := range g.Order {
		for _, dep := range g.Nodes[id].Dependencies {
			if _, ok := g.Nodes[dep]; !ok {
				dangling = append(dangling, Edge{From: id, To: dep})
			}
		}
	}
	return dangling
}
