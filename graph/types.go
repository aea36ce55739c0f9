package graph

import "strings"

// NodeID identifies a node in the graph.
type NodeID string

// String returns the node ID as a plain string.
func (id NodeID) String() string {
	return string(id)
}

// Graph represents a component dependency graph.
// It supports bidirectional traversal (dependencies and dependents).
type Graph struct {
	// Nodes contains all nodes in the graph, keyed by ID.
	Nodes map[NodeID]*Node

	// Order is the declaration order of the nodes.
	Order []NodeID
}

// Node represents a component in the dependency graph.
type Node struct {
	// ID uniquely identifies this node.
	ID NodeID

	// Dependencies are the nodes this node requires, in declaration order.
	Dependencies []NodeID

	// Dependents are nodes that directly require this one (reverse edges).
	Dependents []NodeID

	// External lists package references outside the graph that this node requires.
	External []string
}

// Chain is a path of edges through the graph.
type Chain []NodeID

// String returns a human-readable representation of the chain.
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, id := range c {
		parts[i] = id.String()
	}
	return strings.Join(parts, " -> ")
}

// Edge is a directed dependency edge.
type Edge struct {
	From NodeID
	To   NodeID
}

// GraphStats provides statistics about the graph.
type GraphStats struct {
	// TotalNodes is the total number of nodes in the graph.
	TotalNodes int

	// TotalEdges is the number of internal dependency edges.
	TotalEdges int

	// ExternalEdges is the number of edges to packages outside the graph.
	ExternalEdges int

	// MaxDepth is the length of the longest dependency chain.
	MaxDepth int
}
