// Package graph provides a typed, ordered dependency graph for the components
// a package exports.
//
// Nodes are identified by component ID and keep their declaration order, so
// every query and rendering is deterministic: two builds from the same input
// produce byte-identical output.
//
// # Building a Graph
//
//	g := graph.Build([]graph.SimpleNode{
//	    {ID: "global", External: []string{"boost/1.81.0"}},
//	    {ID: "einsum", Dependencies: []graph.NodeID{"global"}},
//	})
//
// # Querying the Graph
//
//	deps := g.TransitiveDeps("einsum")
//	ok := g.Reaches("einsum", "global")
//	cycles := g.FindCycles()
//
// # Output Formats
//
//	jsonBytes, _ := g.ToJSON()
//	dotString := g.ToDOT()
//	textString := g.ToText()
package graph
