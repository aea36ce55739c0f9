package graph

// Get returns the node for an ID, or nil if not found.
func (g *Graph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// Contains returns true if the graph contains the given node.
func (g *Graph) Contains(id NodeID) bool {
	_, ok := g.Nodes[id]
	return ok
}

// DirectDeps returns the direct dependencies of a node.
func (g *Graph) DirectDeps(id NodeID) []NodeID {
	if node := g.Nodes[id]; node != nil {
		return node.Dependencies
	}
	return nil
}

// DirectDependents returns nodes that directly depend on the given node.
func (g *Graph) DirectDependents(id NodeID) []NodeID {
	if node := g.Nodes[id]; node != nil {
		return node.Dependents
	}
	return nil
}

// TransitiveDeps returns all transitive dependencies of a node.
// The result is in breadth-first order.
func (g *Graph) TransitiveDeps(id NodeID) []NodeID {
	return g.walk(id, func(n *Node) []NodeID { return n.Dependencies })
}

// TransitiveDependents returns all nodes that transitively depend on the given node.
// The result is in breadth-first order (closest dependents first).
func (g *Graph) TransitiveDependents(id NodeID) []NodeID {
	return g.walk(id, func(n *Node) []NodeID { return n.Dependents })
}

func (g *Graph) walk(start NodeID, next func(*Node) []NodeID) []NodeID {
	result := make([]NodeID, 0)
	visited := map[NodeID]bool{start: true}
	queue := []NodeID{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current]
		if node == nil {
			continue
		}

		for _, dep := range next(node) {
			if !visited[dep] {
				visited[dep] = true
				result = append(result, dep)
				queue = append(queue, dep)
			}
		}
	}

	return result
}

// Reaches reports whether to is reachable from from by following dependency edges.
func (g *Graph) Reaches(from, to NodeID) bool {
	return g.Path(from, to) != nil
}

// Path finds the shortest dependency path from one node to another.
// Returns nil if no path exists.
func (g *Graph) Path(from, to NodeID) Chain {
	if !g.Contains(from) {
		return nil
	}
	if from == to {
		return Chain{from}
	}

	type queueItem struct {
		id   NodeID
		path Chain
	}

	visited := map[NodeID]bool{from: true}
	queue := []queueItem{{id: from, path: Chain{from}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current.id]
		if node == nil {
			continue
		}

		for _, dep := range node.Dependencies {
			if !g.Contains(dep) {
				continue
			}
			newPath := make(Chain, len(current.path)+1)
			copy(newPath, current.path)
			newPath[len(current.path)] = dep
			if dep == to {
				return newPath
			}
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, queueItem{id: dep, path: newPath})
			}
		}
	}

	return nil
}

// Roots returns all nodes with no dependents, in declaration order.
func (g *Graph) Roots() []NodeID {
	var roots []NodeID
	for _, id := range g.Order {
		if len(g.Nodes[id].Dependents) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns all nodes with no dependencies, in declaration order.
func (g *Graph) Leaves() []NodeID {
	var leaves []NodeID
	for _, id := range g.Order {
		if len(g.Nodes[id].Dependencies) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// HasCycles returns true if the graph contains cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}

// FindCycles returns all cycles in the graph. Each cycle starts at the node
// first reached on the DFS path; traversal follows declaration order.
func (g *Graph) FindCycles() []Chain {
	var cycles []Chain
	visited := make(map[NodeID]bool)
	recStack := make(map[NodeID]bool)
	path := make(Chain, 0)

	var findCycles func(id NodeID)
	findCycles = func(id NodeID) {
		visited[id] = true
		recStack[id] = true
		path = append(path, id)

		if node := g.Nodes[id]; node != nil {
			for _, dep := range node.Dependencies {
				if !g.Contains(dep) {
					continue
				}
				if !visited[dep] {
					findCycles(dep)
				} else if recStack[dep] {
					// Found a cycle, extract it
					for i, k := range path {
						if k == dep {
							cycle := make(Chain, len(path)-i)
							copy(cycle, path[i:])
							cycles = append(cycles, cycle)
							break
						}
					}
				}
			}
		}

		path = path[:len(path)-1]
		recStack[id] = false
	}

	for _, id := range g.Order {
		if !visited[id] {
			findCycles(id)
		}
	}

	return cycles
}

// TopologicalOrder returns the nodes ordered so that every node appears after
// all of its dependencies. Ties keep declaration order. It returns false if the
// graph has a cycle.
func (g *Graph) TopologicalOrder() ([]NodeID, bool) {
	pending := make(map[NodeID]int, len(g.Nodes))
	for _, id := range g.Order {
		for _, dep := range g.Nodes[id].Dependencies {
			if g.Contains(dep) {
				pending[id]++
			}
		}
	}

	order := make([]NodeID, 0, len(g.Order))
	done := make(map[NodeID]bool, len(g.Order))
	for len(order) < len(g.Order) {
		progressed := false
		for _, id := range g.Order {
			if done[id] || pending[id] > 0 {
				continue
			}
			done[id] = true
			order = append(order, id)
			for _, dependent := range g.Nodes[id].Dependents {
				pending[dependent]--
			}
			progressed = true
		}
		if !progressed {
			return nil, false
		}
	}
	return order, true
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() GraphStats {
	stats := GraphStats{
		TotalNodes: len(g.Nodes),
	}

	for _, node := range g.Nodes {
		stats.TotalEdges += len(node.Dependencies)
		stats.ExternalEdges += len(node.External)
	}

	stats.MaxDepth = g.calculateMaxDepth()

	return stats
}

func (g *Graph) calculateMaxDepth() int {
	depths := make(map[NodeID]int)
	onPath := make(map[NodeID]bool)
	var maxDepth int

	var dfs func(id NodeID, depth int)
	dfs = func(id NodeID, depth int) {
		// A node already on the current DFS path closes a cycle.
		if onPath[id] {
			return
		}
		if existingDepth, ok := depths[id]; ok && existingDepth >= depth {
			return
		}
		depths[id] = depth
		if depth > maxDepth {
			maxDepth = depth
		}

		node := g.Nodes[id]
		if node == nil {
			return
		}

		onPath[id] = true
		for _, dep := range node.Dependencies {
			dfs(dep, depth+1)
		}
		delete(onPath, id)
	}

	for _, root := range g.Roots() {
		dfs(root, 0)
	}
	return maxDepth
}
