package conanrecipe

import (
	"fmt"
	"path"
	"slices"

	"github.com/albertocavalcante/go-conanrecipe/graph"
	"github.com/albertocavalcante/go-conanrecipe/label"
)

// ComponentGraph is the validated set of components a package exports.
type ComponentGraph struct {
	// PackageName is the package the components belong to.
	PackageName string

	// Components are in declaration order, global first.
	Components []Component

	g *graph.Graph
}

// DeclareComponents builds the component graph for packageName.
//
// global gets every core requirement as an external edge and requires no
// other component; each feature component requires global and nothing else.
// The graph is validated before it is returned.
func DeclareComponents(packageName string, reqs []Requirement) (*ComponentGraph, error) {
	external := make([]label.Reference, 0, len(reqs))
	for _, r := range CoreRequirements(reqs) {
		external = append(external, r.Ref)
	}

	components := []Component{{
		ID:          ComponentGlobal,
		TargetName:  TargetName(packageName, ComponentGlobal),
		IncludeDirs: []string{path.Join("include", packageName)},
		Requires:    []ComponentID{},
		External:    external,
	}}
	for _, id := range FeatureComponents {
		components = append(components, Component{
			ID:          id,
			TargetName:  TargetName(packageName, id),
			IncludeDirs: []string{path.Join("include", packageName, string(id))},
			Requires:    []ComponentID{ComponentGlobal},
		})
	}

	return NewComponentGraph(packageName, components)
}

// NewComponentGraph validates hand-assembled components and wraps them in a
// ComponentGraph. Violations are reported, never repaired.
func NewComponentGraph(packageName string, components []Component) (*ComponentGraph, error) {
	cg := &ComponentGraph{
		PackageName: packageName,
		Components:  components,
		g:           buildGraph(components),
	}
	if err := cg.Validate(); err != nil {
		return nil, err
	}
	return cg, nil
}

func buildGraph(components []Component) *graph.Graph {
	nodes := make([]graph.SimpleNode, 0, len(components))
	for _, c := range components {
		deps := make([]graph.NodeID, len(c.Requires))
		for i, r := range c.Requires {
			deps[i] = graph.NodeID(r)
		}
		ext := make([]string, len(c.External))
		for i, r := range c.External {
			ext[i] = r.String()
		}
		nodes = append(nodes, graph.SimpleNode{ID: graph.NodeID(c.ID), Dependencies: deps, External: ext})
	}
	return graph.Build(nodes)
}

// Validate checks the component graph invariants:
//   - component IDs are unique and global is declared;
//   - every requires edge names a declared component;
//   - the graph is acyclic;
//   - every component other than global reaches global;
//   - only global carries external requirements.
func (cg *ComponentGraph) Validate() error {
	var violations []string

	seen := make(map[ComponentID]bool, len(cg.Components))
	for _, c := range cg.Components {
		if seen[c.ID] {
			violations = append(violations, fmt.Sprintf("component %q declared twice", c.ID))
		}
		seen[c.ID] = true
	}
	if !seen[ComponentGlobal] {
		violations = append(violations, fmt.Sprintf("component %q is not declared", ComponentGlobal))
	}

	for _, e := range cg.g.DanglingEdges() {
		violations = append(violations, fmt.Sprintf("component %q requires undeclared component %q", e.From, e.To))
	}

	for _, cycle := range cg.g.FindCycles() {
		violations = append(violations, "cycle "+append(cycle, cycle[0]).String())
	}

	for _, c := range cg.Components {
		if c.ID == ComponentGlobal {
			continue
		}
		if seen[ComponentGlobal] && !cg.g.Reaches(graph.NodeID(c.ID), graph.NodeID(ComponentGlobal)) {
			violations = append(violations, fmt.Sprintf("component %q does not require %q", c.ID, ComponentGlobal))
		}
		if len(c.External) > 0 {
			violations = append(violations, fmt.Sprintf("component %q carries external requirements", c.ID))
		}
	}

	if len(violations) > 0 {
		return &InvalidComponentGraphError{Violations: violations}
	}
	return nil
}

// Get returns the component with the given ID.
func (cg *ComponentGraph) Get(id ComponentID) (Component, bool) {
	i := slices.IndexFunc(cg.Components, func(c Component) bool { return c.ID == id })
	if i < 0 {
		return Component{}, false
	}
	return cg.Components[i], true
}

// IDs returns the component IDs in declaration order.
func (cg *ComponentGraph) IDs() []ComponentID {
	ids := make([]ComponentID, len(cg.Components))
	for i, c := range cg.Components {
		ids[i] = c.ID
	}
	return ids
}

// Closure returns id and every component it transitively requires, which is
// what a consumer linking id pulls in.
func (cg *ComponentGraph) Closure(id ComponentID) []ComponentID {
	if !cg.g.Contains(graph.NodeID(id)) {
		return nil
	}
	out := []ComponentID{id}
	for _, dep := range cg.g.TransitiveDeps(graph.NodeID(id)) {
		out = append(out, ComponentID(dep))
	}
	return out
}

// DirectRequires returns the components id lists in its requires edges.
func (cg *ComponentGraph) DirectRequires(id ComponentID) []ComponentID {
	return componentIDs(cg.g.DirectDeps(graph.NodeID(id)))
}

// DirectDependents returns the components that list id in their requires.
func (cg *ComponentGraph) DirectDependents(id ComponentID) []ComponentID {
	return componentIDs(cg.g.DirectDependents(graph.NodeID(id)))
}

// Dependents returns every component that transitively requires id, closest
// first. These are the components a change to id reaches.
func (cg *ComponentGraph) Dependents(id ComponentID) []ComponentID {
	return componentIDs(cg.g.TransitiveDependents(graph.NodeID(id)))
}

// Bases returns the components that require no other component. In a valid
// graph that is global alone.
func (cg *ComponentGraph) Bases() []ComponentID {
	return componentIDs(cg.g.Leaves())
}

// InstallOrder returns the components ordered so each one follows everything
// it requires. Ties keep declaration order. A graph that passed Validate is
// acyclic, so the order is always complete; for a cyclic graph the
// declaration order is returned.
func (cg *ComponentGraph) InstallOrder() []ComponentID {
	order, ok := cg.g.TopologicalOrder()
	if !ok {
		return cg.IDs()
	}
	return componentIDs(order)
}

func componentIDs(ids []graph.NodeID) []ComponentID {
	if ids == nil {
		return nil
	}
	out := make([]ComponentID, len(ids))
	for i, id := range ids {
		out[i] = ComponentID(id)
	}
	return out
}

// Graph exposes the underlying graph for queries and rendering.
func (cg *ComponentGraph) Graph() *graph.Graph {
	return cg.g
}

// TargetName returns the consumer-facing target of a component:
// <package>::<package> for global, <package>::<component> otherwise.
func TargetName(packageName string, id ComponentID) string {
	if id == ComponentGlobal {
		return packageName + "::" + packageName
	}
	return packageName + "::" + string(id)
}
