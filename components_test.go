package conanrecipe

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/albertocavalcante/go-conanrecipe/label"
)

func mustRequirements(t *testing.T, value string) []Requirement {
	t.Helper()
	reqs, err := DeclareRequirements(BuildOption{Key: OptionWithTestDeps, Value: value})
	if err != nil {
		t.Fatalf("DeclareRequirements: %v", err)
	}
	return reqs
}

func TestDeclareComponents(t *testing.T) {
	cg, err := DeclareComponents("hypertrie", mustRequirements(t, "False"))
	if err != nil {
		t.Fatalf("DeclareComponents: %v", err)
	}

	if got := cg.IDs(); !slices.Equal(got, []ComponentID{"global", "einsum", "query"}) {
		t.Fatalf("IDs() = %v", got)
	}

	global, _ := cg.Get(ComponentGlobal)
	if global.TargetName != "hypertrie::hypertrie" {
		t.Errorf("global target = %q", global.TargetName)
	}
	if !slices.Equal(global.IncludeDirs, []string{"include/hypertrie"}) {
		t.Errorf("global include dirs = %v", global.IncludeDirs)
	}
	if len(global.Requires) != 0 {
		t.Errorf("global requires = %v, want none", global.Requires)
	}
	if len(global.External) != 5 {
		t.Errorf("global external = %v, want the 5 core requirements", global.External)
	}

	for _, id := range FeatureComponents {
		c, ok := cg.Get(id)
		if !ok {
			t.Fatalf("component %q missing", id)
		}
		if c.TargetName != "hypertrie::"+string(id) {
			t.Errorf("%s target = %q", id, c.TargetName)
		}
		if !slices.Equal(c.IncludeDirs, []string{"include/hypertrie/" + string(id)}) {
			t.Errorf("%s include dirs = %v", id, c.IncludeDirs)
		}
		if !slices.Equal(c.Requires, []ComponentID{ComponentGlobal}) {
			t.Errorf("%s requires = %v, want [global]", id, c.Requires)
		}
		if len(c.External) != 0 {
			t.Errorf("%s carries external requirements %v", id, c.External)
		}
	}
}

func TestDeclareComponents_TestDepsNeverExported(t *testing.T) {
	cg, err := DeclareComponents("hypertrie", mustRequirements(t, "True"))
	if err != nil {
		t.Fatal(err)
	}
	global, _ := cg.Get(ComponentGlobal)
	for _, ref := range global.External {
		if slices.Contains(wantTestRefs, ref.String()) {
			t.Errorf("test-only requirement %s exported on global", ref)
		}
	}
	if len(global.External) != 5 {
		t.Errorf("global external = %d, want 5", len(global.External))
	}
}

func TestDeclareComponents_GraphInvariant(t *testing.T) {
	for _, value := range []string{"True", "False", ""} {
		cg, err := DeclareComponents("hypertrie", mustRequirements(t, value))
		if err != nil {
			t.Fatalf("with_test_deps=%q: %v", value, err)
		}
		g := cg.Graph()
		if g.HasCycles() {
			t.Errorf("with_test_deps=%q: graph has cycles", value)
		}
		for _, id := range FeatureComponents {
			c, _ := cg.Get(id)
			if !slices.Contains(c.Requires, ComponentGlobal) {
				t.Errorf("with_test_deps=%q: %s does not list global", value, id)
			}
		}
	}
}

func TestComponentGraph_Closure(t *testing.T) {
	cg, err := DeclareComponents("hypertrie", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := cg.Closure(ComponentQuery); !slices.Equal(got, []ComponentID{"query", "global"}) {
		t.Errorf("Closure(query) = %v", got)
	}
	if got := cg.Closure("missing"); got != nil {
		t.Errorf("Closure(missing) = %v, want nil", got)
	}
}

func TestNewComponentGraph_Invalid(t *testing.T) {
	boost := label.MustReference("boost/1.81.0")

	tests := []struct {
		name       string
		components []Component
		wantReason string
	}{
		{
			name: "feature without global",
			components: []Component{
				{ID: ComponentGlobal},
				{ID: ComponentEinsum},
			},
			wantReason: `"einsum" does not require "global"`,
		},
		{
			name: "cycle",
			components: []Component{
				{ID: ComponentGlobal, Requires: []ComponentID{ComponentEinsum}},
				{ID: ComponentEinsum, Requires: []ComponentID{ComponentGlobal}},
			},
			wantReason: "cycle global -> einsum -> global",
		},
		{
			name: "undeclared component",
			components: []Component{
				{ID: ComponentGlobal},
				{ID: ComponentQuery, Requires: []ComponentID{ComponentGlobal, "tensor"}},
			},
			wantReason: `requires undeclared component "tensor"`,
		},
		{
			name: "missing global",
			components: []Component{
				{ID: ComponentEinsum},
			},
			wantReason: `"global" is not declared`,
		},
		{
			name: "duplicate component",
			components: []Component{
				{ID: ComponentGlobal},
				{ID: ComponentGlobal},
			},
			wantReason: "declared twice",
		},
		{
			name: "feature with externals",
			components: []Component{
				{ID: ComponentGlobal},
				{ID: ComponentQuery, Requires: []ComponentID{ComponentGlobal}, External: []label.Reference{boost}},
			},
			wantReason: `"query" carries external requirements`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cg, err := NewComponentGraph("hypertrie", tt.components)
			if err == nil {
				t.Fatalf("expected error, got %+v", cg)
			}
			if !errors.Is(err, ErrInvalidComponentGraph) {
				t.Fatalf("expected ErrInvalidComponentGraph, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantReason) {
				t.Errorf("error %q does not mention %q", err, tt.wantReason)
			}
		})
	}
}

func TestNewComponentGraph_TransitiveReachIsEnough(t *testing.T) {
	_, err := NewComponentGraph("hypertrie", []Component{
		{ID: ComponentGlobal},
		{ID: ComponentEinsum, Requires: []ComponentID{ComponentGlobal}},
		{ID: ComponentQuery, Requires: []ComponentID{ComponentEinsum}},
	})
	if err != nil {
		t.Errorf("query reaches global through einsum, got %v", err)
	}
}

func TestComponentGraph_Queries(t *testing.T) {
	cg, err := DeclareComponents("hypertrie", nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := cg.DirectRequires(ComponentEinsum); !slices.Equal(got, []ComponentID{ComponentGlobal}) {
		t.Errorf("DirectRequires(einsum) = %v", got)
	}
	if got := cg.DirectDependents(ComponentGlobal); !slices.Equal(got, FeatureComponents) {
		t.Errorf("DirectDependents(global) = %v", got)
	}
	if got := cg.Dependents(ComponentGlobal); !slices.Equal(got, FeatureComponents) {
		t.Errorf("Dependents(global) = %v", got)
	}
	if got := cg.Dependents(ComponentQuery); len(got) != 0 {
		t.Errorf("Dependents(query) = %v, want none", got)
	}
	if got := cg.Bases(); !slices.Equal(got, []ComponentID{ComponentGlobal}) {
		t.Errorf("Bases() = %v", got)
	}
	if got := cg.DirectRequires("missing"); got != nil {
		t.Errorf("DirectRequires(missing) = %v, want nil", got)
	}
}

func TestComponentGraph_InstallOrder(t *testing.T) {
	cg, err := NewComponentGraph("hypertrie", []Component{
		{ID: ComponentQuery, Requires: []ComponentID{ComponentEinsum}},
		{ID: ComponentEinsum, Requires: []ComponentID{ComponentGlobal}},
		{ID: ComponentGlobal},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []ComponentID{ComponentGlobal, ComponentEinsum, ComponentQuery}
	if got := cg.InstallOrder(); !slices.Equal(got, want) {
		t.Errorf("InstallOrder() = %v, want %v", got, want)
	}
	if got := cg.IDs(); !slices.Equal(got, []ComponentID{ComponentQuery, ComponentEinsum, ComponentGlobal}) {
		t.Errorf("IDs() = %v, want declaration order", got)
	}
}

func TestTargetName(t *testing.T) {
	if got := TargetName("hypertrie", ComponentGlobal); got != "hypertrie::hypertrie" {
		t.Errorf("global = %q", got)
	}
	if got := TargetName("hypertrie", ComponentEinsum); got != "hypertrie::einsum" {
		t.Errorf("einsum = %q", got)
	}
}
