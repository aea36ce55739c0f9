package conanrecipe

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/albertocavalcante/go-conanrecipe/label"
)

func TestPackageIdentity_String(t *testing.T) {
	id := PackageIdentity{Name: "hypertrie", Version: "0.9.4", Description: "ignored"}
	if got := id.String(); got != "hypertrie/0.9.4" {
		t.Errorf("String() = %q", got)
	}
}

func TestPackageIdentity_JSON(t *testing.T) {
	data, err := json.Marshal(PackageIdentity{Name: "hypertrie", Version: "0.5"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "description") {
		t.Errorf("empty description should be omitted: %s", data)
	}
}

func TestRequirement_StringFlags(t *testing.T) {
	tests := []struct {
		name string
		req  Requirement
		want string
	}{
		{
			name: "plain",
			req:  Requirement{Ref: label.MustReference("fmt/8.1.1"), PropagatesLibs: true, Scope: ScopeCore},
			want: "fmt/8.1.1",
		},
		{
			name: "transitive headers",
			req:  Requirement{Ref: label.MustReference("dice-hash/0.4.0"), TransitiveHeaders: true, PropagatesLibs: true, Scope: ScopeCore},
			want: "dice-hash/0.4.0 [transitive_headers]",
		},
		{
			name: "user and channel",
			req:  Requirement{Ref: label.MustReference("fmt/6.0.0@bincrafters/stable"), PropagatesLibs: true, Scope: ScopeTest},
			want: "fmt/6.0.0@bincrafters/stable [test]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequirement_JSON(t *testing.T) {
	req := Requirement{Ref: label.MustReference("boost/1.81.0"), TransitiveHeaders: true, ForceOverride: true, Scope: ScopeCore}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"ref":"boost/1.81.0","transitive_headers":true,"libs":false,"force":true,"scope":"core"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestFeatureComponents(t *testing.T) {
	if len(FeatureComponents) != 2 || FeatureComponents[0] != ComponentEinsum || FeatureComponents[1] != ComponentQuery {
		t.Errorf("FeatureComponents = %v", FeatureComponents)
	}
}
