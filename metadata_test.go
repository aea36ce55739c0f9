package conanrecipe

import (
	"slices"
	"testing"
)

func TestRecipe(t *testing.T) {
	r := Recipe()
	if r.License != "AGPL-3.0" {
		t.Errorf("License = %q", r.License)
	}
	if r.PackageType != "header-library" || !r.NoCopySource {
		t.Errorf("recipe is not a header-only package: %+v", r)
	}
	if !slices.Equal(r.Settings, []string{"os", "compiler", "build_type", "arch"}) {
		t.Errorf("Settings = %v", r.Settings)
	}
}

func TestPackageID(t *testing.T) {
	id := PackageIdentity{Name: "hypertrie", Version: "0.9.4"}
	core := mustRequirements(t, "False")
	all := mustRequirements(t, "True")

	base := PackageID(id, core)
	if len(base) != 40 {
		t.Fatalf("PackageID = %q, want 40 hex chars", base)
	}

	t.Run("test requirements do not contribute", func(t *testing.T) {
		if got := PackageID(id, all); got != base {
			t.Errorf("PackageID with test deps = %s, want %s", got, base)
		}
	})

	t.Run("order does not contribute", func(t *testing.T) {
		reversed := slices.Clone(core)
		slices.Reverse(reversed)
		if got := PackageID(id, reversed); got != base {
			t.Errorf("PackageID reversed = %s, want %s", got, base)
		}
	})

	t.Run("description does not contribute", func(t *testing.T) {
		described := id
		described.Description = "tensor lib"
		if got := PackageID(described, core); got != base {
			t.Errorf("PackageID with description = %s, want %s", got, base)
		}
	})

	t.Run("version contributes", func(t *testing.T) {
		bumped := id
		bumped.Version = "0.9.5"
		if PackageID(bumped, core) == base {
			t.Error("PackageID unchanged after version bump")
		}
	})

	t.Run("requirements contribute", func(t *testing.T) {
		if PackageID(id, core[:4]) == base {
			t.Error("PackageID unchanged after dropping a requirement")
		}
	})
}
