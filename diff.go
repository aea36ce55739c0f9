package conanrecipe

import (
	"sort"

	"github.com/albertocavalcante/go-conanrecipe/label"
)

// RequirementChange is an added or removed requirement in a diff.
type RequirementChange struct {
	// Name is the package name.
	Name string `json:"name"`

	// Version is the pinned version.
	Version string `json:"version"`
}

// RequirementUpgrade is a version change of a requirement present on both sides.
type RequirementUpgrade struct {
	// Name is the package name.
	Name string `json:"name"`

	// OldVersion is the version on the old side.
	OldVersion string `json:"old_version"`

	// NewVersion is the version on the new side.
	NewVersion string `json:"new_version"`
}

// RequirementsDiff describes how two sets of requirement pins differ.
//
// Typical uses are reviewing a pin bump before releasing the recipe and
// checking a lockfile against the current recipe:
//
//	lf, _ := lockfile.ReadFile("conan.lock")
//	locked, _ := lf.References()
//	diff := conanrecipe.DiffReferences(locked, current)
//	if !diff.IsEmpty() {
//	    fmt.Printf("%d added, %d removed, %d upgraded, %d downgraded\n",
//	        len(diff.Added), len(diff.Removed), len(diff.Upgraded), len(diff.Downgraded))
//	}
type RequirementsDiff struct {
	// Added contains packages present in new but not in old.
	Added []RequirementChange `json:"added,omitempty"`

	// Removed contains packages present in old but not in new.
	Removed []RequirementChange `json:"removed,omitempty"`

	// Upgraded contains packages where the new version is higher.
	Upgraded []RequirementUpgrade `json:"upgraded,omitempty"`

	// Downgraded contains packages where the new version is lower.
	Downgraded []RequirementUpgrade `json:"downgraded,omitempty"`
}

// IsEmpty returns true if both sides pin the same versions.
func (d *RequirementsDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Upgraded) == 0 &&
		len(d.Downgraded) == 0
}

// TotalChanges returns the total number of changes (added + removed + upgraded + downgraded).
func (d *RequirementsDiff) TotalChanges() int {
	return len(d.Added) + len(d.Removed) + len(d.Upgraded) + len(d.Downgraded)
}

// DiffRequirements computes the difference between two requirement lists.
func DiffRequirements(old, new []Requirement) *RequirementsDiff {
	return DiffReferences(requirementRefs(old), requirementRefs(new))
}

// DiffReferences computes the difference between two reference lists.
// Versions are compared as semver when both parse, and as dotted numbers
// otherwise. Results are sorted by package name.
func DiffReferences(old, new []label.Reference) *RequirementsDiff {
	diff := &RequirementsDiff{}

	oldRefs := make(map[string]label.Version, len(old))
	for _, r := range old {
		oldRefs[r.Name().String()] = r.Version()
	}
	newRefs := make(map[string]label.Version, len(new))
	for _, r := range new {
		newRefs[r.Name().String()] = r.Version()
	}

	for name, newVersion := range newRefs {
		oldVersion, existedBefore := oldRefs[name]
		if !existedBefore {
			diff.Added = append(diff.Added, RequirementChange{Name: name, Version: newVersion.String()})
			continue
		}
		switch cmp := newVersion.Compare(oldVersion); {
		case cmp > 0:
			diff.Upgraded = append(diff.Upgraded, RequirementUpgrade{
				Name:       name,
				OldVersion: oldVersion.String(),
				NewVersion: newVersion.String(),
			})
		case cmp < 0:
			diff.Downgraded = append(diff.Downgraded, RequirementUpgrade{
				Name:       name,
				OldVersion: oldVersion.String(),
				NewVersion: newVersion.String(),
			})
		}
	}

	for name, oldVersion := range oldRefs {
		if _, existsNow := newRefs[name]; !existsNow {
			diff.Removed = append(diff.Removed, RequirementChange{Name: name, Version: oldVersion.String()})
		}
	}

	sortChanges(diff.Added)
	sortChanges(diff.Removed)
	sortUpgrades(diff.Upgraded)
	sortUpgrades(diff.Downgraded)

	return diff
}

func requirementRefs(reqs []Requirement) []label.Reference {
	refs := make([]label.Reference, len(reqs))
	for i, r := range reqs {
		refs[i] = r.Ref
	}
	return refs
}

func sortChanges(changes []RequirementChange) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Name < changes[j].Name
	})
}

func sortUpgrades(upgrades []RequirementUpgrade) {
	sort.Slice(upgrades, func(i, j int) bool {
		return upgrades[i].Name < upgrades[j].Name
	})
}
