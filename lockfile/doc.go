// Package lockfile reads, writes and merges Conan lockfiles (conan.lock).
//
// A lockfile pins the exact references a recipe resolved to, so a later
// build of the same package reproduces the same dependency graph. This
// package implements the 0.5 schema used by Conan 2.
//
// # Lockfile Structure
//
//   - version: schema version, always "0.5" for files written here
//   - requires: host requirements, newest first
//   - build_requires: tool requirements
//   - python_requires: python_requires references
//   - config_requires: configuration packages
//
// Entries are full references and may carry a recipe revision and
// timestamp: "boost/1.81.0#a1b2c3%1700000000.0".
//
// # Usage
//
// Lock the requirements of an evaluation:
//
//	res, err := conanrecipe.EvaluateFile("CMakeLists.txt")
//	lf := lockfile.FromRequirements(res.Requirements)
//	if err := lf.WriteFile("conan.lock"); err != nil {
//	    log.Fatal(err)
//	}
//
// Compare against a committed lockfile:
//
//	old, err := lockfile.ReadFile("conan.lock")
//	diff := old.Diff(lf)
//	fmt.Println(diff.TotalChanges())
package lockfile
