// Package conanrecipe is the recipe layer for packaging a header-only C++
// library with Conan.
//
// It answers the questions a packaging pipeline asks a recipe, in order:
//
//   - Identity: name, version and description, taken from the single
//     project(...) statement of the project's CMakeLists.txt, with an optional
//     version override.
//   - Requirements: the pinned external packages, with transitive-header,
//     library-propagation and force-override flags. Test and benchmark
//     packages are added only when the with_test_deps option is enabled.
//   - Components: the consumable slices of the package. "global" carries every
//     core requirement; the feature components "einsum" and "query" each
//     require "global".
//
// # Quick Start
//
//	res, err := conanrecipe.EvaluateFile("CMakeLists.txt")
//	fmt.Println(res.Identity)          // hypertrie/0.9.4
//	for _, r := range res.Requirements {
//	    fmt.Println(r)                  // dice-hash/0.4.0 [transitive_headers]
//	}
//
// With an override and test dependencies:
//
//	res, err := conanrecipe.EvaluateFile("CMakeLists.txt",
//	    conanrecipe.WithOverrideVersion(os.Getenv("CONAN_RECIPE_VERSION")),
//	    conanrecipe.WithTestDeps(true),
//	)
//
// # Errors
//
// Every failure aborts the evaluation. Use errors.Is with ErrConfigNotFound,
// ErrMetadataParse, ErrUnresolvedOption or ErrInvalidComponentGraph, or Kind
// for a printable name.
//
// # Export
//
// The packageinfo sub-package renders a Result for build drivers (JSON, YAML,
// TOML or a Bazel BUILD file) and writes it at most once per evaluation.
package conanrecipe

// Evaluate runs a full evaluation pass over src.
func Evaluate(src ConfigSource, opts ...Option) (*Result, error) {
	eval, err := NewEvaluation(src, opts...)
	if err != nil {
		return nil, err
	}
	return eval.Run()
}

// EvaluateFile runs a full evaluation pass over the configuration file at path.
func EvaluateFile(path string, opts ...Option) (*Result, error) {
	return Evaluate(FileSource(path), opts...)
}

// EvaluateContent runs a full evaluation pass over in-memory configuration text.
func EvaluateContent(content string, opts ...Option) (*Result, error) {
	return Evaluate(BytesSource{Path: "CMakeLists.txt", Data: []byte(content)}, opts...)
}
