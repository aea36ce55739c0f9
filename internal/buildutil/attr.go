// Package buildutil builds and inspects buildtools AST nodes for generated
// BUILD files.
package buildutil

import (
	"github.com/bazelbuild/buildtools/build"
)

// Call returns a rule call such as cc_library(name = "x", ...). Attributes
// keep the order they are given in.
func Call(rule string, attrs ...*build.AssignExpr) *build.CallExpr {
	list := make([]build.Expr, len(attrs))
	for i, a := range attrs {
		list[i] = a
	}
	return &build.CallExpr{
		X:              &build.Ident{Name: rule},
		List:           list,
		ForceMultiLine: true,
	}
}

// Attr returns name = value.
func Attr(name string, value build.Expr) *build.AssignExpr {
	return &build.AssignExpr{
		LHS: &build.Ident{Name: name},
		Op:  "=",
		RHS: value,
	}
}

// StringAttr returns name = "value".
func StringAttr(name, value string) *build.AssignExpr {
	return Attr(name, &build.StringExpr{Value: value})
}

// ListAttr returns name = ["a", "b", ...].
func ListAttr(name string, values []string) *build.AssignExpr {
	return Attr(name, StringList(values))
}

// StringList returns a list literal of strings.
func StringList(values []string) *build.ListExpr {
	list := make([]build.Expr, len(values))
	for i, v := range values {
		list[i] = &build.StringExpr{Value: v}
	}
	return &build.ListExpr{List: list}
}

// Comment returns a standalone comment block. Each line gets a "# " prefix.
func Comment(lines ...string) *build.CommentBlock {
	comments := make([]build.Comment, len(lines))
	for i, l := range lines {
		comments[i] = build.Comment{Token: "# " + l}
	}
	return &build.CommentBlock{Comments: build.Comments{Before: comments}}
}

// String extracts a string attribute from a function call by name.
// Returns empty string if the attribute is not found or not a string.
func String(call *build.CallExpr, name string) string {
	if str, ok := find(call, name).(*build.StringExpr); ok {
		return str.Value
	}
	return ""
}

// Strings extracts a list of strings attribute from a function call by name.
// Returns nil if the attribute is not found or not a list.
// Non-string elements in the list are silently skipped.
func Strings(call *build.CallExpr, name string) []string {
	list, ok := find(call, name).(*build.ListExpr)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		if str, ok := elem.(*build.StringExpr); ok {
			result = append(result, str.Value)
		}
	}
	return result
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like foo.bar()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

// Calls returns the top-level calls of f to rule, in file order.
func Calls(f *build.File, rule string) []*build.CallExpr {
	var out []*build.CallExpr
	for _, stmt := range f.Stmt {
		if call, ok := stmt.(*build.CallExpr); ok && FuncName(call) == rule {
			out = append(out, call)
		}
	}
	return out
}

func find(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		if lhs, ok := assign.LHS.(*build.Ident); ok && lhs.Name == name {
			return assign.RHS
		}
	}
	return nil
}
