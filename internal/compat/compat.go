// Package compat inspects parsed trees for syntax that requires a
// newer Python release and reports the minimum interpreter version a
// source file can run on.
package compat

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/source"
)

// Release versions that gate syntax features. Baseline is the version
// assumed for source using none of the gated constructs.
var (
	Baseline = semver.MustParse("3.0.0")
	Py38     = semver.MustParse("3.8.0")
	Py39     = semver.MustParse("3.9.0")
	Py310    = semver.MustParse("3.10.0")
	Py311    = semver.MustParse("3.11.0")
	Py312    = semver.MustParse("3.12.0")
	Py313    = semver.MustParse("3.13.0")
)

// Requirement records one occurrence of a version-gated construct.
type Requirement struct {
	Range   source.Range
	Feature string
	Version *semver.Version
}

func (r Requirement) String() string {
	return fmt.Sprintf("%s requires Python %d.%d (at %s)",
		r.Feature, r.Version.Major(), r.Version.Minor(), r.Range)
}

// Scan walks the tree and collects every version-gated construct in
// source order. Constructs covered by Baseline are not reported.
func Scan(node ast.Node) []Requirement {
	if node == nil {
		return nil
	}
	var reqs []Requirement
	require := func(n ast.Node, feature string, v *semver.Version) {
		reqs = append(reqs, Requirement{Range: n.NodeRange(), Feature: feature, Version: v})
	}
	ast.Inspect(node, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Named:
			require(n, "assignment expression", Py38)
		case *ast.Parameters:
			if len(n.PosOnly) > 0 {
				require(n, "positional-only parameters", Py38)
			}
		case *ast.Decorator:
			if !dottedNameCall(n.Expr) {
				require(n, "arbitrary decorator expression", Py39)
			}
		case *ast.Match:
			require(n, "match statement", Py310)
		case *ast.Try:
			if n.IsStar {
				require(n, "except* clause", Py311)
			}
		case *ast.TypeAlias:
			require(n, "type alias statement", Py312)
		case *ast.TypeParams:
			require(n, "type parameter list", Py312)
		case *ast.TypeVar:
			if n.Default != nil {
				require(n, "type parameter default", Py313)
			}
		case *ast.TypeVarTuple:
			if n.Default != nil {
				require(n, "type parameter default", Py313)
			}
		case *ast.ParamSpec:
			if n.Default != nil {
				require(n, "type parameter default", Py313)
			}
		}
		return true
	})
	return reqs
}

// dottedNameCall reports whether expr fits the pre-3.9 decorator
// grammar: a dotted name, optionally called.
func dottedNameCall(expr ast.Expr) bool {
	if call, ok := expr.(*ast.Call); ok {
		expr = call.Func
	}
	for {
		switch e := expr.(type) {
		case *ast.Name:
			return true
		case *ast.Attribute:
			expr = e.Value
		default:
			return false
		}
	}
}

// MinVersion returns the lowest Python release that supports every
// construct in the tree.
func MinVersion(node ast.Node) *semver.Version {
	min := Baseline
	for _, req := range Scan(node) {
		if req.Version.GreaterThan(min) {
			min = req.Version
		}
	}
	return min
}

// Check returns the requirements the target release cannot satisfy.
// A nil target disables the gate.
func Check(node ast.Node, target *semver.Version) []Requirement {
	if target == nil {
		return nil
	}
	var failed []Requirement
	for _, req := range Scan(node) {
		if req.Version.GreaterThan(target) {
			failed = append(failed, req)
		}
	}
	return failed
}

// ParseVersion accepts a release spelled as "3.10" or "3.10.2" and
// returns the semantic version it names.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid Python version %q: %w", s, err)
	}
	return v, nil
}
