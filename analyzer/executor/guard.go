package executor

import (
	"strings"

	"github.com/viant/blazelint/ast"
)

// Predicate tests a conditional test expression
type Predicate func(test ast.Node) bool

// Guards recognizes conditional tests restricting execution to one executor
type Guards struct {
	IsClient Predicate
	IsServer Predicate
}

// MeteorGuards returns guards recognizing Meteor.isClient and Meteor.isServer
func MeteorGuards() Guards {
	return Guards{
		IsClient: MemberGuard("Meteor.isClient"),
		IsServer: MemberGuard("Meteor.isServer"),
	}
}

// MemberGuard returns a predicate matching any of the dotted member paths, e.g. "Meteor.isClient".
// Bracket access with a string literal, e.g. Meteor['isClient'], matches as well.
func MemberGuard(paths ...string) Predicate {
	var candidates [][]string
	for _, path := range paths {
		if path = strings.TrimSpace(path); path != "" {
			candidates = append(candidates, strings.Split(path, "."))
		}
	}
	return func(test ast.Node) bool {
		actual, ok := memberPath(test)
		if !ok {
			return false
		}
		for _, candidate := range candidates {
			if equalPath(candidate, actual) {
				return true
			}
		}
		return false
	}
}

// AnyOf returns a predicate matching when any of the predicates match
func AnyOf(predicates ...Predicate) Predicate {
	return func(test ast.Node) bool {
		for _, predicate := range predicates {
			if predicate != nil && predicate(test) {
				return true
			}
		}
		return false
	}
}

func memberPath(n ast.Node) ([]string, bool) {
	switch v := n.(type) {
	case *ast.Identifier:
		return []string{v.Name}, true
	case *ast.MemberExpression:
		object, ok := memberPath(v.Object)
		if !ok {
			return nil, false
		}
		var name string
		if v.Computed {
			literal, ok := v.Property.(*ast.Literal)
			if !ok || !literal.String {
				return nil, false
			}
			name = literal.Value
		} else if id, ok := v.Property.(*ast.Identifier); ok {
			name = id.Name
		} else {
			return nil, false
		}
		return append(object, name), true
	}
	return nil, false
}

func equalPath(expect, actual []string) bool {
	if len(expect) != len(actual) {
		return false
	}
	for i := range expect {
		if expect[i] != actual[i] {
			return false
		}
	}
	return true
}
