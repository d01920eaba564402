package executor

import (
	"github.com/viant/blazelint/ast"
)

// Classify returns the executors under which node can run.
// ancestors are ordered from the root to the node parent.
// Files in EnvNone are never classified by the rule; Both is returned for them.
func Classify(env Environment, ancestors []ast.Node, node ast.Node, guards Guards) Set {
	switch env {
	case EnvClient:
		return Client
	case EnvServer:
		return Server
	case EnvUniversal:
	default:
		return Both
	}
	result := Both
	child := node
	for i := len(ancestors) - 1; i >= 0; i-- {
		parent := ancestors[i]
		if narrowed := guardedSet(parent, child, guards); narrowed != 0 {
			// contradictory outer guards mark dead code; the nearest guard wins
			if result&narrowed != 0 {
				result &= narrowed
			}
		}
		child = parent
	}
	return result
}

// guardedSet returns the executors a conditional restricts child to, or 0 if it does not restrict it
func guardedSet(parent, child ast.Node, guards Guards) Set {
	var test, consequent ast.Node
	switch c := parent.(type) {
	case *ast.IfStatement:
		test, consequent = c.Test, c.Consequent
	case *ast.ConditionalExpression:
		test, consequent = c.Test, c.Consequent
	default:
		return 0
	}
	if consequent == nil || child != consequent {
		return 0
	}
	switch {
	case guards.IsClient != nil && guards.IsClient(test):
		return Client
	case guards.IsServer != nil && guards.IsServer(test):
		return Server
	}
	return 0
}
