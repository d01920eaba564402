package ast

// Children returns the direct child nodes of n in source order
func Children(n Node) []Node {
	var result []Node
	add := func(nodes ...Node) {
		for _, child := range nodes {
			if child != nil {
				result = append(result, child)
			}
		}
	}
	switch v := n.(type) {
	case *Program:
		add(v.Body...)
	case *CallExpression:
		add(v.Callee)
		add(v.Arguments...)
	case *MemberExpression:
		add(v.Object, v.Property)
	case *ObjectExpression:
		add(v.Properties...)
	case *Property:
		add(v.Key)
		if !v.Shorthand {
			add(v.Value)
		}
	case *SpreadElement:
		add(v.Argument)
	case *Function:
		if v.Name != nil {
			add(v.Name)
		}
		add(v.Params...)
		add(v.Body)
	case *Pattern:
		add(v.Target, v.Default)
		add(v.Elements...)
	case *IfStatement:
		add(v.Test, v.Consequent, v.Alternate)
	case *ConditionalExpression:
		add(v.Test, v.Consequent, v.Alternate)
	case *Generic:
		add(v.Nodes...)
	case *Identifier, *Literal:
	}
	return result
}

// Visitor is called for each node with its ancestors, ordered from the root to the parent.
// The ancestors slice is only valid for the duration of the call.
// Returning false skips the node children.
type Visitor func(node Node, ancestors []Node) bool

// Inspect traverses the tree rooted at root depth-first, in pre-order, visiting every node once
func Inspect(root Node, visit Visitor) {
	if root == nil {
		return
	}
	var ancestors []Node
	var walk func(n Node)
	walk = func(n Node) {
		if !visit(n, ancestors[:len(ancestors):len(ancestors)]) {
			return
		}
		ancestors = append(ancestors, n)
		for _, child := range Children(n) {
			walk(child)
		}
		ancestors = ancestors[:len(ancestors)-1]
	}
	walk(root)
}

// Ancestors returns the ancestor chain of target within root, or false if target is not in the tree
func Ancestors(root, target Node) ([]Node, bool) {
	var found []Node
	ok := false
	Inspect(root, func(n Node, ancestors []Node) bool {
		if ok {
			return false
		}
		if n == target {
			found = append([]Node{}, ancestors...)
			ok = true
			return false
		}
		return true
	})
	return found, ok
}
