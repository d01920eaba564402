package javascript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/blazelint/ast"
)

// converter maps tree-sitter javascript nodes onto ast nodes
type converter struct {
	src []byte
}

func (c *converter) span(n *sitter.Node) ast.Span {
	start, end := n.StartPoint(), n.EndPoint()
	return ast.Span{
		Start: ast.Position{Offset: int(n.StartByte()), Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		End:   ast.Position{Offset: int(n.EndByte()), Line: int(end.Row) + 1, Column: int(end.Column) + 1},
	}
}

// children converts named children, dropping comments
func (c *converter) children(n *sitter.Node) []ast.Node {
	var result []ast.Node
	for j := 0; j < int(n.NamedChildCount()); j++ {
		if child := c.convert(n.NamedChild(j)); child != nil {
			result = append(result, child)
		}
	}
	return result
}

func (c *converter) field(n *sitter.Node, name string) ast.Node {
	return c.convert(n.ChildByFieldName(name))
}

func (c *converter) convert(n *sitter.Node) ast.Node {
	if n == nil || n.IsNull() {
		return nil
	}
	var result ast.Node
	switch n.Type() {
	case "comment", "hash_bang_line":
		return nil
	case "parenthesized_expression", "else_clause":
		for j := 0; j < int(n.NamedChildCount()); j++ {
			if inner := c.convert(n.NamedChild(j)); inner != nil {
				return inner
			}
		}
		return nil
	case "call_expression":
		result = &ast.CallExpression{
			Callee:    c.field(n, "function"),
			Arguments: c.arguments(n.ChildByFieldName("arguments")),
		}
	case "member_expression":
		result = &ast.MemberExpression{
			Object:   c.field(n, "object"),
			Property: c.field(n, "property"),
		}
	case "subscript_expression":
		result = &ast.MemberExpression{
			Object:   c.field(n, "object"),
			Property: c.field(n, "index"),
			Computed: true,
		}
	case "object":
		result = &ast.ObjectExpression{Properties: c.children(n)}
	case "pair":
		result = &ast.Property{
			Key:   c.field(n, "key"),
			Value: c.field(n, "value"),
		}
	case "shorthand_property_identifier":
		id := c.identifier(n)
		result = &ast.Property{Key: id, Value: id, Shorthand: true}
	case "method_definition":
		fn := c.function(n)
		fn.Name = nil
		result = &ast.Property{Key: c.field(n, "name"), Value: fn, Method: true}
	case "spread_element":
		result = &ast.SpreadElement{Argument: c.firstChild(n)}
	case "function", "function_expression", "function_declaration",
		"generator_function", "generator_function_declaration", "arrow_function":
		result = c.function(n)
	case "identifier", "property_identifier", "shorthand_property_identifier_pattern",
		"private_property_identifier", "statement_identifier":
		result = c.identifier(n)
	case "string":
		raw := n.Content(c.src)
		result = &ast.Literal{Raw: raw, Value: unquote(raw), String: true}
	case "null":
		result = &ast.Literal{Raw: "null", Value: "null", Null: true}
	case "number", "true", "false", "undefined", "regex":
		raw := n.Content(c.src)
		result = &ast.Literal{Raw: raw, Value: raw}
	case "object_pattern":
		result = &ast.Pattern{Form: ast.ObjectPattern, Elements: c.children(n)}
	case "array_pattern":
		result = &ast.Pattern{Form: ast.ArrayPattern, Elements: c.children(n)}
	case "rest_pattern":
		result = &ast.Pattern{Form: ast.RestElement, Target: c.firstChild(n)}
	case "assignment_pattern", "object_assignment_pattern":
		result = &ast.Pattern{
			Form:    ast.AssignmentPattern,
			Target:  c.field(n, "left"),
			Default: c.field(n, "right"),
		}
	case "if_statement":
		result = &ast.IfStatement{
			Test:       c.field(n, "condition"),
			Consequent: c.field(n, "consequence"),
			Alternate:  c.field(n, "alternative"),
		}
	case "ternary_expression":
		result = &ast.ConditionalExpression{
			Test:       c.field(n, "condition"),
			Consequent: c.field(n, "consequence"),
			Alternate:  c.field(n, "alternative"),
		}
	default:
		result = &ast.Generic{Kind: n.Type(), Nodes: c.children(n)}
	}
	setSpan(result, c.span(n))
	return result
}

func (c *converter) identifier(n *sitter.Node) *ast.Identifier {
	id := &ast.Identifier{Name: n.Content(c.src)}
	id.Loc = c.span(n)
	return id
}

func (c *converter) firstChild(n *sitter.Node) ast.Node {
	children := c.children(n)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func (c *converter) arguments(n *sitter.Node) []ast.Node {
	if n == nil || n.Type() != "arguments" {
		// tagged template
		if arg := c.convert(n); arg != nil {
			return []ast.Node{arg}
		}
		return nil
	}
	return c.children(n)
}

func (c *converter) function(n *sitter.Node) *ast.Function {
	fn := &ast.Function{
		Arrow:     n.Type() == "arrow_function",
		Generator: n.Type() == "generator_function" || n.Type() == "generator_function_declaration",
		Body:      c.field(n, "body"),
	}
	for j := 0; j < int(n.ChildCount()); j++ {
		child := n.Child(j)
		if child.IsNamed() {
			continue
		}
		switch child.Type() {
		case "async":
			fn.Async = true
		case "*":
			fn.Generator = true
		}
	}
	if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
		fn.Name = c.identifier(name)
	}
	if param := n.ChildByFieldName("parameter"); param != nil {
		if p := c.convert(param); p != nil {
			fn.Params = []ast.Node{p}
		}
	} else if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Params = c.children(params)
	}
	fn.Loc = c.span(n)
	return fn
}

func setSpan(n ast.Node, span ast.Span) {
	switch v := n.(type) {
	case *ast.CallExpression:
		v.Loc = span
	case *ast.MemberExpression:
		v.Loc = span
	case *ast.ObjectExpression:
		v.Loc = span
	case *ast.Property:
		v.Loc = span
	case *ast.SpreadElement:
		v.Loc = span
	case *ast.Function:
		v.Loc = span
	case *ast.Identifier:
		v.Loc = span
	case *ast.Literal:
		v.Loc = span
	case *ast.Pattern:
		v.Loc = span
	case *ast.IfStatement:
		v.Loc = span
	case *ast.ConditionalExpression:
		v.Loc = span
	case *ast.Generic:
		v.Loc = span
	}
}

// unquote strips string delimiters; escape sequences are kept as written
func unquote(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}
	return raw
}
