package ast

// Position represents a location in the source code
type Position struct {
	Offset int // Byte offset, starting at 0
	Line   int // Line number, starting at 1
	Column int // Column number (in bytes), starting at 1
}

// Span represents the source range of a node
type Span struct {
	Start Position
	End   Position
}

// Node is a syntax element of a JavaScript program.
// The set of implementations is closed; use a type switch to match kinds.
type Node interface {
	// Type returns the ESTree node type name
	Type() string
	// Span returns the node source range
	Span() Span
	node()
}

type base struct {
	Loc Span
}

func (b *base) Span() Span { return b.Loc }
func (b *base) node()      {}

// Program is the root of a parsed source file
type Program struct {
	base
	Body     []Node
	HasError bool // parser recovered from syntax errors
}

func (*Program) Type() string { return "Program" }

// CallExpression represents callee(arguments...)
type CallExpression struct {
	base
	Callee    Node
	Arguments []Node
}

func (*CallExpression) Type() string { return "CallExpression" }

// MemberExpression represents object.property or object[property]
type MemberExpression struct {
	base
	Object   Node
	Property Node
	Computed bool
}

func (*MemberExpression) Type() string { return "MemberExpression" }

// ObjectExpression represents an object literal
type ObjectExpression struct {
	base
	Properties []Node // *Property or *SpreadElement
}

func (*ObjectExpression) Type() string { return "ObjectExpression" }

// Property represents a key/value entry of an object literal
type Property struct {
	base
	Key       Node
	Value     Node
	Method    bool // { key() {} }
	Shorthand bool // { key }
}

func (*Property) Type() string { return "Property" }

// SpreadElement represents ...argument
type SpreadElement struct {
	base
	Argument Node
}

func (*SpreadElement) Type() string { return "SpreadElement" }

// Function represents a function expression, declaration, method or arrow function
type Function struct {
	base
	Name      *Identifier
	Params    []Node
	Body      Node
	Arrow     bool
	Generator bool
	Async     bool
}

func (f *Function) Type() string {
	if f.Arrow {
		return "ArrowFunctionExpression"
	}
	return "FunctionExpression"
}

// Identifier represents a name
type Identifier struct {
	base
	Name string
}

func (*Identifier) Type() string { return "Identifier" }

// Literal represents a string, number, boolean, null or undefined literal
type Literal struct {
	base
	Raw    string
	Value  string // unquoted value for strings, raw text otherwise
	String bool
	Null   bool
}

func (*Literal) Type() string { return "Literal" }

// PatternForm identifies a binding pattern form
type PatternForm int

const (
	ObjectPattern PatternForm = iota
	ArrayPattern
	RestElement
	AssignmentPattern
)

var patternTypes = [...]string{"ObjectPattern", "ArrayPattern", "RestElement", "AssignmentPattern"}

// Pattern represents a destructuring, rest or default-value binding
type Pattern struct {
	base
	Form     PatternForm
	Target   Node   // assignment left side or rest argument
	Default  Node   // assignment right side
	Elements []Node // object/array pattern elements
}

func (p *Pattern) Type() string { return patternTypes[p.Form] }

// IfStatement represents if (Test) Consequent else Alternate
type IfStatement struct {
	base
	Test       Node
	Consequent Node
	Alternate  Node
}

func (*IfStatement) Type() string { return "IfStatement" }

// ConditionalExpression represents Test ? Consequent : Alternate
type ConditionalExpression struct {
	base
	Test       Node
	Consequent Node
	Alternate  Node
}

func (*ConditionalExpression) Type() string { return "ConditionalExpression" }

// Generic represents any other syntax element, keeping its children for traversal
type Generic struct {
	base
	Kind  string // parser node type
	Nodes []Node
}

func (g *Generic) Type() string { return g.Kind }

// ParamName returns the simple name bound by a function parameter.
// Destructuring and rest parameters have no simple name.
func ParamName(param Node) (string, bool) {
	switch p := param.(type) {
	case *Identifier:
		return p.Name, true
	case *Pattern:
		if p.Form != AssignmentPattern {
			return "", false
		}
		if id, ok := p.Target.(*Identifier); ok {
			return id.Name, true
		}
	}
	return "", false
}

// PropertyName returns the static name of a property key
func PropertyName(key Node) (string, bool) {
	switch k := key.(type) {
	case *Identifier:
		return k.Name, true
	case *Literal:
		if k.Null {
			return "", false
		}
		return k.Value, true
	}
	return "", false
}
