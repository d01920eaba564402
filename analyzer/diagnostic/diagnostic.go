package diagnostic

import (
	"fmt"
	"sort"

	"github.com/viant/blazelint/ast"
)

// Kind identifies a class of reported violation
type Kind string

const (
	// ForbiddenServerRegistration reports an event map reachable on the server
	ForbiddenServerRegistration Kind = "forbidden-server-registration"
	// InvalidParameterName reports an event handler parameter with an unexpected name
	InvalidParameterName Kind = "invalid-parameter-name"
)

// Diagnostic represents one reported violation
type Diagnostic struct {
	File    string   `json:"file,omitempty" yaml:"file,omitempty"`
	Rule    string   `json:"rule" yaml:"rule"`
	Kind    Kind     `json:"kind" yaml:"kind"`
	Message string   `json:"message" yaml:"message"`
	Line    int      `json:"line" yaml:"line"`
	Column  int      `json:"column" yaml:"column"`
	Node    ast.Node `json:"-" yaml:"-"`
}

// New creates a diagnostic anchored at node
func New(rule string, kind Kind, node ast.Node, message string) Diagnostic {
	span := node.Span()
	return Diagnostic{
		Rule:    rule,
		Kind:    kind,
		Message: message,
		Line:    span.Start.Line,
		Column:  span.Start.Column,
		Node:    node,
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s (%s)", d.File, d.Line, d.Column, d.Message, d.Rule)
}

// Reporter receives diagnostics at the time of detection
type Reporter func(d Diagnostic)

// Collector accumulates diagnostics in emission order
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends a diagnostic
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Count returns number of collected diagnostics of kind
func (c *Collector) Count(kind Kind) int {
	count := 0
	for _, d := range c.Diagnostics {
		if d.Kind == kind {
			count++
		}
	}
	return count
}

// Sort orders diagnostics by file and source position, keeping emission order for ties
func Sort(diagnostics []Diagnostic) {
	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
