package javascript_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/blazelint/ast"
	"github.com/viant/blazelint/inspector/javascript"
)

// firstCall returns the first call expression in the program
func firstCall(program *ast.Program) *ast.CallExpression {
	var result *ast.CallExpression
	ast.Inspect(program, func(n ast.Node, ancestors []ast.Node) bool {
		if call, ok := n.(*ast.CallExpression); ok && result == nil {
			result = call
		}
		return result == nil
	})
	return result
}

func TestInspector_InspectSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		check  func(t *testing.T, program *ast.Program)
	}{
		{
			name: "event map with function handler",
			source: `Template.x.events({
  'submit form': function (event, templateInstance) {}
})`,
			check: func(t *testing.T, program *ast.Program) {
				call := firstCall(program)
				if !assert.NotNil(t, call) {
					return
				}
				callee, ok := call.Callee.(*ast.MemberExpression)
				assert.True(t, ok)
				assert.Equal(t, "events", callee.Property.(*ast.Identifier).Name)
				eventMap, ok := call.Arguments[0].(*ast.ObjectExpression)
				if !assert.True(t, ok) {
					return
				}
				prop := eventMap.Properties[0].(*ast.Property)
				key, _ := ast.PropertyName(prop.Key)
				assert.Equal(t, "submit form", key)
				assert.Equal(t, 2, prop.Span().Start.Line)
				assert.Equal(t, 3, prop.Span().Start.Column)
				handler, ok := prop.Value.(*ast.Function)
				if !assert.True(t, ok) {
					return
				}
				assert.False(t, handler.Arrow)
				assert.Len(t, handler.Params, 2)
				name, _ := ast.ParamName(handler.Params[1])
				assert.Equal(t, "templateInstance", name)
			},
		},
		{
			name:   "arrow handlers",
			source: `Template.x.events({ 'click a': (foo, bar) => {}, 'click b': e => e, async 'click c'(evt) {} })`,
			check: func(t *testing.T, program *ast.Program) {
				eventMap := firstCall(program).Arguments[0].(*ast.ObjectExpression)
				if !assert.Len(t, eventMap.Properties, 3) {
					return
				}
				arrow := eventMap.Properties[0].(*ast.Property).Value.(*ast.Function)
				assert.True(t, arrow.Arrow)
				assert.Len(t, arrow.Params, 2)
				single := eventMap.Properties[1].(*ast.Property).Value.(*ast.Function)
				assert.Len(t, single.Params, 1)
				method := eventMap.Properties[2].(*ast.Property)
				assert.True(t, method.Method)
				assert.True(t, method.Value.(*ast.Function).Async)
				name, _ := ast.ParamName(method.Value.(*ast.Function).Params[0])
				assert.Equal(t, "evt", name)
			},
		},
		{
			name:   "patterns",
			source: `Template.x.events({ 'click': function ({ target }, [a], ...rest) {}, 'blur': function (event = {}) {} })`,
			check: func(t *testing.T, program *ast.Program) {
				eventMap := firstCall(program).Arguments[0].(*ast.ObjectExpression)
				params := eventMap.Properties[0].(*ast.Property).Value.(*ast.Function).Params
				if !assert.Len(t, params, 3) {
					return
				}
				assert.Equal(t, "ObjectPattern", params[0].Type())
				assert.Equal(t, "ArrayPattern", params[1].Type())
				assert.Equal(t, "RestElement", params[2].Type())
				withDefault := eventMap.Properties[1].(*ast.Property).Value.(*ast.Function).Params[0]
				assert.Equal(t, "AssignmentPattern", withDefault.Type())
				name, ok := ast.ParamName(withDefault)
				assert.True(t, ok)
				assert.Equal(t, "event", name)
			},
		},
		{
			name: "guards",
			source: `if (Meteor.isServer) {
  Template.x.events({})
} else {
  foo(Meteor['isClient'] ? 1 : null)
}`,
			check: func(t *testing.T, program *ast.Program) {
				stmt, ok := program.Body[0].(*ast.IfStatement)
				if !assert.True(t, ok) {
					return
				}
				test := stmt.Test.(*ast.MemberExpression)
				assert.Equal(t, "isServer", test.Property.(*ast.Identifier).Name)
				assert.NotNil(t, stmt.Consequent)
				assert.Equal(t, "statement_block", stmt.Alternate.Type())
				var ternary *ast.ConditionalExpression
				ast.Inspect(stmt.Alternate, func(n ast.Node, _ []ast.Node) bool {
					if c, ok := n.(*ast.ConditionalExpression); ok {
						ternary = c
					}
					return true
				})
				if !assert.NotNil(t, ternary) {
					return
				}
				member := ternary.Test.(*ast.MemberExpression)
				assert.True(t, member.Computed)
				assert.True(t, member.Property.(*ast.Literal).String)
				assert.True(t, ternary.Alternate.(*ast.Literal).Null)
			},
		},
		{
			name:   "empty and null arguments",
			source: "Template.x.events()\nTemplate.x.events(null)",
			check: func(t *testing.T, program *ast.Program) {
				var calls []*ast.CallExpression
				ast.Inspect(program, func(n ast.Node, _ []ast.Node) bool {
					if call, ok := n.(*ast.CallExpression); ok {
						calls = append(calls, call)
					}
					return true
				})
				if !assert.Len(t, calls, 2) {
					return
				}
				assert.Empty(t, calls[0].Arguments)
				assert.True(t, calls[1].Arguments[0].(*ast.Literal).Null)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := javascript.NewInspector()
			program, err := inspector.InspectSource(context.Background(), []byte(tt.source))
			if !assert.Nil(t, err) {
				return
			}
			assert.False(t, program.HasError)
			tt.check(t, program)
		})
	}
}

func TestInspector_InspectSource_SyntaxError(t *testing.T) {
	inspector := javascript.NewInspector()
	program, err := inspector.InspectSource(context.Background(), []byte("Template.x.events({ 'click': function ( {}"))
	assert.Nil(t, err)
	assert.True(t, program.HasError)
}

func TestInspector_InspectFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "main.js")
	assert.Nil(t, os.WriteFile(location, []byte("Template.x.events({})\n"), 0644))

	inspector := javascript.NewInspector()
	program, err := inspector.InspectFile(context.Background(), location)
	if !assert.Nil(t, err) {
		return
	}
	assert.NotNil(t, firstCall(program))

	_, err = inspector.InspectFile(context.Background(), filepath.Join(t.TempDir(), "missing.js"))
	assert.NotNil(t, err)
}
