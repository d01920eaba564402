package eventmap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/blazelint/analyzer/diagnostic"
	"github.com/viant/blazelint/analyzer/eventmap"
	"github.com/viant/blazelint/analyzer/executor"
	"github.com/viant/blazelint/ast"
	"github.com/viant/blazelint/inspector/javascript"
	"gopkg.in/yaml.v3"
)

type expectedDiagnostic struct {
	Kind    diagnostic.Kind `yaml:"kind"`
	Message string          `yaml:"message"`
	Type    string          `yaml:"type"`
	Line    int             `yaml:"line"`
}

func check(t *testing.T, source string, config eventmap.Config, env executor.Environment) []diagnostic.Diagnostic {
	program, err := javascript.NewInspector().InspectSource(context.Background(), []byte(source))
	if !assert.Nil(t, err) {
		return nil
	}
	rule := eventmap.New(config, env, executor.MeteorGuards())
	collector := &diagnostic.Collector{}
	ast.Inspect(program, func(node ast.Node, ancestors []ast.Node) bool {
		if call, ok := node.(*ast.CallExpression); ok {
			rule.CheckCall(call, ancestors, collector.Report)
		}
		return true
	})
	return collector.Diagnostics
}

func callee(name string) *string { return &name }

func TestRule_CheckCall(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		config      eventmap.Config
		env         executor.Environment
		expectYaml  string
	}{
		{
			description: "valid single parameter",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'submit form': function (event) {}
})`,
			expectYaml: `[]`,
		},
		{
			description: "valid nested event map value",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'submit form': {}
})`,
			expectYaml: `[]`,
		},
		{
			description: "no arguments and null argument",
			env:         executor.EnvClient,
			source: `
Template.x.events()
Template.x.events(null)
Template.x.events(eventMap)`,
			expectYaml: `[]`,
		},
		{
			description: "custom event parameter name",
			env:         executor.EnvClient,
			config:      eventmap.Config{EventParamName: "evt"},
			source: `
Template.x.events({
  'submit form': function (evt) {}
})`,
			expectYaml: `[]`,
		},
		{
			description: "custom parameter names",
			env:         executor.EnvClient,
			config:      eventmap.Config{EventParamName: "evt", TemplateInstanceParamName: "tmplInst"},
			source: `
Template.x.events({
  'submit form': function (evt, tmplInst) {}
})`,
			expectYaml: `[]`,
		},
		{
			description: "default name rejected when overridden",
			env:         executor.EnvClient,
			config:      eventmap.Config{EventParamName: "evt"},
			source: `
Template.x.events({
  'submit form': function (event) {}
})`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "evt" instead
  type: Identifier
  line: 3
`,
		},
		{
			description: "valid default names",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'submit form': function (event, templateInstance) {},
  'click a': (event, templateInstance) => {},
  'click b'(event) {}
})`,
			expectYaml: `[]`,
		},
		{
			description: "invalid names",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'submit form': function (foo, bar) {}
})`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "event" instead
  type: Identifier
  line: 3
- kind: invalid-parameter-name
  message: Invalid parameter name, use "templateInstance" instead
  type: Identifier
  line: 3
`,
		},
		{
			description: "invalid arrow names",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'submit form': (foo, bar) => {}
})`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "event" instead
  type: Identifier
  line: 3
- kind: invalid-parameter-name
  message: Invalid parameter name, use "templateInstance" instead
  type: Identifier
  line: 3
`,
		},
		{
			description: "invalid first name",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'submit form': function (foo, templateInstance) {}
})`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "event" instead
  type: Identifier
  line: 3
`,
		},
		{
			description: "invalid second name",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'submit form': function (event, bar) {}
})`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "templateInstance" instead
  type: Identifier
  line: 3
`,
		},
		{
			description: "properties validated independently",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'click a': function (e) {},
  'click b': function (event, instance, extra) {},
  ...shared
})`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "event" instead
  type: Identifier
  line: 3
- kind: invalid-parameter-name
  message: Invalid parameter name, use "templateInstance" instead
  type: Identifier
  line: 4
`,
		},
		{
			description: "destructured and rest parameters are skipped, defaults are checked",
			env:         executor.EnvClient,
			source: `
Template.x.events({
  'click a': function ({ target }, ...rest) {},
  'click b': function (evt = {}) {}
})`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "event" instead
  type: AssignmentPattern
  line: 4
`,
		},
		{
			description: "other callee ignored",
			env:         executor.EnvClient,
			source: `
Template.x.helpers({
  name: function (foo) {}
})
register({ 'click': function (foo) {} })`,
			expectYaml: `[]`,
		},
		{
			description: "any callee when callee option is empty",
			env:         executor.EnvClient,
			config:      eventmap.Config{Callee: callee("")},
			source: `register({ 'click': function (foo) {} })`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "event" instead
  type: Identifier
  line: 1
`,
		},
		{
			description: "universal client guard",
			env:         executor.EnvUniversal,
			source: `
if (Meteor.isClient) {
  Template.x.events({
    'submit form': function (event, templateInstance) {}
  })
}`,
			expectYaml: `[]`,
		},
		{
			description: "universal client guard with invalid names",
			env:         executor.EnvUniversal,
			source: `
if (Meteor.isClient) {
  Template.x.events({
    'submit form': function (foo, bar) {}
  })
}`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "event" instead
  type: Identifier
  line: 4
- kind: invalid-parameter-name
  message: Invalid parameter name, use "templateInstance" instead
  type: Identifier
  line: 4
`,
		},
		{
			description: "universal server guard",
			env:         executor.EnvUniversal,
			source: `
if (Meteor.isServer) {
  Template.x.events({
    'submit form': function () {}
  })
}`,
			expectYaml: `
- kind: forbidden-server-registration
  message: Allowed on client only
  type: Property
  line: 4
`,
		},
		{
			description: "server violation is terminal for the property",
			env:         executor.EnvUniversal,
			source: `
if (Meteor.isServer) {
  Template.x.events({
    'submit form': function (foo, bar) {},
    'click a': {}
  })
}`,
			expectYaml: `
- kind: forbidden-server-registration
  message: Allowed on client only
  type: Property
  line: 4
- kind: forbidden-server-registration
  message: Allowed on client only
  type: Property
  line: 5
`,
		},
		{
			description: "universal without guard is reachable on the server",
			env:         executor.EnvUniversal,
			source: `
Template.x.events({
  'submit form': function (event, templateInstance) {}
})`,
			expectYaml: `
- kind: forbidden-server-registration
  message: Allowed on client only
  type: Property
  line: 3
`,
		},
		{
			description: "universal ternary guard",
			env:         executor.EnvUniversal,
			source: `
Meteor.isClient ? Template.x.events({ 'click': function (foo) {} }) : null`,
			expectYaml: `
- kind: invalid-parameter-name
  message: Invalid parameter name, use "event" instead
  type: Identifier
  line: 2
`,
		},
		{
			description: "server file",
			env:         executor.EnvServer,
			source: `
if (Meteor.isClient) {
  Template.x.events({
    'submit form': function (foo) {}
  })
}`,
			expectYaml: `
- kind: forbidden-server-registration
  message: Allowed on client only
  type: Property
  line: 4
`,
		},
		{
			description: "file not linted",
			env:         executor.EnvNone,
			source: `
Template.x.events({
  'submit form': function (foo, bar) {}
})`,
			expectYaml: `[]`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var expect []expectedDiagnostic
			if err := yaml.Unmarshal([]byte(testCase.expectYaml), &expect); !assert.Nil(t, err) {
				return
			}
			diagnostics := check(t, testCase.source, testCase.config, testCase.env)
			actual := make([]expectedDiagnostic, 0, len(diagnostics))
			for _, d := range diagnostics {
				assert.Equal(t, eventmap.Name, d.Rule)
				actual = append(actual, expectedDiagnostic{Kind: d.Kind, Message: d.Message, Type: d.Node.Type(), Line: d.Line})
			}
			if !assert.EqualValues(t, expect, actual, testCase.description) {
				data, _ := yaml.Marshal(actual)
				t.Logf("actual:\n%s", data)
			}

			// analysis is idempotent
			again := check(t, testCase.source, testCase.config, testCase.env)
			assert.Equal(t, len(diagnostics), len(again))
		})
	}
}

func TestRule_Applies(t *testing.T) {
	assert.True(t, eventmap.New(eventmap.Config{}, executor.EnvClient, executor.Guards{}).Applies())
	assert.True(t, eventmap.New(eventmap.Config{}, executor.EnvUniversal, executor.Guards{}).Applies())
	assert.True(t, eventmap.New(eventmap.Config{}, executor.EnvServer, executor.Guards{}).Applies())
	assert.False(t, eventmap.New(eventmap.Config{}, executor.EnvNone, executor.Guards{}).Applies())
}
