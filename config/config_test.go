package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/blazelint/analyzer/executor"
	"github.com/viant/blazelint/ast"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		yaml        string
		expectErr   bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			description: "empty uses defaults",
			yaml:        "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "event", cfg.Rule.EventParamName)
				assert.Equal(t, "templateInstance", cfg.Rule.TemplateInstanceParamName)
				assert.Equal(t, "events", *cfg.Rule.Callee)
				assert.Equal(t, []string{".js", ".jsx", ".mjs", ".cjs"}, cfg.Extensions)
				assert.Nil(t, cfg.Environment.Force)
			},
		},
		{
			description: "rule options",
			yaml: `rule:
  eventParamName: evt
  callee: ""
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "evt", cfg.Rule.EventParamName)
				assert.Equal(t, "templateInstance", cfg.Rule.TemplateInstanceParamName)
				assert.Equal(t, "", *cfg.Rule.Callee)
				assert.Equal(t, "info", cfg.Log.Level)
			},
		},
		{
			description: "environment",
			yaml: `environment:
  force: universal
  overrides:
    - pattern: imports/ui/
      env: client
guards:
  client: [Meteor.isClient, process.browser]
`,
			check: func(t *testing.T, cfg *Config) {
				if assert.NotNil(t, cfg.Environment.Force) {
					assert.Equal(t, executor.EnvUniversal, *cfg.Environment.Force)
				}
				if assert.Len(t, cfg.Environment.Overrides, 1) {
					assert.Equal(t, executor.EnvClient, cfg.Environment.Overrides[0].Env)
				}
				assert.Equal(t, []string{"Meteor.isServer"}, cfg.Guards.Server)
				guards := cfg.ExecutorGuards()
				assert.True(t, guards.IsClient(&ast.MemberExpression{
					Object:   &ast.Identifier{Name: "process"},
					Property: &ast.Identifier{Name: "browser"},
				}))
			},
		},
		{
			description: "unknown rule option",
			yaml: `rule:
  eventName: evt
`,
			expectErr: true,
		},
		{
			description: "unknown environment",
			yaml: `environment:
  force: browser
`,
			expectErr: true,
		},
		{
			description: "invalid guard",
			yaml: `guards:
  server: ["Meteor..isServer"]
`,
			expectErr: true,
		},
		{
			description: "invalid log level",
			yaml: `log:
  level: trace
`,
			expectErr: true,
		},
		{
			description: "tracing",
			yaml: `tracing:
  enabled: true
  endpoint: localhost:4317
  insecure: true
  sampleRatio: 0.25
`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Tracing.Enabled)
				assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
				assert.Equal(t, 0.25, cfg.Tracing.SampleRatio)
			},
		},
		{
			description: "tracing without endpoint",
			yaml: `tracing:
  enabled: true
`,
			expectErr: true,
		},
		{
			description: "empty override pattern",
			yaml: `environment:
  overrides:
    - env: client
`,
			expectErr: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cfg, err := Parse([]byte(testCase.yaml))
			if testCase.expectErr {
				assert.NotNil(t, err, testCase.description)
				return
			}
			if !assert.Nil(t, err, testCase.description) {
				return
			}
			testCase.check(t, cfg)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg, err := LoadOrDefault(ctx, filepath.Join(dir, DefaultFile))
	assert.Nil(t, err)
	assert.Equal(t, Default(), cfg)

	location := filepath.Join(dir, DefaultFile)
	assert.Nil(t, os.WriteFile(location, []byte("rule:\n  templateInstanceParamName: tmpl\n"), 0644))
	cfg, err = LoadOrDefault(ctx, location)
	if assert.Nil(t, err) {
		assert.Equal(t, "tmpl", cfg.Rule.TemplateInstanceParamName)
	}

	assert.Nil(t, os.WriteFile(location, []byte("unknown: true\n"), 0644))
	_, err = Load(ctx, location)
	assert.NotNil(t, err)
}
