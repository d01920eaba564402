package eventmap

import (
	"fmt"

	"github.com/viant/blazelint/analyzer/diagnostic"
	"github.com/viant/blazelint/analyzer/executor"
	"github.com/viant/blazelint/ast"
)

// Name is the rule identifier
const Name = "blaze-consistent-eventmap-parameters"

const (
	DefaultEventParamName            = "event"
	DefaultTemplateInstanceParamName = "templateInstance"
	DefaultCallee                    = "events"

	serverMessage = "Allowed on client only"
)

// Config represents rule options
type Config struct {
	EventParamName            string `yaml:"eventParamName,omitempty"`
	TemplateInstanceParamName string `yaml:"templateInstanceParamName,omitempty"`
	// Callee is the member name of the registering call, e.g. Template.x.events; empty matches any call
	Callee *string `yaml:"callee,omitempty"`
}

// DefaultConfig returns default rule options
func DefaultConfig() Config {
	callee := DefaultCallee
	return Config{
		EventParamName:            DefaultEventParamName,
		TemplateInstanceParamName: DefaultTemplateInstanceParamName,
		Callee:                    &callee,
	}
}

func (c Config) withDefaults() Config {
	if c.EventParamName == "" {
		c.EventParamName = DefaultEventParamName
	}
	if c.TemplateInstanceParamName == "" {
		c.TemplateInstanceParamName = DefaultTemplateInstanceParamName
	}
	if c.Callee == nil {
		callee := DefaultCallee
		c.Callee = &callee
	}
	return c
}

// Rule checks event handler parameter names of Blaze event maps
// and forbids event map registration in server reachable code
type Rule struct {
	config Config
	env    executor.Environment
	guards executor.Guards
}

// New creates a rule for a file in env
func New(config Config, env executor.Environment, guards executor.Guards) *Rule {
	return &Rule{config: config.withDefaults(), env: env, guards: guards}
}

// Applies returns true if the file environment is subject to the rule
func (r *Rule) Applies() bool {
	return r.env == executor.EnvClient || r.env == executor.EnvUniversal || r.env == executor.EnvServer
}

// CheckCall validates a call expression visited with its ancestors (root first, excluding call)
func (r *Rule) CheckCall(call *ast.CallExpression, ancestors []ast.Node, report diagnostic.Reporter) {
	if !r.Applies() || len(call.Arguments) == 0 || !r.matchesCallee(call.Callee) {
		return
	}
	eventMap, ok := call.Arguments[0].(*ast.ObjectExpression)
	if !ok {
		return
	}
	chain := make([]ast.Node, 0, len(ancestors)+2)
	chain = append(chain, ancestors...)
	chain = append(chain, call, eventMap)
	for _, candidate := range eventMap.Properties {
		eventDef, ok := candidate.(*ast.Property)
		if !ok {
			continue
		}
		r.validateEventDef(eventDef, chain, report)
	}
}

func (r *Rule) validateEventDef(eventDef *ast.Property, ancestors []ast.Node, report diagnostic.Reporter) {
	executors := executor.Server
	if r.env != executor.EnvServer {
		executors = executor.Classify(r.env, ancestors, eventDef, r.guards)
	}
	if executors.Has(executor.Server) {
		report(diagnostic.New(Name, diagnostic.ForbiddenServerRegistration, eventDef, serverMessage))
		return
	}
	handler, ok := eventDef.Value.(*ast.Function)
	if !ok {
		return
	}
	r.ensureParamName(handler, 0, r.config.EventParamName, report)
	r.ensureParamName(handler, 1, r.config.TemplateInstanceParamName, report)
}

func (r *Rule) ensureParamName(handler *ast.Function, index int, expected string, report diagnostic.Reporter) {
	if index >= len(handler.Params) {
		return
	}
	param := handler.Params[index]
	name, ok := ast.ParamName(param)
	if !ok || name == expected {
		return
	}
	report(diagnostic.New(Name, diagnostic.InvalidParameterName, param, fmt.Sprintf(`Invalid parameter name, use "%s" instead`, expected)))
}

func (r *Rule) matchesCallee(callee ast.Node) bool {
	if *r.config.Callee == "" {
		return true
	}
	member, ok := callee.(*ast.MemberExpression)
	if !ok {
		return false
	}
	if member.Computed {
		literal, ok := member.Property.(*ast.Literal)
		return ok && literal.String && literal.Value == *r.config.Callee
	}
	id, ok := member.Property.(*ast.Identifier)
	return ok && id.Name == *r.config.Callee
}
