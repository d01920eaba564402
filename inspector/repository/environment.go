package repository

import (
	"path"
	"strings"

	"github.com/viant/blazelint/analyzer/executor"
)

// Override assigns an environment to matching project paths
type Override struct {
	// Pattern is a path.Match glob over the slash separated relative path,
	// or a directory prefix when it ends with "/"
	Pattern string               `yaml:"pattern"`
	Env     executor.Environment `yaml:"env"`
}

// Matches returns true if the relative path matches the override pattern
func (o *Override) Matches(relPath string) bool {
	if strings.HasSuffix(o.Pattern, "/") {
		return strings.HasPrefix(relPath, o.Pattern)
	}
	if ok, _ := path.Match(o.Pattern, relPath); ok {
		return true
	}
	ok, _ := path.Match(o.Pattern, path.Base(relPath))
	return ok && !strings.Contains(o.Pattern, "/")
}

// ignoredSegments mark directories whose files are not linted (assets, dependencies, tests)
var ignoredSegments = map[string]bool{
	"node_modules": true,
	"public":       true,
	"private":      true,
	"tests":        true,
	".meteor":      true,
	"packages":     true,
}

// Classifier maps project relative file paths to execution environments
// following Meteor application layout conventions
type Classifier struct {
	overrides []*Override
	supports  func(filename string) bool
}

// NewClassifier creates a classifier; overrides are applied first, first match wins
func NewClassifier(supports func(filename string) bool, overrides ...*Override) *Classifier {
	return &Classifier{overrides: overrides, supports: supports}
}

// Environment returns the environment of a project relative path
func (c *Classifier) Environment(relPath string) executor.Environment {
	relPath = strings.TrimPrefix(path.Clean(strings.ReplaceAll(relPath, "\\", "/")), "./")
	if c.supports != nil && !c.supports(relPath) {
		return executor.EnvNone
	}
	for _, override := range c.overrides {
		if override.Matches(relPath) {
			return override.Env
		}
	}
	return LayoutEnvironment(relPath)
}

// IgnoredDir returns true if files under the project relative directory are never linted
func (c *Classifier) IgnoredDir(relDir string) bool {
	for _, override := range c.overrides {
		if override.Env != executor.EnvNone && strings.HasSuffix(override.Pattern, "/") &&
			strings.HasPrefix(override.Pattern, strings.TrimSuffix(relDir, "/")+"/") {
			return false
		}
	}
	return ignoredSegments[path.Base(relDir)]
}

// LayoutEnvironment classifies a relative path by its directory segments
func LayoutEnvironment(relPath string) executor.Environment {
	segments := strings.Split(path.Dir(relPath), "/")
	result := executor.EnvUniversal
	for _, segment := range segments {
		switch {
		case ignoredSegments[segment]:
			return executor.EnvNone
		case segment == "client":
			result = executor.EnvClient
		case segment == "server":
			result = executor.EnvServer
		}
	}
	return result
}
