package repository

// Project represents information about a detected JavaScript project
type Project struct {
	// RootPath is the absolute path to the project root directory
	RootPath string `json:"rootPath" yaml:"rootPath"`
	// Type is meteor, javascript or unknown
	Type string `json:"type" yaml:"type"`
	// Name comes from package.json, falling back to the root directory name
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Release is the canonical semver of the Meteor release, e.g. v2.7.3
	Release string `json:"release,omitempty" yaml:"release,omitempty"`
	// RelativePath is the path from project root to the inspected location
	RelativePath string `json:"relativePath" yaml:"relativePath"`
}

// IsMeteor returns true for Meteor application roots
func (p *Project) IsMeteor() bool {
	return p.Type == TypeMeteor
}
