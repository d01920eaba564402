package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/semver"
)

const (
	TypeMeteor     = "meteor"
	TypeJavaScript = "javascript"
	TypeUnknown    = "unknown"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs afs.Service
	// Project root marker files/directories, in priority order
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			".meteor",      // Meteor applications
			"package.json", // JavaScript/Node projects
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(ctx, startDir)
	info := &Project{
		Type:     TypeUnknown,
		RootPath: startDir,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = d.extractPackageName(ctx, info.RootPath)
	if info.Type == TypeMeteor {
		info.Release = d.extractRelease(ctx, info.RootPath)
	}
	return info, nil
}

// findProjectRoot searches up from the start directory for project markers
func (d *Detector) findProjectRoot(ctx context.Context, startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, marker)); ok {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// extractPackageName reads the package.json name, falling back to the directory name
func (d *Detector) extractPackageName(ctx context.Context, rootPath string) string {
	data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, "package.json"))
	if err != nil {
		return filepath.Base(rootPath)
	}
	pkg := struct {
		Name string `json:"name"`
	}{}
	if err = json.Unmarshal(data, &pkg); err != nil || pkg.Name == "" {
		return filepath.Base(rootPath)
	}
	return pkg.Name
}

// extractRelease reads .meteor/release, e.g. METEOR@2.7.3
func (d *Detector) extractRelease(ctx context.Context, rootPath string) string {
	data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, ".meteor", "release"))
	if err != nil {
		return ""
	}
	return canonicalRelease(string(data))
}

func canonicalRelease(release string) string {
	release = strings.TrimSpace(release)
	if index := strings.Index(release, "@"); index != -1 {
		release = release[index+1:]
	}
	if !strings.HasPrefix(release, "v") {
		release = "v" + release
	}
	if !semver.IsValid(release) {
		return ""
	}
	return semver.Canonical(release)
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case ".meteor":
		return TypeMeteor
	case "package.json":
		return TypeJavaScript
	default:
		return TypeUnknown
	}
}
