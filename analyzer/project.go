package analyzer

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/blazelint/analyzer/diagnostic"
	"github.com/viant/blazelint/analyzer/executor"
	"github.com/viant/blazelint/inspector/repository"
	"github.com/viant/blazelint/telemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// Report represents a project analysis result
type Report struct {
	RunID       string                  `json:"runId" yaml:"runId"`
	Project     *repository.Project     `json:"project" yaml:"project"`
	Files       []*FileResult           `json:"files" yaml:"files"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Errors      []*FileError            `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// FileResult summarizes one analyzed file
type FileResult struct {
	Path        string               `json:"path" yaml:"path"`
	Env         executor.Environment `json:"env" yaml:"env"`
	Diagnostics int                  `json:"diagnostics" yaml:"diagnostics"`
}

// FileError represents a file that could not be analyzed
type FileError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// HasDiagnostics returns true if any violation was reported
func (r *Report) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

// AnalyzeProject analyzes a file, or every supported file under a directory.
// Environments are resolved relative to the detected project root.
func (a *Analyzer) AnalyzeProject(ctx context.Context, location string) (*Report, error) {
	project, err := a.detector.DetectProject(ctx, location)
	if err != nil {
		return nil, err
	}
	report := &Report{RunID: uuid.NewString(), Project: project}
	ctx, span := a.tracer.Start(ctx, "blazelint.analyze_project", attribute.String("run.id", report.RunID), attribute.String("project.root", project.RootPath))
	defer span.End()
	a.logger.Info("analysis started", "run", report.RunID, "root", project.RootPath, "type", project.Type, "release", project.Release)

	paths, err := a.collectFiles(project)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	for _, relPath := range paths {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		diagnostics, err := a.AnalyzeFile(ctx, project.RootPath, relPath)
		if err != nil {
			a.logger.Warn("file not analyzed", "file", relPath, "error", err)
			report.Errors = append(report.Errors, &FileError{Path: relPath, Error: err.Error()})
			continue
		}
		report.Files = append(report.Files, &FileResult{Path: relPath, Env: a.Environment(relPath), Diagnostics: len(diagnostics)})
		report.Diagnostics = append(report.Diagnostics, diagnostics...)
	}
	diagnostic.Sort(report.Diagnostics)
	span.SetAttributes(attribute.Int("files", len(report.Files)), attribute.Int("diagnostics", len(report.Diagnostics)))
	a.logger.Info("analysis completed", "run", report.RunID, "files", len(report.Files), "diagnostics", len(report.Diagnostics), "errors", len(report.Errors))
	return report, nil
}

// collectFiles returns sorted project relative paths of files subject to analysis
func (a *Analyzer) collectFiles(project *repository.Project) ([]string, error) {
	location := filepath.Join(project.RootPath, filepath.FromSlash(project.RelativePath))
	info, err := os.Stat(location)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if a.Environment(project.RelativePath) == executor.EnvNone {
			return nil, nil
		}
		return []string{project.RelativePath}, nil
	}
	var result []string
	err = filepath.WalkDir(location, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(project.RootPath, filePath)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if entry.IsDir() {
			if filePath != location && a.skipDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if a.Environment(relPath) != executor.EnvNone {
			result = append(result, relPath)
		}
		return nil
	})
	sort.Strings(result)
	return result, err
}

func (a *Analyzer) skipDir(relPath string) bool {
	name := path.Base(relPath)
	if name == "node_modules" || (strings.HasPrefix(name, ".") && name != ".") {
		return true
	}
	if a.force != nil {
		return false
	}
	return a.classifier.IgnoredDir(relPath)
}
