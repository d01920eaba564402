package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/viant/afs"
	"github.com/viant/blazelint/analyzer/diagnostic"
	"github.com/viant/blazelint/analyzer/eventmap"
	"github.com/viant/blazelint/analyzer/executor"
	"github.com/viant/blazelint/ast"
	"github.com/viant/blazelint/config"
	"github.com/viant/blazelint/inspector"
	"github.com/viant/blazelint/inspector/repository"
	"github.com/viant/blazelint/telemetry/logging"
	"github.com/viant/blazelint/telemetry/metrics"
	"github.com/viant/blazelint/telemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"
)

// Analyzer runs event map rules over JavaScript sources
type Analyzer struct {
	config      *config.Config
	fingerprint []byte
	guards      *executor.Guards
	force       *executor.Environment
	factory     *inspector.Factory
	classifier  *repository.Classifier
	detector    *repository.Detector
	logger      *slog.Logger
	metrics     *metrics.Collector
	tracer      *tracing.Tracer
	cache       *Cache
	fs          afs.Service
}

// New creates an analyzer
func New(options ...Option) *Analyzer {
	a := &Analyzer{fs: afs.New()}
	for _, opt := range options {
		opt(a)
	}
	if a.config == nil {
		a.config = config.Default()
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}
	if a.guards == nil {
		guards := a.config.ExecutorGuards()
		a.guards = &guards
	}
	if a.force == nil {
		a.force = a.config.Environment.Force
	}
	a.factory = inspector.NewFactory(a.config.Extensions...)
	a.classifier = repository.NewClassifier(a.factory.Supports, a.config.Environment.Overrides...)
	a.detector = repository.New()
	a.fingerprint, _ = yaml.Marshal(a.config)
	return a
}

// Environment returns the environment of a project relative file path
func (a *Analyzer) Environment(relPath string) executor.Environment {
	if a.force != nil {
		if !a.factory.Supports(relPath) {
			return executor.EnvNone
		}
		return *a.force
	}
	return a.classifier.Environment(relPath)
}

// AnalyzeSource analyzes source of a file in env; diagnostics are returned in traversal order
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, env executor.Environment, src []byte) ([]diagnostic.Diagnostic, error) {
	rule := eventmap.New(a.config.Rule, env, *a.guards)
	if !rule.Applies() {
		a.logger.Debug("file skipped", "file", path, "env", env.String())
		return nil, nil
	}
	ctx, span := a.tracer.Start(ctx, "blazelint.analyze_file", attribute.String("file", path), attribute.String("env", env.String()))
	defer span.End()
	started := time.Now()
	var cacheKey uint64
	if a.cache != nil {
		var err error
		if cacheKey, err = Hash(a.fingerprint, []byte(env.String()), src); err == nil {
			if cached, ok := a.cache.Get(path, cacheKey); ok {
				a.metrics.RecordCacheHit()
				a.logger.Debug("file unchanged", "file", path)
				return cached, nil
			}
		}
	}
	insp, err := a.factory.GetInspector(path)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	program, err := insp.InspectSource(ctx, src)
	if err != nil {
		a.metrics.RecordFileError()
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to analyze %s: %w", path, err)
	}
	if program.HasError {
		a.logger.Warn("syntax errors, analyzing recovered tree", "file", path)
	}

	collector := &diagnostic.Collector{}
	Check(program, rule, collector.Report)
	for i := range collector.Diagnostics {
		collector.Diagnostics[i].File = path
		a.metrics.RecordDiagnostic(string(collector.Diagnostics[i].Kind))
	}
	a.metrics.RecordFile(env.String(), time.Since(started))
	span.SetAttributes(attribute.Bool("syntax.error", program.HasError), attribute.Int("diagnostics", len(collector.Diagnostics)))
	a.logger.Debug("file analyzed", "file", path, "env", env.String(), "diagnostics", len(collector.Diagnostics))
	if a.cache != nil {
		a.cache.Put(path, cacheKey, collector.Diagnostics)
	}
	return collector.Diagnostics, nil
}

// AnalyzeFile reads and analyzes a file located at root/relPath
func (a *Analyzer) AnalyzeFile(ctx context.Context, root, relPath string) ([]diagnostic.Diagnostic, error) {
	env := a.Environment(relPath)
	if env == executor.EnvNone {
		return nil, nil
	}
	src, err := a.fs.DownloadWithURL(ctx, filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		a.metrics.RecordFileError()
		return nil, fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	return a.AnalyzeSource(ctx, relPath, env, src)
}

// Check runs rule for every call expression of program
func Check(program *ast.Program, rule *eventmap.Rule, report diagnostic.Reporter) {
	ast.Inspect(program, func(node ast.Node, ancestors []ast.Node) bool {
		if call, ok := node.(*ast.CallExpression); ok {
			rule.CheckCall(call, ancestors, report)
		}
		return true
	})
}
