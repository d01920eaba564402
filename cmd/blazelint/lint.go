package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/viant/blazelint/analyzer"
	"github.com/viant/blazelint/analyzer/executor"
	"github.com/viant/blazelint/config"
	"github.com/viant/blazelint/inspector/repository"
	"github.com/viant/blazelint/telemetry/logging"
	"github.com/viant/blazelint/telemetry/metrics"
	"github.com/viant/blazelint/telemetry/tracing"
)

// errDiagnostics signals violations were reported; details are already printed
var errDiagnostics = errors.New("diagnostics reported")

var lintFlags struct {
	format      string
	env         string
	watch       bool
	metricsFile string
}

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Lint Blaze event maps",
	Long: `Lint Blaze event maps of a file or every JavaScript file under a directory.

File environments follow the Meteor application layout:
  - files under a client/ directory run on the client
  - files under a server/ directory run on the server
  - other files run on both, unless guarded by Meteor.isClient or Meteor.isServer
  - public/, private/, tests/, packages/ and node_modules/ are not linted

Examples:
  # Lint the current project
  blazelint lint

  # Treat every file as client code
  blazelint lint ./imports --env client

  # JSON output for CI/CD
  blazelint lint --format json

  # Re-lint on every change, exporting metrics for the node exporter
  blazelint lint --watch --metrics-file /var/lib/node_exporter/blazelint.prom`,
	Args: cobra.MaximumNArgs(1),
	RunE: lintProject,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.Flags().StringVar(&lintFlags.env, "env", "", "environment applied to every file: client, server, universal")
	lintCmd.Flags().BoolVarP(&lintFlags.watch, "watch", "w", false, "re-lint on file changes")
	lintCmd.Flags().StringVar(&lintFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to file")
}

func lintProject(cmd *cobra.Command, args []string) error {
	location := "."
	if len(args) > 0 {
		location = args[0]
	}
	if lintFlags.format != "text" && lintFlags.format != "json" {
		return fmt.Errorf("unsupported format: %q", lintFlags.format)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, location)
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Format: cfg.Log.Format, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	tracer, err := tracing.New(ctx, &cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			logger.Warn("failed to flush spans", "error", err)
		}
	}()
	collector := metrics.NewCollector(nil)
	options := []analyzer.Option{
		analyzer.WithConfig(cfg),
		analyzer.WithLogger(logger),
		analyzer.WithMetrics(collector),
		analyzer.WithTracer(tracer),
	}
	if lintFlags.env != "" {
		env, err := executor.ParseEnvironment(lintFlags.env)
		if err != nil {
			return err
		}
		options = append(options, analyzer.WithEnvironment(env))
	}
	lint := analyzer.New(options...)
	out := cmd.OutOrStdout()

	if lintFlags.watch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		return lint.Watch(ctx, location, func(report *analyzer.Report) {
			if err := writeReport(out, report); err != nil {
				logger.Error("failed to write report", "error", err)
			}
			if err := writeMetrics(collector); err != nil {
				logger.Error("failed to write metrics", "error", err)
			}
		})
	}

	report, err := lint.AnalyzeProject(ctx, location)
	if err != nil {
		return err
	}
	if err = writeReport(out, report); err != nil {
		return err
	}
	if err = writeMetrics(collector); err != nil {
		return err
	}
	if report.HasDiagnostics() || len(report.Errors) > 0 {
		return errDiagnostics
	}
	return nil
}

// loadConfig loads --config, or the project root configuration file when present
func loadConfig(ctx context.Context, location string) (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(ctx, cfgFile)
	}
	project, err := repository.New().DetectProject(ctx, location)
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(ctx, filepath.Join(project.RootPath, config.DefaultFile))
}

func writeReport(out io.Writer, report *analyzer.Report) error {
	if lintFlags.format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
	for _, d := range report.Diagnostics {
		fmt.Fprintln(out, d.String())
	}
	for _, fileError := range report.Errors {
		fmt.Fprintf(out, "%s: %s\n", fileError.Path, fileError.Error)
	}
	fmt.Fprintf(out, "%d problem(s) in %d file(s)\n", len(report.Diagnostics), len(report.Files))
	return nil
}

func writeMetrics(collector *metrics.Collector) error {
	if lintFlags.metricsFile == "" {
		return nil
	}
	return collector.WriteToTextfile(lintFlags.metricsFile)
}
