// Package main implements the entry point for the flowplan translator.
// Flowplan turns a declarative pipeline definition into an execution plan
// ready for submission to a distributed stream-processing engine.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/flowplan/config"
	planengine "github.com/c360/flowplan/engine"
	"github.com/c360/flowplan/pipeline"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "flowplan"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Translation failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s (built %s)\n", appName, Version, BuildTime)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	if err := validateFlags(cliCfg); err != nil {
		return err
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	opts, err := loadOptions(cliCfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cliCfg.PipelinePath)
	if err != nil {
		return fmt.Errorf("reading pipeline definition: %w", err)
	}
	graph, err := pipeline.ParseDefinition(data)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		logger.Info("Pipeline definition is valid",
			"nodes", len(graph.Nodes()),
			"edges", len(graph.Edges()))
		return nil
	}

	env := planengine.NewExecutionEnvironment(opts, nil, nil, logger, prometheus.NewRegistry())
	plan, err := env.Translate(graph)
	if err != nil {
		return err
	}

	return writePlan(plan, cliCfg.OutputPath)
}

// loadOptions reads the options file when one is given, otherwise starts
// from defaults, then applies flag-level overrides.
func loadOptions(cliCfg *CLIConfig) (*config.Options, error) {
	opts := config.DefaultOptions()
	if cliCfg.OptionsPath != "" {
		loaded, err := config.Load(cliCfg.OptionsPath)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	if cliCfg.MasterEndpoint != "" {
		opts.MasterEndpoint = cliCfg.MasterEndpoint
	}
	if cliCfg.JobName != "" {
		opts.JobName = cliCfg.JobName
	}
	if cliCfg.Streaming != "" {
		streaming := cliCfg.Streaming == "true"
		opts.Streaming = &streaming
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func writePlan(plan any, path string) error {
	encoded, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	encoded = append(encoded, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}
