package main

import (
	"flag"
	"fmt"
	"os"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	PipelinePath   string
	OptionsPath    string
	OutputPath     string
	MasterEndpoint string
	JobName        string
	Streaming      string
	LogLevel       string
	LogFormat      string
	ShowVersion    bool
	ShowHelp       bool
	Validate       bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.PipelinePath, "pipeline",
		getEnv("FLOWPLAN_PIPELINE", "pipeline.json"),
		"Path to pipeline definition file (env: FLOWPLAN_PIPELINE)")

	flag.StringVar(&cfg.PipelinePath, "p",
		getEnv("FLOWPLAN_PIPELINE", "pipeline.json"),
		"Path to pipeline definition file (env: FLOWPLAN_PIPELINE)")

	flag.StringVar(&cfg.OptionsPath, "options",
		getEnv("FLOWPLAN_OPTIONS", ""),
		"Path to execution options file, defaults used when empty (env: FLOWPLAN_OPTIONS)")

	flag.StringVar(&cfg.OutputPath, "output",
		getEnv("FLOWPLAN_OUTPUT", "-"),
		"Plan output path, - for stdout (env: FLOWPLAN_OUTPUT)")

	flag.StringVar(&cfg.MasterEndpoint, "master", "",
		"Master endpoint override: host:port or one of [auto], [collection], [local]")

	flag.StringVar(&cfg.JobName, "job-name", "",
		"Job name override")

	flag.StringVar(&cfg.Streaming, "streaming", "",
		"Execution mode override: true, false, or empty to infer from the pipeline")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("FLOWPLAN_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: FLOWPLAN_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("FLOWPLAN_LOG_FORMAT", "text"),
		"Log format: json, text (env: FLOWPLAN_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate the pipeline definition and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if _, err := os.Stat(cfg.PipelinePath); err != nil {
		return fmt.Errorf("pipeline definition not found: %s", cfg.PipelinePath)
	}

	if cfg.OptionsPath != "" {
		if _, err := os.Stat(cfg.OptionsPath); err != nil {
			return fmt.Errorf("options file not found: %s", cfg.OptionsPath)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.Streaming != "" && cfg.Streaming != "true" && cfg.Streaming != "false" {
		return fmt.Errorf("invalid streaming value: %s", cfg.Streaming)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Pipeline Plan Translation

Translates a declarative pipeline definition into an execution plan for
submission to a distributed processing engine.

Usage:
  %s [flags]

Flags:
  -pipeline, -p    Path to pipeline definition file (JSON)
  -options         Path to execution options file (YAML)
  -output          Plan output path, - for stdout
  -master          Master endpoint override
  -job-name        Job name override
  -streaming       Execution mode override: true or false
  -validate        Validate the pipeline definition and exit
  -log-level       Log level: debug, info, warn, error
  -log-format      Log format: json, text
  -version, -v     Show version information
  -help, -h        Show this help

Examples:
  %s -p wordcount.json -options prod.yaml -master flink-jm:8081
  %s -p wordcount.json -validate
`, appName, appName, appName, appName)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
