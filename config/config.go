// Package config defines the recognized options of the translation
// environment and their YAML loading and validation.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/flowplan/errors"
)

// Duration wraps time.Duration so YAML options can use human-readable
// duration syntax ("10s", "5m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CheckpointConfig configures the external engine's fault-tolerance
// mechanism for unbounded computations. It is read-only for the
// translation environment; only the hazard warning inspects it.
type CheckpointConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

// Options holds every option the translation environment recognizes.
// StagingPaths is mutated in place during translation: for remote master
// endpoints it is replaced with the discovered artifact set.
type Options struct {
	Runner         string           `yaml:"runner"`
	JobName        string           `yaml:"job_name"`
	MasterEndpoint string           `yaml:"master_endpoint"`
	StagingPaths   []string         `yaml:"staging_paths"`
	TempLocation   string           `yaml:"temp_location"`
	Streaming      *bool            `yaml:"streaming"`
	Parallelism    int              `yaml:"parallelism"`
	ArtifactDirs   []string         `yaml:"artifact_dirs"`
	Checkpoint     CheckpointConfig `yaml:"checkpoint"`
}

// DefaultOptions returns options for a local auto-started cluster
func DefaultOptions() *Options {
	return &Options{
		Runner:         "flink",
		MasterEndpoint: "[auto]",
		Parallelism:    1,
		Checkpoint: CheckpointConfig{
			Enabled:  false,
			Interval: Duration(10 * time.Second),
		},
	}
}

// Load reads options from a YAML file on top of the defaults.
// Unknown fields are rejected.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Options", "Load", "options file read")
	}
	return Parse(data)
}

// Parse decodes YAML options on top of the defaults
func Parse(data []byte) (*Options, error) {
	opts := DefaultOptions()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && err != io.EOF {
		return nil, errors.WrapInvalid(err, "Options", "Parse", "options decoding")
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks the options for consistency
func (o *Options) Validate() error {
	if o.Runner == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: runner", errors.ErrMissingConfig), "Options", "Validate", "runner validation")
	}
	if o.MasterEndpoint == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: master_endpoint", errors.ErrMissingConfig),
			"Options", "Validate", "master endpoint validation")
	}
	if o.Parallelism < 1 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: parallelism must be >= 1, got %d", errors.ErrInvalidConfig, o.Parallelism),
			"Options", "Validate", "parallelism validation")
	}
	if o.Checkpoint.Interval < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: checkpoint interval cannot be negative", errors.ErrInvalidConfig),
			"Options", "Validate", "checkpoint validation")
	}
	return nil
}
