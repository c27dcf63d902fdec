package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Detection sources.
const (
	SourceNative = "native"
	SourceProbe  = "probe"
)

type ProbeConfiguration struct {
	Command []string `json:"command"`
	Timeout string   `json:"timeout"`
}

type DetectionConfiguration struct {
	Source string             `json:"source"`
	Probe  ProbeConfiguration `json:"probe"`
}

type KubeconfigConfiguration struct {
	Path string `json:"path"`
}

type KubernetesConfiguration struct {
	Context string `json:"context"`
}

type HelmConfiguration struct {
	Namespace string `json:"namespace"`
}

type LogsConfiguration struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

type Configuration struct {
	Detection DetectionConfiguration `json:"detection"`

	Kubeconfig KubeconfigConfiguration `json:"kubeconfig"`
	Kubernetes KubernetesConfiguration `json:"kubernetes"`
	Helm       HelmConfiguration       `json:"helm"`

	Logs LogsConfiguration `json:"logs"`

	Watch bool `json:"watch"`
}

//go:embed schema.cue
var schemaContent string

// ProbeTimeout returns the configured probe timeout as a duration.
// Validation guarantees the string parses; zero means the probe's own
// default applies.
func (d DetectionConfiguration) ProbeTimeout() time.Duration {
	timeout, err := time.ParseDuration(d.Probe.Timeout)
	if err != nil {
		return 0
	}
	return timeout
}

// ReadConfiguration loads a configuration file, unifies it against the
// embedded CUE schema and validates the result.
func ReadConfiguration(filename string) (Configuration, error) {
	var configuration Configuration

	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaContent, cue.Filename("schema.cue"))
	if schemaVal.Err() != nil {
		return configuration, schemaVal.Err()
	}

	buf, err := loadConfiguration(filename)
	if err != nil {
		return configuration, err
	}

	configVal := ctx.CompileBytes(buf, cue.Filename(filename))
	if configVal.Err() != nil {
		return configuration, configVal.Err()
	}

	unified := schemaVal.Unify(configVal)
	if unified.Err() != nil {
		return configuration, unified.Err()
	}

	err = unified.Decode(&configuration)
	if err != nil {
		return configuration, err
	}

	return validateConfiguration(configuration)
}

// Default returns the configuration described by the schema's default
// values, for invocations without a configuration file.
func Default() (Configuration, error) {
	var configuration Configuration

	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaContent, cue.Filename("schema.cue"))
	if schemaVal.Err() != nil {
		return configuration, schemaVal.Err()
	}

	err := schemaVal.Decode(&configuration)
	if err != nil {
		return configuration, err
	}

	return validateConfiguration(configuration)
}

func loadConfiguration(filename string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func validateConfiguration(cfg Configuration) (Configuration, error) {
	if cfg.Detection.Source == SourceProbe && len(cfg.Detection.Probe.Command) == 0 {
		return cfg, fmt.Errorf("detection source %q requires a probe command", SourceProbe)
	}

	if cfg.Detection.Probe.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Detection.Probe.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid probe timeout %q: %w", cfg.Detection.Probe.Timeout, err)
		}
		if timeout <= 0 {
			return cfg, fmt.Errorf("probe timeout must be positive, got %q", cfg.Detection.Probe.Timeout)
		}
	}

	return cfg, nil
}
