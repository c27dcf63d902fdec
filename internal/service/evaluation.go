package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/codozor/kubestrap/internal/config"
	"github.com/codozor/kubestrap/internal/platform"
)

// ProviderConfig is the single option handed to one provider client: a
// kubeconfig path string, kept literal until the client is built.
type ProviderConfig struct {
	Name       string
	ConfigPath string
}

// Evaluation is the outcome of one resolution pass. Both provider
// configs are derived from the same resolved string in one pass and
// always carry the identical value.
type Evaluation struct {
	Classification platform.Classification
	ConfigPath     string

	Kubernetes ProviderConfig
	Helm       ProviderConfig
}

// Evaluate classifies the host once and materializes both provider
// configurations from the single resolved path. Classification strictly
// precedes provider configuration: a probe failure aborts before either
// ProviderConfig exists. An explicit kubeconfig.path override skips
// resolution and is handed to both providers verbatim.
func Evaluate(ctx context.Context, cfg config.Configuration) (*Evaluation, error) {
	classification, err := classify(ctx, cfg)
	if err != nil {
		return nil, err
	}

	path := cfg.Kubeconfig.Path
	if path == "" {
		path = platform.ResolvePath(classification)
	}

	return &Evaluation{
		Classification: classification,
		ConfigPath:     path,
		Kubernetes:     ProviderConfig{Name: "kubernetes", ConfigPath: path},
		Helm:           ProviderConfig{Name: "helm", ConfigPath: path},
	}, nil
}

func classify(ctx context.Context, cfg config.Configuration) (platform.Classification, error) {
	if cfg.Detection.Source == config.SourceProbe {
		probe, err := platform.NewProbe(cfg.Detection.Probe.Command, cfg.Detection.ProbeTimeout())
		if err != nil {
			return platform.Other, err
		}

		return probe.Run(ctx)
	}

	return platform.Detect(), nil
}

// Providers lists both provider configs in a stable order.
func (e *Evaluation) Providers() []ProviderConfig {
	return []ProviderConfig{e.Kubernetes, e.Helm}
}

// Consistent reports whether every provider config received the same
// path value as the evaluation itself resolved.
func (e *Evaluation) Consistent() bool {
	return lo.EveryBy(e.Providers(), func(pc ProviderConfig) bool {
		return pc.ConfigPath == e.ConfigPath
	})
}
