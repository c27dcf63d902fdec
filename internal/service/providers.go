package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/codozor/kubestrap/internal/config"
	helminternal "github.com/codozor/kubestrap/internal/helm"
	kubeinternal "github.com/codozor/kubestrap/internal/kubernetes"
	"github.com/codozor/kubestrap/internal/platform"
)

var Package = do.Package(
	do.Lazy(evaluationProvider),
	do.Lazy(restConfigProvider),
	do.Lazy(kubernetesProvider),
	do.Lazy(helmProvider),
	do.Lazy(runnerProvider),
)

func evaluationProvider(injector do.Injector) (*Evaluation, error) {
	configuration := do.MustInvoke[config.Configuration](injector)

	return Evaluate(context.Background(), configuration)
}

func restConfigProvider(injector do.Injector) (*rest.Config, error) {
	configuration := do.MustInvoke[config.Configuration](injector)
	evaluation := do.MustInvoke[*Evaluation](injector)

	path, err := platform.ExpandPath(evaluation.Kubernetes.ConfigPath)
	if err != nil {
		return nil, err
	}

	return kubeinternal.NewRestConfig(path, configuration.Kubernetes.Context)
}

func kubernetesProvider(injector do.Injector) (kubernetes.Interface, error) {
	restCfg := do.MustInvoke[*rest.Config](injector)

	return kubeinternal.NewClient(restCfg)
}

func helmProvider(injector do.Injector) (*helminternal.Client, error) {
	configuration := do.MustInvoke[config.Configuration](injector)
	evaluation := do.MustInvoke[*Evaluation](injector)

	path, err := platform.ExpandPath(evaluation.Helm.ConfigPath)
	if err != nil {
		return nil, err
	}

	return helminternal.NewClient(path, configuration.Kubernetes.Context, configuration.Helm.Namespace)
}

func runnerProvider(injector do.Injector) (*Runner, error) {
	configuration := do.MustInvoke[config.Configuration](injector)
	options := do.MustInvoke[Options](injector)
	logger := do.MustInvoke[zerolog.Logger](injector)
	evaluation := do.MustInvoke[*Evaluation](injector)

	return &Runner{
		configuration: configuration,
		options:       options,
		logger:        logger,
		evaluation:    evaluation,
		injector:      injector,
	}, nil
}
