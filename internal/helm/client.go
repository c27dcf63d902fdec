package helm

import (
	"context"
	"fmt"
	"os"

	helmaction "helm.sh/helm/v4/pkg/action"
	helmcli "helm.sh/helm/v4/pkg/cli"
	release "helm.sh/helm/v4/pkg/release/v1"
)

// Client wraps the Helm action configuration for the chart-deployment
// provider. It is bound to the same kubeconfig path value as the
// Kubernetes provider.
type Client struct {
	actionConfig *helmaction.Configuration
	settings     *helmcli.EnvSettings
	namespace    string
}

// NewClient creates a Helm client against the provided kubeconfig path,
// context and release namespace. The path must be an expanded
// filesystem location.
func NewClient(kubeConfig, kubeContext, namespace string) (*Client, error) {
	settings := helmcli.New()
	if kubeConfig != "" {
		settings.KubeConfig = kubeConfig
	}
	if kubeContext != "" {
		settings.KubeContext = kubeContext
	}
	if namespace == "" {
		namespace = settings.Namespace()
	}

	actionConfig := new(helmaction.Configuration)

	err := actionConfig.Init(
		settings.RESTClientGetter(),
		namespace,
		os.Getenv("HELM_DRIVER"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize helm action configuration: %w", err)
	}

	return &Client{
		actionConfig: actionConfig,
		settings:     settings,
		namespace:    namespace,
	}, nil
}

// Namespace returns the release namespace the client operates in.
func (c *Client) Namespace() string {
	return c.namespace
}

// KubeConfig returns the kubeconfig path the client was bound to.
func (c *Client) KubeConfig() string {
	return c.settings.KubeConfig
}

// ReleaseInfo captures metadata about a deployed release.
type ReleaseInfo struct {
	Name      string
	Namespace string
	Revision  int
	Status    string
	Chart     string
}

// ListReleases returns the releases visible to this client, deployed or
// not. It doubles as the materialization check for the chart-deployment
// provider configuration.
func (c *Client) ListReleases(ctx context.Context) ([]ReleaseInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list releases context cancelled: %w", err)
	}

	list := helmaction.NewList(c.actionConfig)
	list.All = true
	list.SetStateMask()

	releases, err := list.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}

	infos := make([]ReleaseInfo, 0, len(releases))
	for _, rel := range releases {
		infos = append(infos, releaseToInfo(rel.(*release.Release)))
	}

	return infos, nil
}

func releaseToInfo(rel *release.Release) ReleaseInfo {
	info := ReleaseInfo{
		Name:      rel.Name,
		Namespace: rel.Namespace,
		Revision:  rel.Version,
	}

	if rel.Info != nil {
		info.Status = rel.Info.Status.String()
	}

	if rel.Chart != nil && rel.Chart.Metadata != nil {
		info.Chart = fmt.Sprintf("%s-%s", rel.Chart.Metadata.Name, rel.Chart.Metadata.Version)
	}

	return info
}
