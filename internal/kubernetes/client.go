package kubernetes

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// NewRestConfig creates a Kubernetes REST client configuration from an
// explicit kubeconfig path. The path must already be expanded to a real
// filesystem location; resolving the platform default happens upstream
// so both provider clients share one value.
func NewRestConfig(path string, kubeContext string) (*rest.Config, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = path

	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}

	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
}

// NewClient creates a new Kubernetes client from a REST configuration.
func NewClient(config *rest.Config) (kubernetes.Interface, error) {
	return kubernetes.NewForConfig(config)
}

// CheckResult summarizes a connectivity check against the API server.
type CheckResult struct {
	ServerVersion string
	Namespaces    int
}

// Check verifies that the provider configuration actually reaches a
// cluster: server version plus a namespace listing.
func Check(ctx context.Context, client kubernetes.Interface) (CheckResult, error) {
	version, err := client.Discovery().ServerVersion()
	if err != nil {
		return CheckResult{}, fmt.Errorf("failed to query server version: %w", err)
	}

	namespaces, err := client.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return CheckResult{}, fmt.Errorf("failed to list namespaces: %w", err)
	}

	return CheckResult{
		ServerVersion: version.GitVersion,
		Namespaces:    len(namespaces.Items),
	}, nil
}
