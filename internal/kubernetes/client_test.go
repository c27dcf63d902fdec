package kubernetes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMockClient creates a fake Kubernetes client for testing
func newTestMockClient(objects ...runtime.Object) *fake.Clientset {
	return fake.NewClientset(objects...)
}

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test
contexts:
- context:
    cluster: test
    user: test
  name: test
current-context: test
users:
- name: test
  user: {}
`

// TestNewRestConfigFromPath tests loading a REST config from an
// explicit kubeconfig path
func TestNewRestConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(testKubeconfig), 0o600))

	cfg, err := NewRestConfig(path, "")

	require.NoError(t, err)
	assert.Equal(t, "https://127.0.0.1:6443", cfg.Host)
}

// TestNewRestConfigMissingContext tests the error for an unknown context
func TestNewRestConfigMissingContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(testKubeconfig), 0o600))

	_, err := NewRestConfig(path, "no-such-context")

	assert.Error(t, err)
}

// TestNewRestConfigMissingFile tests the error for a missing kubeconfig
func TestNewRestConfigMissingFile(t *testing.T) {
	_, err := NewRestConfig(filepath.Join(t.TempDir(), "nonexistent"), "")

	assert.Error(t, err)
}

// TestCheckCountsNamespaces tests the connectivity check
func TestCheckCountsNamespaces(t *testing.T) {
	namespaces := []runtime.Object{
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "default"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "kube-system"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "platform"}},
	}

	client := newTestMockClient(namespaces...)

	result, err := Check(context.Background(), client)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Namespaces)
}

// TestCheckEmptyCluster tests the check against a cluster with no
// namespaces
func TestCheckEmptyCluster(t *testing.T) {
	client := newTestMockClient()

	result, err := Check(context.Background(), client)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Namespaces)
}
