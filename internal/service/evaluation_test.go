package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codozor/kubestrap/internal/config"
	"github.com/codozor/kubestrap/internal/platform"
)

func probeConfiguration(output string) config.Configuration {
	return config.Configuration{
		Detection: config.DetectionConfiguration{
			Source: config.SourceProbe,
			Probe: config.ProbeConfiguration{
				Command: []string{"sh", "-c", "printf '" + output + "'"},
				Timeout: "5s",
			},
		},
	}
}

// TestEvaluateNative tests the default runtime-based detection
func TestEvaluateNative(t *testing.T) {
	evaluation, err := Evaluate(context.Background(), config.Configuration{})

	require.NoError(t, err)
	assert.Equal(t, platform.Detect(), evaluation.Classification)
	assert.Equal(t, platform.ResolvePath(evaluation.Classification), evaluation.ConfigPath)
	assert.True(t, evaluation.Consistent())
}

// TestEvaluateProbeLinux tests a probe reporting Linux: both providers
// get the POSIX path
func TestEvaluateProbeLinux(t *testing.T) {
	evaluation, err := Evaluate(context.Background(), probeConfiguration(`{"os": "Linux"}`))

	require.NoError(t, err)
	assert.Equal(t, platform.Linux, evaluation.Classification)
	assert.Equal(t, `~/.kube/config`, evaluation.Kubernetes.ConfigPath)
	assert.Equal(t, `~/.kube/config`, evaluation.Helm.ConfigPath)
}

// TestEvaluateProbeWindows tests a probe reporting Windows: both
// providers get the Windows path
func TestEvaluateProbeWindows(t *testing.T) {
	evaluation, err := Evaluate(context.Background(), probeConfiguration(`{"os": "Windows"}`))

	require.NoError(t, err)
	assert.Equal(t, platform.Windows, evaluation.Classification)
	assert.Equal(t, `%USERPROFILE%\.kube\config`, evaluation.Kubernetes.ConfigPath)
	assert.Equal(t, `%USERPROFILE%\.kube\config`, evaluation.Helm.ConfigPath)
}

// TestEvaluateProbeDarwin tests that an unrecognized OS falls to the
// POSIX default
func TestEvaluateProbeDarwin(t *testing.T) {
	evaluation, err := Evaluate(context.Background(), probeConfiguration(`{"os": "Darwin"}`))

	require.NoError(t, err)
	assert.Equal(t, platform.Other, evaluation.Classification)
	assert.Equal(t, `~/.kube/config`, evaluation.Kubernetes.ConfigPath)
	assert.Equal(t, `~/.kube/config`, evaluation.Helm.ConfigPath)
}

// TestEvaluateProvidersIdentical tests that both provider configs are
// byte-identical within one evaluation
func TestEvaluateProvidersIdentical(t *testing.T) {
	for _, output := range []string{`{"os": "Linux"}`, `{"os": "Windows"}`, `{"os": "Darwin"}`} {
		evaluation, err := Evaluate(context.Background(), probeConfiguration(output))

		require.NoError(t, err)
		assert.Equal(t, evaluation.Kubernetes.ConfigPath, evaluation.Helm.ConfigPath)
		assert.True(t, evaluation.Consistent())
	}
}

// TestEvaluateProbeFailureNoPartialResult tests that a failing probe
// aborts before any provider config exists
func TestEvaluateProbeFailureNoPartialResult(t *testing.T) {
	cfg := config.Configuration{
		Detection: config.DetectionConfiguration{
			Source: config.SourceProbe,
			Probe: config.ProbeConfiguration{
				Command: []string{"/nonexistent/os-probe"},
			},
		},
	}

	evaluation, err := Evaluate(context.Background(), cfg)

	require.Error(t, err)
	assert.Nil(t, evaluation)
	assert.Equal(t, platform.ErrorTypeProbeExecution, platform.GetErrorType(err))
}

// TestEvaluateProbeMalformedNoPartialResult tests the abort on
// malformed probe output
func TestEvaluateProbeMalformedNoPartialResult(t *testing.T) {
	evaluation, err := Evaluate(context.Background(), probeConfiguration(`not json`))

	require.Error(t, err)
	assert.Nil(t, evaluation)
	assert.Equal(t, platform.ErrorTypeProbeOutput, platform.GetErrorType(err))
}

// TestEvaluateExplicitOverride tests that kubeconfig.path bypasses
// resolution and reaches both providers verbatim
func TestEvaluateExplicitOverride(t *testing.T) {
	cfg := config.Configuration{
		Kubeconfig: config.KubeconfigConfiguration{Path: "/etc/kubernetes/admin.conf"},
	}

	evaluation, err := Evaluate(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "/etc/kubernetes/admin.conf", evaluation.Kubernetes.ConfigPath)
	assert.Equal(t, "/etc/kubernetes/admin.conf", evaluation.Helm.ConfigPath)
}

// TestProvidersOrder tests the stable provider listing
func TestProvidersOrder(t *testing.T) {
	evaluation, err := Evaluate(context.Background(), config.Configuration{})
	require.NoError(t, err)

	providers := evaluation.Providers()

	require.Len(t, providers, 2)
	assert.Equal(t, "kubernetes", providers[0].Name)
	assert.Equal(t, "helm", providers[1].Name)
}
