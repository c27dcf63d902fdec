package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"k8s.io/client-go/util/homedir"
)

// Classification identifies the host operating system family for
// kubeconfig path resolution. Anything that is neither Windows nor
// Linux is Other and resolves like a POSIX host.
type Classification int

const (
	Other Classification = iota
	Linux
	Windows
)

const (
	// PosixKubeconfig is the default kubeconfig location on POSIX hosts.
	// The ~ prefix is kept literal until ExpandPath.
	PosixKubeconfig = `~/.kube/config`

	// WindowsKubeconfig is the default kubeconfig location on Windows.
	// The %USERPROFILE% prefix is kept literal until ExpandPath.
	WindowsKubeconfig = `%USERPROFILE%\.kube\config`
)

// String implements fmt.Stringer.
func (c Classification) String() string {
	switch c {
	case Linux:
		return "Linux"
	case Windows:
		return "Windows"
	default:
		return "Other"
	}
}

// Detect classifies the host via the Go runtime. This is the default
// detection source; it cannot fail.
func Detect() Classification {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "linux":
		return Linux
	default:
		return Other
	}
}

// Classify maps an OS name reported by an external probe to a
// Classification. Names must match exactly: anything other than
// "Windows" or "Linux" (including values like "Darwin") is Other.
func Classify(name string) Classification {
	switch name {
	case "Windows":
		return Windows
	case "Linux":
		return Linux
	default:
		return Other
	}
}

// ResolvePath maps a classification to the default kubeconfig location
// for that platform. Pure and total: every classification resolves,
// non-Windows hosts all share the POSIX default. The returned string is
// literal; ~ and %USERPROFILE% are not expanded here.
func ResolvePath(c Classification) string {
	return lo.Ternary(c == Windows, WindowsKubeconfig, PosixKubeconfig)
}

// ExpandPath turns a literal kubeconfig path into a real filesystem
// path. A KUBECONFIG environment variable takes precedence over the
// resolved default. Paths without a known prefix pass through unchanged.
func ExpandPath(path string) (string, error) {
	if kubeconfig := os.Getenv("KUBECONFIG"); kubeconfig != "" {
		return kubeconfig, nil
	}

	switch {
	case strings.HasPrefix(path, "~"):
		home := homedir.HomeDir()
		if home == "" {
			return "", &ResolveError{
				Type:    ErrorTypeEnvironment,
				Message: "cannot expand ~: home directory is not known",
			}
		}
		return joinSegments(home, strings.TrimPrefix(path, "~"), "/"), nil

	case strings.HasPrefix(path, "%USERPROFILE%"):
		profile := os.Getenv("USERPROFILE")
		if profile == "" {
			return "", &ResolveError{
				Type:    ErrorTypeEnvironment,
				Message: "cannot expand %USERPROFILE%: environment variable is not set",
			}
		}
		return joinSegments(profile, strings.TrimPrefix(path, "%USERPROFILE%"), `\`), nil

	default:
		return path, nil
	}
}

// joinSegments splits rest on the platform separator it was written
// with and joins everything below base with the host separator.
func joinSegments(base string, rest string, sep string) string {
	parts := strings.Split(strings.Trim(rest, sep), sep)

	return filepath.Join(append([]string{base}, parts...)...)
}
