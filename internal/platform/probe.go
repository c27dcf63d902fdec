package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os/exec"
	"time"
)

// DefaultProbeTimeout bounds a probe run when no timeout is configured.
// A probe that hangs past it fails the evaluation instead of blocking
// it forever.
const DefaultProbeTimeout = 10 * time.Second

// probeReport is the probe wire contract: a single JSON object with
// exactly one string field naming the OS.
type probeReport struct {
	OS string `json:"os"`
}

// Probe obtains the host classification from an external program
// instead of the Go runtime. The program must print one JSON object of
// the form {"os": "<name>"} on stdout.
type Probe struct {
	command []string
	timeout time.Duration
}

// NewProbe creates a probe for the given argv. A zero or negative
// timeout falls back to DefaultProbeTimeout.
func NewProbe(command []string, timeout time.Duration) (*Probe, error) {
	if len(command) == 0 {
		return nil, &ResolveError{
			Type:    ErrorTypeProbeExecution,
			Message: "probe command is empty",
		}
	}

	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	return &Probe{command: command, timeout: timeout}, nil
}

// Run executes the probe and classifies its report. Execution and
// output failures are both fatal to the caller's evaluation.
func (p *Probe) Run(ctx context.Context) (Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)

	out, err := cmd.Output()
	if err != nil {
		return Other, &ResolveError{
			Type:    ErrorTypeProbeExecution,
			Message: "probe execution failed",
			Err:     err,
		}
	}

	report, err := parseReport(out)
	if err != nil {
		return Other, err
	}

	return Classify(report.OS), nil
}

// parseReport decodes probe output strictly: one object, one known
// field, nothing trailing.
func parseReport(out []byte) (probeReport, error) {
	var report probeReport

	dec := json.NewDecoder(bytes.NewReader(out))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&report); err != nil {
		return report, &ResolveError{
			Type:    ErrorTypeProbeOutput,
			Message: "probe output is not a valid JSON object",
			Err:     err,
		}
	}

	if report.OS == "" {
		return report, &ResolveError{
			Type:    ErrorTypeProbeOutput,
			Message: `probe output is missing the "os" field`,
		}
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return report, &ResolveError{
			Type:    ErrorTypeProbeOutput,
			Message: "probe output has trailing content after the report object",
		}
	}

	return report, nil
}
