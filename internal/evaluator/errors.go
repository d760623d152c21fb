package evaluator

import (
	"fmt"
	"strings"
	"time"
)

// ConfigEvaluationError reports that the evaluator ran but did not produce a
// usable configuration: it exited non-zero, timed out, or printed output that
// could not be parsed.
type ConfigEvaluationError struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Timeout  time.Duration
	Err      error // parse failure, if any
}

func (e *ConfigEvaluationError) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("config evaluation timed out after %s", e.Timeout)
	case e.Err != nil:
		return fmt.Sprintf("config evaluation output unusable: %v", e.Err)
	}
	return fmt.Sprintf("config evaluation failed (exit %d): %s", e.ExitCode, e.Diagnostics())
}

func (e *ConfigEvaluationError) Unwrap() error {
	return e.Err
}

// Diagnostics returns the most useful evaluator text for an end user:
// stderr when present, otherwise stdout.
func (e *ConfigEvaluationError) Diagnostics() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.Stdout); s != "" {
		return s
	}
	if e.TimedOut {
		return fmt.Sprintf("evaluator timed out after %s", e.Timeout)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("evaluator exited with status %d", e.ExitCode)
}
