package evaluator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/me/langparse/internal/procgroup"
)

// DescriptorFileName is the name the evaluator expects the descriptor to have
// inside its otherwise empty working directory.
const DescriptorFileName = "nextflow.config"

// DefaultCommand is the evaluator invocation used when none is configured.
var DefaultCommand = []string{"nextflow", "config", "-properties"}

// Evaluator runs the config evaluator in workDir and returns its standard
// output. A non-zero exit must be reported as *ConfigEvaluationError.
type Evaluator interface {
	Evaluate(ctx context.Context, workDir string) ([]byte, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, workDir string) ([]byte, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, workDir string) ([]byte, error) {
	return f(ctx, workDir)
}

// CommandEvaluator runs the evaluator as a local OS process.
type CommandEvaluator struct {
	args   []string
	env    []string
	logger *slog.Logger
}

// NewCommandEvaluator creates an evaluator running args. An empty args uses
// DefaultCommand. env entries are appended to the inherited environment.
func NewCommandEvaluator(args []string, env []string, logger *slog.Logger) *CommandEvaluator {
	if len(args) == 0 {
		args = DefaultCommand
	}
	return &CommandEvaluator{
		args:   args,
		env:    env,
		logger: logger.With("component", "config-evaluator"),
	}
}

// Evaluate runs the command with workDir as its working directory.
func (e *CommandEvaluator) Evaluate(ctx context.Context, workDir string) ([]byte, error) {
	cmd := procgroup.Command(ctx, e.args[0], e.args[1:]...)
	cmd.Dir = workDir
	if len(e.env) > 0 {
		cmd.Env = append(cmd.Environ(), e.env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		e.logger.Debug("evaluator exited non-zero",
			"exit_code", exitErr.ExitCode(),
			"stderr_bytes", stderrBuf.Len(),
		)
		return stdoutBuf.Bytes(), &ConfigEvaluationError{
			ExitCode: exitErr.ExitCode(),
			Stdout:   stdoutBuf.String(),
			Stderr:   stderrBuf.String(),
		}
	default:
		// Binary missing, permission denied and similar launch failures.
		return nil, fmt.Errorf("run %s: %w", e.args[0], runErr)
	}
	return stdoutBuf.Bytes(), nil
}
