// Package wdl validates WDL descriptors by delegating to womtool and maps its
// verdict onto the shared validation model.
package wdl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/me/langparse/internal/procgroup"
)

// ErrRecursiveImports is reported when the toolkit exhausts its stack while
// resolving imports, which happens when imports form a cycle.
var ErrRecursiveImports = errors.New("recursive imports")

// DefaultCommand invokes womtool from PATH. Deployments that ship the jar use
// e.g. ["java", "-jar", "/opt/womtool.jar"].
var DefaultCommand = []string{"womtool"}

// DefaultTimeout bounds a single womtool run.
const DefaultTimeout = 60 * time.Second

const (
	successLine      = "Success!"
	dependenciesLine = "List of Workflow dependencies is:"
	noDependencies   = "None"
	stackOverflow    = "StackOverflowError"
)

// Report is the toolkit's verdict on one descriptor.
type Report struct {
	Valid        bool
	Dependencies []string // absolute paths of imported files
	Message      string   // diagnostics when invalid
}

// Toolkit validates a WDL descriptor and resolves its imports.
type Toolkit interface {
	Validate(ctx context.Context, descriptorPath string) (*Report, error)
}

// Womtool runs "womtool validate -l" as a subprocess.
type Womtool struct {
	args    []string
	timeout time.Duration
	logger  *slog.Logger
}

// NewWomtool creates a toolkit running args (DefaultCommand when empty).
func NewWomtool(args []string, timeout time.Duration, logger *slog.Logger) *Womtool {
	if len(args) == 0 {
		args = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Womtool{
		args:    args,
		timeout: timeout,
		logger:  logger.With("component", "womtool"),
	}
}

// Validate runs womtool on descriptorPath. Invalid documents yield a Report
// with Valid=false; ErrRecursiveImports and launch failures are errors.
func (w *Womtool) Validate(ctx context.Context, descriptorPath string) (*Report, error) {
	runCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	argv := append(append([]string{}, w.args[1:]...), "validate", "-l", descriptorPath)
	cmd := procgroup.Command(runCtx, w.args[0], argv...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	runErr := cmd.Run()
	w.logger.Debug("womtool finished", "path", descriptorPath, "duration", time.Since(start).String())

	if strings.Contains(stderrBuf.String(), stackOverflow) || strings.Contains(stdoutBuf.String(), stackOverflow) {
		return nil, ErrRecursiveImports
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("womtool: %w", ctx.Err())
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &Report{Message: fmt.Sprintf("womtool timed out after %s", w.timeout)}, nil
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		return &Report{Message: diagnostics(stdoutBuf.String(), stderrBuf.String(), exitErr.ExitCode())}, nil
	default:
		return nil, fmt.Errorf("run %s: %w", w.args[0], runErr)
	}

	deps, ok := ParseValidateOutput(stdoutBuf.String())
	if !ok {
		return &Report{Message: diagnostics(stdoutBuf.String(), stderrBuf.String(), 0)}, nil
	}
	return &Report{Valid: true, Dependencies: deps}, nil
}

// ParseValidateOutput reads the stdout of "womtool validate -l". The first two
// lines are a fixed preamble; the remaining lines are import paths, or the
// single word "None". ok is false when the preamble is missing.
func ParseValidateOutput(stdout string) (deps []string, ok bool) {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(stdout))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 || lines[0] != successLine {
		return nil, false
	}
	if len(lines) == 1 {
		return []string{}, true
	}
	if lines[1] != dependenciesLine {
		return nil, false
	}
	deps = []string{}
	for _, l := range lines[2:] {
		if l == noDependencies {
			continue
		}
		deps = append(deps, l)
	}
	return deps, true
}

func diagnostics(stdout, stderr string, exitCode int) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(stdout); s != "" {
		return s
	}
	return fmt.Sprintf("womtool exited with status %d", exitCode)
}
