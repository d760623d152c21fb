package langparse

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/langparse/internal/evaluator"
	"github.com/me/langparse/internal/nextflow"
	"github.com/me/langparse/internal/repo"
	"github.com/me/langparse/internal/wdl"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCloner materializes files into a fresh directory on every Clone.
type fakeCloner struct {
	t      *testing.T
	files  map[string]string
	commit string
	err    error
	roots  []string
}

func (c *fakeCloner) Clone(_ context.Context, uri, branch string) (*repo.Checkout, error) {
	if c.err != nil {
		return nil, &repo.CloneError{URI: uri, Branch: branch, Err: c.err}
	}
	root, err := os.MkdirTemp(c.t.TempDir(), repo.CloneDirPattern)
	if err != nil {
		c.t.Fatal(err)
	}
	for rel, content := range c.files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			c.t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			c.t.Fatal(err)
		}
	}
	c.roots = append(c.roots, root)
	return &repo.Checkout{Root: root, Commit: c.commit}, nil
}

type extractorFunc func(ctx context.Context, text string) (*evaluator.Mapping, error)

func (f extractorFunc) Extract(ctx context.Context, text string) (*evaluator.Mapping, error) {
	return f(ctx, text)
}

// manifestExtractor rejects configs that still carry includeConfig lines and
// otherwise returns props.
func manifestExtractor(props string) extractorFunc {
	return func(_ context.Context, text string) (*evaluator.Mapping, error) {
		if strings.Contains(text, "includeConfig") {
			return nil, &evaluator.ConfigEvaluationError{ExitCode: 1, Stderr: "No such file: conf/base.config"}
		}
		return evaluator.ParseProperties([]byte(props))
	}
}

type toolkitFunc func(ctx context.Context, path string) (*wdl.Report, error)

func (f toolkitFunc) Validate(ctx context.Context, path string) (*wdl.Report, error) {
	return f(ctx, path)
}

func newNextflow(x nextflow.ConfigExtractor) *nextflow.Resolver {
	return nextflow.NewResolver(x, newTestLogger())
}

func newWDL(tk wdl.Toolkit) *wdl.Resolver {
	return wdl.NewResolver(tk, newTestLogger())
}
