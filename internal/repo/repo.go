// Package repo obtains working copies of remote git repositories.
package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CloneDirPattern is the MkdirTemp pattern for checkout directories.
const CloneDirPattern = "clonedRepository"

// Checkout is a working copy of one branch.
type Checkout struct {
	Root   string // absolute path of the working tree
	Commit string // hash of the checked out HEAD
}

// Remove deletes the working tree.
func (c *Checkout) Remove() error {
	if c == nil || c.Root == "" {
		return nil
	}
	return os.RemoveAll(c.Root)
}

// CloneError reports a repository that could not be cloned.
type CloneError struct {
	URI    string
	Branch string
	Err    error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("clone %s (branch %s): %v", e.URI, e.Branch, e.Err)
}

func (e *CloneError) Unwrap() error { return e.Err }

// Cloner produces a Checkout of a branch.
type Cloner interface {
	Clone(ctx context.Context, uri, branch string) (*Checkout, error)
}

// GitCloner clones with go-git into fresh directories under WorkDir.
type GitCloner struct {
	workDir string
	depth   int
	logger  *slog.Logger
}

// Option configures a GitCloner.
type Option func(*GitCloner)

// WithDepth sets the clone depth. Zero fetches full history.
func WithDepth(depth int) Option {
	return func(g *GitCloner) { g.depth = depth }
}

// NewGitCloner creates a cloner rooted at workDir (the system temp dir when empty).
func NewGitCloner(workDir string, logger *slog.Logger, opts ...Option) *GitCloner {
	g := &GitCloner{
		workDir: workDir,
		depth:   1,
		logger:  logger.With("component", "git-cloner"),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Clone fetches only branch and checks it out. The caller owns the returned
// Checkout and must Remove it.
func (g *GitCloner) Clone(ctx context.Context, uri, branch string) (*Checkout, error) {
	if g.workDir != "" {
		if err := os.MkdirAll(g.workDir, 0o755); err != nil {
			return nil, fmt.Errorf("create work dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(g.workDir, CloneDirPattern)
	if err != nil {
		return nil, fmt.Errorf("create clone dir: %w", err)
	}

	start := time.Now()
	r, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           uri,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         g.depth,
		Tags:          git.NoTags,
	})
	if err != nil {
		os.RemoveAll(dir)
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
		return nil, &CloneError{URI: uri, Branch: branch, Err: err}
	}

	head, err := r.Head()
	if err != nil {
		os.RemoveAll(dir)
		return nil, &CloneError{URI: uri, Branch: branch, Err: fmt.Errorf("resolve HEAD: %w", err)}
	}

	g.logger.Info("repository cloned",
		"uri", uri,
		"branch", branch,
		"commit", head.Hash().String(),
		"duration", time.Since(start).String(),
	)
	return &Checkout{Root: dir, Commit: head.Hash().String()}, nil
}
