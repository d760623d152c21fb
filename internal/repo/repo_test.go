package repo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// initRepo creates a repository with one commit on master and returns its
// path and the commit hash.
func initRepo(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack not available")
	}
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	wt, err := r.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		full := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(1700000000, 0)},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return dir, hash.String()
}

func TestGitCloner_Clone(t *testing.T) {
	src, commit := initRepo(t, map[string]string{
		"main.nf":         "workflow {}\n",
		"nextflow.config": "manifest { mainScript = 'main.nf' }\n",
	})
	work := t.TempDir()
	c := NewGitCloner(work, newTestLogger(), WithDepth(0))

	co, err := c.Clone(context.Background(), src, "master")
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if co.Commit != commit {
		t.Errorf("Commit = %s, want %s", co.Commit, commit)
	}
	if filepath.Dir(co.Root) != work || !strings.HasPrefix(filepath.Base(co.Root), CloneDirPattern) {
		t.Errorf("Root = %s, want a %s* dir under %s", co.Root, CloneDirPattern, work)
	}
	data, err := os.ReadFile(filepath.Join(co.Root, "nextflow.config"))
	if err != nil {
		t.Fatalf("read cloned file: %v", err)
	}
	if !strings.Contains(string(data), "mainScript") {
		t.Errorf("unexpected content %q", data)
	}

	if err := co.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(co.Root); !os.IsNotExist(err) {
		t.Errorf("checkout still present after Remove")
	}
}

func TestGitCloner_MissingBranch(t *testing.T) {
	src, _ := initRepo(t, map[string]string{"main.wdl": "version 1.0\n"})
	work := t.TempDir()
	c := NewGitCloner(work, newTestLogger(), WithDepth(0))

	_, err := c.Clone(context.Background(), src, "does-not-exist")
	var ce *CloneError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CloneError", err)
	}
	if ce.Branch != "does-not-exist" {
		t.Errorf("Branch = %q", ce.Branch)
	}
	entries, _ := os.ReadDir(work)
	if len(entries) != 0 {
		t.Errorf("work dir not cleaned up: %d entries", len(entries))
	}
}

func TestGitCloner_BadURI(t *testing.T) {
	work := t.TempDir()
	c := NewGitCloner(work, newTestLogger())

	_, err := c.Clone(context.Background(), filepath.Join(t.TempDir(), "nope"), "main")
	var ce *CloneError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CloneError", err)
	}
	entries, _ := os.ReadDir(work)
	if len(entries) != 0 {
		t.Errorf("work dir not cleaned up: %d entries", len(entries))
	}
}

func TestCheckout_RemoveNil(t *testing.T) {
	var co *Checkout
	if err := co.Remove(); err != nil {
		t.Errorf("Remove on nil: %v", err)
	}
}
