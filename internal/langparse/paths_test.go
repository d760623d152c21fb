package langparse

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizePaths(t *testing.T) {
	root := filepath.FromSlash("/tmp/clonedRepository123")
	in := []string{
		filepath.FromSlash("/tmp/clonedRepository123/tasks/align.wdl"),
		filepath.FromSlash("/tmp/clonedRepository123/a/b/c.wdl"),
		"conf/base.config",
		filepath.FromSlash("/tmp/clonedRepository1234/other.wdl"),
		filepath.FromSlash("/elsewhere/x.wdl"),
	}
	want := []string{
		"tasks/align.wdl",
		"a/b/c.wdl",
		"conf/base.config",
		filepath.FromSlash("/tmp/clonedRepository1234/other.wdl"),
		filepath.FromSlash("/elsewhere/x.wdl"),
	}

	got := NormalizePaths(in, root)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizePaths mismatch (-want +got):\n%s", diff)
	}

	// Trailing separator on the root makes no difference.
	got = NormalizePaths(in, root+string(filepath.Separator))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizePaths with trailing separator mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePaths_Empty(t *testing.T) {
	if got := NormalizePaths(nil, "/tmp/x"); len(got) != 0 || got == nil {
		t.Errorf("NormalizePaths(nil) = %#v, want empty non-nil", got)
	}
}

func TestDescriptorPath(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		rel  string
		want string
		ok   bool
	}{
		{"nextflow.config", filepath.Join(root, "nextflow.config"), true},
		{"/nextflow.config", filepath.Join(root, "nextflow.config"), true},
		{"workflows/rnaseq/main.wdl", filepath.Join(root, "workflows", "rnaseq", "main.wdl"), true},
		{"a/../b.wdl", filepath.Join(root, "b.wdl"), true},
		{"../outside.wdl", "", false},
		{"a/../../outside.wdl", "", false},
	}
	for _, tt := range tests {
		got, ok := descriptorPath(root, tt.rel)
		if ok != tt.ok || got != tt.want {
			t.Errorf("descriptorPath(%q) = %q, %v; want %q, %v", tt.rel, got, ok, tt.want, tt.ok)
		}
	}
}
