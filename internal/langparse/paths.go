package langparse

import (
	"path/filepath"
	"strings"
)

// NormalizePaths rewrites paths under cloneRoot as paths relative to it,
// slash separated. Paths outside cloneRoot, including relative ones, are
// returned unchanged.
func NormalizePaths(paths []string, cloneRoot string) []string {
	out := make([]string, 0, len(paths))
	root := strings.TrimSuffix(filepath.Clean(cloneRoot), string(filepath.Separator))
	for _, p := range paths {
		out = append(out, normalizePath(p, root))
	}
	return out
}

func normalizePath(p, root string) string {
	if root == "" || root == "." {
		return p
	}
	rest, ok := strings.CutPrefix(p, root)
	if !ok {
		return p
	}
	if !strings.HasPrefix(rest, string(filepath.Separator)) {
		// A sibling such as /tmp/clonedRepository12-other.
		return p
	}
	return filepath.ToSlash(strings.TrimPrefix(rest, string(filepath.Separator)))
}

// descriptorPath joins a repository-relative descriptor path onto root and
// reports false when the result would leave root.
func descriptorPath(root, rel string) (string, bool) {
	joined := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	r, err := filepath.Rel(root, joined)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return joined, true
}
