package nextflow

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// moduleIncludePattern matches a DSL2 include statement such as
//
//	include { FASTQC; MULTIQC as QC } from './modules/qc'
//
// and captures the source path.
var moduleIncludePattern = regexp.MustCompile(`(?ms)^[ \t]*include\s*\{.*?\}\s*from\s*['"]([^'"]+)['"]`)

// DetectModuleImports follows DSL2 include statements starting at the main
// script and returns every local module file reached, relative to
// descriptorDir. Only files that exist and lie inside descriptorDir are
// reported; remote and plugin includes are ignored. Include cycles terminate.
func DetectModuleImports(descriptorDir, mainScript string) []string {
	root := filepath.Clean(descriptorDir)
	start := filepath.FromSlash(mainScript)
	if !filepath.IsAbs(start) {
		start = filepath.Join(root, start)
	}

	visited := map[string]bool{}
	var found []string

	var visit func(script string)
	visit = func(script string) {
		if visited[script] {
			return
		}
		visited[script] = true

		data, err := os.ReadFile(script)
		if err != nil {
			return
		}
		for _, m := range moduleIncludePattern.FindAllStringSubmatch(string(data), -1) {
			target, ok := resolveModule(filepath.Dir(script), m[1])
			if !ok {
				continue
			}
			rel, err := filepath.Rel(root, target)
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				continue
			}
			if !visited[target] {
				found = append(found, filepath.ToSlash(rel))
			}
			visit(target)
		}
	}
	visit(start)

	sort.Strings(found)
	return found
}

// resolveModule maps an include source to a file on disk. Sources without a
// .nf suffix name either "<src>.nf" or a module directory holding main.nf.
func resolveModule(fromDir, src string) (string, bool) {
	if !strings.HasPrefix(src, "./") && !strings.HasPrefix(src, "../") {
		return "", false
	}
	base := filepath.Join(fromDir, filepath.FromSlash(src))
	candidates := []string{base}
	if !strings.HasSuffix(src, ".nf") {
		candidates = []string{base + ".nf", filepath.Join(base, DefaultMainScript)}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}
