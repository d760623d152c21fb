package nextflow

import (
	"regexp"
	"sort"
	"strings"
)

// includeConfigPattern matches an includeConfig statement on its own line and
// captures everything after the keyword.
var includeConfigPattern = regexp.MustCompile(`(?im)^[ \t]*includeConfig(.*)$`)

// Launch-directory variables that may prefix an include path. They all refer
// to the directory holding the main descriptor.
var dirVariablePrefixes = []string{
	"${projectDir}/", "$projectDir/",
	"${baseDir}/", "$baseDir/",
	"${launchDir}/", "$launchDir/",
}

// Sanitize blanks every includeConfig line so the evaluator does not try to
// load files that are not on disk yet. The number of lines is preserved.
func Sanitize(text string) string {
	return includeConfigPattern.ReplaceAllString(text, "")
}

// DetectIncludes returns the distinct paths named by includeConfig statements
// in the original, unsanitized text, sorted.
func DetectIncludes(text string) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, m := range includeConfigPattern.FindAllStringSubmatch(text, -1) {
		p := includePath(m[1])
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// includePath cleans the raw text after the includeConfig keyword.
func includePath(raw string) string {
	s := strings.TrimSpace(raw)
	// includeConfig('conf/x.config') is the same call with explicit parentheses.
	if strings.HasPrefix(s, "(") {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "("), ")"))
	}
	if s == "" {
		return ""
	}
	// A quoted literal ends at its closing quote; anything after it, such as
	// a trailing comment, is not part of the path.
	if q := s[0]; q == '\'' || q == '"' {
		if end := strings.IndexByte(s[1:], q); end >= 0 {
			s = s[1 : end+1]
		}
	}
	s = strings.TrimSpace(strings.Trim(s, `'"`))
	for _, prefix := range dirVariablePrefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	return s
}
