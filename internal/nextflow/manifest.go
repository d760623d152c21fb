package nextflow

import (
	"strings"

	"github.com/me/langparse/internal/evaluator"
)

// DefaultMainScript is used when the manifest does not name a main script.
const DefaultMainScript = "main.nf"

const (
	keyMainScript  = "manifest.mainScript"
	keyAuthor      = "manifest.author"
	keyDescription = "manifest.description"
)

// Manifest is the workflow metadata read from the manifest scope.
type Manifest struct {
	MainScript  string
	Authors     []string // never nil
	Description *string  // nil when not declared
}

// ReadManifest extracts manifest fields from m. m may be nil when the
// evaluator failed; every field then takes its default.
func ReadManifest(m *evaluator.Mapping) Manifest {
	man := Manifest{
		MainScript: DefaultMainScript,
		Authors:    []string{},
	}
	if s := strings.TrimSpace(m.String(keyMainScript, "")); s != "" {
		man.MainScript = s
	}
	if raw, ok := m.Lookup(keyAuthor); ok {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				man.Authors = append(man.Authors, a)
			}
		}
	}
	if d, ok := m.Lookup(keyDescription); ok {
		man.Description = &d
	}
	return man
}
