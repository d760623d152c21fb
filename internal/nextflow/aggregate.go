package nextflow

import (
	"path"

	"github.com/me/langparse/pkg/model"
)

// Aggregate unions include paths, the main script and any further discovered
// file lists into one deduplicated set. Paths are cleaned first so that
// "./main.nf" and "main.nf" count once.
func Aggregate(includes []string, manifest Manifest, discovered ...[]string) *model.SecondaryFileSet {
	set := model.NewSecondaryFileSet()
	add := func(paths ...string) {
		for _, p := range paths {
			if p != "" {
				set.Add(path.Clean(p))
			}
		}
	}
	add(includes...)
	add(manifest.MainScript)
	for _, paths := range discovered {
		add(paths...)
	}
	return set
}
