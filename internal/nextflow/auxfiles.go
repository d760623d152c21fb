package nextflow

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// AuxiliaryDirs are the directories next to the descriptor whose files are
// made available to every process: bin/ is put on PATH and lib/ on the
// script classpath.
var AuxiliaryDirs = []string{"bin", "lib"}

// ScanAuxiliary lists the regular files directly inside the dirName sibling of
// descriptorPath, as "<dirName>/<file>". A missing or unreadable directory
// yields an empty slice.
func ScanAuxiliary(descriptorPath, dirName string) []string {
	dir := filepath.Join(filepath.Dir(descriptorPath), dirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			// Follow links; a link to a directory or a dangling link is skipped.
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || info.IsDir() {
				continue
			}
		}
		files = append(files, path.Join(dirName, e.Name()))
	}
	return files
}
