// Package descriptor loads main workflow descriptors from a checkout.
package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// MessageFileNotFound is the validation message for an absent descriptor.
const MessageFileNotFound = "File not found"

// ErrNotFound is returned when the main descriptor does not exist.
var ErrNotFound = errors.New("descriptor not found")

// Descriptor is the raw content of a main descriptor and its absolute path.
type Descriptor struct {
	Path    string
	Content string
}

// Read loads the descriptor at path. A missing file, or a directory in its
// place, yields ErrNotFound.
func Read(path string) (Descriptor, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return Descriptor{}, fmt.Errorf("stat descriptor: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("read descriptor: %w", err)
	}
	return Descriptor{Path: path, Content: string(data)}, nil
}
