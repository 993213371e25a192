// Package fs provides filesystem adapters used by the task registry.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// manifestFilename is the exact, case-sensitive name a task manifest must
// have to be discovered while walking a task search path.
const manifestFilename = "manifest.yml"

// Walker walks task search paths looking for task manifests.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkManifests yields the path of every file named manifest.yml under root,
// skipping .git and .jj directories. Within a directory, entries are visited
// in the lexicographic order filepath.WalkDir already guarantees.
func (w *Walker) WalkManifests(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if name := d.Name(); name == ".git" || name == ".jj" {
					return filepath.SkipDir
				}
				return nil
			}

			if d.Name() != manifestFilename {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
