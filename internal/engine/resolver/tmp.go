package resolver

import (
	"os"
	"path/filepath"

	"github.com/xetl-run/xetl/internal/core/domain"
	"go.trai.ch/zerr"
)

// tmpFactory lazily allocates directories under root, one per distinct key,
// reusing the same directory for repeated references to the same key within
// the lifetime of one factory. A fresh factory is created per command so
// that allocation is scoped to a single env-resolution pass.
type tmpFactory struct {
	root  string
	dirs  map[string]string
	count int
}

func newTmpFactory(root string) *tmpFactory {
	return &tmpFactory{root: root, dirs: map[string]string{}}
}

func (f *tmpFactory) resolve(path []string) (string, error) {
	if len(path) != 1 {
		return "", zerr.With(domain.ErrPlaceholderReferenceError, "reason", "tmp requires exactly one key")
	}
	key := path[0]
	if dir, ok := f.dirs[key]; ok {
		return dir, nil
	}
	f.count++
	dir := filepath.Join(f.root, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to allocate tmp directory"), "key", key)
	}
	f.dirs[key] = dir
	return dir, nil
}
