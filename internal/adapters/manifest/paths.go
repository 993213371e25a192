package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xetl-run/xetl/internal/core/domain"
	"go.trai.ch/zerr"
)

// resolvePath expands ~ and environment variables in p, then makes it
// absolute relative to baseDir if it isn't already.
func resolvePath(p, baseDir string) string {
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(baseDir, p))
}

// requireDir checks that path exists and is a directory, failing with
// domain.ErrPathError otherwise.
func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.With(domain.ErrPathError, "path", path), "cause", err)
	}
	if !info.IsDir() {
		return zerr.With(zerr.With(domain.ErrPathError, "path", path), "reason", "not a directory")
	}
	return nil
}
