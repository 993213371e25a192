package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xetl-run/xetl/internal/adapters/manifest"
	"github.com/xetl-run/xetl/internal/adapters/registry"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	sub := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "manifest.yml"), []byte(content), 0o644))
}

func TestDiscover_IndexesByName(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "download", "name: download\nrun:\n  command: curl\n")
	writeManifest(t, root, "upload", "name: upload\nrun:\n  command: scp\n")

	reg, err := registry.Discover([]string{root}, manifest.NewLoader())
	require.NoError(t, err)

	_, ok := reg.Lookup("download")
	require.True(t, ok)
	_, ok = reg.Lookup("upload")
	require.True(t, ok)
	require.Equal(t, []string{"download", "upload"}, reg.Names())
}

func TestRegistry_LookupMissReturnsFalse(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "download", "name: download\nrun:\n  command: curl\n")

	reg, err := registry.Discover([]string{root}, manifest.NewLoader())
	require.NoError(t, err)

	task, ok := reg.Lookup("nope")
	require.False(t, ok)
	require.Nil(t, task)
}

func TestDiscover_DuplicateNameFails(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "a", "name: shared\nrun:\n  command: a\n")
	writeManifest(t, root, "b", "name: shared\nrun:\n  command: b\n")

	_, err := registry.Discover([]string{root}, manifest.NewLoader())
	require.Error(t, err)
}

func TestDiscover_IdenticalContentDifferentPathsProducesEqualDigest(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeManifest(t, rootA, "x", "name: same\nrun:\n  command: echo hi\n")
	writeManifest(t, rootB, "y", "name: same\nrun:\n  command: echo hi\n")

	regA, err := registry.Discover([]string{rootA}, manifest.NewLoader())
	require.NoError(t, err)
	regB, err := registry.Discover([]string{rootB}, manifest.NewLoader())
	require.NoError(t, err)

	taskA, _ := regA.Lookup("same")
	taskB, _ := regB.Lookup("same")
	require.Equal(t, taskA.Digest(), taskB.Digest())
	require.NotEqual(t, taskA.Path, taskB.Path)
}
