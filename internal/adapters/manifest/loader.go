// Package manifest implements the manifest loader: parsing, schema
// validation, and coercion of on-disk YAML job and task manifests into
// typed domain.Job and domain.Task values.
package manifest

import (
	"bytes"
	"os"

	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.JobLoader and ports.TaskLoader by reading YAML
// documents from disk.
type Loader struct{}

var (
	_ ports.JobLoader  = (*Loader)(nil)
	_ ports.TaskLoader = (*Loader)(nil)
)

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// decodeStrict reads data twice: once loosely, to tell a syntax error
// (MalformedManifest) apart from a schema error, and once with KnownFields
// enabled so that any key the DTO doesn't recognise surfaces as
// SchemaViolation rather than being silently dropped.
func decodeStrict(path string, data []byte, dto any) error {
	var probe yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return zerr.With(zerr.With(domain.ErrMalformedManifest, "path", path), "cause", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(dto); err != nil {
		return zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "cause", err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrPathError, "path", path), "cause", err)
	}
	return data, nil
}
