package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRaw reads the manifest without decoding it, so validate can report YAML
// and schema errors itself.
func LoadRaw(ctx context.Context, path string) (Manifest, error) {
	return load(ctx, path, false)
}

// Load reads and decodes the manifest.
func Load(ctx context.Context, path string) (Manifest, error) {
	return load(ctx, path, true)
}

func load(ctx context.Context, path string, parse bool) (Manifest, error) {
	if err := ctx.Err(); err != nil {
		return Manifest{}, fmt.Errorf("load manifest: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, fmt.Errorf("manifest does not exist: %s: %w", path, err)
		}
		return Manifest{}, fmt.Errorf("read manifest: %s: %w", path, err)
	}

	m := Manifest{Path: path, Raw: raw}
	if parse {
		var spec Spec
		if err := yaml.Unmarshal(raw, &spec); err != nil {
			return Manifest{}, fmt.Errorf("parse yaml: %s: %w", path, err)
		}
		m.Spec = spec
	}
	return m, nil
}
