package scaffold

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/madwolfa/databricks-demo/internal/manifest"
	"github.com/madwolfa/databricks-demo/internal/schema"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	errEmptyJobName   = errors.New("job name is empty")
	errManifestExists = errors.New("manifest already exists")
)

type InitOptions struct {
	Path     string
	JobName  string
	Timezone string
}

type templateData struct {
	SchemaURL string
	JobName   string
	Timezone  string
}

// InitManifest writes a starter schedule manifest. It never overwrites an
// existing file.
func InitManifest(ctx context.Context, opts InitOptions) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if strings.TrimSpace(opts.JobName) == "" {
		return errEmptyJobName
	}
	if strings.TrimSpace(opts.Path) == "" {
		opts.Path = manifest.DefaultPath
	}
	if strings.TrimSpace(opts.Timezone) == "" {
		opts.Timezone = "UTC"
	}

	if _, err := os.Stat(opts.Path); err == nil {
		return fmt.Errorf("%w: %s", errManifestExists, opts.Path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat manifest: %s: %w", opts.Path, err)
	}
	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %s: %w", dir, err)
		}
	}

	data := templateData{SchemaURL: schema.V0URL, JobName: opts.JobName, Timezone: opts.Timezone}
	b, err := renderTemplate("schedules.yaml.tmpl", data)
	if err != nil {
		return err
	}
	return writeExclusive(opts.Path, 0o644, b)
}

func renderTemplate(name string, data templateData) ([]byte, error) {
	p := filepath.Join("templates", name)
	t, err := template.New(name).Option("missingkey=error").ParseFS(templatesFS, p)
	if err != nil {
		return nil, fmt.Errorf("parse template: %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func writeExclusive(path string, perm fs.FileMode, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create file: %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("write file: %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %s: %w", path, err)
	}
	return nil
}
