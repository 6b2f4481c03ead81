package scaffold

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/madwolfa/databricks-demo/internal/manifest"
	"github.com/madwolfa/databricks-demo/internal/validate"
)

func TestInitManifest_WritesValidManifest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "conf", "schedules.yaml")
	if err := InitManifest(ctx, InitOptions{Path: path, JobName: "SQL Copy Job", Timezone: "Etc/UTC"}); err != nil {
		t.Fatalf("InitManifest: %v", err)
	}

	m, err := manifest.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Spec.Schedules) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.Spec.Schedules))
	}
	e := m.Spec.Schedules[0]
	if e.Job != "SQL Copy Job" || e.Timezone != "Etc/UTC" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if err := validate.Manifest(ctx, m); err != nil {
		t.Fatalf("scaffolded manifest does not validate: %v", err)
	}
}

func TestInitManifest_RefusesOverwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "schedules.yaml")
	if err := InitManifest(ctx, InitOptions{Path: path, JobName: "a"}); err != nil {
		t.Fatalf("InitManifest: %v", err)
	}
	if err := InitManifest(ctx, InitOptions{Path: path, JobName: "a"}); !errors.Is(err, errManifestExists) {
		t.Fatalf("expected errManifestExists, got %v", err)
	}
}

func TestInitManifest_EmptyJobName(t *testing.T) {
	t.Parallel()

	if err := InitManifest(context.Background(), InitOptions{Path: filepath.Join(t.TempDir(), "s.yaml")}); !errors.Is(err, errEmptyJobName) {
		t.Fatalf("expected errEmptyJobName, got %v", err)
	}
}
