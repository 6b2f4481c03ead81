package validate

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madwolfa/databricks-demo/internal/manifest"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

func mustSchema(t *testing.T, schemaJSON string) *jsonschema.Schema {
	t.Helper()
	c := jsonschema.NewCompiler()
	if err := c.AddResource("mem://schema", mustUnmarshalJSON(t, schemaJSON)); err != nil {
		t.Fatalf("AddResource: %v", err)
	}
	return c.MustCompile("mem://schema")
}

func mustUnmarshalJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return v
}

const header = "$schema: \"https://github.com/madwolfa/databricks-demo/schedules.v0.json\"\n"

func TestCheck_OK(t *testing.T) {
	t.Parallel()

	m := manifest.Manifest{Path: "schedules.yaml", Raw: []byte(header + "schedules:\n  - job: SQL Copy Job\n    cron: \"0 30 9 ? * MON-FRI\"\n    timezone: UTC\n    pause_status: UNPAUSED\n")}
	if errs := Check(context.Background(), mustSchema(t, `{}`), m); len(errs) != 0 {
		t.Fatalf("expected no errors, got %d: %v", len(errs), errs)
	}
}

func TestCheck_EntryErrors(t *testing.T) {
	t.Parallel()

	raw := header + "schedules:\n" +
		"  - job: a\n    cron: \"0 30 9 * *\"\n" +
		"  - job: a\n    cron: \"0 30 9 * * ?\"\n" +
		"  - job: b\n    cron: \"0 30 9 * * ?\"\n    timezone: Mars/Olympus\n    pause_status: STOPPED\n"
	errs := Check(context.Background(), mustSchema(t, `{}`), manifest.Manifest{Path: "s.yaml", Raw: []byte(raw)})

	want := []string{"expected 6 fields", "duplicate job", "unknown timezone", "pause_status must be"}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(errs), errs)
	}
	for i, w := range want {
		if !strings.Contains(errs[i].Msg, w) {
			t.Fatalf("error %d: expected %q in %q", i, w, errs[i].Msg)
		}
	}
	if errs[1].Entry != 1 || errs[1].Job != "a" {
		t.Fatalf("unexpected duplicate error: %+v", errs[1])
	}
}

func TestCheck_FileErrors(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{}`)
	if errs := Check(context.Background(), s, manifest.Manifest{Path: "x", Raw: []byte("  \n")}); len(errs) != 1 {
		t.Fatalf("expected empty manifest error, got %v", errs)
	}
	errs := Check(context.Background(), s, manifest.Manifest{Path: "x", Raw: []byte("schedules: []\n")})
	if len(errs) != 2 {
		t.Fatalf("expected missing $schema and no schedules, got %v", errs)
	}
}

func TestManifest_EmbeddedSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schedules.yaml")
	if err := os.WriteFile(path, []byte(header+"schedules:\n  - job: a\n    cron: \"0 0 12 * * ?\"\n    unknown: 1\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	m, err := manifest.LoadRaw(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	err = Manifest(context.Background(), m)
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	if !strings.Contains(verrs[0].Msg, "JSON schema validation failed") {
		t.Fatalf("expected schema error, got %v", verrs)
	}
}
