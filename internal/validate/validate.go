package validate

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/madwolfa/databricks-demo/internal/cronexpr"
	"github.com/madwolfa/databricks-demo/internal/manifest"
	"github.com/madwolfa/databricks-demo/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"gopkg.in/yaml.v3"
)

type Error struct {
	Path  string
	Entry int
	Job   string
	Msg   string
}

func (e Error) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: schedules[%d] (%s): %s", e.Path, e.Entry, e.Job, e.Msg)
}

type Errors []Error

func (e Errors) Error() string {
	switch len(e) {
	case 0:
		return "validation failed"
	case 1:
		return e[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
	}
}

var pauseStatuses = map[string]bool{"": true, "PAUSED": true, "UNPAUSED": true}

// Manifest checks the schema, every cron expression and timezone, and that
// no job is listed twice. A nil error means the manifest can be applied.
func Manifest(ctx context.Context, m manifest.Manifest) error {
	schemaV0, err := schema.V0()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	errs := Check(ctx, schemaV0, m)
	if len(errs) == 0 {
		return nil
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Entry < errs[j].Entry })
	return errs
}

func Check(ctx context.Context, schemaV0 *jsonschema.Schema, m manifest.Manifest) Errors {
	if err := ctx.Err(); err != nil {
		return Errors{{Path: m.Path, Entry: -1, Msg: err.Error()}}
	}

	var errs Errors
	fileErr := func(msg string) { errs = append(errs, Error{Path: m.Path, Entry: -1, Msg: msg}) }

	if len(bytes.TrimSpace(m.Raw)) == 0 {
		fileErr("empty manifest")
		return errs
	}

	if err := schema.ValidateYAML(schemaV0, m.Raw); err != nil {
		fileErr("JSON schema validation failed: " + err.Error())
	}

	var spec manifest.Spec
	if err := yaml.Unmarshal(m.Raw, &spec); err != nil {
		fileErr("parse yaml: " + err.Error())
		return errs
	}

	if strings.TrimSpace(spec.Schema) == "" {
		fileErr(fmt.Sprintf("$schema is required and must be %q", schema.V0URL))
	} else if spec.Schema != schema.V0URL {
		fileErr(fmt.Sprintf("$schema must be %q", schema.V0URL))
	}
	if len(spec.Schedules) == 0 {
		fileErr("no schedules")
	}

	seen := make(map[string]int, len(spec.Schedules))
	for i, e := range spec.Schedules {
		entryErr := func(msg string) { errs = append(errs, Error{Path: m.Path, Entry: i, Job: e.Job, Msg: msg}) }

		if strings.TrimSpace(e.Job) == "" {
			entryErr("job is required")
		} else if first, dup := seen[e.Job]; dup {
			entryErr(fmt.Sprintf("duplicate job, first listed at schedules[%d]", first))
		} else {
			seen[e.Job] = i
		}
		if _, err := cronexpr.Parse(e.Cron); err != nil {
			entryErr(err.Error())
		}
		if e.Timezone != "" {
			if _, err := time.LoadLocation(e.Timezone); err != nil {
				entryErr(fmt.Sprintf("unknown timezone %q", e.Timezone))
			}
		}
		if !pauseStatuses[e.PauseStatus] {
			entryErr(fmt.Sprintf("pause_status must be PAUSED or UNPAUSED, got %q", e.PauseStatus))
		}
	}
	return errs
}
