package reschedule_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/madwolfa/databricks-demo/internal/cronexpr"
	"github.com/madwolfa/databricks-demo/internal/directory"
	"github.com/madwolfa/databricks-demo/internal/reschedule"
)

func newDirectory() *directory.Memory {
	return directory.NewMemory(
		directory.Job{ID: 10, Name: "SQL Copy Job", Schedule: &directory.Schedule{
			CronExpression: "0 30 9 * * ?",
			TimezoneID:     "Europe/London",
			PauseStatus:    "PAUSED",
		}},
		directory.Job{ID: 11, Name: "dup"},
		directory.Job{ID: 12, Name: "dup"},
		directory.Job{ID: 13, Name: "manual"},
		directory.Job{ID: 14, Name: "broken", Schedule: &directory.Schedule{CronExpression: "0 30 9 * *"}},
	)
}

func TestToggleWeekdays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d := newDirectory()

	r, err := reschedule.ToggleWeekdays(ctx, d, "SQL Copy Job", true, reschedule.Options{})
	if err != nil {
		t.Fatalf("ToggleWeekdays: %v", err)
	}
	if !r.Changed || r.JobID != 10 {
		t.Fatalf("unexpected result: %+v", r)
	}
	j, _ := d.Job(10)
	want := directory.Schedule{CronExpression: "0 30 9 ? * MON-FRI", TimezoneID: "Europe/London", PauseStatus: "PAUSED"}
	if *j.Schedule != want {
		t.Fatalf("got %+v, want %+v", *j.Schedule, want)
	}

	r, err = reschedule.ToggleWeekdays(ctx, d, "SQL Copy Job", false, reschedule.Options{})
	if err != nil {
		t.Fatalf("ToggleWeekdays every day: %v", err)
	}
	j, _ = d.Job(10)
	if j.Schedule.CronExpression != "0 30 9 * * ?" {
		t.Fatalf("got %q", j.Schedule.CronExpression)
	}
	if r.Old.CronExpression != "0 30 9 ? * MON-FRI" {
		t.Fatalf("unexpected old schedule: %+v", r.Old)
	}
	if d.Writes() != 2 {
		t.Fatalf("expected 2 writes, got %d", d.Writes())
	}
}

func TestToggleWeekdays_UnchangedSkipsWrite(t *testing.T) {
	t.Parallel()
	d := newDirectory()

	r, err := reschedule.ToggleWeekdays(context.Background(), d, "SQL Copy Job", false, reschedule.Options{})
	if err != nil {
		t.Fatalf("ToggleWeekdays: %v", err)
	}
	if r.Changed {
		t.Fatalf("expected unchanged result")
	}
	if d.Writes() != 0 {
		t.Fatalf("expected no writes, got %d", d.Writes())
	}
}

func TestToggleWeekdays_DryRun(t *testing.T) {
	t.Parallel()
	d := newDirectory()

	r, err := reschedule.ToggleWeekdays(context.Background(), d, "SQL Copy Job", true, reschedule.Options{DryRun: true})
	if err != nil {
		t.Fatalf("ToggleWeekdays: %v", err)
	}
	if !r.Changed || r.New.CronExpression != "0 30 9 ? * MON-FRI" {
		t.Fatalf("unexpected result: %+v", r)
	}
	if d.Writes() != 0 {
		t.Fatalf("dry-run must not write")
	}
}

func TestToggleWeekdays_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d := newDirectory()

	tests := []struct {
		name string
		job  string
		want error
	}{
		{"not found", "nope", directory.ErrJobNotFound},
		{"ambiguous", "dup", directory.ErrAmbiguousJobName},
		{"no schedule", "manual", directory.ErrNoSchedule},
		{"malformed", "broken", cronexpr.ErrMalformed},
	}
	for _, tt := range tests {
		_, err := reschedule.ToggleWeekdays(ctx, d, tt.job, true, reschedule.Options{})
		if !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
	if d.Writes() != 0 {
		t.Fatalf("failed updates must not write")
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()
	d := newDirectory()

	r, err := reschedule.Replace(context.Background(), d, "SQL Copy Job", directory.Schedule{CronExpression: "0 0 6 ? * MON-FRI"}, reschedule.Options{})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	want := directory.Schedule{CronExpression: "0 0 6 ? * MON-FRI", TimezoneID: "Europe/London", PauseStatus: "PAUSED"}
	if r.New != want {
		t.Fatalf("got %+v, want %+v", r.New, want)
	}
	j, _ := d.Job(10)
	if *j.Schedule != want {
		t.Fatalf("stored %+v, want %+v", *j.Schedule, want)
	}
}

func TestReplace_ValidatesBeforeRemoteCalls(t *testing.T) {
	t.Parallel()
	d := newDirectory()

	_, err := reschedule.Replace(context.Background(), d, "nope", directory.Schedule{CronExpression: "0 0 6 * *"}, reschedule.Options{})
	if !errors.Is(err, cronexpr.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	_, err = reschedule.Replace(context.Background(), d, "SQL Copy Job", directory.Schedule{CronExpression: "0 0 6 * * ?", TimezoneID: "Mars/Olympus"}, reschedule.Options{})
	if err == nil {
		t.Fatalf("expected timezone error")
	}
	if d.Writes() != 0 {
		t.Fatalf("invalid input must not write")
	}
}

func TestReplace_JobWithoutSchedule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d := newDirectory()

	_, err := reschedule.Replace(ctx, d, "manual", directory.Schedule{CronExpression: "0 0 6 * * ?"}, reschedule.Options{})
	if err == nil || !strings.Contains(err.Error(), "timezone is required") {
		t.Fatalf("expected timezone required error, got %v", err)
	}
	if d.Writes() != 0 {
		t.Fatalf("expected no writes")
	}

	r, err := reschedule.Replace(ctx, d, "manual", directory.Schedule{CronExpression: "0 0 6 * * ?", TimezoneID: "UTC"}, reschedule.Options{})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !r.Changed || r.Old != (directory.Schedule{}) {
		t.Fatalf("unexpected result: %+v", r)
	}
	j, _ := d.Job(13)
	if j.Schedule == nil || *j.Schedule != (directory.Schedule{CronExpression: "0 0 6 * * ?", TimezoneID: "UTC"}) {
		t.Fatalf("unexpected stored schedule: %+v", j.Schedule)
	}
}
