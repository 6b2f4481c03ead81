package reschedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/madwolfa/databricks-demo/internal/cronexpr"
	"github.com/madwolfa/databricks-demo/internal/directory"
)

var errTimezoneRequired = errors.New("timezone is required for a job without a schedule")

type Options struct {
	DryRun bool
}

// Result describes one schedule edit. Changed is false when the new schedule
// matched the current one and nothing was written.
type Result struct {
	JobID   directory.JobID
	Name    string
	Old     directory.Schedule
	New     directory.Schedule
	Changed bool
}

// ToggleWeekdays rewrites the day fields of the job's trigger so that it fires
// on weekdays only or every day. Time of day, month, timezone and pause status
// are kept.
func ToggleWeekdays(ctx context.Context, d directory.Directory, name string, weekdaysOnly bool, opts Options) (Result, error) {
	id, err := directory.Resolve(ctx, d, name)
	if err != nil {
		return Result{}, err
	}
	log.Printf("found job ID with name %q: %d", name, id)

	cur, err := d.GetSchedule(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("get schedule: job %d: %w", id, err)
	}
	log.Printf("current job schedule: %s", cur)

	expr, err := cronexpr.Rewrite(cur.CronExpression, cronexpr.DayPolicy(weekdaysOnly))
	if err != nil {
		return Result{}, fmt.Errorf("job %d: %w", id, err)
	}
	next := cur
	next.CronExpression = expr

	return apply(ctx, d, Result{JobID: id, Name: name, Old: cur, New: next}, opts)
}

// Replace sets the job's trigger to s. An empty timezone or pause status in s
// keeps the current value.
func Replace(ctx context.Context, d directory.Directory, name string, s directory.Schedule, opts Options) (Result, error) {
	if _, err := cronexpr.Parse(s.CronExpression); err != nil {
		return Result{}, err
	}
	if s.TimezoneID != "" {
		if _, err := time.LoadLocation(s.TimezoneID); err != nil {
			return Result{}, fmt.Errorf("timezone %q: %w", s.TimezoneID, err)
		}
	}

	id, err := directory.Resolve(ctx, d, name)
	if err != nil {
		return Result{}, err
	}
	log.Printf("found job ID with name %q: %d", name, id)

	cur, err := d.GetSchedule(ctx, id)
	switch {
	case errors.Is(err, directory.ErrNoSchedule):
		if s.TimezoneID == "" {
			return Result{}, fmt.Errorf("job %d: %w", id, errTimezoneRequired)
		}
		log.Printf("job %d has no schedule yet", id)
	case err != nil:
		return Result{}, fmt.Errorf("get schedule: job %d: %w", id, err)
	default:
		log.Printf("current job schedule: %s", cur)
	}

	next := s
	if next.TimezoneID == "" {
		next.TimezoneID = cur.TimezoneID
	}
	if next.PauseStatus == "" {
		next.PauseStatus = cur.PauseStatus
	}

	return apply(ctx, d, Result{JobID: id, Name: name, Old: cur, New: next}, opts)
}

func apply(ctx context.Context, d directory.Directory, r Result, opts Options) (Result, error) {
	log.Printf("new job schedule: %s", r.New)
	if r.New == r.Old {
		log.Printf("job %d: schedule unchanged", r.JobID)
		return r, nil
	}
	r.Changed = true
	if opts.DryRun {
		log.Printf("dry-run: update job %d", r.JobID)
		return r, nil
	}
	if err := d.SetSchedule(ctx, r.JobID, r.New); err != nil {
		return Result{}, fmt.Errorf("update schedule: job %d: %w", r.JobID, err)
	}
	log.Printf("job schedule updated!")
	return r, nil
}
