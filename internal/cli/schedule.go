package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/madwolfa/databricks-demo/internal/cronexpr"
	"github.com/madwolfa/databricks-demo/internal/directory"
	"github.com/madwolfa/databricks-demo/internal/manifest"
	"github.com/madwolfa/databricks-demo/internal/reschedule"
	"github.com/madwolfa/databricks-demo/internal/scaffold"
	"github.com/madwolfa/databricks-demo/internal/validate"
)

var (
	errNoCron      = errors.New("no cron expression: set --cron or --file")
	errCronAndFile = errors.New("--cron and --file are mutually exclusive")
	errPauseStatus = errors.New("pause status must be PAUSED or UNPAUSED")
)

type updateScheduleCmd struct {
	JobName      string `name:"job-name" env:"JOB_NAME" default:"SQL Copy Job" help:"Name of the job to modify."`
	WeekdaysOnly bool   `name:"weekdays-only" xor:"days" help:"Run on weekdays only. Without --weekdays-only or --every-day, WEEKDAYS_ONLY=true selects weekdays."`
	EveryDay     bool   `name:"every-day" xor:"days" help:"Run every day."`
	DryRun       bool   `name:"dry-run" help:"Print the new schedule without updating the job."`
	Preview      int    `name:"preview" default:"0" help:"Print the next N fire times of the new schedule."`
}

// weekdaysOnly resolves the toggle. WEEKDAYS_ONLY is true only when it reads
// "true" in any case; every other value means every day.
func (c *updateScheduleCmd) weekdaysOnly(getenv func(string) string) bool {
	switch {
	case c.WeekdaysOnly:
		return true
	case c.EveryDay:
		return false
	default:
		return strings.EqualFold(getenv("WEEKDAYS_ONLY"), "true")
	}
}

func (c *updateScheduleCmd) Run(ctx context.Context, rt *app) error {
	client, err := rt.client(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	r, err := reschedule.ToggleWeekdays(ctx, client, c.JobName, c.weekdaysOnly(rt.getenv), reschedule.Options{DryRun: c.DryRun})
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	rt.printResult(r, c.DryRun, c.Preview)
	return nil
}

type setCronCmd struct {
	JobName     string `name:"job-name" env:"JOB_NAME" help:"Name of the job to modify."`
	Cron        string `name:"cron" env:"CRON_EXPRESSION" help:"Quartz cron expression (6 fields)."`
	Timezone    string `name:"timezone" env:"TIMEZONE_ID" help:"Timezone ID. Empty keeps the current one."`
	PauseStatus string `name:"pause-status" help:"PAUSED or UNPAUSED. Empty keeps the current one."`
	File        string `name:"file" type:"path" help:"Apply every entry of this schedule manifest. --job-name is ignored."`
	DryRun      bool   `name:"dry-run" help:"Print the new schedule without updating the job."`
	Preview     int    `name:"preview" default:"0" help:"Print the next N fire times of the new schedule."`
}

func (c *setCronCmd) Run(ctx context.Context, rt *app) error {
	if c.File != "" && c.Cron != "" {
		return errCronAndFile
	}
	if c.File == "" && c.Cron == "" {
		return errNoCron
	}
	if c.PauseStatus != "" && c.PauseStatus != "PAUSED" && c.PauseStatus != "UNPAUSED" {
		return fmt.Errorf("%w: %q", errPauseStatus, c.PauseStatus)
	}

	var entries []manifest.Entry
	if c.File != "" {
		m, err := manifest.LoadRaw(ctx, c.File)
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}
		if err := validate.Manifest(ctx, m); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
		m, err = manifest.Load(ctx, c.File)
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}
		entries = m.Spec.Schedules
	} else {
		entries = []manifest.Entry{{Job: c.JobName, Cron: c.Cron, Timezone: c.Timezone, PauseStatus: c.PauseStatus}}
	}

	client, err := rt.client(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	opts := reschedule.Options{DryRun: c.DryRun}
	for _, e := range entries {
		s := directory.Schedule{CronExpression: e.Cron, TimezoneID: e.Timezone, PauseStatus: e.PauseStatus}
		r, err := reschedule.Replace(ctx, client, e.Job, s, opts)
		if err != nil {
			return fmt.Errorf("set cron: %s: %w", e.Job, err)
		}
		rt.printResult(r, c.DryRun, c.Preview)
	}
	return nil
}

func (rt *app) printResult(r reschedule.Result, dryRun bool, preview int) {
	status := "updated"
	switch {
	case !r.Changed:
		status = "unchanged"
	case dryRun:
		status = "dry-run"
	}
	_, _ = fmt.Fprintf(rt.stdout, "%s\t%d\t%s\t%s\n", r.Name, r.JobID, r.New.CronExpression, status)
	if preview <= 0 {
		return
	}
	expr, err := cronexpr.Parse(r.New.CronExpression)
	if err != nil {
		log.Printf("preview: %v", err)
		return
	}
	times, err := cronexpr.Next(expr, r.New.TimezoneID, rt.now(), preview)
	if err != nil {
		log.Printf("preview: %v", err)
		return
	}
	for _, t := range times {
		_, _ = fmt.Fprintf(rt.stdout, "  next: %s\n", t.Format("2006-01-02 15:04:05 MST"))
	}
}

type initCmd struct {
	File     string `name:"file" default:"schedules.yaml" help:"Manifest path."`
	JobName  string `name:"job-name" env:"JOB_NAME" default:"SQL Copy Job" help:"Job name for the first entry."`
	Timezone string `name:"timezone" env:"TIMEZONE_ID" default:"UTC" help:"Timezone for the first entry."`
}

func (c *initCmd) Run(ctx context.Context) error {
	if err := scaffold.InitManifest(ctx, scaffold.InitOptions{Path: c.File, JobName: c.JobName, Timezone: c.Timezone}); err != nil {
		return fmt.Errorf("init manifest: %w", err)
	}
	log.Printf("manifest initialized: %s", c.File)
	return nil
}

type validateCmd struct {
	File string `arg:"" optional:"" name:"file" default:"schedules.yaml" help:"Manifest path."`
}

func (c *validateCmd) Run(ctx context.Context) error {
	m, err := manifest.LoadRaw(ctx, c.File)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	if err := validate.Manifest(ctx, m); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	log.Printf("validate: %s: ok", c.File)
	return nil
}
