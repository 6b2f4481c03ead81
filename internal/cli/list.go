package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/madwolfa/databricks-demo/internal/directory"

	"gopkg.in/yaml.v3"
)

type outputFlags struct {
	Format string `name:"format" short:"o" enum:"table,yaml,json" default:"table" help:"Output format (table, yaml, json)."`
}

type jobsCmd struct {
	Output outputFlags `embed:""`

	Name string `name:"name" help:"Only jobs with exactly this name."`
}

func (c *jobsCmd) Run(ctx context.Context, rt *app) error {
	client, err := rt.client(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	jobs, err := client.ListJobs(ctx, c.Name)
	if err != nil {
		return err
	}
	return render(rt.stdout, c.Output.Format, jobs, func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "JOB_ID\tNAME\tCRON\tTIMEZONE\tPAUSE_STATUS")
		for _, j := range jobs {
			cron, tz, pause := "-", "-", "-"
			if j.Schedule != nil {
				cron, tz, pause = j.Schedule.CronExpression, j.Schedule.TimezoneID, orDash(j.Schedule.PauseStatus)
			}
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", j.ID, j.Name, cron, tz, pause)
		}
	})
}

type runsCmd struct {
	Output outputFlags `embed:""`

	JobName string `name:"job-name" env:"JOB_NAME" help:"Name of the job."`
	JobID   int64  `name:"job-id" help:"ID of the job. Takes precedence over --job-name."`
	Limit   int    `name:"limit" default:"25" help:"Maximum number of runs."`
}

func (c *runsCmd) Run(ctx context.Context, rt *app) error {
	client, err := rt.client(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	id := directory.JobID(c.JobID)
	if id == 0 {
		id, err = directory.Resolve(ctx, client, c.JobName)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
	}
	runs, err := client.ListRuns(ctx, id, c.Limit)
	if err != nil {
		return err
	}
	return render(rt.stdout, c.Output.Format, runs, func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "RUN_ID\tSTATE\tRESULT\tSTART\tEND")
		for _, r := range runs {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.RunID, r.State, orDash(r.Result), formatTime(r.StartTime), formatTime(r.EndTime))
		}
	})
}

type catalogsCmd struct {
	Output outputFlags `embed:""`
}

func (c *catalogsCmd) Run(ctx context.Context, rt *app) error {
	client, err := rt.client(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	catalogs, err := client.ListCatalogs(ctx)
	if err != nil {
		return err
	}
	return render(rt.stdout, c.Output.Format, catalogs, func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "NAME\tTYPE\tOWNER\tCOMMENT")
		for _, cat := range catalogs {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.Name, orDash(cat.Type), orDash(cat.Owner), cat.Comment)
		}
	})
}

func render(out io.Writer, format string, v any, table func(w io.Writer)) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		table(tw)
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
		return nil
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
