package cli

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/madwolfa/databricks-demo/internal/databricks"
	"github.com/madwolfa/databricks-demo/internal/validate"
	"github.com/madwolfa/databricks-demo/internal/version"
)

type workspaceFlags struct {
	Host         string        `name:"host" env:"DATABRICKS_HOST" help:"Workspace URL."`
	Token        string        `name:"token" env:"DATABRICKS_TOKEN" help:"Personal access token."`
	ClientID     string        `name:"client-id" env:"DATABRICKS_CLIENT_ID" help:"Service principal client ID (OAuth M2M)."`
	ClientSecret string        `name:"client-secret" env:"DATABRICKS_CLIENT_SECRET" help:"Service principal client secret (OAuth M2M)."`
	Timeout      time.Duration `name:"timeout" default:"30s" help:"HTTP request timeout."`
}

type root struct {
	Workspace workspaceFlags   `embed:""`
	Version   kong.VersionFlag `name:"version" help:"Print version and exit."`

	UpdateSchedule updateScheduleCmd `cmd:"" help:"Switch a job between running on weekdays only and every day."`
	SetCron        setCronCmd        `cmd:"" help:"Replace a job's cron trigger, from flags or a schedule manifest."`
	Jobs           jobsCmd           `cmd:"" help:"List jobs."`
	Runs           runsCmd           `cmd:"" help:"List recent runs of a job."`
	Catalogs       catalogsCmd       `cmd:"" help:"List Unity Catalog catalogs."`
	Init           initCmd           `cmd:"" help:"Create a schedule manifest."`
	Validate       validateCmd       `cmd:"" help:"Validate a schedule manifest."`
}

// app is bound into every command's Run method.
type app struct {
	stdout    io.Writer
	workspace *workspaceFlags
	now       func() time.Time
	getenv    func(string) string
}

func (rt *app) client(ctx context.Context) (*databricks.Client, error) {
	return databricks.New(ctx, databricks.Config{
		Host:         rt.workspace.Host,
		Token:        rt.workspace.Token,
		ClientID:     rt.workspace.ClientID,
		ClientSecret: rt.workspace.ClientSecret,
		Timeout:      rt.workspace.Timeout,
	})
}

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		args = []string{"--help"}
	}

	var cli root
	k, err := kong.New(
		&cli,
		kong.Name("databricks-demo"),
		kong.Description("Edit the cron schedules of Databricks jobs."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.Version},
	)
	if err != nil {
		log.Printf("init cli: %v", err)
		return 1
	}

	kctx, err := k.Parse(args)
	if err != nil {
		return parseExitCode(err)
	}

	ctx := context.Background()
	kctx.BindTo(ctx, (*context.Context)(nil))
	rt := &app{stdout: stdout, workspace: &cli.Workspace, now: time.Now, getenv: os.Getenv}
	if err := kctx.Run(rt); err != nil {
		var verrs validate.Errors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				log.Printf("validate: %s", e.Error())
			}
			return 1
		}
		log.Printf("command failed: %v", err)
		return 1
	}

	return 0
}

func parseExitCode(err error) int {
	var ec interface{ ExitCode() int }
	if errors.As(err, &ec) {
		code := ec.ExitCode()
		if code == 0 {
			return 0
		}
		log.Printf("parse args: %v", err)
		return code
	}
	// If this isn't an ExitCoder error, treat it as a usage error.
	log.Printf("parse args: %v", err)
	return 2
}
