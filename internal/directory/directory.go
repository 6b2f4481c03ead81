// Package directory describes the remote service that owns job definitions
// and their cron triggers.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// JobID identifies a job. Display names are not unique, IDs are.
type JobID int64

// Schedule is a job's cron trigger.
type Schedule struct {
	CronExpression string `json:"quartz_cron_expression" yaml:"quartz_cron_expression"`
	TimezoneID     string `json:"timezone_id" yaml:"timezone_id"`
	PauseStatus    string `json:"pause_status,omitempty" yaml:"pause_status,omitempty"`
}

func (s Schedule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cron=%q timezone=%q", s.CronExpression, s.TimezoneID)
	if s.PauseStatus != "" {
		fmt.Fprintf(&b, " pause_status=%s", s.PauseStatus)
	}
	return b.String()
}

// Job is a job summary as returned by listings.
type Job struct {
	ID       JobID     `json:"job_id" yaml:"job_id"`
	Name     string    `json:"name" yaml:"name"`
	Creator  string    `json:"creator,omitempty" yaml:"creator,omitempty"`
	Schedule *Schedule `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

// Directory is the narrow view of the job service used to edit schedules.
type Directory interface {
	ListJobsByName(ctx context.Context, name string) ([]JobID, error)
	GetSchedule(ctx context.Context, id JobID) (Schedule, error)
	SetSchedule(ctx context.Context, id JobID, s Schedule) error
}

var errEmptyName = errors.New("job name is empty")

// Resolve looks up the single job called name.
func Resolve(ctx context.Context, d Directory, name string) (JobID, error) {
	if strings.TrimSpace(name) == "" {
		return 0, errEmptyName
	}
	ids, err := d.ListJobsByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("list jobs %q: %w", name, err)
	}
	switch len(ids) {
	case 0:
		return 0, &NotFoundError{Name: name}
	case 1:
		return ids[0], nil
	default:
		return 0, &AmbiguousNameError{Name: name, IDs: ids}
	}
}
