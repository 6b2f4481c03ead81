package databricks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/madwolfa/databricks-demo/internal/directory"
)

const pageSize = 100

type cronSchedule struct {
	QuartzCronExpression string `json:"quartz_cron_expression"`
	TimezoneID           string `json:"timezone_id"`
	PauseStatus          string `json:"pause_status,omitempty"`
}

type jobSettings struct {
	Name     string        `json:"name,omitempty"`
	Schedule *cronSchedule `json:"schedule,omitempty"`
}

type job struct {
	JobID           int64       `json:"job_id"`
	CreatorUserName string      `json:"creator_user_name"`
	Settings        jobSettings `json:"settings"`
}

type listJobsResponse struct {
	Jobs          []job  `json:"jobs"`
	HasMore       bool   `json:"has_more"`
	NextPageToken string `json:"next_page_token"`
}

type updateJobRequest struct {
	JobID       int64       `json:"job_id"`
	NewSettings jobSettings `json:"new_settings"`
}

func (j job) toDirectory() directory.Job {
	out := directory.Job{ID: directory.JobID(j.JobID), Name: j.Settings.Name, Creator: j.CreatorUserName}
	if s := j.Settings.Schedule; s != nil {
		out.Schedule = &directory.Schedule{CronExpression: s.QuartzCronExpression, TimezoneID: s.TimezoneID, PauseStatus: s.PauseStatus}
	}
	return out
}

// ListJobs returns every job whose name matches exactly. An empty name lists
// all jobs.
func (c *Client) ListJobs(ctx context.Context, name string) ([]directory.Job, error) {
	var out []directory.Job
	token := ""
	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageSize))
		if name != "" {
			q.Set("name", name)
		}
		if token != "" {
			q.Set("page_token", token)
		}
		var resp listJobsResponse
		if err := c.get(ctx, "/api/2.1/jobs/list", q, &resp); err != nil {
			return nil, fmt.Errorf("list jobs: %w", err)
		}
		for _, j := range resp.Jobs {
			out = append(out, j.toDirectory())
		}
		if !resp.HasMore || resp.NextPageToken == "" {
			return out, nil
		}
		token = resp.NextPageToken
	}
}

func (c *Client) GetJob(ctx context.Context, id directory.JobID) (directory.Job, error) {
	q := url.Values{}
	q.Set("job_id", strconv.FormatInt(int64(id), 10))
	var resp job
	if err := c.get(ctx, "/api/2.1/jobs/get", q, &resp); err != nil {
		return directory.Job{}, fmt.Errorf("get job %d: %w", id, err)
	}
	return resp.toDirectory(), nil
}

// UpdateSchedule replaces only the schedule block of the job settings.
func (c *Client) UpdateSchedule(ctx context.Context, id directory.JobID, s directory.Schedule) error {
	req := updateJobRequest{
		JobID: int64(id),
		NewSettings: jobSettings{Schedule: &cronSchedule{
			QuartzCronExpression: s.CronExpression,
			TimezoneID:           s.TimezoneID,
			PauseStatus:          s.PauseStatus,
		}},
	}
	if err := c.post(ctx, "/api/2.1/jobs/update", req, nil); err != nil {
		return fmt.Errorf("update job %d: %w", id, err)
	}
	return nil
}

func (c *Client) ListJobsByName(ctx context.Context, name string) ([]directory.JobID, error) {
	jobs, err := c.ListJobs(ctx, name)
	if err != nil {
		return nil, err
	}
	ids := make([]directory.JobID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids, nil
}

func (c *Client) GetSchedule(ctx context.Context, id directory.JobID) (directory.Schedule, error) {
	j, err := c.GetJob(ctx, id)
	if err != nil {
		return directory.Schedule{}, err
	}
	if j.Schedule == nil {
		return directory.Schedule{}, &directory.NoScheduleError{ID: id}
	}
	return *j.Schedule, nil
}

func (c *Client) SetSchedule(ctx context.Context, id directory.JobID, s directory.Schedule) error {
	return c.UpdateSchedule(ctx, id, s)
}

var _ directory.Directory = (*Client)(nil)
