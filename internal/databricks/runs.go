package databricks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/madwolfa/databricks-demo/internal/directory"
)

// The runs/list endpoint caps limit at 25.
const maxRunsPageSize = 25

type Run struct {
	RunID     int64           `json:"run_id" yaml:"run_id"`
	JobID     directory.JobID `json:"job_id" yaml:"job_id"`
	Name      string          `json:"run_name,omitempty" yaml:"run_name,omitempty"`
	State     string          `json:"state" yaml:"state"`
	Result    string          `json:"result,omitempty" yaml:"result,omitempty"`
	Message   string          `json:"message,omitempty" yaml:"message,omitempty"`
	StartTime time.Time       `json:"start_time" yaml:"start_time"`
	EndTime   time.Time       `json:"end_time,omitzero" yaml:"end_time,omitempty"`
}

type runState struct {
	LifeCycleState string `json:"life_cycle_state"`
	ResultState    string `json:"result_state"`
	StateMessage   string `json:"state_message"`
}

type run struct {
	RunID     int64    `json:"run_id"`
	JobID     int64    `json:"job_id"`
	RunName   string   `json:"run_name"`
	State     runState `json:"state"`
	StartTime int64    `json:"start_time"`
	EndTime   int64    `json:"end_time"`
}

type listRunsResponse struct {
	Runs          []run  `json:"runs"`
	HasMore       bool   `json:"has_more"`
	NextPageToken string `json:"next_page_token"`
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// ListRuns returns up to limit most recent runs of the job, newest first.
func (c *Client) ListRuns(ctx context.Context, id directory.JobID, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = maxRunsPageSize
	}
	var out []Run
	token := ""
	for len(out) < limit {
		q := url.Values{}
		q.Set("job_id", strconv.FormatInt(int64(id), 10))
		q.Set("limit", strconv.Itoa(min(limit-len(out), maxRunsPageSize)))
		if token != "" {
			q.Set("page_token", token)
		}
		var resp listRunsResponse
		if err := c.get(ctx, "/api/2.1/jobs/runs/list", q, &resp); err != nil {
			return nil, fmt.Errorf("list runs of job %d: %w", id, err)
		}
		for _, r := range resp.Runs {
			out = append(out, Run{
				RunID:     r.RunID,
				JobID:     directory.JobID(r.JobID),
				Name:      r.RunName,
				State:     r.State.LifeCycleState,
				Result:    r.State.ResultState,
				Message:   r.State.StateMessage,
				StartTime: fromMillis(r.StartTime),
				EndTime:   fromMillis(r.EndTime),
			})
		}
		if !resp.HasMore || resp.NextPageToken == "" {
			break
		}
		token = resp.NextPageToken
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
