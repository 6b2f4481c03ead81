package directory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrAmbiguousJobName = errors.New("ambiguous job name")
	ErrNoSchedule       = errors.New("job has no schedule")
)

type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job with name %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrJobNotFound }

// AmbiguousNameError carries every job ID that matched Name.
type AmbiguousNameError struct {
	Name string
	IDs  []JobID
}

func (e *AmbiguousNameError) Error() string {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, fmt.Sprint(int64(id)))
	}
	return fmt.Sprintf("found more than one job with name %q: [%s]", e.Name, strings.Join(ids, ", "))
}

func (e *AmbiguousNameError) Is(target error) bool { return target == ErrAmbiguousJobName }

type NoScheduleError struct {
	ID JobID
}

func (e *NoScheduleError) Error() string {
	return fmt.Sprintf("job %d has no cron schedule", int64(e.ID))
}

func (e *NoScheduleError) Is(target error) bool { return target == ErrNoSchedule }
