package directory

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process Directory for tests.
type Memory struct {
	mu     sync.Mutex
	jobs   map[JobID]Job
	writes int
}

func NewMemory(jobs ...Job) *Memory {
	m := &Memory{jobs: make(map[JobID]Job, len(jobs))}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *Memory) ListJobsByName(ctx context.Context, name string) ([]JobID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []JobID
	for id, j := range m.jobs {
		if j.Name == name {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *Memory) GetSchedule(ctx context.Context, id JobID) (Schedule, error) {
	if err := ctx.Err(); err != nil {
		return Schedule{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return Schedule{}, fmt.Errorf("job %d: %w", int64(id), ErrJobNotFound)
	}
	if j.Schedule == nil {
		return Schedule{}, &NoScheduleError{ID: id}
	}
	return *j.Schedule, nil
}

func (m *Memory) SetSchedule(ctx context.Context, id JobID, s Schedule) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %d: %w", int64(id), ErrJobNotFound)
	}
	j.Schedule = &s
	m.jobs[id] = j
	m.writes++
	return nil
}

// Job returns the stored job with id.
func (m *Memory) Job(id JobID) (Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	return j, ok
}

// Writes counts successful SetSchedule calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
