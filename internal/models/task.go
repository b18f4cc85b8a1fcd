package models

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/property"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskNotRunning = errors.New("task is not running")
)

// Task is an async operation such as a resource sync.
type Task struct {
	ID         string            `json:"id"`
	Operations []enumor.TaskType `json:"operations"`
	Source     enumor.TaskSource `json:"source"`
	Creator    string            `json:"creator"`
	State      enumor.TaskState  `json:"state"`
	Vendor     enumor.Vendor     `json:"vendor,omitempty"`
	SecretID   string            `json:"secret_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
	Error      string            `json:"error,omitempty"`
	Output     []string          `json:"output"`
	mu         sync.Mutex
	cancel     context.CancelFunc
}

// AppendLog adds a log line to the task output.
func (t *Task) AppendLog(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Output = append(t.Output, line)
}

// LogsSince returns log lines starting from the given index.
func (t *Task) LogsSince(offset int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if offset >= len(t.Output) {
		return nil
	}
	lines := make([]string, len(t.Output)-offset)
	copy(lines, t.Output[offset:])
	return lines
}

// CurrentState returns the state under the task lock.
func (t *Task) CurrentState() enumor.TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.State
}

// Snapshot returns a consistent copy of the task for serialisation.
func (t *Task) Snapshot() *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := &Task{
		ID:         t.ID,
		Operations: append([]enumor.TaskType(nil), t.Operations...),
		Source:     t.Source,
		Creator:    t.Creator,
		State:      t.State,
		Vendor:     t.Vendor,
		SecretID:   t.SecretID,
		CreatedAt:  t.CreatedAt,
		Error:      t.Error,
		Output:     append([]string{}, t.Output...),
	}
	if t.FinishedAt != nil {
		fin := *t.FinishedAt
		out.FinishedAt = &fin
	}
	return out
}

// Bind attaches the cancel function of the goroutine running the task.
func (t *Task) Bind(cancel context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancel = cancel
}

// Succeed marks the task as successful. It reports false when the task had
// already finished, e.g. because it was cancelled.
func (t *Task) Succeed() bool {
	return t.finish(enumor.TaskSuccess, "", "")
}

// Fail marks the task as failed with an error message.
func (t *Task) Fail(err string) {
	t.finish(enumor.TaskFailed, err, "ERROR: "+err)
}

// Cancel stops a running task. A non-empty line is appended to the output
// together with the state change, so log streamers see it before the task
// is reported finished.
func (t *Task) Cancel(line string) error {
	t.mu.Lock()
	cancel := t.cancel
	t.mu.Unlock()
	if !t.finish(enumor.TaskCancel, "", line) {
		return ErrTaskNotRunning
	}
	if cancel != nil {
		cancel()
	}
	return nil
}

// finish moves a running task into a terminal state. Terminal states are
// never overwritten.
func (t *Task) finish(state enumor.TaskState, errMsg, line string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.State.Finished() {
		return false
	}
	if line != "" {
		t.Output = append(t.Output, line)
	}
	t.State = state
	t.Error = errMsg
	now := time.Now()
	t.FinishedAt = &now
	return true
}

// FieldValue implements property.Record.
func (t *Task) FieldValue(id string) (interface{}, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch id {
	case property.TaskCreatedAt:
		return t.CreatedAt, true
	case property.TaskOperations:
		ops := make([]string, len(t.Operations))
		for i, op := range t.Operations {
			ops[i] = string(op)
		}
		return ops, true
	case property.TaskSource:
		return string(t.Source), true
	case property.TaskCreator:
		return t.Creator, true
	case property.TaskState:
		return string(t.State), true
	}
	return nil, false
}

// Page selects a window of a list result.
type Page struct {
	Count bool `json:"count"`
	Start int  `json:"start"`
	Limit int  `json:"limit"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 500
)

// Normalize applies defaults and rejects invalid windows.
func (p *Page) Normalize() error {
	if p.Start < 0 {
		return errors.New("page start must not be negative")
	}
	if p.Limit < 0 || p.Limit > MaxPageLimit {
		return errors.New("page limit must be between 0 and 500")
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	return nil
}

// TaskStore is an in-memory thread-safe store for tasks.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	now   func() time.Time
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]*Task), now: time.Now}
}

// TaskSpec describes a task to create.
type TaskSpec struct {
	Operations []enumor.TaskType
	Source     enumor.TaskSource
	Creator    string
	Vendor     enumor.Vendor
	SecretID   string
}

// Create adds a running task, assigning it a UUID.
func (s *TaskStore) Create(spec TaskSpec) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Task{
		ID:         uuid.New().String(),
		Operations: spec.Operations,
		Source:     spec.Source,
		Creator:    spec.Creator,
		State:      enumor.TaskRunning,
		Vendor:     spec.Vendor,
		SecretID:   spec.SecretID,
		CreatedAt:  s.now(),
		Output:     []string{},
	}
	s.tasks[t.ID] = t
	return t
}

// Get returns a task by ID.
func (s *TaskStore) Get(id string) *Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks[id]
}

// List returns the tasks matching filter, most recent first, windowed by
// page, together with the total number of matches.
func (s *TaskStore) List(filter *property.Filter, page Page) ([]*Task, int) {
	s.mu.RLock()
	matched := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Match(t) {
			matched = append(matched, t)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if page.Count {
		return nil, total
	}
	if page.Start >= total {
		return []*Task{}, total
	}
	end := page.Start + page.Limit
	if page.Limit == 0 || end > total {
		end = total
	}
	return matched[page.Start:end], total
}
