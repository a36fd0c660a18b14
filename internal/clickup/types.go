package clickup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Status is the nested status object on an upstream task.
type Status struct {
	Status string `json:"status"`
}

// TaskPriority is the nested priority object on an upstream task. The
// label is a name such as "urgent" or "low".
type TaskPriority struct {
	Priority string `json:"priority"`
}

// Task is the subset of an upstream task the aggregator needs. Both
// status and priority may be absent upstream.
type Task struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Status   *Status       `json:"status"`
	Priority *TaskPriority `json:"priority"`
}

// TasksPage is the envelope ClickUp wraps task collections in.
type TasksPage struct {
	Tasks []Task `json:"tasks"`
}

// CreateTaskPayload is the body sent upstream when creating a task.
// Absent dates serialize as null, matching what the upstream expects.
type CreateTaskPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Assignees   []any  `json:"assignees"`
	Priority    int    `json:"priority"`
	StartDate   *int64 `json:"start_date"`
	DueDate     *int64 `json:"due_date"`
	Status      string `json:"status,omitempty"`
}

// UpdateTaskPayload is the body sent upstream when updating a task.
// Assignees and status are not editable through this surface.
type UpdateTaskPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	StartDate   *int64 `json:"start_date"`
	DueDate     *int64 `json:"due_date"`
}

// ErrInvalidDate marks a date value that could not be converted to
// epoch milliseconds. Callers reject the request before any upstream
// call is made.
var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateMillis converts a JSON date value into epoch milliseconds.
// Numbers are taken as epoch milliseconds already; strings are parsed
// against the accepted layouts. Absent or empty values yield nil.
func ParseDateMillis(v any) (*int64, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case float64:
		ms := int64(d)
		return &ms, nil
	case json.Number:
		ms, err := d.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, d.String())
		}
		return &ms, nil
	case string:
		if d == "" {
			return nil, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				ms := t.UnixMilli()
				return &ms, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, d)
	default:
		return nil, fmt.Errorf("%w: unsupported value %v", ErrInvalidDate, v)
	}
}

// CoerceAssignees returns the input when it is a JSON array and an
// empty list otherwise. Malformed assignee input is tolerated, not
// rejected.
func CoerceAssignees(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}
	return []any{}
}
