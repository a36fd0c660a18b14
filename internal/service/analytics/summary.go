package analytics

import (
	"clickdeck/internal/clickup"
)

// Report is the aggregate view derived from a team's task list. It is
// recomputed on every request and never cached.
type Report struct {
	TotalTasks      int            `json:"totalTasks"`
	CompletedTasks  int            `json:"completedTasks"`
	PendingTasks    int            `json:"pendingTasks"`
	TasksByPriority map[string]int `json:"tasksByPriority"`
	TasksByStatus   map[string]int `json:"tasksByStatus"`
}

// Summarize derives task counts by status and priority. Pure and
// deterministic; an empty input yields an all-zero report.
//
// The priority map is seeded with the four known labels while
// unrecognized or missing labels land in a dynamically added "unknown"
// key. The asymmetry is observable behavior the dashboard depends on.
func Summarize(tasks []clickup.Task) Report {
	report := Report{
		TotalTasks: len(tasks),
		TasksByPriority: map[string]int{
			"low":    0,
			"medium": 0,
			"high":   0,
			"urgent": 0,
		},
		TasksByStatus: map[string]int{},
	}

	for _, t := range tasks {
		status := "Unknown"
		if t.Status != nil && t.Status.Status != "" {
			status = t.Status.Status
		}
		if status == "complete" {
			report.CompletedTasks++
		}
		report.TasksByStatus[status]++

		priority := "unknown"
		if t.Priority != nil {
			switch t.Priority.Priority {
			case "low", "medium", "high", "urgent":
				priority = t.Priority.Priority
			}
		}
		report.TasksByPriority[priority]++
	}

	report.PendingTasks = report.TotalTasks - report.CompletedTasks
	return report
}
