// Package derived computes display values from entity lists: progress,
// overdue state, date labels, styles, filters and dashboard figures. Every
// function is pure; the current time is always passed in.
package derived

import (
	"math"

	"synergysphere/internal/models"
)

// Progress is the completion ratio of a task list.
type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ComputeProgress counts done tasks. Percentage is rounded to the nearest
// integer and is 0 for an empty list.
func ComputeProgress(tasks []models.Task) Progress {
	completed := 0
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			completed++
		}
	}
	p := Progress{Completed: completed, Total: len(tasks)}
	if p.Total > 0 {
		p.Percentage = int(math.Round(float64(completed) / float64(p.Total) * 100))
	}
	return p
}

// GroupByProject buckets tasks by project id, keeping their order.
func GroupByProject(tasks []models.Task) map[string][]models.Task {
	out := make(map[string][]models.Task)
	for _, t := range tasks {
		out[t.ProjectID] = append(out[t.ProjectID], t)
	}
	return out
}
