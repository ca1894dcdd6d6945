package derived

import (
	"fmt"
	"time"

	"synergysphere/internal/models"
)

// ProjectStats summarises the tasks of one project.
type ProjectStats struct {
	TotalTasks         int `json:"totalTasks"`
	CompletedTasks     int `json:"completedTasks"`
	OverdueTasks       int `json:"overdueTasks"`
	HighPriorityTasks  int `json:"highPriorityTasks"`
	ProgressPercentage int `json:"progressPercentage"`
}

// ComputeProjectStats counts a project's tasks. High-priority tasks are only
// counted while not done.
func ComputeProjectStats(tasks []models.Task, now time.Time) ProjectStats {
	p := ComputeProgress(tasks)
	s := ProjectStats{
		TotalTasks:         p.Total,
		CompletedTasks:     p.Completed,
		ProgressPercentage: p.Percentage,
	}
	for _, t := range tasks {
		if IsOverdue(t, now) {
			s.OverdueTasks++
		}
		if t.Priority == models.PriorityHigh && t.Status != models.StatusDone {
			s.HighPriorityTasks++
		}
	}
	return s
}

// DashboardStats summarises every project and task.
type DashboardStats struct {
	TotalProjects     int `json:"totalProjects"`
	ActiveProjects    int `json:"activeProjects"`
	CompletedProjects int `json:"completedProjects"`
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	OverdueTasks      int `json:"overdueTasks"`
}

// ComputeDashboardStats counts projects by completion and tasks by state.
func ComputeDashboardStats(projects []models.Project, tasks []models.Task, now time.Time) DashboardStats {
	byProject := GroupByProject(tasks)
	s := DashboardStats{TotalProjects: len(projects), TotalTasks: len(tasks)}
	for _, p := range projects {
		if ComputeProgress(byProject[p.ID]).Percentage < 100 {
			s.ActiveProjects++
		}
	}
	s.CompletedProjects = s.TotalProjects - s.ActiveProjects
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			s.CompletedTasks++
		}
		if IsOverdue(t, now) {
			s.OverdueTasks++
		}
	}
	return s
}

// HealthState classifies a project for its card.
type HealthState string

const (
	HealthCompleted  HealthState = "completed"
	HealthOverdue    HealthState = "overdue"
	HealthInProgress HealthState = "in_progress"
)

// Health is a project's card status.
type Health struct {
	State   HealthState `json:"state"`
	Overdue int         `json:"overdue"`
	Label   string      `json:"label"`
}

// ProjectHealth is "Completed" when every task is done, "N Overdue" when
// any task is overdue, and "In Progress" otherwise.
func ProjectHealth(tasks []models.Task, now time.Time) Health {
	overdue := 0
	for _, t := range tasks {
		if IsOverdue(t, now) {
			overdue++
		}
	}
	if ComputeProgress(tasks).Percentage == 100 {
		return Health{State: HealthCompleted, Overdue: overdue, Label: "Completed"}
	}
	if overdue > 0 {
		return Health{State: HealthOverdue, Overdue: overdue, Label: fmt.Sprintf("%d Overdue", overdue)}
	}
	return Health{State: HealthInProgress, Label: "In Progress"}
}
