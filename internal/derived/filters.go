package derived

import (
	"fmt"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"synergysphere/internal/models"
)

// FuzzyThreshold is the minimum fuzzy ratio for a title to match a search.
const FuzzyThreshold = 70

// TaskFilter narrows a task list. Zero-valued fields match everything.
type TaskFilter struct {
	Search   string
	Status   models.TaskStatus
	Priority models.TaskPriority
	// Fuzzy also accepts titles that are close to Search without containing it.
	Fuzzy bool
}

// FilterAny is the query value that disables a status or priority filter.
const FilterAny = "all"

// ParseTaskFilter builds a TaskFilter from raw query text. Empty and "all"
// disable the status and priority filters; any other unknown value is an
// error wrapping models.ErrInvalidStatus or models.ErrInvalidPriority.
func ParseTaskFilter(search, status, priority string) (TaskFilter, error) {
	f := TaskFilter{Search: search}
	if s := strings.TrimSpace(status); s != "" && !strings.EqualFold(s, FilterAny) {
		f.Status = models.TaskStatus(s)
		if !f.Status.Valid() {
			return TaskFilter{}, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
		}
	}
	if p := strings.TrimSpace(priority); p != "" && !strings.EqualFold(p, FilterAny) {
		f.Priority = models.TaskPriority(p)
		if !f.Priority.Valid() {
			return TaskFilter{}, fmt.Errorf("%w: %q", models.ErrInvalidPriority, priority)
		}
	}
	return f, nil
}

// ProjectStatus is the dashboard's project filter.
type ProjectStatus string

const (
	ProjectsAll       ProjectStatus = "all"
	ProjectsActive    ProjectStatus = "active"
	ProjectsCompleted ProjectStatus = "completed"
)

// ProjectFilter narrows a project list.
type ProjectFilter struct {
	Search string
	Status ProjectStatus
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func (f TaskFilter) matchesSearch(t models.Task) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	if containsFold(t.Title, q) || containsFold(t.Description, q) {
		return true
	}
	return f.Fuzzy && fuzzy.Ratio(q, strings.ToLower(t.Title)) >= FuzzyThreshold
}

// Match reports whether t passes the filter.
func (f TaskFilter) Match(t models.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return f.matchesSearch(t)
}

// FilterTasks returns the tasks matching f, in order.
func FilterTasks(tasks []models.Task, f TaskFilter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// FilterProjects returns the projects matching f. A project is completed
// when its tasks are 100% done; every other project, including one without
// tasks, is active.
func FilterProjects(projects []models.Project, tasks []models.Task, f ProjectFilter) []models.Project {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	byProject := GroupByProject(tasks)

	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if q != "" && !containsFold(p.Name, q) && !containsFold(p.Description, q) {
			continue
		}
		pct := ComputeProgress(byProject[p.ID]).Percentage
		switch f.Status {
		case ProjectsActive:
			if pct >= 100 {
				continue
			}
		case ProjectsCompleted:
			if pct != 100 {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
