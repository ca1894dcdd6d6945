package repository

import (
	"fmt"
	"time"

	"synergysphere/internal/models"
)

// NewTask carries the caller-supplied fields of a task. Empty status and
// priority default to todo and medium.
type NewTask struct {
	Title       string
	Description string
	ProjectID   string
	AssigneeID  *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// TaskUpdate holds the fields to change on a task. Nil fields are left as
// they are; ClearAssignee and ClearDueDate remove the optional values.
type TaskUpdate struct {
	Title         *string
	Description   *string
	AssigneeID    *string
	ClearAssignee bool
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	DueDate       *time.Time
	ClearDueDate  bool
}

// Task looks up a task by id.
func (r *Repository) Task(id string) (models.Task, error) {
	for _, t := range r.Tasks() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, models.ErrTaskNotFound
}

// TasksByProject returns the tasks of one project in insertion order.
func (r *Repository) TasksByProject(projectID string) []models.Task {
	var out []models.Task
	for _, t := range r.Tasks() {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// CreateTask appends a new task. The project reference is not checked.
func (r *Repository) CreateTask(in NewTask) (models.Task, error) {
	status := in.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !status.Valid() {
		return models.Task{}, models.ErrInvalidStatus
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, models.ErrInvalidPriority
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	t := models.Task{
		ID:          r.newID(),
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		AssigneeID:  normalizeRef(in.AssigneeID),
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.SaveTasks(append(r.Tasks(), t)); err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// UpdateTask applies u to the task with the given id and refreshes its
// UpdatedAt.
func (r *Repository) UpdateTask(id string, u TaskUpdate) (models.Task, error) {
	if u.Status != nil && !u.Status.Valid() {
		return models.Task{}, models.ErrInvalidStatus
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return models.Task{}, models.ErrInvalidPriority
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.Tasks()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		t := &tasks[i]
		if u.Title != nil {
			t.Title = *u.Title
		}
		if u.Description != nil {
			t.Description = *u.Description
		}
		if u.ClearAssignee {
			t.AssigneeID = nil
		} else if u.AssigneeID != nil {
			t.AssigneeID = normalizeRef(u.AssigneeID)
		}
		if u.Status != nil {
			t.Status = *u.Status
		}
		if u.Priority != nil {
			t.Priority = *u.Priority
		}
		if u.ClearDueDate {
			t.DueDate = nil
		} else if u.DueDate != nil {
			d := *u.DueDate
			t.DueDate = &d
		}
		t.UpdatedAt = r.now()

		if err := r.SaveTasks(tasks); err != nil {
			return models.Task{}, fmt.Errorf("update task %s: %w", id, err)
		}
		return *t, nil
	}
	return models.Task{}, models.ErrTaskNotFound
}

// SetTaskStatus changes only the status of a task.
func (r *Repository) SetTaskStatus(id string, status models.TaskStatus) (models.Task, error) {
	return r.UpdateTask(id, TaskUpdate{Status: &status})
}

// SetTaskPriority changes only the priority of a task.
func (r *Repository) SetTaskPriority(id string, priority models.TaskPriority) (models.Task, error) {
	return r.UpdateTask(id, TaskUpdate{Priority: &priority})
}

// DeleteTask removes the task with the given id.
func (r *Repository) DeleteTask(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.Tasks()
	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return models.ErrTaskNotFound
	}
	if err := r.SaveTasks(kept); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func normalizeRef(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}
