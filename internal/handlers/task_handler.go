package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/apierrors"
	"synergysphere/internal/derived"
	"synergysphere/internal/models"
	"synergysphere/internal/realtime"
	"synergysphere/internal/repository"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	AssigneeID  *string             `json:"assigneeId"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     string              `json:"dueDate"`
}

// UpdateTaskRequest represents the request payload for updating a task.
// An empty assigneeId or dueDate clears the field.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	AssigneeID  *string              `json:"assigneeId"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	DueDate     *string              `json:"dueDate"`
}

// UpdateTaskStatusRequest represents a minimal request to change status
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// UpdateTaskPriorityRequest represents a minimal request to change priority
type UpdateTaskPriorityRequest struct {
	Priority models.TaskPriority `json:"priority" binding:"required"`
}

// TaskView is a task with its display fields resolved.
type TaskView struct {
	models.Task
	AssigneeName  string        `json:"assigneeName,omitempty"`
	StatusStyle   derived.Style `json:"statusStyle"`
	PriorityStyle derived.Style `json:"priorityStyle"`
	DueLabel      string        `json:"dueLabel,omitempty"`
	Overdue       bool          `json:"overdue"`
}

func (h *Handler) view(t models.Task, now time.Time) TaskView {
	v := TaskView{
		Task:          t,
		StatusStyle:   derived.StatusStyle(t.Status),
		PriorityStyle: derived.PriorityStyle(t.Priority),
		Overdue:       derived.IsOverdue(t, now),
	}
	if name, ok := h.repo.AssigneeName(t); ok {
		v.AssigneeName = name
	}
	if t.DueDate != nil {
		v.DueLabel = derived.RelativeDateLabel(*t.DueDate, now)
	}
	return v
}

func validateTaskText(title, description *string) map[string]string {
	fields := map[string]string{}
	if title != nil && strings.TrimSpace(*title) == "" {
		fields["title"] = apierrors.MsgTaskTitleRequired
	}
	if description != nil && strings.TrimSpace(*description) == "" {
		fields["description"] = apierrors.MsgTaskDescriptionRequired
	}
	return fields
}

/*
*
GetProjectTasks handles GET /api/projects/:id/tasks
Query params: search, status, priority ("all" or absent for any), fuzzy (bool), page (default 1),
limit (default 20, max 100), sort (asc|desc on createdAt; insertion order when absent).
*/
func (h *Handler) GetProjectTasks(c *gin.Context) {
	p, err := h.repo.Project(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	filter, err := derived.ParseTaskFilter(c.Query("search"), c.Query("status"), c.Query("priority"))
	if err != nil {
		h.fail(c, err)
		return
	}
	filter.Fuzzy, _ = strconv.ParseBool(c.DefaultQuery("fuzzy", "false"))

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	sortParam := strings.ToLower(c.Query("sort"))

	projectTasks := h.repo.TasksByProject(p.ID)
	tasks := derived.FilterTasks(projectTasks, filter)
	switch sortParam {
	case "asc":
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	case "desc":
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	}

	total := len(tasks)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	now := h.now()
	views := make([]TaskView, 0, end-start)
	for _, t := range tasks[start:end] {
		views = append(views, h.view(t, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":    views,
		"count":    len(views), // number of items in this page
		"total":    total,      // total tasks for current filter
		"page":     page,
		"limit":    limit,
		"progress": derived.ComputeProgress(projectTasks),
	})
}

// CreateTask handles POST /api/projects/:id/tasks
func (h *Handler) CreateTask(c *gin.Context) {
	p, err := h.repo.Project(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}
	if fields := validateTaskText(&req.Title, &req.Description); len(fields) > 0 {
		h.invalid(c, fields)
		return
	}

	in := repository.NewTask{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ProjectID:   p.ID,
		AssigneeID:  req.AssigneeID,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.DueDate != "" {
		due, ok := repository.ParseDate(req.DueDate)
		if !ok {
			h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
			return
		}
		in.DueDate = &due
	}

	task, err := h.repo.CreateTask(in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, realtime.ActionCreated, "tasks", task.ID)
	h.notifyAssignee(c, task)
	c.JSON(http.StatusCreated, h.view(task, h.now()))
}

// GetTaskByID handles GET /api/tasks/:id
func (h *Handler) GetTaskByID(c *gin.Context) {
	task, err := h.repo.Task(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(task, h.now()))
}

// UpdateTask handles PUT /api/tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}
	if fields := validateTaskText(req.Title, req.Description); len(fields) > 0 {
		h.invalid(c, fields)
		return
	}

	u := repository.TaskUpdate{
		Status:   req.Status,
		Priority: req.Priority,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		u.Title = &title
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		u.Description = &desc
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == "" {
			u.ClearAssignee = true
		} else {
			u.AssigneeID = req.AssigneeID
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			u.ClearDueDate = true
		} else {
			due, ok := repository.ParseDate(*req.DueDate)
			if !ok {
				h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
				return
			}
			u.DueDate = &due
		}
	}

	var prevAssignee string
	if prev, err := h.repo.Task(c.Param("id")); err == nil && prev.AssigneeID != nil {
		prevAssignee = *prev.AssigneeID
	}

	task, err := h.repo.UpdateTask(c.Param("id"), u)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, realtime.ActionUpdated, "tasks", task.ID)
	if task.AssigneeID != nil && *task.AssigneeID != prevAssignee {
		h.notifyAssignee(c, task)
	}
	c.JSON(http.StatusOK, h.view(task, h.now()))
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidStatus)
		return
	}
	task, err := h.repo.SetTaskStatus(c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, realtime.ActionUpdated, "tasks", task.ID)
	c.JSON(http.StatusOK, h.view(task, h.now()))
}

// UpdateTaskPriority handles PATCH /api/tasks/:id/priority
func (h *Handler) UpdateTaskPriority(c *gin.Context) {
	var req UpdateTaskPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPriority)
		return
	}
	task, err := h.repo.SetTaskPriority(c.Param("id"), req.Priority)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, realtime.ActionUpdated, "tasks", task.ID)
	c.JSON(http.StatusOK, h.view(task, h.now()))
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.DeleteTask(id); err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, realtime.ActionDeleted, "tasks", id)
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
