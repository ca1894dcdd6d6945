package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/apierrors"
	"synergysphere/internal/derived"
	"synergysphere/internal/middleware"
	"synergysphere/internal/models"
	"synergysphere/internal/realtime"
	"synergysphere/internal/repository"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

// ProjectSummary is a project with its task progress.
type ProjectSummary struct {
	models.Project
	Progress derived.Progress `json:"progress"`
}

// ProjectDetail is a project with its stats and health.
type ProjectDetail struct {
	models.Project
	Stats  derived.ProjectStats `json:"stats"`
	Health derived.Health       `json:"health"`
}

func validateProject(req CreateProjectRequest) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = apierrors.MsgProjectNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		fields["description"] = apierrors.MsgProjectDescriptionRequired
	}
	return fields
}

// GetProjects handles GET /api/projects
// Query params: search, status (all|active|completed).
func (h *Handler) GetProjects(c *gin.Context) {
	status := derived.ProjectStatus(strings.ToLower(c.DefaultQuery("status", string(derived.ProjectsAll))))
	switch status {
	case derived.ProjectsAll, derived.ProjectsActive, derived.ProjectsCompleted:
	default:
		status = derived.ProjectsAll
	}

	tasks := h.repo.Tasks()
	projects := derived.FilterProjects(h.repo.Projects(), tasks, derived.ProjectFilter{
		Search: c.Query("search"),
		Status: status,
	})
	byProject := derived.GroupByProject(tasks)

	resp := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, ProjectSummary{Project: p, Progress: derived.ComputeProgress(byProject[p.ID])})
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": resp,
		"count":    len(resp),
		"status":   status,
	})
}

// GetProjectByID handles GET /api/projects/:id
func (h *Handler) GetProjectByID(c *gin.Context) {
	p, err := h.repo.Project(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	tasks := h.repo.TasksByProject(p.ID)
	now := h.now()
	c.JSON(http.StatusOK, ProjectDetail{
		Project: p,
		Stats:   derived.ComputeProjectStats(tasks, now),
		Health:  derived.ProjectHealth(tasks, now),
	})
}

// CreateProject handles POST /api/projects
// The authenticated user becomes the owner.
func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}
	if fields := validateProject(req); len(fields) > 0 {
		h.invalid(c, fields)
		return
	}

	p, err := h.repo.CreateProject(repository.NewProject{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		OwnerID:     c.GetString(middleware.CtxUserID),
		Members:     req.Members,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, realtime.ActionCreated, "projects", p.ID)
	c.JSON(http.StatusCreated, p)
}
