package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/derived"
	"synergysphere/internal/middleware"
)

// GetDashboard handles GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	projects := h.repo.Projects()
	tasks := h.repo.Tasks()
	now := h.now()

	byProject := derived.GroupByProject(tasks)
	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, ProjectSummary{Project: p, Progress: derived.ComputeProgress(byProject[p.ID])})
	}

	userID := c.GetString(middleware.CtxUserID)
	mine := make([]TaskView, 0)
	for _, t := range tasks {
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			mine = append(mine, h.view(t, now))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":    derived.ComputeDashboardStats(projects, tasks, now),
		"projects": summaries,
		"myTasks":  mine,
	})
}

// GetNotifications handles GET /api/notifications
// Returns the stored notifications addressed to the authenticated user.
func (h *Handler) GetNotifications(c *gin.Context) {
	notifications := h.repo.NotificationsFor(c.GetString(middleware.CtxUserID))
	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"unread":        unread,
	})
}
