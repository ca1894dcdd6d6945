package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/derived"
	"synergysphere/internal/models"
)

type UserResponse struct {
	models.User
	Initials string `json:"initials"`
}

// GetAllUsers handles GET /api/users
func (h *Handler) GetAllUsers(c *gin.Context) {
	users := h.repo.Users()
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{User: u, Initials: derived.Initials(u.Name)})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}
