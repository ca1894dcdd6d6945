package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"synergysphere/internal/apierrors"
	"synergysphere/internal/models"
	"synergysphere/internal/realtime"
	"synergysphere/internal/session"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the register request payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login and register response
type LoginResponse struct {
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

func (h *Handler) authFailed(c *gin.Context, err error, missingKey string) {
	switch {
	case errors.Is(err, session.ErrMissingCredentials):
		h.abort(c, http.StatusBadRequest, missingKey)
	case errors.Is(err, session.ErrClosed):
		h.abort(c, http.StatusServiceUnavailable, apierrors.MsgLoginFailed)
	default:
		h.fail(c, err)
	}
}

func (h *Handler) issue(c *gin.Context, status int, u models.User, message string) {
	token, err := h.issuer.GenerateToken(u.ID, u.Email)
	if err != nil {
		h.log.Error("failed to generate token", zap.Error(err))
		h.abort(c, http.StatusInternalServerError, apierrors.MsgInternalError)
		return
	}
	c.JSON(status, LoginResponse{Token: token, User: u, Message: message})
}

// Login handles POST /api/login. Any non-empty email and password succeed.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	u, err := h.sess.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authFailed(c, err, apierrors.MsgMissingCredentials)
		return
	}
	h.issue(c, http.StatusOK, u, "Login successful")
}

// Register handles POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	u, err := h.sess.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.authFailed(c, err, apierrors.MsgRegistrationFieldsRequired)
		return
	}
	h.publish(c, realtime.ActionCreated, "users", u.ID)
	h.issue(c, http.StatusCreated, u, "Registration successful")
}

// Logout handles POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sess.Logout(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetSession handles GET /api/session
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.sess.Snapshot())
}
