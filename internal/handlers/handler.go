package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"synergysphere/internal/apierrors"
	"synergysphere/internal/auth"
	"synergysphere/internal/middleware"
	"synergysphere/internal/models"
	"synergysphere/internal/realtime"
	"synergysphere/internal/repository"
	"synergysphere/internal/session"
	"synergysphere/internal/store"
)

// Handler serves the HTTP API over one repository and session.
type Handler struct {
	repo   *repository.Repository
	sess   *session.Session
	issuer *auth.Issuer
	hub    *realtime.Hub
	log    *zap.Logger
}

// Deps are the collaborators a Handler needs.
type Deps struct {
	Repo    *repository.Repository
	Session *session.Session
	Issuer  *auth.Issuer
	Hub     *realtime.Hub
	Logger  *zap.Logger
}

func New(d Deps) *Handler {
	log := d.Logger
	if log == nil {
		log = zap.L()
	}
	hub := d.Hub
	if hub == nil {
		hub = realtime.NewHub(log)
	}
	return &Handler{repo: d.Repo, sess: d.Session, issuer: d.Issuer, hub: hub, log: log}
}

func (h *Handler) abort(c *gin.Context, code int, msgKey string) {
	c.AbortWithStatusJSON(code, apierrors.CreateError(code, msgKey, middleware.GetLang(c)))
}

// fail maps a domain or storage error to a response.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, models.ErrTaskNotFound):
		h.abort(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
	case errors.Is(err, models.ErrProjectNotFound):
		h.abort(c, http.StatusNotFound, apierrors.MsgProjectNotFound)
	case errors.Is(err, models.ErrUserNotFound):
		h.abort(c, http.StatusNotFound, apierrors.MsgUserNotFound)
	case errors.Is(err, models.ErrInvalidStatus):
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidStatus)
	case errors.Is(err, models.ErrInvalidPriority):
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPriority)
	case errors.Is(err, store.ErrQuotaExceeded), errors.Is(err, store.ErrWrite):
		h.abort(c, http.StatusInternalServerError, apierrors.MsgStorageWriteFailed)
	default:
		h.abort(c, http.StatusInternalServerError, apierrors.MsgInternalError)
	}
}

func (h *Handler) invalid(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		apierrors.ValidationError(http.StatusBadRequest, fields, middleware.GetLang(c)))
}

func (h *Handler) publish(c *gin.Context, action realtime.Action, collection, id string) {
	h.hub.Publish(realtime.Event{
		Type:       action,
		Collection: collection,
		EntityID:   id,
		ActorID:    c.GetString(middleware.CtxUserID),
		At:         h.repo.Now(),
	})
}

// notifyAssignee tells a task's assignee it was handed to them, unless they
// did it themselves.
func (h *Handler) notifyAssignee(c *gin.Context, task models.Task) {
	actor := c.GetString(middleware.CtxUserID)
	if task.AssigneeID == nil || *task.AssigneeID == actor {
		return
	}
	h.hub.Notify(*task.AssigneeID, realtime.Event{
		Type:       realtime.ActionAssigned,
		Collection: "tasks",
		EntityID:   task.ID,
		ActorID:    actor,
		At:         h.repo.Now(),
	})
}

func (h *Handler) now() time.Time {
	return h.repo.Now()
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "SynergySphere API is running",
	})
}
