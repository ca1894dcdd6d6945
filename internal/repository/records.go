package repository

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"synergysphere/internal/models"
)

// dateLayouts are tried in order when rehydrating a stored date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02", // ISO date
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseDate turns stored text into an instant. It reports false for anything
// it cannot read; callers treat that as an absent date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// storedDate decodes a stored date field without ever failing the
// surrounding record. Strings go through ParseDate, numbers are Unix
// milliseconds, everything else is absent.
type storedDate struct {
	t  time.Time
	ok bool
}

func (d *storedDate) UnmarshalJSON(b []byte) error {
	*d = storedDate{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		d.t, d.ok = ParseDate(s)
		return nil
	}
	if ms, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		d.t, d.ok = time.UnixMilli(ms).UTC(), true
	}
	return nil
}

// required returns the instant, or the zero time when absent.
func (d storedDate) required() time.Time {
	if !d.ok {
		return time.Time{}
	}
	return d.t
}

func (d storedDate) optional() *time.Time {
	if !d.ok {
		return nil
	}
	t := d.t
	return &t
}

type userRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Avatar    *string    `json:"avatar"`
	CreatedAt storedDate `json:"createdAt"`
}

func (r userRecord) model() models.User {
	return models.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Avatar:    r.Avatar,
		CreatedAt: r.CreatedAt.required(),
	}
}

type projectRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	OwnerID     string     `json:"ownerId"`
	Members     []string   `json:"members"`
	CreatedAt   storedDate `json:"createdAt"`
	UpdatedAt   storedDate `json:"updatedAt"`
}

func (r projectRecord) model() models.Project {
	members := r.Members
	if members == nil {
		members = []string{}
	}
	return models.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		OwnerID:     r.OwnerID,
		Members:     members,
		CreatedAt:   r.CreatedAt.required(),
		UpdatedAt:   r.UpdatedAt.required(),
	}
}

type taskRecord struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ProjectID   string              `json:"projectId"`
	AssigneeID  *string             `json:"assigneeId"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     storedDate          `json:"dueDate"`
	CreatedAt   storedDate          `json:"createdAt"`
	UpdatedAt   storedDate          `json:"updatedAt"`
}

func (r taskRecord) model() models.Task {
	assignee := r.AssigneeID
	if assignee != nil && *assignee == "" {
		assignee = nil
	}
	status, priority := r.Status, r.Priority
	if !status.Valid() {
		status = models.StatusTodo
	}
	if !priority.Valid() {
		priority = models.PriorityMedium
	}
	return models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		AssigneeID:  assignee,
		Status:      status,
		Priority:    priority,
		DueDate:     r.DueDate.optional(),
		CreatedAt:   r.CreatedAt.required(),
		UpdatedAt:   r.UpdatedAt.required(),
	}
}

type notificationRecord struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Read      bool                    `json:"read"`
	CreatedAt storedDate              `json:"createdAt"`
	RelatedID *string                 `json:"relatedId"`
}

func (r notificationRecord) model() models.Notification {
	return models.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Type:      r.Type,
		Title:     r.Title,
		Message:   r.Message,
		Read:      r.Read,
		CreatedAt: r.CreatedAt.required(),
		RelatedID: r.RelatedID,
	}
}

// decodeEach unmarshals every element of a stored list on its own so that
// one damaged record does not cost the whole collection.
func decodeEach[R any, M any](raw []json.RawMessage, toModel func(R) M) []M {
	out := make([]M, 0, len(raw))
	for _, item := range raw {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var r R
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		out = append(out, toModel(r))
	}
	return out
}
