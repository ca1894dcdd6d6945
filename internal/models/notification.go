package models

import "time"

// NotificationType identifies what a notification is about
type NotificationType string

const (
	NotificationTaskAssigned  NotificationType = "task_assigned"
	NotificationTaskDue       NotificationType = "task_due"
	NotificationTaskCompleted NotificationType = "task_completed"
	NotificationProjectInvite NotificationType = "project_invite"
	NotificationCommentAdded  NotificationType = "comment_added"
)

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTaskAssigned, NotificationTaskDue, NotificationTaskCompleted,
		NotificationProjectInvite, NotificationCommentAdded:
		return true
	}
	return false
}

// Notification is an alert addressed to a single user.
// Nothing produces notifications yet; the collection is stored and read as-is.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
	RelatedID *string          `json:"relatedId,omitempty"`
}

// Comment is a note left on a task. It has no storage path.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
