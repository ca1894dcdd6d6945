package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_Valid(t *testing.T) {
	for _, s := range TaskStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, TaskStatus("inProgress").Valid())
	assert.False(t, TaskStatus("").Valid())
}

func TestTaskPriority_Valid(t *testing.T) {
	for _, p := range TaskPriorities {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, TaskPriority("urgent").Valid())
}

func TestNotificationType_Valid(t *testing.T) {
	assert.True(t, NotificationCommentAdded.Valid())
	assert.False(t, NotificationType("mention").Valid())
}

func TestProject_HasMember(t *testing.T) {
	p := Project{OwnerID: "1", Members: []string{"2", "3"}}
	assert.True(t, p.HasMember("1"))
	assert.True(t, p.HasMember("3"))
	assert.False(t, p.HasMember("4"))
}

func TestTask_IsAssigned(t *testing.T) {
	empty := ""
	bob := "3"
	assert.False(t, Task{}.IsAssigned())
	assert.False(t, Task{AssigneeID: &empty}.IsAssigned())
	assert.True(t, Task{AssigneeID: &bob}.IsAssigned())
}
