// Package repository gives typed access to the entity collections kept in
// the store. Every collection is read and written whole; the fine-grained
// operations are read-modify-write cycles serialized by a mutex.
package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"synergysphere/internal/models"
	"synergysphere/internal/store"
)

// Repository is the typed accessor layer over a store.Store.
type Repository struct {
	store *store.Store

	// mu serializes read-modify-write cycles on whole collections.
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator replaces the uuid generator for new entity ids.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) { r.newID = gen }
}

// New returns a repository backed by s.
func New(s *store.Store, opts ...Option) *Repository {
	r := &Repository{
		store: s,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store exposes the underlying entity store.
func (r *Repository) Store() *store.Store {
	return r.store
}

// Now returns the repository clock's current time.
func (r *Repository) Now() time.Time {
	return r.now()
}

// NewID mints an id the same way entity creation does.
func (r *Repository) NewID() string {
	return r.newID()
}

func (r *Repository) list(key string) []json.RawMessage {
	var raw []json.RawMessage
	if !r.store.Get(key, &raw) {
		return nil
	}
	return raw
}

// Users returns every stored user in insertion order.
func (r *Repository) Users() []models.User {
	return decodeEach(r.list(store.KeyUsers), userRecord.model)
}

// SaveUsers replaces the user collection.
func (r *Repository) SaveUsers(users []models.User) error {
	return r.store.Set(store.KeyUsers, nonNil(users))
}

// Projects returns every stored project in insertion order.
func (r *Repository) Projects() []models.Project {
	return decodeEach(r.list(store.KeyProjects), projectRecord.model)
}

// SaveProjects replaces the project collection.
func (r *Repository) SaveProjects(projects []models.Project) error {
	return r.store.Set(store.KeyProjects, nonNil(projects))
}

// Tasks returns every stored task in insertion order.
func (r *Repository) Tasks() []models.Task {
	return decodeEach(r.list(store.KeyTasks), taskRecord.model)
}

// SaveTasks replaces the task collection.
func (r *Repository) SaveTasks(tasks []models.Task) error {
	return r.store.Set(store.KeyTasks, nonNil(tasks))
}

// Notifications returns every stored notification in insertion order.
func (r *Repository) Notifications() []models.Notification {
	return decodeEach(r.list(store.KeyNotifications), notificationRecord.model)
}

// SaveNotifications replaces the notification collection.
func (r *Repository) SaveNotifications(notifications []models.Notification) error {
	return r.store.Set(store.KeyNotifications, nonNil(notifications))
}

// NotificationsFor returns the notifications addressed to userID.
func (r *Repository) NotificationsFor(userID string) []models.Notification {
	var out []models.Notification
	for _, n := range r.Notifications() {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// CurrentUser returns the session pointer, or nil when nobody is logged in.
func (r *Repository) CurrentUser() *models.User {
	var rec userRecord
	if !r.store.Get(store.KeyCurrentUser, &rec) {
		return nil
	}
	u := rec.model()
	return &u
}

// SaveCurrentUser persists the session pointer. A nil user removes it.
func (r *Repository) SaveCurrentUser(u *models.User) error {
	if u == nil {
		return r.store.Remove(store.KeyCurrentUser)
	}
	return r.store.Set(store.KeyCurrentUser, u)
}

// User looks up a user by id.
func (r *Repository) User(id string) (models.User, error) {
	for _, u := range r.Users() {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

// UserByEmail looks up a user by email, ignoring case.
func (r *Repository) UserByEmail(email string) (models.User, error) {
	email = strings.TrimSpace(email)
	for _, u := range r.Users() {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

// AddUser appends u to the user collection, minting an id and creation
// time when they are empty.
func (r *Repository) AddUser(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		u.ID = r.newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now()
	}
	users := append(r.Users(), u)
	if err := r.SaveUsers(users); err != nil {
		return models.User{}, fmt.Errorf("add user: %w", err)
	}
	return u, nil
}

// AssigneeName resolves a task's assignee to a display name. Dangling or
// empty references read as unassigned.
func (r *Repository) AssigneeName(t models.Task) (string, bool) {
	if !t.IsAssigned() {
		return "", false
	}
	u, err := r.User(*t.AssigneeID)
	if err != nil {
		return "", false
	}
	return u.Name, true
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
