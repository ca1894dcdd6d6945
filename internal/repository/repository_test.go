package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synergysphere/internal/models"
	"synergysphere/internal/store"
	"synergysphere/internal/testutil"
)

var base = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, *store.MemoryBackend, *testutil.Clock) {
	t.Helper()
	s, b := testutil.NewMemoryStore()
	clock := testutil.NewClock(base)
	return New(s, WithClock(clock.Now), WithIDGenerator(testutil.SequentialIDs("id"))), b, clock
}

func ptr[T any](v T) *T { return &v }

func TestTasks_RoundTripRehydratesDates(t *testing.T) {
	repo, _, _ := newRepo(t)
	due := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	in := []models.Task{
		{
			ID: "1", Title: "a", Description: "d", ProjectID: "p1", AssigneeID: ptr("2"),
			Status: models.StatusTodo, Priority: models.PriorityHigh, DueDate: &due,
			CreatedAt: base, UpdatedAt: base.Add(time.Hour),
		},
		{
			ID: "2", Title: "b", ProjectID: "p1",
			Status: models.StatusDone, Priority: models.PriorityLow,
			CreatedAt: base, UpdatedAt: base,
		},
	}
	require.NoError(t, repo.SaveTasks(in))

	got := repo.Tasks()
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, got[i].ID)
		assert.True(t, in[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.True(t, in[i].UpdatedAt.Equal(got[i].UpdatedAt))
	}
	require.NotNil(t, got[0].DueDate)
	assert.True(t, due.Equal(*got[0].DueDate))
	assert.Nil(t, got[1].DueDate)
	assert.Nil(t, got[1].AssigneeID)
}

func TestUsersProjectsNotifications_RoundTrip(t *testing.T) {
	repo, _, _ := newRepo(t)

	users := []models.User{{ID: "1", Name: "Demo", Email: "demo@x.com", CreatedAt: base}}
	projects := []models.Project{{ID: "1", Name: "P", OwnerID: "1", Members: []string{"1"}, CreatedAt: base, UpdatedAt: base}}
	notes := []models.Notification{{ID: "n1", UserID: "1", Type: models.NotificationTaskDue, Title: "t", CreatedAt: base, RelatedID: ptr("3")}}
	require.NoError(t, repo.SaveUsers(users))
	require.NoError(t, repo.SaveProjects(projects))
	require.NoError(t, repo.SaveNotifications(notes))

	assert.Equal(t, users[0].Email, repo.Users()[0].Email)
	assert.True(t, repo.Users()[0].CreatedAt.Equal(base))
	assert.Equal(t, projects[0].Members, repo.Projects()[0].Members)
	gotNotes := repo.Notifications()
	require.Len(t, gotNotes, 1)
	assert.Equal(t, "3", *gotNotes[0].RelatedID)
	assert.Len(t, repo.NotificationsFor("1"), 1)
	assert.Empty(t, repo.NotificationsFor("2"))
}

func TestRehydration_StoredTextFormats(t *testing.T) {
	repo, b, _ := newRepo(t)
	raw := `[
		{"id":"1","title":"js iso","projectId":"1","status":"todo","priority":"low",
		 "dueDate":"2024-01-25T00:00:00.000Z","createdAt":"2024-01-15T00:00:00.000Z","updatedAt":"2024-01-20T00:00:00.000Z"},
		{"id":"2","title":"date only","projectId":"1","status":"todo","priority":"low",
		 "dueDate":"2024-02-05","createdAt":1705276800000,"updatedAt":"15 Jan 2024"},
		{"id":"3","title":"garbage","projectId":"1","status":"todo","priority":"low",
		 "dueDate":"not a date","createdAt":"","updatedAt":{"x":1}},
		{"id":"4","title":"unknown enums","projectId":"1","status":"blocked","priority":"urgent",
		 "createdAt":"2024-01-15","updatedAt":"2024-01-15"},
		"not an object",
		null
	]`
	require.NoError(t, b.Write(store.DefaultNamespace+store.KeyTasks, raw))

	got := repo.Tasks()
	require.Len(t, got, 4)

	assert.True(t, got[0].DueDate.Equal(time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got[1].DueDate.Equal(time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got[1].CreatedAt.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got[1].UpdatedAt.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))

	// unparseable dates fail closed
	assert.Nil(t, got[2].DueDate)
	assert.True(t, got[2].CreatedAt.IsZero())
	assert.True(t, got[2].UpdatedAt.IsZero())

	// unknown enum values fall back to the creation defaults
	assert.Equal(t, models.StatusTodo, got[3].Status)
	assert.Equal(t, models.PriorityMedium, got[3].Priority)
}

func TestCollections_AbsentAndCorrupt(t *testing.T) {
	repo, b, _ := newRepo(t)
	assert.Empty(t, repo.Users())

	require.NoError(t, b.Write(store.DefaultNamespace+store.KeyUsers, "[{broken"))
	assert.Empty(t, repo.Users())
}

func TestSaveNilCollectionWritesEmptyList(t *testing.T) {
	repo, b, _ := newRepo(t)
	require.NoError(t, repo.SaveNotifications(nil))
	v, ok, _ := b.Read(store.DefaultNamespace + store.KeyNotifications)
	require.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestCurrentUser(t *testing.T) {
	repo, _, _ := newRepo(t)
	assert.Nil(t, repo.CurrentUser())

	u := models.User{ID: "1", Name: "demo", Email: "demo@x.com", CreatedAt: base}
	require.NoError(t, repo.SaveCurrentUser(&u))

	got := repo.CurrentUser()
	require.NotNil(t, got)
	assert.Equal(t, "demo", got.Name)
	assert.True(t, got.CreatedAt.Equal(base))
	assert.Empty(t, repo.Users(), "session pointer is independent of the user list")

	require.NoError(t, repo.SaveCurrentUser(nil))
	assert.Nil(t, repo.CurrentUser())
}

func TestUserLookups(t *testing.T) {
	repo, _, _ := newRepo(t)
	require.NoError(t, repo.SaveUsers([]models.User{
		{ID: "1", Name: "Demo User", Email: "demo@synergysphere.com"},
		{ID: "2", Name: "Alice", Email: "alice@example.com"},
	}))

	u, err := repo.User("2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	_, err = repo.User("9")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	u, err = repo.UserByEmail(" DEMO@synergysphere.com ")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	added, err := repo.AddUser(models.User{Name: "New", Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", added.ID)
	assert.True(t, added.CreatedAt.Equal(base))
	assert.Len(t, repo.Users(), 3)
}

func TestAssigneeName_ToleratesDanglingReference(t *testing.T) {
	repo, _, _ := newRepo(t)
	require.NoError(t, repo.SaveUsers([]models.User{{ID: "2", Name: "Alice"}}))

	name, ok := repo.AssigneeName(models.Task{AssigneeID: ptr("2")})
	assert.True(t, ok)
	assert.Equal(t, "Alice", name)

	_, ok = repo.AssigneeName(models.Task{AssigneeID: ptr("deleted")})
	assert.False(t, ok)
	_, ok = repo.AssigneeName(models.Task{})
	assert.False(t, ok)
}

func TestSaveFailureSurfaces(t *testing.T) {
	b := store.NewMemoryBackend(store.MemoryOptions{Quota: 64})
	repo := New(store.New(b))

	_, err := repo.CreateProject(NewProject{Name: "a project whose serialized form is far too large", OwnerID: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
	assert.Empty(t, repo.Projects())
}
