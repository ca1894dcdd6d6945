package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synergysphere/internal/models"
	"synergysphere/internal/repository"
	"synergysphere/internal/store"
	"synergysphere/internal/testutil"
)

func TestDemoData_Deterministic(t *testing.T) {
	a := DemoData()
	b := DemoData()
	assert.Equal(t, a, b)

	// fresh values on every call
	a.Users[0].Name = "changed"
	assert.Equal(t, "Demo User", DemoData().Users[0].Name)
}

func TestDemoData_Shape(t *testing.T) {
	d := DemoData()
	require.Len(t, d.Users, 4)
	require.Len(t, d.Projects, 3)
	require.Len(t, d.Tasks, 9)

	for i, u := range d.Users {
		assert.Equal(t, string(rune('1'+i)), u.ID)
	}
	projects := map[string]bool{}
	for _, p := range d.Projects {
		projects[p.ID] = true
		assert.True(t, p.HasMember(p.OwnerID))
	}
	for _, task := range d.Tasks {
		assert.True(t, projects[task.ProjectID], "task %s references a seeded project", task.ID)
		assert.True(t, task.Status.Valid())
		assert.True(t, task.Priority.Valid())
		require.NotNil(t, task.DueDate)
	}
}

func TestInitialize_EmptyStore(t *testing.T) {
	s, _ := testutil.NewMemoryStore()
	repo := repository.New(s)

	res, err := Initialize(repo)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: true, Projects: true, Tasks: true, Notifications: true}, res)

	users := repo.Users()
	require.Len(t, users, 4)
	ids := []string{users[0].ID, users[1].ID, users[2].ID, users[3].ID}
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids)
	assert.Len(t, repo.Projects(), 3)
	assert.Len(t, repo.Tasks(), 9)
	assert.True(t, s.Has(store.KeyNotifications))
	assert.Empty(t, repo.Notifications())
}

func TestInitialize_Idempotent(t *testing.T) {
	s, b := testutil.NewMemoryStore()
	repo := repository.New(s)

	_, err := Initialize(repo)
	require.NoError(t, err)
	_, err = repo.SetTaskStatus("3", models.StatusDone)
	require.NoError(t, err)

	before := map[string]string{}
	for _, k := range store.Keys {
		v, _, _ := b.Read(store.DefaultNamespace + k)
		before[k] = v
	}

	res, err := Initialize(repo)
	require.NoError(t, err)
	assert.False(t, res.Any())

	for _, k := range store.Keys {
		v, _, _ := b.Read(store.DefaultNamespace + k)
		assert.Equal(t, before[k], v, k)
	}
}

func TestInitialize_OnlyFillsMissingCollections(t *testing.T) {
	s, _ := testutil.NewMemoryStore()
	repo := repository.New(s)
	require.NoError(t, repo.SaveUsers([]models.User{{ID: "me", Name: "Me"}}))
	require.NoError(t, repo.SaveTasks([]models.Task{}))

	res, err := Initialize(repo)
	require.NoError(t, err)
	assert.Equal(t, Result{Projects: true, Notifications: true}, res)

	users := repo.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "me", users[0].ID)
	assert.Empty(t, repo.Tasks())
	assert.Len(t, repo.Projects(), 3)
}

func TestInitialize_WriteFailure(t *testing.T) {
	b := store.NewMemoryBackend(store.MemoryOptions{Quota: 128})
	repo := repository.New(store.New(b))

	_, err := Initialize(repo)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
}
