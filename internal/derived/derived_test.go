package derived

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synergysphere/internal/models"
	"synergysphere/internal/seed"
)

var now = time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)

func task(status models.TaskStatus, due *time.Time) models.Task {
	return models.Task{ID: "t", Status: status, Priority: models.PriorityMedium, DueDate: due}
}

func TestComputeProgress(t *testing.T) {
	assert.Equal(t, Progress{}, ComputeProgress(nil))

	tasks := []models.Task{
		task(models.StatusDone, nil),
		task(models.StatusTodo, nil),
		task(models.StatusInProgress, nil),
	}
	assert.Equal(t, Progress{Completed: 1, Total: 3, Percentage: 33}, ComputeProgress(tasks))

	tasks = append(tasks, task(models.StatusDone, nil))
	assert.Equal(t, 50, ComputeProgress(tasks).Percentage)

	two := []models.Task{task(models.StatusDone, nil), task(models.StatusDone, nil), task(models.StatusTodo, nil)}
	assert.Equal(t, 67, ComputeProgress(two).Percentage)
}

func TestComputeProgress_PercentageInRange(t *testing.T) {
	statuses := append([]models.TaskStatus{"bogus"}, models.TaskStatuses...)
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := r.Intn(40)
		tasks := make([]models.Task, n)
		for j := range tasks {
			tasks[j] = task(statuses[r.Intn(len(statuses))], nil)
		}
		p := ComputeProgress(tasks)
		require.GreaterOrEqual(t, p.Percentage, 0)
		require.LessOrEqual(t, p.Percentage, 100)
		require.Equal(t, n, p.Total)
		if n == 0 {
			require.Equal(t, 0, p.Percentage)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	assert.True(t, IsOverdue(task(models.StatusTodo, &yesterday), now))
	assert.True(t, IsOverdue(task(models.StatusInProgress, &yesterday), now))
	assert.False(t, IsOverdue(task(models.StatusDone, &yesterday), now))
	assert.False(t, IsOverdue(task(models.StatusTodo, &tomorrow), now))
	assert.False(t, IsOverdue(task(models.StatusTodo, nil), now))
	assert.False(t, IsOverdue(task(models.StatusTodo, &time.Time{}), now), "invalid date is never overdue")
}

func TestIsOverdue_DoneOrUndatedNeverOverdue(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		due := now.Add(time.Duration(r.Int63n(int64(2000*time.Hour))) - 1000*time.Hour)
		assert.False(t, IsOverdue(task(models.StatusDone, &due), now))
		assert.False(t, IsOverdue(task(models.TaskStatuses[r.Intn(3)], nil), now))
	}
}

func TestRelativeDateLabel(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"earlier today", now.Add(-3 * time.Hour), LabelToday},
		{"later today", now.Add(5 * time.Hour), LabelToday},
		{"tomorrow", now.AddDate(0, 0, 1), LabelTomorrow},
		{"tomorrow midnight", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), LabelTomorrow},
		{"yesterday", now.AddDate(0, 0, -1), LabelOverdue},
		{"last year", now.AddDate(-1, 0, 0), LabelOverdue},
		{"next week", time.Date(2026, 10, 24, 9, 0, 0, 0, time.UTC), "Oct 24, 2026"},
		{"zero", time.Time{}, LabelInvalid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, RelativeDateLabel(c.date, now))
		})
	}
}

func TestRelativeDateLabel_UsesNowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	localNow := time.Date(2026, 10, 18, 1, 0, 0, 0, tokyo) // 2026-10-17 16:00 UTC
	due := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)  // 2026-10-18 05:00 JST
	assert.Equal(t, LabelToday, RelativeDateLabel(due, localNow))
}

func TestFormatting(t *testing.T) {
	d := time.Date(2024, 1, 5, 16, 7, 0, 0, time.UTC)
	assert.Equal(t, "Jan 05, 2024", FormatDate(d))
	assert.Equal(t, "Jan 05, 2024 16:07", FormatDateTime(d))
	assert.Equal(t, LabelInvalid, FormatDate(time.Time{}))
	assert.Equal(t, LabelInvalid, FormatDateTime(time.Time{}))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AJ", Initials("Alice Johnson"))
	assert.Equal(t, "DU", Initials("demo user extra"))
	assert.Equal(t, "B", Initials("bob"))
	assert.Equal(t, "ÉS", Initials("élodie  smith"))
	assert.Equal(t, "", Initials(""))
}

func TestStyles(t *testing.T) {
	assert.Equal(t, Style{Label: "In Progress", Class: "bg-blue-100 text-blue-800"}, StatusStyle(models.StatusInProgress))
	assert.Equal(t, Style{Label: "High", Class: "bg-red-100 text-red-800"}, PriorityStyle(models.PriorityHigh))
	assert.Equal(t, NeutralClass, StatusStyle("archived").Class)
	assert.Equal(t, "archived", StatusStyle("archived").Label)
	assert.Equal(t, NeutralClass, PriorityStyle("").Class)
}

func TestFilterTasks(t *testing.T) {
	tasks := seed.DemoData().Tasks

	got := FilterTasks(tasks, TaskFilter{Search: "DESIGN"})
	titles := make([]string, 0, len(got))
	for _, t := range got {
		titles = append(titles, t.Title)
	}
	assert.Equal(t, []string{
		"Design new homepage layout",
		"Design app icon and splash screen",
		"Design promotional materials",
	}, titles)

	// description matches count too
	assert.Len(t, FilterTasks(tasks, TaskFilter{Search: "lazy loading"}), 1)

	assert.Len(t, FilterTasks(tasks, TaskFilter{Status: models.StatusDone}), 3)
	assert.Len(t, FilterTasks(tasks, TaskFilter{Priority: models.PriorityLow}), 2)
	assert.Len(t, FilterTasks(tasks, TaskFilter{Status: models.StatusTodo, Priority: models.PriorityLow}), 2)
	assert.Len(t, FilterTasks(tasks, TaskFilter{}), 9)
	assert.Empty(t, FilterTasks(tasks, TaskFilter{Search: "zzz"}))
}

func TestParseTaskFilter(t *testing.T) {
	f, err := ParseTaskFilter("design", "all", "ALL")
	require.NoError(t, err)
	assert.Equal(t, TaskFilter{Search: "design"}, f)

	f, err = ParseTaskFilter("", "done", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, f.Status)
	assert.Len(t, FilterTasks(seed.DemoData().Tasks, f), 3)

	_, err = ParseTaskFilter("", "blocked", "")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
	_, err = ParseTaskFilter("", "", "urgent")
	assert.ErrorIs(t, err, models.ErrInvalidPriority)
}

func TestFilterTasks_Fuzzy(t *testing.T) {
	tasks := seed.DemoData().Tasks
	query := "set up analytcs tracking"

	assert.Empty(t, FilterTasks(tasks, TaskFilter{Search: query}))
	got := FilterTasks(tasks, TaskFilter{Search: query, Fuzzy: true})
	ids := make([]string, 0, len(got))
	for _, t := range got {
		ids = append(ids, t.ID)
	}
	assert.Contains(t, ids, "9")
	assert.NotContains(t, ids, "7")
}

func TestFilterProjects(t *testing.T) {
	d := seed.DemoData()
	projects := append(d.Projects, models.Project{ID: "4", Name: "Empty", Description: "no tasks"})
	tasks := d.Tasks
	// finish every task in project 3
	for i := range tasks {
		if tasks[i].ProjectID == "3" {
			tasks[i].Status = models.StatusDone
		}
	}

	ids := func(ps []models.Project) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(FilterProjects(projects, tasks, ProjectFilter{Status: ProjectsAll})))
	assert.Equal(t, []string{"1", "2", "4"}, ids(FilterProjects(projects, tasks, ProjectFilter{Status: ProjectsActive})))
	assert.Equal(t, []string{"3"}, ids(FilterProjects(projects, tasks, ProjectFilter{Status: ProjectsCompleted})))
	assert.Equal(t, []string{"2"}, ids(FilterProjects(projects, tasks, ProjectFilter{Search: "ios"})))
	assert.Empty(t, FilterProjects(projects, tasks, ProjectFilter{Search: "mobile", Status: ProjectsCompleted}))
}

func TestComputeProjectStats(t *testing.T) {
	tasks := seed.DemoData().Tasks[:3] // Website Redesign, all due in early 2024
	s := ComputeProjectStats(tasks, now)
	assert.Equal(t, ProjectStats{
		TotalTasks:         3,
		CompletedTasks:     1,
		OverdueTasks:       2,
		HighPriorityTasks:  1,
		ProgressPercentage: 33,
	}, s)
}

func TestComputeDashboardStats(t *testing.T) {
	d := seed.DemoData()
	s := ComputeDashboardStats(d.Projects, d.Tasks, now)
	assert.Equal(t, DashboardStats{
		TotalProjects:     3,
		ActiveProjects:    3,
		CompletedProjects: 0,
		TotalTasks:        9,
		CompletedTasks:    3,
		OverdueTasks:      6,
	}, s)

	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, ComputeDashboardStats(d.Projects, d.Tasks, early).OverdueTasks)
}

func TestProjectHealth(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 7)

	done := []models.Task{task(models.StatusDone, &yesterday)}
	assert.Equal(t, Health{State: HealthCompleted, Label: "Completed"}, ProjectHealth(done, now))

	late := []models.Task{task(models.StatusTodo, &yesterday), task(models.StatusTodo, &yesterday), task(models.StatusDone, nil)}
	assert.Equal(t, Health{State: HealthOverdue, Overdue: 2, Label: "2 Overdue"}, ProjectHealth(late, now))

	onTrack := []models.Task{task(models.StatusTodo, &nextWeek)}
	assert.Equal(t, Health{State: HealthInProgress, Label: "In Progress"}, ProjectHealth(onTrack, now))
	assert.Equal(t, HealthInProgress, ProjectHealth(nil, now).State)
}

func TestGroupByProject(t *testing.T) {
	groups := GroupByProject(seed.DemoData().Tasks)
	assert.Len(t, groups, 3)
	assert.Len(t, groups["2"], 3)
	assert.Equal(t, "4", groups["2"][0].ID)
}
