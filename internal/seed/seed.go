// Package seed holds the fixed demo dataset a fresh store starts from.
package seed

import (
	"errors"
	"fmt"
	"time"

	"synergysphere/internal/models"
	"synergysphere/internal/repository"
	"synergysphere/internal/store"
)

// Dataset is the demo content written on first run.
type Dataset struct {
	Users    []models.User
	Projects []models.Project
	Tasks    []models.Task
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func ref(id string) *string {
	return &id
}

// DemoData returns the demo dataset. Every call builds fresh values with the
// same ids and contents.
func DemoData() Dataset {
	users := []models.User{
		{ID: "1", Name: "Demo User", Email: "demo@synergysphere.com", CreatedAt: day("2024-01-01")},
		{ID: "2", Name: "Alice Johnson", Email: "alice@example.com", CreatedAt: day("2024-01-02")},
		{ID: "3", Name: "Bob Smith", Email: "bob@example.com", CreatedAt: day("2024-01-03")},
		{ID: "4", Name: "Carol Davis", Email: "carol@example.com", CreatedAt: day("2024-01-04")},
	}

	projects := []models.Project{
		{
			ID:          "1",
			Name:        "Website Redesign",
			Description: "Complete redesign of the company website with modern UI/UX",
			OwnerID:     "1",
			Members:     []string{"1", "2", "3"},
			CreatedAt:   day("2024-01-15"),
			UpdatedAt:   day("2024-01-20"),
		},
		{
			ID:          "2",
			Name:        "Mobile App Development",
			Description: "Build a cross-platform mobile application for iOS and Android",
			OwnerID:     "1",
			Members:     []string{"1", "2", "4"},
			CreatedAt:   day("2024-01-10"),
			UpdatedAt:   day("2024-01-22"),
		},
		{
			ID:          "3",
			Name:        "Marketing Campaign",
			Description: "Launch a comprehensive marketing campaign for Q2 2024",
			OwnerID:     "1",
			Members:     []string{"1", "3", "4"},
			CreatedAt:   day("2024-01-05"),
			UpdatedAt:   day("2024-01-18"),
		},
	}

	task := func(id, title, desc, project, assignee string, status models.TaskStatus, priority models.TaskPriority, due, created, updated string) models.Task {
		return models.Task{
			ID:          id,
			Title:       title,
			Description: desc,
			ProjectID:   project,
			AssigneeID:  ref(assignee),
			Status:      status,
			Priority:    priority,
			DueDate:     dayPtr(due),
			CreatedAt:   day(created),
			UpdatedAt:   day(updated),
		}
	}

	tasks := []models.Task{
		// Website Redesign
		task("1", "Design new homepage layout", "Create wireframes and mockups for the new homepage design",
			"1", "2", models.StatusDone, models.PriorityHigh, "2024-01-25", "2024-01-15", "2024-01-20"),
		task("2", "Implement responsive navigation", "Build responsive navigation component with mobile menu",
			"1", "3", models.StatusInProgress, models.PriorityHigh, "2024-01-30", "2024-01-16", "2024-01-22"),
		task("3", "Optimize page loading speed", "Implement performance optimizations and lazy loading",
			"1", "2", models.StatusTodo, models.PriorityMedium, "2024-02-05", "2024-01-18", "2024-01-18"),
		// Mobile App Development
		task("4", "Set up React Native project", "Initialize React Native project with TypeScript and navigation",
			"2", "4", models.StatusDone, models.PriorityHigh, "2024-01-20", "2024-01-10", "2024-01-19"),
		task("5", "Implement user authentication", "Build login and registration screens with API integration",
			"2", "2", models.StatusInProgress, models.PriorityHigh, "2024-02-01", "2024-01-12", "2024-01-21"),
		task("6", "Design app icon and splash screen", "Create app icon and splash screen assets",
			"2", "4", models.StatusTodo, models.PriorityLow, "2024-02-10", "2024-01-14", "2024-01-14"),
		// Marketing Campaign
		task("7", "Create social media content calendar", "Plan and schedule social media posts for the campaign",
			"3", "3", models.StatusDone, models.PriorityMedium, "2024-01-15", "2024-01-05", "2024-01-14"),
		task("8", "Design promotional materials", "Create banners, flyers, and digital assets for promotion",
			"3", "4", models.StatusInProgress, models.PriorityMedium, "2024-01-28", "2024-01-08", "2024-01-21"),
		task("9", "Set up analytics tracking", "Implement Google Analytics and conversion tracking",
			"3", "3", models.StatusTodo, models.PriorityLow, "2024-02-15", "2024-01-10", "2024-01-10"),
	}

	return Dataset{Users: users, Projects: projects, Tasks: tasks}
}

// Result reports which collections Initialize wrote.
type Result struct {
	Users         bool
	Projects      bool
	Tasks         bool
	Notifications bool
}

// Any reports whether anything was written.
func (r Result) Any() bool {
	return r.Users || r.Projects || r.Tasks || r.Notifications
}

// Initialize writes each demo collection whose key is currently absent and
// an empty notification list when that is absent. Existing data is never
// overwritten, so a second call is a no-op.
func Initialize(repo *repository.Repository) (Result, error) {
	var res Result
	var errs []error
	s := repo.Store()

	if !s.Has(store.KeyUsers) {
		if err := repo.SaveUsers(DemoData().Users); err != nil {
			errs = append(errs, err)
		} else {
			res.Users = true
		}
	}
	if !s.Has(store.KeyProjects) {
		if err := repo.SaveProjects(DemoData().Projects); err != nil {
			errs = append(errs, err)
		} else {
			res.Projects = true
		}
	}
	if !s.Has(store.KeyTasks) {
		if err := repo.SaveTasks(DemoData().Tasks); err != nil {
			errs = append(errs, err)
		} else {
			res.Tasks = true
		}
	}
	if !s.Has(store.KeyNotifications) {
		if err := repo.SaveNotifications([]models.Notification{}); err != nil {
			errs = append(errs, err)
		} else {
			res.Notifications = true
		}
	}

	if err := errors.Join(errs...); err != nil {
		return res, fmt.Errorf("seed store: %w", err)
	}
	return res, nil
}
