package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"synergysphere/internal/derived"
	"synergysphere/internal/models"
	"synergysphere/internal/render"
	"synergysphere/internal/seed"
)

var (
	tasksProject  string
	tasksStatus   string
	tasksPriority string
	tasksSearch   string
	tasksFuzzy    bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks",
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().StringVar(&tasksProject, "project", "", "Only tasks of this project id")
	tasksCmd.Flags().StringVar(&tasksStatus, "status", "", "Only tasks with this status (todo, in_progress, done, all)")
	tasksCmd.Flags().StringVar(&tasksPriority, "priority", "", "Only tasks with this priority (low, medium, high, all)")
	tasksCmd.Flags().StringVar(&tasksSearch, "search", "", "Match title or description")
	tasksCmd.Flags().BoolVar(&tasksFuzzy, "fuzzy", false, "Also match titles approximately")
}

// seedIfEnabled fills empty collections for read-only commands when the
// seed setting is on.
func seedIfEnabled(a *app) {
	if !a.cfg.Seed {
		return
	}
	if _, err := seed.Initialize(a.repo); err != nil {
		a.log.Warn("failed to seed store", zap.Error(err))
	}
}

func runTasks(cmd *cobra.Command, args []string) error {
	filter, err := derived.ParseTaskFilter(tasksSearch, tasksStatus, tasksPriority)
	if err != nil {
		return err
	}
	filter.Fuzzy = tasksFuzzy

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()
	seedIfEnabled(a)

	var tasks []models.Task
	if tasksProject != "" {
		if _, err := a.repo.Project(tasksProject); err != nil {
			return fmt.Errorf("project %s: %w", tasksProject, err)
		}
		tasks = a.repo.TasksByProject(tasksProject)
	} else {
		tasks = a.repo.Tasks()
	}

	names := make(map[string]string)
	for _, p := range a.repo.Projects() {
		names[p.ID] = p.Name
	}

	tasks = derived.FilterTasks(tasks, filter)
	rows := make([]render.TaskRow, 0, len(tasks))
	for _, t := range tasks {
		assignee, _ := a.repo.AssigneeName(t)
		rows = append(rows, render.TaskRow{Task: t, Project: names[t.ProjectID], Assignee: assignee})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.New(out, render.TokyoNight).Tasks(rows, time.Now()))
	return nil
}
