package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"synergysphere/internal/derived"
	"synergysphere/internal/render"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics and project progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()
		seedIfEnabled(a)

		now := time.Now()
		projects := a.repo.Projects()
		tasks := a.repo.Tasks()
		byProject := derived.GroupByProject(tasks)

		rows := make([]render.ProjectRow, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, render.ProjectRow{
				Project:  p,
				Progress: derived.ComputeProgress(byProject[p.ID]),
				Health:   derived.ProjectHealth(byProject[p.ID], now),
			})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, render.New(out, render.TokyoNight).Stats(derived.ComputeDashboardStats(projects, tasks, now), rows))
		return nil
	},
}
