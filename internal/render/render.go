// Package render draws tasks, projects and dashboard stats for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"synergysphere/internal/derived"
	"synergysphere/internal/models"
)

// TaskRow is a task with its references resolved for display.
type TaskRow struct {
	Task     models.Task
	Project  string
	Assignee string
}

// ProjectRow is a project with its derived figures.
type ProjectRow struct {
	Project  models.Project
	Progress derived.Progress
	Health   derived.Health
}

// Renderer holds pre-computed styles bound to one output.
type Renderer struct {
	theme Theme

	title  lipgloss.Style
	dim    lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	status map[models.TaskStatus]lipgloss.Style
	prio   map[models.TaskPriority]lipgloss.Style
	health map[derived.HealthState]lipgloss.Style
}

// New returns a Renderer whose color profile follows w.
func New(w io.Writer, theme Theme) *Renderer {
	lr := lipgloss.NewRenderer(w)
	fg := func(c lipgloss.Color) lipgloss.Style { return lr.NewStyle().Foreground(c) }

	return &Renderer{
		theme:  theme,
		title:  fg(theme.Primary).Bold(true).MarginBottom(1),
		dim:    fg(theme.ForegroundDim),
		header: fg(theme.Accent).Bold(true).Padding(0, 1),
		cell:   fg(theme.Foreground).Padding(0, 1),
		border: fg(theme.Border),
		label:  fg(theme.ForegroundDim).Width(20),
		value:  fg(theme.Foreground).Bold(true),
		status: map[models.TaskStatus]lipgloss.Style{
			models.StatusTodo:       fg(theme.ForegroundDim),
			models.StatusInProgress: fg(theme.Info),
			models.StatusDone:       fg(theme.Success),
		},
		prio: map[models.TaskPriority]lipgloss.Style{
			models.PriorityLow:    fg(theme.Success),
			models.PriorityMedium: fg(theme.Warning),
			models.PriorityHigh:   fg(theme.Error),
		},
		health: map[derived.HealthState]lipgloss.Style{
			derived.HealthCompleted:  fg(theme.Success),
			derived.HealthOverdue:    fg(theme.Error),
			derived.HealthInProgress: fg(theme.Info),
		},
	}
}

func (r *Renderer) statusText(s models.TaskStatus) string {
	label := derived.StatusStyle(s).Label
	if st, ok := r.status[s]; ok {
		return st.Render(label)
	}
	return r.dim.Render(label)
}

func (r *Renderer) priorityText(p models.TaskPriority) string {
	label := derived.PriorityStyle(p).Label
	if st, ok := r.prio[p]; ok {
		return st.Render(label)
	}
	return r.dim.Render(label)
}

// Bar draws a fixed-width progress bar for pct.
func Bar(pct, width int) string {
	pct = max(0, min(pct, 100))
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Tasks renders rows as a table. Overdue due dates are flagged.
func (r *Renderer) Tasks(rows []TaskRow, now time.Time) string {
	if len(rows) == 0 {
		return r.dim.Render("No tasks found.")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.border).
		Headers("ID", "TITLE", "PROJECT", "ASSIGNEE", "STATUS", "PRIORITY", "DUE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		})

	for _, row := range rows {
		assignee := row.Assignee
		if assignee == "" {
			assignee = r.dim.Render("Unassigned")
		}
		due := r.dim.Render("-")
		if row.Task.DueDate != nil {
			due = derived.FormatDate(*row.Task.DueDate)
			if derived.IsOverdue(row.Task, now) {
				due = r.prio[models.PriorityHigh].Render(due + " (" + derived.LabelOverdue + ")")
			} else if label := derived.RelativeDateLabel(*row.Task.DueDate, now); label == derived.LabelToday || label == derived.LabelTomorrow {
				due += " (" + label + ")"
			}
		}
		t.Row(
			row.Task.ID,
			truncate(row.Task.Title, 36),
			truncate(row.Project, 24),
			assignee,
			r.statusText(row.Task.Status),
			r.priorityText(row.Task.Priority),
			due,
		)
	}
	return t.Render()
}

// Stats renders dashboard totals followed by one progress line per project.
func (r *Renderer) Stats(stats derived.DashboardStats, projects []ProjectRow) string {
	line := func(label string, v int) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, r.label.Render(label), r.value.Render(strconv.Itoa(v)))
	}

	blocks := []string{
		r.title.Render("Dashboard"),
		line("Total projects", stats.TotalProjects),
		line("Active projects", stats.ActiveProjects),
		line("Completed projects", stats.CompletedProjects),
		line("Total tasks", stats.TotalTasks),
		line("Completed tasks", stats.CompletedTasks),
		line("Overdue tasks", stats.OverdueTasks),
	}

	if len(projects) > 0 {
		blocks = append(blocks, "", r.title.Render("Projects"))
	}
	for _, p := range projects {
		health := p.Health.Label
		if st, ok := r.health[p.Health.State]; ok {
			health = st.Render(health)
		}
		blocks = append(blocks, fmt.Sprintf("%s %s %3d%% %s  %s",
			r.label.Render(truncate(p.Project.Name, 18)),
			Bar(p.Progress.Percentage, 20),
			p.Progress.Percentage,
			r.dim.Render(fmt.Sprintf("(%d/%d)", p.Progress.Completed, p.Progress.Total)),
			health,
		))
	}
	return lipgloss.NewStyle().MaxWidth(MaxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
