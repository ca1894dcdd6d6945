package repository

import (
	"fmt"

	"synergysphere/internal/models"
)

// NewProject carries the caller-supplied fields of a project.
type NewProject struct {
	Name        string
	Description string
	OwnerID     string
	Members     []string
}

// Project looks up a project by id.
func (r *Repository) Project(id string) (models.Project, error) {
	for _, p := range r.Projects() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, models.ErrProjectNotFound
}

// CreateProject appends a project owned by in.OwnerID. The owner is added to
// the member list when missing and duplicate members are dropped.
func (r *Repository) CreateProject(in NewProject) (models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	p := models.Project{
		ID:          r.newID(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		Members:     memberSet(in.OwnerID, in.Members),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.SaveProjects(append(r.Projects(), p)); err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func memberSet(owner string, members []string) []string {
	out := make([]string, 0, len(members)+1)
	seen := make(map[string]struct{}, len(members)+1)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	add(owner)
	for _, m := range members {
		add(m)
	}
	return out
}
