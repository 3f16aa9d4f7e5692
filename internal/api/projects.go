package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/buildbidz/buildbidz-go/internal/errors"
)

// ProjectTeamMember is a member entry on a project.
type ProjectTeamMember struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Initials string `json:"initials"`
}

// ProjectMilestone is a dated milestone on a project.
type ProjectMilestone struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Project is a construction project record.
type Project struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Location    string              `json:"location"`
	Status      string              `json:"status"`
	Description string              `json:"description"`
	Progress    int                 `json:"progress"`
	TeamCount   *int                `json:"team_count,omitempty"`
	Deadline    *string             `json:"deadline,omitempty"`
	Image       *string             `json:"image,omitempty"`
	Team        []ProjectTeamMember `json:"team,omitempty"`
	Milestones  []ProjectMilestone  `json:"milestones,omitempty"`
	CreatedAt   *string             `json:"created_at,omitempty"`
}

// ProjectStats holds aggregate project counts for the dashboard.
type ProjectStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Planning int `json:"planning"`
}

// CreateProjectRequest is the body for ProjectCreate.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectRequest is the body for ProjectUpdate; nil fields are omitted
// so the backend only patches what was provided.
type UpdateProjectRequest struct {
	Name        *string             `json:"name,omitempty"`
	Location    *string             `json:"location,omitempty"`
	Status      *string             `json:"status,omitempty"`
	Description *string             `json:"description,omitempty"`
	Progress    *int                `json:"progress,omitempty"`
	Team        []ProjectTeamMember `json:"team,omitempty"`
	Milestones  []ProjectMilestone  `json:"milestones,omitempty"`
}

// ProjectStats fetches aggregate project counts.
func (c *Client) ProjectStats(ctx context.Context) (*ProjectStats, error) {
	var stats ProjectStats
	if err := c.Do(ctx, http.MethodGet, "/projects/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ProjectList fetches all projects.
func (c *Client) ProjectList(ctx context.Context) ([]Project, error) {
	var resp struct {
		Projects []Project `json:"projects"`
	}
	if err := c.Do(ctx, http.MethodGet, "/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// ProjectCreate creates a project.
func (c *Client) ProjectCreate(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var project Project
	if err := c.Do(ctx, http.MethodPost, "/projects", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ProjectGet fetches one project by id. A 404 maps to ErrNotFound.
func (c *Client) ProjectGet(ctx context.Context, id int) (*Project, error) {
	var project Project
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &project)
	if err != nil {
		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, errors.Wrap(errors.ErrNotFound, fmt.Sprintf("project %d not found", id), err)
		}
		return nil, err
	}
	return &project, nil
}

// ProjectUpdate patches a project.
func (c *Client) ProjectUpdate(ctx context.Context, id int, req UpdateProjectRequest) (*Project, error) {
	var project Project
	if err := c.Do(ctx, http.MethodPatch, fmt.Sprintf("/projects/%d", id), req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}
