package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portfolio-go/internal/portfolio"
)

// ProjectsHandler serves the public project pages and their admin upserts.
type ProjectsHandler struct {
	repo portfolio.ProjectRepository
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(repo portfolio.ProjectRepository) *ProjectsHandler {
	return &ProjectsHandler{repo: repo}
}

func (h *ProjectsHandler) ListProjects(ctx context.Context, _ *struct{}) (*ListProjectsResponse, error) {
	projects, err := h.repo.ListProjects(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list projects")
	}

	resp := &ListProjectsResponse{}
	resp.Body.Projects = make([]ProjectView, 0, len(projects))

	for _, p := range projects {
		view := projectView(p)
		// Keep the listing light; the full description is on the detail page.
		view.Description = ""
		resp.Body.Projects = append(resp.Body.Projects, view)
	}

	return resp, nil
}

func (h *ProjectsHandler) GetProject(ctx context.Context, req *GetProjectRequest) (*GetProjectResponse, error) {
	project, err := h.repo.GetProject(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			return nil, huma.Error404NotFound("project not found")
		}

		return nil, huma.Error500InternalServerError("failed to get project")
	}

	return &GetProjectResponse{Body: projectView(project)}, nil
}

func (h *ProjectsHandler) SaveProject(ctx context.Context, req *SaveProjectRequest) (*SaveProjectResponse, error) {
	now := time.Now()

	project := &portfolio.Project{
		Slug:        req.Body.Slug,
		Title:       req.Body.Title,
		Summary:     req.Body.Summary,
		Description: req.Body.Description,
		RepoURL:     req.Body.RepoURL,
		LiveURL:     req.Body.LiveURL,
		Tags:        req.Body.Tags,
		Featured:    req.Body.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Preserve the original creation time on updates.
	if existing, err := h.repo.GetProject(ctx, req.Body.Slug); err == nil {
		project.CreatedAt = existing.CreatedAt
	}

	if err := h.repo.SaveProject(ctx, project); err != nil {
		return nil, huma.Error500InternalServerError("failed to save project")
	}

	return &SaveProjectResponse{Body: projectView(project)}, nil
}

func projectView(p *portfolio.Project) ProjectView {
	return ProjectView{
		Slug:        p.Slug,
		Title:       p.Title,
		Summary:     p.Summary,
		Description: p.Description,
		RepoURL:     p.RepoURL,
		LiveURL:     p.LiveURL,
		Tags:        p.Tags,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
	}
}
