package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/carteapp/carte-backend/internal/projects/domain"
	"github.com/carteapp/carte-backend/internal/projects/repository"
)

// ProjectService handles project-related business logic.
type ProjectService struct {
	repo *repository.ProjectRepository
	log  *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(repo *repository.ProjectRepository, log *zap.Logger) *ProjectService {
	return &ProjectService{
		repo: repo,
		log:  log,
	}
}

// Create creates a new project.
func (s *ProjectService) Create(ctx context.Context, name, description string) (*domain.Project, error) {
	return s.repo.Create(ctx, name, description)
}

// Get returns a single project.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.Get(ctx, id)
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx)
}

// Update merges a partial update into a project.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch)
}

// SaveSection commits one section's pending edits. Only the named section
// is written; the result is reported to the caller instead of being
// dropped on the floor. Concurrent saves of different sections are
// last-write-wins at the store.
func (s *ProjectService) SaveSection(ctx context.Context, id, section string, patch domain.SectionsPatch) (*domain.Project, error) {
	if !domain.ValidSection(section) {
		return nil, domain.ErrUnknownSection
	}

	// Narrow the patch to the named section so a stray sibling payload
	// cannot ride along.
	narrowed := domain.ProjectPatch{}
	switch section {
	case domain.SectionGeneral:
		narrowed.Sections.General = patch.General
	case domain.SectionTechnical:
		narrowed.Sections.Technical = patch.Technical
	case domain.SectionFinancial:
		narrowed.Sections.Financial = patch.Financial
	case domain.SectionResources:
		narrowed.Sections.Resources = patch.Resources
	}

	if err := narrowed.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, narrowed)
	if err != nil {
		s.log.Warn("section save failed",
			zap.String("project_id", id),
			zap.String("section", section),
			zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Delete removes a project. Returns false when it did not exist.
func (s *ProjectService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
