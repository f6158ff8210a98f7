package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carteapp/carte-backend/internal/projects/domain"
	"github.com/carteapp/carte-backend/internal/projects/utils"
)

const (
	projectKeyPrefix = "carte:project:" // Key for project data: carte:project:{id}
	projectIndexKey  = "carte:projects" // Set of all project IDs
)

// ProjectRepository stores projects as JSON blobs in Redis, plus an index
// set of known IDs. All writes go through the single Redis instance, so the
// stored list always reflects the last call's effect.
type ProjectRepository struct {
	client *redis.Client
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(client *redis.Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create assigns a fresh ID and creation timestamp, stores the project
// and returns it. Project names are not required to be unique.
func (r *ProjectRepository) Create(ctx context.Context, name, description string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	p := domain.NewProject(name, description)

	for i := 0; i < 5; i++ {
		id, err := utils.NewTextID("carte")
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		p.ID = id
		p.CreatedAt = now
		p.UpdatedAt = now

		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("marshal project: %w", err)
		}

		// SetNX guards against an ID collision; IDs are never reused.
		ok, err := r.client.SetNX(ctx, r.projectKey(id), data, 0).Result()
		if err != nil {
			return nil, fmt.Errorf("store project: %w", err)
		}
		if !ok {
			continue
		}

		if err := r.client.SAdd(ctx, projectIndexKey, id).Err(); err != nil {
			return nil, fmt.Errorf("index project: %w", err)
		}
		return p, nil
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// Get returns the project with the given ID, or domain.ErrNotFound.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	data, err := r.client.Get(ctx, r.projectKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	return &p, nil
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	ids, err := r.client.SMembers(ctx, projectIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			// Stale index entry; drop it and move on.
			r.client.SRem(ctx, projectIndexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update merges the patch into the stored project and bumps UpdatedAt.
// A patch touching a single section leaves sibling sections and top-level
// fields unchanged. Returns domain.ErrNotFound when the ID is absent.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(p)
	p.UpdatedAt = time.Now().UTC()

	if err := r.put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetAttachment replaces the named section's attachment. The previous
// reference and any cached extracted text are discarded. Passing a nil
// attachment clears the section's attachment (idempotent).
func (r *ProjectRepository) SetAttachment(ctx context.Context, id, section string, att *domain.Attachment, text string) (*domain.Project, error) {
	if !domain.ValidSection(section) {
		return nil, domain.ErrUnknownSection
	}

	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.SetSectionAttachment(section, att, text)
	p.UpdatedAt = time.Now().UTC()

	if err := r.put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetAttachmentText updates only the cached extracted text for a section.
// The write is skipped when the attachment has been removed or replaced in
// the meantime, so a slow extraction never resurrects a discarded upload.
func (r *ProjectRepository) SetAttachmentText(ctx context.Context, id, section, attachmentURL, text string) error {
	if !domain.ValidSection(section) {
		return domain.ErrUnknownSection
	}

	p, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	att, _ := p.SectionAttachment(section)
	if att == nil || att.URL != attachmentURL {
		return nil
	}

	p.SetSectionAttachment(section, att, text)
	p.UpdatedAt = time.Now().UTC()
	return r.put(ctx, p)
}

// Delete removes the project. Returns false (and no error) when absent.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.projectKey(id))
	pipe.SRem(ctx, projectIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return del.Val() > 0, nil
}

func (r *ProjectRepository) put(ctx context.Context, p *domain.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := r.client.Set(ctx, r.projectKey(p.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("store project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) projectKey(id string) string {
	return projectKeyPrefix + id
}
