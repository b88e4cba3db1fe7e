package tag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

const maxTitleLen = 100

// CreateInput carries the fields of a new tag.
type CreateInput struct {
	Title       string
	Description *string
	Color       string
}

// Validate checks the tag fields.
func (in CreateInput) Validate() error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.NewValidationError("title", "required")
	}
	if len(title) > maxTitleLen {
		return domain.NewValidationError("title", "too long (max 100)")
	}
	return nil
}

// Create adds a tag. Titles are unique ignoring case.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Tag, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var desc *string
	if d := trimmed(input.Description); d != "" {
		desc = &d
	}

	created, err := s.tags.Create(ctx, domain.Tag{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: desc,
		Color:       strings.TrimSpace(input.Color),
	})
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.log.InfoContext(ctx, "tag created",
		slog.String("tag_id", created.ID.String()),
		slog.String("title", created.Title),
	)
	return created, nil
}

// Get returns the tag with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

// GetByTitle returns the tag whose title matches ignoring case.
func (s *Service) GetByTitle(ctx context.Context, title string) (*domain.Tag, error) {
	return s.tags.GetByTitle(ctx, strings.TrimSpace(title))
}

// List returns all tags. With a non-empty fragment the result narrows to
// tags whose title contains it, ignoring case.
func (s *Service) List(ctx context.Context, titleFragment string) ([]*domain.Tag, error) {
	fragment := strings.TrimSpace(titleFragment)
	if fragment == "" {
		return s.tags.List(ctx)
	}
	return s.tags.ListTitleContains(ctx, fragment)
}

// ListByColor returns all tags with the given color.
func (s *Service) ListByColor(ctx context.Context, color string) ([]*domain.Tag, error) {
	return s.tags.ListByColor(ctx, strings.TrimSpace(color))
}

// Delete removes a tag and detaches it from every log that carried it.
// Returns false when no such tag exists.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.tags.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete tag: %w", err)
	}
	if deleted {
		s.log.InfoContext(ctx, "tag deleted", slog.String("tag_id", id.String()))
	}
	return deleted, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
