// Package tag provides tag management operations.
package tag

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

type tagRepo interface {
	Create(ctx context.Context, t domain.Tag) (*domain.Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	GetByTitle(ctx context.Context, title string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	ListTitleContains(ctx context.Context, fragment string) ([]*domain.Tag, error)
	ListByColor(ctx context.Context, color string) ([]*domain.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service provides tag management operations.
type Service struct {
	tags tagRepo
	log  *slog.Logger
}

// NewService creates a new Tag service.
func NewService(log *slog.Logger, tags tagRepo) *Service {
	return &Service{
		tags: tags,
		log:  log.With("service", "tag"),
	}
}
