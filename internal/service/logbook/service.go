// Package logbook provides the shift-log operations: recording,
// revising, group-scoped reading and admin-gated deletion.
package logbook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
	"github.com/shiftlog/shiftlog-backend/pkg/ctxutil"
)

type logRepo interface {
	Create(ctx context.Context, l domain.Log) (*domain.Log, error)
	GetVisibleByID(ctx context.Context, groupIDs []uuid.UUID, id uuid.UUID) (*domain.Log, error)
	ListVisible(ctx context.Context, groupIDs []uuid.UUID, f domain.LogFilter) ([]*domain.Log, error)
	ListRevisions(ctx context.Context, parentID uuid.UUID) ([]*domain.Log, error)
	DeleteVisible(ctx context.Context, groupIDs []uuid.UUID, id uuid.UUID) (bool, error)
	DeleteByCreators(ctx context.Context, groupIDs []uuid.UUID, creatorIDs []uuid.UUID) (int64, error)
	DeleteByGroup(ctx context.Context, groupIDs []uuid.UUID, targetGroupID uuid.UUID) (int64, error)
}

type groupRepo interface {
	ListIDsByAccount(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
	HasSystemRole(ctx context.Context, accountID uuid.UUID, role domain.SystemRole) (bool, error)
}

type tagRepo interface {
	ExistByIDs(ctx context.Context, ids []uuid.UUID) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides log operations scoped to the requester carried in the
// context.
type Service struct {
	logs   logRepo
	groups groupRepo
	tags   tagRepo
	tx     txManager
	log    *slog.Logger
}

// NewService creates a new Logbook service.
func NewService(
	log *slog.Logger,
	logs logRepo,
	groups groupRepo,
	tags tagRepo,
	tx txManager,
) *Service {
	return &Service{
		logs:   logs,
		groups: groups,
		tags:   tags,
		tx:     tx,
		log:    log.With("service", "logbook"),
	}
}

// requesterScope resolves the requester's identity and group-id set.
// The group set may be empty; callers treat that as an empty view of the
// world, never as an error.
func (s *Service) requesterScope(ctx context.Context) (uuid.UUID, []uuid.UUID, error) {
	requesterID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, nil, domain.ErrUnauthorized
	}
	groupIDs, err := s.groups.ListIDsByAccount(ctx, requesterID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("list requester groups: %w", err)
	}
	return requesterID, groupIDs, nil
}

// isAdmin reports whether the requester holds the administrator role.
func (s *Service) isAdmin(ctx context.Context, requesterID uuid.UUID) (bool, error) {
	ok, err := s.groups.HasSystemRole(ctx, requesterID, domain.SystemRoleAdministrator)
	if err != nil {
		return false, fmt.Errorf("check admin role: %w", err)
	}
	return ok, nil
}
