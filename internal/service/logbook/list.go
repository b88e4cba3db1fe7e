package logbook

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// GetLog returns a single log when its creator shares a group with the
// requester. Logs outside the requester's scope report
// domain.ErrNotFound, indistinguishable from logs that do not exist.
func (s *Service) GetLog(ctx context.Context, id uuid.UUID) (*domain.Log, error) {
	_, groupIDs, err := s.requesterScope(ctx)
	if err != nil {
		return nil, err
	}
	return s.logs.GetVisibleByID(ctx, groupIDs, id)
}

// ListLogs returns the logs visible to the requester, filtered by the
// given criteria and ordered newest event first. A requester with no
// groups sees nothing.
func (s *Service) ListLogs(ctx context.Context, f domain.LogFilter) ([]*domain.Log, error) {
	_, groupIDs, err := s.requesterScope(ctx)
	if err != nil {
		return nil, err
	}
	return s.logs.ListVisible(ctx, groupIDs, f)
}

// ListRevisions returns the direct revisions of a log, most recently
// revised first. The parent itself must be visible to the requester.
func (s *Service) ListRevisions(ctx context.Context, parentID uuid.UUID) ([]*domain.Log, error) {
	_, groupIDs, err := s.requesterScope(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.logs.GetVisibleByID(ctx, groupIDs, parentID); err != nil {
		return nil, fmt.Errorf("get parent log: %w", err)
	}
	return s.logs.ListRevisions(ctx, parentID)
}
