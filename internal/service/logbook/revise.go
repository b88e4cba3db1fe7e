package logbook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// ReviseLog appends a revision to an existing log. The revised log stays
// in place untouched; the revision is a new entry attributed to the
// requester and linked through ParentID. Revising a revision is allowed,
// so histories form a tree.
//
// The parent must be visible to the requester; a parent outside the
// requester's scope reports domain.ErrNotFound, same as a missing id.
// Load and insert share one transaction, so a concurrent delete of the
// parent cannot strand the new revision.
func (s *Service) ReviseLog(ctx context.Context, parentID uuid.UUID, input CreateLogInput) (*domain.Log, error) {
	requesterID, groupIDs, err := s.requesterScope(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	tagIDs := uniqueTagIDs(input.TagIDs)
	if err := s.checkTagsExist(ctx, tagIDs); err != nil {
		return nil, err
	}

	var created *domain.Log
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		parent, getErr := s.logs.GetVisibleByID(txCtx, groupIDs, parentID)
		if getErr != nil {
			return fmt.Errorf("get parent log: %w", getErr)
		}

		now := time.Now().UTC()
		revision := domain.Log{
			ID:          uuid.New(),
			CreatedBy:   requesterID,
			TimeOfEvent: input.TimeOfEvent,
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			TagIDs:      tagIDs,
			ParentID:    &parent.ID,
			RevisedBy:   &requesterID,
			RevisedAt:   &now,
		}
		if vErr := revision.ValidateRevisionFields(); vErr != nil {
			return vErr
		}

		var createErr error
		created, createErr = s.logs.Create(txCtx, revision)
		if createErr != nil {
			return fmt.Errorf("create revision: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "log revised",
		slog.String("log_id", parentID.String()),
		slog.String("revision_id", created.ID.String()),
		slog.String("revised_by", requesterID.String()),
	)
	return created, nil
}
