package logbook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
	"github.com/shiftlog/shiftlog-backend/pkg/ctxutil"
)

// CreateLog records an original log entry attributed to the requester.
// Every referenced tag must exist.
func (s *Service) CreateLog(ctx context.Context, input CreateLogInput) (*domain.Log, error) {
	requesterID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	tagIDs := uniqueTagIDs(input.TagIDs)
	if err := s.checkTagsExist(ctx, tagIDs); err != nil {
		return nil, err
	}

	var created *domain.Log
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.logs.Create(txCtx, domain.Log{
			ID:          uuid.New(),
			CreatedBy:   requesterID,
			TimeOfEvent: input.TimeOfEvent,
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			TagIDs:      tagIDs,
		})
		if createErr != nil {
			return fmt.Errorf("create log: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "log created",
		slog.String("log_id", created.ID.String()),
		slog.String("created_by", requesterID.String()),
	)
	return created, nil
}

func (s *Service) checkTagsExist(ctx context.Context, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	ok, err := s.tags.ExistByIDs(ctx, tagIDs)
	if err != nil {
		return fmt.Errorf("check tags: %w", err)
	}
	if !ok {
		return domain.NewValidationError("tag_ids", "unknown tag reference")
	}
	return nil
}
