package logbook

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Deletion is doubly gated: the requester must hold the administrator
// role AND the target logs must be visible to them. A failed gate answers
// false or zero without an error, so callers cannot distinguish "not
// allowed" from "nothing there".

// DeleteLog removes one visible log and its entire revision subtree.
func (s *Service) DeleteLog(ctx context.Context, id uuid.UUID) (bool, error) {
	requesterID, groupIDs, err := s.requesterScope(ctx)
	if err != nil {
		return false, err
	}
	if ok, err := s.isAdmin(ctx, requesterID); err != nil || !ok {
		return false, err
	}

	deleted, err := s.logs.DeleteVisible(ctx, groupIDs, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.InfoContext(ctx, "log deleted",
			slog.String("log_id", id.String()),
			slog.String("deleted_by", requesterID.String()),
		)
	}
	return deleted, nil
}

// DeleteLogsForAccount removes every visible log created by the account.
// Returns the number of logs the delete matched directly; revisions
// removed by the cascade are not counted.
func (s *Service) DeleteLogsForAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return s.DeleteLogsForAccounts(ctx, []uuid.UUID{accountID})
}

// DeleteLogsForAccounts removes every visible log created by any of the
// accounts.
func (s *Service) DeleteLogsForAccounts(ctx context.Context, accountIDs []uuid.UUID) (int64, error) {
	requesterID, groupIDs, err := s.requesterScope(ctx)
	if err != nil {
		return 0, err
	}
	if ok, err := s.isAdmin(ctx, requesterID); err != nil || !ok {
		return 0, err
	}

	n, err := s.logs.DeleteByCreators(ctx, groupIDs, accountIDs)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "logs deleted for accounts",
			slog.Int64("count", n),
			slog.String("deleted_by", requesterID.String()),
		)
	}
	return n, nil
}

// DeleteLogsForGroup removes every visible log whose creator belongs to
// the target group.
func (s *Service) DeleteLogsForGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	requesterID, groupIDs, err := s.requesterScope(ctx)
	if err != nil {
		return 0, err
	}
	if ok, err := s.isAdmin(ctx, requesterID); err != nil || !ok {
		return 0, err
	}

	n, err := s.logs.DeleteByGroup(ctx, groupIDs, groupID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "logs deleted for group",
			slog.Int64("count", n),
			slog.String("group_id", groupID.String()),
			slog.String("deleted_by", requesterID.String()),
		)
	}
	return n, nil
}
