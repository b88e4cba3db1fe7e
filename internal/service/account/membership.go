package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// AddAccountToGroup links an account to a group. Adding an existing
// member again is a no-op. Both sides must exist; a missing account or
// group reports domain.ErrNotFound.
func (s *Service) AddAccountToGroup(ctx context.Context, accountID, groupID uuid.UUID) error {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return fmt.Errorf("get group: %w", err)
	}
	if err := s.groups.AddMember(ctx, accountID, groupID); err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	s.log.InfoContext(ctx, "account added to group",
		slog.String("account_id", accountID.String()),
		slog.String("group_id", groupID.String()),
	)
	return nil
}

// RemoveAccountFromGroup unlinks an account from a user-defined group.
// Returns false without error when the account was not a member or when
// the group is system-defined: system membership is managed by
// bootstrapping, not by this call.
func (s *Service) RemoveAccountFromGroup(ctx context.Context, accountID, groupID uuid.UUID) (bool, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return false, fmt.Errorf("get group: %w", err)
	}
	if g.IsSystem() {
		return false, nil
	}

	removed, err := s.groups.RemoveMember(ctx, accountID, groupID)
	if err != nil {
		return false, fmt.Errorf("remove member: %w", err)
	}
	if removed {
		s.log.InfoContext(ctx, "account removed from group",
			slog.String("account_id", accountID.String()),
			slog.String("group_id", groupID.String()),
		)
	}
	return removed, nil
}
