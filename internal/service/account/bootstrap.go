package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// BootstrapAdministrator registers an account and places it in the
// administrator system group, creating that group on first use. The whole
// sequence runs in one transaction so a half-bootstrapped admin never
// becomes visible.
func (s *Service) BootstrapAdministrator(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	var created *domain.Account
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		g, err := s.EnsureSystemGroup(txCtx, domain.SystemRoleAdministrator)
		if err != nil {
			return err
		}

		created, err = s.Register(txCtx, input)
		if err != nil {
			return err
		}

		if err := s.groups.AddMember(txCtx, created.ID, g.ID); err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "administrator bootstrapped",
		slog.String("account_id", created.ID.String()),
		slog.String("username", created.Username),
	)
	return created, nil
}
