// Package account provides account, group and membership operations.
package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

type accountRepo interface {
	Create(ctx context.Context, a domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	ListByName(ctx context.Context, firstName, lastName string) ([]*domain.Account, error)
	ListByGroupName(ctx context.Context, groupName string) ([]*domain.Account, error)
	ListByUsernamePrefixInGroup(ctx context.Context, prefix, groupName string) ([]*domain.Account, error)
}

type groupRepo interface {
	Create(ctx context.Context, g domain.Group) (*domain.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetByName(ctx context.Context, name string) (*domain.Group, error)
	GetBySystemRole(ctx context.Context, role domain.SystemRole) (*domain.Group, error)
	List(ctx context.Context) ([]*domain.Group, error)
	ListUserDefined(ctx context.Context) ([]*domain.Group, error)
	Update(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Group, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	AddMember(ctx context.Context, accountID, groupID uuid.UUID) error
	RemoveMember(ctx context.Context, accountID, groupID uuid.UUID) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides account management operations.
type Service struct {
	accounts accountRepo
	groups   groupRepo
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new Account service.
func NewService(
	log *slog.Logger,
	accounts accountRepo,
	groups groupRepo,
	tx txManager,
) *Service {
	return &Service{
		accounts: accounts,
		groups:   groups,
		tx:       tx,
		log:      log.With("service", "account"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
