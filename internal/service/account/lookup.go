package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// GetAccount returns the account with the given id.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// GetAccountByEmail returns the account with the given email.
func (s *Service) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.accounts.GetByEmail(ctx, strings.TrimSpace(email))
}

// GetAccountByUsername returns the account with the given username.
func (s *Service) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.accounts.GetByUsername(ctx, strings.TrimSpace(username))
}

// ListAccountsByName returns all accounts with the exact first and last
// name pair.
func (s *Service) ListAccountsByName(ctx context.Context, firstName, lastName string) ([]*domain.Account, error) {
	return s.accounts.ListByName(ctx, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
}

// ListAccountsByGroupName returns all members of the named group. The
// group name matches case-insensitively.
func (s *Service) ListAccountsByGroupName(ctx context.Context, groupName string) ([]*domain.Account, error) {
	return s.accounts.ListByGroupName(ctx, strings.TrimSpace(groupName))
}

// SearchAccountsInGroup returns members of the named group whose username
// starts with the given prefix.
func (s *Service) SearchAccountsInGroup(ctx context.Context, usernamePrefix, groupName string) ([]*domain.Account, error) {
	prefix := strings.TrimSpace(usernamePrefix)
	if prefix == "" {
		return s.accounts.ListByGroupName(ctx, strings.TrimSpace(groupName))
	}
	return s.accounts.ListByUsernamePrefixInGroup(ctx, prefix, strings.TrimSpace(groupName))
}
