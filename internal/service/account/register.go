package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// Register creates a new account with a bcrypt-hashed password.
// A taken email or username surfaces as domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.accounts.Create(ctx, domain.Account{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.InfoContext(ctx, "account registered",
		slog.String("account_id", created.ID.String()),
		slog.String("username", created.Username),
	)

	return created, nil
}
