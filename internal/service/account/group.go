package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// CreateGroup creates a user-defined group. Names are unique ignoring
// case; a clash surfaces as domain.ErrAlreadyExists.
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.Group, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	g := domain.NewUserGroup(strings.TrimSpace(input.Name), trimOrNil(input.Description))
	created, err := s.groups.Create(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.log.InfoContext(ctx, "group created",
		slog.String("group_id", created.ID.String()),
		slog.String("name", created.Name),
	)
	return created, nil
}

// EnsureSystemGroup returns the group bound to the role, creating it on
// first use. System groups exist at most once per role.
func (s *Service) EnsureSystemGroup(ctx context.Context, role domain.SystemRole) (*domain.Group, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("system_role", "unknown role")
	}

	existing, err := s.groups.GetBySystemRole(ctx, role)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get system group: %w", err)
	}

	created, err := s.groups.Create(ctx, domain.NewSystemGroup(role))
	if err != nil {
		// lost the race to another bootstrapper
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.groups.GetBySystemRole(ctx, role)
		}
		return nil, fmt.Errorf("create system group: %w", err)
	}

	s.log.InfoContext(ctx, "system group created",
		slog.String("group_id", created.ID.String()),
		slog.String("role", role.String()),
	)
	return created, nil
}

// GetGroup returns the group with the given id.
func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return s.groups.GetByID(ctx, id)
}

// GetGroupByName returns the group whose name matches ignoring case.
func (s *Service) GetGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	return s.groups.GetByName(ctx, strings.TrimSpace(name))
}

// ListGroups returns all groups, system-defined included.
func (s *Service) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	return s.groups.List(ctx)
}

// ListUserGroups returns only the user-defined groups.
func (s *Service) ListUserGroups(ctx context.Context) ([]*domain.Group, error) {
	return s.groups.ListUserDefined(ctx)
}

// UpdateGroup renames a user-defined group. System-defined groups cannot
// be renamed; the attempt reports domain.ErrNotFound.
func (s *Service) UpdateGroup(ctx context.Context, id uuid.UUID, input UpdateGroupInput) (*domain.Group, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.groups.Update(ctx, id, strings.TrimSpace(input.Name), trimOrNil(input.Description))
	if err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}

	s.log.InfoContext(ctx, "group updated",
		slog.String("group_id", updated.ID.String()),
		slog.String("name", updated.Name),
	)
	return updated, nil
}

// DeleteGroup removes a user-defined group and its membership rows.
// Returns false when the id is unknown or refers to a system group.
func (s *Service) DeleteGroup(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.groups.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete group: %w", err)
	}
	if deleted {
		s.log.InfoContext(ctx, "group deleted", slog.String("group_id", id.String()))
	}
	return deleted, nil
}
