package logbook

import (
	"context"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// Hand-written mocks with overridable Func fields, one per dependency
// interface.

type logRepoMock struct {
	CreateFunc           func(ctx context.Context, l domain.Log) (*domain.Log, error)
	GetVisibleByIDFunc   func(ctx context.Context, groupIDs []uuid.UUID, id uuid.UUID) (*domain.Log, error)
	ListVisibleFunc      func(ctx context.Context, groupIDs []uuid.UUID, f domain.LogFilter) ([]*domain.Log, error)
	ListRevisionsFunc    func(ctx context.Context, parentID uuid.UUID) ([]*domain.Log, error)
	DeleteVisibleFunc    func(ctx context.Context, groupIDs []uuid.UUID, id uuid.UUID) (bool, error)
	DeleteByCreatorsFunc func(ctx context.Context, groupIDs []uuid.UUID, creatorIDs []uuid.UUID) (int64, error)
	DeleteByGroupFunc    func(ctx context.Context, groupIDs []uuid.UUID, targetGroupID uuid.UUID) (int64, error)

	deleteCalls int
}

func (m *logRepoMock) Create(ctx context.Context, l domain.Log) (*domain.Log, error) {
	return m.CreateFunc(ctx, l)
}

func (m *logRepoMock) GetVisibleByID(ctx context.Context, groupIDs []uuid.UUID, id uuid.UUID) (*domain.Log, error) {
	return m.GetVisibleByIDFunc(ctx, groupIDs, id)
}

func (m *logRepoMock) ListVisible(ctx context.Context, groupIDs []uuid.UUID, f domain.LogFilter) ([]*domain.Log, error) {
	return m.ListVisibleFunc(ctx, groupIDs, f)
}

func (m *logRepoMock) ListRevisions(ctx context.Context, parentID uuid.UUID) ([]*domain.Log, error) {
	return m.ListRevisionsFunc(ctx, parentID)
}

func (m *logRepoMock) DeleteVisible(ctx context.Context, groupIDs []uuid.UUID, id uuid.UUID) (bool, error) {
	m.deleteCalls++
	return m.DeleteVisibleFunc(ctx, groupIDs, id)
}

func (m *logRepoMock) DeleteByCreators(ctx context.Context, groupIDs []uuid.UUID, creatorIDs []uuid.UUID) (int64, error) {
	m.deleteCalls++
	return m.DeleteByCreatorsFunc(ctx, groupIDs, creatorIDs)
}

func (m *logRepoMock) DeleteByGroup(ctx context.Context, groupIDs []uuid.UUID, targetGroupID uuid.UUID) (int64, error) {
	m.deleteCalls++
	return m.DeleteByGroupFunc(ctx, groupIDs, targetGroupID)
}

type groupRepoMock struct {
	ListIDsByAccountFunc func(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
	HasSystemRoleFunc    func(ctx context.Context, accountID uuid.UUID, role domain.SystemRole) (bool, error)
}

func (m *groupRepoMock) ListIDsByAccount(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	return m.ListIDsByAccountFunc(ctx, accountID)
}

func (m *groupRepoMock) HasSystemRole(ctx context.Context, accountID uuid.UUID, role domain.SystemRole) (bool, error) {
	return m.HasSystemRoleFunc(ctx, accountID, role)
}

type tagRepoMock struct {
	ExistByIDsFunc func(ctx context.Context, ids []uuid.UUID) (bool, error)
}

func (m *tagRepoMock) ExistByIDs(ctx context.Context, ids []uuid.UUID) (bool, error) {
	return m.ExistByIDsFunc(ctx, ids)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTxFunc(ctx, fn)
}

// defaultTxMock returns a txManagerMock that simply calls the function
// with the same context.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

// memberOf returns a groupRepoMock for a requester in the given groups,
// without the administrator role.
func memberOf(groupIDs ...uuid.UUID) *groupRepoMock {
	return &groupRepoMock{
		ListIDsByAccountFunc: func(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
			return groupIDs, nil
		},
		HasSystemRoleFunc: func(ctx context.Context, accountID uuid.UUID, role domain.SystemRole) (bool, error) {
			return false, nil
		},
	}
}

// adminOf is memberOf plus the administrator role.
func adminOf(groupIDs ...uuid.UUID) *groupRepoMock {
	m := memberOf(groupIDs...)
	m.HasSystemRoleFunc = func(ctx context.Context, accountID uuid.UUID, role domain.SystemRole) (bool, error) {
		return role == domain.SystemRoleAdministrator, nil
	}
	return m
}

// allTagsExist returns a tagRepoMock that accepts any reference.
func allTagsExist() *tagRepoMock {
	return &tagRepoMock{
		ExistByIDsFunc: func(ctx context.Context, ids []uuid.UUID) (bool, error) {
			return true, nil
		},
	}
}
