package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// Hand-written mocks with overridable Func fields, one per dependency
// interface.

type accountRepoMock struct {
	CreateFunc                      func(ctx context.Context, a domain.Account) (*domain.Account, error)
	GetByIDFunc                     func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmailFunc                  func(ctx context.Context, email string) (*domain.Account, error)
	GetByUsernameFunc               func(ctx context.Context, username string) (*domain.Account, error)
	ListByNameFunc                  func(ctx context.Context, firstName, lastName string) ([]*domain.Account, error)
	ListByGroupNameFunc             func(ctx context.Context, groupName string) ([]*domain.Account, error)
	ListByUsernamePrefixInGroupFunc func(ctx context.Context, prefix, groupName string) ([]*domain.Account, error)
}

func (m *accountRepoMock) Create(ctx context.Context, a domain.Account) (*domain.Account, error) {
	return m.CreateFunc(ctx, a)
}

func (m *accountRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *accountRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *accountRepoMock) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *accountRepoMock) ListByName(ctx context.Context, firstName, lastName string) ([]*domain.Account, error) {
	return m.ListByNameFunc(ctx, firstName, lastName)
}

func (m *accountRepoMock) ListByGroupName(ctx context.Context, groupName string) ([]*domain.Account, error) {
	return m.ListByGroupNameFunc(ctx, groupName)
}

func (m *accountRepoMock) ListByUsernamePrefixInGroup(ctx context.Context, prefix, groupName string) ([]*domain.Account, error) {
	return m.ListByUsernamePrefixInGroupFunc(ctx, prefix, groupName)
}

type groupRepoMock struct {
	CreateFunc          func(ctx context.Context, g domain.Group) (*domain.Group, error)
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetByNameFunc       func(ctx context.Context, name string) (*domain.Group, error)
	GetBySystemRoleFunc func(ctx context.Context, role domain.SystemRole) (*domain.Group, error)
	ListFunc            func(ctx context.Context) ([]*domain.Group, error)
	ListUserDefinedFunc func(ctx context.Context) ([]*domain.Group, error)
	UpdateFunc          func(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Group, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) (bool, error)
	AddMemberFunc       func(ctx context.Context, accountID, groupID uuid.UUID) error
	RemoveMemberFunc    func(ctx context.Context, accountID, groupID uuid.UUID) (bool, error)

	removeMemberCalls int
}

func (m *groupRepoMock) Create(ctx context.Context, g domain.Group) (*domain.Group, error) {
	return m.CreateFunc(ctx, g)
}

func (m *groupRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *groupRepoMock) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	return m.GetByNameFunc(ctx, name)
}

func (m *groupRepoMock) GetBySystemRole(ctx context.Context, role domain.SystemRole) (*domain.Group, error) {
	return m.GetBySystemRoleFunc(ctx, role)
}

func (m *groupRepoMock) List(ctx context.Context) ([]*domain.Group, error) {
	return m.ListFunc(ctx)
}

func (m *groupRepoMock) ListUserDefined(ctx context.Context) ([]*domain.Group, error) {
	return m.ListUserDefinedFunc(ctx)
}

func (m *groupRepoMock) Update(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Group, error) {
	return m.UpdateFunc(ctx, id, name, description)
}

func (m *groupRepoMock) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.DeleteFunc(ctx, id)
}

func (m *groupRepoMock) AddMember(ctx context.Context, accountID, groupID uuid.UUID) error {
	return m.AddMemberFunc(ctx, accountID, groupID)
}

func (m *groupRepoMock) RemoveMember(ctx context.Context, accountID, groupID uuid.UUID) (bool, error) {
	m.removeMemberCalls++
	return m.RemoveMemberFunc(ctx, accountID, groupID)
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
