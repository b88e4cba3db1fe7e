// Package group implements the Group repository using PostgreSQL.
// It also owns the account_groups membership join table.
package group

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/adapter/postgres"
	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

const (
	groupsTable     = "groups"
	membershipTable = "account_groups"
)

var groupColumns = []string{"id", "name", "description", "system_role", "created_at"}

// Repo provides group persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new group repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type groupRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	SystemRole  *string   `db:"system_role"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r groupRow) toDomain() *domain.Group {
	g := &domain.Group{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
	if r.SystemRole != nil {
		role := domain.SystemRole(*r.SystemRole)
		g.SystemRole = &role
	}
	return g
}

// ---------------------------------------------------------------------------
// Group rows
// ---------------------------------------------------------------------------

// Create inserts a group and returns the persisted row. The uniqueness of
// system roles and of lowercased names is enforced by the schema; conflicts
// surface as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, g domain.Group) (*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var roleStr *string
	if g.SystemRole != nil {
		s := g.SystemRole.String()
		roleStr = &s
	}

	sql, args, err := postgres.Builder().
		Insert(groupsTable).
		Columns("id", "name", "description", "system_role").
		Values(g.ID, g.Name, g.Description, roleStr).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("group insert build: %w", err)
	}

	var row groupRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "group")
	}
	return row.toDomain(), nil
}

// GetByID returns the group with the given id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName returns the group whose name matches case-insensitively.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	return r.getOne(ctx, squirrel.Expr("lower(name) = lower(?)", name))
}

// GetBySystemRole returns the unique group bound to the given role.
func (r *Repo) GetBySystemRole(ctx context.Context, role domain.SystemRole) (*domain.Group, error) {
	return r.getOne(ctx, squirrel.Eq{"system_role": role.String()})
}

func (r *Repo) getOne(ctx context.Context, pred any) (*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(groupColumns...).
		From(groupsTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("group select build: %w", err)
	}

	var row groupRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "group")
	}
	return row.toDomain(), nil
}

// List returns all groups ordered by name.
func (r *Repo) List(ctx context.Context) ([]*domain.Group, error) {
	return r.list(ctx, nil)
}

// ListUserDefined returns all groups not bound to a system role.
func (r *Repo) ListUserDefined(ctx context.Context) ([]*domain.Group, error) {
	return r.list(ctx, squirrel.Eq{"system_role": nil})
}

func (r *Repo) list(ctx context.Context, pred any) ([]*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select(groupColumns...).
		From(groupsTable).
		OrderBy("lower(name) ASC")
	if pred != nil {
		b = b.Where(pred)
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("group list build: %w", err)
	}

	var rows []groupRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "group")
	}

	groups := make([]*domain.Group, len(rows))
	for i, row := range rows {
		groups[i] = row.toDomain()
	}
	return groups, nil
}

// Update changes name and description of a user-defined group.
// System-defined groups are excluded in the WHERE clause, so an attempt
// to rename one reports domain.ErrNotFound.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update(groupsTable).
		Set("name", name).
		Set("description", description).
		Where(squirrel.Eq{"id": id, "system_role": nil}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("group update build: %w", err)
	}

	var row groupRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "group")
	}
	return row.toDomain(), nil
}

// Delete removes a user-defined group. Returns false when the id does not
// exist or refers to a system-defined group.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(groupsTable).
		Where(squirrel.Eq{"id": id, "system_role": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("group delete build: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "group")
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Membership join table
// ---------------------------------------------------------------------------

// ListIDsByAccount returns the ids of every group the account belongs to.
// This is the per-request precomputation feeding the visibility predicate.
func (r *Repo) ListIDsByAccount(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select("group_id").
		From(membershipTable).
		Where(squirrel.Eq{"account_id": accountID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("membership list build: %w", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, q, &ids, sql, args...); err != nil {
		return nil, postgres.MapError(err, "membership")
	}
	return ids, nil
}

// AddMember links an account to a group. Repeating the call is a no-op
// (ON CONFLICT DO NOTHING), so membership changes are idempotent.
func (r *Repo) AddMember(ctx context.Context, accountID, groupID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(membershipTable).
		Columns("account_id", "group_id").
		Values(accountID, groupID).
		Suffix("ON CONFLICT (account_id, group_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("membership insert build: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "membership")
	}
	return nil
}

// RemoveMember unlinks an account from a group. Returns whether a
// membership row was actually removed. Callers must reject system-defined
// groups before calling; the repo removes whatever it is told to.
func (r *Repo) RemoveMember(ctx context.Context, accountID, groupID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(membershipTable).
		Where(squirrel.Eq{"account_id": accountID, "group_id": groupID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("membership delete build: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "membership")
	}
	return tag.RowsAffected() > 0, nil
}

// IsMember reports whether the account belongs to the group.
func (r *Repo) IsMember(ctx context.Context, accountID, groupID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM account_groups WHERE account_id = $1 AND group_id = $2)`,
		accountID, groupID,
	).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "membership")
	}
	return exists, nil
}

// HasSystemRole reports whether the account belongs to the group bound to
// the given system role. This is the administrator gate for deletions.
func (r *Repo) HasSystemRole(ctx context.Context, accountID uuid.UUID, role domain.SystemRole) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1
			FROM account_groups ag
			JOIN groups g ON g.id = ag.group_id
			WHERE ag.account_id = $1 AND g.system_role = $2
		)`,
		accountID, role.String(),
	).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "membership")
	}
	return exists, nil
}

func columnList() string {
	return "id, name, description, system_role, created_at"
}
