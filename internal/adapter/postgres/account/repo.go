// Package account implements the Account repository using PostgreSQL.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/adapter/postgres"
	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

const accountsTable = "accounts"

var accountColumns = []string{"id", "first_name", "last_name", "email", "username", "password_hash", "created_at"}

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new account repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type accountRow struct {
	ID           uuid.UUID `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r accountRow) toDomain() *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// Create inserts an account and returns the persisted row. Duplicate
// email or username surfaces as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, a domain.Account) (*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(accountsTable).
		Columns("id", "first_name", "last_name", "email", "username", "password_hash").
		Values(a.ID, a.FirstName, a.LastName, a.Email, a.Username, a.PasswordHash).
		Suffix("RETURNING " + strings.Join(accountColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("account insert build: %w", err)
	}

	var row accountRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "account")
	}
	return row.toDomain(), nil
}

// GetByID returns the account with the given id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail returns the account with the given email (exact match).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByUsername returns the account with the given username (exact match).
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

func (r *Repo) getOne(ctx context.Context, pred any) (*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(accountColumns...).
		From(accountsTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("account select build: %w", err)
	}

	var row accountRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "account")
	}
	return row.toDomain(), nil
}

// ListByName returns all accounts with the given (first, last) name pair.
func (r *Repo) ListByName(ctx context.Context, firstName, lastName string) ([]*domain.Account, error) {
	return r.list(ctx, postgres.Builder().
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"first_name": firstName, "last_name": lastName}).
		OrderBy("username ASC"))
}

// ListByGroupName returns all accounts belonging to the named group
// (group name matched case-insensitively).
func (r *Repo) ListByGroupName(ctx context.Context, groupName string) ([]*domain.Account, error) {
	return r.list(ctx, postgres.Builder().
		Select(qualify(accountColumns)...).
		From(accountsTable+" a").
		Join("account_groups ag ON ag.account_id = a.id").
		Join("groups g ON g.id = ag.group_id").
		Where(squirrel.Expr("lower(g.name) = lower(?)", groupName)).
		OrderBy("a.username ASC"))
}

// ListByUsernamePrefixInGroup returns accounts whose username starts with
// the prefix and who belong to the named group.
func (r *Repo) ListByUsernamePrefixInGroup(ctx context.Context, prefix, groupName string) ([]*domain.Account, error) {
	return r.list(ctx, postgres.Builder().
		Select(qualify(accountColumns)...).
		From(accountsTable+" a").
		Join("account_groups ag ON ag.account_id = a.id").
		Join("groups g ON g.id = ag.group_id").
		Where(squirrel.Expr("lower(g.name) = lower(?)", groupName)).
		Where(squirrel.Like{"a.username": postgres.EscapeLike(prefix) + "%"}).
		OrderBy("a.username ASC"))
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("account list build: %w", err)
	}

	var rows []accountRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "account")
	}

	accounts := make([]*domain.Account, len(rows))
	for i, row := range rows {
		accounts[i] = row.toDomain()
	}
	return accounts, nil
}

// qualify prefixes the account columns with the table alias used in joins.
func qualify(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = "a." + c
	}
	return out
}
