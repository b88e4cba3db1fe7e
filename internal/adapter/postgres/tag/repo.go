// Package tag implements the Tag repository using PostgreSQL.
package tag

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

const tagsTable = "tags"

var tagColumns = []string{"id", "title", "description", "color", "created_at"}

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new tag repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type tagRow struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Color       string    `db:"color"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r tagRow) toDomain() *domain.Tag {
	return &domain.Tag{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Color:       r.Color,
		CreatedAt:   r.CreatedAt,
	}
}

// Create inserts a tag and returns the persisted row.
func (r *Repo) Create(ctx context.Context, t domain.Tag) (*domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(tagsTable).
		Columns("id", "title", "description", "color").
		Values(t.ID, t.Title, t.Description, t.Color).
		Suffix("RETURNING id, title, description, color, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("tag insert build: %w", err)
	}

	var row tagRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "tag")
	}
	return row.toDomain(), nil
}

// GetByID returns the tag with the given id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByTitle returns the tag whose title matches case-insensitively.
func (r *Repo) GetByTitle(ctx context.Context, title string) (*domain.Tag, error) {
	return r.getOne(ctx, squirrel.Expr("lower(title) = lower(?)", title))
}

func (r *Repo) getOne(ctx context.Context, pred any) (*domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(tagColumns...).
		From(tagsTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("tag select build: %w", err)
	}

	var row tagRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "tag")
	}
	return row.toDomain(), nil
}

// List returns all tags ordered by title.
func (r *Repo) List(ctx context.Context) ([]*domain.Tag, error) {
	return r.list(ctx, nil)
}

// ListTitleContains returns tags whose title contains the fragment,
// matched case-insensitively.
func (r *Repo) ListTitleContains(ctx context.Context, fragment string) ([]*domain.Tag, error) {
	return r.list(ctx, squirrel.ILike{"title": "%" + fragment + "%"})
}

// ListByColor returns all tags with the given color.
func (r *Repo) ListByColor(ctx context.Context, color string) ([]*domain.Tag, error) {
	return r.list(ctx, squirrel.Eq{"color": color})
}

func (r *Repo) list(ctx context.Context, pred any) ([]*domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select(tagColumns...).
		From(tagsTable).
		OrderBy("lower(title) ASC")
	if pred != nil {
		b = b.Where(pred)
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("tag list build: %w", err)
	}

	var rows []tagRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "tag")
	}

	tags := make([]*domain.Tag, len(rows))
	for i, row := range rows {
		tags[i] = row.toDomain()
	}
	return tags, nil
}

// Delete removes a tag. Returns false when no such tag exists.
// References from logs disappear with it (ON DELETE CASCADE on log_tags).
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(tagsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("tag delete build: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "tag")
	}
	return tag.RowsAffected() > 0, nil
}

// ExistByIDs reports whether every id refers to an existing tag.
func (r *Repo) ExistByIDs(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT count(DISTINCT id) FROM tags WHERE id = ANY($1)`,
		ids,
	).Scan(&count)
	if err != nil {
		return false, postgres.MapError(err, "tag")
	}
	return count == len(uniqueIDs(ids)), nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
