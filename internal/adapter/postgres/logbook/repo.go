// Package logbook implements the Log repository using PostgreSQL.
//
// Group-scoped visibility is enforced here, inside the SQL, never by
// filtering rows after the fact. Every read and delete that acts on
// behalf of a requester takes the precomputed set of the requester's
// group ids and matches logs whose creator shares at least one of them.
package logbook

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

const (
	logsTable    = "logs"
	logTagsTable = "log_tags"
)

var logColumns = []string{
	"id", "seq", "created_by", "created_at", "time_of_event",
	"title", "description", "parent_id", "revised_by", "revised_at",
}

// visibleExpr is the group-scoped visibility predicate: the log's creator
// shares at least one group with the requester. The single placeholder is
// the requester's group-id set.
const visibleExpr = `EXISTS (
	SELECT 1 FROM account_groups ag
	WHERE ag.account_id = l.created_by AND ag.group_id = ANY(?)
)`

// Repo provides log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type logRow struct {
	ID          uuid.UUID  `db:"id"`
	Seq         int64      `db:"seq"`
	CreatedBy   uuid.UUID  `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	TimeOfEvent time.Time  `db:"time_of_event"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	ParentID    *uuid.UUID `db:"parent_id"`
	RevisedBy   *uuid.UUID `db:"revised_by"`
	RevisedAt   *time.Time `db:"revised_at"`
}

func (r logRow) toDomain() *domain.Log {
	return &domain.Log{
		ID:          r.ID,
		Seq:         r.Seq,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		TimeOfEvent: r.TimeOfEvent,
		Title:       r.Title,
		Description: r.Description,
		ParentID:    r.ParentID,
		RevisedBy:   r.RevisedBy,
		RevisedAt:   r.RevisedAt,
	}
}

// Create inserts a log together with its tag references. The seq counter
// and created_at come back from the database. Callers creating a revision
// run this inside a transaction that also touched the parent row, so a
// concurrent delete of the parent either sees the new child or blocks it.
func (r *Repo) Create(ctx context.Context, l domain.Log) (*domain.Log, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(logsTable).
		Columns("id", "created_by", "time_of_event", "title", "description",
			"parent_id", "revised_by", "revised_at").
		Values(l.ID, l.CreatedBy, l.TimeOfEvent, l.Title, l.Description,
			l.ParentID, l.RevisedBy, l.RevisedAt).
		Suffix("RETURNING " + strings.Join(logColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("log insert build: %w", err)
	}

	var row logRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "log")
	}

	created := row.toDomain()
	if len(l.TagIDs) > 0 {
		if err := r.insertTagRefs(ctx, q, created.ID, l.TagIDs); err != nil {
			return nil, err
		}
		created.TagIDs = append([]uuid.UUID(nil), l.TagIDs...)
	}
	return created, nil
}

func (r *Repo) insertTagRefs(ctx context.Context, q postgres.Querier, logID uuid.UUID, tagIDs []uuid.UUID) error {
	b := postgres.Builder().
		Insert(logTagsTable).
		Columns("log_id", "tag_id")
	for _, tagID := range tagIDs {
		b = b.Values(logID, tagID)
	}
	// duplicates within one log collapse into a single reference
	sql, args, err := b.Suffix("ON CONFLICT (log_id, tag_id) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("log tags insert build: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "log")
	}
	return nil
}

// GetByID returns a log without any visibility check. For internal use
// (revision creation, seeding); requester-facing reads go through
// GetVisibleByID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Log, error) {
	return r.getOne(ctx, squirrel.Eq{"l.id": id})
}

// GetVisibleByID returns the log only when its creator shares a group
// with the requester. A log outside the requester's scope reports
// domain.ErrNotFound, indistinguishable from a log that does not exist.
func (r *Repo) GetVisibleByID(ctx context.Context, groupIDs []uuid.UUID, id uuid.UUID) (*domain.Log, error) {
	if len(groupIDs) == 0 {
		return nil, fmt.Errorf("log: %w", domain.ErrNotFound)
	}
	return r.getOne(ctx,
		squirrel.And{
			squirrel.Eq{"l.id": id},
			squirrel.Expr(visibleExpr, groupIDs),
		})
}

func (r *Repo) getOne(ctx context.Context, pred any) (*domain.Log, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(prefixed(logColumns)...).
		From(logsTable + " l").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("log select build: %w", err)
	}

	var row logRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "log")
	}

	l := row.toDomain()
	if err := r.attachTagIDs(ctx, q, []*domain.Log{l}); err != nil {
		return nil, err
	}
	return l, nil
}

// ListVisible returns logs visible to the requester, newest event first.
// An empty group set yields no rows without touching the database.
func (r *Repo) ListVisible(ctx context.Context, groupIDs []uuid.UUID, f domain.LogFilter) ([]*domain.Log, error) {
	if len(groupIDs) == 0 {
		return []*domain.Log{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select(prefixed(logColumns)...).
		From(logsTable + " l").
		Where(squirrel.Expr(visibleExpr, groupIDs)).
		OrderBy("l.time_of_event DESC", "l.seq DESC")
	b = applyFilter(b, f)

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("log list build: %w", err)
	}

	return r.selectLogs(ctx, q, sql, args)
}

// ListRevisions returns the direct children of a log, most recently
// revised first. Revisions sharing a revised_at timestamp keep insertion
// order among themselves.
func (r *Repo) ListRevisions(ctx context.Context, parentID uuid.UUID) ([]*domain.Log, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(prefixed(logColumns)...).
		From(logsTable + " l").
		Where(squirrel.Eq{"l.parent_id": parentID}).
		OrderBy("l.revised_at DESC", "l.seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("log revisions build: %w", err)
	}

	return r.selectLogs(ctx, q, sql, args)
}

func (r *Repo) selectLogs(ctx context.Context, q postgres.Querier, sql string, args []any) ([]*domain.Log, error) {
	var rows []logRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "log")
	}

	logs := make([]*domain.Log, len(rows))
	for i, row := range rows {
		logs[i] = row.toDomain()
	}
	if err := r.attachTagIDs(ctx, q, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// attachTagIDs hydrates TagIDs for a batch of logs with one query.
func (r *Repo) attachTagIDs(ctx context.Context, q postgres.Querier, logs []*domain.Log) error {
	if len(logs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(logs))
	byID := make(map[uuid.UUID]*domain.Log, len(logs))
	for i, l := range logs {
		ids[i] = l.ID
		byID[l.ID] = l
	}

	type refRow struct {
		LogID uuid.UUID `db:"log_id"`
		TagID uuid.UUID `db:"tag_id"`
	}
	var refs []refRow
	err := pgxscan.Select(ctx, q, &refs,
		`SELECT lt.log_id, lt.tag_id
		 FROM log_tags lt
		 JOIN tags t ON t.id = lt.tag_id
		 WHERE lt.log_id = ANY($1)
		 ORDER BY lower(t.title) ASC`,
		ids,
	)
	if err != nil {
		return postgres.MapError(err, "log")
	}
	for _, ref := range refs {
		l := byID[ref.LogID]
		l.TagIDs = append(l.TagIDs, ref.TagID)
	}
	return nil
}

// DeleteVisible removes one log the requester can see, taking its whole
// revision subtree with it via the parent_id cascade. Returns false both
// for a missing id and for a log outside the requester's scope.
func (r *Repo) DeleteVisible(ctx context.Context, groupIDs []uuid.UUID, id uuid.UUID) (bool, error) {
	if len(groupIDs) == 0 {
		return false, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(logsTable + " l").
		Where(squirrel.And{
			squirrel.Eq{"l.id": id},
			squirrel.Expr(visibleExpr, groupIDs),
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("log delete build: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "log")
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByCreators removes every visible log created by any of the given
// accounts and returns how many rows the delete itself matched. Cascaded
// revisions are not counted.
func (r *Repo) DeleteByCreators(ctx context.Context, groupIDs []uuid.UUID, creatorIDs []uuid.UUID) (int64, error) {
	if len(groupIDs) == 0 || len(creatorIDs) == 0 {
		return 0, nil
	}
	return r.deleteWhere(ctx, squirrel.And{
		squirrel.Expr("l.created_by = ANY(?)", creatorIDs),
		squirrel.Expr(visibleExpr, groupIDs),
	})
}

// DeleteByGroup removes every visible log whose creator belongs to the
// target group. Both membership in the target group and visibility to the
// requester must hold.
func (r *Repo) DeleteByGroup(ctx context.Context, groupIDs []uuid.UUID, targetGroupID uuid.UUID) (int64, error) {
	if len(groupIDs) == 0 {
		return 0, nil
	}
	return r.deleteWhere(ctx, squirrel.And{
		squirrel.Expr(`EXISTS (
			SELECT 1 FROM account_groups tg
			WHERE tg.account_id = l.created_by AND tg.group_id = ?
		)`, targetGroupID),
		squirrel.Expr(visibleExpr, groupIDs),
	})
}

func (r *Repo) deleteWhere(ctx context.Context, pred squirrel.Sqlizer) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(logsTable + " l").
		Where(pred).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("log delete build: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "log")
	}
	return tag.RowsAffected(), nil
}

func prefixed(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = "l." + c
	}
	return out
}
