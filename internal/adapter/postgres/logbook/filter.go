package logbook

import (
	"github.com/Masterminds/squirrel"

	"github.com/shiftlog/shiftlog-backend/internal/adapter/postgres"
	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// applyFilter translates a LogFilter into WHERE clauses on the aliased
// logs table. All criteria AND together; the caller has already attached
// the visibility predicate.
func applyFilter(b squirrel.SelectBuilder, f domain.LogFilter) squirrel.SelectBuilder {
	if f.At != nil {
		b = b.Where(squirrel.Eq{"l.time_of_event": *f.At})
	} else {
		if f.From != nil {
			b = b.Where(squirrel.GtOrEq{"l.time_of_event": *f.From})
		}
		if f.To != nil {
			b = b.Where(squirrel.LtOrEq{"l.time_of_event": *f.To})
		}
	}

	if f.GroupID != nil {
		b = b.Where(squirrel.Expr(`EXISTS (
			SELECT 1 FROM account_groups fg
			WHERE fg.account_id = l.created_by AND fg.group_id = ?
		)`, *f.GroupID))
	}
	if len(f.AccountIDs) > 0 {
		b = b.Where(squirrel.Expr("l.created_by = ANY(?)", f.AccountIDs))
	}
	if len(f.TagIDs) > 0 {
		b = b.Where(squirrel.Expr(`EXISTS (
			SELECT 1 FROM log_tags ft
			WHERE ft.log_id = l.id AND ft.tag_id = ANY(?)
		)`, f.TagIDs))
	}

	if f.Title != nil {
		b = b.Where(squirrel.Eq{"l.title": *f.Title})
	}
	if f.TitleContains != nil {
		b = b.Where(squirrel.ILike{"l.title": "%" + postgres.EscapeLike(*f.TitleContains) + "%"})
	}
	if f.Description != nil {
		b = b.Where(squirrel.Eq{"l.description": *f.Description})
	}
	if f.DescriptionContains != nil {
		b = b.Where(squirrel.ILike{"l.description": "%" + postgres.EscapeLike(*f.DescriptionContains) + "%"})
	}

	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	return b
}
