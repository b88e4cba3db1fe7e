package domain

import (
	"time"

	"github.com/google/uuid"
)

// Log records a single shift event. Edits never mutate an existing row:
// each revision is a brand-new Log whose ParentID points at the log it
// supersedes, so history is append-only. A log with a nil ParentID is an
// original; every other log is a revision and carries RevisedBy/RevisedAt.
// The parent/child relationship is a tree: one parent, many children,
// cycles impossible because a revision is always newly created.
type Log struct {
	ID uuid.UUID

	// Seq is a storage-assigned monotone insertion counter. It breaks
	// ordering ties between revisions that share the same RevisedAt.
	Seq int64

	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	TimeOfEvent time.Time
	Title       string
	Description string

	// TagIDs is the set of attached tags; each reference is unique
	// within a single log.
	TagIDs []uuid.UUID

	ParentID  *uuid.UUID
	RevisedBy *uuid.UUID
	RevisedAt *time.Time
}

// IsOriginal reports whether the log is a first-recorded entry rather
// than a revision of another log.
func (l *Log) IsOriginal() bool {
	return l.ParentID == nil
}

// IsRevision reports whether the log supersedes a parent log.
func (l *Log) IsRevision() bool {
	return l.ParentID != nil
}

// ValidateRevisionFields checks the original/revision consistency
// invariant: ParentID, RevisedBy and RevisedAt are either all set or all
// unset.
func (l *Log) ValidateRevisionFields() error {
	if l.ParentID == nil {
		if l.RevisedBy != nil || l.RevisedAt != nil {
			return NewValidationError("parent_id", "original log must not carry revision metadata")
		}
		return nil
	}
	if l.RevisedBy == nil {
		return NewValidationError("revised_by", "required for a revision")
	}
	if l.RevisedAt == nil {
		return NewValidationError("revised_at", "required for a revision")
	}
	return nil
}
