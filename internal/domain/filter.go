package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogFilter contains the optional criteria of a visible-log search.
// All criteria combine with AND; the group-visibility predicate is always
// applied on top of them, server-side.
type LogFilter struct {
	// Time range on the event timestamp, inclusive on both ends.
	From *time.Time
	To   *time.Time

	// At matches the event timestamp exactly.
	At *time.Time

	// GroupID restricts to logs whose creator belongs to the group.
	GroupID *uuid.UUID

	// AccountIDs restricts to logs created by any of the accounts.
	AccountIDs []uuid.UUID

	// TagIDs restricts to logs carrying at least one of the tags.
	TagIDs []uuid.UUID

	// Title matches exactly; TitleContains matches a case-insensitive
	// substring anywhere in the title. Same for the description pair.
	Title               *string
	TitleContains       *string
	Description         *string
	DescriptionContains *string

	Limit  int
	Offset int
}
