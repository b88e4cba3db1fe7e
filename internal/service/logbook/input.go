package logbook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

const maxTitleLen = 200

// CreateLogInput carries the fields of a new log entry or revision.
type CreateLogInput struct {
	TimeOfEvent time.Time
	Title       string
	Description string
	TagIDs      []uuid.UUID
}

// Validate checks the log fields.
func (in CreateLogInput) Validate() error {
	var fields []domain.FieldError

	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, domain.FieldError{Field: "title", Message: "required"})
	} else if len(in.Title) > maxTitleLen {
		fields = append(fields, domain.FieldError{Field: "title", Message: "too long (max 200)"})
	}
	if in.TimeOfEvent.IsZero() {
		fields = append(fields, domain.FieldError{Field: "time_of_event", Message: "required"})
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// uniqueTagIDs drops duplicate tag references, keeping first-seen order.
func uniqueTagIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
