package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag flags logs for searchability and visual identification. Tags have
// no owner and live independently of the logs that reference them.
type Tag struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Color       string
	CreatedAt   time.Time
}
