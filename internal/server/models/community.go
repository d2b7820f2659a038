package models

import "time"

// Community is a board grouping posts by topic. Managed by admins only.
type Community struct {
	ID          int64
	Title       string
	Description string
	Thumbnail   string
	CreatedAt   time.Time
}
