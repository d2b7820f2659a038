package models

import "time"

// Comment belongs to a post and carries the same dual-ownership model as
// posts.
type Comment struct {
	ID               int64
	CommunityID      int64
	PostID           int64
	Content          string
	Owner            Owner
	DisplayName      string
	CreationTime     time.Time
	ModificationTime *time.Time
}
