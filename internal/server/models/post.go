package models

import "time"

// Post is a board entry, created either by a member or by an anonymous
// visitor (see Owner). DisplayName is the author name shown on the board:
// the member's username or the free text chosen by the anonymous author.
type Post struct {
	ID               int64
	CommunityID      int64
	Title            string
	Content          string
	Owner            Owner
	DisplayName      string
	ViewCount        int64
	RatePlus         int64
	RateMinus        int64
	CommentCount     int64
	CreationTime     time.Time
	ModificationTime *time.Time
}
