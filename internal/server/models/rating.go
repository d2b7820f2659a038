package models

import "time"

// Rating records a single like/dislike cast by an account on a post. The
// (PostID, UserID) pair is unique: an account rates a post at most once,
// in either direction, ever.
type Rating struct {
	PostID    int64
	UserID    int64
	Plus      bool
	CreatedAt time.Time
}
