package httpapi

import (
	"time"

	"github.com/akulikov/boardd/internal/server/models"
)

// Response shapes. Ownership internals (password hashes, anonymous
// secrets) never leave the server; member-owned resources expose the
// owning account id instead.

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

type communityResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCommunityResponse(c *models.Community) communityResponse {
	return communityResponse{ID: c.ID, Title: c.Title, Description: c.Description, Thumbnail: c.Thumbnail, CreatedAt: c.CreatedAt}
}

type postResponse struct {
	ID               int64      `json:"id"`
	CommunityID      int64      `json:"communityId"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	AccountID        *int64     `json:"accountId,omitempty"`
	DisplayName      string     `json:"displayName"`
	ViewCount        int64      `json:"viewCount"`
	RatePlus         int64      `json:"ratePlus"`
	RateMinus        int64      `json:"rateMinus"`
	CommentCount     int64      `json:"commentCount"`
	CreationTime     time.Time  `json:"creationTime"`
	ModificationTime *time.Time `json:"modificationTime,omitempty"`
}

func toPostResponse(p *models.Post) postResponse {
	resp := postResponse{
		ID:               p.ID,
		CommunityID:      p.CommunityID,
		Title:            p.Title,
		Content:          p.Content,
		DisplayName:      p.DisplayName,
		ViewCount:        p.ViewCount,
		RatePlus:         p.RatePlus,
		RateMinus:        p.RateMinus,
		CommentCount:     p.CommentCount,
		CreationTime:     p.CreationTime,
		ModificationTime: p.ModificationTime,
	}
	if id, ok := p.Owner.Member(); ok {
		resp.AccountID = &id
	}
	return resp
}

type commentResponse struct {
	ID               int64      `json:"id"`
	CommunityID      int64      `json:"communityId"`
	PostID           int64      `json:"postId"`
	Content          string     `json:"content"`
	AccountID        *int64     `json:"accountId,omitempty"`
	DisplayName      string     `json:"displayName"`
	CreationTime     time.Time  `json:"creationTime"`
	ModificationTime *time.Time `json:"modificationTime,omitempty"`
}

func toCommentResponse(cm *models.Comment) commentResponse {
	resp := commentResponse{
		ID:               cm.ID,
		CommunityID:      cm.CommunityID,
		PostID:           cm.PostID,
		Content:          cm.Content,
		DisplayName:      cm.DisplayName,
		CreationTime:     cm.CreationTime,
		ModificationTime: cm.ModificationTime,
	}
	if id, ok := cm.Owner.Member(); ok {
		resp.AccountID = &id
	}
	return resp
}

// pagedResponse wraps list endpoints with the total row count so clients
// can render pagination.
type pagedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
}
