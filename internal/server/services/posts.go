package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/dbx"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/models"
	"github.com/akulikov/boardd/internal/server/ownership"
	"github.com/akulikov/boardd/internal/server/repositories/repomanager"
)

// PostService manages board posts: dual-ownership creation, counted reads,
// ownership-gated mutation, and the rating ledger.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher) *PostService {
	return &PostService{db: db, repomanager: m, hasher: hasher}
}

// Create adds a post to a community. Logged-in callers own the post through
// their account and are shown under their username; anonymous callers must
// supply a display name and a secret, which is hashed and becomes the only
// way to mutate the post later. The ownership mode is fixed at creation.
func (s *PostService) Create(ctx context.Context, ident *auth.Identity, communityID int64, title, content, displayName, secret string) (*models.Post, error) {
	if _, err := s.repomanager.Communities(s.db).GetByID(ctx, communityID); err != nil {
		return nil, err
	}

	owner, name, err := resolveOwner(s.hasher, ident, displayName, secret)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		CommunityID:  communityID,
		Title:        title,
		Content:      content,
		Owner:        owner,
		DisplayName:  name,
		CreationTime: time.Now(),
	}
	p, err := s.repomanager.Posts(s.db).Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %v", err)
	}
	return p, nil
}

// Get returns a post and counts the read: the view-count bump and the read
// run in one transaction, so the returned snapshot already includes this
// visit.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	var post *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		if err := repo.IncrementViewCount(ctx, id); err != nil {
			return err
		}
		var err error
		post, err = repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListByCommunity returns one page of a community's posts, newest first,
// plus the community's total post count.
func (s *PostService) ListByCommunity(ctx context.Context, communityID, page int64) ([]models.Post, int64, error) {
	repo := s.repomanager.Posts(s.db)
	list, err := repo.ListByCommunity(ctx, communityID, pageOffset(page), PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing posts: %v", err)
	}
	total, err := repo.CountByCommunity(ctx, communityID)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %v", err)
	}
	return list, total, nil
}

// Update rewrites title and content after the ownership check passes.
func (s *PostService) Update(ctx context.Context, ident *auth.Identity, id int64, secret, title, content string) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)
	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(post.Owner, ident, secret, ownership.Mutate); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := repo.Update(ctx, id, title, content, now); err != nil {
		return nil, fmt.Errorf("error updating post: %v", err)
	}
	post.Title = title
	post.Content = content
	post.ModificationTime = &now
	return post, nil
}

// Delete removes a post after the ownership check passes. Comments and
// ledger rows go with it through the schema's cascades.
func (s *PostService) Delete(ctx context.Context, ident *auth.Identity, id int64, secret string) error {
	repo := s.repomanager.Posts(s.db)
	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ownership.Authorize(post.Owner, ident, secret, ownership.Delete); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting post: %v", err)
	}
	return nil
}

// CheckPassword reports whether secret unlocks the post. Member-owned posts
// are never unlockable this way and always answer false.
func (s *PostService) CheckPassword(ctx context.Context, id int64, secret string) (bool, error) {
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	hash, ok := post.Owner.SecretHash()
	if !ok {
		return false, nil
	}
	return secret != "" && auth.VerifyPassword(secret, hash), nil
}

// Rate records a like or dislike. Each account rates a given post at most
// once, in either direction; the ledger insert and the tally bump run in
// one transaction, so a duplicate cast rolls back the bump and surfaces
// ErrAlreadyRated. Anonymous callers cannot rate.
func (s *PostService) Rate(ctx context.Context, ident *auth.Identity, postID int64, plus bool) error {
	if ident == nil {
		return common.ErrUnregistered
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rating := &models.Rating{PostID: postID, UserID: ident.UserID, Plus: plus, CreatedAt: time.Now()}
		if err := s.repomanager.Ratings(tx).Create(ctx, rating); err != nil {
			return err
		}
		return s.repomanager.Posts(tx).ApplyRating(ctx, postID, plus)
	})
}
