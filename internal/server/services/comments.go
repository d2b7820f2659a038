package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akulikov/boardd/internal/dbx"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/models"
	"github.com/akulikov/boardd/internal/server/ownership"
	"github.com/akulikov/boardd/internal/server/repositories/repomanager"
)

// CommentService manages post comments, which carry the same dual-ownership
// model as posts.
type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher) *CommentService {
	return &CommentService{db: db, repomanager: m, hasher: hasher}
}

// Create adds a comment and bumps the post's comment counter in the same
// transaction, so the counter never drifts from the comment rows.
func (s *CommentService) Create(ctx context.Context, ident *auth.Identity, postID int64, content, displayName, secret string) (*models.Comment, error) {
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	owner, name, err := resolveOwner(s.hasher, ident, displayName, secret)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		CommunityID:  post.CommunityID,
		PostID:       postID,
		Content:      content,
		Owner:        owner,
		DisplayName:  name,
		CreationTime: time.Now(),
	}
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		c, err := s.repomanager.Comments(tx).Create(ctx, comment)
		if err != nil {
			return fmt.Errorf("error creating comment: %v", err)
		}
		comment = c
		return s.repomanager.Posts(tx).IncrementCommentCount(ctx, postID)
	}); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost returns one page of a post's comments, oldest first, plus the
// post's total comment count.
func (s *CommentService) ListByPost(ctx context.Context, postID, page int64) ([]models.Comment, int64, error) {
	repo := s.repomanager.Comments(s.db)
	list, err := repo.ListByPost(ctx, postID, pageOffset(page), PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing comments: %v", err)
	}
	total, err := repo.CountByPost(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting comments: %v", err)
	}
	return list, total, nil
}

// Update rewrites the comment body after the ownership check passes.
func (s *CommentService) Update(ctx context.Context, ident *auth.Identity, id int64, secret, content string) (*models.Comment, error) {
	repo := s.repomanager.Comments(s.db)
	comment, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(comment.Owner, ident, secret, ownership.Mutate); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := repo.Update(ctx, id, content, now); err != nil {
		return nil, fmt.Errorf("error updating comment: %v", err)
	}
	comment.Content = content
	comment.ModificationTime = &now
	return comment, nil
}

// Delete removes a comment after the ownership check passes. The post's
// comment counter keeps counting removed comments, matching the view
// counter's everything-that-happened semantics.
func (s *CommentService) Delete(ctx context.Context, ident *auth.Identity, id int64, secret string) error {
	repo := s.repomanager.Comments(s.db)
	comment, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ownership.Authorize(comment.Owner, ident, secret, ownership.Delete); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting comment: %v", err)
	}
	return nil
}
