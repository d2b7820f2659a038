package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/models"
	"github.com/akulikov/boardd/internal/server/repositories/repomanager"
)

// PageSize is the fixed page length for community, post, and comment
// listings.
const PageSize = 20

// CommunityService manages boards. Reads are public; creating, changing,
// and removing boards is restricted to admin accounts.
type CommunityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCommunityService(db *sql.DB, m repomanager.RepositoryManager) *CommunityService {
	return &CommunityService{db: db, repomanager: m}
}

func (s *CommunityService) Create(ctx context.Context, ident *auth.Identity, title, description, thumbnail string) (*models.Community, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	community := &models.Community{
		Title:       title,
		Description: description,
		Thumbnail:   thumbnail,
		CreatedAt:   time.Now(),
	}
	c, err := s.repomanager.Communities(s.db).Create(ctx, community)
	if err != nil {
		return nil, fmt.Errorf("error creating community: %v", err)
	}
	return c, nil
}

func (s *CommunityService) Get(ctx context.Context, id int64) (*models.Community, error) {
	return s.repomanager.Communities(s.db).GetByID(ctx, id)
}

// List returns one page of boards plus the total count for pagination.
func (s *CommunityService) List(ctx context.Context, page int64) ([]models.Community, int64, error) {
	repo := s.repomanager.Communities(s.db)
	list, err := repo.List(ctx, pageOffset(page), PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing communities: %v", err)
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting communities: %v", err)
	}
	return list, total, nil
}

func (s *CommunityService) Update(ctx context.Context, ident *auth.Identity, id int64, title, description, thumbnail string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	return s.repomanager.Communities(s.db).Update(ctx, id, title, description, thumbnail)
}

func (s *CommunityService) Delete(ctx context.Context, ident *auth.Identity, id int64) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	return s.repomanager.Communities(s.db).Delete(ctx, id)
}

func requireAdmin(ident *auth.Identity) error {
	if ident == nil || ident.Role != models.RoleAdmin {
		return common.ErrPermissionDenied
	}
	return nil
}

// pageOffset converts a 1-based page number into a row offset. Pages below
// one are treated as the first page.
func pageOffset(page int64) int64 {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}
