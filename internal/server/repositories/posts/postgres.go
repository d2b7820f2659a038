package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/dbx"
	"github.com/akulikov/boardd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `id, community_id, title, content, creator, secret_hash, display_name,
	view_count, rate_plus, rate_minus, comment_count, creation_time, modification_time`

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (community_id, title, content, creator, secret_hash, display_name, creation_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	creator, secretHash := ownerColumns(post.Owner)
	err := r.db.QueryRowContext(ctx, query,
		post.CommunityID, post.Title, post.Content,
		creator, secretHash, post.DisplayName, post.CreationTime).Scan(&post.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, title, content string, modifiedAt time.Time) error {
	query := `UPDATE posts SET title = $1, content = $2, modification_time = $3 WHERE id = $4`
	return r.exec(ctx, query, title, content, modifiedAt, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
}

func (r *PostgresRepository) ListByCommunity(ctx context.Context, communityID, offset, limit int64) ([]models.Post, error) {
	query :=
		`SELECT ` + postColumns + ` FROM posts
		 WHERE community_id = $1
		 ORDER BY id DESC
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, communityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) CountByCommunity(ctx context.Context, communityID int64) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE community_id = $1`, communityID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.exec(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
}

// ApplyRating bumps one of the two tally columns. Callers must pair it with
// the ledger insert inside a single transaction; on its own it gives no
// duplicate protection.
func (r *PostgresRepository) ApplyRating(ctx context.Context, id int64, plus bool) error {
	query := `UPDATE posts SET rate_minus = rate_minus + 1 WHERE id = $1`
	if plus {
		query = `UPDATE posts SET rate_plus = rate_plus + 1 WHERE id = $1`
	}
	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) IncrementCommentCount(ctx context.Context, id int64) error {
	return r.exec(ctx, `UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ownerColumns splits an Owner into the nullable creator/secret_hash pair
// stored in the row.
func ownerColumns(owner models.Owner) (sql.NullInt64, sql.NullString) {
	if id, ok := owner.Member(); ok {
		return sql.NullInt64{Int64: id, Valid: true}, sql.NullString{}
	}
	hash, _ := owner.SecretHash()
	return sql.NullInt64{}, sql.NullString{String: hash, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post       models.Post
		creator    sql.NullInt64
		secretHash sql.NullString
		modified   sql.NullTime
	)
	err := row.Scan(&post.ID, &post.CommunityID, &post.Title, &post.Content,
		&creator, &secretHash, &post.DisplayName,
		&post.ViewCount, &post.RatePlus, &post.RateMinus, &post.CommentCount,
		&post.CreationTime, &modified)
	if err != nil {
		return nil, err
	}
	if creator.Valid {
		post.Owner = models.MemberOwner(creator.Int64)
	} else {
		post.Owner = models.AnonymousOwner(secretHash.String)
	}
	if modified.Valid {
		t := modified.Time
		post.ModificationTime = &t
	}
	return &post, nil
}
