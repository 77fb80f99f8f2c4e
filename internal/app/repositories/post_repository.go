package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelichko/postline/internal/app/models"
	"github.com/avelichko/postline/internal/pkg/apperrors"
	"github.com/avelichko/postline/internal/pkg/logger"
)

// PostFilter narrows post listings to one author or one group. A zero
// filter selects every post.
type PostFilter struct {
	AuthorID *int64
	GroupID  *int64
}

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// postColumns are the columns selected for every post read, including the
// author username and group slug listings need.
var postColumns = []string{
	"p.id", "p.text", "p.author_id", "p.group_id", "p.image_url", "p.created_at",
	"u.username", "g.slug",
}

// Create inserts a new post with a server-assigned creation timestamp
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (text, author_id, group_id, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	createdAt := time.Now()
	var id int64
	err := r.db.QueryRow(ctx, query,
		post.Text,
		post.AuthorID,
		post.GroupID,
		post.ImageURL,
		createdAt,
	).Scan(&id, &post.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("authorID", post.AuthorID).Msg("Error creating post")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return id, nil
}

// GetByID retrieves a post with its author and group attached
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.text, p.author_id, p.group_id, p.image_url, p.created_at,
			u.username, g.id, g.title, g.slug, g.description
		FROM posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN groups g ON g.id = p.group_id
		WHERE p.id = $1
	`

	var post models.Post
	var author models.User
	var groupID *int64
	var groupTitle, groupSlug, groupDescription *string

	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Text,
		&post.AuthorID,
		&post.GroupID,
		&post.ImageURL,
		&post.CreatedAt,
		&author.Username,
		&groupID,
		&groupTitle,
		&groupSlug,
		&groupDescription,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error querying post: %w", err)
	}

	author.ID = post.AuthorID
	post.Author = &author

	if groupID != nil {
		post.Group = &models.Group{
			ID:          *groupID,
			Title:       *groupTitle,
			Slug:        *groupSlug,
			Description: *groupDescription,
		}
	}

	return &post, nil
}

// Update rewrites a post's mutable fields. The author and creation
// timestamp are never touched.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET text = $1, group_id = $2, image_url = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, post.Text, post.GroupID, post.ImageURL, post.ID)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// List retrieves posts newest first, optionally filtered by author or group
func (r *PostRepository) List(ctx context.Context, filter PostFilter, offset uint64, limit int) ([]models.Post, error) {
	builder := r.sb.Select(postColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("groups g ON g.id = p.group_id")

	if filter.AuthorID != nil {
		builder = builder.Where(squirrel.Eq{"p.author_id": *filter.AuthorID})
	}
	if filter.GroupID != nil {
		builder = builder.Where(squirrel.Eq{"p.group_id": *filter.GroupID})
	}

	builder = builder.OrderBy("p.created_at DESC", "p.id DESC").
		Offset(offset).
		Limit(uint64(limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post list query: %w", err)
	}

	return r.queryPosts(ctx, sql, args...)
}

// Count returns the number of posts matching the filter
func (r *PostRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	builder := r.sb.Select("COUNT(*)").From("posts p")

	if filter.AuthorID != nil {
		builder = builder.Where(squirrel.Eq{"p.author_id": *filter.AuthorID})
	}
	if filter.GroupID != nil {
		builder = builder.Where(squirrel.Eq{"p.group_id": *filter.GroupID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build post count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting posts: %w", err)
	}
	return total, nil
}

// ListFeed retrieves posts authored by everyone the follower follows,
// newest first.
func (r *PostRepository) ListFeed(ctx context.Context, followerID int64, offset uint64, limit int) ([]models.Post, error) {
	query := `
		SELECT p.id, p.text, p.author_id, p.group_id, p.image_url, p.created_at,
			u.username, g.slug
		FROM posts p
		JOIN follows f ON f.author_id = p.author_id AND f.follower_id = $1
		JOIN users u ON u.id = p.author_id
		LEFT JOIN groups g ON g.id = p.group_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryPosts(ctx, query, followerID, limit, offset)
}

// CountFeed returns the number of posts in a follower's feed
func (r *PostRepository) CountFeed(ctx context.Context, followerID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM posts p
		JOIN follows f ON f.author_id = p.author_id AND f.follower_id = $1
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, followerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting feed posts: %w", err)
	}
	return total, nil
}

func (r *PostRepository) queryPosts(ctx context.Context, sql string, args ...interface{}) ([]models.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		var authorUsername string
		var groupSlug *string

		err := rows.Scan(
			&post.ID,
			&post.Text,
			&post.AuthorID,
			&post.GroupID,
			&post.ImageURL,
			&post.CreatedAt,
			&authorUsername,
			&groupSlug,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}

		post.Author = &models.User{ID: post.AuthorID, Username: authorUsername}
		if post.GroupID != nil && groupSlug != nil {
			post.Group = &models.Group{ID: *post.GroupID, Slug: *groupSlug}
		}

		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}
