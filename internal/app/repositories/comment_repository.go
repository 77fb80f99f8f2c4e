package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelichko/postline/internal/app/models"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment with a server-assigned timestamp
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (post_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		comment.PostID,
		comment.AuthorID,
		comment.Text,
		time.Now(),
	).Scan(&id, &comment.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	return id, nil
}

// ListByPost retrieves every comment on a post in insertion order
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, u.username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		var authorUsername string

		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
			&authorUsername,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}

		comment.Author = &models.User{ID: comment.AuthorID, Username: authorUsername}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}
