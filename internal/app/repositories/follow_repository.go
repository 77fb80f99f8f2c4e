package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelichko/postline/internal/pkg/dberrors"
)

// FollowRepository handles database operations for follow edges
type FollowRepository struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create inserts a follow edge idempotently: a duplicate pair is a no-op.
// ON CONFLICT covers the common path; the constraint check below covers a
// lost race where two inserts for the same pair land concurrently.
func (r *FollowRepository) Create(ctx context.Context, followerID, authorID int64) error {
	query := `
		INSERT INTO follows (follower_id, author_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT follows_follower_author_key DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, followerID, authorID, time.Now())
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "follows_follower_author_key") {
			return nil
		}
		return fmt.Errorf("error creating follow: %w", err)
	}

	return nil
}

// Delete removes a follow edge; removing a missing edge is a no-op
func (r *FollowRepository) Delete(ctx context.Context, followerID, authorID int64) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND author_id = $2
	`

	if _, err := r.db.Exec(ctx, query, followerID, authorID); err != nil {
		return fmt.Errorf("error deleting follow: %w", err)
	}

	return nil
}

// Exists reports whether follower follows author
func (r *FollowRepository) Exists(ctx context.Context, followerID, authorID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM follows
			WHERE follower_id = $1 AND author_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, followerID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking follow: %w", err)
	}

	return exists, nil
}
