package services

import (
	"context"
	"time"

	"github.com/avelichko/postline/internal/app/models"
	"github.com/avelichko/postline/internal/app/repositories"
)

// Store interfaces cover exactly what the services consume from the
// repository layer; the pgx repositories satisfy them, and tests swap in
// in-memory fakes.

// UserStore provides user persistence
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// GroupStore provides group persistence
type GroupStore interface {
	Create(ctx context.Context, group *models.Group) (int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	List(ctx context.Context, offset uint64, limit int) ([]models.Group, error)
	Count(ctx context.Context) (int64, error)
}

// PostStore provides post persistence
type PostStore interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	List(ctx context.Context, filter repositories.PostFilter, offset uint64, limit int) ([]models.Post, error)
	Count(ctx context.Context, filter repositories.PostFilter) (int64, error)
	ListFeed(ctx context.Context, followerID int64, offset uint64, limit int) ([]models.Post, error)
	CountFeed(ctx context.Context, followerID int64) (int64, error)
}

// CommentStore provides comment persistence
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

// FollowStore provides follow edge persistence
type FollowStore interface {
	Create(ctx context.Context, followerID, authorID int64) error
	Delete(ctx context.Context, followerID, authorID int64) error
	Exists(ctx context.Context, followerID, authorID int64) (bool, error)
}

// TokenStore provides refresh token persistence
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (userID int64, expiryDate time.Time, isRevoked bool, err error)
	RevokeToken(ctx context.Context, token string) error
}
