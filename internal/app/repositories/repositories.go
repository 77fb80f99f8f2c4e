package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories is a container for all application repositories
type Repositories struct {
	UserRepository    *UserRepository
	GroupRepository   *GroupRepository
	PostRepository    *PostRepository
	CommentRepository *CommentRepository
	FollowRepository  *FollowRepository
	TokenRepository   *TokenRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		GroupRepository:   NewGroupRepository(db),
		PostRepository:    NewPostRepository(db),
		CommentRepository: NewCommentRepository(db),
		FollowRepository:  NewFollowRepository(db),
		TokenRepository:   NewTokenRepository(db),
	}
}
