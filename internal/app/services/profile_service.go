package services

import (
	"context"

	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/app/repositories"
	"github.com/avelichko/postline/internal/pkg/apperrors"
	"github.com/avelichko/postline/internal/pkg/helpers"
)

// ProfileService defines the author profile and follow business logic
type ProfileService interface {
	GetProfile(ctx context.Context, username string, viewerID *int64) (*dto.ProfileResponse, error)
	ListProfilePosts(ctx context.Context, username string, page, size int) (*dto.PostListResponse, error)
	Follow(ctx context.Context, followerID int64, username string) error
	Unfollow(ctx context.Context, followerID int64, username string) error
}

type profileService struct {
	userRepo   UserStore
	postRepo   PostStore
	followRepo FollowStore
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo UserStore, postRepo PostStore, followRepo FollowStore) ProfileService {
	return &profileService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

// GetProfile returns an author profile. Following is true only when the
// viewer is authenticated and follows the author.
func (s *profileService) GetProfile(ctx context.Context, username string, viewerID *int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	postCount, err := s.postRepo.Count(ctx, repositories.PostFilter{AuthorID: &user.ID})
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != nil && *viewerID != user.ID {
		following, err = s.followRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ProfileResponse{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		PostCount: postCount,
		Following: following,
		CreatedAt: user.CreatedAt,
	}, nil
}

// ListProfilePosts returns one page of the author's posts, newest first.
func (s *profileService) ListProfilePosts(ctx context.Context, username string, page, size int) (*dto.PostListResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	filter := repositories.PostFilter{AuthorID: &user.ID}

	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	posts, err := s.postRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	return buildPostListResponse(posts, total, page, limit), nil
}

// Follow subscribes the follower to the author's posts. Following an
// already-followed author is a no-op; following yourself yields
// apperrors.ErrSelfFollow, which the controller swallows.
func (s *profileService) Follow(ctx context.Context, followerID int64, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if author.ID == followerID {
		return apperrors.ErrSelfFollow
	}

	return s.followRepo.Create(ctx, followerID, author.ID)
}

// Unfollow removes the follow edge. Unfollowing an author that was never
// followed is a no-op.
func (s *profileService) Unfollow(ctx context.Context, followerID int64, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.followRepo.Delete(ctx, followerID, author.ID)
}
