package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/avelichko/postline/internal/app/models"
	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/app/repositories"
	"github.com/avelichko/postline/internal/pkg/apperrors"
	"github.com/avelichko/postline/internal/pkg/filestorage"
	"github.com/avelichko/postline/internal/pkg/helpers"
	"github.com/avelichko/postline/internal/pkg/logger"
)

// PostService defines the post and comment business logic
type PostService interface {
	ListPosts(ctx context.Context, filter dto.PostFilterRequest) (*dto.PostListResponse, error)
	GetPostDetail(ctx context.Context, id int64) (*dto.PostDetailResponse, error)
	CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, postID, userID int64, req *dto.UpdatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error)
	AddComment(ctx context.Context, postID, authorID int64, req *dto.CreateCommentRequest) error
	ListFeed(ctx context.Context, followerID int64, page, size int) (*dto.PostListResponse, error)
}

type postService struct {
	postRepo    PostStore
	commentRepo CommentStore
	groupRepo   GroupStore
	fileStorage filestorage.FileStorage
}

// NewPostService creates a new PostService
func NewPostService(postRepo PostStore, commentRepo CommentStore, groupRepo GroupStore, fileStorage filestorage.FileStorage) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		groupRepo:   groupRepo,
		fileStorage: fileStorage,
	}
}

// ListPosts returns one page of posts, newest first, optionally filtered by
// author and group. A page number past the end is clamped to the last page.
func (s *postService) ListPosts(ctx context.Context, filter dto.PostFilterRequest) (*dto.PostListResponse, error) {
	repoFilter := repositories.PostFilter{
		AuthorID: filter.AuthorID,
		GroupID:  filter.GroupID,
	}

	total, err := s.postRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	page := helpers.ClampPage(filter.Page, total, filter.PageSize)
	offset, limit := helpers.CalculateOffsetLimit(page, filter.PageSize)

	posts, err := s.postRepo.List(ctx, repoFilter, offset, limit)
	if err != nil {
		return nil, err
	}

	return buildPostListResponse(posts, total, page, limit), nil
}

// GetPostDetail returns a single post together with all of its comments.
func (s *postService) GetPostDetail(ctx context.Context, id int64) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.PostDetailResponse{
		Post:     dto.FromPost(post),
		Comments: make([]dto.CommentResponse, 0, len(comments)),
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, dto.FromComment(&comments[i]))
	}
	return resp, nil
}

// CreatePost creates a post for the given author, storing the optional
// image under posts/ and resolving the optional group reference.
func (s *postService) CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error) {
	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Text:     req.Text,
		AuthorID: authorID,
		GroupID:  req.GroupID,
	}

	if image != nil {
		imageURL, err := s.fileStorage.SaveFileWithPath(image, "posts")
		if err != nil {
			logger.Error().Err(err).Msg("Failed to store post image")
			return nil, err
		}
		post.ImageURL = &imageURL
	}

	id, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id

	created, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromPost(created)
	return &resp, nil
}

// UpdatePost edits a post's text, group, and image. Only the author may
// edit; anyone else gets apperrors.ErrNotPostAuthor and the post stays
// unchanged.
func (s *postService) UpdatePost(ctx context.Context, postID, userID int64, req *dto.UpdatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, apperrors.ErrNotPostAuthor
	}

	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}

	post.Text = req.Text
	post.GroupID = req.GroupID

	if image != nil {
		imageURL, err := s.fileStorage.SaveFileWithPath(image, "posts")
		if err != nil {
			logger.Error().Err(err).Msg("Failed to store post image")
			return nil, err
		}
		if post.ImageURL != nil {
			if delErr := s.fileStorage.DeleteFile(*post.ImageURL); delErr != nil {
				logger.Warn().Err(delErr).Str("path", *post.ImageURL).Msg("Failed to delete replaced post image")
			}
		}
		post.ImageURL = &imageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromPost(updated)
	return &resp, nil
}

// AddComment attaches a comment to a post. Blank text is dropped without
// an error from the caller's point of view: the service signals it with
// apperrors.ErrEmptyComment and the controller redirects as if it succeeded.
func (s *postService) AddComment(ctx context.Context, postID, authorID int64, req *dto.CreateCommentRequest) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Text) == "" {
		return apperrors.ErrEmptyComment
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     req.Text,
	}
	_, err := s.commentRepo.Create(ctx, comment)
	return err
}

// ListFeed returns one page of posts authored by users the follower
// follows, newest first.
func (s *postService) ListFeed(ctx context.Context, followerID int64, page, size int) (*dto.PostListResponse, error) {
	total, err := s.postRepo.CountFeed(ctx, followerID)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	posts, err := s.postRepo.ListFeed(ctx, followerID, offset, limit)
	if err != nil {
		return nil, err
	}

	return buildPostListResponse(posts, total, page, limit), nil
}

func buildPostListResponse(posts []models.Post, total int64, page, size int) *dto.PostListResponse {
	resp := &dto.PostListResponse{
		Posts:      make([]dto.PostResponse, 0, len(posts)),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, dto.FromPost(&posts[i]))
	}
	return resp
}
