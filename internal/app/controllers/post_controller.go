package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/app/services"
	"github.com/avelichko/postline/internal/middleware"
	"github.com/avelichko/postline/internal/pkg/apperrors"
	"github.com/avelichko/postline/internal/pkg/helpers"
)

// basePath prefixes the redirect targets the write endpoints produce.
const basePath = "/api/v1"

// PostController handles post and comment operations
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

func postDetailPath(postID int64) string {
	return fmt.Sprintf("%s/posts/%d", basePath, postID)
}

func profilePath(username string) string {
	return basePath + "/profiles/" + username
}

func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ListPosts handles the global post listing
// @Summary List posts
// @Description Returns one page of all posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number (out-of-range values clamp to the last page)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse}
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.postService.ListPosts(ctx.Request.Context(), dto.PostFilterRequest{
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetPost handles the post detail view
// @Summary Get a post
// @Description Returns one post together with its comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPostNotFound)
		return
	}

	resp, err := c.postService.GetPostDetail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreatePost handles post creation
// @Summary Create a post
// @Description Creates a post with optional group and image. The Location header points at the author's profile.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param text formData string true "Post text"
// @Param groupId formData int false "Group ID"
// @Param image formData file false "Post image"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// Image is optional; only a present file is passed on
	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	resp, err := c.postService.CreatePost(ctx.Request.Context(), userID, &req, image)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to create post")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("postId", resp.ID).Int64("userId", userID).Msg("Post created")

	ctx.Header("Location", profilePath(resp.AuthorUsername))
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdatePost handles post editing
// @Summary Edit a post
// @Description Updates a post's text, group, and image. Only the author's changes are applied; anyone else is redirected to the post unchanged.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Post ID"
// @Param text formData string true "Post text"
// @Param groupId formData int false "Group ID"
// @Param image formData file false "Post image"
// @Success 303 "Redirect to the post detail"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Security BearerAuth
// @Router /posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	postID, ok := parseID(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPostNotFound)
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	_, err = c.postService.UpdatePost(ctx.Request.Context(), postID, userID, &req, image)
	if err != nil {
		// A non-author edit is not an error to the caller: the post stays
		// as it was and the client is sent to the detail view.
		if errors.Is(err, apperrors.ErrNotPostAuthor) {
			ctx.Redirect(http.StatusSeeOther, postDetailPath(postID))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, postDetailPath(postID))
}

// AddComment handles comment creation
// @Summary Comment on a post
// @Description Adds a comment to a post. Blank text is dropped without an error.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment text"
// @Success 303 "Redirect to the post detail"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	postID, ok := parseID(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPostNotFound)
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	err := c.postService.AddComment(ctx.Request.Context(), postID, userID, &req)
	if err != nil && !errors.Is(err, apperrors.ErrEmptyComment) {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Empty comments land here too: dropped silently, same redirect
	ctx.Redirect(http.StatusSeeOther, postDetailPath(postID))
}

// Feed handles the followed-authors feed
// @Summary Follow feed
// @Description Returns one page of posts by the authors the current user follows
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse}
// @Security BearerAuth
// @Router /follow [get]
func (c *PostController) Feed(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.postService.ListFeed(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
