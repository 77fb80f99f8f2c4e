package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/app/services"
	"github.com/avelichko/postline/internal/middleware"
	"github.com/avelichko/postline/internal/pkg/apperrors"
	"github.com/avelichko/postline/internal/pkg/helpers"
)

// ProfileController handles author profiles and follows
type ProfileController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile handles the author profile view
// @Summary Get an author profile
// @Description Returns the author's info, post count, and whether the current viewer follows them
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /profiles/{username} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	var viewerID *int64
	if id, ok := middleware.CurrentUserID(ctx); ok {
		viewerID = &id
	}

	resp, err := c.profileService.GetProfile(ctx.Request.Context(), ctx.Param("username"), viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListProfilePosts handles an author's post listing
// @Summary List an author's posts
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /profiles/{username}/posts [get]
func (c *ProfileController) ListProfilePosts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.profileService.ListProfilePosts(ctx.Request.Context(), ctx.Param("username"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Follow handles following an author
// @Summary Follow an author
// @Description Subscribes the current user to the author. Duplicate follows and self-follows are silent no-ops.
// @Tags profiles
// @Param username path string true "Username"
// @Success 303 "Redirect to the profile"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /profiles/{username}/follow [post]
func (c *ProfileController) Follow(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	username := ctx.Param("username")

	err := c.profileService.Follow(ctx.Request.Context(), userID, username)
	if err != nil && !errors.Is(err, apperrors.ErrSelfFollow) {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Self-follows fall through: no edge is created, same redirect
	ctx.Redirect(http.StatusSeeOther, profilePath(username))
}

// Unfollow handles unfollowing an author
// @Summary Unfollow an author
// @Description Removes the follow edge. A missing edge is a silent no-op.
// @Tags profiles
// @Param username path string true "Username"
// @Success 303 "Redirect to the profile"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /profiles/{username}/follow [delete]
func (c *ProfileController) Unfollow(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	username := ctx.Param("username")

	if err := c.profileService.Unfollow(ctx.Request.Context(), userID, username); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, profilePath(username))
}
