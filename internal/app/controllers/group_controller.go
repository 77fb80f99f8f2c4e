package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/app/services"
	"github.com/avelichko/postline/internal/middleware"
	"github.com/avelichko/postline/internal/pkg/helpers"
)

// GroupController handles the group directory
type GroupController struct {
	groupService services.GroupService
	logger       zerolog.Logger
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService, logger zerolog.Logger) *GroupController {
	return &GroupController{
		groupService: groupService,
		logger:       logger,
	}
}

// CreateGroup handles group creation
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupRequest true "Group data"
// @Success 201 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Slug already in use"
// @Security BearerAuth
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid group creation payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.groupService.CreateGroup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("groupId", resp.ID).Str("slug", resp.Slug).Msg("Group created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListGroups handles the group directory listing
// @Summary List groups
// @Tags groups
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.GroupListResponse}
// @Router /groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.groupService.ListGroups(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetGroup handles the group detail view
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Success 200 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{slug} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	resp, err := c.groupService.GetGroupBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListGroupPosts handles a group's post listing
// @Summary List a group's posts
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{slug}/posts [get]
func (c *GroupController) ListGroupPosts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.groupService.ListGroupPosts(ctx.Request.Context(), ctx.Param("slug"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
