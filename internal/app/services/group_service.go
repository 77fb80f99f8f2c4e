package services

import (
	"context"

	"github.com/avelichko/postline/internal/app/models"
	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/app/repositories"
	"github.com/avelichko/postline/internal/pkg/helpers"
)

// GroupService defines the group directory business logic
type GroupService interface {
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context, page, size int) (*dto.GroupListResponse, error)
	GetGroupBySlug(ctx context.Context, slug string) (*dto.GroupResponse, error)
	ListGroupPosts(ctx context.Context, slug string, page, size int) (*dto.PostListResponse, error)
}

type groupService struct {
	groupRepo GroupStore
	postRepo  PostStore
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo GroupStore, postRepo PostStore) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		postRepo:  postRepo,
	}
}

// CreateGroup creates a new group. A slug already in use yields
// apperrors.ErrSlugAlreadyUsed.
func (s *groupService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}

	id, err := s.groupRepo.Create(ctx, group)
	if err != nil {
		return nil, err
	}
	group.ID = id

	resp := dto.FromGroup(group)
	return &resp, nil
}

// ListGroups returns one page of the group directory, ordered by title.
func (s *groupService) ListGroups(ctx context.Context, page, size int) (*dto.GroupListResponse, error) {
	total, err := s.groupRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	groups, err := s.groupRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.GroupListResponse{
		Groups:     make([]dto.GroupResponse, 0, len(groups)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for i := range groups {
		resp.Groups = append(resp.Groups, dto.FromGroup(&groups[i]))
	}
	return resp, nil
}

// GetGroupBySlug returns one group by its slug.
func (s *groupService) GetGroupBySlug(ctx context.Context, slug string) (*dto.GroupResponse, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := dto.FromGroup(group)
	return &resp, nil
}

// ListGroupPosts returns one page of the posts published in a group,
// newest first. An unknown slug yields apperrors.ErrGroupNotFound.
func (s *groupService) ListGroupPosts(ctx context.Context, slug string, page, size int) (*dto.PostListResponse, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	filter := repositories.PostFilter{GroupID: &group.ID}

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
