package services

import (
	"context"
	"sort"
	"time"

	"github.com/avelichko/postline/internal/app/models"
	"github.com/avelichko/postline/internal/app/repositories"
	"github.com/avelichko/postline/internal/pkg/apperrors"
)

// fakeStore is an in-memory implementation of the store interfaces the
// services depend on.
type fakeStore struct {
	users    map[int64]*models.User
	groups   map[int64]*models.Group
	posts    map[int64]*models.Post
	comments map[int64]*models.Comment
	follows  map[[2]int64]bool
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*models.User),
		groups:   make(map[int64]*models.Group),
		posts:    make(map[int64]*models.Post),
		comments: make(map[int64]*models.Comment),
		follows:  make(map[[2]int64]bool),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addUser(username string) *models.User {
	u := &models.User{ID: f.id(), Username: username, Email: username + "@example.com", CreatedAt: time.Now()}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addGroup(title, slug string) *models.Group {
	g := &models.Group{ID: f.id(), Title: title, Slug: slug}
	f.groups[g.ID] = g
	return g
}

func (f *fakeStore) addPost(authorID int64, text string, groupID *int64) *models.Post {
	p := &models.Post{ID: f.id(), Text: text, AuthorID: authorID, GroupID: groupID, CreatedAt: time.Now()}
	f.posts[p.ID] = p
	return p
}

// --- UserStore ---

func (f *fakeStore) Create(ctx context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyUsed
		}
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyUsed
		}
	}
	user.ID = f.id()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// --- FollowStore ---

type fakeFollowStore struct{ *fakeStore }

func (f fakeFollowStore) Create(ctx context.Context, followerID, authorID int64) error {
	f.follows[[2]int64{followerID, authorID}] = true
	return nil
}

func (f fakeFollowStore) Delete(ctx context.Context, followerID, authorID int64) error {
	delete(f.follows, [2]int64{followerID, authorID})
	return nil
}

func (f fakeFollowStore) Exists(ctx context.Context, followerID, authorID int64) (bool, error) {
	return f.follows[[2]int64{followerID, authorID}], nil
}

// --- GroupStore ---

type fakeGroupStore struct{ *fakeStore }

func (f fakeGroupStore) Create(ctx context.Context, group *models.Group) (int64, error) {
	for _, g := range f.groups {
		if g.Slug == group.Slug {
			return 0, apperrors.ErrSlugAlreadyUsed
		}
	}
	g := *group
	g.ID = f.id()
	f.groups[g.ID] = &g
	return g.ID, nil
}

func (f fakeGroupStore) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	for _, g := range f.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, apperrors.ErrGroupNotFound
}

func (f fakeGroupStore) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return g, nil
}

func (f fakeGroupStore) List(ctx context.Context, offset uint64, limit int) ([]models.Group, error) {
	all := make([]models.Group, 0, len(f.groups))
	for _, g := range f.groups {
		all = append(all, *g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return paginate(all, offset, limit), nil
}

func (f fakeGroupStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.groups)), nil
}

// --- PostStore ---

type fakePostStore struct{ *fakeStore }

func (f fakePostStore) Create(ctx context.Context, post *models.Post) (int64, error) {
	p := *post
	p.ID = f.id()
	p.CreatedAt = time.Now()
	f.posts[p.ID] = &p
	return p.ID, nil
}

func (f fakePostStore) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return f.withRelations(p), nil
}

func (f fakePostStore) Update(ctx context.Context, post *models.Post) error {
	existing, ok := f.posts[post.ID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	existing.Text = post.Text
	existing.GroupID = post.GroupID
	existing.ImageURL = post.ImageURL
	return nil
}

func (f fakePostStore) List(ctx context.Context, filter repositories.PostFilter, offset uint64, limit int) ([]models.Post, error) {
	return paginate(f.matching(filter), offset, limit), nil
}

func (f fakePostStore) Count(ctx context.Context, filter repositories.PostFilter) (int64, error) {
	return int64(len(f.matching(filter))), nil
}

func (f fakePostStore) ListFeed(ctx context.Context, followerID int64, offset uint64, limit int) ([]models.Post, error) {
	return paginate(f.feedPosts(followerID), offset, limit), nil
}

func (f fakePostStore) CountFeed(ctx context.Context, followerID int64) (int64, error) {
	return int64(len(f.feedPosts(followerID))), nil
}

func (f fakePostStore) matching(filter repositories.PostFilter) []models.Post {
	var out []models.Post
	for _, p := range f.posts {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
			continue
		}
		out = append(out, *f.withRelations(p))
	}
	sortNewestFirst(out)
	return out
}

func (f fakePostStore) feedPosts(followerID int64) []models.Post {
	var out []models.Post
	for _, p := range f.posts {
		if f.follows[[2]int64{followerID, p.AuthorID}] {
			out = append(out, *f.withRelations(p))
		}
	}
	sortNewestFirst(out)
	return out
}

func (f fakePostStore) withRelations(p *models.Post) *models.Post {
	cp := *p
	if u, ok := f.users[p.AuthorID]; ok {
		cp.Author = &models.User{ID: u.ID, Username: u.Username}
	}
	if p.GroupID != nil {
		if g, ok := f.groups[*p.GroupID]; ok {
			cp.Group = &models.Group{ID: g.ID, Slug: g.Slug}
		}
	}
	return &cp
}

// --- CommentStore ---

type fakeCommentStore struct{ *fakeStore }

func (f fakeCommentStore) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	c := *comment
	c.ID = f.id()
	c.CreatedAt = time.Now()
	f.comments[c.ID] = &c
	return c.ID, nil
}

func (f fakeCommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			cp := *c
			if u, ok := f.users[c.AuthorID]; ok {
				cp.Author = &models.User{ID: u.ID, Username: u.Username}
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
}

func paginate[T any](items []T, offset uint64, limit int) []T {
	if int(offset) >= len(items) {
		return nil
	}
	end := int(offset) + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
