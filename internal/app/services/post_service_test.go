package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/pkg/apperrors"
)

func newPostServiceForTest(store *fakeStore) PostService {
	return NewPostService(fakePostStore{store}, fakeCommentStore{store}, fakeGroupStore{store}, nil)
}

func TestCreatePost(t *testing.T) {
	store := newFakeStore()
	author := store.addUser("leo")
	group := store.addGroup("Prose", "prose")
	svc := newPostServiceForTest(store)

	resp, err := svc.CreatePost(context.Background(), author.ID, &dto.CreatePostRequest{
		Text:    "first post",
		GroupID: &group.ID,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "first post", resp.Text)
	assert.Equal(t, author.ID, resp.AuthorID)
	assert.Equal(t, "leo", resp.AuthorUsername)
	require.NotNil(t, resp.GroupSlug)
	assert.Equal(t, "prose", *resp.GroupSlug)
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestCreatePost_UnknownGroup(t *testing.T) {
	store := newFakeStore()
	author := store.addUser("leo")
	svc := newPostServiceForTest(store)

	missing := int64(999)
	_, err := svc.CreatePost(context.Background(), author.ID, &dto.CreatePostRequest{
		Text:    "post",
		GroupID: &missing,
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
	assert.Empty(t, store.posts)
}

func TestUpdatePost_NonAuthorLeavesPostUnchanged(t *testing.T) {
	store := newFakeStore()
	author := store.addUser("leo")
	other := store.addUser("fyodor")
	post := store.addPost(author.ID, "original text", nil)
	svc := newPostServiceForTest(store)

	_, err := svc.UpdatePost(context.Background(), post.ID, other.ID, &dto.UpdatePostRequest{
		Text: "hijacked",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotPostAuthor)

	assert.Equal(t, "original text", store.posts[post.ID].Text)
}

func TestUpdatePost_Author(t *testing.T) {
	store := newFakeStore()
	author := store.addUser("leo")
	post := store.addPost(author.ID, "original text", nil)
	svc := newPostServiceForTest(store)

	resp, err := svc.UpdatePost(context.Background(), post.ID, author.ID, &dto.UpdatePostRequest{
		Text: "edited text",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "edited text", resp.Text)
	assert.Equal(t, author.ID, resp.AuthorID)
	assert.Equal(t, "edited text", store.posts[post.ID].Text)
}

func TestAddComment(t *testing.T) {
	store := newFakeStore()
	author := store.addUser("leo")
	commenter := store.addUser("fyodor")
	post := store.addPost(author.ID, "a post", nil)
	svc := newPostServiceForTest(store)

	err := svc.AddComment(context.Background(), post.ID, commenter.ID, &dto.CreateCommentRequest{Text: "well said"})
	require.NoError(t, err)

	detail, err := svc.GetPostDetail(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "well said", detail.Comments[0].Text)
	assert.Equal(t, "fyodor", detail.Comments[0].AuthorUsername)
}

func TestAddComment_BlankTextDropped(t *testing.T) {
	store := newFakeStore()
	author := store.addUser("leo")
	post := store.addPost(author.ID, "a post", nil)
	svc := newPostServiceForTest(store)

	for _, text := range []string{"", "   ", "\n\t"} {
		err := svc.AddComment(context.Background(), post.ID, author.ID, &dto.CreateCommentRequest{Text: text})
		assert.ErrorIs(t, err, apperrors.ErrEmptyComment)
	}

	assert.Empty(t, store.comments)
}

func TestAddComment_UnknownPost(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("leo")
	svc := newPostServiceForTest(store)

	err := svc.AddComment(context.Background(), 999, user.ID, &dto.CreateCommentRequest{Text: "hello"})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestGetPostDetail_UnknownPost(t *testing.T) {
	store := newFakeStore()
	svc := newPostServiceForTest(store)

	_, err := svc.GetPostDetail(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestListPosts_NewestFirstAndPaginated(t *testing.T) {
	store := newFakeStore()
	author := store.addUser("leo")
	for i := 1; i <= 13; i++ {
		store.addPost(author.ID, fmt.Sprintf("post %d", i), nil)
	}
	svc := newPostServiceForTest(store)

	page1, err := svc.ListPosts(context.Background(), dto.PostFilterRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page1.Posts, 10)
	assert.Equal(t, "post 13", page1.Posts[0].Text)
	assert.Equal(t, int64(13), page1.Pagination.TotalItems)
	assert.Equal(t, 2, page1.Pagination.TotalPages)

	page2, err := svc.ListPosts(context.Background(), dto.PostFilterRequest{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page2.Posts, 3)
	assert.Equal(t, "post 1", page2.Posts[2].Text)
}

func TestListPosts_OutOfRangePageClampsToLast(t *testing.T) {
	store := newFakeStore()
	author := store.addUser("leo")
	for i := 1; i <= 13; i++ {
		store.addPost(author.ID, fmt.Sprintf("post %d", i), nil)
	}
	svc := newPostServiceForTest(store)

	resp, err := svc.ListPosts(context.Background(), dto.PostFilterRequest{Page: 99, PageSize: 10})
	require.NoError(t, err)

	// The last page, not an empty one
	require.Len(t, resp.Posts, 3)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
}

func TestListFeed_OnlyFollowedAuthors(t *testing.T) {
	store := newFakeStore()
	reader := store.addUser("reader")
	followed := store.addUser("followed")
	stranger := store.addUser("stranger")
	store.follows[[2]int64{reader.ID, followed.ID}] = true

	store.addPost(followed.ID, "from followed", nil)
	store.addPost(stranger.ID, "from stranger", nil)
	store.addPost(reader.ID, "own post", nil)

	svc := newPostServiceForTest(store)

	resp, err := svc.ListFeed(context.Background(), reader.ID, 1, 10)
	require.NoError(t, err)

	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "from followed", resp.Posts[0].Text)
}
