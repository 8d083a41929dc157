package community

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories for testing
type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *Post, imageURLs []string) error {
	args := m.Called(ctx, post, imageURLs)
	if args.Error(0) == nil {
		post.ID = 101
		post.CreatedAt = time.Now().UTC()
	}
	return args.Error(0)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockPostRepository) Update(ctx context.Context, post *Post, imageURLs []string) error {
	args := m.Called(ctx, post, imageURLs)
	return args.Error(0)
}

func (m *mockPostRepository) SoftDeleteCascade(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *mockPostRepository) List(ctx context.Context, q ListPostsQuery) ([]*Post, *string, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var cursor *string
	if args.Get(1) != nil {
		cursor = args.Get(1).(*string)
	}
	return args.Get(0).([]*Post), cursor, args.Error(2)
}

func (m *mockPostRepository) GetImages(ctx context.Context, postID int64) ([]string, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockPostRepository) IncrementViewCount(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *Comment) error {
	args := m.Called(ctx, comment)
	if args.Error(0) == nil {
		comment.ID = 201
		comment.CreatedAt = time.Now().UTC()
	}
	return args.Error(0)
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int64) (*Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]CommentWithAuthor, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CommentWithAuthor), args.Error(1)
}

type mockLikeRepository struct {
	mock.Mock
}

func (m *mockLikeRepository) Like(ctx context.Context, postID, userID int64) (int64, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepository) Unlike(ctx context.Context, postID, userID int64) (int64, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuthorDirectory struct {
	mock.Mock
}

func (m *mockAuthorDirectory) GetAuthorSummary(ctx context.Context, userID int64) (AuthorSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(AuthorSummary), args.Error(1)
}

func newTestService(posts *mockPostRepository, comments *mockCommentRepository, likes *mockLikeRepository, authors *mockAuthorDirectory) Service {
	return &engagementService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		authors:  authors,
		now:      func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func livePost(id, userID int64) *Post {
	return &Post{
		ID:        id,
		UserID:    userID,
		Category:  CategoryTreeShade,
		Title:     "title",
		Content:   "content",
		CreatedAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreatePost_Validation(t *testing.T) {
	posts := new(mockPostRepository)
	service := newTestService(posts, new(mockCommentRepository), new(mockLikeRepository), new(mockAuthorDirectory))

	tests := []struct {
		name string
		req  CreatePostRequest
	}{
		{"unknown category", CreatePostRequest{Category: "nonsense", Title: "t", Content: "c"}},
		{"empty title", CreatePostRequest{Category: CategoryTreeShade, Title: "", Content: "c"}},
		{"title too long", CreatePostRequest{Category: CategoryTreeShade, Title: strings.Repeat("a", 151), Content: "c"}},
		{"empty content", CreatePostRequest{Category: CategoryTreeShade, Title: "t", Content: ""}},
		{"content too long", CreatePostRequest{Category: CategoryTreeShade, Title: "t", Content: strings.Repeat("a", 10001)}},
		{"empty image url", CreatePostRequest{Category: CategoryTreeShade, Title: "t", Content: "c", ImageURLs: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePost(context.Background(), 1, tt.req)
			assert.True(t, IsValidationError(err), "expected validation error, got %v", err)
		})
	}

	// Nothing should reach the repository
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_TitleLimitCountsRunes(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	service := newTestService(posts, new(mockCommentRepository), new(mockLikeRepository), new(mockAuthorDirectory))

	// 150 multibyte characters: over 150 bytes but within the limit
	req := CreatePostRequest{
		Category: CategorySunnyPlace,
		Title:    strings.Repeat("나", 150),
		Content:  "content",
	}

	id, err := service.CreatePost(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, int64(101), id)
}

func TestUpdatePost_NotFoundBeforeForbidden(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(9)).Return(nil, ErrPostNotFound)
	service := newTestService(posts, new(mockCommentRepository), new(mockLikeRepository), new(mockAuthorDirectory))

	// A non-owner hitting a missing post sees not-found, never forbidden
	_, err := service.UpdatePost(context.Background(), 2, 9, UpdatePostRequest{
		Category: CategoryTreeShade, Title: "t", Content: "c",
	})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdatePost_ForbiddenForNonOwner(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(5)).Return(livePost(5, 1), nil)
	service := newTestService(posts, new(mockCommentRepository), new(mockLikeRepository), new(mockAuthorDirectory))

	_, err := service.UpdatePost(context.Background(), 2, 5, UpdatePostRequest{
		Category: CategoryTreeShade, Title: "t", Content: "c",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePost_OwnerCascades(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(5)).Return(livePost(5, 1), nil)
	posts.On("SoftDeleteCascade", mock.Anything, int64(5)).Return(nil)
	service := newTestService(posts, new(mockCommentRepository), new(mockLikeRepository), new(mockAuthorDirectory))

	err := service.DeletePost(context.Background(), 1, 5)
	require.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestListPosts_ClampsSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"zero uses default", 0, DefaultPageSize},
		{"negative uses default", -3, DefaultPageSize},
		{"over max clamps", 500, MaxPageSize},
		{"in range passes through", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(mockPostRepository)
			posts.On("List", mock.Anything, mock.MatchedBy(func(q ListPostsQuery) bool {
				return q.Size == tt.expected
			})).Return([]*Post{}, nil, nil)
			service := newTestService(posts, new(mockCommentRepository), new(mockLikeRepository), new(mockAuthorDirectory))

			resp, err := service.ListPosts(context.Background(), ListPostsQuery{Sort: SortLatest, Size: tt.size})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.Size)
			assert.False(t, resp.HasNext)
			posts.AssertExpectations(t)
		})
	}
}

func TestListPosts_HasNextFollowsCursor(t *testing.T) {
	cursor := "opaque"
	posts := new(mockPostRepository)
	posts.On("List", mock.Anything, mock.Anything).Return([]*Post{livePost(5, 1)}, &cursor, nil)
	service := newTestService(posts, new(mockCommentRepository), new(mockLikeRepository), new(mockAuthorDirectory))

	resp, err := service.ListPosts(context.Background(), ListPostsQuery{Sort: SortRecommended})
	require.NoError(t, err)
	assert.True(t, resp.HasNext)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, cursor, *resp.NextCursor)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(5), resp.Items[0].ID)
	assert.Equal(t, int64(5), resp.Items[0].DaysAgo)
}

func TestGetPostDetail_CountsEveryView(t *testing.T) {
	post := livePost(5, 1)
	post.ViewCount = 41

	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(5)).Return(post, nil)
	posts.On("IncrementViewCount", mock.Anything, int64(5)).Return(nil)
	posts.On("GetImages", mock.Anything, int64(5)).Return([]string{"http://img/1.png"}, nil)

	comments := new(mockCommentRepository)
	comments.On("ListByPost", mock.Anything, int64(5)).Return([]CommentWithAuthor{}, nil)

	authors := new(mockAuthorDirectory)
	authors.On("GetAuthorSummary", mock.Anything, int64(1)).Return(AuthorSummary{ID: 1, Nickname: "sun"}, nil)

	service := newTestService(posts, comments, new(mockLikeRepository), authors)

	detail, err := service.GetPostDetail(context.Background(), 5)
	require.NoError(t, err)
	// The response reflects the view it just recorded
	assert.Equal(t, int64(42), detail.ViewCount)
	assert.Equal(t, "sun", detail.Author.Nickname)
	assert.Equal(t, []string{"http://img/1.png"}, detail.ImageURLs)
	posts.AssertExpectations(t)
}

func TestGetPostDetail_NotFound(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(9)).Return(nil, ErrPostNotFound)
	service := newTestService(posts, new(mockCommentRepository), new(mockLikeRepository), new(mockAuthorDirectory))

	_, err := service.GetPostDetail(context.Background(), 9)
	assert.ErrorIs(t, err, ErrPostNotFound)
	posts.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
}

func TestCreateComment_RejectsCrossPostParent(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(5)).Return(livePost(5, 1), nil)

	comments := new(mockCommentRepository)
	parentID := int64(7)
	comments.On("GetByID", mock.Anything, parentID).Return(&Comment{ID: 7, PostID: 99}, nil)

	service := newTestService(posts, comments, new(mockLikeRepository), new(mockAuthorDirectory))

	_, err := service.CreateComment(context.Background(), 2, 5, CreateCommentRequest{
		Content:         "hello",
		ParentCommentID: &parentID,
	})
	assert.ErrorIs(t, err, ErrInvalidParent)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateComment_RejectsReplyToReply(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(5)).Return(livePost(5, 1), nil)

	comments := new(mockCommentRepository)
	rootID := int64(6)
	parentID := int64(7)
	comments.On("GetByID", mock.Anything, parentID).Return(&Comment{ID: 7, PostID: 5, ParentID: &rootID}, nil)

	service := newTestService(posts, comments, new(mockLikeRepository), new(mockAuthorDirectory))

	_, err := service.CreateComment(context.Background(), 2, 5, CreateCommentRequest{
		Content:         "hello",
		ParentCommentID: &parentID,
	})
	assert.ErrorIs(t, err, ErrReplyDepthExceeded)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateComment_ReplyToRoot(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(5)).Return(livePost(5, 1), nil)

	comments := new(mockCommentRepository)
	parentID := int64(7)
	comments.On("GetByID", mock.Anything, parentID).Return(&Comment{ID: 7, PostID: 5}, nil)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
		return c.PostID == 5 && c.UserID == 2 && c.ParentID != nil && *c.ParentID == 7
	})).Return(nil)

	authors := new(mockAuthorDirectory)
	authors.On("GetAuthorSummary", mock.Anything, int64(2)).Return(AuthorSummary{ID: 2, Nickname: "leaf"}, nil)

	service := newTestService(posts, comments, new(mockLikeRepository), authors)

	node, err := service.CreateComment(context.Background(), 2, 5, CreateCommentRequest{
		Content:         "hello",
		ParentCommentID: &parentID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(201), node.ID)
	assert.Equal(t, "leaf", node.Author.Nickname)
	assert.Empty(t, node.Replies)
	comments.AssertExpectations(t)
}

func TestLikePost_ReportsStateNotChange(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(5)).Return(livePost(5, 1), nil)

	likes := new(mockLikeRepository)
	// The repository reports the same count whether or not the row was new
	likes.On("Like", mock.Anything, int64(5), int64(2)).Return(int64(12), nil)

	service := newTestService(posts, new(mockCommentRepository), likes, new(mockAuthorDirectory))

	// Repeated likes are idempotent at the API level
	for i := 0; i < 2; i++ {
		state, err := service.LikePost(context.Background(), 2, 5)
		require.NoError(t, err)
		assert.True(t, state.Liked)
		assert.Equal(t, int64(12), state.LikeCount)
	}
	likes.AssertNumberOfCalls(t, "Like", 2)
}

func TestUnlikePost_OnMissingPost(t *testing.T) {
	posts := new(mockPostRepository)
	posts.On("GetByID", mock.Anything, int64(9)).Return(nil, ErrPostNotFound)
	likes := new(mockLikeRepository)

	service := newTestService(posts, new(mockCommentRepository), likes, new(mockAuthorDirectory))

	_, err := service.UnlikePost(context.Background(), 2, 9)
	assert.ErrorIs(t, err, ErrPostNotFound)
	likes.AssertNotCalled(t, "Unlike", mock.Anything, mock.Anything, mock.Anything)
}
