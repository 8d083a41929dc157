package community

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// Field length limits enforced before anything reaches the stores.
const (
	maxTitleLength    = 150
	maxContentLength  = 10000
	maxCommentLength  = 1000
	maxImageURLLength = 512
)

type engagementService struct {
	posts    PostRepository
	comments CommentRepository
	likes    LikeRepository
	authors  AuthorDirectory
	now      func() time.Time
}

// NewService creates the engagement service over the three stores.
func NewService(posts PostRepository, comments CommentRepository, likes LikeRepository, authors AuthorDirectory) Service {
	return &engagementService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		authors:  authors,
		now:      time.Now,
	}
}

func (s *engagementService) CreatePost(ctx context.Context, userID int64, req CreatePostRequest) (int64, error) {
	if err := validatePostFields(req.Category, req.Title, req.Content, req.ImageURLs); err != nil {
		return 0, err
	}

	post := &Post{
		UserID:   userID,
		Category: req.Category,
		Title:    req.Title,
		Content:  req.Content,
	}

	if err := s.posts.Create(ctx, post, req.ImageURLs); err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}

	return post.ID, nil
}

func (s *engagementService) UpdatePost(ctx context.Context, userID, postID int64, req UpdatePostRequest) (int64, error) {
	if err := validatePostFields(req.Category, req.Title, req.Content, req.ImageURLs); err != nil {
		return 0, err
	}

	// Existence is checked before ownership: a non-owner probing a deleted
	// post learns nothing beyond "not found".
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return 0, err
	}

	if post.UserID != userID {
		return 0, ErrForbidden
	}

	post.Category = req.Category
	post.Title = req.Title
	post.Content = req.Content

	if err := s.posts.Update(ctx, post, req.ImageURLs); err != nil {
		return 0, fmt.Errorf("failed to update post: %w", err)
	}

	return post.ID, nil
}

func (s *engagementService) DeletePost(ctx context.Context, userID, postID int64) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrForbidden
	}

	// Children have no existence independent of the post, so they go for
	// good; the post row itself keeps a tombstone.
	if err := s.posts.SoftDeleteCascade(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

func (s *engagementService) ListPosts(ctx context.Context, q ListPostsQuery) (*PostListResponse, error) {
	q.Size = clampPageSize(q.Size)

	posts, nextCursor, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	now := s.now()
	items := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		items = append(items, p.Summarize(now))
	}

	return &PostListResponse{
		Items:      items,
		Size:       q.Size,
		HasNext:    nextCursor != nil,
		NextCursor: nextCursor,
	}, nil
}

func (s *engagementService) GetPostDetail(ctx context.Context, postID int64) (*PostDetailResponse, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Every fetch counts as a view, including repeats by the same caller.
	if err := s.posts.IncrementViewCount(ctx, postID); err != nil {
		return nil, fmt.Errorf("failed to increment view count: %w", err)
	}
	post.ViewCount++

	author, err := s.authors.GetAuthorSummary(ctx, post.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post author: %w", err)
	}

	imageURLs, err := s.posts.GetImages(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post images: %w", err)
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	now := s.now()
	return &PostDetailResponse{
		ID:           post.ID,
		Category:     post.Category,
		Title:        post.Title,
		Content:      post.Content,
		CreatedAt:    post.CreatedAt,
		DaysAgo:      daysAgo(post.CreatedAt, now),
		ViewCount:    post.ViewCount,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		Author:       author,
		ImageURLs:    imageURLs,
		Comments:     BuildCommentTree(comments, now),
	}, nil
}

func (s *engagementService) CreateComment(ctx context.Context, userID, postID int64, req CreateCommentRequest) (*CommentNode, error) {
	if req.Content == "" {
		return nil, NewValidationError("content", "content is required")
	}
	if utf8.RuneCountInString(req.Content) > maxCommentLength {
		return nil, NewValidationError("content", fmt.Sprintf("content exceeds %d characters", maxCommentLength))
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if req.ParentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrInvalidParent
		}
		if parent.ParentID != nil {
			return nil, ErrReplyDepthExceeded
		}
	}

	comment := &Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: req.ParentCommentID,
		Content:  req.Content,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	author, err := s.authors.GetAuthorSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment author: %w", err)
	}

	now := s.now()
	return &CommentNode{
		ID:        comment.ID,
		Author:    author,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		DaysAgo:   daysAgo(comment.CreatedAt, now),
		Replies:   []*CommentNode{},
	}, nil
}

func (s *engagementService) LikePost(ctx context.Context, userID, postID int64) (*LikeStateResponse, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	likeCount, err := s.likes.Like(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	return &LikeStateResponse{Liked: true, LikeCount: likeCount}, nil
}

func (s *engagementService) UnlikePost(ctx context.Context, userID, postID int64) (*LikeStateResponse, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	likeCount, err := s.likes.Unlike(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to unlike post: %w", err)
	}

	return &LikeStateResponse{Liked: false, LikeCount: likeCount}, nil
}

func clampPageSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func validatePostFields(category Category, title, content string, imageURLs []string) error {
	if _, ok := ParseCategory(string(category)); !ok {
		return NewValidationError("category", "unknown category")
	}
	if title == "" {
		return NewValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return NewValidationError("title", fmt.Sprintf("title exceeds %d characters", maxTitleLength))
	}
	if content == "" {
		return NewValidationError("content", "content is required")
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return NewValidationError("content", fmt.Sprintf("content exceeds %d characters", maxContentLength))
	}
	for _, url := range imageURLs {
		if url == "" || len(url) > maxImageURLLength {
			return NewValidationError("imageUrls", fmt.Sprintf("image URLs must be 1-%d characters", maxImageURLLength))
		}
	}
	return nil
}
