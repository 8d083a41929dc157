package community

import "context"

// Service defines the engagement operations for community posts.
// Caller identity is resolved once at the request boundary and passed in
// explicitly; the service never reaches into request state itself.
type Service interface {
	// CreatePost creates a post with its ordered image list and zeroed counters.
	CreatePost(ctx context.Context, userID int64, req CreatePostRequest) (int64, error)

	// UpdatePost replaces a post's fields and its entire image list.
	// Fails with ErrPostNotFound / ErrForbidden (existence checked first).
	UpdatePost(ctx context.Context, userID, postID int64, req UpdatePostRequest) (int64, error)

	// DeletePost hard-deletes the post's comments, likes and images, then
	// soft-deletes the post row, all as one unit.
	DeletePost(ctx context.Context, userID, postID int64) error

	// ListPosts returns one feed page. Safe to call unauthenticated.
	ListPosts(ctx context.Context, q ListPostsQuery) (*PostListResponse, error)

	// GetPostDetail returns the full view including the comment tree.
	// Every call increments the view count; repeat fetches by the same
	// viewer count again.
	GetPostDetail(ctx context.Context, postID int64) (*PostDetailResponse, error)

	// CreateComment adds a root comment or a single-level reply and bumps
	// the post's comment count atomically with the insert.
	CreateComment(ctx context.Context, userID, postID int64, req CreateCommentRequest) (*CommentNode, error)

	// LikePost records a like if absent; repeated calls are no-ops.
	// Always returns (liked=true, current count).
	LikePost(ctx context.Context, userID, postID int64) (*LikeStateResponse, error)

	// UnlikePost removes a like if present; repeated calls are no-ops.
	// Always returns (liked=false, current count).
	UnlikePost(ctx context.Context, userID, postID int64) (*LikeStateResponse, error)
}

// PostRepository is the durable post store. Each mutating method runs as a
// single transaction so a concurrent reader never sees a post without its
// image rows or a half-applied cascade.
type PostRepository interface {
	// Create inserts the post and its ordered images, filling ID and CreatedAt.
	Create(ctx context.Context, post *Post, imageURLs []string) error

	// GetByID returns a live post or ErrPostNotFound (soft-deleted rows
	// are invisible here).
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Update rewrites category/title/content and replaces the image list.
	Update(ctx context.Context, post *Post, imageURLs []string) error

	// SoftDeleteCascade hard-deletes comments, likes and images for the
	// post, then stamps deleted_at on the post row. Idempotent: deleting
	// an already-deleted post reports ErrPostNotFound.
	SoftDeleteCascade(ctx context.Context, postID int64) error

	// List runs the keyset-paginated feed query and returns up to
	// q.Size posts plus the cursor for the next page (nil when the page
	// reached end-of-data).
	List(ctx context.Context, q ListPostsQuery) ([]*Post, *string, error)

	// GetImages returns the post's image URLs in sort order.
	GetImages(ctx context.Context, postID int64) ([]string, error)

	// IncrementViewCount bumps view_count by one.
	IncrementViewCount(ctx context.Context, postID int64) error
}

// CommentRepository is the append-only-per-post comment store.
type CommentRepository interface {
	// Create inserts the comment and increments the post's comment_count
	// in the same transaction, filling ID and CreatedAt.
	Create(ctx context.Context, comment *Comment) error

	// GetByID returns a comment or ErrCommentNotFound.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// ListByPost returns all of a post's comments with author summaries,
	// ordered by (created_at asc, id asc).
	ListByPost(ctx context.Context, postID int64) ([]CommentWithAuthor, error)
}

// LikeRepository is the (post, user) like set. The unique constraint on
// (post_id, user_id) is the authoritative race guard; two concurrent likes
// from the same user insert exactly one row and one increment.
type LikeRepository interface {
	// Like inserts the row if absent and increments like_count together,
	// returning the post's current like count either way.
	Like(ctx context.Context, postID, userID int64) (int64, error)

	// Unlike deletes the row if present and decrements like_count (never
	// below zero), returning the current like count either way.
	Unlike(ctx context.Context, postID, userID int64) (int64, error)
}

// AuthorDirectory resolves user ids to the author block embedded in
// detail views and comments.
type AuthorDirectory interface {
	GetAuthorSummary(ctx context.Context, userID int64) (AuthorSummary, error)
}
