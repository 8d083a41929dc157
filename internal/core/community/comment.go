package community

import "time"

// Comment is a flat comment row. ParentID, when set, must reference a root
// comment on the same post. The write path enforces this, so stored depth
// never exceeds two levels.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Content   string    `json:"content" db:"content"`
	ParentID  *int64    `json:"parentCommentId,omitempty" db:"parent_comment_id"`
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
}

// CreateCommentRequest is the input for creating a comment or reply.
type CreateCommentRequest struct {
	Content         string `json:"content"`
	ParentCommentID *int64 `json:"parentCommentId,omitempty"`
}

// CommentNode is a comment with its author and direct replies, as returned
// in the post detail view. Replies carry no further nesting.
type CommentNode struct {
	CreatedAt time.Time      `json:"createdAt"`
	Content   string         `json:"content"`
	Author    AuthorSummary  `json:"author"`
	Replies   []*CommentNode `json:"replies"`
	ID        int64          `json:"id"`
	DaysAgo   int64          `json:"daysAgo"`
}

// CommentWithAuthor pairs a comment row with its author summary, as the
// repository returns them for tree building.
type CommentWithAuthor struct {
	Comment Comment
	Author  AuthorSummary
}
