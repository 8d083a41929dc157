package community

import "time"

// Like is one (post, user) like row. The database enforces uniqueness per
// (post_id, user_id).
type Like struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
}
