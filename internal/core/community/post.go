package community

import (
	"time"
)

// Category is the closed set of community boards a post can belong to.
type Category string

const (
	CategoryTreeShade   Category = "treeShade"
	CategorySunnyPlace  Category = "sunnyPlace"
	CategoryHelpBranch  Category = "helpBranch"
	CategorySupportRoot Category = "supportRoot"
)

// ParseCategory validates a category string from the API boundary.
// Returns false for anything outside the closed set.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryTreeShade, CategorySunnyPlace, CategoryHelpBranch, CategorySupportRoot:
		return Category(s), true
	}
	return "", false
}

// SortType selects the feed ordering and the cursor shape that goes with it.
type SortType string

const (
	// SortLatest orders by (created_at desc, id desc).
	SortLatest SortType = "latest"
	// SortRecommended orders by (like_count desc, created_at desc, id desc).
	SortRecommended SortType = "recommended"
)

// ParseSortType validates a sort string. Empty defaults to recommended,
// matching the feed's landing behavior.
func ParseSortType(s string) (SortType, bool) {
	switch SortType(s) {
	case SortLatest, SortRecommended:
		return SortType(s), true
	case "":
		return SortRecommended, true
	}
	return "", false
}

// Page size bounds for the post feed. Out-of-range requests are clamped,
// absent requests default.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// contentPreviewLength is how much of the body is shown in list items.
const contentPreviewLength = 120

// Post is a community post row. Counters are mutated only by the engagement
// service; like_count == active likes and comment_count == active comments
// after every completed operation.
type Post struct {
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
	Category     Category   `json:"category" db:"category"`
	Title        string     `json:"title" db:"title"`
	Content      string     `json:"content" db:"content"`
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"userId" db:"user_id"`
	ViewCount    int64      `json:"viewCount" db:"view_count"`
	LikeCount    int64      `json:"likeCount" db:"like_count"`
	CommentCount int64      `json:"commentCount" db:"comment_count"`
}

// CreatePostRequest is the input for creating a post.
type CreatePostRequest struct {
	Category  Category `json:"category"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"imageUrls,omitempty"`
}

// UpdatePostRequest carries the full replacement state for an edit.
// The image list entirely supersedes the old one; its order becomes the
// new sort order.
type UpdatePostRequest struct {
	Category  Category `json:"category"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"imageUrls,omitempty"`
}

// ListPostsQuery is the validated feed query handed to the repository.
// Size is already clamped by the service.
type ListPostsQuery struct {
	Category *Category
	Keyword  string
	Cursor   *string
	Sort     SortType
	Size     int
}

// PostSummary is a feed list item.
type PostSummary struct {
	CreatedAt    time.Time `json:"createdAt"`
	Category     Category  `json:"category"`
	Title        string    `json:"title"`
	ContentPreview string  `json:"contentPreview"`
	ID           int64     `json:"id"`
	DaysAgo      int64     `json:"daysAgo"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
}

// PostListResponse is one page of the feed.
type PostListResponse struct {
	Items      []PostSummary `json:"items"`
	NextCursor *string       `json:"nextCursor,omitempty"`
	Size       int           `json:"size"`
	HasNext    bool          `json:"hasNext"`
}

// AuthorSummary is the author block embedded in detail views and comments.
type AuthorSummary struct {
	Nickname        string  `json:"nickname"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
	ID              int64   `json:"id"`
}

// PostDetailResponse is the full post view including the comment tree.
type PostDetailResponse struct {
	CreatedAt    time.Time     `json:"createdAt"`
	Category     Category      `json:"category"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Author       AuthorSummary `json:"author"`
	ImageURLs    []string      `json:"imageUrls"`
	Comments     []*CommentNode `json:"comments"`
	ID           int64         `json:"id"`
	DaysAgo      int64         `json:"daysAgo"`
	ViewCount    int64         `json:"viewCount"`
	LikeCount    int64         `json:"likeCount"`
	CommentCount int64         `json:"commentCount"`
}

// LikeStateResponse reports the caller's like state after a toggle.
// Both like and unlike always return the current state, so repeated calls
// are safe.
type LikeStateResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// Summarize builds the feed list item for a post.
func (p *Post) Summarize(now time.Time) PostSummary {
	return PostSummary{
		ID:             p.ID,
		Category:       p.Category,
		Title:          p.Title,
		ContentPreview: makePreview(p.Content),
		CreatedAt:      p.CreatedAt,
		DaysAgo:        daysAgo(p.CreatedAt, now),
		ViewCount:      p.ViewCount,
		LikeCount:      p.LikeCount,
		CommentCount:   p.CommentCount,
	}
}

func makePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= contentPreviewLength {
		return content
	}
	return string(runes[:contentPreviewLength]) + "..."
}

func daysAgo(createdAt, now time.Time) int64 {
	y1, m1, d1 := createdAt.Date()
	y2, m2, d2 := now.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int64(end.Sub(start).Hours() / 24)
}
