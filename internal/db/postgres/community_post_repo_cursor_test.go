package postgres

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wilo/internal/core/community"
)

func encodeCursor(parts ...string) string {
	payload := ""
	for i, p := range parts {
		if i > 0 {
			payload += "|"
		}
		payload += p
	}
	return base64.URLEncoding.EncodeToString([]byte(payload))
}

func strPtr(s string) *string { return &s }

func TestParseFeedCursorLatest(t *testing.T) {
	validTimestamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339Nano)

	tests := []struct {
		name       string
		cursor     *string
		wantFilter bool
	}{
		{
			name:       "nil cursor falls back to page one",
			cursor:     nil,
			wantFilter: false,
		},
		{
			name:       "empty cursor falls back to page one",
			cursor:     strPtr(""),
			wantFilter: false,
		},
		{
			name:       "valid cursor produces filter",
			cursor:     strPtr(encodeCursor(validTimestamp, "42")),
			wantFilter: true,
		},
		{
			name:       "invalid base64 falls back to page one",
			cursor:     strPtr("not-valid-base64!!!"),
			wantFilter: false,
		},
		{
			name:       "garbage payload falls back to page one",
			cursor:     strPtr(encodeCursor("yesterday", "42")),
			wantFilter: false,
		},
		{
			name:       "non-numeric id falls back to page one",
			cursor:     strPtr(encodeCursor(validTimestamp, "abc")),
			wantFilter: false,
		},
		{
			name:       "recommended-shaped cursor against latest falls back to page one",
			cursor:     strPtr(encodeCursor("7", validTimestamp, "42")),
			wantFilter: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, values := parseFeedCursor(tt.cursor, community.SortLatest, 1)
			if tt.wantFilter {
				assert.NotEmpty(t, filter)
				assert.Len(t, values, 2)
			} else {
				assert.Empty(t, filter)
				assert.Nil(t, values)
			}
		})
	}
}

func TestParseFeedCursorRecommended(t *testing.T) {
	validTimestamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339Nano)

	tests := []struct {
		name       string
		cursor     *string
		wantFilter bool
	}{
		{
			name:       "valid cursor produces filter",
			cursor:     strPtr(encodeCursor("7", validTimestamp, "42")),
			wantFilter: true,
		},
		{
			name:       "non-numeric like count falls back to page one",
			cursor:     strPtr(encodeCursor("many", validTimestamp, "42")),
			wantFilter: false,
		},
		{
			name:       "latest-shaped cursor against recommended falls back to page one",
			cursor:     strPtr(encodeCursor(validTimestamp, "42")),
			wantFilter: false,
		},
		{
			name:       "extra parts fall back to page one",
			cursor:     strPtr(encodeCursor("7", validTimestamp, "42", "junk")),
			wantFilter: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, values := parseFeedCursor(tt.cursor, community.SortRecommended, 3)
			if tt.wantFilter {
				assert.NotEmpty(t, filter)
				assert.Len(t, values, 3)
			} else {
				assert.Empty(t, filter)
				assert.Nil(t, values)
			}
		})
	}
}

func TestBuildFeedCursorRoundTrip(t *testing.T) {
	post := &community.Post{
		ID:        42,
		LikeCount: 7,
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC),
	}

	t.Run("latest", func(t *testing.T) {
		cursor := buildFeedCursor(post, community.SortLatest)

		decoded, err := base64.URLEncoding.DecodeString(cursor)
		require.NoError(t, err)
		assert.Equal(t,
			post.CreatedAt.Format(time.RFC3339Nano)+"|"+strconv.FormatInt(post.ID, 10),
			string(decoded))

		filter, values := parseFeedCursor(&cursor, community.SortLatest, 1)
		require.NotEmpty(t, filter)
		require.Len(t, values, 2)
		assert.Equal(t, post.CreatedAt, values[0])
		assert.Equal(t, post.ID, values[1])
	})

	t.Run("recommended", func(t *testing.T) {
		cursor := buildFeedCursor(post, community.SortRecommended)

		filter, values := parseFeedCursor(&cursor, community.SortRecommended, 1)
		require.NotEmpty(t, filter)
		require.Len(t, values, 3)
		assert.Equal(t, post.LikeCount, values[0])
		assert.Equal(t, post.CreatedAt, values[1])
		assert.Equal(t, post.ID, values[2])
	})
}
