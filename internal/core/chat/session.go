package chat

import "time"

// SessionStatus is the lifecycle state of a chat session. Deleted sessions
// stay as rows but are invisible to every read path.
type SessionStatus string

const (
	StatusActive  SessionStatus = "ACTIVE"
	StatusEnded   SessionStatus = "ENDED"
	StatusDeleted SessionStatus = "DELETED"
)

// Owner identifies who a session belongs to: an authenticated user id, or a
// client-supplied guest id for anonymous sessions. Exactly one is set.
type Owner struct {
	UserID  *int64
	GuestID string
}

// IsZero reports whether neither identity is present.
func (o Owner) IsZero() bool {
	return o.UserID == nil && o.GuestID == ""
}

// Owns reports whether the session belongs to this owner.
func (o Owner) Owns(s *Session) bool {
	if o.UserID != nil {
		return s.UserID != nil && *s.UserID == *o.UserID
	}
	return o.GuestID != "" && s.GuestID != nil && *s.GuestID == o.GuestID
}

// BotType is a row of the seeded chatbot catalog.
type BotType struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ID          int64   `json:"id"`
	Active      bool    `json:"active"`
}

// Session is one conversation between an owner and a bot type.
type Session struct {
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	LastMessageAt *time.Time    `json:"lastMessageAt,omitempty" db:"last_message_at"`
	Title         string        `json:"title" db:"title"`
	Status        SessionStatus `json:"status" db:"status"`
	UserID        *int64        `json:"userId,omitempty" db:"user_id"`
	GuestID       *string       `json:"guestId,omitempty" db:"guest_id"`
	ID            int64         `json:"id" db:"id"`
	BotTypeID     int64         `json:"chatbotTypeId" db:"chatbot_type_id"`
}

// Message is one chat line. Bot messages may carry a safety status and a
// JSON-encoded list of suggested replies.
type Message struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	SenderType   string    `json:"senderType" db:"sender_type"`
	MessageType  string    `json:"messageType" db:"message_type"`
	Content      string    `json:"content" db:"content"`
	SafetyStatus *string   `json:"safetyStatus,omitempty" db:"safety_status"`
	ChoicesJSON  *string   `json:"choices,omitempty" db:"choices_json"`
	ID           int64     `json:"id" db:"id"`
	SessionID    int64     `json:"sessionId" db:"session_id"`
}

// CreateSessionRequest names the bot type for a new session.
type CreateSessionRequest struct {
	ChatbotTypeID int64 `json:"chatbotTypeId"`
}

// SessionListResponse is one page of sessions, newest first by id.
type SessionListResponse struct {
	Items      []*Session `json:"items"`
	NextCursor *int64     `json:"nextCursor,omitempty"`
	HasNext    bool       `json:"hasNext"`
}

// SessionDetailResponse is a session plus one page of its messages, paged
// by id descending.
type SessionDetailResponse struct {
	Session    *Session   `json:"session"`
	Messages   []*Message `json:"messages"`
	NextCursor *int64     `json:"nextCursor,omitempty"`
	HasNext    bool       `json:"hasNext"`
}
