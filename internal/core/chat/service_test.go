package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChatRepository struct {
	mock.Mock
}

func (m *mockChatRepository) CreateSession(ctx context.Context, session *Session) error {
	args := m.Called(ctx, session)
	if args.Error(0) == nil {
		session.ID = 301
	}
	return args.Error(0)
}

func (m *mockChatRepository) GetSessionByID(ctx context.Context, id int64) (*Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *mockChatRepository) ListSessions(ctx context.Context, owner Owner, status SessionStatus, cursor *int64, limit int) ([]*Session, error) {
	args := m.Called(ctx, owner, status, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Session), args.Error(1)
}

func (m *mockChatRepository) ListMessages(ctx context.Context, sessionID int64, cursor *int64, limit int) ([]*Message, error) {
	args := m.Called(ctx, sessionID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Message), args.Error(1)
}

func (m *mockChatRepository) MarkSessionDeleted(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockChatRepository) GetBotTypeByID(ctx context.Context, id int64) (*BotType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BotType), args.Error(1)
}

func (m *mockChatRepository) ListActiveBotTypes(ctx context.Context) ([]*BotType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*BotType), args.Error(1)
}

func userOwner(id int64) Owner {
	return Owner{UserID: &id}
}

func TestCreateSession_ForGuest(t *testing.T) {
	repo := new(mockChatRepository)
	repo.On("GetBotTypeByID", mock.Anything, int64(1)).Return(&BotType{ID: 1, Code: "LISTENER", Active: true}, nil)
	repo.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *Session) bool {
		return s.UserID == nil && s.GuestID != nil && *s.GuestID == "guest-abc" &&
			s.Status == StatusActive && s.Title == "New conversation"
	})).Return(nil)

	service := NewService(repo)

	session, err := service.CreateSession(context.Background(), Owner{GuestID: "guest-abc"}, CreateSessionRequest{ChatbotTypeID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(301), session.ID)
	repo.AssertExpectations(t)
}

func TestCreateSession_RequiresOwner(t *testing.T) {
	repo := new(mockChatRepository)
	service := NewService(repo)

	_, err := service.CreateSession(context.Background(), Owner{}, CreateSessionRequest{ChatbotTypeID: 1})
	assert.ErrorIs(t, err, ErrOwnerRequired)
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCreateSession_UnknownBotType(t *testing.T) {
	repo := new(mockChatRepository)
	repo.On("GetBotTypeByID", mock.Anything, int64(9)).Return(nil, ErrBotTypeNotFound)
	service := NewService(repo)

	_, err := service.CreateSession(context.Background(), userOwner(1), CreateSessionRequest{ChatbotTypeID: 9})
	assert.ErrorIs(t, err, ErrBotTypeNotFound)
}

func TestListSessions_RejectsOutOfRangeParams(t *testing.T) {
	badSize := 51
	zeroSize := 0
	badCursor := int64(0)
	deleted := StatusDeleted

	tests := []struct {
		name   string
		status *SessionStatus
		cursor *int64
		size   *int
	}{
		{"size above max", nil, nil, &badSize},
		{"size zero", nil, nil, &zeroSize},
		{"cursor zero", nil, &badCursor, nil},
		{"deleted status filter", &deleted, nil, nil},
	}

	repo := new(mockChatRepository)
	service := NewService(repo)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ListSessions(context.Background(), userOwner(1), tt.status, tt.cursor, tt.size)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
	repo.AssertNotCalled(t, "ListSessions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListSessions_PagesWithLimitPlusOne(t *testing.T) {
	size := 2
	repo := new(mockChatRepository)
	// Three rows back for a page of two means another page exists
	repo.On("ListSessions", mock.Anything, mock.Anything, StatusActive, (*int64)(nil), 3).Return([]*Session{
		{ID: 30}, {ID: 20}, {ID: 10},
	}, nil)

	service := NewService(repo)

	page, err := service.ListSessions(context.Background(), userOwner(1), nil, nil, &size)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, int64(20), *page.NextCursor)
}

func TestListSessions_LastPage(t *testing.T) {
	repo := new(mockChatRepository)
	repo.On("ListSessions", mock.Anything, mock.Anything, StatusActive, (*int64)(nil), defaultSessionPageSize+1).Return([]*Session{
		{ID: 30}, {ID: 20},
	}, nil)

	service := NewService(repo)

	page, err := service.ListSessions(context.Background(), userOwner(1), nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasNext)
	assert.Nil(t, page.NextCursor)
}

func TestGetSessionDetail_ChecksOwnership(t *testing.T) {
	ownerID := int64(1)
	repo := new(mockChatRepository)
	repo.On("GetSessionByID", mock.Anything, int64(5)).Return(&Session{ID: 5, UserID: &ownerID}, nil)

	service := NewService(repo)

	_, err := service.GetSessionDetail(context.Background(), 5, userOwner(2), nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSessionDetail_GuestCannotReadUserSession(t *testing.T) {
	ownerID := int64(1)
	repo := new(mockChatRepository)
	repo.On("GetSessionByID", mock.Anything, int64(5)).Return(&Session{ID: 5, UserID: &ownerID}, nil)

	service := NewService(repo)

	_, err := service.GetSessionDetail(context.Background(), 5, Owner{GuestID: "guest-abc"}, nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetSessionDetail_PagesMessages(t *testing.T) {
	guestID := "guest-abc"
	size := 2
	repo := new(mockChatRepository)
	repo.On("GetSessionByID", mock.Anything, int64(5)).Return(&Session{ID: 5, GuestID: &guestID}, nil)
	repo.On("ListMessages", mock.Anything, int64(5), (*int64)(nil), 3).Return([]*Message{
		{ID: 33}, {ID: 22}, {ID: 11},
	}, nil)

	service := NewService(repo)

	detail, err := service.GetSessionDetail(context.Background(), 5, Owner{GuestID: guestID}, nil, &size)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 2)
	assert.True(t, detail.HasNext)
	require.NotNil(t, detail.NextCursor)
	assert.Equal(t, int64(22), *detail.NextCursor)
}

func TestDeleteSession_OwnerOnly(t *testing.T) {
	ownerID := int64(1)
	repo := new(mockChatRepository)
	repo.On("GetSessionByID", mock.Anything, int64(5)).Return(&Session{ID: 5, UserID: &ownerID}, nil)
	repo.On("MarkSessionDeleted", mock.Anything, int64(5)).Return(nil)

	service := NewService(repo)

	require.NoError(t, service.DeleteSession(context.Background(), 5, userOwner(1)))

	err := service.DeleteSession(context.Background(), 5, userOwner(2))
	assert.ErrorIs(t, err, ErrForbidden)

	repo.AssertNumberOfCalls(t, "MarkSessionDeleted", 1)
}

func TestDeleteSession_NotFound(t *testing.T) {
	repo := new(mockChatRepository)
	repo.On("GetSessionByID", mock.Anything, int64(9)).Return(nil, ErrSessionNotFound)

	service := NewService(repo)

	err := service.DeleteSession(context.Background(), 9, userOwner(1))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
