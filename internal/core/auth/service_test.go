package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wilo/internal/core/users"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	args := m.Called(ctx, nickname)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// memoryTokenStore is an in-process RefreshTokenStore for tests.
type memoryTokenStore struct {
	tokens map[int64]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[int64]string)}
}

func (s *memoryTokenStore) Save(ctx context.Context, userID int64, token string) error {
	s.tokens[userID] = token
	return nil
}

func (s *memoryTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	return s.tokens[userID], nil
}

func (s *memoryTokenStore) Delete(ctx context.Context, userID int64) error {
	delete(s.tokens, userID)
	return nil
}

func newTestAuthService(repo users.Repository, store RefreshTokenStore) Service {
	tokens := NewTokenProvider([]byte("test-secret"), 30*time.Minute, time.Hour)
	return NewService(repo, tokens, store)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestSignUp_IssuesTokens(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("ExistsByNickname", mock.Anything, "sprout").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *users.User) bool {
		// Stored password must be a hash, never the plaintext
		return u.Email == "new@example.com" && u.Password != "password123"
	})).Return(nil)

	store := newMemoryTokenStore()
	service := newTestAuthService(repo, store)

	result, err := service.SignUp(context.Background(), SignUpRequest{
		Email:    "new@example.com",
		Password: "password123",
		Nickname: "sprout",
	})
	require.NoError(t, err)
	assert.Equal(t, "sprout", result.User.Nickname)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// The issued refresh token is the stored one
	assert.Equal(t, result.Tokens.RefreshToken, store.tokens[1])
	repo.AssertExpectations(t)
}

func TestSignUp_Validation(t *testing.T) {
	repo := new(mockUserRepository)
	service := newTestAuthService(repo, newMemoryTokenStore())

	tests := []struct {
		name string
		req  SignUpRequest
	}{
		{"bad email", SignUpRequest{Email: "not-an-email", Password: "password123", Nickname: "a"}},
		{"short password", SignUpRequest{Email: "a@b.com", Password: "short", Nickname: "a"}},
		{"empty nickname", SignUpRequest{Email: "a@b.com", Password: "password123", Nickname: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SignUp(context.Background(), tt.req)
			assert.True(t, users.IsValidationError(err), "expected validation error, got %v", err)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUp_EmailTaken(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "dup@example.com").Return(true, nil)
	service := newTestAuthService(repo, newMemoryTokenStore())

	_, err := service.SignUp(context.Background(), SignUpRequest{
		Email:    "dup@example.com",
		Password: "password123",
		Nickname: "sprout",
	})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestLogin_FailureModesLookAlike(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, users.ErrUserNotFound)
	repo.On("GetByEmail", mock.Anything, "real@example.com").Return(&users.User{
		ID:       1,
		Email:    "real@example.com",
		Password: hashed(t, "correct-password"),
		Nickname: "sprout",
	}, nil)

	service := newTestAuthService(repo, newMemoryTokenStore())

	_, unknownErr := service.Login(context.Background(), LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})
	_, wrongErr := service.Login(context.Background(), LoginRequest{
		Email: "real@example.com", Password: "wrong-password",
	})

	// Unknown email and wrong password are indistinguishable
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByEmail", mock.Anything, "real@example.com").Return(&users.User{
		ID:       7,
		Email:    "real@example.com",
		Password: hashed(t, "correct-password"),
		Nickname: "sprout",
	}, nil)

	store := newMemoryTokenStore()
	service := newTestAuthService(repo, store)

	result, err := service.Login(context.Background(), LoginRequest{
		Email: "real@example.com", Password: "correct-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.Equal(t, result.Tokens.RefreshToken, store.tokens[7])
}

func TestRefresh_RotatesStoredToken(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByEmail", mock.Anything, "real@example.com").Return(&users.User{
		ID:       7,
		Email:    "real@example.com",
		Password: hashed(t, "correct-password"),
		Nickname: "sprout",
	}, nil)

	store := newMemoryTokenStore()
	service := newTestAuthService(repo, store)

	login, err := service.Login(context.Background(), LoginRequest{
		Email: "real@example.com", Password: "correct-password",
	})
	require.NoError(t, err)

	pair, err := service.Refresh(context.Background(), login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, pair.RefreshToken, store.tokens[7])
}

func TestRefresh_RejectsRevokedToken(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByEmail", mock.Anything, "real@example.com").Return(&users.User{
		ID:       7,
		Email:    "real@example.com",
		Password: hashed(t, "correct-password"),
		Nickname: "sprout",
	}, nil)

	store := newMemoryTokenStore()
	service := newTestAuthService(repo, store)

	login, err := service.Login(context.Background(), LoginRequest{
		Email: "real@example.com", Password: "correct-password",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), 7))

	_, err = service.Refresh(context.Background(), login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	service := newTestAuthService(new(mockUserRepository), newMemoryTokenStore())

	_, err := service.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
