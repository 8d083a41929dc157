package users

import "context"

// Service defines profile operations for authenticated users.
type Service interface {
	// GetProfile returns the caller's own profile.
	GetProfile(ctx context.Context, userID int64) (*Profile, error)

	// UpdateProfile applies the non-nil fields. Nickname changes enforce
	// uniqueness.
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*Profile, error)

	// UpdateProfileImage replaces the profile image URL. An empty URL
	// clears it.
	UpdateProfileImage(ctx context.Context, userID int64, imageURL string) (*Profile, error)
}

// Repository is the durable account store. Create maps unique-constraint
// violations on email/nickname to ErrEmailTaken/ErrNicknameTaken.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	Update(ctx context.Context, user *User) error
}
