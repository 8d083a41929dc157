package users

import "time"

// User is an account row. Password holds the bcrypt hash, never plaintext.
type User struct {
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	Email           string    `json:"email" db:"email"`
	Password        string    `json:"-" db:"password"`
	Nickname        string    `json:"nickname" db:"nickname"`
	Description     *string   `json:"description,omitempty" db:"description"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty" db:"profile_image_url"`
	ID              int64     `json:"id" db:"id"`
}

// Profile is the user-facing view of an account.
type Profile struct {
	Email           string  `json:"email"`
	Nickname        string  `json:"nickname"`
	Description     *string `json:"description,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
	ID              int64   `json:"id"`
}

// UpdateProfileRequest carries optional profile changes; nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Nickname    *string `json:"nickname,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToProfile strips credentials from a user row.
func (u *User) ToProfile() Profile {
	return Profile{
		ID:              u.ID,
		Email:           u.Email,
		Nickname:        u.Nickname,
		Description:     u.Description,
		ProfileImageURL: u.ProfileImageURL,
	}
}
