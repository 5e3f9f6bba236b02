package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/lojamae/backend/internal/domain/identity"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     identity.Role
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned to clients
type UserInfo struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      identity.Role
	AvatarURL string
	Active    bool
}

// UserInfoFromDomain maps a domain user to its client representation
func UserInfoFromDomain(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		Active:    user.Active,
	}
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	TokenJTI  string
	ExpiresAt time.Time
}

// UpdateUserInput contains the input for an admin user update
type UpdateUserInput struct {
	Name      *string
	Role      *identity.Role
	AvatarURL *string
	Active    *bool
}
