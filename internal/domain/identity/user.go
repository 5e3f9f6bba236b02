package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// User represents a system user able to authenticate
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	AvatarURL    string
	Active       bool
	LastLoginAt  *time.Time
}

// NewUser creates a new user with a bcrypt-hashed password
func NewUser(name, email, plainPassword string, role Role) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if len(plainPassword) < 6 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must have at least 6 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		Active:            true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(plainPassword string) error {
	if len(plainPassword) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must have at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// RecordLogin stores the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Deactivate disables the user account
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
