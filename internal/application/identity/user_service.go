package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
)

// UserService handles user administration. Every operation is gated on
// the manage_users action, which only ADMIN holds.
type UserService struct {
	userRepo identity.UserRepository
	gate     *authz.Gate
	logger   *zap.Logger
}

// NewUserService creates a new user administration service
func NewUserService(userRepo identity.UserRepository, gate *authz.Gate, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		gate:     gate,
		logger:   logger,
	}
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context, session identity.Session, filter shared.Filter) ([]UserInfo, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManageUsers, nil); err != nil {
		return nil, 0, err
	}
	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = UserInfoFromDomain(&users[i])
	}
	return infos, total, nil
}

// GetUser returns one user by ID
func (s *UserService) GetUser(ctx context.Context, session identity.Session, id uuid.UUID) (*UserInfo, error) {
	if err := s.gate.Authorize(session, authz.ActionManageUsers, nil); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := UserInfoFromDomain(user)
	return &info, nil
}

// UpdateUser applies a partial update to a user
func (s *UserService) UpdateUser(ctx context.Context, session identity.Session, id uuid.UUID, input UpdateUserInput) (*UserInfo, error) {
	if err := s.gate.Authorize(session, authz.ActionManageUsers, nil); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
		}
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
		}
		user.Role = *input.Role
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.String("updated_by", session.UserID.String()))

	info := UserInfoFromDomain(user)
	return &info, nil
}

// DeactivateUser disables a user account. Users cannot deactivate
// themselves; that would strand an installation without admins.
func (s *UserService) DeactivateUser(ctx context.Context, session identity.Session, id uuid.UUID) error {
	if err := s.gate.Authorize(session, authz.ActionManageUsers, nil); err != nil {
		return err
	}
	if session.UserID == id {
		return shared.NewDomainError("CANNOT_DEACTIVATE_SELF", "You cannot deactivate your own account")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Deactivate()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("User deactivated",
		zap.String("user_id", id.String()),
		zap.String("deactivated_by", session.UserID.String()))
	return nil
}
