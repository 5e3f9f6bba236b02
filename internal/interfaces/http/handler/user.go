package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	identityapp "github.com/lojamae/backend/internal/application/identity"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest is a partial user update; nil fields are untouched
type UpdateUserRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=200"`
	Role      *string `json:"role" binding:"omitempty,role"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Active    *bool   `json:"active"`
}

// List returns a paginated list of users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	users, total, err := h.userService.ListUsers(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}

// Get returns a single user by ID
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	info, err := h.userService.GetUser(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Update applies a partial update to a user
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := identityapp.UpdateUserInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Active:    req.Active,
	}
	if req.Role != nil {
		role := identity.Role(strings.ToUpper(*req.Role))
		input.Role = &role
	}

	info, err := h.userService.UpdateUser(c.Request.Context(), getSession(c), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Deactivate disables a user account
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), getSession(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
