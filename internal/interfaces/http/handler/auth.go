package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	identityapp "github.com/lojamae/backend/internal/application/identity"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/infrastructure/auth"
	"github.com/lojamae/backend/internal/infrastructure/config"
	"github.com/lojamae/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles registration, login and token lifecycle endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	jwtService  *auth.JWTService
	cookieCfg   config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, jwtService *auth.JWTService, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
		cookieCfg:   cookieCfg,
	}
}

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,role"`
}

// LoginRequest is the request body for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the request body for exchanging a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse carries the token pair and the authenticated profile
type LoginResponse struct {
	AccessToken           string               `json:"access_token"`
	RefreshToken          string               `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time            `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time            `json:"refresh_token_expires_at"`
	TokenType             string               `json:"token_type"`
	User                  identityapp.UserInfo `json:"user"`
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.authService.Register(c.Request.Context(), identityapp.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     identity.Role(strings.ToUpper(req.Role)),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// Login authenticates a user, sets the session cookie and returns the
// token pair for clients that prefer the Authorization header
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.AccessToken, result.AccessTokenExpiresAt)
	h.Success(c, loginResponse(result))
}

// Refresh exchanges a refresh token for a new pair. The old refresh
// token is revoked by the service.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), identityapp.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.AccessToken, result.AccessTokenExpiresAt)
	h.Success(c, loginResponse(result))
}

// Logout revokes the presented access token and clears the cookie.
// A request without a valid token still clears the cookie and succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	input := identityapp.LogoutInput{}
	if token := extractToken(c); token != "" {
		if claims, err := h.jwtService.ValidateAccessToken(token); err == nil {
			input.TokenJTI = claims.ID
			input.ExpiresAt = claims.ExpiresAt.Time
		}
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.clearSessionCookie(c)
	h.NoContent(c)
}

// Me returns the profile of the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	info, err := h.authService.Me(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     h.cookiePath(),
		Domain:   h.cookieCfg.Domain,
		Expires:  expiresAt,
		Secure:   h.cookieCfg.Secure,
		HttpOnly: true,
		SameSite: sameSiteMode(h.cookieCfg.SameSite),
	})
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     h.cookiePath(),
		Domain:   h.cookieCfg.Domain,
		MaxAge:   -1,
		Secure:   h.cookieCfg.Secure,
		HttpOnly: true,
		SameSite: sameSiteMode(h.cookieCfg.SameSite),
	})
}

func (h *AuthHandler) cookiePath() string {
	if h.cookieCfg.Path == "" {
		return "/"
	}
	return h.cookieCfg.Path
}

func sameSiteMode(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

func loginResponse(result *identityapp.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
		TokenType:             result.TokenType,
		User:                  result.User,
	}
}
