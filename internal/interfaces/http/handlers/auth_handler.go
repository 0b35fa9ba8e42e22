package handlers

import (
	"context"
	"net/http"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"gem-auction.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	TokenTTL() int
}

type ProfileService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase    AuthService
	profileUsecase ProfileService
	secureCookie   bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session
// cookie Secure and should be on behind TLS.
func NewAuthHandler(authUsecase AuthService, profileUsecase ProfileService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		profileUsecase: profileUsecase,
		secureCookie:   secureCookie,
	}
}

// Register creates an account
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login authenticates and sets the session cookie
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, auth.Token, h.authUsecase.TokenTTL(), "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, auth)
}

// Logout clears the session cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.Message(c, http.StatusOK, "Logged out")
}

// Me returns the current user
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.profileUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
