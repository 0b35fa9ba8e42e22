package handlers

import (
	"context"
	"net/http"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"gem-auction.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserAdminService interface {
	ListUsers(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error)
	UpdateUserStatus(ctx context.Context, actor policy.Subject, id uuid.UUID, status entities.UserStatus) error
}

// UserHandler serves admin user management
type UserHandler struct {
	userUsecase UserAdminService
}

func NewUserHandler(userUsecase UserAdminService) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// ListUsers lists accounts, optionally filtered
// GET /api/admin/users?search=&role=&status=
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := entities.UserFilter{
		Search: c.Query("search"),
		Role:   entities.UserRole(c.Query("role")),
		Status: entities.UserStatus(c.Query("status")),
	}

	users, err := h.userUsecase.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}

type updateUserStatusRequest struct {
	Status entities.UserStatus `json:"status" binding:"required"`
}

// UpdateUserStatus suspends, reactivates or deletes an account
// PUT /api/admin/users/:id/status
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}
	var req updateUserStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userUsecase.UpdateUserStatus(c.Request.Context(), middleware.Subject(c), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "User status updated")
}
