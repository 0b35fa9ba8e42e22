package handlers

import (
	"context"
	"net/http"
	"testing"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userAdminStub struct {
	listFn   func(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error)
	statusFn func(ctx context.Context, actor policy.Subject, id uuid.UUID, status entities.UserStatus) error
}

func (s userAdminStub) ListUsers(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	return s.listFn(ctx, filter)
}
func (s userAdminStub) UpdateUserStatus(ctx context.Context, actor policy.Subject, id uuid.UUID, status entities.UserStatus) error {
	return s.statusFn(ctx, actor, id, status)
}

func TestUserHandler(t *testing.T) {
	adminID := uuid.New()
	target := uuid.New()
	var gotFilter entities.UserFilter
	var gotActor policy.Subject
	svc := userAdminStub{
		listFn: func(_ context.Context, filter entities.UserFilter) ([]*entities.User, error) {
			gotFilter = filter
			return []*entities.User{{ID: target}}, nil
		},
		statusFn: func(_ context.Context, actor policy.Subject, id uuid.UUID, status entities.UserStatus) error {
			gotActor = actor
			if status == "frozen" {
				return domainerrors.Validation("unknown status")
			}
			return nil
		},
	}
	h := NewUserHandler(svc)
	r := newTestRouter()
	r.Use(withSubject(adminID, entities.UserRoleAdmin))
	r.GET("/users", h.ListUsers)
	r.PUT("/users/:id/status", h.UpdateUserStatus)

	w := doJSON(r, http.MethodGet, "/users?search=nim&role=seller&status=active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.UserFilter{Search: "nim", Role: entities.UserRoleSeller, Status: entities.UserStatusActive}, gotFilter)

	w = doJSON(r, http.MethodPut, "/users/"+target.String()+"/status", map[string]string{"status": "suspended"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminID, gotActor.UserID)
	assert.True(t, gotActor.IsAdmin())

	w = doJSON(r, http.MethodPut, "/users/"+target.String()+"/status", map[string]string{"status": "frozen"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/users/not-a-uuid/status", map[string]string{"status": "active"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
