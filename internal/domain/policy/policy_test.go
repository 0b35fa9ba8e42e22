package policy

import (
	"testing"

	"gem-auction.backend/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	admin := Subject{UserID: uuid.New(), Role: entities.UserRoleAdmin}
	seller := Subject{UserID: uuid.New(), Role: entities.UserRoleSeller}

	assert.Equal(t, Allow, Authorize(admin, entities.UserRoleAdmin))
	assert.Equal(t, Deny, Authorize(seller, entities.UserRoleAdmin))
	assert.Equal(t, Allow, Authorize(seller, entities.UserRoleAdmin, entities.UserRoleSeller))
	assert.Equal(t, Allow, Authorize(seller))
	assert.Equal(t, Deny, Authorize(Subject{Role: entities.UserRoleAdmin}, entities.UserRoleAdmin))
}

func TestAuthorizeOwnerOrAdmin(t *testing.T) {
	owner := uuid.New()
	assert.Equal(t, Allow, AuthorizeOwnerOrAdmin(Subject{UserID: owner, Role: entities.UserRoleSeller}, owner))
	assert.Equal(t, Deny, AuthorizeOwnerOrAdmin(Subject{UserID: uuid.New(), Role: entities.UserRoleSeller}, owner))
	assert.Equal(t, Allow, AuthorizeOwnerOrAdmin(Subject{UserID: uuid.New(), Role: entities.UserRoleAdmin}, owner))
	assert.Equal(t, Deny, AuthorizeOwnerOrAdmin(Subject{}, owner))
}
