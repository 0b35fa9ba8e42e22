// Package policy holds role and ownership checks independent of transport.
package policy

import (
	"gem-auction.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// Decision is the outcome of a policy check
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// Subject is the authenticated caller
type Subject struct {
	UserID uuid.UUID
	Role   entities.UserRole
}

// IsAdmin reports whether the subject holds the admin role
func (s Subject) IsAdmin() bool {
	return s.Role == entities.UserRoleAdmin
}

// Authorize allows the subject when it holds any of the required roles.
// An empty role list allows any authenticated subject.
func Authorize(subject Subject, required ...entities.UserRole) Decision {
	if subject.UserID == uuid.Nil {
		return Deny
	}
	if len(required) == 0 {
		return Allow
	}
	for _, role := range required {
		if subject.Role == role {
			return Allow
		}
	}
	return Deny
}

// AuthorizeOwnerOrAdmin allows admins and the owner of a resource
func AuthorizeOwnerOrAdmin(subject Subject, ownerID uuid.UUID) Decision {
	if subject.UserID == uuid.Nil {
		return Deny
	}
	if subject.IsAdmin() || subject.UserID == ownerID {
		return Allow
	}
	return Deny
}
