package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pizza-store-cli/models"
)

// RoleResolver looks a user's role up in storage.
type RoleResolver interface {
	RoleOf(ctx context.Context, login string) (models.UserRole, error)
}

// Capability names a guarded action.
type Capability string

const (
	CapProfileUpdate     Capability = "profile-update"
	CapMenuUpdate        Capability = "menu-update"
	CapOrderStatusUpdate Capability = "order-status-update"
	CapUserUpdate        Capability = "user-update"
	CapOrderLookupAll    Capability = "order-lookup-all"
)

var capabilityRoles = map[Capability][]models.UserRole{
	CapProfileUpdate:     {models.RoleCustomer, models.RoleDriver, models.RoleManager},
	CapMenuUpdate:        {models.RoleManager},
	CapOrderStatusUpdate: {models.RoleDriver, models.RoleManager},
	CapUserUpdate:        {models.RoleManager},
	CapOrderLookupAll:    {models.RoleDriver, models.RoleManager},
}

// Authorize re-reads the caller's role and checks it grants capability. It
// returns the role so callers can branch on it without a second lookup.
func Authorize(ctx context.Context, roles RoleResolver, login string, capability Capability) (models.UserRole, error) {
	role, err := roles.RoleOf(ctx, login)
	if errors.Is(err, models.ErrNotFound) {
		return "", fmt.Errorf("%w: unknown user %q", models.ErrAccessDenied, login)
	}
	if err != nil {
		return "", err
	}
	if !HasCapability(role, capability) {
		return role, fmt.Errorf("%w. Required role(s): %s", models.ErrAccessDenied, rolesString(capabilityRoles[capability]))
	}
	return role, nil
}

// HasCapability reports whether role grants capability.
func HasCapability(role models.UserRole, capability Capability) bool {
	for _, r := range capabilityRoles[capability] {
		if role == r {
			return true
		}
	}
	return false
}

func rolesString(roles []models.UserRole) string {
	s := make([]string, len(roles))
	for i, r := range roles {
		s[i] = string(r)
	}
	return strings.Join(s, ", ")
}
