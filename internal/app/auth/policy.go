// Package auth holds the role policy for administrator actions. The policy is
// an explicit function injected into the role middleware rather than a
// mutable role list consulted through request state.
package auth

import "github.com/kerem/schoolhub/internal/app/models"

// Policy decides whether a role may perform an action restricted to the
// required roles.
type Policy func(role models.Role, required ...models.Role) bool

// Allowed is the default policy: the role must appear in the required set.
// An empty required set means any authenticated administrator.
func Allowed(role models.Role, required ...models.Role) bool {
	if len(required) == 0 {
		return role == models.RoleSuper || role == models.RoleSub
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
