package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kerem/schoolhub/internal/app/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		required []models.Role
		want     bool
	}{
		{name: "super passes super-only", role: models.RoleSuper, required: []models.Role{models.RoleSuper}, want: true},
		{name: "sub fails super-only", role: models.RoleSub, required: []models.Role{models.RoleSuper}, want: false},
		{name: "sub passes recorder set", role: models.RoleSub, required: []models.Role{models.RoleSuper, models.RoleSub}, want: true},
		{name: "empty set admits super", role: models.RoleSuper, want: true},
		{name: "empty set admits sub", role: models.RoleSub, want: true},
		{name: "empty set rejects unknown role", role: models.Role("viewer"), want: false},
		{name: "unknown role fails named set", role: models.Role("viewer"), required: []models.Role{models.RoleSuper, models.RoleSub}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.required...))
		})
	}
}
