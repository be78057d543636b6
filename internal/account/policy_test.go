// AngelaMos | 2026
// policy_test.go

package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/wear-shop/internal/core"
)

var (
	userRoles       = NewRoleSet(RoleUser)
	adminRoles      = NewRoleSet(RoleUser, RoleAdmin)
	superRoles      = NewRoleSet(RoleUser, RoleSuperAdmin)
	superAdminRoles = NewRoleSet(RoleUser, RoleAdmin, RoleSuperAdmin)
)

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		actor  RoleSet
		target RoleSet
		self   bool
		want   bool
	}{
		{"user updates self", ActionUpdate, userRoles, userRoles, true, true},
		{"user deletes self", ActionDelete, userRoles, userRoles, true, true},
		{"admin deletes self", ActionDelete, adminRoles, adminRoles, true, true},
		{"superadmin updates self", ActionUpdate, superRoles, superRoles, true, true},
		{"superadmin deletes self", ActionDelete, superRoles, superRoles, true, false},
		{"user updates other", ActionUpdate, userRoles, userRoles, false, false},
		{"user deletes other", ActionDelete, userRoles, userRoles, false, false},
		{"admin updates user", ActionUpdate, adminRoles, userRoles, false, true},
		{"admin deletes user", ActionDelete, adminRoles, userRoles, false, true},
		{"admin updates admin", ActionUpdate, adminRoles, adminRoles, false, false},
		{"admin deletes admin", ActionDelete, adminRoles, adminRoles, false, false},
		{"admin updates superadmin", ActionUpdate, adminRoles, superRoles, false, false},
		{"admin deletes superadmin", ActionDelete, adminRoles, superRoles, false, false},
		{"superadmin updates admin", ActionUpdate, superRoles, adminRoles, false, true},
		{"superadmin deletes admin", ActionDelete, superRoles, adminRoles, false, true},
		{"superadmin updates superadmin", ActionUpdate, superRoles, superAdminRoles, false, true},
		{"superadmin deletes superadmin", ActionDelete, superRoles, superAdminRoles, false, false},
		{"user deletes superadmin", ActionDelete, userRoles, superRoles, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := Actor{ID: "actor", Roles: tt.actor}
			target := &Account{ID: "target", Roles: tt.target, Active: true}
			if tt.self {
				target.ID = actor.ID
			}

			assert.Equal(t, tt.want, CanMutate(tt.action, actor, target))
		})
	}
}

func TestCanMutateIsPure(t *testing.T) {
	roleSets := []RoleSet{userRoles, adminRoles, superRoles, superAdminRoles}
	actions := []Action{ActionUpdate, ActionDelete}

	for _, action := range actions {
		for _, actorRoles := range roleSets {
			for _, targetRoles := range roleSets {
				actor := Actor{ID: "a", Roles: actorRoles}
				target := &Account{ID: "b", Roles: targetRoles}

				first := CanMutate(action, actor, target)
				for range 3 {
					require.Equal(t, first, CanMutate(action, actor, target))
				}
				assert.Equal(t, targetRoles, target.Roles)
			}
		}
	}
}

func TestCheckPrivilegeChange(t *testing.T) {
	tests := []struct {
		name      string
		change    PrivilegeChange
		actor     RoleSet
		target    RoleSet
		self      bool
		wantRoles RoleSet
		wantErr   error
	}{
		{"grant to user", GrantAdmin, superRoles, userRoles, false, adminRoles, nil},
		{"grant by admin", GrantAdmin, adminRoles, userRoles, false, userRoles, core.ErrForbidden},
		{"grant by user", GrantAdmin, userRoles, userRoles, false, userRoles, core.ErrForbidden},
		{"grant to self", GrantAdmin, superRoles, superRoles, true, superRoles, core.ErrInvalidOperation},
		{"grant to admin", GrantAdmin, superRoles, adminRoles, false, adminRoles, core.ErrConflict},
		{"grant to superadmin", GrantAdmin, superRoles, superRoles, false, superRoles, core.ErrConflict},
		{"revoke from admin", RevokeAdmin, superRoles, adminRoles, false, userRoles, nil},
		{"revoke from superadmin holding admin", RevokeAdmin, superRoles, superAdminRoles, false, superRoles, nil},
		{"revoke from user", RevokeAdmin, superRoles, userRoles, false, userRoles, core.ErrConflict},
		{"revoke from self", RevokeAdmin, superAdminRoles, superAdminRoles, true, superAdminRoles, core.ErrInvalidOperation},
		{"revoke by admin", RevokeAdmin, adminRoles, adminRoles, false, adminRoles, core.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := Actor{ID: "actor", Roles: tt.actor}
			target := &Account{ID: "target", Roles: tt.target, Active: true}
			if tt.self {
				target.ID = actor.ID
			}

			roles, err := CheckPrivilegeChange(tt.change, actor, target)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRoles, roles)
			assert.Equal(t, tt.target, target.Roles)
		})
	}
}

func TestActionAndChangeNames(t *testing.T) {
	assert.Equal(t, "update", ActionUpdate.String())
	assert.Equal(t, "delete", ActionDelete.String())
	assert.Equal(t, "grant_admin", GrantAdmin.String())
	assert.Equal(t, "revoke_admin", RevokeAdmin.String())
}
