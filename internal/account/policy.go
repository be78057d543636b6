// AngelaMos | 2026
// policy.go

package account

import (
	"fmt"

	"github.com/carterperez-dev/wear-shop/internal/core"
)

// Action is the kind of mutation being authorized.
type Action uint8

const (
	ActionUpdate Action = iota + 1
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// CanMutate decides whether actor may apply action to target. It depends
// only on the two role sets and id equality. Rules, first match wins:
//
//  1. deleting an account that holds SUPERADMIN is denied, for everyone
//  2. acting on yourself is allowed
//  3. acting on others needs ADMIN or SUPERADMIN
//  4. an ADMIN cannot touch a SUPERADMIN
//  5. an ADMIN cannot touch another ADMIN
//  6. otherwise allowed
func CanMutate(action Action, actor Actor, target *Account) bool {
	if action == ActionDelete && target.Roles.Has(RoleSuperAdmin) {
		return false
	}

	if actor.ID == target.ID {
		return true
	}

	if !actor.Roles.IsElevated() {
		return false
	}

	if actor.Roles.Has(RoleSuperAdmin) {
		return true
	}

	if target.Roles.Has(RoleSuperAdmin) || target.Roles.Has(RoleAdmin) {
		return false
	}

	return true
}

// PrivilegeChange is a grant or revoke of the ADMIN role.
type PrivilegeChange uint8

const (
	GrantAdmin PrivilegeChange = iota + 1
	RevokeAdmin
)

func (p PrivilegeChange) String() string {
	switch p {
	case GrantAdmin:
		return "grant_admin"
	case RevokeAdmin:
		return "revoke_admin"
	default:
		return fmt.Sprintf("PrivilegeChange(%d)", uint8(p))
	}
}

// checkPrivilegeActor covers the rules that need no stored state, so they
// run before the target is loaded.
func checkPrivilegeActor(actor Actor, targetID string) error {
	if !actor.Roles.Has(RoleSuperAdmin) {
		return core.ErrForbidden
	}

	if actor.ID == targetID {
		return core.ErrInvalidOperation
	}

	return nil
}

// nextRoles returns the role set target should hold after change, or
// ErrConflict when the change would be a no-op.
func nextRoles(change PrivilegeChange, target *Account) (RoleSet, error) {
	switch change {
	case GrantAdmin:
		if target.Roles.IsElevated() {
			return target.Roles, core.ErrConflict
		}
		return target.Roles.With(RoleAdmin), nil
	case RevokeAdmin:
		if !target.Roles.Has(RoleAdmin) {
			return target.Roles, core.ErrConflict
		}
		return target.Roles.Without(RoleAdmin), nil
	default:
		return target.Roles, core.ErrInvalidOperation
	}
}

// CheckPrivilegeChange evaluates every grant/revoke rule against a loaded
// target.
func CheckPrivilegeChange(
	change PrivilegeChange,
	actor Actor,
	target *Account,
) (RoleSet, error) {
	if err := checkPrivilegeActor(actor, target.ID); err != nil {
		return target.Roles, err
	}
	return nextRoles(change, target)
}
