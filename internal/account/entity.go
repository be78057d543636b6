// AngelaMos | 2026
// entity.go

package account

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type Account struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Surname      string    `db:"surname"`
	Email        string    `db:"email"`
	Phone        *string   `db:"phone"`
	PasswordHash string    `db:"password_hash"`
	Active       bool      `db:"is_active"`
	Roles        RoleSet   `db:"roles"`
	TokenVersion int       `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Actor returns the account as an acting identity.
func (a *Account) Actor() Actor {
	return Actor{ID: a.ID, Roles: a.Roles, TokenVersion: a.TokenVersion}
}

// Actor is the identity resolved from the caller's credentials. Roles are
// read from the store when the token is resolved, not from the token.
type Actor struct {
	ID           string
	Roles        RoleSet
	TokenVersion int
}

// Role is a single privilege tag. The set of roles is closed.
type Role uint8

const (
	RoleUser Role = 1 << iota
	RoleAdmin
	RoleSuperAdmin
)

const allRoles = RoleSet(RoleUser | RoleAdmin | RoleSuperAdmin)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "ROLE_USER"
	case RoleAdmin:
		return "ROLE_ADMIN"
	case RoleSuperAdmin:
		return "ROLE_SUPERADMIN"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// RoleSet is a bitmask over Role, persisted as a SMALLINT.
type RoleSet uint8

func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= RoleSet(r)
	}
	return s
}

func (s RoleSet) Has(r Role) bool {
	return s&RoleSet(r) != 0
}

func (s RoleSet) With(r Role) RoleSet {
	return s | RoleSet(r)
}

func (s RoleSet) Without(r Role) RoleSet {
	return s &^ RoleSet(r)
}

// IsElevated reports whether the set holds ADMIN or SUPERADMIN.
func (s RoleSet) IsElevated() bool {
	return s.Has(RoleAdmin) || s.Has(RoleSuperAdmin)
}

func (s RoleSet) Roles() []Role {
	roles := make([]Role, 0, 3)
	for _, r := range []Role{RoleUser, RoleAdmin, RoleSuperAdmin} {
		if s.Has(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

func (s RoleSet) String() string {
	roles := s.Roles()
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

func (s RoleSet) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *RoleSet) Scan(src any) error {
	var v int64
	switch t := src.(type) {
	case int64:
		v = t
	case int32:
		v = int64(t)
	case int16:
		v = int64(t)
	case []byte:
		if _, err := fmt.Sscan(string(t), &v); err != nil {
			return fmt.Errorf("scan role set: %w", err)
		}
	case nil:
		return fmt.Errorf("scan role set: null roles")
	default:
		return fmt.Errorf("scan role set: unsupported type %T", src)
	}

	if v < 0 || v > int64(allRoles) {
		return fmt.Errorf("scan role set: unknown role bits %d", v)
	}

	*s = RoleSet(v)
	return nil
}
