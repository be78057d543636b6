// AngelaMos | 2026
// dto.go

package account

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type CreateAccountRequest struct {
	Name     string  `json:"name"     validate:"required,min=1,max=50,letters"`
	Surname  string  `json:"surname"  validate:"required,min=1,max=50,letters"`
	Email    string  `json:"email"    validate:"required,email,max=255"`
	Phone    *string `json:"phone"    validate:"omitnil,phone"`
	Password string  `json:"password" validate:"required,min=1,max=128"`
}

func (r *CreateAccountRequest) Normalize() {
	r.Name = normalizeName(r.Name)
	r.Surname = normalizeName(r.Surname)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = normalizeOptional(r.Phone)
}

func (r *CreateAccountRequest) Input() CreateInput {
	return CreateInput{
		Name:     r.Name,
		Surname:  r.Surname,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
	}
}

type UpdateAccountRequest struct {
	Name    *string `json:"name,omitempty"    validate:"omitnil,min=1,max=50,letters"`
	Surname *string `json:"surname,omitempty" validate:"omitnil,min=1,max=50,letters"`
	Email   *string `json:"email,omitempty"   validate:"omitnil,email,max=255"`
	Phone   *string `json:"phone,omitempty"   validate:"omitnil,phone"`
}

func (r *UpdateAccountRequest) Normalize() {
	if r.Name != nil {
		n := normalizeName(*r.Name)
		r.Name = &n
	}
	if r.Surname != nil {
		s := normalizeName(*r.Surname)
		r.Surname = &s
	}
	if r.Email != nil {
		e := NormalizeEmail(*r.Email)
		r.Email = &e
	}
	r.Phone = normalizeOptional(r.Phone)
}

func (r *UpdateAccountRequest) Changes() Changes {
	return Changes{
		Name:    r.Name,
		Surname: r.Surname,
		Email:   r.Email,
		Phone:   r.Phone,
	}
}

// CreateInput carries an already validated create request into the service.
type CreateInput struct {
	Name     string
	Surname  string
	Email    string
	Phone    *string
	Password string
}

// Changes is a partial set of mutable fields. Nil fields are left as is.
// Roles is set only by the privilege use cases, never from request bodies.
type Changes struct {
	Name    *string
	Surname *string
	Email   *string
	Phone   *string
	Roles   *RoleSet
}

func (c Changes) IsEmpty() bool {
	return c.Name == nil &&
		c.Surname == nil &&
		c.Email == nil &&
		c.Phone == nil &&
		c.Roles == nil
}

// Precondition is evaluated by the store at write time. Liveness is always
// required; Roles, when set, pins the role set the caller decided against.
type Precondition struct {
	Roles *RoleSet
}

// PublicView is the only shape of an account ever written to a response.
type PublicView struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
}

func ToPublicView(a *Account) *PublicView {
	return &PublicView{
		ID:      a.ID,
		Name:    a.Name,
		Surname: a.Surname,
		Email:   a.Email,
		Phone:   a.Phone,
	}
}

type UpdatedResponse struct {
	UpdatedAccountID string `json:"updated_account_id"`
}

type DeletedResponse struct {
	DeletedAccountID string `json:"deleted_account_id"`
}

// NormalizeEmail applies the identity policy: emails compare
// case-insensitively, so they are stored trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
