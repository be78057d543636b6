// AngelaMos | 2026
// memrepo_test.go

package account

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carterperez-dev/wear-shop/internal/core"
)

// memRepository mirrors the conditional-write semantics of the SQL
// repository: every write re-checks liveness and the optional role
// precondition under one lock.
type memRepository struct {
	mu       sync.Mutex
	accounts map[string]Account
	emails   map[string]string

	// afterGet runs after GetByID returns, outside the lock, to let tests
	// interleave writes between a use case's load and its mutation.
	afterGet func(id string)

	updates int
	deletes int
}

func newMemRepository() *memRepository {
	return &memRepository{
		accounts: make(map[string]Account),
		emails:   make(map[string]string),
	}
}

func (m *memRepository) Create(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := NormalizeEmail(a.Email)
	if _, taken := m.emails[email]; taken {
		return fmt.Errorf("create account: %w", core.ErrIdentityConflict)
	}

	a.Active = true
	a.Roles = NewRoleSet(RoleUser)
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt

	m.accounts[a.ID] = *a
	m.emails[email] = a.ID
	return nil
}

func (m *memRepository) GetByID(_ context.Context, id string) (*Account, error) {
	m.mu.Lock()
	a, ok := m.accounts[id]
	m.mu.Unlock()

	if m.afterGet != nil {
		m.afterGet(id)
	}

	if !ok {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	return &a, nil
}

func (m *memRepository) GetByEmail(_ context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.emails[NormalizeEmail(email)]
	if !ok {
		return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
	}
	a := m.accounts[id]
	return &a, nil
}

func (m *memRepository) Update(
	_ context.Context,
	id string,
	changes Changes,
	pre Precondition,
) (string, error) {
	if changes.IsEmpty() {
		return "", fmt.Errorf("update account: %w", core.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok || !a.Active || (pre.Roles != nil && a.Roles != *pre.Roles) {
		return "", fmt.Errorf("update account: %w", core.ErrNotFound)
	}

	if changes.Email != nil {
		email := NormalizeEmail(*changes.Email)
		if owner, taken := m.emails[email]; taken && owner != id {
			return "", fmt.Errorf("update account: %w", core.ErrIdentityConflict)
		}
		delete(m.emails, a.Email)
		m.emails[email] = id
		a.Email = email
	}
	if changes.Name != nil {
		a.Name = *changes.Name
	}
	if changes.Surname != nil {
		a.Surname = *changes.Surname
	}
	if changes.Phone != nil {
		a.Phone = changes.Phone
	}
	if changes.Roles != nil {
		a.Roles = *changes.Roles
		a.TokenVersion++
	}
	a.UpdatedAt = time.Now()

	m.accounts[id] = a
	m.updates++
	return id, nil
}

func (m *memRepository) SoftDelete(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return "", fmt.Errorf("delete account: %w", core.ErrNotFound)
	}

	a.Active = false
	a.TokenVersion++
	m.accounts[id] = a
	m.deletes++
	return id, nil
}

func (m *memRepository) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return fmt.Errorf("update password hash: %w", core.ErrNotFound)
	}
	a.PasswordHash = hash
	m.accounts[id] = a
	return nil
}

func (m *memRepository) snapshot(id string) Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[id]
}

func (m *memRepository) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates + m.deletes
}

// seed stores an active account with the given roles directly.
func (m *memRepository) seed(id, email string, roles RoleSet) Account {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := Account{
		ID:           id,
		Name:         "Anna",
		Surname:      "Lee",
		Email:        email,
		PasswordHash: "hash:secret",
		Active:       true,
		Roles:        roles,
	}
	m.accounts[id] = a
	m.emails[email] = id
	return a
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hash:" + password, nil
}

func (stubHasher) Verify(password, encodedHash string) (bool, error) {
	return encodedHash == "hash:"+password, nil
}
