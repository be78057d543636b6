// AngelaMos | 2026
// helpers_test.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/wear-shop/internal/account"
	"github.com/carterperez-dev/wear-shop/internal/config"
	"github.com/carterperez-dev/wear-shop/internal/core"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessTokenExpire: 15 * time.Minute,
		Issuer:            "wear-shop",
		Audience:          "wear-shop-api",
	}
}

func newTestJWTManager(t *testing.T, cfg config.JWTConfig) *JWTManager {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	m, err := NewJWTManagerFromKey(key, cfg)
	require.NoError(t, err)
	return m
}

func newTestRevocationStore(t *testing.T) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRevocationStore(core.NewRedisFromClient(client, "test")), mr
}

func newTestHasher(t *testing.T, memoryKiB uint32) *core.Argon2Hasher {
	t.Helper()

	h, err := core.NewArgon2Hasher(config.SecurityConfig{
		ArgonTime:      1,
		ArgonMemoryKiB: memoryKiB,
		ArgonThreads:   1,
		ArgonKeyLen:    32,
	})
	require.NoError(t, err)
	return h
}

// accountStore is an in-memory CredentialStore and AccountLookup.
type accountStore struct {
	mu       sync.Mutex
	byID     map[string]*account.Account
	rehashes int
	err      error
}

func newAccountStore() *accountStore {
	return &accountStore{byID: make(map[string]*account.Account)}
}

func (s *accountStore) add(email, passwordHash string, roles ...account.Role) *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &account.Account{
		ID:           uuid.NewString(),
		Name:         "Anna",
		Surname:      "Lee",
		Email:        email,
		PasswordHash: passwordHash,
		Active:       true,
		Roles:        account.NewRoleSet(roles...),
	}
	s.byID[a.ID] = a
	return a
}

func (s *accountStore) GetByID(_ context.Context, id string) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	clone := *a
	return &clone, nil
}

func (s *accountStore) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	for _, a := range s.byID {
		if a.Email == account.NormalizeEmail(email) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
}

func (s *accountStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok || !a.Active {
		return fmt.Errorf("update password hash: %w", core.ErrNotFound)
	}
	a.PasswordHash = hash
	s.rehashes++
	return nil
}

func (s *accountStore) mutate(id string, fn func(a *account.Account)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.byID[id])
}
