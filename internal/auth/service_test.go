// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/wear-shop/internal/account"
	"github.com/carterperez-dev/wear-shop/internal/core"
)

type serviceFixture struct {
	svc         *Service
	jwt         *JWTManager
	accounts    *accountStore
	hasher      *core.Argon2Hasher
	revocations *RevocationStore
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	jwt := newTestJWTManager(t, testJWTConfig())
	revocations, _ := newTestRevocationStore(t)
	accounts := newAccountStore()
	hasher := newTestHasher(t, 1024)

	return &serviceFixture{
		svc: NewService(
			accounts,
			hasher,
			jwt,
			revocations,
			slog.New(slog.DiscardHandler),
		),
		jwt:         jwt,
		accounts:    accounts,
		hasher:      hasher,
		revocations: revocations,
	}
}

func (f *serviceFixture) addAccount(t *testing.T, email, password string) *account.Account {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	return f.accounts.add(email, hash, account.RoleUser)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	a := f.addAccount(t, "a@x.com", "secret")

	resp, err := f.svc.Login(ctx, "A@X.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 900, resp.ExpiresIn)

	claims, err := f.jwt.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.AccountID)
	assert.Zero(t, f.accounts.rehashes)
}

func TestLoginRejects(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	inactive := f.addAccount(t, "gone@x.com", "secret")
	f.accounts.mutate(inactive.ID, func(a *account.Account) { a.Active = false })
	f.addAccount(t, "a@x.com", "secret")

	tests := map[string]struct{ email, password string }{
		"wrong password": {"a@x.com", "guess"},
		"unknown email":  {"nobody@x.com", "secret"},
		"inactive":       {"gone@x.com", "secret"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLoginUpgradesOutdatedHash(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	old := newTestHasher(t, 512)
	hash, err := old.Hash("secret")
	require.NoError(t, err)
	a := f.accounts.add("a@x.com", hash, account.RoleUser)

	_, err = f.svc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, f.accounts.rehashes)

	stored, err := f.accounts.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, f.hasher.NeedsRehash(stored.PasswordHash))

	ok, err := f.hasher.Verify("secret", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	a := f.addAccount(t, "a@x.com", "secret")

	resp, err := f.svc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)

	auth := NewAuthenticator(f.jwt, f.revocations, f.accounts)
	actor, err := auth.Resolve(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, a.ID, actor.ID)

	require.NoError(t, f.svc.Logout(ctx, resp.AccessToken))

	_, err = auth.Resolve(ctx, resp.AccessToken)
	require.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestLogoutInvalidToken(t *testing.T) {
	f := newServiceFixture(t)

	err := f.svc.Logout(context.Background(), "nope")
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}
