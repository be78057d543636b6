// AngelaMos | 2026
// authenticator.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/wear-shop/internal/account"
	"github.com/carterperez-dev/wear-shop/internal/core"
)

type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*account.Account, error)
}

// Authenticator resolves bearer tokens into acting users.
type Authenticator struct {
	jwt         *JWTManager
	revocations *RevocationStore
	accounts    AccountLookup
}

func NewAuthenticator(
	jwt *JWTManager,
	revocations *RevocationStore,
	accounts AccountLookup,
) *Authenticator {
	return &Authenticator{
		jwt:         jwt,
		revocations: revocations,
		accounts:    accounts,
	}
}

// Resolve verifies token and returns the actor with its current roles.
// A revoked token, an outdated token version or a deactivated account all
// fail authentication; a store outage surfaces as ErrUnavailable.
func (a *Authenticator) Resolve(
	ctx context.Context,
	token string,
) (*account.Actor, error) {
	claims, err := a.jwt.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := a.revocations.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("resolve actor: %w", core.ErrTokenRevoked)
	}

	acct, err := a.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve actor: %w", core.ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	if !acct.Active {
		return nil, fmt.Errorf("resolve actor: account inactive: %w", core.ErrUnauthorized)
	}

	if claims.TokenVersion < acct.TokenVersion {
		return nil, fmt.Errorf("resolve actor: %w", core.ErrTokenRevoked)
	}

	actor := acct.Actor()
	return &actor, nil
}
