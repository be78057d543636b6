// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/wear-shop/internal/account"
	"github.com/carterperez-dev/wear-shop/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

type CredentialHasher interface {
	Hash(password string) (string, error)
	VerifyTimingSafe(password string, encodedHash *string) (bool, error)
	NeedsRehash(encodedHash string) bool
}

type Service struct {
	store       CredentialStore
	hasher      CredentialHasher
	jwt         *JWTManager
	revocations *RevocationStore
	logger      *slog.Logger
}

func NewService(
	store CredentialStore,
	hasher CredentialHasher,
	jwt *JWTManager,
	revocations *RevocationStore,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       store,
		hasher:      hasher,
		jwt:         jwt,
		revocations: revocations,
		logger:      logger.With("component", "auth"),
	}
}

// Login exchanges email and password for an access token. Unknown emails,
// deactivated accounts and wrong passwords are indistinguishable.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*TokenResponse, error) {
	acct, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention, result unused
			_, _ = s.hasher.VerifyTimingSafe(password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	valid, err := s.hasher.VerifyTimingSafe(password, &acct.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: verify password: %w", err)
	}

	if !valid || !acct.Active {
		return nil, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(acct.PasswordHash) {
		s.upgradeHash(ctx, acct.ID, password)
	}

	token, expiresAt, err := s.jwt.CreateAccessToken(acct.ID, acct.TokenVersion)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.InfoContext(ctx, "login succeeded", "account_id", acct.ID)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwt.AccessTokenTTL().Seconds()),
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) upgradeHash(ctx context.Context, accountID, password string) {
	newHash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.WarnContext(ctx, "rehash failed", "account_id", accountID, "error", err)
		return
	}

	if err := s.store.UpdatePasswordHash(ctx, accountID, newHash); err != nil {
		s.logger.WarnContext(ctx, "rehash not stored", "account_id", accountID, "error", err)
	}
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwt.VerifyAccessToken(token)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if err := s.revocations.Revoke(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.InfoContext(ctx, "token revoked", "account_id", claims.AccountID)
	return nil
}
