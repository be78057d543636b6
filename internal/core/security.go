// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/carterperez-dev/wear-shop/internal/config"
)

const saltLength = 16

var ErrMalformedHash = errors.New("malformed password hash")

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

// Argon2Hasher hashes credentials with argon2id in the PHC string format.
type Argon2Hasher struct {
	params    argonParams
	dummyHash string
}

func NewArgon2Hasher(cfg config.SecurityConfig) (*Argon2Hasher, error) {
	h := &Argon2Hasher{
		params: argonParams{
			memory:  cfg.ArgonMemoryKiB,
			time:    cfg.ArgonTime,
			threads: cfg.ArgonThreads,
			keyLen:  cfg.ArgonKeyLen,
		},
	}

	dummy, err := h.Hash("dummy_password_for_timing_attack_prevention")
	if err != nil {
		return nil, fmt.Errorf("security: generate dummy hash: %w", err)
	}
	h.dummyHash = dummy

	return h, nil
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.time,
		h.params.memory,
		h.params.threads,
		h.params.keyLen,
	)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory,
		h.params.time,
		h.params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *Argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	otherKey := argon2.IDKey(
		[]byte(password),
		salt,
		params.time,
		params.memory,
		params.threads,
		params.keyLen,
	)

	return subtle.ConstantTimeCompare(key, otherKey) == 1, nil
}

// VerifyTimingSafe always runs one argon2 derivation, against the dummy hash
// when the account is unknown, so lookups cannot be timed to enumerate emails.
func (h *Argon2Hasher) VerifyTimingSafe(
	password string,
	encodedHash *string,
) (bool, error) {
	if encodedHash == nil || *encodedHash == "" {
		//nolint:errcheck // result discarded, only the cost matters
		_, _ = h.Verify(password, h.dummyHash)
		return false, nil
	}

	return h.Verify(password, *encodedHash)
}

// NeedsRehash reports whether encodedHash was produced with parameters other
// than the configured ones.
func (h *Argon2Hasher) NeedsRehash(encodedHash string) bool {
	params, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}

	return *params != h.params
}

func decodeHash(encodedHash string) (*argonParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("%w: wrong segment count", ErrMalformedHash)
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf(
			"%w: unsupported algorithm %s",
			ErrMalformedHash,
			parts[1],
		)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: version: %w", ErrMalformedHash, err)
	}

	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf(
			"%w: incompatible version %d",
			ErrMalformedHash,
			version,
		)
	}

	params := &argonParams{}
	_, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.memory,
		&params.time,
		&params.threads,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: params: %w", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: salt: %w", ErrMalformedHash, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: key: %w", ErrMalformedHash, err)
	}

	//nolint:gosec // G115: argon2id keys are a few dozen bytes
	params.keyLen = uint32(len(key))

	return params, salt, key, nil
}
