// AngelaMos | 2026
// repository.go

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/wear-shop/internal/core"
)

// Repository owns persistence of accounts. Every method is one SQL
// statement, so each call is its own atomic transaction, and every
// mutation re-checks liveness in its WHERE clause.
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Update(
		ctx context.Context,
		id string,
		changes Changes,
		pre Precondition,
	) (string, error)
	SoftDelete(ctx context.Context, id string) (string, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectColumns = `
		SELECT id, name, surname, email, phone, password_hash, is_active,
		       roles, token_version, created_at, updated_at
		FROM users`

func (r *repository) Create(ctx context.Context, account *Account) error {
	account.Active = true
	account.Roles = NewRoleSet(RoleUser)

	query := `
		INSERT INTO users (
			id, name, surname, email, phone, password_hash, is_active, roles
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING token_version, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		account.ID,
		account.Name,
		account.Surname,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.Active,
		account.Roles,
	).Scan(&account.TokenVersion, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return core.StorageError("create account", err)
	}

	return nil
}

// GetByID does not filter on liveness; callers decide what an inactive
// account means for their use case.
func (r *repository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := selectColumns + `
		WHERE id = $1`

	var account Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		return nil, core.StorageError("get account", err)
	}

	return &account, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	query := selectColumns + `
		WHERE email = $1`

	var account Account
	err := r.db.GetContext(ctx, &account, query, NormalizeEmail(email))
	if err != nil {
		return nil, core.StorageError("get account by email", err)
	}

	return &account, nil
}

// Update applies changes only if, at write time, the row is active and
// matches pre. The returned id confirms that a row was changed; a miss is
// ErrNotFound whether the account is missing, inactive or moved on.
func (r *repository) Update(
	ctx context.Context,
	id string,
	changes Changes,
	pre Precondition,
) (string, error) {
	if changes.IsEmpty() {
		return "", fmt.Errorf("update account: empty change set: %w", core.ErrInvalidInput)
	}

	sets := make([]string, 0, 7)
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Name != nil {
		add("name", *changes.Name)
	}
	if changes.Surname != nil {
		add("surname", *changes.Surname)
	}
	if changes.Email != nil {
		add("email", NormalizeEmail(*changes.Email))
	}
	if changes.Phone != nil {
		add("phone", *changes.Phone)
	}
	if changes.Roles != nil {
		add("roles", *changes.Roles)
		sets = append(sets, "token_version = token_version + 1")
	}
	sets = append(sets, "updated_at = NOW()")

	conditions := []string{"id = $1", "is_active"}
	if pre.Roles != nil {
		args = append(args, *pre.Roles)
		conditions = append(conditions, fmt.Sprintf("roles = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE %s
		RETURNING id`,
		strings.Join(sets, ", "),
		strings.Join(conditions, " AND "),
	)

	var updatedID string
	if err := r.db.GetContext(ctx, &updatedID, query, args...); err != nil {
		return "", core.StorageError("update account", err)
	}

	return updatedID, nil
}

// SoftDelete flips is_active to false only if it is currently true. A
// second call finds no live row and reports ErrNotFound.
func (r *repository) SoftDelete(ctx context.Context, id string) (string, error) {
	query := `
		UPDATE users
		SET is_active = false,
		    token_version = token_version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND is_active
		RETURNING id`

	var deletedID string
	if err := r.db.GetContext(ctx, &deletedID, query, id); err != nil {
		return "", core.StorageError("delete account", err)
	}

	return deletedID, nil
}

func (r *repository) UpdatePasswordHash(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND is_active`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return core.StorageError("update password hash", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.StorageError("update password hash", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password hash: %w", core.ErrNotFound)
	}

	return nil
}
