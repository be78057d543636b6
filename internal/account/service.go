// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/wear-shop/internal/core"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// Service implements the account use cases. It keeps no state of its own:
// each use case loads a snapshot, authorizes against it, and hands the
// final decision to one conditional write.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger.With("component", "account"),
	}
}

func (s *Service) CreateAccount(
	ctx context.Context,
	in CreateInput,
) (_ *PublicView, err error) {
	ctx, span := core.StartSpan(ctx, "account.CreateAccount")
	defer func() { core.EndSpan(span, err) }()

	if !IsValidLetters(in.Name) || !IsValidLetters(in.Surname) {
		return nil, fmt.Errorf(
			"create account: name and surname must contain only letters: %w",
			core.ErrInvalidInput,
		)
	}

	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf(
			"create account: email and password are required: %w",
			core.ErrInvalidInput,
		)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create account: hash password: %w", err)
	}

	account := &Account{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        NormalizeEmail(in.Email),
		Phone:        in.Phone,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account created", "account_id", account.ID)

	return ToPublicView(account), nil
}

// GetAccount is open to any authenticated actor; reads are not subject to
// the mutation policy. Deactivated accounts read as not found.
func (s *Service) GetAccount(
	ctx context.Context,
	id string,
	actor Actor,
) (_ *PublicView, err error) {
	ctx, span := core.StartSpan(ctx, "account.GetAccount",
		attribute.String("account.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	if actor.ID == "" {
		return nil, fmt.Errorf("get account: %w", core.ErrUnauthorized)
	}

	account, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", id, err)
	}

	return ToPublicView(account), nil
}

func (s *Service) UpdateAccount(
	ctx context.Context,
	id string,
	changes Changes,
	actor Actor,
) (_ string, err error) {
	ctx, span := core.StartSpan(ctx, "account.UpdateAccount",
		attribute.String("account.id", id),
		attribute.String("actor.id", actor.ID),
	)
	defer func() { core.EndSpan(span, err) }()

	if changes.IsEmpty() {
		return "", fmt.Errorf(
			"update account %s: at least one field must be provided: %w",
			id,
			core.ErrInvalidInput,
		)
	}

	if changes.Roles != nil {
		return "", fmt.Errorf(
			"update account %s: roles cannot be changed here: %w",
			id,
			core.ErrInvalidInput,
		)
	}

	target, err := s.loadActive(ctx, id)
	if err != nil {
		return "", fmt.Errorf("update account %s: %w", id, err)
	}

	if !CanMutate(ActionUpdate, actor, target) {
		s.logger.WarnContext(ctx, "account update denied",
			"account_id", id,
			"actor_id", actor.ID,
		)
		return "", fmt.Errorf("update account %s: %w", id, core.ErrForbidden)
	}

	updatedID, err := s.repo.Update(ctx, id, changes, Precondition{})
	if err != nil {
		return "", fmt.Errorf("update account %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "account updated",
		"account_id", updatedID,
		"actor_id", actor.ID,
	)

	return updatedID, nil
}

func (s *Service) SoftDeleteAccount(
	ctx context.Context,
	id string,
	actor Actor,
) (_ string, err error) {
	ctx, span := core.StartSpan(ctx, "account.SoftDeleteAccount",
		attribute.String("account.id", id),
		attribute.String("actor.id", actor.ID),
	)
	defer func() { core.EndSpan(span, err) }()

	target, err := s.loadActive(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete account %s: %w", id, err)
	}

	if !CanMutate(ActionDelete, actor, target) {
		s.logger.WarnContext(ctx, "account deletion denied",
			"account_id", id,
			"actor_id", actor.ID,
		)
		return "", fmt.Errorf("delete account %s: %w", id, core.ErrForbidden)
	}

	deletedID, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete account %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "account deactivated",
		"account_id", deletedID,
		"actor_id", actor.ID,
	)

	return deletedID, nil
}

func (s *Service) GrantAdminRole(
	ctx context.Context,
	id string,
	actor Actor,
) (string, error) {
	return s.changePrivilege(ctx, GrantAdmin, id, actor)
}

func (s *Service) RevokeAdminRole(
	ctx context.Context,
	id string,
	actor Actor,
) (string, error) {
	return s.changePrivilege(ctx, RevokeAdmin, id, actor)
}

func (s *Service) changePrivilege(
	ctx context.Context,
	change PrivilegeChange,
	id string,
	actor Actor,
) (_ string, err error) {
	ctx, span := core.StartSpan(ctx, "account."+change.String(),
		attribute.String("account.id", id),
		attribute.String("actor.id", actor.ID),
	)
	defer func() { core.EndSpan(span, err) }()

	if err := checkPrivilegeActor(actor, id); err != nil {
		return "", fmt.Errorf("%s %s: %w", change, id, err)
	}

	target, err := s.loadActive(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", change, id, err)
	}

	roles, err := nextRoles(change, target)
	if err != nil {
		return "", fmt.Errorf("%s %s: target holds %s: %w", change, id, target.Roles, err)
	}

	current := target.Roles
	updatedID, err := s.repo.Update(
		ctx,
		id,
		Changes{Roles: &roles},
		Precondition{Roles: &current},
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			err = s.classifyMiss(ctx, id)
		}
		return "", fmt.Errorf("%s %s: %w", change, id, err)
	}

	s.logger.InfoContext(ctx, "account privileges changed",
		"change", change.String(),
		"account_id", updatedID,
		"actor_id", actor.ID,
		"roles", roles.String(),
	)

	return updatedID, nil
}

// loadActive treats an inactive account, and an id that could never name
// one, the same as a missing account.
func (s *Service) loadActive(ctx context.Context, id string) (*Account, error) {
	if uuid.Validate(id) != nil {
		return nil, core.ErrNotFound
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !account.Active {
		return nil, core.ErrNotFound
	}

	return account, nil
}

// classifyMiss explains a conditional role write that matched no row. The
// write has already failed, so this read cannot race it into a bad state.
func (s *Service) classifyMiss(ctx context.Context, id string) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !account.Active {
		return core.ErrNotFound
	}

	return core.ErrConflict
}
