// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/carterperez-dev/wear-shop/internal/account"
	"github.com/carterperez-dev/wear-shop/internal/config"
	"github.com/carterperez-dev/wear-shop/internal/core"
)

// seed promotes an existing account to SUPERADMIN. The HTTP API can never
// grant that role, so this is the only way one comes into existence.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(*configPath, *email, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, email string, logger *slog.Logger) error {
	if email == "" {
		return errors.New("-email is required")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	id, err := promote(ctx, account.NewRepository(db.DB), email)
	if err != nil {
		return err
	}

	logger.Info("account promoted", "account_id", id, "roles", "ROLE_SUPERADMIN")
	return nil
}

func promote(ctx context.Context, repo account.Repository, email string) (string, error) {
	target, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find %s: %w", email, err)
	}

	if !target.Active {
		return "", fmt.Errorf("promote %s: account inactive: %w", email, core.ErrNotFound)
	}

	if target.Roles.Has(account.RoleSuperAdmin) {
		return target.ID, nil
	}

	current := target.Roles
	roles := current.With(account.RoleSuperAdmin)

	id, err := repo.Update(
		ctx,
		target.ID,
		account.Changes{Roles: &roles},
		account.Precondition{Roles: &current},
	)
	if err != nil {
		return "", fmt.Errorf("promote %s: %w", email, err)
	}

	return id, nil
}
