package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apardew63/crm-server/internal/domain/auth"
	"github.com/apardew63/crm-server/internal/platform/config"
)

// Seed creates the initial admin user when the users table is empty.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	store := auth.NewStore(pool)
	count, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Println("seed skipped: SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set")
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	_, err = store.CreateUser(ctx, auth.User{
		Email:        cfg.SeedAdminEmail,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		Status:       auth.UserStatusActive,
	})
	if err != nil {
		return err
	}
	log.Printf("seeded admin user %s", cfg.SeedAdminEmail)
	return nil
}
