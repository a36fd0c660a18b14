package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clickdeck/internal/config"
	"clickdeck/internal/model"
	"clickdeck/internal/repository"
	"clickdeck/pkg/logger"
	"clickdeck/pkg/util"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'employee',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Offline credential-store seeding. The server never writes users at
// runtime; this is the only writer.
func main() {
	name := flag.String("name", "", "display name of the user")
	email := flag.String("email", "", "unique login email")
	password := flag.String("password", "", "plaintext password, hashed before storage")
	role := flag.String("role", "employee", "role claim carried by session tokens")
	flag.Parse()

	logger := logger.NewLogger()
	defer logger.Sync()

	if *name == "" || *email == "" || *password == "" {
		logger.Fatal("usage: seed -name <name> -email <email> -password <password> [-role <role>]")
	}

	cfg := config.Load()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("PostgreSQL connection failed", zap.Error(err))
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, usersSchema); err != nil {
		logger.Fatal("failed to ensure users table", zap.Error(err))
	}

	hash, err := util.HashPassword(*password)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	u := &model.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         *role,
	}
	if err := repository.NewUserRepository(pool).UpsertUser(ctx, u); err != nil {
		logger.Fatal("failed to seed user", zap.Error(err))
	}

	logger.Info("user seeded",
		zap.Int("id", u.ID),
		zap.String("email", u.Email),
		zap.String("role", u.Role),
	)
}
