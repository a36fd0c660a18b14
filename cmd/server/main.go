package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
	"clickdeck/internal/config"
	"clickdeck/internal/handler"
	"clickdeck/internal/httpserver"
	"clickdeck/internal/repository"
	"clickdeck/internal/service/auth"
	pkgconfig "clickdeck/pkg/config"
	"clickdeck/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	if cfg.ClickUp.Token == "" {
		logger.Fatal("missing ClickUp token: set clickup.token or CLICKUP_AUTH_TOKEN")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("missing JWT secret: set jwt.secret or JWT_SECRET")
	}

	dbConn, err := newDBPool(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	userRepo := repository.NewUserRepository(dbConn)
	authService := auth.NewService(userRepo, cfg.JWT.Secret)
	clickupClient := clickup.NewClient(cfg.ClickUp.BaseURL, cfg.ClickUp.Token, logger)

	router := httpserver.NewRouter(
		handler.NewAuthHandler(authService, logger),
		handler.NewSpaceHandler(clickupClient, logger),
		handler.NewFolderHandler(clickupClient, logger),
		handler.NewListHandler(clickupClient, logger),
		handler.NewTaskHandler(clickupClient, logger),
		handler.NewWorkspaceHandler(clickupClient, logger),
		handler.NewAnalyticsHandler(clickupClient, cfg.ClickUp.DefaultTeamID, logger),
	)

	logger.Info("Starting ClickUp gateway", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}

func newDBPool(cfg pkgconfig.DBConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnIdleTime = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	logger.Info("PostgreSQL connection established",
		zap.String("host", cfg.Host),
		zap.String("db", cfg.Name),
	)
	return pool, nil
}
