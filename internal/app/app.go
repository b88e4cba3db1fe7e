package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftlog/shiftlog-backend/internal/adapter/postgres"
	accountrepo "github.com/shiftlog/shiftlog-backend/internal/adapter/postgres/account"
	grouprepo "github.com/shiftlog/shiftlog-backend/internal/adapter/postgres/group"
	logbookrepo "github.com/shiftlog/shiftlog-backend/internal/adapter/postgres/logbook"
	tagrepo "github.com/shiftlog/shiftlog-backend/internal/adapter/postgres/tag"
	"github.com/shiftlog/shiftlog-backend/internal/config"
	accountsvc "github.com/shiftlog/shiftlog-backend/internal/service/account"
	logbooksvc "github.com/shiftlog/shiftlog-backend/internal/service/logbook"
	tagsvc "github.com/shiftlog/shiftlog-backend/internal/service/tag"
)

// App wires the database pool, repositories and services together.
type App struct {
	Log *slog.Logger

	Accounts *accountsvc.Service
	Tags     *tagsvc.Service
	Logbook  *logbooksvc.Service

	pool *pgxpool.Pool
}

// New builds a ready-to-use App from configuration: connection pool,
// optional schema migration, repositories, services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.Migrate {
		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("migrations applied")
	}

	tx := postgres.NewTxManager(pool)

	accounts := accountrepo.New(pool)
	groups := grouprepo.New(pool)
	tags := tagrepo.New(pool)
	logs := logbookrepo.New(pool)

	return &App{
		Log:      logger,
		Accounts: accountsvc.NewService(logger, accounts, groups, tx),
		Tags:     tagsvc.NewService(logger, tags),
		Logbook:  logbooksvc.NewService(logger, logs, groups, tags, tx),
		pool:     pool,
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.pool.Close()
}

// Run is the application entry point. It loads configuration, builds the
// App and blocks until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info("application ready")
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
