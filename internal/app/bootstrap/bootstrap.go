package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	fundingmemory "clearfund/contexts/funding/adapters/memory"
	fundingpostgres "clearfund/contexts/funding/adapters/postgres"
	fundingsqlite "clearfund/contexts/funding/adapters/sqlite"
	allocationengine "clearfund/contexts/funding/allocation-engine"
	fundingentities "clearfund/contexts/funding/domain/entities"
	donationledger "clearfund/contexts/funding/donation-ledger"
	requestledger "clearfund/contexts/funding/request-ledger"
	transparencyview "clearfund/contexts/funding/transparency-view"
	identityservice "clearfund/contexts/identity-access/identity-service"
	identitymemory "clearfund/contexts/identity-access/identity-service/adapters/memory"
	identitypostgres "clearfund/contexts/identity-access/identity-service/adapters/postgres"
	identitysqlite "clearfund/contexts/identity-access/identity-service/adapters/sqlite"
	identityentities "clearfund/contexts/identity-access/identity-service/domain/entities"
	"clearfund/internal/platform/config"
	"clearfund/internal/platform/db"
	"clearfund/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	sqlite   *sql.DB
	logger   *slog.Logger
}

func BuildAPI(cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", cfg.ServiceName, "process", "api")

	app := &APIApp{logger: logger}

	var modules httpserver.Modules
	switch cfg.DBType {
	case "memory":
		modules = buildMemoryModules(cfg, logger)
	case "postgres":
		built, pg, err := buildPostgresModules(cfg, logger)
		if err != nil {
			return nil, err
		}
		modules = built
		app.postgres = pg
	case "sqlite":
		built, handle, err := buildSQLiteModules(cfg, logger)
		if err != nil {
			return nil, err
		}
		modules = built
		app.sqlite = handle
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}

	if err := modules.Identity.Service.SeedAdmin(
		context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword,
	); err != nil {
		return nil, fmt.Errorf("seed admin account: %w", err)
	}

	app.server = httpserver.New(modules, logger, normalizeAddr(cfg.HTTPPort))
	return app, nil
}

func buildMemoryModules(cfg config.Config, logger *slog.Logger) httpserver.Modules {
	store := fundingmemory.NewStore()
	identityStore := identitymemory.NewStore()

	identityModule := identityservice.NewModule(identityservice.Dependencies{
		Repository:  identityStore,
		ProfileSink: profileProjector{store: store},
		Clock:       identityStore,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		Logger:      logger,
	})

	return httpserver.Modules{
		Identity: identityModule,
		Donations: donationledger.NewModule(donationledger.Dependencies{
			Repository: store,
			Clock:      store,
			Receipts:   store,
			Logger:     logger,
		}),
		Requests: requestledger.NewModule(requestledger.Dependencies{
			Repository: store,
			Clock:      store,
			Logger:     logger,
		}),
		Allocations: allocationengine.NewModule(allocationengine.Dependencies{
			Repository: store,
			Clock:      store,
			Logger:     logger,
		}),
		Transparency: transparencyview.NewModule(transparencyview.Dependencies{
			Repository: store,
			Logger:     logger,
		}),
	}
}

func buildPostgresModules(cfg config.Config, logger *slog.Logger) (httpserver.Modules, *db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return httpserver.Modules{}, nil, fmt.Errorf("POSTGRES_DSN is required when DB_TYPE=postgres")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return httpserver.Modules{}, nil, err
	}

	ctx := context.Background()
	identityRepo := identitypostgres.NewRepository(pg.DB, logger)
	// Identity owns the users table; funding joins it, so it migrates first.
	if err := identityRepo.Migrate(ctx); err != nil {
		_ = pg.Close()
		return httpserver.Modules{}, nil, fmt.Errorf("migrate identity schema: %w", err)
	}

	repo := fundingpostgres.NewRepository(pg.DB, logger)
	if err := repo.Migrate(ctx); err != nil {
		_ = pg.Close()
		return httpserver.Modules{}, nil, fmt.Errorf("migrate funding schema: %w", err)
	}

	identityModule := identityservice.NewModule(identityservice.Dependencies{
		Repository: identityRepo,
		Clock:      identitypostgres.SystemClock{},
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		Logger:     logger,
	})

	modules := httpserver.Modules{
		Identity: identityModule,
		Donations: donationledger.NewModule(donationledger.Dependencies{
			Repository: repo,
			Clock:      fundingpostgres.SystemClock{},
			Receipts:   fundingpostgres.ReceiptIssuer{},
			Logger:     logger,
		}),
		Requests: requestledger.NewModule(requestledger.Dependencies{
			Repository: repo,
			Clock:      fundingpostgres.SystemClock{},
			Logger:     logger,
		}),
		Allocations: allocationengine.NewModule(allocationengine.Dependencies{
			Repository: repo,
			Clock:      fundingpostgres.SystemClock{},
			Logger:     logger,
		}),
		Transparency: transparencyview.NewModule(transparencyview.Dependencies{
			Repository: repo,
			Logger:     logger,
		}),
		HealthCheck: func(ctx context.Context) error {
			sqlDB, err := pg.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	return modules, pg, nil
}

func buildSQLiteModules(cfg config.Config, logger *slog.Logger) (httpserver.Modules, *sql.DB, error) {
	handle, err := db.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return httpserver.Modules{}, nil, err
	}

	ctx := context.Background()
	identityStore := identitysqlite.NewStore(handle, logger)
	if err := identityStore.Migrate(ctx); err != nil {
		_ = handle.Close()
		return httpserver.Modules{}, nil, fmt.Errorf("migrate identity schema: %w", err)
	}

	store := fundingsqlite.NewStore(handle, logger)
	if err := store.Migrate(ctx); err != nil {
		_ = handle.Close()
		return httpserver.Modules{}, nil, fmt.Errorf("migrate funding schema: %w", err)
	}

	identityModule := identityservice.NewModule(identityservice.Dependencies{
		Repository: identityStore,
		Clock:      identityStore,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		Logger:     logger,
	})

	modules := httpserver.Modules{
		Identity: identityModule,
		Donations: donationledger.NewModule(donationledger.Dependencies{
			Repository: store,
			Clock:      fundingsqlite.SystemClock{},
			Receipts:   fundingsqlite.ReceiptIssuer{},
			Logger:     logger,
		}),
		Requests: requestledger.NewModule(requestledger.Dependencies{
			Repository: store,
			Clock:      fundingsqlite.SystemClock{},
			Logger:     logger,
		}),
		Allocations: allocationengine.NewModule(allocationengine.Dependencies{
			Repository: store,
			Clock:      fundingsqlite.SystemClock{},
			Logger:     logger,
		}),
		Transparency: transparencyview.NewModule(transparencyview.Dependencies{
			Repository: store,
			Logger:     logger,
		}),
		HealthCheck: handle.PingContext,
	}
	return modules, handle, nil
}

// profileProjector bridges the identity context into the funding memory
// store. Database backends skip this; funding joins the users table there.
type profileProjector struct {
	store *fundingmemory.Store
}

func (p profileProjector) UpsertProfile(ctx context.Context, user identityentities.User) error {
	return p.store.UpsertUserProfile(ctx, fundingentities.UserProfile{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       fundingentities.Role(user.Role),
		Department: user.Department,
		StudentID:  user.StudentID,
		SourceTag:  user.SourceTag,
	})
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	if a.sqlite != nil {
		return a.sqlite.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
