package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	announcementservice "shepherd/contexts/communications/announcement-service"
	announcementpostgres "shepherd/contexts/communications/announcement-service/adapters/postgres"
	leadershipengine "shepherd/contexts/congregation/leadership-engine"
	leadershippostgres "shepherd/contexts/congregation/leadership-engine/adapters/postgres"
	membershipservice "shepherd/contexts/congregation/membership-service"
	membershippostgres "shepherd/contexts/congregation/membership-service/adapters/postgres"
	dashboardservice "shepherd/contexts/insights/dashboard-service"
	dashboardpostgres "shepherd/contexts/insights/dashboard-service/adapters/postgres"
	insightservice "shepherd/contexts/insights/insight-service"
	genaiadapter "shepherd/contexts/insights/insight-service/adapters/genai"
	insightpostgres "shepherd/contexts/insights/insight-service/adapters/postgres"
	"shepherd/internal/platform/config"
	"shepherd/internal/platform/db"
	"shepherd/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN, db.Pool{
		MaxOpenConns:    cfg.PostgresMaxOpenConns,
		MaxIdleConns:    cfg.PostgresMaxIdleConns,
		ConnMaxLifetime: cfg.PostgresConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	leadershipRepo := leadershippostgres.NewRepository(pg.DB, logger)
	leadershipModule := leadershipengine.NewModule(leadershipengine.Dependencies{
		Roles:   leadershipRepo,
		Members: leadershipRepo,
		Ledger:  leadershipRepo,
		Clock:   leadershippostgres.SystemClock{},
		IDGen:   leadershippostgres.UUIDGenerator{},
		Logger:  logger,
	})

	membershipRepo := membershippostgres.NewRepository(pg.DB, logger)
	membershipModule := membershipservice.NewModule(membershipservice.Dependencies{
		Repo:   membershipRepo,
		Clock:  membershippostgres.SystemClock{},
		IDGen:  membershippostgres.UUIDGenerator{},
		Logger: logger,
	})

	announcementRepo := announcementpostgres.NewRepository(pg.DB, logger)
	announcementModule := announcementservice.NewModule(announcementservice.Dependencies{
		Repo:   announcementRepo,
		Clock:  announcementpostgres.SystemClock{},
		IDGen:  announcementpostgres.UUIDGenerator{},
		Logger: logger,
	})

	dashboardRepo := dashboardpostgres.NewRepository(pg.DB, logger)
	dashboardModule := dashboardservice.NewModule(dashboardservice.Dependencies{
		Repo:   dashboardRepo,
		Clock:  membershippostgres.SystemClock{},
		Logger: logger,
	})

	var insightModule *insightservice.Module
	if cfg.EnableAIInsights {
		generator, err := genaiadapter.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			_ = pg.Close()
			return nil, err
		}
		module := insightservice.NewModule(insightservice.Dependencies{
			Data:      insightpostgres.NewRepository(pg.DB, logger),
			Generator: generator,
			Clock:     membershippostgres.SystemClock{},
			Logger:    logger,
		})
		insightModule = &module
	} else {
		logger.Info("ai insights disabled",
			"event", "bootstrap_insights_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	server := httpserver.New(
		leadershipModule,
		membershipModule,
		announcementModule,
		dashboardModule,
		insightModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
		cfg.CORSAllowedOrigins,
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
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
