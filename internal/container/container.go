package container

import (
	"context"
	"fmt"

	"team-vote/internal/config"
	"team-vote/internal/repository"
	"team-vote/internal/repository/postgres"
	"team-vote/internal/repository/sqlite"
	"team-vote/internal/service"
	"team-vote/pkg/database"
	"team-vote/pkg/logger"
	"team-vote/pkg/redis"
)

// Database is the store handle shared by the health check and shutdown
type Database interface {
	Health(ctx context.Context) error
	Stats() database.PoolStats
	Close()
}

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	Database     Database
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
	TallyHub     *service.TallyHub
}

// New opens the configured store, applies its schema and wires every
// repository and service. Redis is optional; a failed connection is logged
// and the service runs without caching.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, repos, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.WithField("key_prefix", client.KeyBuilder.GetPrefix()).Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	cache := service.NewCacheService(redisClient, log.Logger)
	hub := service.NewTallyHub(repos.Teams, cache, log.Logger, cfg.LiveResultsInterval)

	services := &service.Services{
		Teams:      service.NewTeamService(repos.Teams, cache, log.Logger),
		Candidates: service.NewCandidateService(repos.Candidates, log.Logger),
		Voting:     service.NewVotingService(repos, cache, log.Logger),
		Tallies:    hub,
		Cache:      cache,
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		Database:     db,
		RedisClient:  redisClient,
		Repositories: repos,
		Services:     services,
		TallyHub:     hub,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (Database, *repository.Repositories, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("Connected to PostgreSQL")
		return db, &repository.Repositories{
			Teams:      postgres.NewTeamRepository(db),
			Candidates: postgres.NewCandidateRepository(db),
			Votes:      postgres.NewVoteRepository(db),
		}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("Opened SQLite database")
		return db, &repository.Repositories{
			Teams:      sqlite.NewTeamRepository(db),
			Candidates: sqlite.NewCandidateRepository(db),
			Votes:      sqlite.NewVoteRepository(db),
		}, nil
	}

	return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
