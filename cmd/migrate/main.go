package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"team-vote/internal/config"
	"team-vote/internal/repository"
	"team-vote/internal/repository/postgres"
	"team-vote/internal/repository/sqlite"
	"team-vote/internal/seed"
	"team-vote/internal/service"
	"team-vote/pkg/database"
	"team-vote/pkg/redis"

	"go.uber.org/zap"
)

const usage = "Usage: migrate [drop|up|seed]"

// store is the subset of schema operations a driver provides
type store struct {
	migrate func(ctx context.Context) error
	drop    func(ctx context.Context) error
	teams   repository.TeamRepository
	close   func()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}
	command := os.Args[1]

	// Load configuration (.env is optional)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	s, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer s.close()

	cache := openCache(cfg)
	defer cache.close()

	switch command {
	case "drop":
		if err := s.drop(ctx); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		cache.InvalidateTeams(ctx)
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := s.migrate(ctx); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		cache.InvalidateTeams(ctx)
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := s.migrate(ctx); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		// CreateTeam moves the cached listing to a new generation.
		svc := service.NewTeamService(s.teams, cache.CacheService, zap.NewNop())
		created, err := seed.Teams(ctx, svc, seed.DefaultTeams)
		if err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Printf("✅ Data seeded successfully (%d teams created)\n", created)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &store{
			migrate: func(ctx context.Context) error { return sqlite.Migrate(ctx, db) },
			drop:    func(ctx context.Context) error { return sqlite.Drop(ctx, db) },
			teams:   sqlite.NewTeamRepository(db),
			close:   db.Close,
		}, nil

	default:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &store{
			migrate: func(ctx context.Context) error { return postgres.Migrate(ctx, db) },
			drop:    func(ctx context.Context) error { return postgres.Drop(ctx, db) },
			teams:   postgres.NewTeamRepository(db),
			close:   db.Close,
		}, nil
	}
}

// migrateCache holds the optional Redis connection used to expire the cached
// team listing after schema or data changes
type migrateCache struct {
	*service.CacheService
	client *redis.Client
}

func openCache(cfg *config.Config) *migrateCache {
	if cfg.RedisURL == "" {
		return &migrateCache{}
	}
	client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, zap.NewNop())
	if err != nil {
		log.Printf("Redis unavailable, cached team listing not refreshed: %v", err)
		return &migrateCache{}
	}
	return &migrateCache{CacheService: service.NewCacheService(client, zap.NewNop()), client: client}
}

func (m *migrateCache) close() {
	if m.client != nil {
		_ = m.client.Close()
	}
}
