package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"friendgraph/backend/internal/friendship"
	"friendgraph/backend/internal/graph"
	"friendgraph/backend/pkg/config"
	apperrors "friendgraph/backend/pkg/errors"
	"friendgraph/backend/pkg/logger"
)

// step is one seeded operation between demo users i and j
type step struct {
	from, to int
	decision string // empty means initiate only
}

func main() {
	prefix := flag.String("prefix", "demo-user-", "Id prefix for seeded users")
	users := flag.Int("users", 6, "Number of demo users (minimum 4)")
	reset := flag.Bool("reset", false, "Delete users with the prefix before seeding")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	if *users < 4 {
		log.Fatal("At least 4 users are required", zap.Int("users", *users))
	}

	driver, err := graph.NewDriver(graph.DriverConfig{
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
	})
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	repo := graph.NewRepository(driver, graph.WithDatabase(cfg.Neo4jDatabase))
	defer repo.Close(context.Background())

	ctx := context.Background()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to create schema", zap.Error(err))
	}

	if *reset {
		if _, err := repo.DeleteUsersWithPrefix(ctx, *prefix); err != nil {
			log.Fatal("Failed to reset demo users", zap.Error(err))
		}
	}

	id := func(i int) string { return fmt.Sprintf("%s%d", *prefix, i) }
	svc := friendship.NewService(repo)

	// user 0 is friends with everyone else, 1 and 2 have a pending request,
	// 3 declined 2, the last user blocked 1
	var plan []step
	for i := 1; i < *users; i++ {
		plan = append(plan, step{from: i, to: 0, decision: "accepted"})
	}
	plan = append(plan,
		step{from: 1, to: 2},
		step{from: 2, to: 3, decision: "declined"},
		step{from: *users - 1, to: 1, decision: "blocked"},
	)

	for _, s := range plan {
		from, to := id(s.from), id(s.to)
		if s.decision != "blocked" {
			if _, err := svc.Initiate(ctx, from, to); err != nil && !apperrors.IsErrorType(err, apperrors.ErrorTypeRule) {
				log.Fatal("Failed to send friend request", zap.String("from", from), zap.String("to", to), zap.Error(err))
			}
		}
		if s.decision == "" {
			continue
		}
		if _, err := svc.Respond(ctx, from, to, s.decision); err != nil && !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			log.Fatal("Failed to respond to friend request", zap.String("from", from), zap.String("to", to), zap.Error(err))
		}
	}

	friends, err := svc.Friends(ctx, id(0))
	if err != nil {
		log.Fatal("Seeded graph has no friendships", zap.Error(err))
	}
	log.Info("Seeding complete", zap.String("user", id(0)), zap.Strings("friends", friends))
}
