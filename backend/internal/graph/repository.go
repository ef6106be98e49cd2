package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"go.uber.org/zap"

	"friendgraph/backend/internal/friendship"
	apperrors "friendgraph/backend/pkg/errors"
	"friendgraph/backend/pkg/logger"
)

// DriverConfig holds the connection settings for NewDriver
type DriverConfig struct {
	URI            string
	Username       string
	Password       string
	MaxPoolSize    int
	AcquireTimeout time.Duration
	VerifyTimeout  time.Duration
}

// NewDriver creates a Neo4j driver and verifies that the server is reachable
func NewDriver(cfg DriverConfig) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *config.Config) {
			if cfg.MaxPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxPoolSize
			}
			if cfg.AcquireTimeout > 0 {
				c.ConnectionAcquisitionTimeout = cfg.AcquireTimeout
			}
		},
	)
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(cfg.URI, err)
	}

	timeout := cfg.VerifyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(context.Background())
		return nil, apperrors.NewGraphConnectionFailed(cfg.URI, err)
	}

	return driver, nil
}

// Repository handles all Neo4j database operations
type Repository struct {
	driver    neo4j.DriverWithContext
	database  string
	txTimeout time.Duration
	logger    *zap.Logger
}

// Option configures a Repository
type Option func(*Repository)

// WithDatabase selects a database other than the server default
func WithDatabase(name string) Option {
	return func(r *Repository) { r.database = name }
}

// WithTxTimeout bounds every transaction on the server side
func WithTxTimeout(d time.Duration) Option {
	return func(r *Repository) { r.txTimeout = d }
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext, opts ...Option) *Repository {
	r := &Repository{
		driver: driver,
		logger: logger.Get(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ friendship.Store = (*Repository)(nil)

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// Ping checks that the server is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.driver.VerifyConnectivity(ctx); err != nil {
		return queryError("verify connectivity", err)
	}
	return nil
}

// EnsureSchema creates the uniqueness constraint on User.id. Without it two
// concurrent MERGEs of a new id could create duplicate users.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, r.sessionConfig(neo4j.AccessModeWrite))
	defer session.Close(ctx)

	result, err := session.Run(ctx, createUserConstraint, nil)
	if err != nil {
		return queryError("create user constraint", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return queryError("create user constraint", err)
	}

	r.logger.Info("Graph schema ensured")
	return nil
}

// InPairTx runs fn in one explicit transaction with both users upserted and
// write-locked. Locks are taken in id order so two transactions on the same
// pair cannot deadlock. The driver does not retry explicit transactions.
func (r *Repository) InPairTx(ctx context.Context, a, b string, fn func(tx friendship.PairTx) error) error {
	session := r.driver.NewSession(ctx, r.sessionConfig(neo4j.AccessModeWrite))
	defer session.Close(ctx)

	tx, err := session.BeginTransaction(ctx, r.txConfig()...)
	if err != nil {
		return queryError("begin transaction", err)
	}
	defer tx.Close(ctx)

	ids := []string{a, b}
	sort.Strings(ids)

	if err := run(ctx, tx, lockUsers, map[string]any{"ids": ids}); err != nil {
		_ = tx.Rollback(ctx)
		return queryError("lock users", err)
	}

	if err := fn(&pairTx{tx: tx, a: a, b: b}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.logger.Warn("Rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return queryError("commit", err)
	}
	return nil
}

// AcceptedNeighbours returns the ids of users joined to userID by an
// ACCEPTED edge in either direction
func (r *Repository) AcceptedNeighbours(ctx context.Context, userID string) ([]string, error) {
	session := r.driver.NewSession(ctx, r.sessionConfig(neo4j.AccessModeRead))
	defer session.Close(ctx)

	result, err := session.Run(ctx, acceptedNeighbours, map[string]any{
		"userID": userID,
	}, r.txConfig()...)
	if err != nil {
		return nil, queryError("accepted neighbours", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, queryError("accepted neighbours", err)
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		if id := getStringFromRecord(record, "id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DeleteUsersWithPrefix removes users whose id starts with prefix, together
// with their relationships. Used to reset seeded demo data.
func (r *Repository) DeleteUsersWithPrefix(ctx context.Context, prefix string) (int64, error) {
	if prefix == "" {
		return 0, apperrors.NewValidationFailed("prefix", "prefix is required")
	}

	session := r.driver.NewSession(ctx, r.sessionConfig(neo4j.AccessModeWrite))
	defer session.Close(ctx)

	result, err := session.Run(ctx, deleteUsersByPrefix, map[string]any{"prefix": prefix}, r.txConfig()...)
	if err != nil {
		return 0, queryError("delete users", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return 0, queryError("delete users", err)
	}

	deleted, _ := record.Get("deleted")
	n, _ := deleted.(int64)
	r.logger.Info("Users deleted", zap.String("prefix", prefix), zap.Int64("count", n))
	return n, nil
}

func (r *Repository) sessionConfig(mode neo4j.AccessMode) neo4j.SessionConfig {
	return neo4j.SessionConfig{AccessMode: mode, DatabaseName: r.database}
}

func (r *Repository) txConfig() []func(*neo4j.TransactionConfig) {
	if r.txTimeout <= 0 {
		return nil
	}
	return []func(*neo4j.TransactionConfig){neo4j.WithTxTimeout(r.txTimeout)}
}

// run executes a statement and waits for it to finish
func run(ctx context.Context, tx neo4j.ExplicitTransaction, query string, params map[string]any) error {
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

func queryError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewContextCancelled(op, err)
	}
	return apperrors.NewGraphQueryFailed(op, neo4j.IsRetryable(err), err)
}

// relType returns the relationship type for a Cypher pattern. Types cannot be
// query parameters, so only the managed kinds are ever interpolated.
func relType(kind friendship.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown relationship kind %q", kind)
	}
	return string(kind), nil
}
