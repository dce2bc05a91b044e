// Package sync mirrors the workout store to a remote backend keyed by the
// authenticated user. The remote is best-effort: local state stays
// authoritative and failures are logged, never retried automatically.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Remote reads and writes the per-user state document. The "unavailable"
// case is represented by running without a Syncer at all; every Remote
// implementation is assumed reachable at construction time.
type Remote interface {
	Load(ctx context.Context, userID string) (models.State, bool, error)
	Save(ctx context.Context, userID string, state models.State, updated time.Time) error
}

// remoteDoc is the stored document shape: the six state collections plus a
// last-updated timestamp.
type remoteDoc struct {
	models.State
	LastUpdated time.Time `json:"lastUpdated"`
}

// Postgres stores one state document per user in the user_state table.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres connects a pool and verifies the database is reachable.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Postgres{Pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.Pool.Close()
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Load reads the user's state document. The second return is false when
// the user has no document yet.
func (p *Postgres) Load(ctx context.Context, userID string) (models.State, bool, error) {
	var data []byte
	err := p.Pool.QueryRow(ctx,
		`SELECT doc FROM user_state WHERE login = $1`, userID).Scan(&data)
	if err == pgx.ErrNoRows {
		return models.State{}, false, nil
	}
	if err != nil {
		return models.State{}, false, fmt.Errorf("loading user state: %w", err)
	}

	var doc remoteDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.State{}, false, fmt.Errorf("decoding user state: %w", err)
	}
	return doc.State, true, nil
}

// Save replaces the user's state document wholesale. Last writer wins;
// there is no optimistic concurrency control.
func (p *Postgres) Save(ctx context.Context, userID string, state models.State, updated time.Time) error {
	data, err := json.Marshal(remoteDoc{State: state, LastUpdated: updated})
	if err != nil {
		return fmt.Errorf("encoding user state: %w", err)
	}
	_, err = p.Pool.Exec(ctx, `
		INSERT INTO user_state (login, doc, last_updated)
		VALUES ($1, $2, $3)
		ON CONFLICT (login) DO UPDATE
			SET doc = EXCLUDED.doc, last_updated = EXCLUDED.last_updated
	`, userID, data, updated)
	if err != nil {
		return fmt.Errorf("saving user state: %w", err)
	}
	return nil
}
