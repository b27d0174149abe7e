package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	matchdb "github.com/scrimmage-club/pug-bot/app/modules/match/infrastructure/repositories"
	queuedb "github.com/scrimmage-club/pug-bot/app/modules/queue/infrastructure/repositories"
	userdb "github.com/scrimmage-club/pug-bot/app/modules/user/infrastructure/repositories"
	"github.com/scrimmage-club/pug-bot/config"
)

// StoreService is the single entry point to the persistence layer. It owns
// one live SQLite handle shared by all repositories, so a caller can wrap a
// sequence of repository calls in one transaction via GetDB().RunInTx.
type StoreService struct {
	UserDB  userdb.Repository
	QueueDB queuedb.Repository
	MatchDB matchdb.Repository
	db      *bun.DB
}

// GetDB returns the underlying shared database handle.
func (s *StoreService) GetDB() *bun.DB {
	return s.db
}

// Close releases the underlying connection.
func (s *StoreService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewStoreService opens the store at the configured path, applies the schema,
// and wires the repositories over the shared handle. Schema failure aborts
// construction; there is no partial-application recovery path.
func NewStoreService(ctx context.Context, cfg config.DatabaseConfig) (*StoreService, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	sqldb, err := sqliteConn(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.RegisterModel((*userdb.User)(nil))
	db.RegisterModel((*queuedb.QueueEntry)(nil))
	db.RegisterModel((*matchdb.Match)(nil))
	db.RegisterModel((*matchdb.MatchPlayer)(nil))

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	slog.Info("store opened", "path", cfg.Path)

	return &StoreService{
		UserDB:  &userdb.UserDBImpl{},
		QueueDB: &queuedb.QueueDBImpl{},
		MatchDB: &matchdb.MatchDBImpl{},
		db:      db,
	}, nil
}

// sqliteConn opens the SQLite handle and pins it to a single connection so
// writes from concurrent collaborators are linearized by the store itself.
func sqliteConn(path string) (*sql.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	if err := sqldb.Ping(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := sqldb.Exec(pragma); err != nil {
			_ = sqldb.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return sqldb, nil
}

// ensureSchema idempotently creates the four relations. Safe on every process
// start; re-running against an already-applied schema is a no-op. Future
// fields should arrive as additive nullable columns rather than ad hoc
// alteration.
func ensureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			discord_id TEXT PRIMARY KEY,
			steam_id TEXT,
			is_vip INTEGER NOT NULL DEFAULT 0,
			rating INTEGER NOT NULL DEFAULT 1000,
			penalty_until INTEGER
		);
		CREATE TABLE IF NOT EXISTS queue (
			discord_id TEXT PRIMARY KEY,
			joined_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			status TEXT NOT NULL,
			channel_id TEXT,
			server_ip TEXT,
			server_password TEXT
		);
		CREATE TABLE IF NOT EXISTS match_players (
			match_id INTEGER NOT NULL,
			discord_id TEXT NOT NULL,
			PRIMARY KEY(match_id, discord_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}
