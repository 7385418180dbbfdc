package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/ledgerlocal/ledgerd/gen/ent"
)

// StoreTimeout bounds every store operation.
const StoreTimeout = 5 * time.Second

// Open opens the sqlite database file, wraps it for ent, and runs schema
// migration. The returned *sql.DB backs health checks.
func Open(ctx context.Context, path string, logger *slog.Logger) (*ent.Client, *sql.DB, error) {
	logger.Info("opening store", "path", path)

	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return nil, nil, err
	}
	// sqlite allows one writer; keep the pool small so writers queue in Go
	// instead of hitting SQLITE_BUSY.
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	drv := entsql.OpenDB(dialect.SQLite, db)
	client := ent.NewClient(ent.Driver(drv))

	migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := client.Schema.Create(migCtx); err != nil {
		_ = db.Close()
		logger.Error("schema migration failed", "error", err)
		return nil, nil, err
	}

	logger.Info("store ready")
	return client, db, nil
}

// Close closes the store connections gracefully.
func Close(client *ent.Client, db *sql.DB, logger *slog.Logger) {
	if client != nil {
		if err := client.Close(); err != nil {
			logger.Error("failed to close ent client", "error", err)
		}
	}
	if db != nil {
		_ = db.Close()
	}
	logger.Info("store closed")
}

// HealthCheck pings the database with a bounded timeout.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}
